package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracewatch/tracewatch-backend/internal/models"
	"github.com/tracewatch/tracewatch-backend/migrations"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.RunMigrations(migrations.FS))
	return store
}

func TestGetApplication(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.db.Exec(`INSERT INTO application_register
		(application_id, application_code, is_address, register_time)
		VALUES (2, 'order-service', 0, 20260114090000), (3, 'db:3306', 1, 0)`)
	require.NoError(t, err)

	app, err := store.GetApplication(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "order-service", app.ApplicationCode)
	assert.False(t, app.IsAddress)
	assert.Equal(t, int64(20260114090000), app.RegisterTime)

	addr, err := store.GetApplication(ctx, 3)
	require.NoError(t, err)
	assert.True(t, addr.IsAddress)

	_, err = store.GetApplication(ctx, 99)
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestApplicationMetricsAggregation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.db.Exec(`INSERT INTO application_metric
		(application_id, time_bucket, calls, error_calls, durations, satisfied_count, tolerating_count, frustrated_count)
		VALUES
		(2, 202601141000, 60, 3, 30000, 50, 10, 0),
		(2, 202601141001, 40, 2, 20000, 30, 10, 0),
		(2, 202601141030, 999, 0, 1, 0, 0, 0)`) // outside window
	require.NoError(t, err)

	metrics, err := store.ApplicationMetrics(ctx, models.StepMinute, 202601141000, 202601141009)
	require.NoError(t, err)
	require.Len(t, metrics, 1)
	assert.Equal(t, 2, metrics[0].ID)
	assert.Equal(t, int64(100), metrics[0].Calls)
	assert.Equal(t, int64(5), metrics[0].ErrorCalls)
	assert.Equal(t, int64(50000), metrics[0].Durations)
	assert.Equal(t, int64(80), metrics[0].SatisfiedCount)
}

func TestReferenceMetricsBySide(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.db.Exec(`INSERT INTO application_reference_metric
		(source_application_id, target_application_id, source_value, time_bucket, calls, durations)
		VALUES
		(4, 2, 0, 202601141000, 10, 100),
		(4, 2, 0, 202601141001, 10, 100),
		(1, 2, 1, 202601141000, 5, 50)`)
	require.NoError(t, err)

	caller, err := store.ReferenceMetrics(ctx, models.StepMinute, 202601141000, 202601141009, models.MetricSourceCaller)
	require.NoError(t, err)
	require.Len(t, caller, 1)
	assert.Equal(t, 4, caller[0].Source)
	assert.Equal(t, int64(20), caller[0].Calls)

	callee, err := store.ReferenceMetrics(ctx, models.StepMinute, 202601141000, 202601141009, models.MetricSourceCallee)
	require.NoError(t, err)
	require.Len(t, callee, 1)
	assert.Equal(t, 1, callee[0].Source)
}

func TestAlarmListPaging(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.db.Exec(`INSERT INTO alarm (scope, title, content, start_time_bucket) VALUES
		('APPLICATION', 'high error rate', 'order-service error rate over threshold', 20260114100100),
		('APPLICATION', 'slow responses', 'order-service p99 over threshold', 20260114100200),
		('INSTANCE', 'instance down', 'instance 11 stopped heartbeating', 20260114100300)`)
	require.NoError(t, err)

	page, err := store.AlarmList(ctx, models.AlarmScopeApplication, "", 20260114100000, 20260114100959, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Items, 1)

	filtered, err := store.AlarmList(ctx, models.AlarmScopeApplication, "p99", 20260114100000, 20260114100959, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, filtered.Total)

	instances, err := store.AlarmList(ctx, models.AlarmScopeInstance, "", 20260114100000, 20260114100959, 1000, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, instances.Total)
}

func TestActiveInstances(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.db.Exec(`INSERT INTO instance
		(instance_id, application_id, host, register_time, heartbeat_time)
		VALUES
		(11, 2, 'host-a', 20260114090000, 20260114100500),
		(12, 2, 'host-b', 20260114090000, 20260114095000),
		(13, 3, 'host-c', 20260114090000, 20260114100500)`)
	require.NoError(t, err)

	// instance 12 stopped heartbeating before the window start
	servers, err := store.ActiveInstances(ctx, 2, 20260114100000, 20260114100959)
	require.NoError(t, err)
	require.Len(t, servers, 1)
	assert.Equal(t, 11, servers[0].InstanceID)
}

func TestComponentsAndMappings(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.db.Exec(`INSERT INTO application_component (application_id, component_id, time_bucket)
		VALUES (2, 1, 202601141000), (2, 1, 202601141001), (3, 5, 202601141000)`)
	require.NoError(t, err)
	_, err = store.db.Exec(`INSERT INTO application_mapping (application_id, mapping_application_id, time_bucket)
		VALUES (9, 3, 202601141000)`)
	require.NoError(t, err)

	components, err := store.Components(ctx, models.StepMinute, 202601141000, 202601141009)
	require.NoError(t, err)
	// duplicate buckets collapse to one row per pair
	assert.Len(t, components, 2)

	mappings, err := store.Mappings(ctx, models.StepMinute, 202601141000, 202601141009)
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	assert.Equal(t, 9, mappings[0].ApplicationID)
	assert.Equal(t, 3, mappings[0].MappingApplicationID)
}
