package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracewatch/tracewatch-backend/internal/catalog"
	"github.com/tracewatch/tracewatch-backend/internal/models"
	"github.com/tracewatch/tracewatch-backend/internal/pkg/topologycache"
	"github.com/tracewatch/tracewatch-backend/internal/topology"
)

type fakeTopologyStore struct {
	loads int
}

func (f *fakeTopologyStore) Components(_ context.Context, _ models.Step, _, _ int64) ([]models.ApplicationComponent, error) {
	f.loads++
	return []models.ApplicationComponent{{ApplicationID: 2, ComponentID: catalog.ComponentTomcat}}, nil
}

func (f *fakeTopologyStore) Mappings(_ context.Context, _ models.Step, _, _ int64) ([]models.ApplicationMapping, error) {
	return nil, nil
}

func (f *fakeTopologyStore) ApplicationMetrics(_ context.Context, _ models.Step, _, _ int64) ([]models.ApplicationMetric, error) {
	return []models.ApplicationMetric{{ID: 2, Calls: 100, ErrorCalls: 5, Durations: 50000}}, nil
}

func (f *fakeTopologyStore) ReferenceMetrics(_ context.Context, _ models.Step, _, _ int64, source models.MetricSource) ([]models.ReferenceMetric, error) {
	if source == models.MetricSourceCaller {
		return []models.ReferenceMetric{{Source: 4, Target: 2, Calls: 10, Durations: 100}}, nil
	}
	return nil, nil
}

type staticAlarms struct{}

func (staticAlarms) ApplicationAlarms(_ context.Context, _ string, _ models.Step, _, _ int64, _, _ int) (*models.Alarm, error) {
	return &models.Alarm{}, nil
}
func (staticAlarms) InstanceAlarms(_ context.Context, _ string, _ models.Step, _, _ int64, _, _ int) (*models.Alarm, error) {
	return &models.Alarm{}, nil
}
func (staticAlarms) EndpointAlarms(_ context.Context, _ string, _ models.Step, _, _ int64, _, _ int) (*models.Alarm, error) {
	return &models.Alarm{}, nil
}

type staticServers struct{}

func (staticServers) AllServers(_ context.Context, _ int, _, _ int64) ([]models.AppServerInfo, error) {
	return nil, nil
}

func newServiceUnderTest(store *fakeTopologyStore, ttl time.Duration) TopologyService {
	apps := &staticApplications{apps: map[int]models.Application{
		2: {ApplicationID: 2, ApplicationCode: "order-service"},
		4: {ApplicationID: 4, ApplicationCode: "gateway"},
	}}
	builder := topology.NewBuilder(apps, catalog.NewDefault(), staticServers{}, staticAlarms{}, NewDurationService(apps), slog.Default())
	return NewTopologyService(store, builder, topologycache.New(ttl))
}

func TestTopologyEndToEnd(t *testing.T) {
	store := &fakeTopologyStore{}
	s := newServiceUnderTest(store, 0)

	top, err := s.Topology(context.Background(), TopologyRequest{
		Step:  models.StepMinute,
		Start: 202601141000,
		End:   202601141009,
	})
	require.NoError(t, err)

	// metric node for 2, synthetic node for 4
	require.Len(t, top.Nodes, 2)
	assert.Equal(t, 2, top.Nodes[0].GetID())
	assert.Equal(t, "Tomcat", top.Nodes[0].GetType())
	assert.Equal(t, 4, top.Nodes[1].GetID())

	require.Len(t, top.Calls, 1)
	assert.Equal(t, 4, top.Calls[0].Source)
	assert.Equal(t, 2, top.Calls[0].Target)
}

func TestTopologyCached(t *testing.T) {
	store := &fakeTopologyStore{}
	s := newServiceUnderTest(store, time.Minute)

	req := TopologyRequest{Step: models.StepMinute, Start: 202601141000, End: 202601141009}

	_, err := s.Topology(context.Background(), req)
	require.NoError(t, err)
	_, err = s.Topology(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, store.loads, "second request served from cache")
}

func TestTopologyInvalidWindow(t *testing.T) {
	s := newServiceUnderTest(&fakeTopologyStore{}, 0)

	_, err := s.Topology(context.Background(), TopologyRequest{
		Step:  models.Step("WEEK"),
		Start: 202601141000,
		End:   202601141009,
	})
	assert.Error(t, err)
}
