package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/tracewatch/tracewatch-backend/internal/models"
)

// ErrApplicationNotFound is returned when no application is registered
// under the requested id.
var ErrApplicationNotFound = errors.New("application not found")

// SQLiteStore implements Store on SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// RunMigrations executes every *.sql file in the given filesystem in name
// order.
func (s *SQLiteStore) RunMigrations(migrationFS fs.FS) error {
	entries, err := fs.Glob(migrationFS, "*.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	for _, name := range entries {
		content, err := fs.ReadFile(migrationFS, name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", name, err)
		}
	}
	return nil
}

func (s *SQLiteStore) GetApplication(ctx context.Context, applicationID int) (models.Application, error) {
	var app models.Application
	query := `SELECT application_id, application_code, is_address, register_time
		FROM application_register WHERE application_id = ?`

	err := instrumentQuery("get_application", func() error {
		return s.db.GetContext(ctx, &app, query, applicationID)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Application{}, fmt.Errorf("%w: %d", ErrApplicationNotFound, applicationID)
	}
	return app, err
}

func (s *SQLiteStore) Components(ctx context.Context, step models.Step, startBucket, endBucket int64) ([]models.ApplicationComponent, error) {
	components := []models.ApplicationComponent{}
	query := `SELECT DISTINCT application_id, component_id
		FROM application_component
		WHERE time_bucket BETWEEN ? AND ?
		ORDER BY application_id, component_id`

	err := instrumentQuery("components", func() error {
		return s.db.SelectContext(ctx, &components, query, startBucket, endBucket)
	})
	return components, err
}

func (s *SQLiteStore) Mappings(ctx context.Context, step models.Step, startBucket, endBucket int64) ([]models.ApplicationMapping, error) {
	mappings := []models.ApplicationMapping{}
	query := `SELECT DISTINCT application_id, mapping_application_id
		FROM application_mapping
		WHERE time_bucket BETWEEN ? AND ?
		ORDER BY application_id, mapping_application_id`

	err := instrumentQuery("mappings", func() error {
		return s.db.SelectContext(ctx, &mappings, query, startBucket, endBucket)
	})
	return mappings, err
}

func (s *SQLiteStore) ApplicationMetrics(ctx context.Context, step models.Step, startBucket, endBucket int64) ([]models.ApplicationMetric, error) {
	metrics := []models.ApplicationMetric{}
	query := `SELECT application_id,
			SUM(calls) AS calls,
			SUM(error_calls) AS error_calls,
			SUM(durations) AS durations,
			SUM(error_durations) AS error_durations,
			SUM(satisfied_count) AS satisfied_count,
			SUM(tolerating_count) AS tolerating_count,
			SUM(frustrated_count) AS frustrated_count
		FROM application_metric
		WHERE time_bucket BETWEEN ? AND ?
		GROUP BY application_id
		ORDER BY application_id`

	err := instrumentQuery("application_metrics", func() error {
		return s.db.SelectContext(ctx, &metrics, query, startBucket, endBucket)
	})
	return metrics, err
}

func (s *SQLiteStore) ReferenceMetrics(ctx context.Context, step models.Step, startBucket, endBucket int64, source models.MetricSource) ([]models.ReferenceMetric, error) {
	references := []models.ReferenceMetric{}
	query := `SELECT source_application_id, target_application_id,
			SUM(calls) AS calls,
			SUM(durations) AS durations
		FROM application_reference_metric
		WHERE source_value = ? AND time_bucket BETWEEN ? AND ?
		GROUP BY source_application_id, target_application_id
		ORDER BY source_application_id, target_application_id`

	err := instrumentQuery("reference_metrics", func() error {
		return s.db.SelectContext(ctx, &references, query, int(source), startBucket, endBucket)
	})
	return references, err
}

func (s *SQLiteStore) AlarmList(ctx context.Context, scope models.AlarmScope, keyword string, startBucket, endBucket int64, limit, offset int) (*models.Alarm, error) {
	var total int
	items := []models.AlarmItem{}
	err := instrumentQuery("alarm_list", func() error {
		countQuery := `SELECT COUNT(*) FROM alarm
			WHERE scope = ? AND start_time_bucket BETWEEN ? AND ?
			AND (? = '' OR content LIKE '%' || ? || '%')`
		if err := s.db.GetContext(ctx, &total, countQuery, scope, startBucket, endBucket, keyword, keyword); err != nil {
			return err
		}

		query := `SELECT id, scope, title, content, start_time_bucket
			FROM alarm
			WHERE scope = ? AND start_time_bucket BETWEEN ? AND ?
			AND (? = '' OR content LIKE '%' || ? || '%')
			ORDER BY start_time_bucket DESC
			LIMIT ? OFFSET ?`
		return s.db.SelectContext(ctx, &items, query, scope, startBucket, endBucket, keyword, keyword, limit, offset)
	})
	if err != nil {
		return nil, err
	}

	return &models.Alarm{Items: items, Total: total}, nil
}

func (s *SQLiteStore) ActiveInstances(ctx context.Context, applicationID int, startSecondBucket, endSecondBucket int64) ([]models.AppServerInfo, error) {
	servers := []models.AppServerInfo{}
	query := `SELECT instance_id, application_id, host, pid, ipv4, os_name
		FROM instance
		WHERE application_id = ?
		AND register_time <= ?
		AND heartbeat_time >= ?
		ORDER BY instance_id`

	err := instrumentQuery("active_instances", func() error {
		return s.db.SelectContext(ctx, &servers, query, applicationID, endSecondBucket, startSecondBucket)
	})
	return servers, err
}
