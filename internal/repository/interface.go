// Package repository defines the storage interfaces the dashboard reads
// from and their SQLite implementation.
package repository

import (
	"context"

	"github.com/tracewatch/tracewatch-backend/internal/models"
)

// ApplicationRepository reads registered application metadata.
type ApplicationRepository interface {
	GetApplication(ctx context.Context, applicationID int) (models.Application, error)
}

// ComponentRepository reads application-component rows for a window.
type ComponentRepository interface {
	Components(ctx context.Context, step models.Step, startBucket, endBucket int64) ([]models.ApplicationComponent, error)
}

// MappingRepository reads address-mapping rows for a window.
type MappingRepository interface {
	Mappings(ctx context.Context, step models.Step, startBucket, endBucket int64) ([]models.ApplicationMapping, error)
}

// MetricRepository reads aggregated per-application and per-call metrics.
type MetricRepository interface {
	ApplicationMetrics(ctx context.Context, step models.Step, startBucket, endBucket int64) ([]models.ApplicationMetric, error)
	ReferenceMetrics(ctx context.Context, step models.Step, startBucket, endBucket int64, source models.MetricSource) ([]models.ReferenceMetric, error)
}

// AlarmRepository reads triggered alarms, paged.
type AlarmRepository interface {
	AlarmList(ctx context.Context, scope models.AlarmScope, keyword string, startBucket, endBucket int64, limit, offset int) (*models.Alarm, error)
}

// InstanceRepository reads server-instance registrations.
type InstanceRepository interface {
	ActiveInstances(ctx context.Context, applicationID int, startSecondBucket, endSecondBucket int64) ([]models.AppServerInfo, error)
}

// Store aggregates every repository the dashboard needs.
type Store interface {
	ApplicationRepository
	ComponentRepository
	MappingRepository
	MetricRepository
	AlarmRepository
	InstanceRepository
	Close() error
}
