// Package service holds the request-scoped orchestration between the HTTP
// surface, the repositories, and the topology builder.
package service

import (
	"context"

	"github.com/tracewatch/tracewatch-backend/internal/models"
	"github.com/tracewatch/tracewatch-backend/internal/pkg/timebucket"
	"github.com/tracewatch/tracewatch-backend/internal/repository"
)

// AlarmService answers paged alarm queries at the three entity scopes. The
// query window arrives as step-granularity buckets and is widened to the
// second-bucket range alarms are stored at; malformed buckets surface as
// parse errors.
type AlarmService struct {
	repo repository.AlarmRepository
}

// NewAlarmService wires an AlarmService.
func NewAlarmService(repo repository.AlarmRepository) *AlarmService {
	return &AlarmService{repo: repo}
}

func (s *AlarmService) load(ctx context.Context, scope models.AlarmScope, keyword string, step models.Step, startBucket, endBucket int64, limit, offset int) (*models.Alarm, error) {
	startSecond, err := timebucket.StartSecondBucket(step, startBucket)
	if err != nil {
		return nil, err
	}
	endSecond, err := timebucket.EndSecondBucket(step, endBucket)
	if err != nil {
		return nil, err
	}
	return s.repo.AlarmList(ctx, scope, keyword, startSecond, endSecond, limit, offset)
}

// ApplicationAlarms lists application-scoped alarms in the window.
func (s *AlarmService) ApplicationAlarms(ctx context.Context, keyword string, step models.Step, startBucket, endBucket int64, limit, offset int) (*models.Alarm, error) {
	return s.load(ctx, models.AlarmScopeApplication, keyword, step, startBucket, endBucket, limit, offset)
}

// InstanceAlarms lists server-instance-scoped alarms in the window.
func (s *AlarmService) InstanceAlarms(ctx context.Context, keyword string, step models.Step, startBucket, endBucket int64, limit, offset int) (*models.Alarm, error) {
	return s.load(ctx, models.AlarmScopeInstance, keyword, step, startBucket, endBucket, limit, offset)
}

// EndpointAlarms lists endpoint-scoped alarms in the window.
func (s *AlarmService) EndpointAlarms(ctx context.Context, keyword string, step models.Step, startBucket, endBucket int64, limit, offset int) (*models.Alarm, error) {
	return s.load(ctx, models.AlarmScopeEndpoint, keyword, step, startBucket, endBucket, limit, offset)
}
