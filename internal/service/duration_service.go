package service

import (
	"context"

	"github.com/tracewatch/tracewatch-backend/internal/models"
	"github.com/tracewatch/tracewatch-backend/internal/pkg/timebucket"
)

// applicationProvider is the slice of the application cache the duration
// service needs.
type applicationProvider interface {
	ApplicationByID(ctx context.Context, applicationID int) models.Application
}

// DurationService computes how many minutes an application was observable
// within a second-granularity window. An application registered mid-window
// only counts from its registration, so per-minute rates are not diluted
// by time it did not exist.
type DurationService struct {
	applications applicationProvider
}

// NewDurationService wires a DurationService.
func NewDurationService(applications applicationProvider) *DurationService {
	return &DurationService{applications: applications}
}

// MinutesBetween returns the whole minutes of [start, end] the application
// was registered for, never less than 1. Malformed buckets fail with a
// parse error.
func (s *DurationService) MinutesBetween(ctx context.Context, applicationID int, startSecondBucket, endSecondBucket int64) (int64, error) {
	start, err := timebucket.ParseSecond(startSecondBucket)
	if err != nil {
		return 0, err
	}
	end, err := timebucket.ParseSecond(endSecondBucket)
	if err != nil {
		return 0, err
	}

	app := s.applications.ApplicationByID(ctx, applicationID)
	if app.RegisterTime > 0 {
		if registered, err := timebucket.ParseSecond(app.RegisterTime); err == nil && registered.After(start) {
			start = registered
		}
	}

	return timebucket.MinutesBetween(start, end), nil
}
