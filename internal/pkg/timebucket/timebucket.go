// Package timebucket parses and converts the numeric time buckets metrics
// are keyed by (yyyyMM down to yyyyMMddHHmmss depending on step).
package timebucket

import (
	"fmt"
	"time"

	"github.com/tracewatch/tracewatch-backend/internal/models"
)

const secondLayout = "20060102150405"

var stepLayouts = map[models.Step]string{
	models.StepMonth:  "200601",
	models.StepDay:    "20060102",
	models.StepHour:   "2006010215",
	models.StepMinute: "200601021504",
	models.StepSecond: secondLayout,
}

// Parse converts a time bucket at the given step into a UTC time.
func Parse(step models.Step, bucket int64) (time.Time, error) {
	layout, ok := stepLayouts[step]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown step %q", step)
	}
	t, err := time.ParseInLocation(layout, fmt.Sprintf("%d", bucket), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time bucket %d at step %s: %w", bucket, step, err)
	}
	return t, nil
}

// ParseSecond converts a second-granularity bucket (yyyyMMddHHmmss).
func ParseSecond(bucket int64) (time.Time, error) {
	return Parse(models.StepSecond, bucket)
}

// SecondBucket formats a time as a second-granularity bucket.
func SecondBucket(t time.Time) int64 {
	var bucket int64
	fmt.Sscanf(t.UTC().Format(secondLayout), "%d", &bucket)
	return bucket
}

// StartSecondBucket widens a step-granularity bucket to the second bucket
// of its first instant.
func StartSecondBucket(step models.Step, bucket int64) (int64, error) {
	t, err := Parse(step, bucket)
	if err != nil {
		return 0, err
	}
	return SecondBucket(t), nil
}

// EndSecondBucket widens a step-granularity bucket to the second bucket of
// its last instant.
func EndSecondBucket(step models.Step, bucket int64) (int64, error) {
	t, err := Parse(step, bucket)
	if err != nil {
		return 0, err
	}
	var end time.Time
	switch step {
	case models.StepMonth:
		end = t.AddDate(0, 1, 0).Add(-time.Second)
	case models.StepDay:
		end = t.AddDate(0, 0, 1).Add(-time.Second)
	case models.StepHour:
		end = t.Add(time.Hour - time.Second)
	case models.StepMinute:
		end = t.Add(time.Minute - time.Second)
	default:
		end = t
	}
	return SecondBucket(end), nil
}

// MinutesBetween returns the whole minutes covered by [start, end], never
// less than 1 so per-minute rates stay defined on sub-minute windows.
func MinutesBetween(start, end time.Time) int64 {
	minutes := int64(end.Sub(start) / time.Minute)
	if minutes < 1 {
		return 1
	}
	return minutes
}
