package models

// Step is the time-bucket granularity metrics are aggregated at.
type Step string

const (
	StepMonth  Step = "MONTH"
	StepDay    Step = "DAY"
	StepHour   Step = "HOUR"
	StepMinute Step = "MINUTE"
	StepSecond Step = "SECOND"
)

// MetricSource tells which side of a call a reference metric row was
// aggregated from.
type MetricSource int

const (
	MetricSourceCaller MetricSource = iota
	MetricSourceCallee
)

// ApplicationMetric is one application's aggregated traffic over a window.
type ApplicationMetric struct {
	ID              int   `db:"application_id" json:"id"`
	Calls           int64 `db:"calls" json:"calls"`
	ErrorCalls      int64 `db:"error_calls" json:"errorCalls"`
	Durations       int64 `db:"durations" json:"durations"`
	ErrorDurations  int64 `db:"error_durations" json:"errorDurations"`
	SatisfiedCount  int64 `db:"satisfied_count" json:"satisfiedCount"`
	ToleratingCount int64 `db:"tolerating_count" json:"toleratingCount"`
	FrustratedCount int64 `db:"frustrated_count" json:"frustratedCount"`
}

// ReferenceMetric is the aggregated call record between a source and a
// target application over a window.
type ReferenceMetric struct {
	Source    int   `db:"source_application_id" json:"source"`
	Target    int   `db:"target_application_id" json:"target"`
	Calls     int64 `db:"calls" json:"calls"`
	Durations int64 `db:"durations" json:"durations"`
}
