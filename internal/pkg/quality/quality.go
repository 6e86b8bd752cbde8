// Package quality computes the SLA and Apdex scores shown on topology nodes.
package quality

// SLA returns the success percentage (0-100) for a window. A window with no
// calls scores 100: nothing failed, so nothing degrades the score.
func SLA(errorCalls, calls int64) int {
	if calls == 0 {
		return 100
	}
	return int((calls - errorCalls) * 100 / calls)
}

// Apdex returns the Apdex score scaled to 0-100. Tolerating samples count
// half. A window with no samples scores 100.
func Apdex(satisfied, tolerating, frustrated int64) int {
	total := satisfied + tolerating + frustrated
	if total == 0 {
		return 100
	}
	return int((satisfied + tolerating/2) * 100 / total)
}
