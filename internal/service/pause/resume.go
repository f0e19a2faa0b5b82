// Package pause computes the effective resume time of a feeding break.
// It is independent of the schedule calculator; a caller wanting "next
// feeding accounting for the pause" composes the two itself.
package pause

import "time"

// ResumeTime reports the time of day at which feeding resumes, given the
// break duration and activation flag. An inactive break or a non-positive
// duration has no meaningful resume time. The addition rolls over day,
// month and year boundaries; only the time-of-day portion is returned,
// zero-padded.
func ResumeTime(now time.Time, durationHours int, active bool) (string, bool) {
	if !active || durationHours <= 0 {
		return "", false
	}
	resume := now.Add(time.Duration(durationHours) * time.Hour)
	return resume.Format("15:04"), true
}
