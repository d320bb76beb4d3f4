package utils

import (
	"time"
)

// ReportTimestampLayout is the timestamp embedded in report file names
const ReportTimestampLayout = "2006-01-02_15-04"

// ReportTimestamp formats t for use in a report file name
func ReportTimestamp(t time.Time) string {
	return t.Format(ReportTimestampLayout)
}

// LookbackWindow returns the [now-days, now] interval used for metric queries
func LookbackWindow(now time.Time, days int) (time.Time, time.Time) {
	return now.Add(-time.Duration(days) * 24 * time.Hour), now
}
