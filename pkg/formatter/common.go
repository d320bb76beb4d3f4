package formatter

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
)

// PrintScanTime prints the scan timestamp and duration
func PrintScanTime(w io.Writer, scanStartTime time.Time, scanDuration time.Duration) {
	timeStr := scanStartTime.Format("2006-01-02 15:04:05")
	durationStr := fmt.Sprintf("%.2fs", scanDuration.Seconds())

	fmt.Fprintf(w, "Scan completed at %s (took %s)\n", timeStr, durationStr)
}

// PrintUpload reports the outcome of an S3 upload
func PrintUpload(w io.Writer, uri string, size int, err error) {
	if err != nil {
		fmt.Fprintf(w, "❌ Failed to upload to S3: %v\n", err)
		return
	}
	fmt.Fprintf(w, "✅ Uploaded to %s (%s)\n", uri, humanize.Bytes(uint64(size)))
}

// instanceAge renders how long ago an instance was launched
func instanceAge(launch, now time.Time) string {
	if launch.IsZero() {
		return "-"
	}
	return humanize.RelTime(launch, now, "", "from now")
}

// getInstanceName returns a formatted instance name or <unnamed> if empty
func getInstanceName(name string) string {
	if name == "" {
		return "<unnamed>"
	}
	return Truncate(name, maxNameWidth)
}
