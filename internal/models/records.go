package models

import (
	"time"
	"unicode/utf8"
)

// Record is a flat document written to the record log
type Record map[string]any

// SummaryPreviewLength is the number of characters kept in summary_preview
const SummaryPreviewLength = 200

// NewRowRecord converts a report row into a record log entry
func NewRowRecord(row ReportRow, runID, recordID string, createdAt time.Time) Record {
	return Record{
		"record_id":       recordID,
		"run_id":          runID,
		"InstanceId":      row.InstanceID,
		"Name":            row.Name,
		"InstanceType":    row.InstanceType,
		"AvgCPU":          row.AvgCPU,
		"MaxCPU":          row.MaxCPU,
		"Recommendations": row.Recommendations(),
		"created_at":      createdAt.UTC().Format(time.RFC3339),
	}
}

// NewSummaryRecord describes a generated summary of filename.
// summaryKey is omitted when empty.
func NewSummaryRecord(filename, summaryKey, summary, recordID string, createdAt time.Time) Record {
	record := Record{
		"record_id":       recordID,
		"filename":        filename,
		"created_at":      createdAt.UTC().Format(time.RFC3339),
		"summary_preview": Preview(summary, SummaryPreviewLength),
	}
	if summaryKey != "" {
		record["summary_s3_key"] = summaryKey
	}
	return record
}

// Preview returns at most n runes of s
func Preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
