package models

import (
	"math"
	"time"
)

// SkipReason explains why an instance is missing from a report
type SkipReason string

const (
	// SkipNoData means CloudWatch returned no datapoints for the window
	SkipNoData SkipReason = "no_data"

	// SkipError means the metrics query failed
	SkipError SkipReason = "error"
)

// ReportRow is the per-instance record of a report
type ReportRow struct {
	InstanceID     string         `json:"instanceId" yaml:"instanceId"`
	Name           string         `json:"name" yaml:"name"`
	InstanceType   string         `json:"instanceType" yaml:"instanceType"`
	LaunchTime     time.Time      `json:"launchTime" yaml:"launchTime"`
	AvgCPU         float64        `json:"avgCpu" yaml:"avgCpu"`
	MaxCPU         float64        `json:"maxCpu" yaml:"maxCpu"`
	Recommendation Recommendation `json:"recommendation" yaml:"recommendation"`
}

// NewReportRow builds a row with CPU values rounded to one decimal
func NewReportRow(instance Instance, summary UtilizationSummary, rec Recommendation) ReportRow {
	return ReportRow{
		InstanceID:     instance.InstanceID,
		Name:           instance.Name(),
		InstanceType:   instance.InstanceType,
		LaunchTime:     instance.LaunchTime,
		AvgCPU:         Round1(summary.AverageCPU),
		MaxCPU:         Round1(summary.MaxCPU),
		Recommendation: rec,
	}
}

// Recommendations returns the rendered recommendation text
func (r ReportRow) Recommendations() string {
	return r.Recommendation.String()
}

// SkippedInstance records an instance excluded from the report
type SkippedInstance struct {
	InstanceID string     `json:"instanceId" yaml:"instanceId"`
	Reason     SkipReason `json:"reason" yaml:"reason"`
	Error      string     `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report is the result of one analysis run
type Report struct {
	RunID        string            `json:"runId" yaml:"runId"`
	GeneratedAt  time.Time         `json:"generatedAt" yaml:"generatedAt"`
	Region       string            `json:"region" yaml:"region"`
	AccountID    string            `json:"accountId,omitempty" yaml:"accountId,omitempty"`
	LookbackDays int               `json:"lookbackDays" yaml:"lookbackDays"`
	Scanned      int               `json:"scanned" yaml:"scanned"`
	Rows         []ReportRow       `json:"rows" yaml:"rows"`
	Skipped      []SkippedInstance `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// IsEmpty reports whether the run produced no rows
func (r *Report) IsEmpty() bool {
	return r == nil || len(r.Rows) == 0
}

// Round1 rounds to one decimal place
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
