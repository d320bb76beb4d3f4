package models

import "time"

// Instance represents a running EC2 instance as seen at the start of an analysis run
type Instance struct {
	InstanceID       string
	InstanceType     string
	Region           string
	AvailabilityZone string
	LaunchTime       time.Time
	Tags             map[string]string
}

// Name returns the value of the Name tag, or an empty string
func (i Instance) Name() string {
	return i.Tags["Name"]
}

// UtilizationSummary holds CPU statistics over a lookback window.
// AverageCPU is the mean of the daily averages, MaxCPU the largest daily maximum.
type UtilizationSummary struct {
	AverageCPU   float64
	MaxCPU       float64
	Datapoints   int
	LookbackDays int
}
