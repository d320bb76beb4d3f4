// Package report runs the per-instance analysis and serializes its result.
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/younsl/rightsizer/internal/models"
	"github.com/younsl/rightsizer/pkg/aws"
)

// Inventory lists the instances to analyze
type Inventory interface {
	ListRunningInstances(ctx context.Context) ([]models.Instance, error)
}

// Sampler summarizes CPU utilization of an instance
type Sampler interface {
	CPUUtilization(ctx context.Context, instanceID string, days int) (models.UtilizationSummary, error)
}

// Recommender turns a utilization summary into a recommendation
type Recommender interface {
	Recommend(ctx context.Context, instance models.Instance, summary models.UtilizationSummary) models.Recommendation
}

// EventKind identifies a progress notification
type EventKind int

const (
	// EventInventory is sent once with the number of instances found
	EventInventory EventKind = iota
	// EventAnalyzing is sent before an instance is sampled
	EventAnalyzing
	// EventAnalyzed is sent after a row was added
	EventAnalyzed
	// EventNoData is sent when an instance had no datapoints
	EventNoData
	// EventFailed is sent when sampling an instance failed
	EventFailed
)

// Event is passed to Options.OnProgress
type Event struct {
	Kind       EventKind
	Index      int // 1-based position in the inventory
	Total      int
	InstanceID string
	Err        error
}

// Options configures an Assembler
type Options struct {
	LookbackDays int
	Region       string
	AccountID    string
	Log          logr.Logger
	OnProgress   func(Event)
	Now          func() time.Time
}

// Assembler builds a report by walking the inventory sequentially
type Assembler struct {
	inventory   Inventory
	sampler     Sampler
	recommender Recommender
	opts        Options
}

// NewAssembler creates a new Assembler
func NewAssembler(inventory Inventory, sampler Sampler, recommender Recommender, opts Options) *Assembler {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.OnProgress == nil {
		opts.OnProgress = func(Event) {}
	}
	return &Assembler{
		inventory:   inventory,
		sampler:     sampler,
		recommender: recommender,
		opts:        opts,
	}
}

// Assemble analyzes every running instance and returns the report.
// Only an inventory failure or cancellation of ctx returns an error;
// instances whose metrics cannot be read are recorded in Report.Skipped.
func (a *Assembler) Assemble(ctx context.Context) (*models.Report, error) {
	log := a.opts.Log

	instances, err := a.inventory.ListRunningInstances(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list running instances: %w", err)
	}

	total := len(instances)
	a.opts.OnProgress(Event{Kind: EventInventory, Total: total})
	log.V(1).Info("listed running instances", "count", total, "region", a.opts.Region)

	report := &models.Report{
		RunID:        uuid.NewString(),
		GeneratedAt:  a.opts.Now(),
		Region:       a.opts.Region,
		AccountID:    a.opts.AccountID,
		LookbackDays: a.opts.LookbackDays,
		Scanned:      total,
		Rows:         []models.ReportRow{},
	}

	for i, instance := range instances {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("analysis interrupted: %w", err)
		}

		event := Event{Index: i + 1, Total: total, InstanceID: instance.InstanceID}

		event.Kind = EventAnalyzing
		a.opts.OnProgress(event)

		summary, err := a.sampler.CPUUtilization(ctx, instance.InstanceID, a.opts.LookbackDays)
		if errors.Is(err, aws.ErrNoDatapoints) {
			log.V(1).Info("no metrics found", "instanceId", instance.InstanceID)
			report.Skipped = append(report.Skipped, models.SkippedInstance{
				InstanceID: instance.InstanceID,
				Reason:     models.SkipNoData,
			})
			event.Kind = EventNoData
			a.opts.OnProgress(event)
			continue
		}
		if err != nil {
			log.Error(err, "failed to sample instance", "instanceId", instance.InstanceID)
			report.Skipped = append(report.Skipped, models.SkippedInstance{
				InstanceID: instance.InstanceID,
				Reason:     models.SkipError,
				Error:      err.Error(),
			})
			event.Kind = EventFailed
			event.Err = err
			a.opts.OnProgress(event)
			continue
		}

		rec := a.recommender.Recommend(ctx, instance, summary)
		report.Rows = append(report.Rows, models.NewReportRow(instance, summary, rec))

		event.Kind = EventAnalyzed
		a.opts.OnProgress(event)
	}

	log.Info("analysis completed",
		"scanned", report.Scanned,
		"rows", len(report.Rows),
		"skipped", len(report.Skipped))

	return report, nil
}
