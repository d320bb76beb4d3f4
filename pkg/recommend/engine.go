// Package recommend turns utilization summaries into rightsizing advice.
package recommend

import (
	"context"
	"strings"

	"github.com/younsl/rightsizer/internal/models"
	"github.com/younsl/rightsizer/pkg/pricing"
)

// PriceLookup resolves the hourly on-demand price of an instance type
type PriceLookup interface {
	OnDemandHourly(ctx context.Context, instanceType string) pricing.Quote
}

// Policy holds the thresholds and candidate sizes used by the Engine
type Policy struct {
	// UnderutilizedMaxCPU flags instances whose peak CPU is strictly below it
	UnderutilizedMaxCPU float64

	// IdleMaxCPU flags instances whose peak CPU is strictly below it as unused
	IdleMaxCPU float64

	// CandidateSizes are tried in order within the instance's family
	CandidateSizes []string
}

// DefaultPolicy returns the standard thresholds of 40% and 10% peak CPU
// and the large, medium, small candidate sizes
func DefaultPolicy() Policy {
	return Policy{
		UnderutilizedMaxCPU: 40,
		IdleMaxCPU:          10,
		CandidateSizes:      []string{"large", "medium", "small"},
	}
}

// Engine produces recommendations for instances
type Engine struct {
	prices PriceLookup
	policy Policy
}

// NewEngine creates an Engine with the given price lookup and policy
func NewEngine(prices PriceLookup, policy Policy) *Engine {
	return &Engine{
		prices: prices,
		policy: policy,
	}
}

// ParseFamily splits an instance type such as "m5.large" into its family "m5".
// When the type has no "." the whole string is returned with ok false, and an
// empty family is never ok.
func ParseFamily(instanceType string) (family string, ok bool) {
	family, _, found := strings.Cut(instanceType, ".")
	if !found {
		return instanceType, false
	}
	return family, family != ""
}

// Candidates returns the same-family downgrade types to consider, excluding
// the current type. It returns nil when the family cannot be parsed.
func (p Policy) Candidates(instanceType string) []string {
	family, ok := ParseFamily(instanceType)
	if !ok {
		return nil
	}

	candidates := make([]string, 0, len(p.CandidateSizes))
	for _, size := range p.CandidateSizes {
		candidate := family + "." + size
		if candidate == instanceType {
			continue
		}
		candidates = append(candidates, candidate)
	}
	return candidates
}

// Recommend evaluates one instance against its utilization summary
func (e *Engine) Recommend(ctx context.Context, instance models.Instance, summary models.UtilizationSummary) models.Recommendation {
	var findings []models.Finding

	if summary.MaxCPU < e.policy.UnderutilizedMaxCPU {
		findings = append(findings, models.Finding{
			Kind:   models.FindingUnderutilized,
			MaxCPU: summary.MaxCPU,
		})
		findings = append(findings, e.downgrades(ctx, instance.InstanceType)...)
	}

	if summary.MaxCPU < e.policy.IdleMaxCPU {
		findings = append(findings, models.Finding{Kind: models.FindingIdle})
	}

	if len(findings) == 0 {
		return models.NoRecommendation()
	}

	return models.Recommendation{
		Verdict:  models.VerdictAction,
		Findings: findings,
	}
}

func (e *Engine) downgrades(ctx context.Context, instanceType string) []models.Finding {
	current, ok := e.prices.OnDemandHourly(ctx, instanceType).Value()
	if !ok || current <= 0 {
		return nil
	}

	candidates := e.policy.Candidates(instanceType)

	var findings []models.Finding
	for _, candidate := range candidates {
		price, ok := e.prices.OnDemandHourly(ctx, candidate).Value()
		if !ok || price >= current {
			continue
		}

		savings := current - price
		findings = append(findings, models.Finding{
			Kind:           models.FindingDowngrade,
			CandidateType:  candidate,
			CurrentPrice:   current,
			CandidatePrice: price,
			HourlySavings:  savings,
			SavingsPercent: savings / current * 100,
		})
	}
	return findings
}
