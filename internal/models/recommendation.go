package models

import (
	"fmt"
	"strings"
)

// FindingKind classifies a single recommendation entry
type FindingKind string

const (
	// FindingUnderutilized flags an instance whose peak CPU stays under the threshold
	FindingUnderutilized FindingKind = "underutilized"

	// FindingDowngrade suggests a cheaper type in the same family
	FindingDowngrade FindingKind = "downgrade"

	// FindingIdle flags an instance that appears unused
	FindingIdle FindingKind = "idle"
)

// Verdict is the overall outcome of a recommendation run for one instance
type Verdict string

const (
	// VerdictOK means no advisory applies
	VerdictOK Verdict = "ok"

	// VerdictAction means at least one finding was produced
	VerdictAction Verdict = "action"
)

// NoRecommendationsMarker is rendered in reports for VerdictOK
const NoRecommendationsMarker = "✅ No recommendations"

// Finding is one human-readable entry of a Recommendation
type Finding struct {
	Kind   FindingKind `json:"kind" yaml:"kind"`
	MaxCPU float64     `json:"maxCpu,omitempty" yaml:"maxCpu,omitempty"`

	// Downgrade details, only set for FindingDowngrade
	CandidateType  string  `json:"candidateType,omitempty" yaml:"candidateType,omitempty"`
	CurrentPrice   float64 `json:"currentPrice,omitempty" yaml:"currentPrice,omitempty"`
	CandidatePrice float64 `json:"candidatePrice,omitempty" yaml:"candidatePrice,omitempty"`
	HourlySavings  float64 `json:"hourlySavings,omitempty" yaml:"hourlySavings,omitempty"`
	SavingsPercent float64 `json:"savingsPercent,omitempty" yaml:"savingsPercent,omitempty"`
}

// String renders the finding the way it appears in the report
func (f Finding) String() string {
	switch f.Kind {
	case FindingUnderutilized:
		return fmt.Sprintf("Underutilized (Max CPU: %.1f%%)", f.MaxCPU)
	case FindingDowngrade:
		return fmt.Sprintf("⬇️ Suggest: %s → Save $%.2f/hr (%.1f%%)",
			f.CandidateType, f.HourlySavings, f.SavingsPercent)
	case FindingIdle:
		return "Consider stopping: appears unused"
	default:
		return string(f.Kind)
	}
}

// Recommendation is the ordered list of findings for one instance
type Recommendation struct {
	Verdict  Verdict   `json:"verdict" yaml:"verdict"`
	Findings []Finding `json:"findings,omitempty" yaml:"findings,omitempty"`
}

// NoRecommendation returns the explicit "nothing to do" state
func NoRecommendation() Recommendation {
	return Recommendation{Verdict: VerdictOK}
}

// IsOK reports whether no advisory applies
func (r Recommendation) IsOK() bool {
	return r.Verdict == VerdictOK
}

// Lines returns each finding rendered as a report line
func (r Recommendation) Lines() []string {
	lines := make([]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		lines = append(lines, f.String())
	}
	return lines
}

// String joins the findings with newlines, or returns the OK marker
func (r Recommendation) String() string {
	if r.IsOK() {
		return NoRecommendationsMarker
	}
	return strings.Join(r.Lines(), "\n")
}

// Count returns how many findings of the given kind are present
func (r Recommendation) Count(kind FindingKind) int {
	n := 0
	for _, f := range r.Findings {
		if f.Kind == kind {
			n++
		}
	}
	return n
}
