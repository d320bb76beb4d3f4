package formatter

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/younsl/rightsizer/internal/models"
)

const maxNameWidth = 32

// PrintReportTable prints the report rows in inventory order. Rows with several
// recommendations continue on indented lines below the instance.
func PrintReportTable(out io.Writer, report *models.Report, now time.Time) {
	if report.IsEmpty() {
		fmt.Fprintln(out, "No instances with metrics found.")
		return
	}

	// kubectl style tabwriter
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)

	fmt.Fprintln(w, "INSTANCE ID\tNAME\tTYPE\tAGE\tAVG CPU\tMAX CPU\tRECOMMENDATIONS")

	for _, row := range report.Rows {
		lines := []string{models.NoRecommendationsMarker}
		if !row.Recommendation.IsOK() {
			lines = row.Recommendation.Lines()
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f%%\t%.1f%%\t%s\n",
			row.InstanceID,
			getInstanceName(row.Name),
			row.InstanceType,
			instanceAge(row.LaunchTime, now),
			row.AvgCPU,
			row.MaxCPU,
			lines[0],
		)
		for _, line := range lines[1:] {
			fmt.Fprintf(w, "\t\t\t\t\t\t%s\n", line)
		}
	}

	printTotals(w, report)

	w.Flush()
}

// printTotals prints the summary information at the bottom of the table
func printTotals(w io.Writer, report *models.Report) {
	actionable := 0
	var hourlySavings float64

	for _, row := range report.Rows {
		if row.Recommendation.IsOK() {
			continue
		}
		actionable++
		hourlySavings += BestHourlySavings(row.Recommendation)
	}

	fmt.Fprintf(w, "Total:\t%d analyzed\t%d skipped\t\t\t\t%d actionable, up to $%.2f/hr\n",
		len(report.Rows),
		len(report.Skipped),
		actionable,
		hourlySavings,
	)
}

// BestHourlySavings returns the largest hourly saving among the downgrade findings
func BestHourlySavings(rec models.Recommendation) float64 {
	best := 0.0
	for _, f := range rec.Findings {
		if f.Kind == models.FindingDowngrade && f.HourlySavings > best {
			best = f.HourlySavings
		}
	}
	return best
}

// PrintSkipped lists instances left out of the report
func PrintSkipped(out io.Writer, skipped []models.SkippedInstance) {
	if len(skipped) == 0 {
		return
	}

	fmt.Fprintln(out, "\n## Skipped Instances")

	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "INSTANCE ID\tREASON\tERROR")
	for _, s := range skipped {
		errText := s.Error
		if errText == "" {
			errText = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.InstanceID, s.Reason, errText)
	}
	w.Flush()
}
