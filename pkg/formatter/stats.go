package formatter

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/younsl/rightsizer/pkg/pricing"
)

// PrintPricingAPIStats prints the statistics of pricing API calls
func PrintPricingAPIStats(out io.Writer, stats *pricing.Stats, location string) {
	instanceTypes := stats.InstanceTypes()
	if len(instanceTypes) == 0 {
		return
	}

	snapshot := stats.Snapshot()

	fmt.Fprintln(out, "\n## AWS Pricing API Call Statistics")

	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)

	fmt.Fprintln(w, "INSTANCE TYPE\tLOCATION\tAPI CALLS\tSUCCESS\tFAILURE\tCACHE HITS\tSUCCESS RATE")

	for _, instanceType := range instanceTypes {
		statValues := snapshot[instanceType]
		success := statValues[pricing.StatSuccess]
		failure := statValues[pricing.StatFailure]
		cache := statValues[pricing.StatCache]
		total := success + failure

		successRate := 0.0
		if total > 0 {
			successRate = float64(success) / float64(total) * 100.0
		}

		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%.1f%%\n",
			instanceType,
			location,
			total,
			success,
			failure,
			cache,
			successRate,
		)
	}

	w.Flush()
}
