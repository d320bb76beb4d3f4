package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/younsl/rightsizer/internal/version"
	"github.com/younsl/rightsizer/pkg/config"
	"github.com/younsl/rightsizer/pkg/report"
)

// options holds the command line flags
type options struct {
	configFile  string
	region      string
	days        int
	format      string
	outputDir   string
	logRecords  bool
	document    string
	noPrompt    bool
	skipSummary bool
	verbose     bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "rightsizer",
		Short: "CLI tool to find oversized EC2 instances",
		Long: `rightsizer analyzes CPU utilization of running EC2 instances,
suggests cheaper instance types in the same family and writes a report.`,
		Version:       version.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.LoadOptions{
				ConfigFile: opts.configFile,
				EnvFile:    config.DefaultEnvFile,
				Overrides:  overrides(cmd, opts),
			})
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, opts)
		},
	}
	rootCmd.SetVersionTemplate("rightsizer version {{.Version}}\n")

	flags := rootCmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "Path to a YAML config file")
	flags.StringVarP(&opts.region, "region", "r", config.DefaultRegion, "AWS region to analyze")
	flags.IntVarP(&opts.days, "days", "d", config.DefaultLookbackDays, "Number of days of CPU metrics to analyze")
	flags.StringVarP(&opts.format, "format", "f", config.DefaultReportFormat,
		fmt.Sprintf("Report format (%s)", strings.Join(report.SupportedFormats(), ", ")))
	flags.StringVarP(&opts.outputDir, "output-dir", "o", ".", "Directory the report is written to")
	flags.BoolVar(&opts.logRecords, "log-records", false, "Write every report row to the record log")
	flags.StringVar(&opts.document, "document", "", "Summarize a local .pptx or .pdf file after the analysis")
	flags.BoolVar(&opts.noPrompt, "no-prompt", false, "Do not prompt for a document to summarize")
	flags.BoolVar(&opts.skipSummary, "skip-summary", false, "Do not summarize the report")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	return rootCmd
}

// overrides returns config values for the flags set on the command line,
// so unset flags do not shadow the config file or environment
func overrides(cmd *cobra.Command, opts *options) map[string]any {
	values := map[string]any{}
	flags := cmd.Flags()

	if flags.Changed("region") {
		values["region"] = opts.region
	}
	if flags.Changed("days") {
		values["lookbackDays"] = opts.days
	}
	if flags.Changed("format") {
		values["reportFormat"] = opts.format
	}
	if flags.Changed("output-dir") {
		values["outputDir"] = opts.outputDir
	}
	if opts.verbose {
		values["logLevel"] = "debug"
	}
	return values
}

