package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/younsl/rightsizer/internal/models"
	"github.com/younsl/rightsizer/pkg/aws"
	"github.com/younsl/rightsizer/pkg/config"
	"github.com/younsl/rightsizer/pkg/formatter"
	"github.com/younsl/rightsizer/pkg/logging"
	"github.com/younsl/rightsizer/pkg/metrics"
	"github.com/younsl/rightsizer/pkg/pricing"
	"github.com/younsl/rightsizer/pkg/recommend"
	"github.com/younsl/rightsizer/pkg/recordlog"
	"github.com/younsl/rightsizer/pkg/report"
	"github.com/younsl/rightsizer/pkg/summarize"
)

const documentPrompt = "\nEnter full path to a PPTX or PDF to summarize (or press Enter to skip): "

// run performs one analysis. Only configuration, AWS setup, inventory and
// cancellation errors are returned; everything after the report is built
// prints its outcome and continues.
func run(parent context.Context, cfg *config.Config, opts *options) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := os.Stdout
	log := logging.New(logging.VerbosityForLevel(cfg.LogLevel))
	runStart := time.Now()

	fmt.Fprintln(out, "\n AWS EC2 Instance Cost Optimization Tool")
	fmt.Fprintln(out, strings.Repeat("=", 60))

	awsCfg, err := aws.LoadConfig(ctx, cfg.Region)
	if err != nil {
		return err
	}

	accountID, err := aws.AccountID(ctx, aws.NewSTSClientFromConfig(awsCfg))
	if err != nil {
		log.V(1).Info("could not resolve account id", "error", err.Error())
	}

	prices := pricing.NewFromConfig(awsCfg, pricing.Options{
		Region:            cfg.Region,
		RequestsPerSecond: cfg.Pricing.RequestsPerSecond,
		CacheWithinRun:    cfg.Pricing.CacheWithinRun,
		Log:               log.WithName("pricing"),
	})
	fmt.Fprintln(out, prices.InitMessage())

	progress := newProgress(out)
	assembler := report.NewAssembler(
		aws.NewEC2ClientFromConfig(awsCfg),
		aws.NewCloudWatchClientFromConfig(awsCfg),
		recommend.NewEngine(prices, recommend.DefaultPolicy()),
		report.Options{
			LookbackDays: cfg.LookbackDays,
			Region:       cfg.Region,
			AccountID:    accountID,
			Log:          log.WithName("report"),
			OnProgress:   progress.Handle,
		},
	)

	rep, err := assembler.Assemble(ctx)
	if err != nil {
		progress.Abort()
		return err
	}
	progress.Done(len(rep.Rows))
	analysisDuration := time.Since(runStart)

	var storage *aws.S3Client
	if cfg.Storage != nil {
		storage = aws.NewS3ClientFromConfig(awsCfg, cfg.Storage.Bucket)
	}
	records := newRecordLog(cfg, awsCfg, out, log)

	reportPath := publishReport(ctx, out, cfg, rep, storage)
	formatter.PrintScanTime(out, runStart, analysisDuration)

	if opts.logRecords && !rep.IsEmpty() {
		createdAt := time.Now()
		for _, row := range rep.Rows {
			if !records.Put(ctx, models.NewRowRecord(row, rep.RunID, uuid.NewString(), createdAt)) && !records.Enabled() {
				break
			}
		}
	}

	formatter.PrintPricingAPIStats(out, prices.Stats(), prices.Location())

	if cfg.MetricsTextfile != "" {
		m := metrics.New()
		m.ObserveReport(rep)
		m.ObservePricing(prices.Stats().Totals())
		m.ObserveRun(time.Since(runStart), time.Now())
		if err := m.WriteTextfile(cfg.MetricsTextfile); err != nil {
			log.Error(err, "failed to write metrics textfile")
		}
	}

	workflow := summarize.NewWorkflow(newSummarizer(cfg, log), uploaderFor(storage), records, out)

	if reportPath != "" && !opts.skipSummary {
		if _, err := workflow.SummarizeReport(ctx, reportPath); err != nil {
			log.V(1).Info("report summary failed", "error", err.Error())
		}
	}

	documentPath := opts.document
	if documentPath == "" && !opts.noPrompt {
		documentPath = promptDocument(os.Stdin, out)
	}
	if documentPath != "" {
		if _, err := workflow.SummarizeDocument(ctx, documentPath); err != nil && !summarize.IsUnsupported(err) {
			log.V(1).Info("document summary failed", "path", documentPath, "error", err.Error())
		}
	}

	return nil
}

// publishReport writes, prints and uploads the report and returns the
// written path, or an empty string when nothing was written
func publishReport(ctx context.Context, out io.Writer, cfg *config.Config, rep *models.Report, storage *aws.S3Client) string {
	formatter.PrintSkipped(out, rep.Skipped)

	if rep.IsEmpty() {
		fmt.Fprintln(out, "\n No data to export..............")
		return ""
	}

	path, err := report.WriteFile(cfg.OutputDir, rep, report.Format(cfg.ReportFormat))
	if err != nil {
		fmt.Fprintf(out, "❌ Failed to write report: %v\n", err)
		return ""
	}

	fmt.Fprintln(out, "\n📄 Final Report:")
	formatter.PrintReportTable(out, rep, time.Now())
	fmt.Fprintf(out, "\n Report saved at: %s\n", path)

	if storage != nil {
		key, size, err := storage.UploadFile(ctx, path)
		formatter.PrintUpload(out, storage.URI(key), size, err)
	}

	return path
}

// newRecordLog builds the configured record log, or one that only prints a
// notice when none is configured or the backend cannot be created
func newRecordLog(cfg *config.Config, awsCfg awssdk.Config, out io.Writer, log logr.Logger) *recordlog.Log {
	writer, err := recordlog.NewWriter(cfg.RecordLog, awsCfg)
	if err != nil {
		log.Error(err, "failed to create record log writer")
		writer = nil
	}

	table := ""
	if cfg.RecordLog != nil {
		table = cfg.RecordLog.Table
	}
	return recordlog.New(writer, table, out)
}

// newSummarizer returns nil when no API key is configured
func newSummarizer(cfg *config.Config, log logr.Logger) summarize.Summarizer {
	if cfg.Summarizer == nil {
		return nil
	}
	return summarize.NewTogetherClient(*cfg.Summarizer, log)
}

// uploaderFor returns nil when no bucket is configured
func uploaderFor(storage *aws.S3Client) summarize.Uploader {
	if storage == nil {
		return nil
	}
	return storage
}

// promptDocument asks for a document path and returns the trimmed answer
func promptDocument(in io.Reader, out io.Writer) string {
	fmt.Fprint(out, documentPrompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}
