package summarize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/younsl/rightsizer/internal/models"
	"github.com/younsl/rightsizer/pkg/formatter"
)

// Uploader stores local files in the object store
type Uploader interface {
	UploadFile(ctx context.Context, path string) (key string, size int, err error)
	URI(key string) string
}

// RecordLog stores summary records
type RecordLog interface {
	Enabled() bool
	Put(ctx context.Context, record models.Record) bool
}

// Workflow summarizes files, writes the summary next to them and publishes it.
// Every failure is printed to the output and none is returned as fatal.
type Workflow struct {
	summarizer Summarizer
	uploader   Uploader
	records    RecordLog
	out        io.Writer
	now        func() time.Time
}

// NewWorkflow creates a Workflow. summarizer, uploader and records may be nil.
func NewWorkflow(summarizer Summarizer, uploader Uploader, records RecordLog, out io.Writer) *Workflow {
	return &Workflow{
		summarizer: summarizer,
		uploader:   uploader,
		records:    records,
		out:        out,
		now:        time.Now,
	}
}

// Result describes a written summary
type Result struct {
	SummaryPath string
	Summary     string
}

// SummarizeReport summarizes a report file and prints the summary
func (w *Workflow) SummarizeReport(ctx context.Context, path string) (*Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w.out, "❌ Failed to read %s: %v\n", path, err)
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	summary := w.summarize(ctx, string(content))
	if strings.TrimSpace(summary) == "" {
		fmt.Fprintln(w.out, "\n[!] Summary not generated.")
		return nil, nil
	}

	summaryPath := SummaryPath(path)
	if err := os.WriteFile(summaryPath, []byte(summary), 0o644); err != nil {
		fmt.Fprintf(w.out, "❌ Failed to write summary: %v\n", err)
		return nil, fmt.Errorf("failed to write summary: %w", err)
	}

	fmt.Fprintln(w.out, "\n====== AI SUMMARY OF FILE ======")
	fmt.Fprintln(w.out, summary)
	fmt.Fprintf(w.out, "\nSummary also saved at: %s\n\n", summaryPath)

	w.upload(ctx, summaryPath)
	w.record(ctx, models.NewSummaryRecord(filepath.Base(summaryPath), "", summary, uuid.NewString(), w.now()))

	return &Result{SummaryPath: summaryPath, Summary: summary}, nil
}

// SummarizeDocument extracts the text of a .pptx or .pdf file and summarizes it
func (w *Workflow) SummarizeDocument(ctx context.Context, path string) (*Result, error) {
	kind, err := DetectKind(path)
	if err != nil {
		fmt.Fprintln(w.out, "File type not supported for summarization.")
		return nil, err
	}

	text, err := ExtractFile(path)
	if err != nil {
		fmt.Fprintf(w.out, "❌ Failed to extract text from %s: %v\n", path, err)
		return nil, err
	}

	summary := w.summarize(ctx, text)
	if strings.TrimSpace(summary) == "" {
		fmt.Fprintln(w.out, "\n[!] Summary not generated.")
		return nil, nil
	}

	summaryPath := SummaryPath(path)
	if err := os.WriteFile(summaryPath, []byte(summary), 0o644); err != nil {
		fmt.Fprintf(w.out, "❌ Failed to write summary: %v\n", err)
		return nil, fmt.Errorf("failed to write summary: %w", err)
	}
	fmt.Fprintf(w.out, "%s summary written to: %s\n", strings.ToUpper(string(kind)), summaryPath)

	w.upload(ctx, summaryPath)
	w.record(ctx, models.NewSummaryRecord(filepath.Base(path), filepath.Base(summaryPath), summary, uuid.NewString(), w.now()))

	return &Result{SummaryPath: summaryPath, Summary: summary}, nil
}

func (w *Workflow) summarize(ctx context.Context, text string) string {
	if w.summarizer == nil {
		fmt.Fprintln(w.out, "No Together API key set; skipping summarization.")
		return ""
	}

	summary, err := w.summarizer.Summarize(ctx, text)
	if err != nil {
		fmt.Fprintf(w.out, "❌ Summarization failed: %v\n", err)
		return ""
	}
	return summary
}

func (w *Workflow) upload(ctx context.Context, path string) {
	if w.uploader == nil {
		return
	}
	key, size, err := w.uploader.UploadFile(ctx, path)
	formatter.PrintUpload(w.out, w.uploader.URI(key), size, err)
}

func (w *Workflow) record(ctx context.Context, record models.Record) {
	if w.records == nil || !w.records.Enabled() {
		return
	}
	w.records.Put(ctx, record)
}

// IsUnsupported reports whether err means the document type cannot be summarized
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupportedType)
}
