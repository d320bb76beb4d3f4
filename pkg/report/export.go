package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/younsl/rightsizer/internal/models"
	"github.com/younsl/rightsizer/pkg/utils"
)

// Format is a report file format
type Format string

const (
	// FormatCSV writes one row per instance
	FormatCSV Format = "csv"
	// FormatJSON writes the full report as JSON
	FormatJSON Format = "json"
	// FormatYAML writes the full report as YAML
	FormatYAML Format = "yaml"
)

// FilePrefix is the base name of every report file
const FilePrefix = "aws_cost_optimization_report"

// CSVHeader lists the CSV report columns
var CSVHeader = []string{"InstanceId", "Name", "InstanceType", "AvgCPU", "MaxCPU", "Recommendations"}

// IsUnknown reports whether f is not a supported format
func (f Format) IsUnknown() bool {
	switch f {
	case FormatCSV, FormatJSON, FormatYAML:
		return false
	default:
		return true
	}
}

// SupportedFormats returns the supported format names
func SupportedFormats() []string {
	return []string{
		string(FormatCSV),
		string(FormatJSON),
		string(FormatYAML),
	}
}

// FileName returns the report file name for a run generated at t
func FileName(t time.Time, format Format) string {
	return fmt.Sprintf("%s_%s.%s", FilePrefix, utils.ReportTimestamp(t), format)
}

// Writer serializes a report in one format
type Writer struct {
	format Format
	output io.Writer
}

// NewWriter creates a Writer. Unknown formats are rejected.
func NewWriter(format Format, output io.Writer) (*Writer, error) {
	if format.IsUnknown() {
		return nil, fmt.Errorf("unsupported report format %q, expected one of %v", format, SupportedFormats())
	}
	return &Writer{
		format: format,
		output: output,
	}, nil
}

// Serialize writes report to the output
func (w *Writer) Serialize(report *models.Report) error {
	switch w.format {
	case FormatCSV:
		return w.serializeCSV(report)
	case FormatJSON:
		return w.serializeJSON(report)
	case FormatYAML:
		return w.serializeYAML(report)
	default:
		return fmt.Errorf("unsupported format: %s", w.format)
	}
}

func (w *Writer) serializeCSV(report *models.Report) error {
	cw := csv.NewWriter(w.output)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range report.Rows {
		record := []string{
			row.InstanceID,
			row.Name,
			row.InstanceType,
			strconv.FormatFloat(row.AvgCPU, 'f', 1, 64),
			strconv.FormatFloat(row.MaxCPU, 'f', 1, 64),
			row.Recommendations(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", row.InstanceID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to serialize to CSV: %w", err)
	}
	return nil
}

func (w *Writer) serializeJSON(report *models.Report) error {
	encoder := json.NewEncoder(w.output)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to serialize to JSON: %w", err)
	}
	return nil
}

func (w *Writer) serializeYAML(report *models.Report) error {
	encoder := yaml.NewEncoder(w.output)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to serialize to YAML: %w", err)
	}
	return encoder.Close()
}

// WriteFile saves report into dir and returns the file path.
// No file is left behind when serialization fails.
func WriteFile(dir string, report *models.Report, format Format) (string, error) {
	writer, err := NewWriter(format, io.Discard)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, FileName(report.GeneratedAt, format))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	writer.output = file

	if err := writer.Serialize(report); err != nil {
		file.Close()
		os.Remove(path)
		return "", err
	}

	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close report file: %w", err)
	}

	return path, nil
}
