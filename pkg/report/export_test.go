package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/younsl/rightsizer/internal/models"
)

func sampleReport() *models.Report {
	return &models.Report{
		RunID:        "run-1",
		GeneratedAt:  time.Date(2024, 3, 15, 9, 5, 0, 0, time.UTC),
		Region:       "us-east-1",
		LookbackDays: 14,
		Scanned:      2,
		Rows: []models.ReportRow{
			{
				InstanceID:   "i-a",
				Name:         "api",
				InstanceType: "m5.large",
				AvgCPU:       12.3,
				MaxCPU:       35,
				Recommendation: models.Recommendation{
					Verdict: models.VerdictAction,
					Findings: []models.Finding{
						{Kind: models.FindingUnderutilized, MaxCPU: 35},
						{Kind: models.FindingDowngrade, CandidateType: "m5.medium", HourlySavings: 0.048, SavingsPercent: 50},
					},
				},
			},
			{
				InstanceID:     "i-c",
				InstanceType:   "c5.large",
				AvgCPU:         50,
				MaxCPU:         80,
				Recommendation: models.NoRecommendation(),
			},
		},
	}
}

func TestFileName(t *testing.T) {
	ts := time.Date(2024, 3, 15, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "aws_cost_optimization_report_2024-03-15_09-05.csv", FileName(ts, FormatCSV))
	assert.Equal(t, "aws_cost_optimization_report_2024-03-15_09-05.yaml", FileName(ts, FormatYAML))
}

func TestWriter_CSV(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(FormatCSV, &buf)
	require.NoError(t, err)
	require.NoError(t, w.Serialize(sampleReport()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, CSVHeader, rows[0])
	assert.Equal(t, []string{
		"i-a", "api", "m5.large", "12.3", "35.0",
		"Underutilized (Max CPU: 35.0%)\n⬇️ Suggest: m5.medium → Save $0.05/hr (50.0%)",
	}, rows[1])
	assert.Equal(t, []string{"i-c", "", "c5.large", "50.0", "80.0", "✅ No recommendations"}, rows[2])
}

func TestWriter_CSVEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(FormatCSV, &buf)
	require.NoError(t, err)
	require.NoError(t, w.Serialize(&models.Report{}))

	assert.Equal(t, "InstanceId,Name,InstanceType,AvgCPU,MaxCPU,Recommendations\n", buf.String())
}

func TestWriter_JSONAndYAML(t *testing.T) {
	var jsonBuf bytes.Buffer
	w, err := NewWriter(FormatJSON, &jsonBuf)
	require.NoError(t, err)
	require.NoError(t, w.Serialize(sampleReport()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &decoded))
	assert.Equal(t, "run-1", decoded["runId"])
	assert.Len(t, decoded["rows"], 2)

	var yamlBuf bytes.Buffer
	w, err = NewWriter(FormatYAML, &yamlBuf)
	require.NoError(t, err)
	require.NoError(t, w.Serialize(sampleReport()))

	var decodedYAML map[string]any
	require.NoError(t, yaml.Unmarshal(yamlBuf.Bytes(), &decodedYAML))
	assert.Equal(t, "us-east-1", decodedYAML["region"])
}

func TestNewWriter_UnknownFormat(t *testing.T) {
	_, err := NewWriter(Format("xml"), &bytes.Buffer{})
	assert.Error(t, err)
	assert.True(t, Format("xml").IsUnknown())
	assert.Equal(t, []string{"csv", "json", "yaml"}, SupportedFormats())
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteFile(dir, sampleReport(), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "aws_cost_optimization_report_2024-03-15_09-05.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "i-a,api,m5.large,12.3,35.0")
}

func TestWriteFile_RemovesPartialFileOnSerializeError(t *testing.T) {
	dir := t.TempDir()
	report := sampleReport()
	report.Rows[0].AvgCPU = math.NaN()

	_, err := WriteFile(dir, report, FormatJSON)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteFile_UnknownFormatCreatesNothing(t *testing.T) {
	dir := t.TempDir()

	_, err := WriteFile(dir, sampleReport(), Format("xml"))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
