package summarize

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slideXML(paragraphs ...string) string {
	var body bytes.Buffer
	for _, p := range paragraphs {
		fmt.Fprintf(&body, `<a:p><a:r><a:t>%s</a:t></a:r></a:p>`, p)
	}
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
<p:cSld><p:spTree><p:sp><p:txBody>` + body.String() + `<a:p></a:p></p:txBody></p:sp></p:spTree></p:cSld></p:sld>`
}

// buildPPTX writes a minimal presentation archive with the given slide files
func buildPPTX(t *testing.T, slides map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range slides {
		f, err := zw.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractBytes_PPTX(t *testing.T) {
	data := buildPPTX(t, map[string]string{
		"ppt/slides/slide10.xml":            slideXML("Tenth"),
		"ppt/slides/slide2.xml":             slideXML("Second", "More"),
		"ppt/slides/slide1.xml":             slideXML("Quarterly review"),
		"ppt/slides/_rels/slide1.xml.rels":  `<Relationships/>`,
		"ppt/slideLayouts/slideLayout1.xml": slideXML("Layout text"),
	})

	text, err := ExtractBytes(KindPPTX, data)
	require.NoError(t, err)
	assert.Equal(t, "Quarterly review\nSecond\nMore\nTenth", text)
}

func TestExtractBytes_InvalidPPTX(t *testing.T) {
	_, err := ExtractBytes(KindPPTX, []byte("not a zip"))
	assert.Error(t, err)
}

func TestExtractBytes_InvalidPDF(t *testing.T) {
	_, err := ExtractBytes(KindPDF, []byte("plain text, not a PDF document"))
	assert.Error(t, err)
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name    string
		want    DocumentKind
		wantErr bool
	}{
		{name: "deck.pptx", want: KindPPTX},
		{name: "DECK.PPTX", want: KindPPTX},
		{name: "notes.pdf", want: KindPDF},
		{name: "notes.docx", wantErr: true},
		{name: "noext", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := DetectKind(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedType)
				assert.True(t, IsUnsupported(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestSummaryPath(t *testing.T) {
	assert.Equal(t, "/tmp/aws_report_2024-03-15_09-05_summary.txt", SummaryPath("/tmp/aws_report_2024-03-15_09-05.csv"))
	assert.Equal(t, "deck_summary.txt", SummaryPath("deck.pptx"))
	assert.Equal(t, "notes_summary.txt", SummaryPath("notes.PDF"))
	assert.Equal(t, "report_summary.txt", SummaryPath("report.yaml"))
	assert.Equal(t, "notes.txt_summary.txt", SummaryPath("notes.txt"))
}

func TestExtractFile_PPTX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.pptx")
	require.NoError(t, os.WriteFile(path, buildPPTX(t, map[string]string{
		"ppt/slides/slide1.xml": slideXML("Hello"),
	}), 0o600))

	text, err := ExtractFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Hello", text)
}
