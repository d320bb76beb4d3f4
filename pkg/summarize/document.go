package summarize

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedType is returned for files that are neither .pptx nor .pdf
var ErrUnsupportedType = errors.New("file type not supported for summarization")

// DocumentKind is a supported document type
type DocumentKind string

const (
	KindPPTX DocumentKind = "pptx"
	KindPDF  DocumentKind = "pdf"
)

const drawingMLNamespace = "http://schemas.openxmlformats.org/drawingml/2006/main"

// DetectKind returns the document kind of name from its extension
func DetectKind(name string) (DocumentKind, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pptx":
		return KindPPTX, nil
	case ".pdf":
		return KindPDF, nil
	default:
		return "", ErrUnsupportedType
	}
}

// summarySuffixes are replaced by _summary.txt when deriving a summary path
var summarySuffixes = []string{".csv", ".json", ".yaml", ".pdf", ".pptx"}

// SummaryPath returns the path the summary of path is written to
func SummaryPath(path string) string {
	ext := filepath.Ext(path)
	for _, suffix := range summarySuffixes {
		if strings.EqualFold(ext, suffix) {
			return strings.TrimSuffix(path, ext) + "_summary.txt"
		}
	}
	return path + "_summary.txt"
}

// ExtractFile reads the text content of a .pptx or .pdf file
func ExtractFile(path string) (string, error) {
	kind, err := DetectKind(path)
	if err != nil {
		return "", err
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return ExtractText(kind, file, info.Size())
}

// ExtractBytes reads the text content of an in-memory document
func ExtractBytes(kind DocumentKind, data []byte) (string, error) {
	return ExtractText(kind, bytes.NewReader(data), int64(len(data)))
}

// ExtractText reads the text content of a document of the given kind
func ExtractText(kind DocumentKind, r io.ReaderAt, size int64) (string, error) {
	switch kind {
	case KindPPTX:
		return extractPPTX(r, size)
	case KindPDF:
		return extractPDF(r, size)
	default:
		return "", ErrUnsupportedType
	}
}

type slidePart struct {
	number int
	file   *zip.File
}

// extractPPTX returns the paragraphs of every slide, in slide order,
// separated by newlines
func extractPPTX(r io.ReaderAt, size int64) (string, error) {
	archive, err := zip.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("failed to open presentation: %w", err)
	}

	var slides []slidePart
	for _, f := range archive.File {
		name := f.Name
		if !strings.HasPrefix(name, "ppt/slides/slide") || !strings.HasSuffix(name, ".xml") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, "ppt/slides/slide"), ".xml"))
		if err != nil {
			continue
		}
		slides = append(slides, slidePart{number: n, file: f})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].number < slides[j].number })

	var paragraphs []string
	for _, slide := range slides {
		texts, err := slideParagraphs(slide.file)
		if err != nil {
			return "", fmt.Errorf("failed to read slide %d: %w", slide.number, err)
		}
		paragraphs = append(paragraphs, texts...)
	}

	return strings.Join(paragraphs, "\n"), nil
}

func slideParagraphs(f *zip.File) ([]string, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var (
		paragraphs []string
		current    strings.Builder
		inText     bool
	)

	decoder := xml.NewDecoder(rc)
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space == drawingMLNamespace && t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			if t.Name.Space != drawingMLNamespace {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if text := strings.TrimSpace(current.String()); text != "" {
					paragraphs = append(paragraphs, text)
				}
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}

func extractPDF(r io.ReaderAt, size int64) (string, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}
	return buf.String(), nil
}
