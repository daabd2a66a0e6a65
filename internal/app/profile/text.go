package profile

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ExtractText returns the plain text of a resume. Images have no local text
// layer and always yield "".
func ExtractText(kind FileKind, data []byte) (string, error) {
	switch kind {
	case KindTxt:
		return sanitizeUTF8(string(data)), nil
	case KindPDF:
		return extractPDFText(data)
	case KindDocx:
		return extractDocxText(data)
	case KindDoc:
		return extractDocText(data), nil
	case KindImage:
		return "", nil
	default:
		return "", fmt.Errorf("no text extractor for kind %q", kind)
	}
}

// extractPDFText turns a panic inside the pdf reader, which malformed files
// trigger, into an error.
func extractPDFText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("failed to read pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sanitizeUTF8(sb.String()), nil
}

var (
	paragraphEnd = regexp.MustCompile(`</w:p>`)
	xmlTag       = regexp.MustCompile(`<[^>]+>`)
)

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	// GetContent returns document.xml, not text.
	content := doc.Editable().GetContent()
	content = paragraphEnd.ReplaceAllString(content, "\n")
	content = xmlTag.ReplaceAllString(content, "")
	content = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'").Replace(content)
	return sanitizeUTF8(content), nil
}

// extractDocText scans a legacy binary .doc for runs of printable text.
func extractDocText(data []byte) string {
	const minRun = 4

	var (
		sb  strings.Builder
		run []byte
	)
	flush := func() {
		if len(run) >= minRun {
			sb.Write(run)
			sb.WriteByte('\n')
		}
		run = run[:0]
	}
	for _, b := range data {
		if b == '\t' || (b >= 0x20 && b < 0x7f) {
			run = append(run, b)
			continue
		}
		flush()
	}
	flush()
	return sb.String()
}

func sanitizeUTF8(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "�")
	}
	return strings.TrimFunc(s, unicode.IsSpace)
}
