package profile_test

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/PabloGalante/neogiator-agent/internal/app/profile"
)

var resumeLines = []string{
	"Jane Doe",
	"jane@example.com",
	"5 years of experience with Python",
}

// buildPDF writes a one-page PDF whose content stream shows each line.
// With misplacedCatalog the xref entry of the catalog points at the pages
// object, which the pdf reader only notices once it resolves the root.
func buildPDF(t *testing.T, lines []string, misplacedCatalog bool) []byte {
	t.Helper()

	var content strings.Builder
	content.WriteString("BT\n")
	for i, l := range lines {
		if i > 0 {
			content.WriteString("T*\n")
		}
		fmt.Fprintf(&content, "(%s) Tj\n", l)
	}
	content.WriteString("ET\n")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", content.Len(), content.String()),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	if misplacedCatalog {
		offsets[0] = offsets[1]
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

// buildDocx zips the two parts the docx reader requires.
func buildDocx(t *testing.T, lines []string) []byte {
	t.Helper()

	var body strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&body, "<w:p><w:r><w:t>%s</w:t></w:r></w:p>", l)
	}
	files := map[string]string{
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body.String() + `</w:body></w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(data)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestExtractDocumentKinds(t *testing.T) {
	tests := []struct {
		kind string
		data []byte
	}{
		{"pdf", buildPDF(t, resumeLines, false)},
		{"docx", buildDocx(t, resumeLines)},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			ex := profile.NewExtractor(nil, 0)

			p, err := ex.Extract(context.Background(), tt.data, tt.kind)
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}
			if p.Name != "Jane Doe" {
				t.Errorf("name = %q", p.Name)
			}
			if p.Email != "jane@example.com" {
				t.Errorf("email = %q", p.Email)
			}
			if p.YearsExperience != 5 {
				t.Errorf("years_experience = %d", p.YearsExperience)
			}
		})
	}
}

func TestExtractTextCorruptedPDF(t *testing.T) {
	data := buildPDF(t, resumeLines, true)

	text, err := profile.ExtractText(profile.KindPDF, data)
	if err == nil {
		t.Fatalf("expected an error, got text %q", text)
	}
	if text != "" {
		t.Errorf("expected no text, got %q", text)
	}
}

func TestExtractCorruptedPDFFallsBack(t *testing.T) {
	inputs := map[string][]byte{
		"misplaced catalog": buildPDF(t, resumeLines, true),
		"truncated":         buildPDF(t, resumeLines, false)[:120],
		"garbage":           []byte("%PDF-1.4\nnot really a pdf\n%%EOF\n"),
	}

	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			ex := profile.NewExtractor(nil, 0)

			p, err := ex.Extract(context.Background(), data, "pdf")
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}
			if p.Email != "" || p.YearsExperience != 0 {
				t.Errorf("expected a sparse profile, got %+v", p)
			}
		})
	}
}

func TestExtractTextDocxRejectsNonZip(t *testing.T) {
	if _, err := profile.ExtractText(profile.KindDocx, []byte("plain text")); err == nil {
		t.Fatal("expected an error for a non-zip docx")
	}
}
