package profile

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PabloGalante/neogiator-agent/internal/domain"
)

// FileKind is the declared format of an uploaded resume.
type FileKind string

const (
	KindPDF   FileKind = "pdf"
	KindDoc   FileKind = "doc"
	KindDocx  FileKind = "docx"
	KindTxt   FileKind = "txt"
	KindImage FileKind = "image"
)

var kindAliases = map[string]FileKind{
	"pdf":             KindPDF,
	"application/pdf": KindPDF,

	"doc":                KindDoc,
	"application/msword": KindDoc,

	"docx": KindDocx,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": KindDocx,

	"txt":        KindTxt,
	"text":       KindTxt,
	"text/plain": KindTxt,

	"image":      KindImage,
	"png":        KindImage,
	"jpg":        KindImage,
	"jpeg":       KindImage,
	"image/png":  KindImage,
	"image/jpeg": KindImage,
}

// ParseFileKind accepts a kind name, a file extension or a MIME type.
func ParseFileKind(s string) (FileKind, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.TrimPrefix(key, ".")
	if k, ok := kindAliases[key]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, s)
}

// KindFromFilename derives the kind from a file name's extension.
func KindFromFilename(name string) (FileKind, error) {
	return ParseFileKind(filepath.Ext(name))
}

// imageMIME guesses the MIME type of image bytes for the generator.
func imageMIME(data []byte) string {
	if len(data) >= 8 && string(data[1:4]) == "PNG" {
		return "image/png"
	}
	return "image/jpeg"
}
