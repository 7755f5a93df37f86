package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxSize is the largest accepted document, inclusive.
const MaxSize int64 = 10 << 20

const (
	MimePDF  = "application/pdf"
	MimeDOC  = "application/msword"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var extensions = map[string]string{
	".pdf":  MimePDF,
	".doc":  MimeDOC,
	".docx": MimeDOCX,
}

// Types whose detection says nothing about the document format.
var genericTypes = map[string]struct{}{
	"":                          {},
	"application/octet-stream":  {},
	"application/zip":           {},
	"application/x-ole-storage": {},
}

// Allowed reports whether mimeType is one of the accepted document types.
func Allowed(mimeType string) bool {
	switch normalizeMime(mimeType) {
	case MimePDF, MimeDOC, MimeDOCX:
		return true
	default:
		return false
	}
}

// Opener returns a fresh reader over the document bytes on every call.
type Opener func() (io.ReadCloser, error)

// Candidate is a file offered for staging, as selected or dropped by the user.
type Candidate struct {
	Name     string
	Size     int64
	MimeType string
	Open     Opener
}

// CandidateFile is a validated, staged document.
type CandidateFile struct {
	Name     string
	Size     int64
	MimeType string

	open Opener
}

// Open returns the document bytes.
func (f *CandidateFile) Open() (io.ReadCloser, error) {
	if f == nil || f.open == nil {
		return nil, errors.New("staged file has no content")
	}
	return f.open()
}

// SizeMB formats the size the way it is shown next to the staged file.
func (f *CandidateFile) SizeMB() string {
	return fmt.Sprintf("%.2f MB", float64(f.Size)/1024/1024)
}

// FromBytes builds a candidate from in-memory content.
func FromBytes(name, mimeType string, data []byte) Candidate {
	return Candidate{
		Name:     name,
		Size:     int64(len(data)),
		MimeType: mimeType,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// FromPath builds a candidate from a file on disk. The MIME type is sniffed
// from content; when the content is inconclusive the extension decides.
func FromPath(path string) (Candidate, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Candidate{}, err
	}

	if info.IsDir() {
		return Candidate{}, fmt.Errorf("%s is a directory", path)
	}

	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return Candidate{}, fmt.Errorf("detecting type of %s: %w", path, err)
	}

	return Candidate{
		Name:     filepath.Base(path),
		Size:     info.Size(),
		MimeType: resolveMime(detected.String(), path),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// resolveMime falls back to the extension when the declared type is generic.
func resolveMime(declared, name string) string {
	declared = normalizeMime(declared)
	if _, generic := genericTypes[declared]; !generic {
		return declared
	}

	if byExt, ok := extensions[strings.ToLower(filepath.Ext(name))]; ok {
		return byExt
	}

	return declared
}

func normalizeMime(s string) string {
	s, _, _ = strings.Cut(s, ";")
	return strings.ToLower(strings.TrimSpace(s))
}
