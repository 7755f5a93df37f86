package upload

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/notify"
)

func sized(name, mimeType string, size int64) Candidate {
	return Candidate{
		Name:     name,
		Size:     size,
		MimeType: mimeType,
		Open: func() (io.ReadCloser, error) {
			return nil, errors.New("not readable in tests")
		},
	}
}

func TestStageSizeLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		size   int64
		reject bool
	}{
		{name: "exactly at limit", size: 10485760},
		{name: "one byte over", size: 10485761, reject: true},
		{name: "small", size: 2 << 20},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gate := NewGate(nil, zap.NewNop())
			file, err := gate.Stage(sized("resume.pdf", MimePDF, tt.size))

			if !tt.reject {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if file.Size != tt.size {
					t.Fatalf("unexpected size: %d", file.Size)
				}
				return
			}

			var rejection *RejectionError
			if !errors.As(err, &rejection) || rejection.Reason != TooLarge {
				t.Fatalf("expected TooLarge, got %v", err)
			}
			if file != nil {
				t.Fatalf("expected no file on rejection")
			}
		})
	}
}

func TestStageTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		file     string
		mimeType string
		expect   string
		reason   Reason
	}{
		{name: "pdf", file: "cv.pdf", mimeType: MimePDF, expect: MimePDF},
		{name: "doc", file: "cv.doc", mimeType: MimeDOC, expect: MimeDOC},
		{name: "docx", file: "cv.docx", mimeType: MimeDOCX, expect: MimeDOCX},
		{name: "params are ignored", file: "cv.pdf", mimeType: "Application/PDF; x=1", expect: MimePDF},
		{name: "generic type falls back to extension", file: "cv.docx", mimeType: "application/octet-stream", expect: MimeDOCX},
		{name: "missing type falls back to extension", file: "CV.PDF", mimeType: "", expect: MimePDF},
		{name: "text file", file: "notes.txt", mimeType: "text/plain", reason: UnsupportedType},
		{name: "text declared as pdf extension", file: "cv.pdf", mimeType: "text/plain", reason: UnsupportedType},
		{name: "unknown generic", file: "archive.zip", mimeType: "application/zip", reason: UnsupportedType},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			file, err := NewGate(nil, nil).Stage(sized(tt.file, tt.mimeType, 1024))
			if tt.reason == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if file.MimeType != tt.expect {
					t.Fatalf("expected %s, got %s", tt.expect, file.MimeType)
				}
				return
			}

			var rejection *RejectionError
			if !errors.As(err, &rejection) || rejection.Reason != tt.reason {
				t.Fatalf("expected %s, got %v", tt.reason, err)
			}
		})
	}
}

func TestStageMultipleFiles(t *testing.T) {
	rec := &notify.Recorder{}
	gate := NewGate(rec, zap.NewNop())

	_, err := gate.Stage(sized("a.pdf", MimePDF, 10), sized("b.pdf", MimePDF, 10))

	var rejection *RejectionError
	if !errors.As(err, &rejection) || rejection.Reason != MultipleFiles {
		t.Fatalf("expected MultipleFiles, got %v", err)
	}
	if rejection.Count != 2 {
		t.Fatalf("expected count 2, got %d", rejection.Count)
	}

	events := rec.Events()
	if len(events) != 1 || events[0].Kind != notify.FileRejected || events[0].Severity != notify.Error {
		t.Fatalf("expected a single rejection notification, got %+v", events)
	}
	if events[0].Message != rejection.Message() {
		t.Fatalf("unexpected notification text: %q", events[0].Message)
	}
}

func TestStageNoFile(t *testing.T) {
	rec := &notify.Recorder{}
	if _, err := NewGate(rec, nil).Stage(); !errors.Is(err, ErrNoFile) {
		t.Fatalf("expected ErrNoFile, got %v", err)
	}
	if len(rec.Events()) != 0 {
		t.Fatalf("did not expect notifications, got %+v", rec.Events())
	}
}

func TestStageNotifiesAcceptance(t *testing.T) {
	rec := &notify.Recorder{}
	if _, err := NewGate(rec, nil).Stage(sized("cv.pdf", MimePDF, 10)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events := rec.Events()
	if len(events) != 1 || events[0].Kind != notify.FileAccepted || events[0].Message != acceptedMessage {
		t.Fatalf("unexpected notifications: %+v", events)
	}
}

func TestRejectionMessages(t *testing.T) {
	if got := (&RejectionError{Reason: TooLarge}).Message(); got != "File is too large (max 10 MB)" {
		t.Fatalf("unexpected too large message: %q", got)
	}
	if got := (&RejectionError{Reason: UnsupportedType}).Message(); got != wrongTypeMessage {
		t.Fatalf("unexpected type message: %q", got)
	}
	if got := (&RejectionError{Reason: MultipleFiles, Count: 2}).Message(); got != "Please upload a PDF or DOCX file" {
		t.Fatalf("unexpected multiple files message: %q", got)
	}
}

func TestFromBytes(t *testing.T) {
	file, err := NewGate(nil, nil).Stage(FromBytes("cv.pdf", MimePDF, []byte("%PDF-1.4 body")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 2; i++ {
		rc, err := file.Open()
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		data, _ := io.ReadAll(rc)
		rc.Close()
		if string(data) != "%PDF-1.4 body" {
			t.Fatalf("unexpected content on read %d: %q", i, data)
		}
	}

	if file.SizeMB() != "0.00 MB" {
		t.Fatalf("unexpected size label: %s", file.SizeMB())
	}
}

func TestFromPath(t *testing.T) {
	dir := t.TempDir()

	write := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o600); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
		return path
	}

	pdf := write("resume.pdf", []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n"))
	txt := write("notes.txt", []byte("just some notes about my career\n"))
	blob := write("resume.docx", []byte{0x00, 0x01, 0x02, 0xff, 0xfe, 0x00})

	c, err := FromPath(pdf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name != "resume.pdf" || c.MimeType != MimePDF {
		t.Fatalf("unexpected candidate: %+v", c)
	}

	c, err = FromPath(txt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = NewGate(nil, nil).Stage(c)
	var rejection *RejectionError
	if !errors.As(err, &rejection) || rejection.Reason != UnsupportedType {
		t.Fatalf("expected UnsupportedType for text file, got %v", err)
	}

	c, err = FromPath(blob)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.MimeType != MimeDOCX {
		t.Fatalf("expected extension fallback, got %s", c.MimeType)
	}

	if _, err := FromPath(dir); err == nil {
		t.Fatal("expected error for directory")
	}
	if _, err := FromPath(filepath.Join(dir, "missing.pdf")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
