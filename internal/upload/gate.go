// Package upload validates documents before they are staged for analysis.
package upload

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/notify"
)

const (
	acceptedMessage    = "File uploaded successfully!"
	wrongTypeMessage   = "Please upload a PDF or DOCX file"
	tooLargeMessageFmt = "File is too large (max %d MB)"
)

// ErrNoFile is returned when an interaction carries no file at all.
var ErrNoFile = errors.New("no file selected")

type Reason string

const (
	UnsupportedType Reason = "unsupported_type"
	TooLarge        Reason = "too_large"
	MultipleFiles   Reason = "multiple_files"
)

// RejectionError explains why a staging attempt was refused.
type RejectionError struct {
	Reason   Reason
	Name     string
	MimeType string
	Size     int64
	Count    int
}

func (e *RejectionError) Error() string {
	switch e.Reason {
	case UnsupportedType:
		return fmt.Sprintf("unsupported file type %q for %s", e.MimeType, e.Name)
	case TooLarge:
		return fmt.Sprintf("file %s is %d bytes, limit is %d", e.Name, e.Size, MaxSize)
	case MultipleFiles:
		return fmt.Sprintf("expected a single file, got %d", e.Count)
	default:
		return fmt.Sprintf("file %s rejected", e.Name)
	}
}

// Message is the text shown to the user.
func (e *RejectionError) Message() string {
	switch e.Reason {
	case TooLarge:
		return fmt.Sprintf(tooLargeMessageFmt, MaxSize>>20)
	default:
		return wrongTypeMessage
	}
}

// check is a single validation step applied to a lone candidate.
type check interface {
	Name() string
	Check(c Candidate) *RejectionError
}

type typeCheck struct{}

func (typeCheck) Name() string { return "type" }

func (typeCheck) Check(c Candidate) *RejectionError {
	mimeType := resolveMime(c.MimeType, c.Name)
	if Allowed(mimeType) {
		return nil
	}
	return &RejectionError{Reason: UnsupportedType, Name: c.Name, MimeType: c.MimeType, Size: c.Size}
}

type sizeCheck struct {
	max int64
}

func (sizeCheck) Name() string { return "size" }

func (s sizeCheck) Check(c Candidate) *RejectionError {
	if c.Size <= s.max {
		return nil
	}
	return &RejectionError{Reason: TooLarge, Name: c.Name, MimeType: c.MimeType, Size: c.Size}
}

// Gate accepts at most one file per interaction.
type Gate struct {
	notifier notify.Notifier
	logger   *zap.Logger
	checks   []check
}

func NewGate(notifier notify.Notifier, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Gate{
		notifier: notify.OrNop(notifier),
		logger:   logger,
		checks: []check{
			typeCheck{},
			sizeCheck{max: MaxSize},
		},
	}
}

// Stage validates the files of one interaction. Several files are rejected
// together, never reduced to the first one.
func (g *Gate) Stage(candidates ...Candidate) (*CandidateFile, error) {
	switch len(candidates) {
	case 0:
		return nil, ErrNoFile
	case 1:
	default:
		return nil, g.reject(&RejectionError{Reason: MultipleFiles, Count: len(candidates)})
	}

	c := candidates[0]
	for _, step := range g.checks {
		if rejection := step.Check(c); rejection != nil {
			g.logger.Debug("check failed", zap.String("check", step.Name()), zap.String("file", c.Name))
			return nil, g.reject(rejection)
		}
	}

	file := &CandidateFile{
		Name:     c.Name,
		Size:     c.Size,
		MimeType: resolveMime(c.MimeType, c.Name),
		open:     c.Open,
	}

	g.logger.Debug("file accepted",
		zap.String("file", file.Name),
		zap.Int64("size", file.Size),
		zap.String("mime_type", file.MimeType),
	)
	g.notifier.Emit(notify.NewSuccess(notify.FileAccepted, acceptedMessage))

	return file, nil
}

func (g *Gate) reject(e *RejectionError) error {
	g.logger.Debug("file rejected", zap.String("reason", string(e.Reason)), zap.Error(e))
	g.notifier.Emit(notify.NewError(notify.FileRejected, e.Message()))
	return e
}
