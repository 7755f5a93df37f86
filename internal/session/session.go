// Package session owns one analysis workflow: staging a document, submitting
// it and holding the outcome. Every submit is tagged with an attempt number;
// a response whose attempt is no longer current is discarded.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/analyzer"
	"github.com/spigell/resume-analyzer/internal/logger"
	"github.com/spigell/resume-analyzer/internal/notify"
	"github.com/spigell/resume-analyzer/internal/report"
	"github.com/spigell/resume-analyzer/internal/upload"
)

const (
	submitStartedMessage   = "Analyzing resume..."
	submitSucceededMessage = "Analysis completed!"
)

var (
	ErrNothingStaged  = errors.New("no file staged")
	ErrSubmitInFlight = errors.New("analysis already in progress")
	ErrNoAnalyzer     = errors.New("session has no analyzer")
	// ErrNotStaged is returned by Submit after an attempt finished; Restage or
	// Stage first.
	ErrNotStaged = errors.New("attempt already finished")
	// ErrStaleResponse is returned to the caller of a Submit whose attempt was
	// abandoned while the request was in flight. State is left untouched.
	ErrStaleResponse = errors.New("response belongs to an abandoned attempt")
)

type State int

const (
	Idle State = iota
	Staged
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Staged:
		return "staged"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Analyzer performs the remote analysis of a staged document.
type Analyzer interface {
	Analyze(ctx context.Context, file *upload.CandidateFile) (*report.Report, error)
}

// Snapshot is a consistent copy of the session state. Report is present only
// in Succeeded, ErrorMessage only in Failed.
type Snapshot struct {
	ID           string
	Attempt      uint64
	State        State
	File         *upload.CandidateFile
	Report       *report.Report
	ErrorMessage string
}

type Session struct {
	id       string
	gate     *upload.Gate
	analyzer Analyzer
	notifier notify.Notifier
	logger   *zap.Logger

	mu      sync.Mutex
	state   State
	attempt uint64
	file    *upload.CandidateFile
	report  *report.Report
	errMsg  string
}

// New creates an idle session. A nil gate gets a default one; without an
// analyzer every Submit fails with ErrNoAnalyzer.
func New(gate *upload.Gate, a Analyzer, notifier notify.Notifier, log *zap.Logger) *Session {
	id := uuid.NewString()
	log = logger.WithFields(log, logger.SessionFields(id, 0)...).Named("session")
	notifier = notify.OrNop(notifier)

	if gate == nil {
		gate = upload.NewGate(notifier, log)
	}

	return &Session{
		id:       id,
		gate:     gate,
		analyzer: a,
		notifier: notifier,
		logger:   log,
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		ID:           s.id,
		Attempt:      s.attempt,
		State:        s.state,
		File:         s.file,
		Report:       s.report,
		ErrorMessage: s.errMsg,
	}
}

// Stage validates the files of one interaction and, if accepted, starts a
// fresh attempt with the new file. A rejection leaves the session untouched.
// Staging while Submitting abandons the request in flight.
func (s *Session) Stage(candidates ...upload.Candidate) (*upload.CandidateFile, error) {
	file, err := s.gate.Stage(candidates...)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	previous := s.state
	s.attempt++
	attempt := s.attempt
	s.state = Staged
	s.file = file
	s.report = nil
	s.errMsg = ""
	s.mu.Unlock()

	log := s.logger.With(zap.Uint64(logger.FieldAttempt, attempt))
	if previous == Submitting {
		log.Info("abandoning analysis in flight", zap.String("file", file.Name))
	}
	log.Debug("file staged", zap.String("file", file.Name), zap.Stringer("from", previous))

	return file, nil
}

// Restage returns a finished attempt to Staged with the same file, dropping
// its report or error, so it can be submitted again.
func (s *Session) Restage() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case Idle:
		return ErrNothingStaged
	case Submitting:
		return ErrSubmitInFlight
	case Staged:
		return nil
	}

	s.attempt++
	s.state = Staged
	s.report = nil
	s.errMsg = ""

	return nil
}

// Reset discards everything and returns to Idle. A request in flight becomes stale.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Idle {
		s.attempt++
	}
	s.state = Idle
	s.file = nil
	s.report = nil
	s.errMsg = ""
}

// Submit sends the staged file for analysis and blocks until the service
// answers. Only one submit may be in flight; it is legal only from Staged.
func (s *Session) Submit(ctx context.Context) error {
	if s.analyzer == nil {
		return ErrNoAnalyzer
	}

	s.mu.Lock()
	switch s.state {
	case Idle:
		s.mu.Unlock()
		return ErrNothingStaged
	case Submitting:
		s.mu.Unlock()
		return ErrSubmitInFlight
	case Succeeded, Failed:
		s.mu.Unlock()
		return ErrNotStaged
	}

	s.attempt++
	attempt := s.attempt
	file := s.file
	s.state = Submitting
	s.mu.Unlock()

	log := s.logger.With(zap.Uint64(logger.FieldAttempt, attempt), zap.String("file", file.Name))
	log.Info("submitting resume", zap.Int64("size", file.Size), zap.String("mime_type", file.MimeType))
	s.notifier.Emit(notify.NewSuccess(notify.SubmitStarted, submitStartedMessage))

	r, err := s.analyzer.Analyze(ctx, file)
	if err == nil && r == nil {
		err = &analyzer.TransportError{Err: report.ErrMalformed}
	}

	s.mu.Lock()
	if s.attempt != attempt {
		current := s.state
		s.mu.Unlock()
		log.Debug("discarding stale response", zap.Stringer("current_state", current), zap.Bool("failed", err != nil))
		return ErrStaleResponse
	}

	if err != nil {
		message := analyzer.UserMessage(err)
		s.state = Failed
		s.report = nil
		s.errMsg = message
		s.mu.Unlock()

		log.Warn("analysis failed", zap.Error(err))
		s.notifier.Emit(notify.NewError(notify.SubmitFailed, message))
		return err
	}

	s.state = Succeeded
	s.report = r
	s.errMsg = ""
	s.mu.Unlock()

	log.Info("analysis completed", zap.Float64("overall_score", r.ATSScore.OverallScore))
	s.notifier.Emit(notify.NewSuccess(notify.SubmitSucceeded, submitSucceededMessage))

	return nil
}
