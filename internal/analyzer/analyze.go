package analyzer

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/report"
	"github.com/spigell/resume-analyzer/internal/upload"
	"github.com/spigell/resume-analyzer/internal/utils"
)

var wait = utils.WaitFor

// Analyze submits the staged document and returns the decoded report.
// Temporary transport failures are retried with backoff up to MaxRetries
// attempts in total; service errors are returned at once.
func (c *Client) Analyze(ctx context.Context, file *upload.CandidateFile) (*report.Report, error) {
	if file == nil {
		return nil, errors.New("file is required")
	}

	attempts := c.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			delay := utils.Backoff(attempt-1, backoffBase, backoffLimit)
			c.logger.Info("retrying analysis request",
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", attempts),
				zap.Duration("delay", delay),
				zap.Error(lastErr),
			)
			if err := wait(ctx, delay); err != nil {
				return nil, &TransportError{Err: err}
			}
		}

		r, err := c.analyzeOnce(ctx, file)
		if err == nil {
			return r, nil
		}

		lastErr = err
		if !retryable(err) {
			break
		}
	}

	return nil, lastErr
}

func (c *Client) analyzeOnce(ctx context.Context, file *upload.CandidateFile) (*report.Report, error) {
	body, contentType, err := multipartBody(file)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, analyzePath, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	status, data, err := c.do(req)
	if err != nil {
		return nil, err
	}

	r, err := report.Decode(data)
	if err != nil {
		return nil, &TransportError{StatusCode: status, Err: err}
	}

	return r, nil
}
