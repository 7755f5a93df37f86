package analyzer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spigell/resume-analyzer/internal/report"
)

// FallbackMessage is shown when the service gave no usable detail.
const FallbackMessage = "Analysis failed. Please try again."

// ServiceError is a non-2xx response carrying a detail message.
type ServiceError struct {
	StatusCode int
	Detail     string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("analysis service: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Detail)
}

// TransportError is a network failure, a non-2xx response without detail or
// a success body that is not a report. StatusCode is zero when no response
// arrived.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("analysis service unreachable: %v", e.Err)
	}
	return fmt.Sprintf("analysis service: bad status %d %s: %v", e.StatusCode, http.StatusText(e.StatusCode), e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Temporary reports whether repeating the request may succeed.
func (e *TransportError) Temporary() bool {
	if errors.Is(e.Err, report.ErrMalformed) {
		return false
	}

	if errors.Is(e.Err, context.Canceled) || errors.Is(e.Err, context.DeadlineExceeded) {
		return false
	}

	switch {
	case e.StatusCode == 0:
		return true
	case e.StatusCode == http.StatusTooManyRequests:
		return true
	case e.StatusCode >= http.StatusInternalServerError:
		return true
	default:
		return false
	}
}

// UserMessage returns the text to show for a failed analysis: the service
// detail verbatim, otherwise FallbackMessage.
func UserMessage(err error) string {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) && serviceErr.Detail != "" {
		return serviceErr.Detail
	}
	return FallbackMessage
}

func retryable(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr) && transportErr.Temporary()
}
