// Package analyzer talks to the remote resume analysis service.
package analyzer

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultAPIURL     = "http://localhost:8000"
	DefaultTimeout    = 60 * time.Second
	DefaultMaxRetries = 3

	analyzePath = "/analyze-resume"
	healthPath  = "/health"
	// Multipart field carrying the document.
	fileField = "file"
	userAgent = "spigell/resume-analyzer"

	defaultMaxLogLength = 200
	// Responses are JSON reports; anything larger is not one.
	maxResponseBytes = 16 << 20

	backoffBase  = 500 * time.Millisecond
	backoffLimit = 5 * time.Second
)

type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
	// MaxRetries is the total number of attempts for temporary failures.
	MaxRetries   int
	MaxLogLength int
}

// New returns a client for the service at apiURL. An empty token sends no
// Authorization header.
func New(logger *zap.Logger, apiURL, token string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	apiURL = strings.TrimRight(strings.TrimSpace(apiURL), "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	return &Client{
		token:  strings.TrimSpace(token),
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger:       logger.Named("analyzer"),
		UserAgent:    userAgent,
		MaxRetries:   DefaultMaxRetries,
		MaxLogLength: defaultMaxLogLength,
	}
}
