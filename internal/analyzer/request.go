package analyzer

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/logger"
	"github.com/spigell/resume-analyzer/internal/upload"
	"github.com/spigell/resume-analyzer/internal/utils"
)

const (
	acceptType      = "application/json"
	contentEncoding = "gzip"
)

// errorBody is the failure payload of the service.
type errorBody struct {
	Detail any `json:"detail"`
}

// multipartBody encodes the document as the single part of a form.
func multipartBody(file *upload.CandidateFile) (*bytes.Buffer, string, error) {
	src, err := file.Open()
	if err != nil {
		return nil, "", fmt.Errorf("opening %s: %w", file.Name, err)
	}
	defer src.Close()

	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, file.Name))
	header.Set("Content-Type", file.MimeType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}

	if _, err = io.Copy(part, src); err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", file.Name, err)
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &b, w.FormDataContentType(), nil
}

// do sends req and returns the decoded body. Non-2xx statuses become a
// ServiceError or TransportError.
func (c *Client) do(req *http.Request) (int, []byte, error) {
	requestID := uuid.NewString()
	req = c.setHeaders(req)
	req.Header.Set("X-Request-ID", requestID)

	log := c.logger.With(zap.String(logger.FieldRequest, requestID))
	log.Debug("make request", zap.String("method", req.Method), zap.String("url", req.URL.String()))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := readBody(resp)
	if err != nil {
		return resp.StatusCode, nil, &TransportError{StatusCode: resp.StatusCode, Err: err}
	}

	log.Debug("got response",
		zap.Int("status", resp.StatusCode),
		zap.Int("length", len(data)),
		zap.String("preview", utils.TruncateForLog(string(data), c.MaxLogLength)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, data, statusError(resp.StatusCode, data)
	}

	return resp.StatusCode, data, nil
}

func statusError(status int, data []byte) error {
	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil {
		// Validation failures carry a list here; only a string is a message.
		if detail, ok := body.Detail.(string); ok && strings.TrimSpace(detail) != "" {
			return &ServiceError{StatusCode: status, Detail: detail}
		}
	}

	return &TransportError{StatusCode: status, Err: errors.New("no detail in response")}
}

func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := io.ReadAll(io.LimitReader(reader, maxResponseBytes+1))
	if err != nil {
		return nil, err
	}

	if len(data) > maxResponseBytes {
		return nil, fmt.Errorf("response exceeds %d bytes", maxResponseBytes)
	}

	return data, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", acceptType)
	req.Header.Set("Accept-Encoding", contentEncoding)

	return req
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	return http.NewRequestWithContext(ctx, method, c.APIURL+path, body)
}
