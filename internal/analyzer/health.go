package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mitchellh/mapstructure"
)

type HealthStatus struct {
	Status    string `mapstructure:"status"`
	Timestamp string `mapstructure:"timestamp"`
}

// Healthy reports whether the service described itself as healthy.
func (h *HealthStatus) Healthy() bool {
	return h != nil && h.Status == "healthy"
}

// Health queries the service health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	req, err := c.newRequest(ctx, http.MethodGet, healthPath, nil)
	if err != nil {
		return nil, err
	}

	_, data, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse health response: %w", err)
	}

	var status HealthStatus
	if err := mapstructure.WeakDecode(raw, &status); err != nil {
		return nil, fmt.Errorf("decode health response: %w", err)
	}

	return &status, nil
}
