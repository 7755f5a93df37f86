package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/analyzer"
	"github.com/spigell/resume-analyzer/internal/secrets"
)

const tokenEnv = "RESUME_ANALYZER_TOKEN"

func newClient(config *ServiceConfig, logger *zap.Logger) (*analyzer.Client, error) {
	token, err := secrets.LoadOptional(secrets.Source{
		Name:  "analysis service token",
		Value: config.Token,
		Env:   tokenEnv,
		File:  config.TokenFile,
	})
	if err != nil {
		return nil, fmt.Errorf("loading token: %w", err)
	}

	client := analyzer.New(logger, config.URL, token)

	if config.Timeout > 0 {
		client.HTTPClient.Timeout = config.Timeout
	}
	if config.MaxRetries > 0 {
		client.MaxRetries = config.MaxRetries
	}
	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}
	if config.MaxLogLength > 0 {
		client.MaxLogLength = config.MaxLogLength
	}

	return client, nil
}
