package shield

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ClientConfig configures the HTTP client for the decision service.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client submits requests to the external decision service over HTTP.
type Client struct {
	client *resty.Client
	logger *zap.Logger
}

type decideRequest struct {
	Request RequestInfo `json:"request"`
	Rule    Rule        `json:"rule"`
}

// NewClient creates a decision-service client. The timeout bounds every
// evaluation call so a slow decision service cannot stall request handling
// indefinitely.
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	if cfg.APIKey != "" {
		cli.SetHeader("X-API-Key", cfg.APIKey)
	}

	return &Client{client: cli, logger: logger}
}

// Protect submits the request and rule for evaluation. Transport failures,
// timeouts and non-2xx responses are returned as errors for the caller to
// fail closed on.
func (c *Client) Protect(ctx context.Context, req RequestInfo, rule Rule) (Decision, error) {
	var decision Decision

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(decideRequest{Request: req, Rule: rule}).
		SetResult(&decision).
		Post("/v1/decide")
	if err != nil {
		c.logger.Error("Failed to reach decision service", zap.Error(err))
		return Decision{}, fmt.Errorf("decision service request: %w", err)
	}

	if resp.IsError() {
		c.logger.Error("Decision service returned non-OK status", zap.Int("status", resp.StatusCode()))
		return Decision{}, fmt.Errorf("decision service returned status: %d", resp.StatusCode())
	}

	return decision, nil
}
