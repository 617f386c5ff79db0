package emotion

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// defaultInferenceTimeout bounds a single classification round trip.
const defaultInferenceTimeout = 10 * time.Second

// InferenceResult is a remote classifier's verdict on one image.
type InferenceResult struct {
	Label      string             `json:"label"`
	Confidence float64            `json:"confidence"`
	Scores     map[string]float64 `json:"scores,omitempty"`
}

// InferenceClient calls an external emotion classification service.
// The service takes the raw image bytes and answers with a label,
// a confidence, and optional per-label scores.
type InferenceClient struct {
	httpClient *http.Client
	url        string
	token      string
	logger     *slog.Logger
}

// NewInferenceClient creates a client for the given endpoint.
// An empty token disables the Authorization header.
func NewInferenceClient(url, token string, timeout time.Duration, logger *slog.Logger) *InferenceClient {
	if timeout <= 0 {
		timeout = defaultInferenceTimeout
	}

	return &InferenceClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		url:    url,
		token:  token,
		logger: logger,
	}
}

// Classify sends the image for classification.
func (c *InferenceClient) Classify(ctx context.Context, imageData []byte) (*InferenceResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("calling inference service", "url", c.url, "bytes", len(imageData))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference failed: status %d", resp.StatusCode)
	}

	var result InferenceResult
	if err := json.UnmarshalRead(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if result.Label == "" {
		return nil, fmt.Errorf("inference response has no label")
	}

	return &result, nil
}
