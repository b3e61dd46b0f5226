package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	DefaultBaseURL = "http://localhost:8501"
	DefaultTimeout = 5 * time.Second
)

// Client talks to a text-recognition sidecar over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new OCR client.
func New(baseURL string) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}, nil
}

// WithHTTPClient overrides the default HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Recognize extracts text regions from a single frame.
func (c *Client) Recognize(ctx context.Context, req *RecognizeRequest) ([]Word, error) {
	if len(req.Image) == 0 {
		return nil, fmt.Errorf("no image provided")
	}

	bodyBytes, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/recognize", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call OCR service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if jsonErr := json.NewDecoder(resp.Body).Decode(&errResp); jsonErr == nil && errResp.Error != "" {
			return nil, fmt.Errorf("OCR error (%d): %s", resp.StatusCode, errResp.Error)
		}
		return nil, fmt.Errorf("OCR error: %d", resp.StatusCode)
	}

	var recResp RecognizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&recResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return recResp.Words, nil
}
