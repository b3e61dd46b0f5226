package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// client implements IOpenAI
type client struct {
	cfg Config
}

func newClient(cfg Config) *client {
	return &client{cfg: cfg}
}

// Model returns the chat model being used
func (c *client) Model() string {
	return c.cfg.ChatModel
}

// ChatCompletion sends a chat request to the /chat/completions endpoint
func (c *client) ChatCompletion(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	if req.Model == "" {
		req.Model = c.cfg.ChatModel
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("openai: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openai: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	respBody, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	var result ChatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("openai: failed to parse response: %w", err)
	}

	return &result, nil
}

// Transcribe uploads audio to the /audio/transcriptions endpoint and returns
// the plain-text transcript.
func (c *client) Transcribe(ctx context.Context, req *TranscribeRequest) (string, error) {
	if len(req.Audio) == 0 {
		return "", fmt.Errorf("openai: empty audio payload")
	}

	filename := req.Filename
	if filename == "" {
		filename = "audio.webm"
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("openai: failed to build form: %w", err)
	}
	if _, err := part.Write(req.Audio); err != nil {
		return "", fmt.Errorf("openai: failed to write audio: %w", err)
	}
	_ = writer.WriteField("model", c.cfg.STTModel)
	_ = writer.WriteField("response_format", "text")
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("openai: failed to finalize form: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return "", fmt.Errorf("openai: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	respBody, err := c.do(httpReq)
	if err != nil {
		return "", err
	}

	return string(bytes.TrimSpace(respBody)), nil
}

// Speak renders text as speech via the /audio/speech endpoint and returns
// the raw audio bytes (mp3 by default).
func (c *client) Speak(ctx context.Context, req *SpeakRequest) ([]byte, error) {
	if req.Text == "" {
		return nil, fmt.Errorf("openai: empty speech text")
	}
	if req.Model == "" {
		req.Model = c.cfg.TTSModel
	}
	if req.Voice == "" {
		req.Voice = c.cfg.TTSVoice
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("openai: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/audio/speech", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openai: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	return c.do(httpReq)
}

// do executes the request and returns the raw body, mapping non-200 statuses
// to errors with the API message when available.
func (c *client) do(req *http.Request) ([]byte, error) {
	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai: failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err != nil || errResp.Error.Message == "" {
			return nil, fmt.Errorf("openai: API error %d: %s", resp.StatusCode, string(respBody))
		}
		return nil, fmt.Errorf("openai: API error %d: %s", resp.StatusCode, errResp.Error.Message)
	}

	return respBody, nil
}
