package openai

import "context"

// IOpenAI defines the interface for an OpenAI-compatible API client.
// Implementations are safe for concurrent use.
type IOpenAI interface {
	// ChatCompletion sends a chat request (optionally with image content)
	ChatCompletion(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// Transcribe converts recorded audio to text
	Transcribe(ctx context.Context, req *TranscribeRequest) (string, error)

	// Speak renders text as speech audio
	Speak(ctx context.Context, req *SpeakRequest) ([]byte, error)

	// Model returns the chat model being used
	Model() string
}

// New creates a new client with the given configuration
func New(cfg Config) (IOpenAI, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newClient(cfg), nil
}
