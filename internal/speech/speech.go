package speech

import (
	"context"
	"fmt"
	"strings"

	"vision-assist/pkg/openai"
)

// Service implements Transcriber and Synthesizer on top of the OpenAI
// audio endpoints.
type Service struct {
	client openai.IOpenAI
}

// New creates a new speech service.
func New(client openai.IOpenAI) *Service {
	return &Service{client: client}
}

// Transcribe converts recorded audio into text.
func (s *Service) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("no audio provided")
	}

	text, err := s.client.Transcribe(ctx, &openai.TranscribeRequest{
		Audio:    audio,
		Filename: "audio.webm",
	})
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Synthesize renders text as speech audio.
func (s *Service) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text provided")
	}

	audio, err := s.client.Speak(ctx, &openai.SpeakRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}
	return audio, nil
}
