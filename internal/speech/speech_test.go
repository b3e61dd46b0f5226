package speech

import (
	"context"
	"errors"
	"testing"

	"vision-assist/pkg/openai"
)

type fakeOpenAI struct {
	transcribeFunc func(ctx context.Context, req *openai.TranscribeRequest) (string, error)
	speakFunc      func(ctx context.Context, req *openai.SpeakRequest) ([]byte, error)
}

func (f *fakeOpenAI) ChatCompletion(ctx context.Context, req *openai.ChatRequest) (*openai.ChatResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeOpenAI) Transcribe(ctx context.Context, req *openai.TranscribeRequest) (string, error) {
	return f.transcribeFunc(ctx, req)
}

func (f *fakeOpenAI) Speak(ctx context.Context, req *openai.SpeakRequest) ([]byte, error) {
	return f.speakFunc(ctx, req)
}

func (f *fakeOpenAI) Model() string { return "test" }

func TestTranscribe(t *testing.T) {
	t.Run("Trims Whitespace", func(t *testing.T) {
		svc := New(&fakeOpenAI{
			transcribeFunc: func(ctx context.Context, req *openai.TranscribeRequest) (string, error) {
				return "  where is the exit \n", nil
			},
		})
		text, err := svc.Transcribe(context.Background(), []byte{1, 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text != "where is the exit" {
			t.Errorf("unexpected transcript: %q", text)
		}
	})

	t.Run("Empty Audio", func(t *testing.T) {
		svc := New(&fakeOpenAI{})
		if _, err := svc.Transcribe(context.Background(), nil); err == nil {
			t.Error("expected error for empty audio")
		}
	})
}

func TestSynthesize(t *testing.T) {
	t.Run("Returns Audio", func(t *testing.T) {
		svc := New(&fakeOpenAI{
			speakFunc: func(ctx context.Context, req *openai.SpeakRequest) ([]byte, error) {
				return []byte("mp3"), nil
			},
		})
		audio, err := svc.Synthesize(context.Background(), "watch out")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(audio) != "mp3" {
			t.Errorf("unexpected audio: %q", audio)
		}
	})

	t.Run("Empty Text", func(t *testing.T) {
		svc := New(&fakeOpenAI{})
		if _, err := svc.Synthesize(context.Background(), "  "); err == nil {
			t.Error("expected error for empty text")
		}
	})
}
