package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"vision-assist/internal/model"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

type fakeAgent struct {
	answer string
	asked  []string
}

func (f *fakeAgent) ProcessQuery(ctx context.Context, query string) (string, error) {
	f.asked = append(f.asked, query)
	return f.answer, nil
}

type fakeVision struct {
	frames [][]byte
}

func (f *fakeVision) Process(ctx context.Context, sessionID string, frame []byte) (model.FrameResult, error) {
	f.frames = append(f.frames, frame)
	return model.FrameResult{FrameID: "f1"}, nil
}

type fakeSynthesizer struct {
	audio []byte
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	return f.audio, nil
}

func postAsk(t *testing.T, router *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAsk(t *testing.T) {
	gin.SetMode(gin.TestMode)
	agent := &fakeAgent{answer: "The exit is behind you."}
	synth := &fakeSynthesizer{audio: []byte("mp3-bytes")}
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), New(&mockLogger{}, agent, nil, synth))

	w := postAsk(t, router, map[string]string{"question": "where is the exit?"})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data askResp `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.TextResponse != "The exit is behind you." {
		t.Errorf("unexpected answer: %q", resp.Data.TextResponse)
	}
	wantAudio := "data:audio/mp3;base64," + base64.StdEncoding.EncodeToString([]byte("mp3-bytes"))
	if resp.Data.AudioResponse != wantAudio {
		t.Errorf("unexpected audio response: %q", resp.Data.AudioResponse)
	}
	if resp.Data.ProcessedFrame != nil {
		t.Errorf("no image was sent, processed_frame must be empty")
	}
}

func TestAsk_WithImage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	agent := &fakeAgent{answer: "A red door."}
	vis := &fakeVision{}
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), New(&mockLogger{}, agent, vis, nil))

	w := postAsk(t, router, map[string]string{
		"question":   "what do you see?",
		"image_data": "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("jpeg-bytes")),
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(vis.frames) != 1 || string(vis.frames[0]) != "jpeg-bytes" {
		t.Errorf("image was not pushed through the pipeline")
	}
	var resp struct {
		Data askResp `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.ProcessedFrame == nil || resp.Data.ProcessedFrame.FrameID != "f1" {
		t.Errorf("expected the processed frame in the response")
	}
	if resp.Data.AudioResponse != "" {
		t.Errorf("no synthesizer configured, audio must be empty")
	}
}

func TestAsk_MissingQuestion(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), New(&mockLogger{}, &fakeAgent{}, nil, nil))

	w := postAsk(t, router, map[string]string{"question": "   "})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "question is required") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}
