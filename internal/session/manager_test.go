package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"vision-assist/internal/model"
	"vision-assist/internal/speech"
)

// mockLogger
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

// fakeConn records everything written to it. failAfter >= 0 makes writes
// fail once that many messages have been accepted.
type fakeConn struct {
	mu        sync.Mutex
	messages  []interface{}
	failAfter int
	closes    int
}

func newFakeConn() *fakeConn {
	return &fakeConn{failAfter: -1}
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failAfter >= 0 && len(c.messages) >= c.failAfter {
		return errors.New("broken pipe")
	}
	c.messages = append(c.messages, v)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closes++
	return nil
}

func (c *fakeConn) snapshot() []interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]interface{}, len(c.messages))
	copy(out, c.messages)
	return out
}

// waitMessages polls until the connection has received at least n messages.
func (c *fakeConn) waitMessages(t *testing.T, n int) []interface{} {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if msgs := c.snapshot(); len(msgs) >= n {
			return msgs
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d messages, have %d", n, len(c.snapshot()))
	return nil
}

type fakeVision struct {
	mu      sync.Mutex
	process func(ctx context.Context, sessionID string, frame []byte) (model.FrameResult, error)
	calls   int
}

func (f *fakeVision) Process(ctx context.Context, sessionID string, frame []byte) (model.FrameResult, error) {
	f.mu.Lock()
	f.calls++
	fn := f.process
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, sessionID, frame)
	}
	return model.FrameResult{
		Captions: []model.Caption{{ID: "c1", Text: "a doorway ahead", Type: model.CaptionVisual, Priority: model.PriorityMedium}},
		FrameID:  "f1",
	}, nil
}

type fakeAgent struct {
	mu      sync.Mutex
	answer  string
	err     error
	queries []string
}

func (f *fakeAgent) ProcessQuery(ctx context.Context, query string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	return f.answer, f.err
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	return f.text, f.err
}

type fakeSynthesizer struct {
	audio []byte
	err   error
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	return f.audio, f.err
}

func newTestManager(v *fakeVision, a *fakeAgent, tr speech.Transcriber, sy speech.Synthesizer) *Manager {
	return New(&mockLogger{}, v, a, tr, sy, nil)
}

func frameMessage(t *testing.T, frame []byte) []byte {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{
		"type": "frame",
		"data": map[string]interface{}{
			"video":     base64.StdEncoding.EncodeToString(frame),
			"timestamp": 1.0,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func TestRegister_SendsGreeting(t *testing.T) {
	m := newTestManager(&fakeVision{}, &fakeAgent{}, nil, nil)
	conn := newFakeConn()

	s := m.Register(conn)
	if s.ID == "" {
		t.Fatal("expected a session id")
	}
	if m.Count() != 1 {
		t.Errorf("expected 1 live session, got %d", m.Count())
	}

	msgs := conn.waitMessages(t, 1)
	greeting, ok := msgs[0].(*ResultMessage)
	if !ok {
		t.Fatalf("expected greeting ResultMessage, got %T", msgs[0])
	}
	if len(greeting.Captions) != 1 || greeting.Captions[0].Text != greetingText {
		t.Errorf("unexpected greeting: %+v", greeting)
	}
	if greeting.Captions[0].Priority != model.PriorityHigh {
		t.Errorf("greeting must be high priority, got %s", greeting.Captions[0].Priority)
	}
}

func TestDispatch_Frame(t *testing.T) {
	v := &fakeVision{}
	m := newTestManager(v, &fakeAgent{}, nil, nil)
	conn := newFakeConn()
	s := m.Register(conn)

	m.Dispatch(s, frameMessage(t, []byte("jpeg-bytes")))

	msgs := conn.waitMessages(t, 2)
	result, ok := msgs[1].(*ResultMessage)
	if !ok {
		t.Fatalf("expected ResultMessage, got %T", msgs[1])
	}
	if len(result.Captions) != 1 || result.Captions[0].Text != "a doorway ahead" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestDispatch_FrameError(t *testing.T) {
	v := &fakeVision{process: func(ctx context.Context, sessionID string, frame []byte) (model.FrameResult, error) {
		return model.FrameResult{}, errors.New("empty frame")
	}}
	m := newTestManager(v, &fakeAgent{}, nil, nil)
	conn := newFakeConn()
	s := m.Register(conn)

	m.Dispatch(s, frameMessage(t, []byte{}))

	msgs := conn.waitMessages(t, 2)
	errMsg, ok := msgs[1].(*ErrorMessage)
	if !ok {
		t.Fatalf("expected ErrorMessage, got %T", msgs[1])
	}
	if errMsg.Error != "Error processing video frame: empty frame" {
		t.Errorf("unexpected error text: %q", errMsg.Error)
	}
}

func TestDispatch_SupersedesInFlightFrame(t *testing.T) {
	release := make(chan struct{})
	var ctxs []context.Context
	var mu sync.Mutex

	v := &fakeVision{process: func(ctx context.Context, sessionID string, frame []byte) (model.FrameResult, error) {
		mu.Lock()
		n := len(ctxs)
		ctxs = append(ctxs, ctx)
		mu.Unlock()
		if n == 0 {
			<-release
		}
		return model.FrameResult{
			Captions: []model.Caption{{ID: "c", Text: fmt.Sprintf("result %d", n)}},
		}, nil
	}}

	m := newTestManager(v, &fakeAgent{}, nil, nil)
	conn := newFakeConn()
	s := m.Register(conn)

	m.Dispatch(s, frameMessage(t, []byte("first")))

	// Wait until the first task is inside Process, then supersede it.
	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		started := len(ctxs) > 0
		mu.Unlock()
		if started {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("first task never started")
		}
		time.Sleep(5 * time.Millisecond)
	}

	m.Dispatch(s, frameMessage(t, []byte("second")))

	msgs := conn.waitMessages(t, 2)
	close(release)

	mu.Lock()
	firstCtx := ctxs[0]
	mu.Unlock()

	select {
	case <-firstCtx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("superseded task context was never cancelled")
	}

	result := msgs[1].(*ResultMessage)
	if result.Captions[0].Text != "result 1" {
		t.Errorf("expected the newer task's result, got %q", result.Captions[0].Text)
	}

	// The superseded task must not deliver after release.
	time.Sleep(50 * time.Millisecond)
	if got := len(conn.snapshot()); got != 2 {
		t.Errorf("superseded task delivered anyway, have %d messages", got)
	}
}

func TestDispatch_MalformedIgnored(t *testing.T) {
	v := &fakeVision{}
	m := newTestManager(v, &fakeAgent{}, nil, nil)
	conn := newFakeConn()
	s := m.Register(conn)
	conn.waitMessages(t, 1)

	m.Dispatch(s, []byte("{not json"))
	m.Dispatch(s, []byte(`{"type":"teleport"}`))
	m.Dispatch(s, []byte(`{"type":"frame","data":{"video":"???","timestamp":1}}`))
	m.Dispatch(s, []byte(`{"type":"message","content":"   "}`))

	time.Sleep(50 * time.Millisecond)
	if got := len(conn.snapshot()); got != 1 {
		t.Errorf("malformed messages produced replies, have %d messages", got)
	}

	// The session still works after garbage.
	m.Dispatch(s, frameMessage(t, []byte("ok")))
	conn.waitMessages(t, 2)
}

func TestDispatch_Message(t *testing.T) {
	a := &fakeAgent{answer: "The door is on your left."}
	sy := &fakeSynthesizer{audio: []byte("mp3-bytes")}
	m := newTestManager(&fakeVision{}, a, nil, sy)
	conn := newFakeConn()
	s := m.Register(conn)

	m.Dispatch(s, []byte(`{"type":"message","content":"where is the door?"}`))

	msgs := conn.waitMessages(t, 2)
	result, ok := msgs[1].(*ResultMessage)
	if !ok {
		t.Fatalf("expected ResultMessage, got %T", msgs[1])
	}
	if result.Captions[0].Text != "where is the door?" || result.Captions[0].Type != model.CaptionAudio {
		t.Errorf("expected the query echoed as an audio caption, got %+v", result.Captions[0])
	}
	if result.VoiceFeedback == nil || result.VoiceFeedback.Text != "The door is on your left." {
		t.Errorf("unexpected voice feedback: %+v", result.VoiceFeedback)
	}
	if result.Audio != base64.StdEncoding.EncodeToString([]byte("mp3-bytes")) {
		t.Errorf("expected synthesized audio on the reply")
	}
}

func TestDispatch_SynthesisFailureStillAnswers(t *testing.T) {
	a := &fakeAgent{answer: "ok"}
	sy := &fakeSynthesizer{err: errors.New("tts down")}
	m := newTestManager(&fakeVision{}, a, nil, sy)
	conn := newFakeConn()
	s := m.Register(conn)

	m.Dispatch(s, []byte(`{"type":"message","content":"hello"}`))

	msgs := conn.waitMessages(t, 2)
	result := msgs[1].(*ResultMessage)
	if result.VoiceFeedback == nil || result.VoiceFeedback.Text != "ok" {
		t.Errorf("answer must survive TTS failure: %+v", result)
	}
	if result.Audio != "" {
		t.Errorf("expected no audio after TTS failure")
	}
}

func TestDispatch_Audio(t *testing.T) {
	a := &fakeAgent{answer: "You are in a hallway."}
	tr := &fakeTranscriber{text: "where am I"}
	m := newTestManager(&fakeVision{}, a, tr, nil)
	conn := newFakeConn()
	s := m.Register(conn)

	raw, _ := json.Marshal(map[string]interface{}{
		"type": "audio",
		"data": map[string]interface{}{
			"audio":     base64.StdEncoding.EncodeToString([]byte("wav-bytes")),
			"timestamp": 1.0,
		},
	})
	m.Dispatch(s, raw)

	msgs := conn.waitMessages(t, 2)
	result := msgs[1].(*ResultMessage)
	if result.Captions[0].Text != "where am I" {
		t.Errorf("expected the transcript echoed, got %q", result.Captions[0].Text)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.queries) != 1 || a.queries[0] != "where am I" {
		t.Errorf("agent received wrong query: %v", a.queries)
	}
}

func TestDispatch_EmptyTranscriptDropped(t *testing.T) {
	a := &fakeAgent{answer: "should not be asked"}
	tr := &fakeTranscriber{text: "   "}
	m := newTestManager(&fakeVision{}, a, tr, nil)
	conn := newFakeConn()
	s := m.Register(conn)
	conn.waitMessages(t, 1)

	raw, _ := json.Marshal(map[string]interface{}{
		"type": "audio",
		"data": map[string]interface{}{
			"audio":     base64.StdEncoding.EncodeToString([]byte("silence")),
			"timestamp": 1.0,
		},
	})
	m.Dispatch(s, raw)

	time.Sleep(50 * time.Millisecond)
	if got := len(conn.snapshot()); got != 1 {
		t.Errorf("empty transcript must produce no reply, have %d messages", got)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.queries) != 0 {
		t.Errorf("agent must not be asked for an empty transcript")
	}
}

func TestDisconnect_Idempotent(t *testing.T) {
	m := newTestManager(&fakeVision{}, &fakeAgent{}, nil, nil)
	conn := newFakeConn()
	s := m.Register(conn)

	m.Disconnect(s.ID)
	m.Disconnect(s.ID)

	if m.Count() != 0 {
		t.Errorf("expected 0 live sessions, got %d", m.Count())
	}
	if conn.closes == 0 {
		t.Error("connection was never closed")
	}
	if _, err := m.Get(s.ID); err != ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestDisconnect_CancelsInFlightTasks(t *testing.T) {
	started := make(chan context.Context, 1)
	v := &fakeVision{process: func(ctx context.Context, sessionID string, frame []byte) (model.FrameResult, error) {
		started <- ctx
		<-ctx.Done()
		return model.FrameResult{}, ctx.Err()
	}}
	m := newTestManager(v, &fakeAgent{}, nil, nil)
	conn := newFakeConn()
	s := m.Register(conn)

	m.Dispatch(s, frameMessage(t, []byte("frame")))

	var taskCtx context.Context
	select {
	case taskCtx = <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("task never started")
	}

	m.Disconnect(s.ID)

	select {
	case <-taskCtx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("disconnect did not cancel the in-flight task")
	}
}

func TestDeliver_WriteFailureDisconnects(t *testing.T) {
	m := newTestManager(&fakeVision{}, &fakeAgent{}, nil, nil)
	conn := newFakeConn()
	s := m.Register(conn)
	conn.waitMessages(t, 1)

	// Accept the greeting, fail everything after it.
	conn.mu.Lock()
	conn.failAfter = 1
	conn.mu.Unlock()

	m.Dispatch(s, frameMessage(t, []byte("frame")))

	deadline := time.Now().Add(2 * time.Second)
	for m.Count() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("write failure did not tear the session down")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestDispatchBinary_TreatedAsFrame(t *testing.T) {
	v := &fakeVision{}
	m := newTestManager(v, &fakeAgent{}, nil, nil)
	conn := newFakeConn()
	s := m.Register(conn)

	m.DispatchBinary(s, []byte("raw-jpeg"))

	msgs := conn.waitMessages(t, 2)
	if _, ok := msgs[1].(*ResultMessage); !ok {
		t.Fatalf("expected ResultMessage, got %T", msgs[1])
	}
}
