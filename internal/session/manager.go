package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"vision-assist/internal/metrics"
	"vision-assist/internal/model"
	"vision-assist/internal/speech"
	"vision-assist/internal/vision"
	pkgLog "vision-assist/pkg/log"
)

const greetingText = "Connected to the vision assistant. Ready to help!"

// Manager owns all live sessions and routes client messages into the frame
// pipeline, the agent and the speech service.
type Manager struct {
	l           pkgLog.Logger
	vision      vision.UseCase
	agent       Agent
	transcriber speech.Transcriber
	synthesizer speech.Synthesizer
	metrics     *metrics.Metrics

	mu       sync.Mutex
	sessions map[string]*Session
}

// New builds a session manager. transcriber, synthesizer and metrics may be
// nil; the matching features degrade instead of failing.
func New(l pkgLog.Logger, visionUC vision.UseCase, agent Agent, transcriber speech.Transcriber, synthesizer speech.Synthesizer, m *metrics.Metrics) *Manager {
	return &Manager{
		l:           l,
		vision:      visionUC,
		agent:       agent,
		transcriber: transcriber,
		synthesizer: synthesizer,
		metrics:     m,
		sessions:    make(map[string]*Session),
	}
}

// Register creates a session for the connection and sends the greeting.
func (m *Manager) Register(conn Conn) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ID:     uuid.NewString(),
		conn:   conn,
		tasks:  make(map[Modality]*taskSlot),
		gens:   make(map[Modality]uint64),
		ctx:    ctx,
		cancel: cancel,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	m.metrics.SessionOpened()

	m.l.Infof(ctx, "session %s connected", s.ID)

	greeting := &ResultMessage{
		Captions: []model.Caption{{
			ID:        uuid.NewString(),
			Text:      greetingText,
			Type:      model.CaptionVisual,
			Priority:  model.PriorityHigh,
			Timestamp: model.UnixNow(),
		}},
	}
	if err := m.write(s, greeting); err != nil {
		m.l.Warnf(ctx, "session %s greeting failed: %v", s.ID, err)
	}
	return s
}

// Get looks up a live session by id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Disconnect tears a session down: cancels its tasks, closes the connection
// and drops it from the registry. Safe to call more than once.
func (m *Manager) Disconnect(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for modality, slot := range s.tasks {
		slot.cancel()
		delete(s.tasks, modality)
	}
	s.mu.Unlock()

	s.cancel()
	_ = s.conn.Close()
	m.metrics.SessionClosed()
	m.l.Infof(context.Background(), "session %s disconnected", s.ID)
}

// Dispatch routes one text websocket message. Malformed or unknown messages
// are logged and dropped; they never tear the session down.
func (m *Manager) Dispatch(s *Session, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		m.l.Warnf(s.ctx, "session %s: invalid message: %v", s.ID, err)
		m.metrics.MessageDropped()
		return
	}

	switch env.Type {
	case "message":
		content := strings.TrimSpace(env.Content)
		if content == "" {
			m.l.Warnf(s.ctx, "session %s: empty message content", s.ID)
			m.metrics.MessageDropped()
			return
		}
		m.startTask(s, ModalityText, func(ctx context.Context) interface{} {
			return m.handleText(ctx, content)
		})

	case "frame":
		var payload FramePayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			m.l.Warnf(s.ctx, "session %s: invalid frame payload: %v", s.ID, err)
			m.metrics.MessageDropped()
			return
		}
		frame, err := base64.StdEncoding.DecodeString(payload.Video)
		if err != nil {
			m.l.Warnf(s.ctx, "session %s: frame is not valid base64: %v", s.ID, err)
			m.metrics.MessageDropped()
			return
		}
		m.startTask(s, ModalityVideo, func(ctx context.Context) interface{} {
			return m.handleFrame(ctx, s.ID, frame)
		})

	case "audio":
		var payload AudioPayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			m.l.Warnf(s.ctx, "session %s: invalid audio payload: %v", s.ID, err)
			m.metrics.MessageDropped()
			return
		}
		audio, err := base64.StdEncoding.DecodeString(payload.Audio)
		if err != nil {
			m.l.Warnf(s.ctx, "session %s: audio is not valid base64: %v", s.ID, err)
			m.metrics.MessageDropped()
			return
		}
		m.startTask(s, ModalityAudio, func(ctx context.Context) interface{} {
			return m.handleAudio(ctx, audio)
		})

	case "settings":
		m.l.Infof(s.ctx, "session %s settings: %s", s.ID, string(raw))

	default:
		m.l.Warnf(s.ctx, "session %s: unknown message type %q", s.ID, env.Type)
		m.metrics.MessageDropped()
	}
}

// DispatchBinary treats a raw binary websocket message as a video frame,
// for clients that skip the JSON envelope.
func (m *Manager) DispatchBinary(s *Session, frame []byte) {
	m.startTask(s, ModalityVideo, func(ctx context.Context) interface{} {
		return m.handleFrame(ctx, s.ID, frame)
	})
}

// startTask claims the modality lane, runs fn and delivers its result. If a
// newer task claims the lane before fn finishes, the result is discarded. A
// nil result means no reply.
func (m *Manager) startTask(s *Session, modality Modality, fn func(ctx context.Context) interface{}) {
	ctx, gen, superseded, ok := s.begin(modality)
	if !ok {
		return
	}
	if superseded {
		m.metrics.TaskSuperseded()
		m.l.Debugf(ctx, "session %s: superseded %s task", s.ID, modality)
	}

	go func() {
		result := fn(ctx)
		defer s.finish(modality, gen)
		if result == nil || ctx.Err() != nil {
			return
		}
		m.deliver(s, modality, gen, result)
	}()
}

// deliver writes a task result, but only while its generation still owns
// the lane. A write failure tears the session down.
func (m *Manager) deliver(s *Session, modality Modality, gen uint64, result interface{}) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	slot := s.tasks[modality]
	if slot == nil || slot.gen != gen {
		s.mu.Unlock()
		return
	}
	err := s.conn.WriteJSON(result)
	s.mu.Unlock()

	if err != nil {
		m.l.Warnf(s.ctx, "session %s: write failed: %v", s.ID, err)
		m.Disconnect(s.ID)
	}
}

// write sends v outside the task path, still serialized via the session
// mutex.
func (m *Manager) write(s *Session, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	return s.conn.WriteJSON(v)
}

func (m *Manager) handleFrame(ctx context.Context, sessionID string, frame []byte) interface{} {
	result, err := m.vision.Process(ctx, sessionID, frame)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return &ErrorMessage{Error: fmt.Sprintf("Error processing video frame: %v", err)}
	}
	return &ResultMessage{
		Captions:      result.Captions,
		VoiceFeedback: result.VoiceFeedback,
		Objects:       result.Objects,
	}
}

func (m *Manager) handleText(ctx context.Context, content string) interface{} {
	answer, err := m.agent.ProcessQuery(ctx, content)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		m.l.Errorf(ctx, "agent query failed: %v", err)
		return &ErrorMessage{Error: fmt.Sprintf("Error handling user message: %v", err)}
	}
	return m.answerResult(ctx, content, answer)
}

func (m *Manager) handleAudio(ctx context.Context, audio []byte) interface{} {
	if m.transcriber == nil {
		return &ErrorMessage{Error: "Error processing audio: speech recognition is not configured"}
	}
	transcript, err := m.transcriber.Transcribe(ctx, audio)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		m.l.Errorf(ctx, "transcription failed: %v", err)
		return &ErrorMessage{Error: fmt.Sprintf("Error processing audio: %v", err)}
	}
	if strings.TrimSpace(transcript) == "" {
		m.l.Warnf(ctx, "transcription produced no text, dropping utterance")
		return nil
	}
	return m.handleText(ctx, transcript)
}

// answerResult wraps an agent answer: an echo caption of what the user
// said, the answer as voice feedback, and best-effort TTS audio.
func (m *Manager) answerResult(ctx context.Context, query, answer string) *ResultMessage {
	now := model.UnixNow()
	result := &ResultMessage{
		Captions: []model.Caption{{
			ID:        uuid.NewString(),
			Text:      query,
			Type:      model.CaptionAudio,
			Priority:  model.PriorityMedium,
			Timestamp: now,
		}},
		VoiceFeedback: &model.VoiceFeedback{
			Text:      answer,
			Priority:  model.PriorityHigh,
			Timestamp: now,
		},
	}

	if m.synthesizer != nil {
		audio, err := m.synthesizer.Synthesize(ctx, answer)
		if err != nil {
			m.l.Warnf(ctx, "speech synthesis failed: %v", err)
		} else {
			result.Audio = base64.StdEncoding.EncodeToString(audio)
		}
	}
	return result
}
