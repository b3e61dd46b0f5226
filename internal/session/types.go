package session

import (
	"context"
	"encoding/json"

	"vision-assist/internal/model"
)

// Modality identifies the task lane a client message belongs to. A session
// runs at most one in-flight task per modality; a newer message in the same
// lane supersedes the older one.
type Modality string

const (
	ModalityVideo Modality = "video"
	ModalityAudio Modality = "audio"
	ModalityText  Modality = "text"
)

// Conn is the transport a session writes to. The websocket delivery layer
// adapts *websocket.Conn to this so the manager can be tested without a
// real socket.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Agent answers free-form user questions about the scene.
type Agent interface {
	ProcessQuery(ctx context.Context, query string) (string, error)
}

// Envelope is the outer shape of every inbound client message.
type Envelope struct {
	Type    string          `json:"type"`
	Content string          `json:"content,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// FramePayload carries one camera frame, base64 encoded.
type FramePayload struct {
	Video     string  `json:"video"`
	Audio     string  `json:"audio,omitempty"`
	Timestamp float64 `json:"timestamp"`
}

// AudioPayload carries one recorded utterance, base64 encoded.
type AudioPayload struct {
	Audio     string  `json:"audio"`
	Timestamp float64 `json:"timestamp"`
}

// ErrorMessage is the error shape sent to the client.
type ErrorMessage struct {
	Error string `json:"error"`
}

// ResultMessage is the reply for frames, messages and audio alike. Audio is
// base64 TTS of the agent's answer, set on a best-effort basis.
type ResultMessage struct {
	Captions      []model.Caption       `json:"captions"`
	VoiceFeedback *model.VoiceFeedback  `json:"voiceFeedback,omitempty"`
	Objects       []model.ObjectSummary `json:"objects,omitempty"`
	Audio         string                `json:"audio,omitempty"`
}
