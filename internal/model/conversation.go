package model

// MessageRole identifies the author of a conversation message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is one turn of the user/assistant transcript.
type Message struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp float64     `json:"timestamp"`
}

// ConversationContext is a read-only snapshot of everything the service
// currently remembers: the transcript, live detections, and the latest scene.
type ConversationContext struct {
	Messages         []Message        `json:"messages"`
	DetectedObjects  []DetectedObject `json:"detected_objects"`
	DetectedTexts    []DetectedText   `json:"detected_texts"`
	SceneDescription string           `json:"current_scene_description,omitempty"`
	LastProcessedAt  float64          `json:"last_processed_timestamp,omitempty"`
}
