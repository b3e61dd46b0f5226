package model

import "time"

// Direction is the horizontal position of an object relative to the camera.
type Direction string

const (
	DirectionLeft   Direction = "left"
	DirectionCenter Direction = "center"
	DirectionRight  Direction = "right"
)

// CaptionType distinguishes captions derived from vision vs speech.
type CaptionType string

const (
	CaptionVisual CaptionType = "visual"
	CaptionAudio  CaptionType = "audio"
)

// CaptionPriority ranks captions for the client UI and screen readers.
type CaptionPriority string

const (
	PriorityLow    CaptionPriority = "low"
	PriorityMedium CaptionPriority = "medium"
	PriorityHigh   CaptionPriority = "high"
)

// DetectedObject is a single object found in a frame, with the derived
// spatial hints the client narrates to the user.
type DetectedObject struct {
	Name       string     `json:"name"`
	Confidence float64    `json:"confidence"`
	BBox       [4]float64 `json:"bbox"` // x1, y1, x2, y2 in pixel space
	Distance   float64    `json:"distance"` // heuristic estimate, meters
	Direction  Direction  `json:"direction"`
}

// DetectedText is a recognized text region. The privacy flags are set by the
// privacy filter and gate the text from all user-facing output.
type DetectedText struct {
	Text         string     `json:"text"`
	Confidence   float64    `json:"confidence"`
	BBox         [4]float64 `json:"bbox"`
	IsCardNumber bool       `json:"is_card_number"`
	IsSensitive  bool       `json:"is_sensitive"`
}

// Caption is a single piece of synthesized text shown to the user.
type Caption struct {
	ID        string          `json:"id"`
	Text      string          `json:"text"`
	Type      CaptionType     `json:"type"`
	Priority  CaptionPriority `json:"priority"`
	Timestamp float64         `json:"timestamp"`
}

// VoiceFeedback is the single spoken alert chosen for a frame or query.
type VoiceFeedback struct {
	Text      string          `json:"text"`
	Priority  CaptionPriority `json:"priority"`
	Timestamp float64         `json:"timestamp"`
}

// ObjectSummary is the compact per-object payload sent to the client.
type ObjectSummary struct {
	Name      string    `json:"name"`
	Distance  float64   `json:"distance"`
	Direction Direction `json:"direction"`
}

// FrameResult is the full output of one frame-pipeline pass. Skipped frames
// reuse the previous result with a freshly minted FrameID.
type FrameResult struct {
	Captions        []Caption        `json:"captions"`
	VoiceFeedback   *VoiceFeedback   `json:"voiceFeedback"`
	Objects         []ObjectSummary  `json:"objects"`
	RawDescription  string           `json:"raw_description,omitempty"`
	DetectedObjects []DetectedObject `json:"detected_objects,omitempty"`
	DetectedTexts   []DetectedText   `json:"detected_texts,omitempty"`
	FrameID         string           `json:"frame_id"`
}

// UnixNow returns the current time as fractional Unix seconds, the timestamp
// representation used on the wire.
func UnixNow() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}
