package vision

import (
	"context"
	"time"

	"vision-assist/internal/model"
)

// Config holds frame pipeline tuning knobs.
type Config struct {
	// ProcessEveryN keeps only every Nth frame for full processing.
	ProcessEveryN int
	// DetectionConfidenceThreshold drops detections below this score.
	DetectionConfidenceThreshold float64
	// OCRConfidenceThreshold drops text regions below this score.
	OCRConfidenceThreshold float64
	// EnableOCR toggles the text-recognition collaborator.
	EnableOCR bool
	// SessionCacheSize bounds the number of tracked sessions.
	SessionCacheSize int
	// SessionCacheTTL ages out state for sessions that stopped sending frames.
	SessionCacheTTL time.Duration
}

// Normalize fills zero values with defaults.
func (c *Config) Normalize() {
	if c.ProcessEveryN <= 0 {
		c.ProcessEveryN = 10
	}
	if c.DetectionConfidenceThreshold <= 0 {
		c.DetectionConfidenceThreshold = 0.5
	}
	if c.OCRConfidenceThreshold <= 0 {
		c.OCRConfidenceThreshold = 0.6
	}
	if c.SessionCacheSize <= 0 {
		c.SessionCacheSize = 1024
	}
	if c.SessionCacheTTL <= 0 {
		c.SessionCacheTTL = 10 * time.Minute
	}
}

// RawDetection is an object reported by the detection collaborator.
// BBox is [x, y, width, height] normalized to the frame dimensions.
type RawDetection struct {
	Label      string
	Confidence float64
	BBox       [4]float64
}

// RawText is a text region reported by the recognition collaborator.
// BBox is normalized like RawDetection.
type RawText struct {
	Text       string
	Confidence float64
	BBox       [4]float64
}

// SceneDescriber produces a natural-language description of a frame.
type SceneDescriber interface {
	Describe(ctx context.Context, frame []byte) (string, error)
}

// ObjectDetector reports objects in a frame.
type ObjectDetector interface {
	Detect(ctx context.Context, frame []byte) ([]RawDetection, error)
}

// TextRecognizer reports text regions in a frame.
type TextRecognizer interface {
	Recognize(ctx context.Context, frame []byte) ([]RawText, error)
}

// Memory receives pipeline results as a side effect of processing.
type Memory interface {
	RecordObjects(objects []model.DetectedObject)
	RecordTexts(texts []model.DetectedText)
	RecordScene(description string)
}
