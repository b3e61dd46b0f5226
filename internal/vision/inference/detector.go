package inference

import (
	"context"

	"vision-assist/internal/vision"
	"vision-assist/pkg/detector"
	"vision-assist/pkg/ocr"
)

// ObjectDetector wraps the detection sidecar client.
type ObjectDetector struct {
	client *detector.Client
}

// NewObjectDetector creates an object detector on top of the sidecar client.
func NewObjectDetector(client *detector.Client) *ObjectDetector {
	return &ObjectDetector{client: client}
}

// Detect runs the sidecar and converts its response.
func (d *ObjectDetector) Detect(ctx context.Context, frame []byte) ([]vision.RawDetection, error) {
	detections, err := d.client.Detect(ctx, &detector.DetectRequest{
		Image:    frame,
		MIMEType: "image/jpeg",
	})
	if err != nil {
		return nil, err
	}

	out := make([]vision.RawDetection, len(detections))
	for i, det := range detections {
		out[i] = vision.RawDetection{
			Label:      det.Label,
			Confidence: det.Confidence,
			BBox:       det.BBox,
		}
	}
	return out, nil
}

// TextRecognizer wraps the OCR sidecar client.
type TextRecognizer struct {
	client   *ocr.Client
	language string
}

// NewTextRecognizer creates a text recognizer on top of the sidecar client.
// language may be empty; the sidecar then uses its default.
func NewTextRecognizer(client *ocr.Client, language string) *TextRecognizer {
	return &TextRecognizer{client: client, language: language}
}

// Recognize runs the sidecar and converts its response.
func (t *TextRecognizer) Recognize(ctx context.Context, frame []byte) ([]vision.RawText, error) {
	words, err := t.client.Recognize(ctx, &ocr.RecognizeRequest{
		Image:    frame,
		MIMEType: "image/jpeg",
		Language: t.language,
	})
	if err != nil {
		return nil, err
	}

	out := make([]vision.RawText, len(words))
	for i, w := range words {
		out[i] = vision.RawText{
			Text:       w.Text,
			Confidence: w.Confidence,
			BBox:       w.BBox,
		}
	}
	return out, nil
}
