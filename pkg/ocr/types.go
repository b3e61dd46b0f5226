package ocr

// RecognizeRequest is the sidecar request body.
type RecognizeRequest struct {
	Image    []byte `json:"image"`
	MIMEType string `json:"mime_type,omitempty"`
	Language string `json:"language,omitempty"`
}

// Word is one recognized text region. BBox is [x, y, width, height]
// normalized to the frame dimensions.
type Word struct {
	Text       string     `json:"text"`
	Confidence float64    `json:"confidence"`
	BBox       [4]float64 `json:"bbox"`
}

// RecognizeResponse is the sidecar response body.
type RecognizeResponse struct {
	Words []Word `json:"words"`
}

// ErrorResponse is the sidecar error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
