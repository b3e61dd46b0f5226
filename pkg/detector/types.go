package detector

// DetectRequest is the sidecar request body. Image bytes are base64-encoded
// by the JSON marshaller.
type DetectRequest struct {
	Image    []byte  `json:"image"`
	MIMEType string  `json:"mime_type,omitempty"`
	MinScore float64 `json:"min_score,omitempty"`
}

// Detection is one detected object. BBox is [x, y, width, height] normalized
// to the frame dimensions.
type Detection struct {
	Label      string     `json:"label"`
	Confidence float64    `json:"confidence"`
	BBox       [4]float64 `json:"bbox"`
}

// DetectResponse is the sidecar response body.
type DetectResponse struct {
	Detections []Detection `json:"detections"`
}

// ErrorResponse is the sidecar error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
