package vision

import "errors"

var (
	// ErrEmptyFrame indicates the client sent a frame with no payload.
	ErrEmptyFrame = errors.New("empty frame")

	// ErrDecodeFrame indicates the frame bytes are not a decodable image.
	ErrDecodeFrame = errors.New("failed to decode frame")
)
