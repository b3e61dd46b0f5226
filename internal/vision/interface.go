package vision

import (
	"context"

	"vision-assist/internal/model"
)

// UseCase defines the business logic interface for the frame pipeline.
type UseCase interface {
	// Process runs one camera frame through the pipeline. Decimated frames
	// are answered from the per-session cache with a fresh frame id.
	Process(ctx context.Context, sessionID string, frame []byte) (model.FrameResult, error)
}
