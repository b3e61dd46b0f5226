package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"vision-assist/internal/speech"
	"vision-assist/internal/vision"
	"vision-assist/pkg/log"
)

// Agent is the conversational entry point this layer fronts.
type Agent interface {
	ProcessQuery(ctx context.Context, query string) (string, error)
}

// Handler is the public interface for the agent HTTP delivery layer.
type Handler interface {
	Ask(c *gin.Context)
}

type handler struct {
	l           log.Logger
	agent       Agent
	vision      vision.UseCase
	synthesizer speech.Synthesizer
}

// New creates a new HTTP handler for the agent domain. vision and
// synthesizer may be nil; image context and spoken answers are then
// skipped.
func New(l log.Logger, agent Agent, uc vision.UseCase, synthesizer speech.Synthesizer) *handler {
	return &handler{
		l:           l,
		agent:       agent,
		vision:      uc,
		synthesizer: synthesizer,
	}
}
