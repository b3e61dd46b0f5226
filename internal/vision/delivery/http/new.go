package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"vision-assist/internal/vision"
	"vision-assist/pkg/log"
)

// Agent answers an optional question about the analyzed image.
type Agent interface {
	ProcessQuery(ctx context.Context, query string) (string, error)
}

// Handler is the public interface for the vision HTTP delivery layer.
type Handler interface {
	Analyze(c *gin.Context)
}

type handler struct {
	l     log.Logger
	uc    vision.UseCase
	agent Agent
}

// New creates a new HTTP handler for the vision domain. agent may be nil;
// analyze requests with a question then return the frame result alone.
func New(l log.Logger, uc vision.UseCase, agent Agent) *handler {
	return &handler{
		l:     l,
		uc:    uc,
		agent: agent,
	}
}
