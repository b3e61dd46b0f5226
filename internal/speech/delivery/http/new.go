package http

import (
	"github.com/gin-gonic/gin"

	"vision-assist/internal/speech"
	"vision-assist/pkg/log"
)

// Handler is the public interface for the speech HTTP delivery layer.
type Handler interface {
	Speak(c *gin.Context)
}

type handler struct {
	l           log.Logger
	synthesizer speech.Synthesizer
}

// New creates a new HTTP handler for the speech domain.
func New(l log.Logger, synthesizer speech.Synthesizer) *handler {
	return &handler{
		l:           l,
		synthesizer: synthesizer,
	}
}
