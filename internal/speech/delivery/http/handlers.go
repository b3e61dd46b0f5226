package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vision-assist/pkg/response"
)

type speakReq struct {
	Text string `json:"text"`
}

// Speak renders text as speech and streams it back as audio.
func (h *handler) Speak(c *gin.Context) {
	ctx := c.Request.Context()

	var req speakReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err, nil)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		response.Error(c, errors.New("text is required"), nil)
		return
	}

	audio, err := h.synthesizer.Synthesize(ctx, req.Text)
	if err != nil {
		h.l.Errorf(ctx, "synthesizer.Synthesize: %v", err)
		response.InternalError(c, err)
		return
	}

	c.Data(http.StatusOK, "audio/mpeg", audio)
}
