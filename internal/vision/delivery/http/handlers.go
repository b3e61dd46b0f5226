package http

import (
	"github.com/google/uuid"

	"github.com/gin-gonic/gin"

	"vision-assist/internal/model"
	"vision-assist/pkg/response"
)

// Analyze runs a single uploaded image through the frame pipeline. When a
// question rides along, the agent answers it against the updated context
// and the answer replaces the frame's voice feedback.
func (h *handler) Analyze(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processAnalyzeReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	frame, err := req.frame()
	if err != nil {
		h.l.Warnf(ctx, "analyze: invalid image encoding: %v", err)
		response.Error(c, err, nil)
		return
	}

	// One-off requests get their own pipeline session so they never hit
	// another client's decimation cache.
	result, err := h.uc.Process(ctx, "rest-"+uuid.NewString(), frame)
	if err != nil {
		h.l.Errorf(ctx, "uc.Process: %v", err)
		response.InternalError(c, err)
		return
	}

	if req.Query != "" && h.agent != nil {
		answer, err := h.agent.ProcessQuery(ctx, req.Query)
		if err != nil {
			h.l.Errorf(ctx, "agent.ProcessQuery: %v", err)
		} else {
			result.VoiceFeedback = &model.VoiceFeedback{
				Text:      answer,
				Priority:  model.PriorityHigh,
				Timestamp: model.UnixNow(),
			}
		}
	}

	response.OK(c, result)
}
