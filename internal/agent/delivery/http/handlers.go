package http

import (
	"encoding/base64"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vision-assist/internal/model"
	"vision-assist/pkg/response"
)

type askResp struct {
	TextResponse   string             `json:"text_response"`
	AudioResponse  string             `json:"audio_response,omitempty"`
	ProcessedFrame *model.FrameResult `json:"processed_frame,omitempty"`
}

// Ask answers a free-form question. An optional image is pushed through
// the frame pipeline first so the agent sees it in the shared context. The
// spoken answer is best effort.
func (h *handler) Ask(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processAskReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	frame, err := req.frame()
	if err != nil {
		h.l.Warnf(ctx, "ask: invalid image encoding: %v", err)
		response.Error(c, err, nil)
		return
	}

	var processed *model.FrameResult
	if len(frame) > 0 && h.vision != nil {
		result, err := h.vision.Process(ctx, "rest-"+uuid.NewString(), frame)
		if err != nil {
			h.l.Errorf(ctx, "uc.Process: %v", err)
			response.InternalError(c, err)
			return
		}
		processed = &result
	}

	answer, err := h.agent.ProcessQuery(ctx, req.Question)
	if err != nil {
		h.l.Errorf(ctx, "agent.ProcessQuery: %v", err)
		response.InternalError(c, err)
		return
	}

	resp := askResp{
		TextResponse:   answer,
		ProcessedFrame: processed,
	}

	if h.synthesizer != nil {
		audio, err := h.synthesizer.Synthesize(ctx, answer)
		if err != nil {
			h.l.Warnf(ctx, "speech synthesis failed: %v", err)
		} else {
			resp.AudioResponse = fmt.Sprintf("data:audio/mp3;base64,%s", base64.StdEncoding.EncodeToString(audio))
		}
	}

	response.OK(c, resp)
}
