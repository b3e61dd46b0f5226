package http

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

type askReq struct {
	Question  string `json:"question"`
	ImageData string `json:"image_data"`
}

func (r askReq) validate() error {
	if strings.TrimSpace(r.Question) == "" {
		return errors.New("question is required")
	}
	return nil
}

// frame decodes the optional base64 image, tolerating a data-URL prefix.
// Returns nil when no image was sent.
func (r askReq) frame() ([]byte, error) {
	if r.ImageData == "" {
		return nil, nil
	}
	raw := r.ImageData
	if idx := strings.Index(raw, ","); idx >= 0 {
		raw = raw[idx+1:]
	}
	return base64.StdEncoding.DecodeString(raw)
}

func (h *handler) processAskReq(c *gin.Context) (askReq, error) {
	var req askReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}
