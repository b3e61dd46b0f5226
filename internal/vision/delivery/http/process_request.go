package http

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

type analyzeReq struct {
	Image string `json:"image"`
	Query string `json:"query"`
}

func (r analyzeReq) validate() error {
	if strings.TrimSpace(r.Image) == "" {
		return errors.New("image is required")
	}
	return nil
}

// frame decodes the base64 image, tolerating a data-URL prefix.
func (r analyzeReq) frame() ([]byte, error) {
	raw := r.Image
	if idx := strings.Index(raw, ","); idx >= 0 && strings.HasPrefix(raw, "data:") {
		raw = raw[idx+1:]
	}
	return base64.StdEncoding.DecodeString(raw)
}

func (h *handler) processAnalyzeReq(c *gin.Context) (analyzeReq, error) {
	var req analyzeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}
