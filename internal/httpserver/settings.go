package httpserver

import (
	"github.com/gin-gonic/gin"

	"vision-assist/internal/model"
	"vision-assist/pkg/response"
)

func (srv *HTTPServer) getSettings(c *gin.Context) {
	srv.settingsMu.RLock()
	settings := srv.lastSettings
	srv.settingsMu.RUnlock()

	response.OK(c, gin.H{"settings": settings})
}

func (srv *HTTPServer) updateSettings(c *gin.Context) {
	var settings model.UserSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		response.Error(c, err, nil)
		return
	}

	srv.settingsMu.Lock()
	srv.lastSettings = settings
	srv.settingsMu.Unlock()

	srv.l.Infof(c.Request.Context(), "settings updated: %+v", settings)
	response.OK(c, gin.H{"status": "success", "settings": settings})
}
