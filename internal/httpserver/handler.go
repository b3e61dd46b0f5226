package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	agentHTTP "vision-assist/internal/agent/delivery/http"
	"vision-assist/internal/middleware"
	speechHTTP "vision-assist/internal/speech/delivery/http"
	visionHTTP "vision-assist/internal/vision/delivery/http"
)

func (srv *HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()
	srv.registerDomainRoutes()
	return nil
}

func (srv *HTTPServer) registerMiddlewares() {
	mw := middleware.New(srv.l, srv.allowedOrigins)

	srv.gin.Use(gin.Recovery())
	srv.gin.Use(mw.CORS())
	srv.gin.Use(mw.RequestLog())
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	if srv.gatherer != nil {
		srv.gin.GET("/metrics", gin.WrapH(promhttp.HandlerFor(srv.gatherer, promhttp.HandlerOpts{})))
	}
}

func (srv *HTTPServer) registerDomainRoutes() {
	ctx := context.Background()

	if srv.wsHandler != nil {
		srv.gin.GET("/ws", srv.wsHandler.Serve)
		srv.l.Infof(ctx, "WebSocket route registered at GET /ws")
	} else {
		srv.l.Warn(ctx, "WebSocket handler not configured, skipping /ws route")
	}

	api := srv.gin.Group("/api/v1")

	if srv.visionHandler != nil {
		visionHTTP.RegisterRoutes(api, srv.visionHandler)
		srv.l.Infof(ctx, "Vision routes registered at POST /api/v1/analyze")
	}
	if srv.agentHandler != nil {
		agentHTTP.RegisterRoutes(api, srv.agentHandler)
		srv.l.Infof(ctx, "Agent routes registered at POST /api/v1/ask")
	}
	if srv.speechHandler != nil {
		speechHTTP.RegisterRoutes(api, srv.speechHandler)
		srv.l.Infof(ctx, "Speech routes registered at POST /api/v1/speak")
	}

	api.GET("/settings", srv.getSettings)
	api.POST("/settings", srv.updateSettings)
}
