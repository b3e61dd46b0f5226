package httpserver

import (
	"errors"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	agentHTTP "vision-assist/internal/agent/delivery/http"
	"vision-assist/internal/model"
	speechHTTP "vision-assist/internal/speech/delivery/http"
	visionHTTP "vision-assist/internal/vision/delivery/http"
	"vision-assist/pkg/log"
)

// WSHandler serves the websocket endpoint.
type WSHandler interface {
	Serve(c *gin.Context)
}

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	visionHandler visionHTTP.Handler
	agentHandler  agentHTTP.Handler
	speechHandler speechHTTP.Handler
	wsHandler     WSHandler

	gatherer prometheus.Gatherer

	allowedOrigins []string

	// Settings are accepted and echoed back; clients keep the
	// authoritative copy. The last accepted payload is retained so GET
	// has something to return.
	settingsMu   sync.RWMutex
	lastSettings model.UserSettings
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	VisionHandler visionHTTP.Handler
	AgentHandler  agentHTTP.Handler
	SpeechHandler speechHTTP.Handler
	WSHandler     WSHandler

	// Gatherer backs GET /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer

	AllowedOrigins []string
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:              logger,
		gin:            gin.New(),
		port:           cfg.Port,
		mode:           cfg.Mode,
		environment:    cfg.Environment,
		visionHandler:  cfg.VisionHandler,
		agentHandler:   cfg.AgentHandler,
		speechHandler:  cfg.SpeechHandler,
		wsHandler:      cfg.WSHandler,
		gatherer:       cfg.Gatherer,
		allowedOrigins: cfg.AllowedOrigins,
		lastSettings:   model.DefaultUserSettings(),
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}
