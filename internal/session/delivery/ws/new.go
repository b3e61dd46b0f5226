package ws

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"vision-assist/internal/metrics"
	"vision-assist/internal/session"
	pkgLog "vision-assist/pkg/log"
)

// Config tunes the websocket endpoint.
type Config struct {
	// MaxMessageBytes caps a single inbound message. Frames arrive base64
	// encoded inside JSON, so this must fit an encoded camera frame.
	MaxMessageBytes int64

	// MessagesPerMin rate-limits inbound messages per client IP.
	// Zero disables the limiter.
	MessagesPerMin int

	// WriteTimeout bounds a single write to a slow client.
	WriteTimeout time.Duration
}

func (c *Config) normalize() {
	if c.MaxMessageBytes <= 0 {
		c.MaxMessageBytes = 8 << 20
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 10 * time.Second
	}
}

// Handler upgrades HTTP requests and pumps messages into the session
// manager.
type Handler struct {
	l        pkgLog.Logger
	manager  *session.Manager
	cfg      Config
	metrics  *metrics.Metrics
	limiter  *rateLimiter
	upgrader websocket.Upgrader
}

func New(l pkgLog.Logger, manager *session.Manager, cfg Config, m *metrics.Metrics) *Handler {
	cfg.normalize()
	var limiter *rateLimiter
	if cfg.MessagesPerMin > 0 {
		limiter = newRateLimiter(cfg.MessagesPerMin)
	}
	return &Handler{
		l:       l,
		manager: manager,
		cfg:     cfg,
		metrics: m,
		limiter: limiter,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Clients are mobile apps and local tooling, not browsers.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}
