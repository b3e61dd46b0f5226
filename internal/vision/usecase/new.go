package usecase

import (
	"sync"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"vision-assist/internal/metrics"
	"vision-assist/internal/model"
	"vision-assist/internal/vision"
	pkgLog "vision-assist/pkg/log"
)

// sessionState tracks decimation progress for one connection. The mutex
// single-flights frame processing per session.
type sessionState struct {
	mu      sync.Mutex
	counter int
	cached  *model.FrameResult
}

type implUseCase struct {
	l        pkgLog.Logger
	cfg      vision.Config
	scene    vision.SceneDescriber
	detector vision.ObjectDetector
	ocr      vision.TextRecognizer
	mem      vision.Memory
	metrics  *metrics.Metrics
	sessions *expirable.LRU[string, *sessionState]
}

// New creates a new frame pipeline UseCase instance.
func New(
	l pkgLog.Logger,
	cfg vision.Config,
	scene vision.SceneDescriber,
	detector vision.ObjectDetector,
	ocr vision.TextRecognizer,
	mem vision.Memory,
	m *metrics.Metrics,
) *implUseCase {
	cfg.Normalize()
	return &implUseCase{
		l:        l,
		cfg:      cfg,
		scene:    scene,
		detector: detector,
		ocr:      ocr,
		mem:      mem,
		metrics:  m,
		sessions: expirable.NewLRU[string, *sessionState](cfg.SessionCacheSize, nil, cfg.SessionCacheTTL),
	}
}

func (uc *implUseCase) sessionState(id string) *sessionState {
	if st, ok := uc.sessions.Get(id); ok {
		return st
	}
	st := &sessionState{}
	uc.sessions.Add(id, st)
	return st
}
