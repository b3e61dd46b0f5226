package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"vision-assist/config"
	"vision-assist/internal/agent"
	agentHTTP "vision-assist/internal/agent/delivery/http"
	"vision-assist/internal/agent/orchestrator"
	"vision-assist/internal/agent/tools"
	"vision-assist/internal/httpserver"
	"vision-assist/internal/memory"
	"vision-assist/internal/metrics"
	"vision-assist/internal/session"
	wsDelivery "vision-assist/internal/session/delivery/ws"
	"vision-assist/internal/speech"
	speechHTTP "vision-assist/internal/speech/delivery/http"
	"vision-assist/internal/vision"
	visionHTTP "vision-assist/internal/vision/delivery/http"
	"vision-assist/internal/vision/inference"
	visionUC "vision-assist/internal/vision/usecase"
	"vision-assist/pkg/detector"
	"vision-assist/pkg/llmprovider"
	"vision-assist/pkg/log"
	"vision-assist/pkg/ocr"
	"vision-assist/pkg/openai"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting vision-assist...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Metrics
	var m *metrics.Metrics
	var gatherer prometheus.Gatherer
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector())
		m = metrics.New(registry)
		gatherer = registry
	}

	// 4. LLM provider chain
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize LLM providers: %v", err)
		return
	}
	retryDelay, maxTotalTimeout := cfg.LLM.ManagerDurations()
	llmManager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      retryDelay,
		MaxTotalTimeout: maxTotalTimeout,
	}, logger)
	logger.Infof(ctx, "LLM provider chain ready (%d providers)", len(providers))

	// 5. Contextual memory
	mem := memory.New(memory.Config{
		MaxMessages: cfg.Memory.MaxMessages,
		RecordTTL:   cfg.Memory.RecordTTL,
	})

	// 6. Detection / OCR sidecars
	detectorClient, err := detector.New(cfg.Detector.BaseURL)
	if err != nil {
		logger.Errorf(ctx, "Failed to create detector client: %v", err)
		return
	}
	ocrClient, err := ocr.New(cfg.OCR.BaseURL)
	if err != nil {
		logger.Errorf(ctx, "Failed to create OCR client: %v", err)
		return
	}

	// 7. Frame pipeline
	sceneDescriber := inference.NewSceneDescriber(llmManager, 0)
	visionUseCase := visionUC.New(
		logger,
		vision.Config{
			ProcessEveryN:                cfg.Vision.ProcessEveryN,
			DetectionConfidenceThreshold: cfg.Vision.DetectionConfidenceThreshold,
			OCRConfidenceThreshold:       cfg.Vision.OCRConfidenceThreshold,
			EnableOCR:                    cfg.Vision.EnableOCR,
			SessionCacheSize:             cfg.Vision.SessionCacheSize,
			SessionCacheTTL:              cfg.Vision.SessionCacheTTL,
		},
		sceneDescriber,
		inference.NewObjectDetector(detectorClient),
		inference.NewTextRecognizer(ocrClient, cfg.OCR.Language),
		mem,
		m,
	)

	// 8. Conversational agent
	registry := agent.NewToolRegistry()
	registry.Register(tools.NewDescribeSceneTool(mem))
	registry.Register(tools.NewIdentifyObjectsTool(mem))
	registry.Register(tools.NewReadTextTool(mem))
	registry.Register(tools.NewCheckHazardsTool(mem))
	registry.Register(tools.NewIdentifyCurrencyTool(mem))
	registry.Register(tools.NewSearchMemoryTool(mem))
	agentOrchestrator := orchestrator.New(llmManager, registry, mem, logger)

	// 9. Speech (optional, needs an OpenAI key)
	var transcriber speech.Transcriber
	var synthesizer speech.Synthesizer
	if cfg.OpenAI.APIKey != "" {
		openaiClient, oErr := openai.New(openai.Config{
			APIKey:   cfg.OpenAI.APIKey,
			BaseURL:  cfg.OpenAI.BaseURL,
			STTModel: cfg.OpenAI.STTModel,
			TTSModel: cfg.OpenAI.TTSModel,
			TTSVoice: cfg.OpenAI.TTSVoice,
		})
		if oErr != nil {
			logger.Warnf(ctx, "Speech disabled: %v", oErr)
		} else {
			speechService := speech.New(openaiClient)
			transcriber = speechService
			synthesizer = speechService
			logger.Info(ctx, "Speech service ready")
		}
	} else {
		logger.Warn(ctx, "OPENAI_API_KEY not set, speech features disabled")
	}

	// 10. Session manager + websocket delivery
	sessionManager := session.New(logger, visionUseCase, agentOrchestrator, transcriber, synthesizer, m)
	wsHandler := wsDelivery.New(logger, sessionManager, wsDelivery.Config{
		MaxMessageBytes: cfg.Websocket.MaxMessageBytes,
		MessagesPerMin:  cfg.Websocket.MessagesPerMin,
		WriteTimeout:    cfg.Websocket.WriteTimeout,
	}, m)

	// 11. REST delivery
	visionHandler := visionHTTP.New(logger, visionUseCase, agentOrchestrator)
	agentHandler := agentHTTP.New(logger, agentOrchestrator, visionUseCase, synthesizer)
	var speechHandler speechHTTP.Handler
	if synthesizer != nil {
		speechHandler = speechHTTP.New(logger, synthesizer)
	}

	// 12. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:         logger,
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		Environment:    cfg.Environment.Name,
		VisionHandler:  visionHandler,
		AgentHandler:   agentHandler,
		SpeechHandler:  speechHandler,
		WSHandler:      wsHandler,
		Gatherer:       gatherer,
		AllowedOrigins: cfg.HTTPServer.AllowedOrigins,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 13. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
