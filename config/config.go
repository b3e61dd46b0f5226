package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Assistive vision specifics
	Vision    VisionConfig
	Memory    MemoryConfig
	Detector  DetectorConfig
	OCR       OCRConfig
	OpenAI    OpenAIConfig
	Websocket WebsocketConfig
	Metrics   MetricsConfig

	// LLM Provider Abstraction
	LLM LLMConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port           int
	Mode           string
	AllowedOrigins []string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// VisionConfig tunes the frame pipeline.
type VisionConfig struct {
	ProcessEveryN                int
	DetectionConfidenceThreshold float64
	OCRConfidenceThreshold       float64
	EnableOCR                    bool
	SessionCacheSize             int
	SessionCacheTTL              time.Duration
}

// MemoryConfig tunes the shared contextual memory.
type MemoryConfig struct {
	MaxMessages int
	RecordTTL   time.Duration
}

// DetectorConfig points at the object detection sidecar.
type DetectorConfig struct {
	BaseURL string
}

// OCRConfig points at the text recognition sidecar.
type OCRConfig struct {
	BaseURL  string
	Language string
}

// OpenAIConfig covers the speech features (Whisper STT, TTS).
type OpenAIConfig struct {
	APIKey   string
	BaseURL  string
	STTModel string
	TTSModel string
	TTSVoice string
}

// WebsocketConfig tunes the realtime endpoint.
type WebsocketConfig struct {
	MaxMessageBytes int64
	MessagesPerMin  int
	WriteTimeout    time.Duration
}

type MetricsConfig struct {
	Enabled bool
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.AllowedOrigins = splitList(viper.GetString("http_server.allowed_origins"))
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Frame pipeline
	cfg.Vision.ProcessEveryN = viper.GetInt("vision.process_every_n")
	cfg.Vision.DetectionConfidenceThreshold = viper.GetFloat64("vision.detection_confidence_threshold")
	cfg.Vision.OCRConfidenceThreshold = viper.GetFloat64("vision.ocr_confidence_threshold")
	cfg.Vision.EnableOCR = viper.GetBool("vision.enable_ocr")
	cfg.Vision.SessionCacheSize = viper.GetInt("vision.session_cache_size")
	cfg.Vision.SessionCacheTTL = viper.GetDuration("vision.session_cache_ttl")

	// Contextual memory
	cfg.Memory.MaxMessages = viper.GetInt("memory.max_messages")
	cfg.Memory.RecordTTL = viper.GetDuration("memory.record_ttl")

	// Detection / OCR sidecars
	cfg.Detector.BaseURL = viper.GetString("detector.base_url")
	if detectorURL := viper.GetString("detector_url"); detectorURL != "" {
		cfg.Detector.BaseURL = detectorURL
	}
	cfg.OCR.BaseURL = viper.GetString("ocr.base_url")
	cfg.OCR.Language = viper.GetString("ocr.language")
	if ocrURL := viper.GetString("ocr_url"); ocrURL != "" {
		cfg.OCR.BaseURL = ocrURL
	}

	// OpenAI speech
	cfg.OpenAI.APIKey = viper.GetString("openai.api_key")
	cfg.OpenAI.BaseURL = viper.GetString("openai.base_url")
	cfg.OpenAI.STTModel = viper.GetString("openai.stt_model")
	cfg.OpenAI.TTSModel = viper.GetString("openai.tts_model")
	cfg.OpenAI.TTSVoice = viper.GetString("openai.tts_voice")
	if openaiKey := viper.GetString("openai_api_key"); openaiKey != "" {
		cfg.OpenAI.APIKey = openaiKey
	}

	// Websocket
	cfg.Websocket.MaxMessageBytes = viper.GetInt64("websocket.max_message_bytes")
	cfg.Websocket.MessagesPerMin = viper.GetInt("websocket.messages_per_min")
	cfg.Websocket.WriteTimeout = viper.GetDuration("websocket.write_timeout")

	// Metrics
	cfg.Metrics.Enabled = viper.GetBool("metrics.enabled")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")

	// Load provider configurations
	if viper.IsSet("llm.providers") {
		providersRaw := viper.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					provider := ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	if err := validateLLMConfig(&cfg.LLM); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	// Frame pipeline defaults
	viper.SetDefault("vision.process_every_n", 10)
	viper.SetDefault("vision.detection_confidence_threshold", 0.5)
	viper.SetDefault("vision.ocr_confidence_threshold", 0.6)
	viper.SetDefault("vision.enable_ocr", true)
	viper.SetDefault("vision.session_cache_size", 1024)
	viper.SetDefault("vision.session_cache_ttl", "10m")

	// Memory defaults
	viper.SetDefault("memory.max_messages", 10)
	viper.SetDefault("memory.record_ttl", "5m")

	// Sidecar defaults
	viper.SetDefault("detector.base_url", "http://localhost:8500")
	viper.SetDefault("ocr.base_url", "http://localhost:8501")
	viper.SetDefault("ocr.language", "en")

	// Speech defaults
	viper.SetDefault("openai.stt_model", "whisper-1")
	viper.SetDefault("openai.tts_model", "tts-1")
	viper.SetDefault("openai.tts_voice", "alloy")

	// Websocket defaults
	viper.SetDefault("websocket.max_message_bytes", 8<<20)
	viper.SetDefault("websocket.messages_per_min", 600)
	viper.SetDefault("websocket.write_timeout", "10s")

	viper.SetDefault("metrics.enabled", true)

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 3)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "60s")
}

// splitList splits a comma-separated string, trimming whitespace.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		// Try viper first (handles both env and config)
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured - please add llm.providers section to config.yaml")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}

		if provider.Enabled {
			enabledCount++

			if provider.Priority <= 0 {
				return fmt.Errorf("provider %s: priority must be positive", provider.Name)
			}
			if priorityMap[provider.Priority] {
				return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
			}
			priorityMap[provider.Priority] = true

			if provider.APIKey == "" {
				fmt.Printf("Warning: provider %s has no API key configured\n", provider.Name)
			}
		}
	}

	if enabledCount == 0 {
		return fmt.Errorf("no enabled LLM providers")
	}

	return nil
}

// ManagerDurations parses the string durations of the LLM section, falling
// back to sane values when unset or malformed.
func (c *LLMConfig) ManagerDurations() (retryDelay, maxTotalTimeout time.Duration) {
	retryDelay = parseDurationOr(c.RetryDelay, time.Second)
	maxTotalTimeout = parseDurationOr(c.MaxTotalTimeout, 60*time.Second)
	return retryDelay, maxTotalTimeout
}

func parseDurationOr(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
