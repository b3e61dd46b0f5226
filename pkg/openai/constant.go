package openai

import "time"

const (
	// DefaultBaseURL is the default OpenAI-compatible API endpoint
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultChatModel is the default chat/vision model
	DefaultChatModel = "gpt-4o-mini"

	// DefaultSTTModel is the default speech-to-text model
	DefaultSTTModel = "whisper-1"

	// DefaultTTSModel is the default text-to-speech model
	DefaultTTSModel = "tts-1"

	// DefaultTTSVoice is the default synthesis voice
	DefaultTTSVoice = "alloy"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 60 * time.Second
)
