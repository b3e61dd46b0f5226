package model

// WebcamSettings controls the client-side capture behavior.
type WebcamSettings struct {
	Enabled         bool    `json:"enabled"`
	DetectionRange  string  `json:"detection_range"`  // short, medium, long
	UpdateFrequency string  `json:"update_frequency"` // high, medium, low
	Sensitivity     float64 `json:"sensitivity"`      // 0.0 to 1.0
}

// VoiceSettings controls spoken feedback on the client.
type VoiceSettings struct {
	Enabled    bool    `json:"enabled"`
	Volume     float64 `json:"volume"`      // 0.0 to 1.0
	VoiceStyle string  `json:"voice_style"` // natural, clear, detailed
	SpeechRate float64 `json:"speech_rate"` // 0.5 to 2.0
}

// UserSettings is the full client settings payload. Accepted and logged for
// now; persistence is a separate concern.
type UserSettings struct {
	Webcam                   WebcamSettings `json:"webcam"`
	Voice                    VoiceSettings  `json:"voice"`
	HighContrastMode         bool           `json:"high_contrast_mode"`
	ScreenReaderOptimization bool           `json:"screen_reader_optimizations"`
}

// DefaultUserSettings returns the settings a new client starts with.
func DefaultUserSettings() UserSettings {
	return UserSettings{
		Webcam: WebcamSettings{
			Enabled:         true,
			DetectionRange:  "medium",
			UpdateFrequency: "medium",
			Sensitivity:     0.5,
		},
		Voice: VoiceSettings{
			Enabled:    true,
			Volume:     0.8,
			VoiceStyle: "natural",
			SpeechRate: 1.0,
		},
	}
}
