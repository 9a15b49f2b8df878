package models

import "github.com/julianstephens/lifely/internal/constants"

// Settings represents application-wide settings
type Settings struct {
	VoiceInput  bool    `json:"voice_input"`  // whether voice input is enabled
	VoiceOutput bool    `json:"voice_output"` // whether spoken replies are enabled
	VoiceRate   float64 `json:"voice_rate"`   // speech rate multiplier
	VoicePitch  float64 `json:"voice_pitch"`  // speech pitch multiplier

	UseLocalLLM bool   `json:"use_local_llm"` // route reasoning to a locally hosted model
	LLMEndpoint string `json:"llm_endpoint"`  // reasoning service base URL
	LLMModel    string `json:"llm_model"`     // model name passed to the reasoning service

	EnableWebSearch     bool `json:"enable_web_search"`
	EnableNotifications bool `json:"enable_notifications"`

	AutoBackup     bool   `json:"auto_backup"`
	BackupInterval string `json:"backup_interval"` // "daily" or "weekly"

	EnableTelemetry  bool `json:"enable_telemetry"`
	StoreDataLocally bool `json:"store_data_locally"`
}

// DefaultSettings returns the documented defaults. Readers merge whatever
// subset is persisted over this baseline.
func DefaultSettings() Settings {
	return Settings{
		VoiceInput:          constants.DefaultVoiceInput,
		VoiceOutput:         constants.DefaultVoiceOutput,
		VoiceRate:           constants.DefaultVoiceRate,
		VoicePitch:          constants.DefaultVoicePitch,
		UseLocalLLM:         constants.DefaultUseLocalLLM,
		LLMEndpoint:         constants.DefaultLLMEndpoint,
		LLMModel:            constants.DefaultLLMModel,
		EnableWebSearch:     constants.DefaultEnableWebSearch,
		EnableNotifications: constants.DefaultEnableNotifications,
		AutoBackup:          constants.DefaultAutoBackup,
		BackupInterval:      constants.DefaultBackupInterval,
		EnableTelemetry:     constants.DefaultEnableTelemetry,
		StoreDataLocally:    constants.DefaultStoreDataLocally,
	}
}
