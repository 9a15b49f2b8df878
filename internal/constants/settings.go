package constants

const (
	// Voice settings
	SettingVoiceInput  = "voice_input"
	SettingVoiceOutput = "voice_output"
	SettingVoiceRate   = "voice_rate"
	SettingVoicePitch  = "voice_pitch"

	// LLM settings
	SettingUseLocalLLM = "use_local_llm"
	SettingLLMEndpoint = "llm_endpoint"
	SettingLLMModel    = "llm_model"

	// Web search settings
	SettingEnableWebSearch = "enable_web_search"

	// Notification settings
	SettingEnableNotifications = "enable_notifications"

	// Database settings
	SettingAutoBackup     = "auto_backup"
	SettingBackupInterval = "backup_interval"

	// Privacy settings
	SettingEnableTelemetry  = "enable_telemetry"
	SettingStoreDataLocally = "store_data_locally"

	// Backup interval values
	BackupIntervalDaily  = "daily"
	BackupIntervalWeekly = "weekly"

	// Default Settings Values
	DefaultVoiceInput          = true
	DefaultVoiceOutput         = true
	DefaultVoiceRate           = 1.0
	DefaultVoicePitch          = 1.0
	DefaultUseLocalLLM         = false
	DefaultLLMEndpoint         = "http://localhost:11434"
	DefaultLLMModel            = "llama2"
	DefaultEnableWebSearch     = true
	DefaultEnableNotifications = true
	DefaultAutoBackup          = false
	DefaultBackupInterval      = BackupIntervalWeekly
	DefaultEnableTelemetry     = false
	DefaultStoreDataLocally    = true
)
