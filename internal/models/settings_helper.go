package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/lifely/internal/constants"
)

// MapToSettings converts persisted key-value pairs to a Settings struct.
// Keys missing from the map keep their documented defaults.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		switch key {
		case constants.SettingVoiceInput:
			settings.VoiceInput = value == "true"
		case constants.SettingVoiceOutput:
			settings.VoiceOutput = value == "true"
		case constants.SettingVoiceRate:
			rate, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", constants.SettingVoiceRate, err)
			}
			settings.VoiceRate = rate
		case constants.SettingVoicePitch:
			pitch, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", constants.SettingVoicePitch, err)
			}
			settings.VoicePitch = pitch
		case constants.SettingUseLocalLLM:
			settings.UseLocalLLM = value == "true"
		case constants.SettingLLMEndpoint:
			settings.LLMEndpoint = value
		case constants.SettingLLMModel:
			settings.LLMModel = value
		case constants.SettingEnableWebSearch:
			settings.EnableWebSearch = value == "true"
		case constants.SettingEnableNotifications:
			settings.EnableNotifications = value == "true"
		case constants.SettingAutoBackup:
			settings.AutoBackup = value == "true"
		case constants.SettingBackupInterval:
			settings.BackupInterval = value
		case constants.SettingEnableTelemetry:
			settings.EnableTelemetry = value == "true"
		case constants.SettingStoreDataLocally:
			settings.StoreDataLocally = value == "true"
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to key-value pairs, one record
// per setting key.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingVoiceInput:          fmt.Sprintf("%v", settings.VoiceInput),
		constants.SettingVoiceOutput:         fmt.Sprintf("%v", settings.VoiceOutput),
		constants.SettingVoiceRate:           strconv.FormatFloat(settings.VoiceRate, 'f', -1, 64),
		constants.SettingVoicePitch:          strconv.FormatFloat(settings.VoicePitch, 'f', -1, 64),
		constants.SettingUseLocalLLM:         fmt.Sprintf("%v", settings.UseLocalLLM),
		constants.SettingLLMEndpoint:         settings.LLMEndpoint,
		constants.SettingLLMModel:            settings.LLMModel,
		constants.SettingEnableWebSearch:     fmt.Sprintf("%v", settings.EnableWebSearch),
		constants.SettingEnableNotifications: fmt.Sprintf("%v", settings.EnableNotifications),
		constants.SettingAutoBackup:          fmt.Sprintf("%v", settings.AutoBackup),
		constants.SettingBackupInterval:      settings.BackupInterval,
		constants.SettingEnableTelemetry:     fmt.Sprintf("%v", settings.EnableTelemetry),
		constants.SettingStoreDataLocally:    fmt.Sprintf("%v", settings.StoreDataLocally),
	}
}
