package settings

import (
	"fmt"

	"github.com/julianstephens/lifely/internal/cli"
	"github.com/julianstephens/lifely/internal/constants"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	VoiceInput  *bool    `help:"Enable or disable voice input."`
	VoiceOutput *bool    `help:"Enable or disable spoken replies."`
	VoiceRate   *float64 `help:"Speech rate multiplier."`
	VoicePitch  *float64 `help:"Speech pitch multiplier."`

	UseLocalLlm *bool   `name:"use-local-llm" help:"Route reasoning to a locally hosted model."`
	LlmEndpoint *string `name:"llm-endpoint" help:"Reasoning service base URL."`
	LlmModel    *string `name:"llm-model" help:"Model name passed to the reasoning service."`

	EnableWebSearch     *bool `help:"Enable web search for the assistant."`
	EnableNotifications *bool `help:"Enable desktop notifications."`

	AutoBackup     *bool   `help:"Enable automatic backups after writes."`
	BackupInterval *string `help:"Backup interval (daily or weekly)."`

	EnableTelemetry  *bool `help:"Enable anonymous usage telemetry."`
	StoreDataLocally *bool `help:"Keep all data on the local machine."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Voice Settings:")
		fmt.Printf("  Voice Input:           %v\n", settings.VoiceInput)
		fmt.Printf("  Voice Output:          %v\n", settings.VoiceOutput)
		fmt.Printf("  Voice Rate:            %g\n", settings.VoiceRate)
		fmt.Printf("  Voice Pitch:           %g\n", settings.VoicePitch)
		fmt.Println("\nReasoning Settings:")
		fmt.Printf("  Use Local LLM:         %v\n", settings.UseLocalLLM)
		fmt.Printf("  LLM Endpoint:          %s\n", settings.LLMEndpoint)
		fmt.Printf("  LLM Model:             %s\n", settings.LLMModel)
		fmt.Printf("  Web Search:            %v\n", settings.EnableWebSearch)
		fmt.Println("\nGeneral Settings:")
		fmt.Printf("  Notifications:         %v\n", settings.EnableNotifications)
		fmt.Printf("  Auto Backup:           %v\n", settings.AutoBackup)
		fmt.Printf("  Backup Interval:       %s\n", settings.BackupInterval)
		fmt.Printf("  Telemetry:             %v\n", settings.EnableTelemetry)
		fmt.Printf("  Store Data Locally:    %v\n", settings.StoreDataLocally)
		return nil
	}

	updated := false
	if c.VoiceInput != nil {
		settings.VoiceInput = *c.VoiceInput
		updated = true
	}
	if c.VoiceOutput != nil {
		settings.VoiceOutput = *c.VoiceOutput
		updated = true
	}
	if c.VoiceRate != nil {
		if *c.VoiceRate <= 0 {
			return fmt.Errorf("voice rate must be positive")
		}
		settings.VoiceRate = *c.VoiceRate
		updated = true
	}
	if c.VoicePitch != nil {
		if *c.VoicePitch <= 0 {
			return fmt.Errorf("voice pitch must be positive")
		}
		settings.VoicePitch = *c.VoicePitch
		updated = true
	}
	if c.UseLocalLlm != nil {
		settings.UseLocalLLM = *c.UseLocalLlm
		updated = true
	}
	if c.LlmEndpoint != nil {
		settings.LLMEndpoint = *c.LlmEndpoint
		updated = true
	}
	if c.LlmModel != nil {
		settings.LLMModel = *c.LlmModel
		updated = true
	}
	if c.EnableWebSearch != nil {
		settings.EnableWebSearch = *c.EnableWebSearch
		updated = true
	}
	if c.EnableNotifications != nil {
		settings.EnableNotifications = *c.EnableNotifications
		updated = true
	}
	if c.AutoBackup != nil {
		settings.AutoBackup = *c.AutoBackup
		updated = true
	}
	if c.BackupInterval != nil {
		if *c.BackupInterval != constants.BackupIntervalDaily && *c.BackupInterval != constants.BackupIntervalWeekly {
			return fmt.Errorf("backup interval must be %q or %q", constants.BackupIntervalDaily, constants.BackupIntervalWeekly)
		}
		settings.BackupInterval = *c.BackupInterval
		updated = true
	}
	if c.EnableTelemetry != nil {
		settings.EnableTelemetry = *c.EnableTelemetry
		updated = true
	}
	if c.StoreDataLocally != nil {
		settings.StoreDataLocally = *c.StoreDataLocally
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
