package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/lifely/internal/assistant"
	"github.com/julianstephens/lifely/internal/cli"
	"github.com/julianstephens/lifely/internal/cli/alarms"
	"github.com/julianstephens/lifely/internal/cli/backups"
	"github.com/julianstephens/lifely/internal/cli/chats"
	"github.com/julianstephens/lifely/internal/cli/habits"
	"github.com/julianstephens/lifely/internal/cli/journal"
	"github.com/julianstephens/lifely/internal/cli/settings"
	"github.com/julianstephens/lifely/internal/cli/system"
	"github.com/julianstephens/lifely/internal/constants"
	apperrors "github.com/julianstephens/lifely/internal/errors"
	"github.com/julianstephens/lifely/internal/keyring"
	"github.com/julianstephens/lifely/internal/logger"
	"github.com/julianstephens/lifely/internal/models"
	"github.com/julianstephens/lifely/internal/reasoning"
	"github.com/julianstephens/lifely/internal/storage"
	"github.com/julianstephens/lifely/internal/storage/postgres"
	"github.com/julianstephens/lifely/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Debug   bool   `help:"Enable debug logging."`
	Config  string `help:"Database file path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string; store them in the OS keyring instead." default:"~/.config/lifely/lifely.db"`

	Init   system.InitCmd   `cmd:"" help:"Initialize lifely storage."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Wipe   system.WipeCmd   `cmd:"" help:"Delete all chats, journal entries, habits and alarms."`
	Chat   struct {
		Open chats.OpenCmd `cmd:"" help:"Open the interactive chat view." default:"1"`
		New  chats.NewCmd  `cmd:"" help:"Start a new chat."`
		List chats.ListCmd `cmd:"" help:"List chats."`
		Show chats.ShowCmd `cmd:"" help:"Show a chat transcript."`
		Send chats.SendCmd `cmd:"" help:"Send a single message."`
	} `cmd:"" default:"1" help:"Talk to the assistant."`
	Journal struct {
		Add    journal.AddCmd    `cmd:"" help:"Add a journal entry."`
		List   journal.ListCmd   `cmd:"" help:"List journal entries."`
		Show   journal.ShowCmd   `cmd:"" help:"Show a journal entry."`
		Delete journal.DeleteCmd `cmd:"" help:"Delete a journal entry."`
	} `cmd:"" help:"Manage the journal."`
	Habit    habits.HabitCmd      `cmd:"" help:"Manage habits and habit tracking."`
	Alarm    alarms.AlarmCmd      `cmd:"" help:"Manage alarms and reminders."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring system.KeyringCmd `cmd:"" help:"Manage stored credentials."`
	Notify  system.NotifyCmd  `cmd:"" hidden:"" help:"Send a notification (used internally)."`
}

func main() {
	// Optional; a missing .env is the normal case.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal assistant client: chat, journal, habits and alarms"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configPath := expandConfigPath(CLI.Config)

	var engine storage.Engine
	usingPostgres := strings.HasPrefix(configPath, "postgres://") || strings.HasPrefix(configPath, "postgresql://")
	if usingPostgres {
		if _, err := postgres.ValidateConnString(configPath); err != nil {
			fmt.Fprintln(os.Stderr, apperrors.Format(err))
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				fmt.Fprintln(os.Stderr, "Store credentials in the OS keyring instead: lifely keyring set-connection <connection-string>")
			}
			os.Exit(1)
		}
		engine = postgres.New(configPath)
	} else if connStr, err := keyring.GetConnectionString(); err == nil && connStr != "" {
		usingPostgres = true
		engine = postgres.New(connStr)
	} else {
		engine = sqlite.New(configPath)
	}

	logDir := filepath.Dir(configPath)
	if usingPostgres {
		home, err := os.UserHomeDir()
		if err == nil {
			logDir = filepath.Join(home, ".config", constants.AppName)
		} else {
			logDir = "."
		}
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: logDir}); err != nil {
		apperrors.Fatalf("failed to initialize logging: %v", err)
	}

	store := storage.New(engine)
	appCtx := &cli.Context{
		Store:         store,
		UsingPostgres: usingPostgres,
	}

	// Init handles its own opening and migration; the assistant needs a
	// loaded store, so it is wired up only for the other commands.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			fmt.Fprintln(os.Stderr, apperrors.Format(err))
			fmt.Fprintln(os.Stderr, "Run 'lifely init' to set up storage.")
			os.Exit(1)
		}
		defer store.Close()
		appCtx.Assistant = assistant.New(store, reasoningClient(store))
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

// reasoningClient picks the reasoning backend from settings. Settings may
// not be readable yet (first run); defaults apply in that case.
func reasoningClient(store *storage.Store) reasoning.Client {
	cfg, err := store.GetSettings()
	if err != nil {
		cfg = models.DefaultSettings()
	}
	if cfg.UseLocalLLM {
		return reasoning.NewLocalClient()
	}
	apiKey, err := keyring.GetReasoningAPIKey()
	if err != nil {
		apiKey = ""
	}
	return reasoning.NewHTTPClient(cfg.LLMEndpoint, apiKey)
}

func expandConfigPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
