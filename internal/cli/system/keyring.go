package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/lifely/internal/cli"
	"github.com/julianstephens/lifely/internal/keyring"
	"github.com/julianstephens/lifely/internal/storage/postgres"
)

type KeyringCmd struct {
	SetConnection    KeyringSetConnectionCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
	DeleteConnection KeyringDeleteConnectionCmd `cmd:"" help:"Remove the stored PostgreSQL connection string."`
	SetAPIKey        KeyringSetAPIKeyCmd        `cmd:"" name:"set-api-key" help:"Store the reasoning service API key in the OS keyring."`
	DeleteAPIKey     KeyringDeleteAPIKeyCmd     `cmd:"" name:"delete-api-key" help:"Remove the stored reasoning service API key."`
	Status           KeyringStatusCmd           `cmd:"" help:"Show which secrets are stored." default:"1"`
}

type KeyringSetConnectionCmd struct {
	ConnString string `arg:"" help:"PostgreSQL connection string (may include a password; it is stored only in the keyring)."`
}

func (c *KeyringSetConnectionCmd) Run(_ *cli.Context) error {
	// The keyring copy may carry a password; only strings passed on the
	// command line as --config are rejected for embedded credentials.
	if _, err := postgres.ValidateConnString(c.ConnString); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
		return err
	}
	if err := keyring.SetConnectionString(c.ConnString); err != nil {
		return err
	}
	fmt.Println("✓ Connection string stored in OS keyring.")
	return nil
}

type KeyringDeleteConnectionCmd struct{}

func (c *KeyringDeleteConnectionCmd) Run(_ *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("No connection string stored.")
			return nil
		}
		return err
	}
	fmt.Println("✓ Connection string removed from OS keyring.")
	return nil
}

type KeyringSetAPIKeyCmd struct {
	Key string `arg:"" help:"Reasoning service API key."`
}

func (c *KeyringSetAPIKeyCmd) Run(_ *cli.Context) error {
	if err := keyring.SetReasoningAPIKey(c.Key); err != nil {
		return err
	}
	fmt.Println("✓ API key stored in OS keyring.")
	return nil
}

type KeyringDeleteAPIKeyCmd struct{}

func (c *KeyringDeleteAPIKeyCmd) Run(_ *cli.Context) error {
	if err := keyring.DeleteReasoningAPIKey(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("No API key stored.")
			return nil
		}
		return err
	}
	fmt.Println("✓ API key removed from OS keyring.")
	return nil
}

type KeyringStatusCmd struct{}

func (c *KeyringStatusCmd) Run(_ *cli.Context) error {
	if !keyring.IsAvailable() {
		return fmt.Errorf("OS keyring is not available on this system")
	}
	fmt.Println("OS keyring: available")

	if _, err := keyring.GetConnectionString(); err == nil {
		fmt.Println("  Database connection string: stored")
	} else {
		fmt.Println("  Database connection string: not stored")
	}
	if _, err := keyring.GetReasoningAPIKey(); err == nil {
		fmt.Println("  Reasoning API key: stored")
	} else {
		fmt.Println("  Reasoning API key: not stored")
	}
	return nil
}
