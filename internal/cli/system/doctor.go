package system

import (
	"fmt"

	"github.com/julianstephens/lifely/internal/backup"
	"github.com/julianstephens/lifely/internal/cli"
	"github.com/julianstephens/lifely/internal/keyring"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	if dbReachable {
		if _, err := ctx.Store.GetSettings(); err != nil {
			fmt.Printf("❌ Settings readable: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Settings readable: OK\n")
		}
	} else {
		fmt.Printf("⊘ Settings readable: SKIPPED (database not reachable)\n")
	}

	if ctx.UsingPostgres {
		fmt.Printf("⊘ Backups present: SKIPPED (PostgreSQL backend)\n")
	} else {
		mgr := backup.NewManager(ctx.Store.GetConfigPath())
		backups, err := mgr.ListBackups()
		switch {
		case err != nil:
			fmt.Printf("⚠ Backups present: WARNING\n")
			fmt.Printf("   %v\n", err)
		case len(backups) == 0:
			fmt.Printf("⚠ Backups present: WARNING\n")
			fmt.Printf("   No backups found. Run 'lifely backup create' to create one.\n")
		default:
			fmt.Printf("✓ Backups present: OK (%d found)\n", len(backups))
		}
	}

	if keyring.IsAvailable() {
		fmt.Printf("✓ OS keyring: OK\n")
	} else {
		fmt.Printf("⚠ OS keyring: WARNING\n")
		fmt.Printf("   Keyring unavailable; PostgreSQL credentials and API keys cannot be stored.\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}
