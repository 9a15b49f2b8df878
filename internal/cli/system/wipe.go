package system

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/lifely/internal/cli"
)

type WipeCmd struct {
	Yes bool `help:"Skip the confirmation prompt."`
}

// Run clears all chats, journal entries, habits and alarms. Settings
// survive a wipe.
func (c *WipeCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		fmt.Print("This will delete all chats, journal entries, habits and alarms. Settings are kept. Continue? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		answer, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.Wipe(); err != nil {
		return fmt.Errorf("failed to wipe data: %w", err)
	}
	fmt.Println("✓ All data cleared. Settings preserved.")
	return nil
}
