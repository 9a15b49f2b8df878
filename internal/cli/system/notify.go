package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/lifely/internal/cli"
	"github.com/julianstephens/lifely/internal/constants"
	"github.com/julianstephens/lifely/internal/logger"
	"github.com/julianstephens/lifely/internal/notifier"
)

type NotifyCmd struct {
	Message string `arg:"" help:"Notification message."`
}

// Run sends a desktop notification through the tray app, retrying a few
// times because the tray may be mid-restart.
func (c *NotifyCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !settings.EnableNotifications {
		logger.Debug("Notifications disabled, skipping", "message", c.Message)
		return nil
	}

	n := notifier.New()
	var lastErr error
	for attempt := 0; attempt < constants.NotifyMaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(constants.NotifyRetryDelay)
		}
		if lastErr = n.Notify(c.Message); lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("failed to send notification: %w", lastErr)
}
