package alarms

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/lifely/internal/cli"
	"github.com/julianstephens/lifely/internal/models"
)

type AlarmCmd struct {
	Add     AddCmd     `cmd:"" help:"Add a new alarm."`
	List    ListCmd    `cmd:"" help:"List alarms."`
	Enable  EnableCmd  `cmd:"" help:"Enable an alarm."`
	Disable DisableCmd `cmd:"" help:"Disable an alarm."`
	Delete  DeleteCmd  `cmd:"" help:"Delete an alarm."`
}

type AddCmd struct {
	Label    string `arg:"" help:"Alarm label."`
	Time     string `help:"Time of day (HH:MM)." required:""`
	Days     string `help:"Comma-separated weekdays for a recurring alarm (e.g. mon,wed,fri). Empty means every day."`
	Once     bool   `help:"One-shot alarm instead of recurring."`
	Disabled bool   `help:"Create the alarm disabled."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	var days []time.Weekday
	if c.Days != "" {
		if c.Once {
			return fmt.Errorf("cannot specify weekdays for a one-shot alarm")
		}
		parsed, err := cli.ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
		days = parsed
	}

	now := time.Now()
	alarm := models.Alarm{
		ID:          uuid.NewString(),
		Time:        c.Time,
		Label:       c.Label,
		Days:        days,
		IsEnabled:   !c.Disabled,
		IsRecurring: !c.Once,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := alarm.Validate(); err != nil {
		return err
	}

	if err := ctx.Store.Alarms.Add(alarm); err != nil {
		return fmt.Errorf("failed to add alarm: %w", err)
	}
	fmt.Printf("✓ Alarm added: %s at %s (%s)\n", alarm.Label, alarm.Time, alarm.FormatDays())

	ctx.PerformAutomaticBackup()
	return nil
}

type ListCmd struct {
	All bool `help:"Include disabled alarms."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	alarms, err := ctx.Store.Alarms.GetAll()
	if err != nil {
		return err
	}

	sort.SliceStable(alarms, func(i, j int) bool { return alarms[i].Time < alarms[j].Time })

	shown := 0
	for _, alarm := range alarms {
		if !alarm.IsEnabled && !c.All {
			continue
		}
		status := ""
		if !alarm.IsEnabled {
			status = " [disabled]"
		}
		fmt.Printf("%s  %s  %-20s %s%s\n", alarm.ID, alarm.Time, alarm.Label, alarm.FormatDays(), status)
		shown++
	}
	if shown == 0 {
		fmt.Println("No alarms found.")
	}
	return nil
}

func setEnabled(ctx *cli.Context, id string, enabled bool) error {
	alarm, found, err := ctx.Store.Alarms.Get(id)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no alarm with id %s", id)
	}

	alarm.IsEnabled = enabled
	alarm.UpdatedAt = time.Now()
	if err := ctx.Store.Alarms.Put(alarm); err != nil {
		return fmt.Errorf("failed to update alarm: %w", err)
	}
	return nil
}

type EnableCmd struct {
	ID string `arg:"" help:"Alarm id."`
}

func (c *EnableCmd) Run(ctx *cli.Context) error {
	if err := setEnabled(ctx, c.ID, true); err != nil {
		return err
	}
	fmt.Println("✓ Alarm enabled.")
	return nil
}

type DisableCmd struct {
	ID string `arg:"" help:"Alarm id."`
}

func (c *DisableCmd) Run(ctx *cli.Context) error {
	if err := setEnabled(ctx, c.ID, false); err != nil {
		return err
	}
	fmt.Println("✓ Alarm disabled.")
	return nil
}

type DeleteCmd struct {
	ID string `arg:"" help:"Alarm id."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Alarms.Delete(c.ID); err != nil {
		return fmt.Errorf("failed to delete alarm: %w", err)
	}
	fmt.Println("✓ Alarm deleted.")
	return nil
}
