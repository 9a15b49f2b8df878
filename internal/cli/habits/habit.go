package habits

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/julianstephens/lifely/internal/cli"
	"github.com/julianstephens/lifely/internal/models"
	"github.com/julianstephens/lifely/internal/progress"
)

type HabitCmd struct {
	Add      AddCmd      `cmd:"" help:"Add a new habit."`
	List     ListCmd     `cmd:"" help:"List habits."`
	Log      LogCmd      `cmd:"" help:"Log a value for a habit."`
	Progress ProgressCmd `cmd:"" help:"Show today's progress and the 7-day trend."`
	Delete   DeleteCmd   `cmd:"" help:"Delete a habit and its logs."`
}

type AddCmd struct {
	Name        string  `arg:"" optional:"" help:"Habit name. Prompts interactively if omitted."`
	Description string  `help:"Optional description."`
	Goal        float64 `help:"Daily goal value." default:"1"`
	Unit        string  `help:"Unit label (e.g. glasses, minutes)." default:"times"`
	Frequency   string  `help:"Frequency (daily|weekly|monthly)." default:"daily"`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	if c.Name == "" {
		if err := c.promptForm(); err != nil {
			return err
		}
	}

	// A duplicate name would make chat-driven tracking ambiguous.
	existing, err := ctx.Store.Habits.GetAll()
	if err != nil {
		return err
	}
	for _, h := range existing {
		if strings.EqualFold(h.Name, c.Name) {
			return fmt.Errorf("habit with name %q already exists", c.Name)
		}
	}

	now := time.Now()
	habit := models.Habit{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Goal:        c.Goal,
		Unit:        c.Unit,
		Frequency:   models.Frequency(c.Frequency),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := habit.Validate(); err != nil {
		return err
	}

	if err := ctx.Store.Habits.Add(habit); err != nil {
		return fmt.Errorf("failed to add habit: %w", err)
	}
	fmt.Printf("✓ Added habit: %s (goal %g %s, %s)\n", habit.Name, habit.Goal, habit.Unit, habit.Frequency)

	ctx.PerformAutomaticBackup()
	return nil
}

func (c *AddCmd) promptForm() error {
	goalStr := fmt.Sprintf("%g", c.Goal)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit name").
				Value(&c.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description (optional)").
				Value(&c.Description),
			huh.NewInput().
				Title("Daily goal").
				Value(&goalStr),
			huh.NewInput().
				Title("Unit").
				Value(&c.Unit),
			huh.NewSelect[string]().
				Title("Frequency").
				Options(
					huh.NewOption("Daily", "daily"),
					huh.NewOption("Weekly", "weekly"),
					huh.NewOption("Monthly", "monthly"),
				).
				Value(&c.Frequency),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	if _, err := fmt.Sscanf(goalStr, "%g", &c.Goal); err != nil {
		return fmt.Errorf("invalid goal value %q", goalStr)
	}
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.Habits.GetAll()
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	now := time.Now()
	for _, habit := range habits {
		report := progress.ForHabit(habit, now)
		fmt.Printf("%s  %-20s %g/%g %s today (%d%%)\n",
			habit.ID, habit.Name, report.TodayTotal, habit.Goal, habit.Unit, report.Percent)
	}
	return nil
}

type LogCmd struct {
	Name  string  `arg:"" help:"Habit name."`
	Value float64 `arg:"" optional:"" help:"Value to log." default:"1"`
	Notes string  `help:"Optional note for this log entry."`
}

func (c *LogCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.Habits.GetAll()
	if err != nil {
		return err
	}

	for _, habit := range habits {
		if !strings.EqualFold(habit.Name, c.Name) {
			continue
		}
		habit.AddLog(models.HabitLog{Date: time.Now(), Value: c.Value, Notes: c.Notes})
		if err := ctx.Store.Habits.Put(habit); err != nil {
			return fmt.Errorf("failed to log habit: %w", err)
		}

		report := progress.ForHabit(habit, time.Now())
		fmt.Printf("✓ Logged %g %s for %s (today: %g/%g, %d%%)\n",
			c.Value, habit.Unit, habit.Name, report.TodayTotal, habit.Goal, report.Percent)

		ctx.PerformAutomaticBackup()
		return nil
	}
	return fmt.Errorf("no habit named %q", c.Name)
}

type ProgressCmd struct {
	Name string `arg:"" help:"Habit name."`
}

var barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

func (c *ProgressCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.Habits.GetAll()
	if err != nil {
		return err
	}

	for _, habit := range habits {
		if !strings.EqualFold(habit.Name, c.Name) {
			continue
		}

		report := progress.ForHabit(habit, time.Now())
		fmt.Printf("%s: %g/%g %s today (%d%%)\n\n",
			habit.Name, report.TodayTotal, habit.Goal, habit.Unit, report.Percent)

		// 7-day trend as a horizontal bar chart scaled to the goal.
		for _, point := range report.Trend {
			width := 0
			if habit.Goal > 0 {
				width = int(point.Total / habit.Goal * 20)
			}
			if width > 20 {
				width = 20
			}
			fmt.Printf("%-10s %s %g\n", point.Label, barStyle.Render(strings.Repeat("█", width)), point.Total)
		}
		return nil
	}
	return fmt.Errorf("no habit named %q", c.Name)
}

type DeleteCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.Habits.GetAll()
	if err != nil {
		return err
	}
	for _, habit := range habits {
		if strings.EqualFold(habit.Name, c.Name) {
			if err := ctx.Store.Habits.Delete(habit.ID); err != nil {
				return fmt.Errorf("failed to delete habit: %w", err)
			}
			fmt.Printf("✓ Deleted habit: %s\n", habit.Name)
			return nil
		}
	}
	return fmt.Errorf("no habit named %q", c.Name)
}
