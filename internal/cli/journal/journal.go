package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/lifely/internal/cli"
	"github.com/julianstephens/lifely/internal/constants"
	"github.com/julianstephens/lifely/internal/models"
)

type AddCmd struct {
	Title   string `arg:"" help:"Entry title."`
	Content string `arg:"" help:"Entry body text."`
	Date    string `help:"Entry date (YYYY-MM-DD). Defaults to today."`
	Tags    string `help:"Comma-separated tags."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	date := time.Now()
	if c.Date != "" {
		parsed, err := time.ParseInLocation(constants.DateFormat, c.Date, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
		}
		date = parsed
	}

	var tags []string
	if c.Tags != "" {
		for _, tag := range strings.Split(c.Tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	now := time.Now()
	entry := models.JournalEntry{
		ID:        uuid.NewString(),
		Title:     c.Title,
		Content:   c.Content,
		Date:      date,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	if err := ctx.Store.Journal.Add(entry); err != nil {
		return fmt.Errorf("failed to add journal entry: %w", err)
	}
	fmt.Printf("✓ Journal entry added: %s (%s)\n", entry.Title, entry.Date.Format(constants.DateFormat))

	ctx.PerformAutomaticBackup()
	return nil
}

type ListCmd struct {
	Tag string `help:"Only show entries carrying this tag."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.Store.Journal.GetAll()
	if err != nil {
		return fmt.Errorf("failed to list journal entries: %w", err)
	}

	shown := 0
	for _, entry := range entries {
		if c.Tag != "" && !entry.HasTag(c.Tag) {
			continue
		}
		line := fmt.Sprintf("%s  %s  %s", entry.ID, entry.Date.Format(constants.DateFormat), entry.Title)
		if len(entry.Tags) > 0 {
			line += "  [" + strings.Join(entry.Tags, ", ") + "]"
		}
		fmt.Println(line)
		shown++
	}
	if shown == 0 {
		fmt.Println("No journal entries found.")
	}
	return nil
}

type ShowCmd struct {
	ID string `arg:"" help:"Journal entry id."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	entry, found, err := ctx.Store.Journal.Get(c.ID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no journal entry with id %s", c.ID)
	}

	fmt.Printf("%s (%s)\n", entry.Title, entry.Date.Format(constants.DateFormat))
	if len(entry.Tags) > 0 {
		fmt.Printf("Tags: %s\n", strings.Join(entry.Tags, ", "))
	}
	fmt.Println()
	fmt.Println(entry.Content)
	return nil
}

type DeleteCmd struct {
	ID string `arg:"" help:"Journal entry id."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Journal.Delete(c.ID); err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	fmt.Println("✓ Journal entry deleted.")
	return nil
}
