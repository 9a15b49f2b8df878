package chats

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lifely/internal/cli"
	"github.com/julianstephens/lifely/internal/models"
	"github.com/julianstephens/lifely/internal/tui"
)

var (
	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	assistantStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	faintStyle     = lipgloss.NewStyle().Faint(true)
)

type NewCmd struct{}

func (c *NewCmd) Run(ctx *cli.Context) error {
	session, err := ctx.Assistant.CreateSession()
	if err != nil {
		return err
	}
	fmt.Printf("✓ Started chat %s\n", session.ID)
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	sessions, err := ctx.Assistant.ListSessions()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No chats yet. Start one with 'lifely chat new'.")
		return nil
	}

	for _, s := range sessions {
		fmt.Printf("%s  %s  %s\n",
			s.ID,
			cli.FormatTimestamp(s.UpdatedAt),
			s.Title())
	}
	return nil
}

type ShowCmd struct {
	ID string `arg:"" help:"Chat session id."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	session, found, err := ctx.Assistant.Session(c.ID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no chat with id %s", c.ID)
	}

	if len(session.Messages) == 0 {
		fmt.Println("(empty chat)")
		return nil
	}
	for _, msg := range session.Messages {
		printMessage(msg)
	}
	return nil
}

type SendCmd struct {
	Message string `arg:"" help:"Message to send."`
	Chat    string `help:"Chat session id. Defaults to the most recent chat."`
}

func (c *SendCmd) Run(ctx *cli.Context) error {
	sessionID := c.Chat
	if sessionID == "" {
		session, err := ctx.Assistant.EnsureSession()
		if err != nil {
			return err
		}
		sessionID = session.ID
	}

	result, err := ctx.Assistant.SendMessage(context.Background(), sessionID, c.Message)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", assistantStyle.Render("assistant:"), result.Reply.Content)
	for _, w := range result.Warnings {
		fmt.Println(warningStyle.Render("⚠ " + w))
	}

	ctx.PerformAutomaticBackup()
	return nil
}

type OpenCmd struct {
	Chat string `help:"Chat session id. Defaults to the most recent chat."`
}

func (c *OpenCmd) Run(ctx *cli.Context) error {
	var session models.ChatSession
	if c.Chat != "" {
		s, found, err := ctx.Assistant.Session(c.Chat)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no chat with id %s", c.Chat)
		}
		session = s
	} else {
		s, err := ctx.Assistant.EnsureSession()
		if err != nil {
			return err
		}
		session = s
	}

	if err := tui.Run(ctx.Assistant, session); err != nil {
		return fmt.Errorf("chat view failed: %w", err)
	}

	ctx.PerformAutomaticBackup()
	return nil
}

func printMessage(msg models.ChatMessage) {
	who := userStyle.Render("you:")
	if msg.Role == models.RoleAssistant {
		who = assistantStyle.Render("assistant:")
	}
	fmt.Printf("%s %s %s\n",
		faintStyle.Render(cli.FormatTimestamp(msg.Timestamp)),
		who,
		msg.Content)
}
