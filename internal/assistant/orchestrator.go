// Package assistant drives chat sessions against the reasoning service:
// session lifecycle, the send/receive cycle per user message, and
// resolution of requested domain actions into alarm and habit mutations.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/lifely/internal/logger"
	"github.com/julianstephens/lifely/internal/models"
	"github.com/julianstephens/lifely/internal/reasoning"
	"github.com/julianstephens/lifely/internal/storage"
)

var (
	ErrEmptyMessage    = errors.New("message text cannot be empty")
	ErrSessionNotFound = errors.New("chat session not found")

	// ErrSessionBusy rejects a second send while a reply for the same
	// session is still pending. Interleaving sends would corrupt message
	// order, so callers wait and resend.
	ErrSessionBusy = errors.New("a message is already awaiting a reply in this session")
)

// Orchestrator owns chat session CRUD and the per-message send cycle.
// One orchestrator serves the whole process; it serializes sends per
// session while leaving different sessions independent.
type Orchestrator struct {
	store  *storage.Store
	client reasoning.Client

	mu       sync.Mutex
	inFlight map[string]bool
}

func New(store *storage.Store, client reasoning.Client) *Orchestrator {
	return &Orchestrator{
		store:    store,
		client:   client,
		inFlight: make(map[string]bool),
	}
}

// CreateSession persists a new empty session and returns it.
func (o *Orchestrator) CreateSession() (models.ChatSession, error) {
	now := time.Now()
	session := models.ChatSession{
		ID:        uuid.NewString(),
		Messages:  []models.ChatMessage{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := o.store.Chats.Add(session); err != nil {
		return models.ChatSession{}, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// Session returns the session with the given id.
func (o *Orchestrator) Session(id string) (models.ChatSession, bool, error) {
	return o.store.Chats.Get(id)
}

// ListSessions returns all sessions, most recently active first.
func (o *Orchestrator) ListSessions() ([]models.ChatSession, error) {
	sessions, err := o.store.Chats.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
	return sessions, nil
}

// EnsureSession returns the most recently active session, creating one
// when none exist yet.
func (o *Orchestrator) EnsureSession() (models.ChatSession, error) {
	sessions, err := o.ListSessions()
	if err != nil {
		return models.ChatSession{}, err
	}
	if len(sessions) > 0 {
		return sessions[0], nil
	}
	return o.CreateSession()
}

// SendResult is the outcome of one successful send cycle. Warnings carry
// function calls that could not be resolved; they are informational and
// never imply a failed send.
type SendResult struct {
	Session  models.ChatSession
	Reply    models.ChatMessage
	Warnings []string
}

// SendMessage runs one send/receive cycle: persist the user's message,
// ask the reasoning service, resolve any requested actions, then persist
// the assistant's reply. The user's message is written before the network
// call, so it survives a crashed or failed request; on failure the
// session keeps only the user message and the caller may resend.
func (o *Orchestrator) SendMessage(ctx context.Context, sessionID, text string) (*SendResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	if err := o.acquire(sessionID); err != nil {
		return nil, err
	}
	defer o.release(sessionID)

	session, found, err := o.store.Chats.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	userMsg := models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      models.RoleUser,
		Content:   text,
		Timestamp: time.Now(),
	}
	session.Append(userMsg)
	if err := o.store.Chats.Put(session); err != nil {
		return nil, fmt.Errorf("failed to persist message: %w", err)
	}

	resp, err := o.client.Respond(ctx, reasoning.Request{
		Query:     text,
		Context:   reasoning.RequestContext{ChatHistory: session.Messages},
		Functions: reasoning.DefaultFunctions(),
	})
	if err != nil {
		return nil, err
	}

	warnings, err := o.resolveCalls(resp.FunctionCalls)
	if err != nil {
		return nil, err
	}

	reply := models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      models.RoleAssistant,
		Content:   resp.Response,
		Timestamp: time.Now(),
	}
	session.Append(reply)
	if err := o.store.Chats.Put(session); err != nil {
		return nil, fmt.Errorf("failed to persist reply: %w", err)
	}

	return &SendResult{Session: session, Reply: reply, Warnings: warnings}, nil
}

func (o *Orchestrator) acquire(sessionID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.inFlight[sessionID] {
		return ErrSessionBusy
	}
	o.inFlight[sessionID] = true
	return nil
}

func (o *Orchestrator) release(sessionID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.inFlight, sessionID)
}

// resolveCalls applies requested actions sequentially, in the order the
// service returned them. Calls that cannot be parsed or that name unknown
// records resolve to warnings; only storage failures abort the cycle.
func (o *Orchestrator) resolveCalls(calls []reasoning.FunctionCall) ([]string, error) {
	var warnings []string
	for _, call := range calls {
		action, err := ParseCall(call)
		if err != nil {
			logger.Warn("Skipping unresolvable function call", "error", err)
			warnings = append(warnings, err.Error())
			continue
		}

		switch a := action.(type) {
		case SetAlarmAction:
			if warning, err := o.applySetAlarm(a); err != nil {
				return warnings, err
			} else if warning != "" {
				warnings = append(warnings, warning)
			}
		case TrackHabitAction:
			if warning, err := o.applyTrackHabit(a); err != nil {
				return warnings, err
			} else if warning != "" {
				warnings = append(warnings, warning)
			}
		}
	}
	return warnings, nil
}

func (o *Orchestrator) applySetAlarm(a SetAlarmAction) (string, error) {
	now := time.Now()
	alarm := models.Alarm{
		ID:          uuid.NewString(),
		Time:        a.Time,
		Label:       a.Label,
		IsEnabled:   true,
		IsRecurring: a.Recurring,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := alarm.Validate(); err != nil {
		warning := fmt.Sprintf("set_alarm rejected: %v", err)
		logger.Warn("Rejected alarm from function call", "error", err)
		return warning, nil
	}
	if err := o.store.Alarms.Add(alarm); err != nil {
		return "", fmt.Errorf("failed to create alarm: %w", err)
	}
	return "", nil
}

func (o *Orchestrator) applyTrackHabit(a TrackHabitAction) (string, error) {
	habits, err := o.store.Habits.GetAll()
	if err != nil {
		return "", fmt.Errorf("failed to load habits: %w", err)
	}
	for _, habit := range habits {
		if strings.EqualFold(habit.Name, a.HabitName) {
			habit.AddLog(models.HabitLog{Date: time.Now(), Value: a.Value})
			if err := o.store.Habits.Put(habit); err != nil {
				return "", fmt.Errorf("failed to log habit: %w", err)
			}
			return "", nil
		}
	}

	warning := fmt.Sprintf("track_habit: no habit named %q", a.HabitName)
	logger.Warn("Function call named an unknown habit", "habit", a.HabitName)
	return warning, nil
}
