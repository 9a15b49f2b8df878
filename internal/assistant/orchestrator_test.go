package assistant

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/lifely/internal/models"
	"github.com/julianstephens/lifely/internal/reasoning"
	"github.com/julianstephens/lifely/internal/storage"
	"github.com/julianstephens/lifely/internal/storage/sqlite"
)

// stubClient is a reasoning backend with a scripted response. When block
// is non-nil, Respond waits on it before returning so tests can hold a
// session in its awaiting-reply state.
type stubClient struct {
	resp  *reasoning.Response
	err   error
	block chan struct{}

	mu      sync.Mutex
	lastReq reasoning.Request
}

func (s *stubClient) Respond(_ context.Context, req reasoning.Request) (*reasoning.Response, error) {
	s.mu.Lock()
	s.lastReq = req
	s.mu.Unlock()
	if s.block != nil {
		<-s.block
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func newTestOrchestrator(t *testing.T, client reasoning.Client) (*Orchestrator, *storage.Store) {
	t.Helper()
	store := storage.New(sqlite.New(filepath.Join(t.TempDir(), "lifely.db")))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return New(store, client), store
}

func TestSendMessageOrdering(t *testing.T) {
	client := &stubClient{resp: &reasoning.Response{Response: "Hello there!"}}
	orch, store := newTestOrchestrator(t, client)

	session, err := orch.CreateSession()
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if _, err := orch.SendMessage(context.Background(), session.ID, "hi"); err != nil {
		t.Fatalf("first send failed: %v", err)
	}
	result, err := orch.SendMessage(context.Background(), session.ID, "how are you")
	if err != nil {
		t.Fatalf("second send failed: %v", err)
	}

	got, _, err := store.Chats.Get(session.ID)
	if err != nil {
		t.Fatalf("failed to reload session: %v", err)
	}
	if len(got.Messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(got.Messages))
	}

	wantRoles := []models.MessageRole{models.RoleUser, models.RoleAssistant, models.RoleUser, models.RoleAssistant}
	for i, msg := range got.Messages {
		if msg.Role != wantRoles[i] {
			t.Errorf("message %d: expected role %s, got %s", i, wantRoles[i], msg.Role)
		}
		if i > 0 && msg.Timestamp.Before(got.Messages[i-1].Timestamp) {
			t.Errorf("message %d timestamp went backwards", i)
		}
	}
	if got.Messages[2].Content != "how are you" {
		t.Errorf("unexpected user content %q", got.Messages[2].Content)
	}
	if result.Reply.Content != "Hello there!" {
		t.Errorf("unexpected reply %q", result.Reply.Content)
	}
	if got.UpdatedAt.Before(got.CreatedAt) {
		t.Error("updatedAt must not precede createdAt")
	}
}

func TestSendMessageFailureKeepsUserMessage(t *testing.T) {
	client := &stubClient{err: reasoning.ErrService}
	orch, store := newTestOrchestrator(t, client)

	session, _ := orch.CreateSession()
	_, err := orch.SendMessage(context.Background(), session.ID, "hello")
	if !errors.Is(err, reasoning.ErrService) {
		t.Fatalf("expected service error, got %v", err)
	}

	got, _, _ := store.Chats.Get(session.ID)
	if len(got.Messages) != 1 {
		t.Fatalf("expected exactly the user message, got %d messages", len(got.Messages))
	}
	if got.Messages[0].Role != models.RoleUser || got.Messages[0].Content != "hello" {
		t.Errorf("unexpected surviving message %+v", got.Messages[0])
	}
}

func TestSendMessageValidation(t *testing.T) {
	client := &stubClient{resp: &reasoning.Response{Response: "ok"}}
	orch, _ := newTestOrchestrator(t, client)

	session, _ := orch.CreateSession()
	if _, err := orch.SendMessage(context.Background(), session.ID, "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("expected ErrEmptyMessage, got %v", err)
	}
	if _, err := orch.SendMessage(context.Background(), "missing", "hi"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSendMessageRejectsConcurrentSend(t *testing.T) {
	client := &stubClient{
		resp:  &reasoning.Response{Response: "done"},
		block: make(chan struct{}),
	}
	orch, _ := newTestOrchestrator(t, client)
	session, _ := orch.CreateSession()

	firstDone := make(chan error, 1)
	go func() {
		_, err := orch.SendMessage(context.Background(), session.ID, "first")
		firstDone <- err
	}()

	// Wait until the first send is holding the session.
	deadline := time.After(2 * time.Second)
	for {
		orch.mu.Lock()
		busy := orch.inFlight[session.ID]
		orch.mu.Unlock()
		if busy {
			break
		}
		select {
		case <-deadline:
			t.Fatal("first send never reached the awaiting state")
		case <-time.After(time.Millisecond):
		}
	}

	if _, err := orch.SendMessage(context.Background(), session.ID, "second"); !errors.Is(err, ErrSessionBusy) {
		t.Errorf("expected ErrSessionBusy, got %v", err)
	}

	close(client.block)
	if err := <-firstDone; err != nil {
		t.Fatalf("first send failed: %v", err)
	}

	// The session is free again once the cycle completes.
	if _, err := orch.SendMessage(context.Background(), session.ID, "third"); err != nil {
		t.Errorf("send after release failed: %v", err)
	}
}

func TestSendMessageRequestContract(t *testing.T) {
	client := &stubClient{resp: &reasoning.Response{Response: "ok"}}
	orch, _ := newTestOrchestrator(t, client)
	session, _ := orch.CreateSession()

	if _, err := orch.SendMessage(context.Background(), session.ID, "set an alarm"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	req := client.lastReq
	if req.Query != "set an alarm" {
		t.Errorf("unexpected query %q", req.Query)
	}
	// History includes the message just sent.
	if len(req.Context.ChatHistory) != 1 || req.Context.ChatHistory[0].Content != "set an alarm" {
		t.Errorf("unexpected history %+v", req.Context.ChatHistory)
	}
	if len(req.Functions) != 2 {
		t.Fatalf("expected 2 advertised functions, got %d", len(req.Functions))
	}
	if req.Functions[0].Name != reasoning.FunctionSetAlarm || req.Functions[1].Name != reasoning.FunctionTrackHabit {
		t.Errorf("unexpected function schema %+v", req.Functions)
	}
}

func TestResolveSetAlarm(t *testing.T) {
	client := &stubClient{resp: &reasoning.Response{
		Response: "Alarm set!",
		FunctionCalls: []reasoning.FunctionCall{{
			Name: reasoning.FunctionSetAlarm,
			Arguments: map[string]any{
				"time":      "07:30",
				"label":     "Morning run",
				"recurring": true,
			},
		}},
	}}
	orch, store := newTestOrchestrator(t, client)
	session, _ := orch.CreateSession()

	result, err := orch.SendMessage(context.Background(), session.ID, "wake me at 07:30")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Warnings)
	}

	alarms, _ := store.Alarms.GetAll()
	if len(alarms) != 1 {
		t.Fatalf("expected one alarm, got %d", len(alarms))
	}
	alarm := alarms[0]
	if alarm.Time != "07:30" || alarm.Label != "Morning run" || !alarm.IsRecurring {
		t.Errorf("alarm fields not mapped: %+v", alarm)
	}
	if !alarm.IsEnabled {
		t.Error("chat-created alarms start enabled")
	}
}

func TestResolveSetAlarmInvalidTime(t *testing.T) {
	client := &stubClient{resp: &reasoning.Response{
		Response: "Alarm set!",
		FunctionCalls: []reasoning.FunctionCall{{
			Name: reasoning.FunctionSetAlarm,
			Arguments: map[string]any{
				"time":      "25:99",
				"label":     "Broken",
				"recurring": false,
			},
		}},
	}}
	orch, store := newTestOrchestrator(t, client)
	session, _ := orch.CreateSession()

	result, err := orch.SendMessage(context.Background(), session.ID, "wake me")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("expected one warning, got %v", result.Warnings)
	}

	alarms, _ := store.Alarms.GetAll()
	if len(alarms) != 0 {
		t.Errorf("invalid alarm must not be stored, got %d", len(alarms))
	}
	// The reply is still applied.
	got, _, _ := store.Chats.Get(session.ID)
	if len(got.Messages) != 2 {
		t.Errorf("expected user and assistant messages, got %d", len(got.Messages))
	}
}

func TestResolveTrackHabit(t *testing.T) {
	client := &stubClient{resp: &reasoning.Response{
		Response: "Logged!",
		FunctionCalls: []reasoning.FunctionCall{{
			Name: reasoning.FunctionTrackHabit,
			Arguments: map[string]any{
				"habitName": "WATER",
				"value":     2.0,
			},
		}},
	}}
	orch, store := newTestOrchestrator(t, client)

	habit := models.Habit{
		ID:        "h1",
		Name:      "Water",
		Goal:      8,
		Unit:      "glasses",
		Frequency: models.FrequencyDaily,
	}
	if err := store.Habits.Add(habit); err != nil {
		t.Fatalf("failed to seed habit: %v", err)
	}

	session, _ := orch.CreateSession()
	result, err := orch.SendMessage(context.Background(), session.ID, "track 2 water")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Warnings)
	}

	// Name matching is case-insensitive.
	got, _, _ := store.Habits.Get("h1")
	if len(got.Logs) != 1 {
		t.Fatalf("expected one log, got %d", len(got.Logs))
	}
	if got.Logs[0].Value != 2 {
		t.Errorf("expected logged value 2, got %v", got.Logs[0].Value)
	}
}

func TestResolveTrackHabitUnknown(t *testing.T) {
	client := &stubClient{resp: &reasoning.Response{
		Response: "Logged!",
		FunctionCalls: []reasoning.FunctionCall{{
			Name: reasoning.FunctionTrackHabit,
			Arguments: map[string]any{
				"habitName": "Juggling",
				"value":     1.0,
			},
		}},
	}}
	orch, store := newTestOrchestrator(t, client)
	session, _ := orch.CreateSession()

	result, err := orch.SendMessage(context.Background(), session.ID, "track juggling")
	if err != nil {
		t.Fatalf("unknown habit must not fail the send: %v", err)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("expected one warning, got %v", result.Warnings)
	}

	habits, _ := store.Habits.GetAll()
	if len(habits) != 0 {
		t.Errorf("no habit should be created, got %d", len(habits))
	}
	got, _, _ := store.Chats.Get(session.ID)
	if len(got.Messages) != 2 || got.Messages[1].Content != "Logged!" {
		t.Errorf("assistant reply must still be applied, got %+v", got.Messages)
	}
}

func TestResolveUnknownFunction(t *testing.T) {
	client := &stubClient{resp: &reasoning.Response{
		Response: "Sure.",
		FunctionCalls: []reasoning.FunctionCall{{
			Name:      "order_pizza",
			Arguments: map[string]any{"size": "large"},
		}},
	}}
	orch, _ := newTestOrchestrator(t, client)
	session, _ := orch.CreateSession()

	result, err := orch.SendMessage(context.Background(), session.ID, "pizza please")
	if err != nil {
		t.Fatalf("unknown function must not fail the send: %v", err)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("expected one warning, got %v", result.Warnings)
	}
}

func TestListSessionsOrdering(t *testing.T) {
	client := &stubClient{resp: &reasoning.Response{Response: "ok"}}
	orch, _ := newTestOrchestrator(t, client)

	a, _ := orch.CreateSession()
	time.Sleep(2 * time.Millisecond)
	b, _ := orch.CreateSession()
	time.Sleep(2 * time.Millisecond)
	c, _ := orch.CreateSession()
	time.Sleep(2 * time.Millisecond)

	if _, err := orch.SendMessage(context.Background(), a.ID, "hello"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	sessions, err := orch.ListSessions()
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	want := []string{a.ID, c.ID, b.ID}
	for i, id := range want {
		if sessions[i].ID != id {
			t.Fatalf("expected order %v, got [%s %s %s]", want, sessions[0].ID, sessions[1].ID, sessions[2].ID)
		}
	}
}

func TestEnsureSession(t *testing.T) {
	client := &stubClient{resp: &reasoning.Response{Response: "ok"}}
	orch, _ := newTestOrchestrator(t, client)

	first, err := orch.EnsureSession()
	if err != nil {
		t.Fatalf("EnsureSession failed: %v", err)
	}

	second, err := orch.EnsureSession()
	if err != nil {
		t.Fatalf("second EnsureSession failed: %v", err)
	}
	if first.ID != second.ID {
		t.Error("EnsureSession must reuse the existing session")
	}
}
