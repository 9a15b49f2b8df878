// Package reasoning defines the contract with the external reasoning
// service: the assistant backend that turns a user message plus history
// and a function schema into a reply and optional structured function
// calls. The wire format is fixed; clients only differ in transport.
package reasoning

import (
	"context"
	"errors"

	"github.com/julianstephens/lifely/internal/models"
)

// ErrService wraps any transport or protocol failure talking to the
// reasoning service. Callers treat it as retryable by resending.
var ErrService = errors.New("reasoning service failure")

// Request is the outbound payload.
type Request struct {
	Query     string         `json:"query"`
	Context   RequestContext `json:"context"`
	Functions []FunctionSpec `json:"functions"`
}

// RequestContext carries the full prior conversation, including the
// message being asked about.
type RequestContext struct {
	ChatHistory []models.ChatMessage `json:"chatHistory"`
}

// ParameterSpec describes one function argument.
type ParameterSpec struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// FunctionSpec advertises one callable function to the service.
type FunctionSpec struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Parameters  map[string]ParameterSpec `json:"parameters"`
}

// FunctionCall is a structured action request returned by the service.
// Arguments are loosely typed on the wire and validated during resolution.
type FunctionCall struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// Response is the inbound payload. FunctionCalls may be absent.
type Response struct {
	Response      string         `json:"response"`
	FunctionCalls []FunctionCall `json:"functionCalls,omitempty"`
}

// Client is implemented by every reasoning backend.
type Client interface {
	Respond(ctx context.Context, req Request) (*Response, error)
}

// Known function names. Adding a name here requires a matching action
// variant in the assistant package.
const (
	FunctionSetAlarm   = "set_alarm"
	FunctionTrackHabit = "track_habit"
)

// DefaultFunctions returns the fixed function schema advertised on every
// request.
func DefaultFunctions() []FunctionSpec {
	return []FunctionSpec{
		{
			Name:        FunctionSetAlarm,
			Description: "Set an alarm or reminder for a specific time",
			Parameters: map[string]ParameterSpec{
				"time": {
					Type:        "string",
					Description: "The time for the alarm in HH:MM format",
				},
				"label": {
					Type:        "string",
					Description: "The label for the alarm",
				},
				"recurring": {
					Type:        "boolean",
					Description: "Whether the alarm is recurring",
				},
			},
		},
		{
			Name:        FunctionTrackHabit,
			Description: "Track progress for a habit",
			Parameters: map[string]ParameterSpec{
				"habitName": {
					Type:        "string",
					Description: "The name of the habit to track",
				},
				"value": {
					Type:        "number",
					Description: "The value to log for the habit",
				},
			},
		},
	}
}
