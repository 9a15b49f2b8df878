package assistant

import (
	"fmt"

	"github.com/julianstephens/lifely/internal/reasoning"
)

// Action is the closed set of domain effects the reasoning service may
// request. Resolution is a type switch, so a new action kind cannot be
// added without the compiler pointing at every switch that must learn it.
type Action interface {
	isAction()
}

// SetAlarmAction creates a new alarm record.
type SetAlarmAction struct {
	Time      string
	Label     string
	Recurring bool
}

// TrackHabitAction appends a log entry dated now to the named habit.
type TrackHabitAction struct {
	HabitName string
	Value     float64
}

func (SetAlarmAction) isAction()   {}
func (TrackHabitAction) isAction() {}

// ParseCall converts a wire-level function call into a typed action.
// Unknown names and missing or mistyped arguments are parse errors; the
// caller surfaces them as warnings, never hard failures.
func ParseCall(call reasoning.FunctionCall) (Action, error) {
	switch call.Name {
	case reasoning.FunctionSetAlarm:
		alarmTime, err := stringArg(call, "time")
		if err != nil {
			return nil, err
		}
		label, err := stringArg(call, "label")
		if err != nil {
			return nil, err
		}
		recurring, err := boolArg(call, "recurring")
		if err != nil {
			return nil, err
		}
		return SetAlarmAction{Time: alarmTime, Label: label, Recurring: recurring}, nil

	case reasoning.FunctionTrackHabit:
		name, err := stringArg(call, "habitName")
		if err != nil {
			return nil, err
		}
		value, err := numberArg(call, "value")
		if err != nil {
			return nil, err
		}
		return TrackHabitAction{HabitName: name, Value: value}, nil

	default:
		return nil, fmt.Errorf("unknown function %q", call.Name)
	}
}

func stringArg(call reasoning.FunctionCall, key string) (string, error) {
	raw, ok := call.Arguments[key]
	if !ok {
		return "", fmt.Errorf("%s: missing argument %q", call.Name, key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s: argument %q is not a string", call.Name, key)
	}
	return s, nil
}

func boolArg(call reasoning.FunctionCall, key string) (bool, error) {
	raw, ok := call.Arguments[key]
	if !ok {
		return false, fmt.Errorf("%s: missing argument %q", call.Name, key)
	}
	b, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("%s: argument %q is not a boolean", call.Name, key)
	}
	return b, nil
}

func numberArg(call reasoning.FunctionCall, key string) (float64, error) {
	raw, ok := call.Arguments[key]
	if !ok {
		return 0, fmt.Errorf("%s: missing argument %q", call.Name, key)
	}
	// JSON numbers decode as float64; integers sent by stricter backends
	// still arrive as float64 through encoding/json.
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%s: argument %q is not a number", call.Name, key)
	}
}
