package reasoning

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// LocalClient is an offline reasoning backend with simple rule-based
// intent matching. It keeps the assistant usable without a network
// service and doubles as a deterministic backend under test.
type LocalClient struct{}

func NewLocalClient() *LocalClient {
	return &LocalClient{}
}

var (
	timePattern  = regexp.MustCompile(`\b([01]?\d|2[0-3]):([0-5]\d)\b`)
	valuePattern = regexp.MustCompile(`\b(\d+(?:\.\d+)?)\b`)
)

func (l *LocalClient) Respond(_ context.Context, req Request) (*Response, error) {
	query := strings.ToLower(req.Query)

	if strings.Contains(query, "alarm") || strings.Contains(query, "remind") {
		if m := timePattern.FindString(req.Query); m != "" {
			label := "Reminder"
			recurring := strings.Contains(query, "every") || strings.Contains(query, "daily")
			return &Response{
				Response: fmt.Sprintf("Okay, I'll set an alarm for %s.", m),
				FunctionCalls: []FunctionCall{{
					Name: FunctionSetAlarm,
					Arguments: map[string]any{
						"time":      m,
						"label":     label,
						"recurring": recurring,
					},
				}},
			}, nil
		}
		return &Response{Response: "What time should I set the alarm for? Use HH:MM."}, nil
	}

	if strings.Contains(query, "track") || strings.Contains(query, "log") {
		// Take the first number as the value and the remaining words after
		// the verb as the habit name.
		value := 1.0
		if m := valuePattern.FindString(req.Query); m != "" {
			if v, err := strconv.ParseFloat(m, 64); err == nil {
				value = v
			}
		}
		name := extractHabitName(req.Query)
		if name != "" {
			return &Response{
				Response: fmt.Sprintf("Logged %s for %s.", valuePattern.FindString(req.Query), name),
				FunctionCalls: []FunctionCall{{
					Name: FunctionTrackHabit,
					Arguments: map[string]any{
						"habitName": name,
						"value":     value,
					},
				}},
			}, nil
		}
		return &Response{Response: "Which habit should I log that for?"}, nil
	}

	return &Response{
		Response: "I can set alarms and track habits. Try \"set an alarm for 07:30\" or \"track 2 water\".",
	}, nil
}

// extractHabitName pulls the habit name out of a track/log phrase,
// dropping the verb, any leading number, and filler words.
func extractHabitName(query string) string {
	var out []string
	for _, w := range strings.Fields(query) {
		word := strings.Trim(w, ".,!?")
		switch strings.ToLower(word) {
		case "track", "log", "please", "my", "for", "of", "the", "a", "an",
			"i", "want", "to", "would", "like":
			continue
		}
		if valuePattern.MatchString(word) {
			continue
		}
		out = append(out, word)
	}
	return strings.Join(out, " ")
}
