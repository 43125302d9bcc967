package internal

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventKind identifies the type of a decoded stream event. The set is
// closed: the backend only ever emits these eight types, and dispatch on
// EventKind is expected to be exhaustive.
type EventKind int

const (
	KindSystem EventKind = iota
	KindThought
	KindAction
	KindObservation
	KindFinalSummary
	KindEvaluation
	KindProgress
	KindUserRequest
)

var kindNames = map[EventKind]string{
	KindSystem:       "system",
	KindThought:      "thought",
	KindAction:       "action",
	KindObservation:  "observation",
	KindFinalSummary: "final_summary",
	KindEvaluation:   "evaluation",
	KindProgress:     "progress",
	KindUserRequest:  "user_request",
}

var kindFromName = map[string]EventKind{
	"system":        KindSystem,
	"thought":       KindThought,
	"action":        KindAction,
	"observation":   KindObservation,
	"final_summary": KindFinalSummary,
	"evaluation":    KindEvaluation,
	"progress":      KindProgress,
	"user_request":  KindUserRequest,
}

func (k EventKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Transcript reports whether events of this kind belong in a session's
// persisted history. Progress events carry a live indicator value only and
// are never stored.
func (k EventKind) Transcript() bool {
	return k != KindProgress
}

// Evaluation is the structured payload of an evaluation event.
type Evaluation struct {
	Score         float64 `json:"score"`
	Justification string  `json:"justification"`
	ChartPath     string  `json:"chart_path,omitempty"`
}

// UserRequest is the structured payload of a user_request event: the task
// the user entered plus the names of any uploaded data files.
type UserRequest struct {
	Task  string   `json:"task"`
	Files []string `json:"files,omitempty"`
}

// Event is one decoded unit of the analysis stream. Exactly one payload
// field is meaningful, selected by Kind: Content for the text kinds,
// Evaluation for evaluation, Request for user_request, Percent for
// progress.
type Event struct {
	Kind       EventKind
	Content    string
	Evaluation *Evaluation
	Request    *UserRequest
	Percent    float64
}

// wireEvent mirrors the JSON object carried inside a stream frame.
type wireEvent struct {
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content,omitempty"`
	Value   *float64        `json:"value,omitempty"`
}

// MarshalJSON encodes the event in the backend's wire shape, so persisted
// history round-trips through the same format the stream uses.
func (e *Event) MarshalJSON() ([]byte, error) {
	w := wireEvent{Type: e.Kind.String()}
	switch e.Kind {
	case KindProgress:
		v := e.Percent
		w.Value = &v
	case KindEvaluation:
		data, err := json.Marshal(e.Evaluation)
		if err != nil {
			return nil, err
		}
		w.Content = data
	case KindUserRequest:
		data, err := json.Marshal(e.Request)
		if err != nil {
			return nil, err
		}
		w.Content = data
	default:
		data, err := json.Marshal(e.Content)
		if err != nil {
			return nil, err
		}
		w.Content = data
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes an event from its wire shape. Unknown type strings
// are an error; the kind set is closed.
func (e *Event) UnmarshalJSON(data []byte) error {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	kind, ok := kindFromName[w.Type]
	if !ok {
		return fmt.Errorf("unknown event type %q", w.Type)
	}
	e.Kind = kind
	switch kind {
	case KindProgress:
		if w.Value == nil {
			return fmt.Errorf("progress event missing value")
		}
		e.Percent = *w.Value
	case KindEvaluation:
		var ev Evaluation
		if err := json.Unmarshal(w.Content, &ev); err != nil {
			return fmt.Errorf("bad evaluation payload: %w", err)
		}
		e.Evaluation = &ev
	case KindUserRequest:
		var req UserRequest
		if err := json.Unmarshal(w.Content, &req); err != nil {
			return fmt.Errorf("bad user_request payload: %w", err)
		}
		e.Request = &req
	default:
		var s string
		if err := json.Unmarshal(w.Content, &s); err != nil {
			// Some tools return structured observations; keep them as
			// compact JSON text rather than failing the event.
			e.Content = string(w.Content)
			return nil
		}
		e.Content = s
	}
	return nil
}

// Session is a durable unit of conversation: the originating task and the
// ordered transcript accumulated across one or more streaming turns. The
// history is append-only and never contains progress events.
type Session struct {
	ID        string    `json:"id"`
	Task      string    `json:"task"`
	History   []Event   `json:"history"`
	CreatedAt time.Time `json:"created_at"`
}

// Settings holds the user-entered model connection settings. Stored as an
// opaque blob alongside sessions; the core only threads it through to the
// backend.
type Settings struct {
	APIBaseURL string `json:"apiBaseUrl"`
	APIKey     string `json:"apiKey"`
	ModelName  string `json:"modelName"`
}
