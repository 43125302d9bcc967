package internal

import (
	"context"
	"io"
	"strings"
)

// FakeBackend is a scripted in-memory Backend for tests. Zero value:
// creation succeeds with "talk-to-data-test", streams return StreamBody
// verbatim.
type FakeBackend struct {
	NextSessionID string
	InitialEvent  string
	StreamBody    string

	TestErr   error
	CreateErr error
	StreamErr error
	DeleteErr error

	// StreamBodies, when non-empty, is consumed one body per Stream call
	// for multi-turn tests; StreamBody is the fallback.
	StreamBodies []string

	TestCalls   int      // number of TestConnection calls
	CreateCalls []string // tasks passed to CreateSession
	StreamCalls []string // tasks passed to Stream
	DeleteCalls []string // session ids passed to DeleteSession
}

func (f *FakeBackend) TestConnection(_ context.Context, _ Settings) error {
	f.TestCalls++
	return f.TestErr
}

func (f *FakeBackend) CreateSession(_ context.Context, task string, _ []UploadFile, _ Settings) (*CreateResult, error) {
	f.CreateCalls = append(f.CreateCalls, task)
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	id := f.NextSessionID
	if id == "" {
		id = "talk-to-data-test"
	}
	result := &CreateResult{SessionID: id}
	if f.InitialEvent != "" {
		result.InitialEvent = []byte(f.InitialEvent)
	}
	return result, nil
}

func (f *FakeBackend) Stream(_ context.Context, _, task string, _ Settings) (io.ReadCloser, error) {
	f.StreamCalls = append(f.StreamCalls, task)
	if f.StreamErr != nil {
		return nil, f.StreamErr
	}
	body := f.StreamBody
	if len(f.StreamBodies) > 0 {
		body = f.StreamBodies[0]
		f.StreamBodies = f.StreamBodies[1:]
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func (f *FakeBackend) DeleteSession(_ context.Context, sessionID string) error {
	f.DeleteCalls = append(f.DeleteCalls, sessionID)
	return f.DeleteErr
}

// RenderedEvent is one Sink.Render call captured by a RecordingSink.
type RenderedEvent struct {
	Event  Event
	Replay bool
}

// RecordingSink captures render and progress calls for assertions.
type RecordingSink struct {
	Rendered []RenderedEvent
	Progress []ProgressState
}

func (r *RecordingSink) Render(ev *Event, replay bool) {
	r.Rendered = append(r.Rendered, RenderedEvent{Event: *ev, Replay: replay})
}

func (r *RecordingSink) UpdateProgress(state ProgressState) {
	r.Progress = append(r.Progress, state)
}

// SystemErrors returns the contents of rendered synthetic failure events.
func (r *RecordingSink) SystemErrors() []string {
	var out []string
	for _, re := range r.Rendered {
		if re.Event.Kind == KindSystem && strings.HasPrefix(re.Event.Content, "Analysis failed:") {
			out = append(out, re.Event.Content)
		}
	}
	return out
}

// CreateTestSession builds a session with a small representative history.
func CreateTestSession(id string) *Session {
	return &Session{
		ID:   id,
		Task: "Find the top products by revenue",
		History: []Event{
			{Kind: KindUserRequest, Request: &UserRequest{Task: "Find the top products by revenue", Files: []string{"sales.csv"}}},
			{Kind: KindThought, Content: "I should inspect the data first."},
			{Kind: KindObservation, Content: "5 columns, 1200 rows."},
			{Kind: KindFinalSummary, Content: "Product A leads with 34% of revenue."},
		},
	}
}
