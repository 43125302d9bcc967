package internal

import (
	"encoding/json"
	"testing"
)

func TestEventKind_String(t *testing.T) {
	tests := []struct {
		kind EventKind
		want string
	}{
		{KindSystem, "system"},
		{KindThought, "thought"},
		{KindAction, "action"},
		{KindObservation, "observation"},
		{KindFinalSummary, "final_summary"},
		{KindEvaluation, "evaluation"},
		{KindProgress, "progress"},
		{KindUserRequest, "user_request"},
		{EventKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("EventKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestEventKind_Transcript(t *testing.T) {
	for kind := range kindNames {
		want := kind != KindProgress
		if got := kind.Transcript(); got != want {
			t.Errorf("%s.Transcript() = %v, want %v", kind, got, want)
		}
	}
}

func TestEvent_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    Event
		wantErr bool
	}{
		{
			name:    "text event",
			payload: `{"type":"thought","content":"inspect the data"}`,
			want:    Event{Kind: KindThought, Content: "inspect the data"},
		},
		{
			name:    "progress event",
			payload: `{"type":"progress","value":42.5}`,
			want:    Event{Kind: KindProgress, Percent: 42.5},
		},
		{
			name:    "evaluation event",
			payload: `{"type":"evaluation","content":{"score":8,"justification":"ok","chart_path":"plots/eval.png"}}`,
			want: Event{Kind: KindEvaluation, Evaluation: &Evaluation{
				Score: 8, Justification: "ok", ChartPath: "plots/eval.png",
			}},
		},
		{
			name:    "user request event",
			payload: `{"type":"user_request","content":{"task":"plot revenue","files":["sales.csv","regions.csv"]}}`,
			want: Event{Kind: KindUserRequest, Request: &UserRequest{
				Task: "plot revenue", Files: []string{"sales.csv", "regions.csv"},
			}},
		},
		{
			name:    "structured observation kept as raw JSON text",
			payload: `{"type":"observation","content":{"status":"finished","summary":"done"}}`,
			want:    Event{Kind: KindObservation, Content: `{"status":"finished","summary":"done"}`},
		},
		{
			name:    "unknown type",
			payload: `{"type":"telemetry","content":"x"}`,
			wantErr: true,
		},
		{
			name:    "progress without value",
			payload: `{"type":"progress"}`,
			wantErr: true,
		},
		{
			name:    "not json",
			payload: `{"type":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Event
			err := json.Unmarshal([]byte(tt.payload), &got)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal() error: %v", err)
			}
			assertEventEqual(t, &got, &tt.want)
		})
	}
}

func TestEvent_MarshalRoundTrip(t *testing.T) {
	events := []Event{
		{Kind: KindSystem, Content: "file loaded"},
		{Kind: KindAction, Content: `Calling tool: run_python, args: {"code":"df.head()"}`},
		{Kind: KindProgress, Percent: 64},
		{Kind: KindEvaluation, Evaluation: &Evaluation{Score: 9.5, Justification: "thorough"}},
		{Kind: KindUserRequest, Request: &UserRequest{Task: "summarize", Files: []string{"a.csv"}}},
	}

	for i := range events {
		data, err := json.Marshal(&events[i])
		if err != nil {
			t.Fatalf("Marshal() error: %v", err)
		}
		var back Event
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal() error: %v", err)
		}
		assertEventEqual(t, &back, &events[i])
	}
}

func TestSession_HistoryRoundTrip(t *testing.T) {
	sess := CreateTestSession("talk-to-data-abc")
	data, err := json.Marshal(sess)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	var back Session
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if back.ID != sess.ID || back.Task != sess.Task {
		t.Errorf("metadata mismatch: got (%s, %s)", back.ID, back.Task)
	}
	if len(back.History) != len(sess.History) {
		t.Fatalf("history length = %d, want %d", len(back.History), len(sess.History))
	}
	for i := range back.History {
		assertEventEqual(t, &back.History[i], &sess.History[i])
	}
}

func assertEventEqual(t *testing.T, got, want *Event) {
	t.Helper()
	if got.Kind != want.Kind {
		t.Errorf("kind = %s, want %s", got.Kind, want.Kind)
	}
	if got.Content != want.Content {
		t.Errorf("content = %q, want %q", got.Content, want.Content)
	}
	if got.Percent != want.Percent {
		t.Errorf("percent = %v, want %v", got.Percent, want.Percent)
	}
	if (got.Evaluation == nil) != (want.Evaluation == nil) {
		t.Fatalf("evaluation presence = %v, want %v", got.Evaluation != nil, want.Evaluation != nil)
	}
	if want.Evaluation != nil && *got.Evaluation != *want.Evaluation {
		t.Errorf("evaluation = %+v, want %+v", *got.Evaluation, *want.Evaluation)
	}
	if (got.Request == nil) != (want.Request == nil) {
		t.Fatalf("request presence = %v, want %v", got.Request != nil, want.Request != nil)
	}
	if want.Request != nil {
		if got.Request.Task != want.Request.Task {
			t.Errorf("request task = %q, want %q", got.Request.Task, want.Request.Task)
		}
		if len(got.Request.Files) != len(want.Request.Files) {
			t.Errorf("request files = %v, want %v", got.Request.Files, want.Request.Files)
		}
	}
}
