package internal

import (
	"bytes"
	"strings"
	"testing"
)

func renderToString(ev *Event, replay bool) string {
	var buf bytes.Buffer
	NewTerminalSink(&buf).Render(ev, replay)
	return buf.String()
}

func TestTerminalSink_Render(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want []string
	}{
		{
			name: "thought",
			ev:   Event{Kind: KindThought, Content: "inspect the data"},
			want: []string{"Thought", "  inspect the data"},
		},
		{
			name: "multiline content indented per line",
			ev:   Event{Kind: KindObservation, Content: "row one\nrow two"},
			want: []string{"  row one", "  row two"},
		},
		{
			name: "action with tool marker",
			ev:   Event{Kind: KindAction, Content: `Calling tool: run_python, args: {"code": "1+1"}`},
			want: []string{"Action", "run_python", `{"code": "1+1"}`},
		},
		{
			name: "action without marker",
			ev:   Event{Kind: KindAction, Content: "opaque action"},
			want: []string{"  opaque action"},
		},
		{
			name: "evaluation",
			ev: Event{Kind: KindEvaluation, Evaluation: &Evaluation{
				Score: 8, Justification: "solid", ChartPath: "charts/a.png",
			}},
			want: []string{"Evaluation", "8/10", "  solid", "  Chart: charts/a.png"},
		},
		{
			name: "fractional score",
			ev:   Event{Kind: KindEvaluation, Evaluation: &Evaluation{Score: 7.5}},
			want: []string{"7.5/10"},
		},
		{
			name: "user request with files",
			ev: Event{Kind: KindUserRequest, Request: &UserRequest{
				Task: "find outliers", Files: []string{"a.csv", "b.csv"},
			}},
			want: []string{"User Request", "  find outliers", "a.csv", "b.csv"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := renderToString(&tt.ev, false)
			for _, fragment := range tt.want {
				if !strings.Contains(out, fragment) {
					t.Errorf("output missing %q:\n%s", fragment, out)
				}
			}
		})
	}
}

func TestTerminalSink_UpdateProgress(t *testing.T) {
	var buf bytes.Buffer
	sink := NewTerminalSink(&buf)
	sink.UpdateProgress(ProgressState{Percent: 40, StatusText: "thinking"})

	out := buf.String()
	if !strings.Contains(out, "40%") || !strings.Contains(out, "thinking") {
		t.Errorf("progress line = %q", out)
	}
}
