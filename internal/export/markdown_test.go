package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iksnae/talk-to-data/internal"
)

func TestMarkdownExporter_Export(t *testing.T) {
	session := internal.CreateTestSession("md-test")
	var buf bytes.Buffer
	if err := (&MarkdownExporter{}).Export(session, &buf); err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	out := buf.String()

	wantFragments := []string{
		"# Talk to Data Analysis Report",
		"**Session:** md-test",
		"**Task:** Find the top products by revenue",
		"## 👤 User Request",
		"- 📄 sales.csv",
		"## 🧠 Thought",
		"I should inspect the data first.",
		"## 📊 Observation",
		"## 📝 Final Summary",
		"Product A leads with 34% of revenue.",
	}
	for _, fragment := range wantFragments {
		if !strings.Contains(out, fragment) {
			t.Errorf("report missing %q", fragment)
		}
	}

	// Replay order is the report order.
	thought := strings.Index(out, "## 🧠 Thought")
	summary := strings.Index(out, "## 📝 Final Summary")
	if thought > summary {
		t.Error("thought section appears after the final summary")
	}
}

func TestMarkdownExporter_ActionSection(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "tool with json args",
			content: `Calling tool: run_python, args: {"code": "df.head()"}`,
			want:    []string{"**Tool**: `run_python`", "**Arguments**:", `"code": "df.head()"`},
		},
		{
			name:    "tool without args",
			content: "Calling tool: load_data",
			want:    []string{"**Tool**: `load_data`"},
		},
		{
			name:    "unmarked content falls back to a fence",
			content: "free-form action text",
			want:    []string{"```\nfree-form action text\n```"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &internal.Session{
				ID:      "a",
				Task:    "t",
				History: []internal.Event{{Kind: internal.KindAction, Content: tt.content}},
			}
			var buf bytes.Buffer
			if err := (&MarkdownExporter{}).Export(session, &buf); err != nil {
				t.Fatalf("Export() error: %v", err)
			}
			for _, fragment := range tt.want {
				if !strings.Contains(buf.String(), fragment) {
					t.Errorf("report missing %q in:\n%s", fragment, buf.String())
				}
			}
		})
	}
}

func TestMarkdownExporter_EvaluationSection(t *testing.T) {
	session := &internal.Session{
		ID:   "e",
		Task: "t",
		History: []internal.Event{{
			Kind: internal.KindEvaluation,
			Evaluation: &internal.Evaluation{
				Score:         8.5,
				Justification: "thorough analysis",
				ChartPath:     "charts/run1.png",
			},
		}},
	}
	var buf bytes.Buffer
	if err := (&MarkdownExporter{}).Export(session, &buf); err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	out := buf.String()
	for _, fragment := range []string{
		"## ⭐ Evaluation",
		"**Score:** 8.5/10",
		"**Justification:** thorough analysis",
		"![Performance chart](charts/run1.png)",
	} {
		if !strings.Contains(out, fragment) {
			t.Errorf("report missing %q", fragment)
		}
	}
}
