package export

import (
	"bytes"
	"testing"

	"github.com/iksnae/talk-to-data/internal"
	"gopkg.in/yaml.v3"
)

func TestYAMLExporter_Export(t *testing.T) {
	session := internal.CreateTestSession("yaml-test")
	var buf bytes.Buffer
	if err := (&YAMLExporter{}).Export(session, &buf); err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	var decoded struct {
		ID      string                   `yaml:"id"`
		Task    string                   `yaml:"task"`
		History []map[string]interface{} `yaml:"history"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded.ID != "yaml-test" || decoded.Task != session.Task {
		t.Errorf("decoded header = (%q, %q)", decoded.ID, decoded.Task)
	}
	if len(decoded.History) != len(session.History) {
		t.Fatalf("history length = %d, want %d", len(decoded.History), len(session.History))
	}
	for i, ev := range decoded.History {
		if ev["type"] != session.History[i].Kind.String() {
			t.Errorf("event %d type = %v, want %s", i, ev["type"], session.History[i].Kind)
		}
	}

	// The request event carries task and files, not a content string.
	request := decoded.History[0]
	if request["task"] != session.Task {
		t.Errorf("request task = %v", request["task"])
	}
	if _, ok := request["content"]; ok {
		t.Error("request event has a content field")
	}
}

func TestYAMLExporter_Evaluation(t *testing.T) {
	session := &internal.Session{
		ID:   "e",
		Task: "t",
		History: []internal.Event{{
			Kind:       internal.KindEvaluation,
			Evaluation: &internal.Evaluation{Score: 8.5, Justification: "clean run"},
		}},
	}
	var buf bytes.Buffer
	if err := (&YAMLExporter{}).Export(session, &buf); err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	var decoded struct {
		History []map[string]interface{} `yaml:"history"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	ev := decoded.History[0]
	if ev["score"] != 8.5 || ev["justification"] != "clean run" {
		t.Errorf("evaluation = %v", ev)
	}
	if _, ok := ev["chart_path"]; ok {
		t.Error("empty chart path serialized")
	}
}
