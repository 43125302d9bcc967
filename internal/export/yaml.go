package export

import (
	"fmt"
	"io"

	"github.com/iksnae/talk-to-data/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports a session in YAML format.
type YAMLExporter struct{}

// yamlSession flattens the event union into plain maps so the YAML output
// carries only the fields relevant to each kind.
type yamlSession struct {
	ID        string                   `yaml:"id"`
	Task      string                   `yaml:"task"`
	CreatedAt string                   `yaml:"created_at"`
	History   []map[string]interface{} `yaml:"history"`
}

// Export writes the session as YAML.
func (e *YAMLExporter) Export(session *internal.Session, w io.Writer) error {
	doc := yamlSession{
		ID:        session.ID,
		Task:      session.Task,
		CreatedAt: session.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	for i := range session.History {
		doc.History = append(doc.History, yamlEvent(&session.History[i]))
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return nil
}

func yamlEvent(ev *internal.Event) map[string]interface{} {
	obj := map[string]interface{}{"type": ev.Kind.String()}
	switch ev.Kind {
	case internal.KindEvaluation:
		if ev.Evaluation != nil {
			obj["score"] = ev.Evaluation.Score
			obj["justification"] = ev.Evaluation.Justification
			if ev.Evaluation.ChartPath != "" {
				obj["chart_path"] = ev.Evaluation.ChartPath
			}
		}
	case internal.KindUserRequest:
		if ev.Request != nil {
			obj["task"] = ev.Request.Task
			if len(ev.Request.Files) > 0 {
				obj["files"] = ev.Request.Files
			}
		}
	default:
		obj["content"] = ev.Content
	}
	return obj
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
