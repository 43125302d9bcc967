package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/iksnae/talk-to-data/internal"
)

// MarkdownExporter renders a session as an analysis report.
type MarkdownExporter struct{}

var kindHeadings = map[internal.EventKind]string{
	internal.KindSystem:       "⚙️ System",
	internal.KindThought:      "🧠 Thought",
	internal.KindAction:       "⚡️ Action",
	internal.KindObservation:  "📊 Observation",
	internal.KindFinalSummary: "📝 Final Summary",
	internal.KindEvaluation:   "⭐ Evaluation",
	internal.KindUserRequest:  "👤 User Request",
}

// Export writes the session transcript as a Markdown report.
func (e *MarkdownExporter) Export(session *internal.Session, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# Talk to Data Analysis Report\n\n")
	_, _ = fmt.Fprintf(w, "**Session:** %s  \n", session.ID)
	_, _ = fmt.Fprintf(w, "**Task:** %s  \n", session.Task)
	_, _ = fmt.Fprintf(w, "**Exported:** %s\n\n---\n\n", time.Now().Format("2006-01-02 15:04:05"))

	for i := range session.History {
		ev := &session.History[i]
		heading, ok := kindHeadings[ev.Kind]
		if !ok {
			heading = "💬 " + ev.Kind.String()
		}
		_, _ = fmt.Fprintf(w, "## %s\n\n", heading)

		switch ev.Kind {
		case internal.KindAction:
			writeAction(w, ev.Content)
		case internal.KindEvaluation:
			writeEvaluation(w, ev.Evaluation)
		case internal.KindUserRequest:
			writeRequest(w, ev.Request)
		default:
			_, _ = fmt.Fprintf(w, "```\n%s\n```\n\n", ev.Content)
		}
	}
	return nil
}

// writeAction decomposes an action frame into tool name plus
// pretty-printed arguments; unparseable content falls back to a fence.
func writeAction(w io.Writer, content string) {
	name := internal.ToolName(content)
	rawArgs := internal.ToolArgs(content)
	if name == "" {
		_, _ = fmt.Fprintf(w, "```\n%s\n```\n\n", content)
		return
	}
	_, _ = fmt.Fprintf(w, "**Tool**: `%s`\n\n", name)
	if rawArgs == "" {
		return
	}
	var args map[string]interface{}
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		_, _ = fmt.Fprintf(w, "```\n%s\n```\n\n", rawArgs)
		return
	}
	pretty, err := json.MarshalIndent(args, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(w, "```\n%s\n```\n\n", rawArgs)
		return
	}
	_, _ = fmt.Fprintf(w, "**Arguments**:\n```json\n%s\n```\n\n", pretty)
}

func writeEvaluation(w io.Writer, ev *internal.Evaluation) {
	if ev == nil {
		return
	}
	_, _ = fmt.Fprintf(w, "**Score:** %.1f/10\n\n", ev.Score)
	if ev.Justification != "" {
		_, _ = fmt.Fprintf(w, "**Justification:** %s\n\n", ev.Justification)
	}
	if ev.ChartPath != "" {
		_, _ = fmt.Fprintf(w, "![Performance chart](%s)\n\n", ev.ChartPath)
	}
}

func writeRequest(w io.Writer, req *internal.UserRequest) {
	if req == nil {
		return
	}
	_, _ = fmt.Fprintf(w, "%s\n\n", req.Task)
	for _, name := range req.Files {
		_, _ = fmt.Fprintf(w, "- 📄 %s\n", name)
	}
	if len(req.Files) > 0 {
		_, _ = fmt.Fprintln(w)
	}
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
