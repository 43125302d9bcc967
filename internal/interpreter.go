package internal

import (
	"encoding/json"
	"strings"
)

// toolMarker is the fixed prefix the backend puts in front of the tool
// name inside an action event's content. Used only to derive display
// status; persistence never depends on it.
const (
	toolMarker    = "Calling tool: "
	toolArgsDelim = ", args: "
)

// Interpret parses one frame payload into a typed Event. A payload that is
// not valid JSON, or whose type is outside the known set, yields a
// FrameError; callers drop the frame and continue.
func Interpret(payload string) (*Event, error) {
	var ev Event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return nil, &FrameError{Frame: payload, Err: err}
	}
	return &ev, nil
}

// StatusText derives the live status line for an event. The mapping is a
// static table; kinds outside it produce no status update (empty string).
// Pure: the same event always yields the same text.
func StatusText(ev *Event) string {
	switch ev.Kind {
	case KindThought:
		return "thinking"
	case KindAction:
		if name := ToolName(ev.Content); name != "" {
			return "invoking tool: " + name
		}
		return "invoking tool"
	case KindObservation:
		return "processing observation"
	case KindFinalSummary:
		return "generating summary"
	case KindEvaluation:
		return "task complete"
	default:
		return ""
	}
}

// ToolName extracts the tool name from an action event's content via the
// fixed wire marker. Returns "" when the content does not match.
func ToolName(content string) string {
	rest, ok := strings.CutPrefix(content, toolMarker)
	if !ok {
		return ""
	}
	if i := strings.Index(rest, toolArgsDelim); i >= 0 {
		return rest[:i]
	}
	return strings.TrimSpace(rest)
}

// ToolArgs extracts the raw argument object from an action event's
// content. Returns "" when the content has no argument section.
func ToolArgs(content string) string {
	i := strings.Index(content, toolArgsDelim)
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(content[i+len(toolArgsDelim):])
}
