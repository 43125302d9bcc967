package internal

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Sink receives ordered transcript events and progress updates. The core
// makes no assumption about presentation beyond this contract; rendering
// of markup inside event payloads is the sink's business.
type Sink interface {
	// Render displays one transcript event. replay is true when the event
	// comes from stored history rather than a live stream.
	Render(ev *Event, replay bool)
	// UpdateProgress displays the current progress indicator.
	UpdateProgress(state ProgressState)
}

var (
	eventTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	replayTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("240"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)

	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	toolStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)
)

var kindGlyphs = map[EventKind]string{
	KindSystem:       "⚙",
	KindThought:      "🧠",
	KindAction:       "⚡",
	KindObservation:  "📊",
	KindFinalSummary: "📝",
	KindEvaluation:   "⭐",
	KindUserRequest:  "👤",
}

var kindTitles = map[EventKind]string{
	KindSystem:       "System",
	KindThought:      "Thought",
	KindAction:       "Action",
	KindObservation:  "Observation",
	KindFinalSummary: "Final Summary",
	KindEvaluation:   "Evaluation",
	KindUserRequest:  "User Request",
}

// TerminalSink renders events as styled blocks on a terminal and keeps a
// one-line progress status current.
type TerminalSink struct {
	out io.Writer
}

// NewTerminalSink creates a sink writing to out.
func NewTerminalSink(out io.Writer) *TerminalSink {
	return &TerminalSink{out: out}
}

// Render displays one transcript event.
func (t *TerminalSink) Render(ev *Event, replay bool) {
	style := eventTitleStyle
	if replay {
		style = replayTitleStyle
	}
	title := fmt.Sprintf("%s %s", kindGlyphs[ev.Kind], kindTitles[ev.Kind])
	fmt.Fprintln(t.out, style.Render(title))

	switch ev.Kind {
	case KindAction:
		if name := ToolName(ev.Content); name != "" {
			fmt.Fprintf(t.out, "  %s\n", toolStyle.Render(name))
			if args := ToolArgs(ev.Content); args != "" {
				fmt.Fprintf(t.out, "  %s\n", args)
			}
		} else {
			fmt.Fprintf(t.out, "  %s\n", ev.Content)
		}
	case KindEvaluation:
		if ev.Evaluation != nil {
			fmt.Fprintf(t.out, "  %s %s/10\n", scoreStyle.Render("Score:"), formatScore(ev.Evaluation.Score))
			if ev.Evaluation.Justification != "" {
				fmt.Fprintf(t.out, "  %s\n", ev.Evaluation.Justification)
			}
			if ev.Evaluation.ChartPath != "" {
				fmt.Fprintf(t.out, "  Chart: %s\n", ev.Evaluation.ChartPath)
			}
		}
	case KindUserRequest:
		if ev.Request != nil {
			fmt.Fprintf(t.out, "  %s\n", ev.Request.Task)
			for _, name := range ev.Request.Files {
				fmt.Fprintf(t.out, "  📄 %s\n", name)
			}
		}
	default:
		for _, line := range strings.Split(ev.Content, "\n") {
			fmt.Fprintf(t.out, "  %s\n", line)
		}
	}
	fmt.Fprintln(t.out)
}

// UpdateProgress displays the current progress indicator.
func (t *TerminalSink) UpdateProgress(state ProgressState) {
	line := fmt.Sprintf("[%3.0f%%] %s", state.Percent, state.StatusText)
	fmt.Fprintln(t.out, statusStyle.Render(line))
}

func formatScore(score float64) string {
	if score == float64(int(score)) {
		return fmt.Sprintf("%d", int(score))
	}
	return fmt.Sprintf("%.1f", score)
}
