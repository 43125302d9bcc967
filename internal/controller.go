package internal

import (
	"context"
	"io"
)

// ControllerState is the session controller's lifecycle state.
type ControllerState int

const (
	// StateNoSession means no session is active (new-chat state).
	StateNoSession ControllerState = iota
	// StateStreamingNew means a session is being created and its first
	// stream consumed.
	StateStreamingNew
	// StateIdle means a session is active with no stream in flight.
	StateIdle
	// StateStreamingContinue means a follow-up stream for the active
	// session is in flight.
	StateStreamingContinue
)

var stateNames = map[ControllerState]string{
	StateNoSession:         "no active session",
	StateStreamingNew:      "streaming a new session",
	StateIdle:              "idle",
	StateStreamingContinue: "streaming a continuation",
}

func (s ControllerState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s ControllerState) streaming() bool {
	return s == StateStreamingNew || s == StateStreamingContinue
}

// Controller orchestrates session lifecycles: it is the only component
// that mutates the active-session pointer and the only writer into the
// store. One stream may be in flight at a time; operations that would
// start a second one are rejected with a StateError rather than queued.
// All methods are intended for a single goroutine.
type Controller struct {
	store    *Store
	backend  Backend
	sink     Sink
	progress *ProgressTracker

	state  ControllerState
	active string // active session id, "" in StateNoSession
}

// NewController creates a controller with its injected collaborators.
func NewController(store *Store, backend Backend, sink Sink) *Controller {
	return &Controller{
		store:    store,
		backend:  backend,
		sink:     sink,
		progress: NewProgressTracker(),
	}
}

// State returns the controller's current lifecycle state.
func (c *Controller) State() ControllerState {
	return c.state
}

// ActiveSession returns the active session id, or "" when none is active.
func (c *Controller) ActiveSession() string {
	return c.active
}

// Progress returns the live progress snapshot.
func (c *Controller) Progress() ProgressState {
	return c.progress.Snapshot()
}

// StartNewAnalysis creates a session on the backend, records it locally
// and consumes its first event stream. On any failure before the session
// is created, no local state changes.
func (c *Controller) StartNewAnalysis(ctx context.Context, task string, files []UploadFile, settings Settings) error {
	if c.state.streaming() {
		return &StateError{Op: "start a new analysis", State: c.state}
	}

	result, err := c.backend.CreateSession(ctx, task, files, settings)
	if err != nil {
		c.fail(err)
		return err
	}

	if _, err := c.store.Create(result.SessionID, task); err != nil {
		c.fail(err)
		return err
	}

	c.state = StateStreamingNew
	c.active = result.SessionID

	if len(result.InitialEvent) > 0 {
		if ev, ierr := Interpret(string(result.InitialEvent)); ierr != nil {
			LogWarn("Dropping unreadable initial event: %v", ierr)
		} else if err := c.dispatch(ev); err != nil {
			c.fail(err)
			return err
		}
	}

	return c.consume(ctx, task, settings)
}

// ContinueChat sends a follow-up task to the active session and consumes
// its stream.
func (c *Controller) ContinueChat(ctx context.Context, task string, settings Settings) error {
	if c.state.streaming() {
		return &StateError{Op: "continue the chat", State: c.state}
	}
	if c.state == StateNoSession {
		return &StateError{Op: "continue the chat", State: c.state}
	}

	c.state = StateStreamingContinue
	return c.consume(ctx, task, settings)
}

// SelectSession switches the active session and replays its stored history
// to the sink in original order. No network call is involved.
func (c *Controller) SelectSession(id string) error {
	if c.state.streaming() {
		return &StateError{Op: "switch sessions", State: c.state}
	}
	sess, err := c.store.Get(id)
	if err != nil {
		return err
	}
	c.active = sess.ID
	c.state = StateIdle
	for i := range sess.History {
		c.sink.Render(&sess.History[i], true)
	}
	return nil
}

// DeleteSession removes a session in two phases: backend cleanup first,
// local removal only once that succeeds. On backend failure the local
// record is retained untouched and the error surfaced, so local and remote
// state never silently diverge.
func (c *Controller) DeleteSession(ctx context.Context, id string) error {
	if c.state.streaming() {
		return &StateError{Op: "delete a session", State: c.state}
	}
	if _, err := c.store.Get(id); err != nil {
		return err
	}
	if err := c.backend.DeleteSession(ctx, id); err != nil {
		return err
	}
	if err := c.store.Delete(id); err != nil {
		return err
	}
	if c.active == id {
		c.active = ""
		c.state = StateNoSession
	}
	return nil
}

// consume runs the single-threaded stream consumption loop: decode frames,
// interpret them, route progress to the tracker and content to the store
// and sink, strictly in arrival order. Events persisted before a transport
// failure are kept.
func (c *Controller) consume(ctx context.Context, task string, settings Settings) error {
	c.progress.Reset()
	c.sink.UpdateProgress(c.progress.Snapshot())

	body, err := c.backend.Stream(ctx, c.active, task, settings)
	if err != nil {
		c.fail(err)
		return err
	}
	defer body.Close()

	decoder := NewFrameDecoder()
	buf := make([]byte, 4096)
	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			for _, payload := range decoder.Feed(buf[:n]) {
				if err := c.handleFrame(payload); err != nil {
					c.fail(err)
					return err
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			decoder.Discard()
			terr := &TransportError{Op: "read", Err: readErr}
			c.fail(terr)
			return terr
		}
	}
	for _, payload := range decoder.Finish() {
		if err := c.handleFrame(payload); err != nil {
			c.fail(err)
			return err
		}
	}

	// Progress freezes at its last value after completion.
	c.state = StateIdle
	return nil
}

// handleFrame interprets one frame payload and dispatches the event.
// Frame-level parse failures are logged and swallowed; only store-level
// failures propagate.
func (c *Controller) handleFrame(payload string) error {
	ev, err := Interpret(payload)
	if err != nil {
		LogWarn("Dropping malformed frame: %v", err)
		return nil
	}
	return c.dispatch(ev)
}

// dispatch routes one decoded event: progress events update the tracker,
// transcript events are persisted then rendered. A status text derived
// from content events updates the indicator's text dimension only.
func (c *Controller) dispatch(ev *Event) error {
	if ev.Kind == KindProgress {
		v := ev.Percent
		c.progress.Update(&v, "")
		c.sink.UpdateProgress(c.progress.Snapshot())
		return nil
	}
	if err := c.appendAndRender(ev); err != nil {
		return err
	}
	if status := StatusText(ev); status != "" {
		c.progress.Update(nil, status)
		c.sink.UpdateProgress(c.progress.Snapshot())
	}
	return nil
}

func (c *Controller) appendAndRender(ev *Event) error {
	if err := c.store.Append(c.active, *ev); err != nil {
		return err
	}
	c.sink.Render(ev, false)
	return nil
}

// fail surfaces a failed operation as one synthetic system event (rendered
// but never persisted) and settles the controller state: Idle while the
// active session still exists locally, NoSession otherwise. The partial
// transcript already appended is kept.
func (c *Controller) fail(err error) {
	LogError("Session operation failed: %v", err)
	c.sink.Render(&Event{Kind: KindSystem, Content: "Analysis failed: " + err.Error()}, false)
	if c.active == "" {
		c.state = StateNoSession
		return
	}
	if _, gerr := c.store.Get(c.active); gerr != nil {
		c.active = ""
		c.state = StateNoSession
		return
	}
	c.state = StateIdle
}
