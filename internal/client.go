package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// UploadFile is one data file submitted with a new analysis.
type UploadFile struct {
	Name string
	Data []byte
}

// CreateResult is the backend's acknowledgement of a new session.
type CreateResult struct {
	SessionID    string          `json:"session_id"`
	InitialEvent json.RawMessage `json:"initial_event,omitempty"`
}

// Backend is the remote analysis service the core invokes but does not
// implement. Stream returns the raw response body; the caller owns closing
// it and decoding frames from it.
type Backend interface {
	TestConnection(ctx context.Context, settings Settings) error
	CreateSession(ctx context.Context, task string, files []UploadFile, settings Settings) (*CreateResult, error)
	Stream(ctx context.Context, sessionID, task string, settings Settings) (io.ReadCloser, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// HTTPBackend talks to the local analysis server over HTTP.
type HTTPBackend struct {
	baseURL string
	// Separate clients: API calls get a timeout, the streaming call must
	// stay open for the whole analysis and is bounded by ctx instead.
	client       *http.Client
	streamClient *http.Client
}

// NewHTTPBackend creates a backend client targeting the given base URL
// (e.g. "http://127.0.0.1:5001").
func NewHTTPBackend(baseURL string) *HTTPBackend {
	return &HTTPBackend{
		baseURL:      baseURL,
		client:       &http.Client{Timeout: 30 * time.Second},
		streamClient: &http.Client{},
	}
}

// TestConnection asks the backend to validate the model API settings by
// listing the provider's models. The backend answers {success, message}
// on both success and rejection, on rejection with an HTTP error status.
func (b *HTTPBackend) TestConnection(ctx context.Context, settings Settings) error {
	data, err := json.Marshal(map[string]string{
		"api_key":      settings.APIKey,
		"api_base_url": settings.APIBaseURL,
	})
	if err != nil {
		return &TransportError{Op: "test_connection", Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/api/test_connection", bytes.NewReader(data))
	if err != nil {
		return &TransportError{Op: "test_connection", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return &TransportError{Op: "test_connection", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return &TransportError{Op: "test_connection", Err: err}
	}
	var result struct {
		Success bool   `json:"success"`
		Message string `json:"message,omitempty"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		if resp.StatusCode >= 300 {
			return &BackendError{Op: "test_connection", Message: fmt.Sprintf("%d %s", resp.StatusCode, bytes.TrimSpace(body))}
		}
		return &TransportError{Op: "test_connection", Err: err}
	}
	if !result.Success {
		msg := result.Message
		if msg == "" {
			msg = "connection test failed"
		}
		return &BackendError{Op: "test_connection", Message: msg}
	}
	return nil
}

// CreateSession uploads the task and data files and returns the new
// session's id plus the backend's initial event.
func (b *HTTPBackend) CreateSession(ctx context.Context, task string, files []UploadFile, settings Settings) (*CreateResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fields := map[string]string{
		"task":         task,
		"api_base_url": settings.APIBaseURL,
		"api_key":      settings.APIKey,
		"model_name":   settings.ModelName,
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return nil, &TransportError{Op: "create", Err: err}
		}
	}
	for _, f := range files {
		part, err := mw.CreateFormFile("file", f.Name)
		if err != nil {
			return nil, &TransportError{Op: "create", Err: err}
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, &TransportError{Op: "create", Err: err}
		}
	}
	if err := mw.Close(); err != nil {
		return nil, &TransportError{Op: "create", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/api/create_session", &body)
	if err != nil {
		return nil, &TransportError{Op: "create", Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "create", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, &BackendError{Op: "create", Message: readErrorMessage(resp)}
	}

	var result CreateResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &TransportError{Op: "create", Err: err}
	}
	if result.SessionID == "" {
		return nil, &BackendError{Op: "create", Message: "no session id in response"}
	}
	return &result, nil
}

// Stream opens the event stream for a session turn. The returned body
// stays open until stream end or ctx cancellation.
func (b *HTTPBackend) Stream(ctx context.Context, sessionID, task string, settings Settings) (io.ReadCloser, error) {
	payload := map[string]string{
		"session_id":   sessionID,
		"task":         task,
		"api_base_url": settings.APIBaseURL,
		"api_key":      settings.APIKey,
		"model_name":   settings.ModelName,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, &TransportError{Op: "stream", Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/api/stream", bytes.NewReader(data))
	if err != nil {
		return nil, &TransportError{Op: "stream", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := b.streamClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "stream", Err: err}
	}
	if resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, &BackendError{Op: "stream", Message: readErrorMessage(resp)}
	}
	return resp.Body, nil
}

// DeleteSession asks the backend to clean up the session's server-side
// state. An explicit success=false result and a timeout are both surfaced
// as BackendError so the caller retains the local record either way.
func (b *HTTPBackend) DeleteSession(ctx context.Context, sessionID string) error {
	data, err := json.Marshal(map[string]string{"session_id": sessionID})
	if err != nil {
		return &TransportError{Op: "delete", Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/api/delete_session", bytes.NewReader(data))
	if err != nil {
		return &TransportError{Op: "delete", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return &BackendError{Op: "delete", Message: err.Error()}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return &BackendError{Op: "delete", Message: readErrorMessage(resp)}
	}

	var result struct {
		Success bool   `json:"success"`
		Message string `json:"message,omitempty"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return &TransportError{Op: "delete", Err: err}
	}
	if !result.Success {
		msg := result.Message
		if msg == "" {
			msg = "cleanup failed"
		}
		return &BackendError{Op: "delete", Message: msg}
	}
	return nil
}

func readErrorMessage(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var apiErr struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil {
		if apiErr.Error != "" {
			return apiErr.Error
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
	}
	return fmt.Sprintf("%d %s", resp.StatusCode, bytes.TrimSpace(body))
}
