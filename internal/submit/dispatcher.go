package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/rojgari/candidate-intake/internal/config"
	"github.com/rojgari/candidate-intake/internal/formstate"
	"github.com/rojgari/candidate-intake/internal/logging"
)

// ConflictError is the backend's duplicate signal (HTTP 409).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("conflict: %s", e.Message)
	}
	return "conflict"
}

// ServerError is a backend 5xx.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}

// ParseError indicates an unreadable backend response.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse backend response: %v", e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// Dispatcher issues the profile-creation and photo-upload requests to
// the backend API.
type Dispatcher struct {
	baseURL string
	client  *http.Client
	log     logging.Logger
}

// NewDispatcher creates a Dispatcher for the configured backend.
func NewDispatcher(cfg *config.BackendConfig, log logging.Logger) *Dispatcher {
	return &Dispatcher{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		log:     log,
	}
}

// createResponse is the success envelope of profile creation.
type createResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
	Message string `json:"message"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// CreateProfile posts the payload and returns the new profile id.
// HTTP 409 maps to ConflictError, 5xx to ServerError, an unreadable
// body to ParseError.
func (d *Dispatcher) CreateProfile(ctx context.Context, payload ProfilePayload) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/candidate-profile", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build creation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("profile creation request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ParseError{Cause: err}
	}

	switch {
	case resp.StatusCode == http.StatusConflict:
		var er errorResponse
		_ = json.Unmarshal(raw, &er)
		return "", &ConflictError{Message: er.Message}
	case resp.StatusCode >= http.StatusInternalServerError:
		var er errorResponse
		_ = json.Unmarshal(raw, &er)
		msg := er.Message
		if msg == "" {
			msg = er.Error
		}
		return "", &ServerError{Status: resp.StatusCode, Message: msg}
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return "", &ServerError{Status: resp.StatusCode}
	}

	var cr createResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return "", &ParseError{Cause: err}
	}
	if cr.Data.ID == "" {
		return "", &ParseError{Cause: fmt.Errorf("response carries no profile id")}
	}

	d.log.Info("profile created", zap.String("profile_id", cr.Data.ID))
	return cr.Data.ID, nil
}

// UploadPhoto posts the staged photo as multipart field "profile_photo"
// scoped to an existing profile.
func (d *Dispatcher) UploadPhoto(ctx context.Context, profileID string, photo *formstate.Photo) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("profile_photo", photo.Name)
	if err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(photo.Data); err != nil {
		return fmt.Errorf("failed to write photo data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	url := fmt.Sprintf("%s/candidate-profile/%s/upload", d.baseURL, profileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("photo upload request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusConflict:
		return &ConflictError{}
	case resp.StatusCode >= http.StatusInternalServerError:
		return &ServerError{Status: resp.StatusCode}
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return fmt.Errorf("photo upload returned status %d", resp.StatusCode)
	}

	d.log.Info("profile photo uploaded", zap.String("profile_id", profileID))
	return nil
}
