package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/rojgari/candidate-intake/internal/formstate"
	"github.com/rojgari/candidate-intake/internal/metrics"
	"github.com/rojgari/candidate-intake/internal/otp"
	"github.com/rojgari/candidate-intake/internal/submit"
	"github.com/rojgari/candidate-intake/internal/types"
)

// maxUploadBytes caps multipart request memory for photo uploads.
const maxUploadBytes = 10 << 20

// verificationHeader carries the short-lived token proving the form's
// email address passed OTP verification.
const verificationHeader = "X-Verification-Token"

// handleStates returns every known state.
func (s *Server) handleStates(w http.ResponseWriter, r *http.Request) {
	states, err := s.locations.States(r.Context())
	if err != nil {
		s.log.Error("failed to fetch states", zap.Error(err))
		upstreamErr := &ErrUpstream{Resource: "states"}
		s.errorResponse(w, HTTPStatus(upstreamErr), upstreamErr.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"data": states})
}

// handleDistricts returns the districts under ?state=.
func (s *Server) handleDistricts(w http.ResponseWriter, r *http.Request) {
	s.handleChildLookup(w, r, "State", "state", "districts", s.locations.Districts)
}

// handleTalukas returns the cities/talukas under ?district=.
func (s *Server) handleTalukas(w http.ResponseWriter, r *http.Request) {
	s.handleChildLookup(w, r, "District", "district", "talukas", s.locations.Talukas)
}

// handleVillages returns the villages under ?taluka=.
func (s *Server) handleVillages(w http.ResponseWriter, r *http.Request) {
	s.handleChildLookup(w, r, "Taluka", "taluka", "villages", s.locations.Villages)
}

// handleChildLookup serves one level of the cascade: the parent value
// arrives as a query parameter and the child options come back under
// "data".
func (s *Server) handleChildLookup(w http.ResponseWriter, r *http.Request,
	label, param, resource string,
	fetch func(ctx context.Context, parent string) ([]string, error)) {
	parent := strings.TrimSpace(r.URL.Query().Get(param))
	if parent == "" {
		missing := &ErrMissingParameter{Name: label}
		s.errorResponse(w, HTTPStatus(missing), missing.Error())
		return
	}

	options, err := fetch(r.Context(), parent)
	if err != nil {
		s.log.Error("failed to fetch location options",
			zap.String("resource", resource), zap.Error(err))
		upstreamErr := &ErrUpstream{Resource: resource}
		s.errorResponse(w, HTTPStatus(upstreamErr), upstreamErr.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"data": options})
}

// handleSendOTP generates and emails a verification code.
func (s *Server) handleSendOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		s.errorResponse(w, http.StatusBadRequest, submit.MsgEnterEmail)
		return
	}

	if err := s.otpService.Send(r.Context(), email); err != nil {
		metrics.OTPSendsTotal.WithLabelValues("error").Inc()
		s.log.Error("failed to send OTP", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to send OTP")
		return
	}

	metrics.OTPSendsTotal.WithLabelValues("success").Inc()
	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true})
}

// handleVerifyOTP checks a submitted code and returns a verification
// token binding the email address.
func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	email := strings.TrimSpace(req.Email)
	code := strings.TrimSpace(req.OTP)
	if email == "" || code == "" {
		s.errorResponse(w, http.StatusBadRequest, "Email and OTP are required")
		return
	}

	token, err := s.otpService.Verify(r.Context(), email, code)
	if err != nil {
		if errors.Is(err, otp.ErrCodeMismatch) || errors.Is(err, otp.ErrNotFound) {
			metrics.OTPVerifiesTotal.WithLabelValues("mismatch").Inc()
			s.errorResponse(w, http.StatusBadRequest, submit.MsgIncorrectOTP)
			return
		}
		metrics.OTPVerifiesTotal.WithLabelValues("error").Inc()
		s.log.Error("failed to verify OTP", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, submit.MsgServerError)
		return
	}

	metrics.OTPVerifiesTotal.WithLabelValues("success").Inc()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":           true,
		"verificationToken": token,
	})
}

// handleResume accepts the completed form (JSON, or multipart with an
// attached photo) and runs the full submission pipeline. The email on
// the form must match a valid verification token.
func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	form, photo, err := s.parseResumeRequest(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if err := s.checkVerification(r, form.Email); err != nil {
		metrics.SubmissionsTotal.WithLabelValues("unverified").Inc()
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	store := formstate.New(s.engine, s.log, formstate.WithDebounce(0))
	defer store.Stop()
	store.Load(form)
	if photo != nil {
		store.StagePhoto(photo.Name, photo.ContentType, photo.Data)
	}

	out := s.submitter.Submit(r.Context(), store)
	switch {
	case out.Errors != nil:
		metrics.SubmissionsTotal.WithLabelValues("invalid").Inc()
		s.jsonResponse(w, http.StatusBadRequest, map[string]any{
			"error":     "Validation failed",
			"errors":    out.Errors,
			"scrollTop": out.ScrollTop,
		})
	case !out.Success && out.Conflict:
		metrics.SubmissionsTotal.WithLabelValues("conflict").Inc()
		s.errorResponse(w, http.StatusConflict, out.Message)
	case !out.Success:
		metrics.SubmissionsTotal.WithLabelValues("error").Inc()
		s.errorResponse(w, http.StatusInternalServerError, out.Message)
	default:
		metrics.SubmissionsTotal.WithLabelValues("success").Inc()
		resp := map[string]any{
			"success": true,
			"data":    map[string]string{"id": out.ProfileID},
			"message": out.Message,
		}
		if out.Warning != "" {
			resp["warning"] = out.Warning
		}
		s.jsonResponse(w, http.StatusCreated, resp)
	}
}

// parseResumeRequest decodes the form from a JSON body, or from the
// "payload" field of a multipart body with an optional "photo" file.
func (s *Server) parseResumeRequest(r *http.Request) (types.ResumeForm, *formstate.Photo, error) {
	var form types.ResumeForm

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			return form, nil, &ErrBadRequest{Message: "Invalid request body"}
		}
		return form, nil, nil
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return form, nil, &ErrBadRequest{Message: "Invalid multipart body"}
	}

	payload := r.FormValue("payload")
	if payload == "" {
		return form, nil, &ErrBadRequest{Message: "payload field is required"}
	}
	if err := json.Unmarshal([]byte(payload), &form); err != nil {
		return form, nil, &ErrBadRequest{Message: "Invalid payload JSON"}
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		// The photo is optional on submission.
		return form, nil, nil
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return form, nil, &ErrBadRequest{Message: "Unreadable photo upload"}
	}

	photo := &formstate.Photo{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}
	return form, photo, nil
}

// checkVerification enforces the OTP precondition: the request must
// carry a token whose subject matches the form's email.
func (s *Server) checkVerification(r *http.Request, formEmail string) error {
	token := r.Header.Get(verificationHeader)
	if token == "" {
		token = r.FormValue("verificationToken")
	}
	if token == "" {
		return &ErrUnverifiedEmail{}
	}

	email, err := s.tokens.Verify(token)
	if err != nil {
		s.log.Warn("rejected verification token", zap.Error(err))
		return &ErrUnverifiedEmail{}
	}
	if !strings.EqualFold(strings.TrimSpace(email), strings.TrimSpace(formEmail)) {
		return &ErrUnverifiedEmail{}
	}
	return nil
}

// handleUploadPhoto forwards a standalone photo upload for an existing
// profile to the backend.
func (s *Server) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart body")
		return
	}

	profileID := strings.TrimSpace(r.FormValue("profileId"))
	if profileID == "" {
		s.errorResponse(w, http.StatusBadRequest, "profileId is required")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Unreadable photo upload")
		return
	}

	photo := &formstate.Photo{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}

	if err := s.dispatcher.UploadPhoto(r.Context(), profileID, photo); err != nil {
		var conflict *submit.ConflictError
		var serverErr *submit.ServerError
		switch {
		case errors.As(err, &conflict):
			metrics.PhotoUploadsTotal.WithLabelValues("conflict").Inc()
			s.errorResponse(w, http.StatusConflict, submit.MsgPhotoUploadConflict)
		case errors.As(err, &serverErr):
			metrics.PhotoUploadsTotal.WithLabelValues("error").Inc()
			s.errorResponse(w, http.StatusInternalServerError, submit.MsgPhotoUploadServerError)
		default:
			metrics.PhotoUploadsTotal.WithLabelValues("error").Inc()
			s.log.Error("photo upload failed", zap.Error(err))
			s.errorResponse(w, http.StatusInternalServerError, submit.MsgPhotoUploadFailed)
		}
		return
	}

	metrics.PhotoUploadsTotal.WithLabelValues("success").Inc()
	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true})
}
