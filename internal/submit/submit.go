package submit

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/rojgari/candidate-intake/internal/formstate"
	"github.com/rojgari/candidate-intake/internal/logging"
	"github.com/rojgari/candidate-intake/internal/validation"
)

// Outcome is the user-visible result of one submission attempt.
type Outcome struct {
	Success   bool
	ProfileID string
	Message   string
	// Conflict marks the duplicate-email case so the boundary can pass
	// the 409 through.
	Conflict bool
	// Warning carries the non-fatal photo-upload failure on an otherwise
	// successful submission.
	Warning string
	// Errors holds validation failures keyed by UI field key; set only
	// when validation aborted the attempt.
	Errors map[string]string
	// ScrollTop hints the UI to scroll to the first error.
	ScrollTop bool
}

// Submitter runs the full submission pipeline against a form store.
type Submitter struct {
	engine     *validation.Engine
	dispatcher *Dispatcher
	log        logging.Logger
}

// NewSubmitter wires the validation engine and the backend dispatcher.
func NewSubmitter(engine *validation.Engine, dispatcher *Dispatcher, log logging.Logger) *Submitter {
	return &Submitter{engine: engine, dispatcher: dispatcher, log: log}
}

// Submit normalizes and validates the store's form, maps it to the
// backend payload, creates the profile and uploads a staged photo.
// Validation failure aborts before any network call; backend failures
// preserve form state. Only a fully successful attempt resets the
// store.
func (s *Submitter) Submit(ctx context.Context, store *formstate.Store) Outcome {
	store.MarkSubmitAttempt()

	form := store.Snapshot()
	validation.NormalizePhones(&form)

	res := s.engine.ValidateForm(form)
	if !res.OK {
		store.SetErrors(res.Errors)
		return Outcome{Errors: res.Errors, ScrollTop: true}
	}
	store.SetErrors(nil)

	payload := BuildPayload(form)
	if err := CheckPayload(payload); err != nil {
		s.log.Error("outbound payload failed schema check", zap.Error(err))
		return Outcome{Message: MsgSomethingWentWrong}
	}

	profileID, err := s.dispatcher.CreateProfile(ctx, payload)
	if err != nil {
		var conflict *ConflictError
		return Outcome{Message: creationMessage(err), Conflict: errors.As(err, &conflict)}
	}

	outcome := Outcome{Success: true, ProfileID: profileID,
		Message: MsgProfileCreated(form.FirstName, form.SurName)}

	if photo := store.Photo(); photo != nil {
		if err := s.dispatcher.UploadPhoto(ctx, profileID, photo); err != nil {
			s.log.Warn("photo upload failed after profile creation",
				zap.String("profile_id", profileID), zap.Error(err))
			outcome.Warning = uploadWarning(err)
		}
	}

	store.Reset()
	return outcome
}

func creationMessage(err error) string {
	var conflict *ConflictError
	var server *ServerError
	var parse *ParseError
	switch {
	case errors.As(err, &conflict):
		return MsgConflictEmail
	case errors.As(err, &server):
		return MsgServerError
	case errors.As(err, &parse):
		return MsgFailedParseJSON
	default:
		return MsgSomethingWentWrong
	}
}

func uploadWarning(err error) string {
	var conflict *ConflictError
	var server *ServerError
	switch {
	case errors.As(err, &conflict):
		return MsgPhotoUploadConflict
	case errors.As(err, &server):
		return MsgPhotoUploadServerError
	default:
		return MsgPhotoUploadFailed
	}
}
