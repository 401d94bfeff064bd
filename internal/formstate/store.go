// Package formstate owns the mutable in-progress submission: the form
// record, touched tracking, the error map and debounced interactive
// validation.
package formstate

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rojgari/candidate-intake/internal/location"
	"github.com/rojgari/candidate-intake/internal/logging"
	"github.com/rojgari/candidate-intake/internal/schema"
	"github.com/rojgari/candidate-intake/internal/types"
	"github.com/rojgari/candidate-intake/internal/validation"
)

// DefaultDebounce is the delay between a field write and its interactive
// validation. A newer write to the same field restarts the delay.
const DefaultDebounce = 200 * time.Millisecond

// Photo is a staged profile photo held outside the JSON payload until
// the profile exists.
type Photo struct {
	Name        string
	ContentType string
	Data        []byte
}

// Store is the single mutable record for one in-progress submission.
// All methods are safe for concurrent use.
type Store struct {
	mu              sync.Mutex
	form            types.ResumeForm
	errors          map[string]string
	touched         map[string]bool
	submitAttempted bool
	photo           *Photo

	engine   *validation.Engine
	log      logging.Logger
	debounce time.Duration
	timers   map[string]*time.Timer
	stopped  bool
}

// Option configures a Store.
type Option func(*Store)

// WithDebounce overrides the interactive validation delay. Zero or
// negative makes validation synchronous, which tests rely on.
func WithDebounce(d time.Duration) Option {
	return func(s *Store) { s.debounce = d }
}

// New creates an empty Store with defaulted form contents.
func New(engine *validation.Engine, log logging.Logger, opts ...Option) *Store {
	s := &Store{
		form:     types.NewResumeForm(),
		errors:   map[string]string{},
		touched:  map[string]bool{},
		engine:   engine,
		log:      log,
		debounce: DefaultDebounce,
		timers:   map[string]*time.Timer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the form contents wholesale, e.g. from a decoded request
// body. Errors and touched state are preserved.
func (s *Store) Load(f types.ResumeForm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = f.Clone()
}

// Snapshot returns a deep copy of the current form.
func (s *Store) Snapshot() types.ResumeForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.Clone()
}

// Errors returns a copy of the current error map.
func (s *Store) Errors() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// Touched reports whether a field key has been written to.
func (s *Store) Touched(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched[key]
}

// numeric-ish inputs keep digit-only values.
var numericFormFields = map[string]bool{
	"expectedSalary":  true,
	"totalExperience": true,
}

var numericEntryFields = map[string]bool{
	"passingYear":  true,
	"noticePeriod": true,
	"currentWages": true,
	"year":         true,
}

// SetField writes a top-level field. Location fields run the cascade
// first; fields cleared by the cascade also drop their errors and
// touched state. The written field is marked touched and scheduled for
// debounced validation.
func (s *Store) SetField(field string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if field == "workType" {
		if v, ok := value.(string); ok {
			s.setWorkTypeLocked(types.WorkType(v))
		}
		return
	}

	if group, level, ok := location.FieldLevel(field); ok {
		var cleared []string
		switch {
		case field == "availabilityCity":
			v, ok := value.([]string)
			if !ok {
				s.log.Warn("unsupported location field value", zap.String("field", field))
				return
			}
			cleared = location.ApplyCities(&s.form, v)
		default:
			v, ok := value.(string)
			if !ok {
				s.log.Warn("unsupported location field value", zap.String("field", field))
				return
			}
			cleared = location.Apply(&s.form, group, level, v)
		}
		for _, c := range cleared {
			delete(s.errors, c)
			delete(s.touched, c)
		}
		s.touchAndValidate(schema.FieldRef{Kind: schema.KindForm, Field: field})
		return
	}

	if !s.setScalarLocked(field, value) {
		s.log.Debug("ignoring unknown form field", zap.String("field", field))
		return
	}
	s.touchAndValidate(schema.FieldRef{Kind: schema.KindForm, Field: field})
}

func (s *Store) setScalarLocked(field string, value any) bool {
	str, _ := value.(string)
	if numericFormFields[field] {
		str = validation.StripNonDigits(str)
	}
	switch field {
	case "firstName":
		s.form.FirstName = str
	case "surName":
		s.form.SurName = str
	case "email":
		s.form.Email = str
	case "phone":
		s.form.Phone = str
	case "alternateMobile":
		s.form.AlternateMobile = str
	case "dob":
		s.form.DOB = str
	case "gender":
		s.form.Gender = str
	case "maritalStatus":
		s.form.MaritalStatus = str
	case "otherVillage":
		s.form.OtherVillage = str
	case "address":
		s.form.Address = str
	case "pincode":
		s.form.Pincode = str
	case "summary":
		s.form.Summary = str
	case "availabilityCategory":
		s.form.AvailabilityCategory = str
	case "availabilityIndustry":
		s.form.AvailabilityIndustry = str
	case "availabilityCustomIndustry":
		s.form.AvailabilityCustomIndustry = str
	case "availabilityJobCategory":
		s.form.AvailabilityJobCategory = str
	case "availabilityOtherVillage":
		s.form.AvailabilityOtherVillage = str
	case "expectedSalary":
		s.form.ExpectedSalary = str
	case "totalExperience":
		s.form.TotalExperience = str
	case "joiningDate":
		s.form.JoiningDate = str
	case "additionalInfo":
		s.form.AdditionalInfo = str
	case "languagesKnown":
		if v, ok := value.([]string); ok {
			s.form.LanguagesKnown = append([]string(nil), v...)
		}
	case "declarationChecked":
		if v, ok := value.(bool); ok {
			s.form.DeclarationChecked = v
		}
	default:
		return false
	}
	return true
}

// SetEntryField writes one field of a repeating-group row. Out-of-range
// rows are ignored.
func (s *Store) SetEntryField(kind schema.EntityKind, row int, field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if numericEntryFields[field] {
		value = validation.StripNonDigits(value)
	}

	switch kind {
	case schema.KindExperience:
		if row < 0 || row >= len(s.form.Experiences) {
			return
		}
		setExperienceField(&s.form.Experiences[row], field, value)
	case schema.KindEducation:
		if row < 0 || row >= len(s.form.EducationList) {
			return
		}
		setEducationField(&s.form.EducationList[row], field, value)
	case schema.KindSkill:
		if row < 0 || row >= len(s.form.SkillsList) || field != "name" {
			return
		}
		s.form.SkillsList[row].Name = value
	case schema.KindCertification:
		if row < 0 || row >= len(s.form.CertificationList) {
			return
		}
		setCertificationField(&s.form.CertificationList[row], field, value)
	default:
		return
	}

	s.touchAndValidate(schema.FieldRef{Kind: kind, Row: row, Field: field})
}

func setExperienceField(e *types.ExperienceEntry, field, value string) {
	switch field {
	case "industry":
		e.Industry = value
	case "customIndustry":
		e.CustomIndustry = value
	case "position":
		e.Position = value
	case "company":
		e.Company = value
	case "noticePeriod":
		e.NoticePeriod = value
	case "startDate":
		e.StartDate = value
	case "endDate":
		e.EndDate = value
	case "currentWages":
		e.CurrentWages = value
	case "currentCity":
		e.CurrentCity = value
	case "currentVillage":
		e.CurrentVillage = value
		if value != types.OtherSentinel {
			e.CurrentVillageOther = ""
		}
	case "currentVillageOther":
		e.CurrentVillageOther = value
	}
}

func setEducationField(e *types.EducationEntry, field, value string) {
	switch field {
	case "degree":
		e.Degree = value
	case "university":
		e.University = value
	case "passingYear":
		e.PassingYear = value
	case "grade":
		e.Grade = value
	}
}

func setCertificationField(e *types.CertificationEntry, field, value string) {
	switch field {
	case "name":
		e.Name = value
	case "year":
		e.Year = value
	case "achievement":
		e.Achievement = value
	}
}

// AddEntry appends a blank row to a repeating group.
func (s *Store) AddEntry(kind schema.EntityKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch kind {
	case schema.KindExperience:
		s.form.Experiences = append(s.form.Experiences, types.ExperienceEntry{})
	case schema.KindEducation:
		s.form.EducationList = append(s.form.EducationList, types.EducationEntry{})
	case schema.KindSkill:
		s.form.SkillsList = append(s.form.SkillsList, types.SkillEntry{})
	case schema.KindCertification:
		s.form.CertificationList = append(s.form.CertificationList, types.CertificationEntry{})
	}
}

// RemoveEntry drops a row from a repeating group. A group never drops
// below one row. Errors and touched state for that row and the rows
// after it are discarded; they are rebuilt on the next interaction.
func (s *Store) RemoveEntry(kind schema.EntityKind, row int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind {
	case schema.KindExperience:
		if len(s.form.Experiences) <= 1 || row < 0 || row >= len(s.form.Experiences) {
			return
		}
		s.form.Experiences = append(s.form.Experiences[:row], s.form.Experiences[row+1:]...)
	case schema.KindEducation:
		if len(s.form.EducationList) <= 1 || row < 0 || row >= len(s.form.EducationList) {
			return
		}
		s.form.EducationList = append(s.form.EducationList[:row], s.form.EducationList[row+1:]...)
	case schema.KindSkill:
		if len(s.form.SkillsList) <= 1 || row < 0 || row >= len(s.form.SkillsList) {
			return
		}
		s.form.SkillsList = append(s.form.SkillsList[:row], s.form.SkillsList[row+1:]...)
	case schema.KindCertification:
		if len(s.form.CertificationList) <= 1 || row < 0 || row >= len(s.form.CertificationList) {
			return
		}
		s.form.CertificationList = append(s.form.CertificationList[:row], s.form.CertificationList[row+1:]...)
	default:
		return
	}

	s.dropRowStateLocked(kind, row)
}

func (s *Store) dropRowStateLocked(kind schema.EntityKind, fromRow int) {
	for key := range s.errors {
		if ref, ok := schema.ParseKey(key); ok && ref.Kind == kind && ref.Row >= fromRow {
			delete(s.errors, key)
		}
	}
	for key := range s.touched {
		if ref, ok := schema.ParseKey(key); ok && ref.Kind == kind && ref.Row >= fromRow {
			delete(s.touched, key)
		}
	}
}

// SetWorkType switches the submission shape. Switching reinitializes the
// experience list to one blank row and discards experience errors and
// touched state; reselecting the current value is a no-op.
func (s *Store) SetWorkType(wt types.WorkType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setWorkTypeLocked(wt)
}

func (s *Store) setWorkTypeLocked(wt types.WorkType) {
	if !wt.Valid() || wt == s.form.WorkType {
		return
	}
	s.form.WorkType = wt
	s.form.Experiences = []types.ExperienceEntry{{}}
	s.dropRowStateLocked(schema.KindExperience, 0)
	delete(s.errors, "experiences")
}

// MarkSubmitAttempt lifts the touched gate: from now on every failing
// field shows its message.
func (s *Store) MarkSubmitAttempt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitAttempted = true
}

// SetErrors replaces the whole error map, e.g. with a whole-form
// validation result.
func (s *Store) SetErrors(errs map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = make(map[string]string, len(errs))
	for k, v := range errs {
		s.errors[k] = v
	}
}

// StagePhoto holds a profile photo for upload after profile creation.
func (s *Store) StagePhoto(name, contentType string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photo = &Photo{Name: name, ContentType: contentType, Data: append([]byte(nil), data...)}
}

// Photo returns the staged photo, or nil.
func (s *Store) Photo() *Photo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.photo
}

// Reset restores initial defaults: all scalars empty, one blank row per
// repeating group, declaration unchecked, no errors, nothing touched, no
// staged photo.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelTimersLocked()
	s.form = types.NewResumeForm()
	s.errors = map[string]string{}
	s.touched = map[string]bool{}
	s.submitAttempted = false
	s.photo = nil
}

// Stop cancels pending validation timers. The store is unusable for
// debounced validation afterwards.
func (s *Store) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	s.cancelTimersLocked()
}

func (s *Store) cancelTimersLocked() {
	for key, t := range s.timers {
		t.Stop()
		delete(s.timers, key)
	}
}

func (s *Store) touchAndValidate(ref schema.FieldRef) {
	key := ref.Key()
	s.touched[key] = true

	if s.debounce <= 0 {
		s.validateLocked(ref)
		return
	}
	if t, ok := s.timers[key]; ok {
		t.Stop()
	}
	s.timers[key] = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.stopped {
			return
		}
		delete(s.timers, key)
		s.validateLocked(ref)
	})
}

func (s *Store) validateLocked(ref schema.FieldRef) {
	value, ok := validation.FieldValue(&s.form, ref)
	if !ok {
		return
	}
	msg := s.engine.ValidateField(ref, value, s.form.WorkType)
	s.applyFieldResultLocked(ref.Key(), msg)

	// Changing either experience date re-evaluates the row's ordering.
	if ref.Kind == schema.KindExperience && (ref.Field == "startDate" || ref.Field == "endDate") {
		exp := s.form.Experiences[ref.Row]
		orderKey := schema.FieldRef{Kind: schema.KindExperience, Row: ref.Row, Field: "endDate"}.Key()
		s.applyFieldResultLocked(orderKey, validation.ValidateExperienceDates(exp.StartDate, exp.EndDate))
	}
}

// applyFieldResultLocked clears a passing field unconditionally but only
// surfaces a failure once the field is touched or submission was
// attempted.
func (s *Store) applyFieldResultLocked(key, msg string) {
	if msg == "" {
		delete(s.errors, key)
		return
	}
	if s.touched[key] || s.submitAttempted {
		s.errors[key] = msg
	}
}
