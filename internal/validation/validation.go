// Package validation implements the field-level and whole-form
// validation engine for candidate intake submissions.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rojgari/candidate-intake/internal/schema"
	"github.com/rojgari/candidate-intake/internal/types"
)

// InvalidValueMessage is the fallback when a rule fails without a
// field-specific message.
const InvalidValueMessage = "Invalid value"

const (
	villageFreeTextMessage = "Village name is required"
	endDateOrderMessage    = "End date cannot be before start date"
)

var (
	mobilePattern  = regexp.MustCompile(`^(\+91)\s?[6-9]\d{9}$`)
	pincodePattern = regexp.MustCompile(`^\d{6}$`)
)

// Engine evaluates the declarative rules in the schema package against
// form values. Safe for concurrent use.
type Engine struct {
	v *validator.Validate
}

// New creates an Engine with the custom validators registered:
// "inmobile" for Indian mobile numbers in +91 form and "pincode" for
// 6-digit postal codes.
func New() *Engine {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("inmobile", func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("pincode", func(fl validator.FieldLevel) bool {
		return pincodePattern.MatchString(fl.Field().String())
	})
	return &Engine{v: v}
}

// ValidateField validates a single field value and returns the
// user-facing message, or "" when the value passes. Unknown fields pass.
// Experience fields are skipped for fresher candidates since that group
// is not part of their submission shape.
func (e *Engine) ValidateField(ref schema.FieldRef, value any, workType types.WorkType) (msg string) {
	defer func() {
		if recover() != nil {
			msg = InvalidValueMessage
		}
	}()

	rule, ok := schema.Lookup(ref)
	if !ok || rule.Tag == "" {
		return ""
	}
	if workType == types.WorkTypeFresher && ref.Kind == schema.KindExperience {
		return ""
	}

	return e.check(value, rule.Tag, rule.Messages)
}

// check runs a tag expression against a value and maps the first failed
// tag to its message.
func (e *Engine) check(value any, tag string, messages map[string]string) string {
	err := e.v.Var(value, tag)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return InvalidValueMessage
	}
	if m, ok := messages[verrs[0].Tag()]; ok {
		return m
	}
	return InvalidValueMessage
}

// ValidateExperienceDates checks the start/end ordering of one
// experience row. Either date empty, or unparseable, is not an error;
// emptiness is reported by the required rules.
func ValidateExperienceDates(startDate, endDate string) string {
	if startDate == "" || endDate == "" {
		return ""
	}
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return ""
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return ""
	}
	if end.Before(start) {
		return endDateOrderMessage
	}
	return ""
}

// Result is the outcome of whole-form validation. Errors is keyed by the
// UI field key (see schema.FieldRef.Key); group-level errors use the
// group name.
type Result struct {
	OK     bool
	Errors map[string]string
}

// ValidateForm validates a complete submission against the rules for
// its work type. The form is expected to be phone-normalized first.
func (e *Engine) ValidateForm(f types.ResumeForm) Result {
	errs := map[string]string{}

	if !f.WorkType.Valid() {
		errs["workType"] = InvalidValueMessage
	}

	for _, field := range schema.Fields(schema.KindForm) {
		ref := schema.FieldRef{Kind: schema.KindForm, Field: field}
		rule, _ := schema.Lookup(ref)
		tag, messages := submitRule(rule)
		if tag == "" {
			continue
		}
		value, ok := formValue(&f, field)
		if !ok {
			continue
		}
		if msg := e.check(value, tag, messages); msg != "" {
			errs[field] = msg
		}
	}

	e.validateExperiences(&f, errs)
	e.validateEducation(&f, errs)
	e.validateSkills(&f, errs)
	validateVillageFreeText(&f, errs)

	return Result{OK: len(errs) == 0, Errors: errs}
}

func submitRule(rule schema.Rule) (string, map[string]string) {
	if rule.SubmitTag == schema.SkipSubmit {
		return "", nil
	}
	tag := rule.Tag
	messages := rule.Messages
	if rule.SubmitTag != "" {
		tag = rule.SubmitTag
	}
	if rule.SubmitMessages != nil {
		messages = rule.SubmitMessages
	}
	return tag, messages
}

func (e *Engine) validateExperiences(f *types.ResumeForm, errs map[string]string) {
	if f.WorkType != types.WorkTypeExperienced {
		return
	}
	if len(f.Experiences) == 0 {
		errs["experiences"] = schema.GroupMinMessages["experiences"]
		return
	}
	for i, exp := range f.Experiences {
		for _, field := range schema.Fields(schema.KindExperience) {
			ref := schema.FieldRef{Kind: schema.KindExperience, Row: i, Field: field}
			rule, _ := schema.Lookup(ref)
			if rule.Tag == "" {
				continue
			}
			if msg := e.check(experienceValue(exp, field), rule.Tag, rule.Messages); msg != "" {
				errs[ref.Key()] = msg
			}
		}
		if msg := ValidateExperienceDates(exp.StartDate, exp.EndDate); msg != "" {
			errs[schema.FieldRef{Kind: schema.KindExperience, Row: i, Field: "endDate"}.Key()] = msg
		}
	}
}

func (e *Engine) validateEducation(f *types.ResumeForm, errs map[string]string) {
	if len(f.EducationList) == 0 {
		errs["educationList"] = schema.GroupMinMessages["educationList"]
		return
	}
	for i, edu := range f.EducationList {
		for _, field := range schema.Fields(schema.KindEducation) {
			ref := schema.FieldRef{Kind: schema.KindEducation, Row: i, Field: field}
			rule, _ := schema.Lookup(ref)
			if rule.Tag == "" {
				continue
			}
			if msg := e.check(educationValue(edu, field), rule.Tag, rule.Messages); msg != "" {
				errs[ref.Key()] = msg
			}
		}
	}
}

func (e *Engine) validateSkills(f *types.ResumeForm, errs map[string]string) {
	if len(f.SkillsList) == 0 {
		errs["skillsList"] = schema.GroupMinMessages["skillsList"]
		return
	}
	for i, sk := range f.SkillsList {
		ref := schema.FieldRef{Kind: schema.KindSkill, Row: i, Field: "name"}
		rule, _ := schema.Lookup(ref)
		if msg := e.check(sk.Name, rule.Tag, rule.Messages); msg != "" {
			errs[ref.Key()] = msg
		}
	}
}

// validateVillageFreeText enforces the paired free-text field wherever a
// village dropdown holds the manual-entry sentinel.
func validateVillageFreeText(f *types.ResumeForm, errs map[string]string) {
	if f.Village == types.OtherSentinel && strings.TrimSpace(f.OtherVillage) == "" {
		errs["otherVillage"] = villageFreeTextMessage
	}
	if f.AvailabilityVillage == types.OtherSentinel && strings.TrimSpace(f.AvailabilityOtherVillage) == "" {
		errs["availabilityOtherVillage"] = villageFreeTextMessage
	}
	if f.WorkType != types.WorkTypeExperienced {
		return
	}
	for i, exp := range f.Experiences {
		if exp.CurrentVillage == types.OtherSentinel && strings.TrimSpace(exp.CurrentVillageOther) == "" {
			errs[schema.FieldRef{Kind: schema.KindExperience, Row: i, Field: "currentVillageOther"}.Key()] = villageFreeTextMessage
		}
	}
}

// FieldValue resolves the current value of a field reference within a
// form. ok is false for unknown fields and out-of-range rows.
func FieldValue(f *types.ResumeForm, ref schema.FieldRef) (any, bool) {
	switch ref.Kind {
	case schema.KindForm:
		return formValue(f, ref.Field)
	case schema.KindExperience:
		if ref.Row < 0 || ref.Row >= len(f.Experiences) {
			return nil, false
		}
		return experienceValue(f.Experiences[ref.Row], ref.Field), true
	case schema.KindEducation:
		if ref.Row < 0 || ref.Row >= len(f.EducationList) {
			return nil, false
		}
		return educationValue(f.EducationList[ref.Row], ref.Field), true
	case schema.KindSkill:
		if ref.Row < 0 || ref.Row >= len(f.SkillsList) {
			return nil, false
		}
		if ref.Field != "name" {
			return nil, false
		}
		return f.SkillsList[ref.Row].Name, true
	case schema.KindCertification:
		if ref.Row < 0 || ref.Row >= len(f.CertificationList) {
			return nil, false
		}
		return certificationValue(f.CertificationList[ref.Row], ref.Field), true
	}
	return nil, false
}

func formValue(f *types.ResumeForm, field string) (any, bool) {
	switch field {
	case "firstName":
		return f.FirstName, true
	case "surName":
		return f.SurName, true
	case "email":
		return f.Email, true
	case "phone":
		return f.Phone, true
	case "alternateMobile":
		return f.AlternateMobile, true
	case "dob":
		return f.DOB, true
	case "gender":
		return f.Gender, true
	case "maritalStatus":
		return f.MaritalStatus, true
	case "state":
		return f.State, true
	case "district":
		return f.District, true
	case "city":
		return f.City, true
	case "village":
		return f.Village, true
	case "otherVillage":
		return f.OtherVillage, true
	case "address":
		return f.Address, true
	case "pincode":
		return f.Pincode, true
	case "summary":
		return f.Summary, true
	case "availabilityCategory":
		return f.AvailabilityCategory, true
	case "availabilityIndustry":
		return f.AvailabilityIndustry, true
	case "availabilityCustomIndustry":
		return f.AvailabilityCustomIndustry, true
	case "availabilityJobCategory":
		return f.AvailabilityJobCategory, true
	case "availabilityState":
		return f.AvailabilityState, true
	case "availabilityDistrict":
		return f.AvailabilityDistrict, true
	case "availabilityCity":
		return f.AvailabilityCity, true
	case "availabilityVillage":
		return f.AvailabilityVillage, true
	case "availabilityOtherVillage":
		return f.AvailabilityOtherVillage, true
	case "expectedSalary":
		return f.ExpectedSalary, true
	case "totalExperience":
		return f.TotalExperience, true
	case "joiningDate":
		return f.JoiningDate, true
	case "additionalInfo":
		return f.AdditionalInfo, true
	case "languagesKnown":
		return f.LanguagesKnown, true
	case "declarationChecked":
		return f.DeclarationChecked, true
	}
	return nil, false
}

func experienceValue(e types.ExperienceEntry, field string) any {
	switch field {
	case "industry":
		return e.Industry
	case "customIndustry":
		return e.CustomIndustry
	case "position":
		return e.Position
	case "company":
		return e.Company
	case "noticePeriod":
		return e.NoticePeriod
	case "startDate":
		return e.StartDate
	case "endDate":
		return e.EndDate
	case "currentWages":
		return e.CurrentWages
	case "currentCity":
		return e.CurrentCity
	case "currentVillage":
		return e.CurrentVillage
	case "currentVillageOther":
		return e.CurrentVillageOther
	}
	return ""
}

func educationValue(e types.EducationEntry, field string) any {
	switch field {
	case "degree":
		return e.Degree
	case "university":
		return e.University
	case "passingYear":
		return e.PassingYear
	case "grade":
		return e.Grade
	}
	return ""
}

func certificationValue(e types.CertificationEntry, field string) any {
	switch field {
	case "name":
		return e.Name
	case "year":
		return e.Year
	case "achievement":
		return e.Achievement
	}
	return ""
}
