// Package types provides type definitions for structured data used throughout the candidate-intake system.
package types

// WorkType discriminates the two resume payload shapes.
type WorkType string

const (
	WorkTypeExperienced WorkType = "experienced"
	WorkTypeFresher     WorkType = "fresher"
)

// Valid reports whether the work type is one of the two known values.
func (w WorkType) Valid() bool {
	return w == WorkTypeExperienced || w == WorkTypeFresher
}

// OtherSentinel is the reserved dropdown value signaling that the real
// value is supplied via a paired free-text field.
const OtherSentinel = "Other (Type Manually)"

// ExperienceEntry is one row of the work-experience repeating group.
// Used only when WorkType is "experienced".
type ExperienceEntry struct {
	Industry            string `json:"industry" validate:"required"`
	CustomIndustry      string `json:"customIndustry,omitempty"`
	Position            string `json:"position" validate:"required"`
	Company             string `json:"company" validate:"required"`
	NoticePeriod        string `json:"noticePeriod,omitempty"`
	StartDate           string `json:"startDate" validate:"required"`
	EndDate             string `json:"endDate,omitempty"`
	CurrentWages        string `json:"currentWages" validate:"required"`
	CurrentCity         string `json:"currentCity" validate:"required"`
	CurrentVillage      string `json:"currentVillage" validate:"required"`
	CurrentVillageOther string `json:"currentVillageOther,omitempty"`
}

// IsBlank reports whether every field of the entry is empty.
func (e ExperienceEntry) IsBlank() bool {
	return e.Industry == "" && e.CustomIndustry == "" && e.Position == "" &&
		e.Company == "" && e.NoticePeriod == "" && e.StartDate == "" &&
		e.EndDate == "" && e.CurrentWages == "" && e.CurrentCity == "" &&
		e.CurrentVillage == "" && e.CurrentVillageOther == ""
}

// EducationEntry is one row of the education repeating group. At least one
// entry is required regardless of work type.
type EducationEntry struct {
	Degree      string `json:"degree" validate:"required"`
	University  string `json:"university" validate:"required"`
	PassingYear string `json:"passingYear" validate:"required"`
	Grade       string `json:"grade,omitempty"`
}

// IsBlank reports whether every field of the entry is empty.
func (e EducationEntry) IsBlank() bool {
	return e.Degree == "" && e.University == "" && e.PassingYear == "" && e.Grade == ""
}

// SkillEntry is one row of the skills repeating group (name-only shape).
type SkillEntry struct {
	Name string `json:"name" validate:"required"`
}

// IsBlank reports whether the entry is empty.
func (e SkillEntry) IsBlank() bool { return e.Name == "" }

// CertificationEntry is one row of the optional certifications group.
// All fields are optional; entirely blank rows are dropped at submission.
type CertificationEntry struct {
	Name        string `json:"name,omitempty"`
	Year        string `json:"year,omitempty"`
	Achievement string `json:"achievement,omitempty"`
}

// IsBlank reports whether every field of the entry is empty.
func (e CertificationEntry) IsBlank() bool {
	return e.Name == "" && e.Year == "" && e.Achievement == ""
}

// ResumeForm is the full in-progress submission: scalar identity and
// contact fields, two cascading location groups (personal and
// availability), the workType discriminator, and the repeating groups.
//
// The declarative tags cover shared rules; the experienced/fresher
// divergence (experiences required vs. defaulted empty) lives in the
// validation engine, which is the one place the contract differs by
// discriminator.
type ResumeForm struct {
	FirstName       string `json:"firstName" validate:"required"`
	SurName         string `json:"surName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,inmobile"`
	AlternateMobile string `json:"alternateMobile,omitempty" validate:"omitempty,inmobile"`
	DOB             string `json:"dob" validate:"required"`
	Gender          string `json:"gender" validate:"required,oneof=Male Female Other"`
	MaritalStatus   string `json:"maritalStatus" validate:"required,oneof=Single Married Divorced Widowed"`

	// Personal address (cascading group)
	State        string `json:"state" validate:"required"`
	District     string `json:"district" validate:"required"`
	City         string `json:"city" validate:"required"`
	Village      string `json:"village" validate:"required"`
	OtherVillage string `json:"otherVillage,omitempty"`
	Address      string `json:"address" validate:"required"`
	Pincode      string `json:"pincode" validate:"required,pincode"`

	Summary string `json:"summary,omitempty"`

	WorkType          WorkType             `json:"workType"`
	Experiences       []ExperienceEntry    `json:"experiences"`
	EducationList     []EducationEntry     `json:"educationList" validate:"min=1"`
	SkillsList        []SkillEntry         `json:"skillsList" validate:"min=1"`
	CertificationList []CertificationEntry `json:"certificationList,omitempty"`

	// Availability / preferred location (cascading group)
	AvailabilityCategory       string   `json:"availabilityCategory" validate:"required"`
	AvailabilityIndustry       string   `json:"availabilityIndustry,omitempty"`
	AvailabilityCustomIndustry string   `json:"availabilityCustomIndustry,omitempty"`
	AvailabilityJobCategory    string   `json:"availabilityJobCategory" validate:"required"`
	AvailabilityState          string   `json:"availabilityState" validate:"required"`
	AvailabilityDistrict       string   `json:"availabilityDistrict" validate:"required"`
	AvailabilityCity           []string `json:"availabilityCity" validate:"min=1"`
	AvailabilityVillage        string   `json:"availabilityVillage" validate:"required"`
	AvailabilityOtherVillage   string   `json:"availabilityOtherVillage,omitempty"`

	ExpectedSalary  string   `json:"expectedSalary" validate:"required"`
	TotalExperience string   `json:"totalExperience,omitempty"`
	JoiningDate     string   `json:"joiningDate,omitempty"`
	AdditionalInfo  string   `json:"additionalInfo,omitempty"`
	LanguagesKnown  []string `json:"languagesKnown,omitempty"`

	DeclarationChecked bool `json:"declarationChecked"`
}

// NewResumeForm returns the all-empty initial form: every scalar empty,
// each repeating list holding exactly one blank entry, declaration unset.
func NewResumeForm() ResumeForm {
	return ResumeForm{
		WorkType:          WorkTypeExperienced,
		Experiences:       []ExperienceEntry{{}},
		EducationList:     []EducationEntry{{}},
		SkillsList:        []SkillEntry{{}},
		CertificationList: []CertificationEntry{{}},
		AvailabilityCity:  []string{},
		LanguagesKnown:    []string{},
	}
}

// Clone returns a deep copy of the form, safe to mutate independently.
func (f ResumeForm) Clone() ResumeForm {
	out := f
	out.Experiences = append([]ExperienceEntry(nil), f.Experiences...)
	out.EducationList = append([]EducationEntry(nil), f.EducationList...)
	out.SkillsList = append([]SkillEntry(nil), f.SkillsList...)
	out.CertificationList = append([]CertificationEntry(nil), f.CertificationList...)
	out.AvailabilityCity = append([]string(nil), f.AvailabilityCity...)
	out.LanguagesKnown = append([]string(nil), f.LanguagesKnown...)
	return out
}
