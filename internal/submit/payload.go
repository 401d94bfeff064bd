// Package submit maps a validated form snapshot to the backend payload
// shape and dispatches profile creation and the photo upload follow-up.
package submit

import (
	"strings"

	"github.com/samber/lo"

	"github.com/rojgari/candidate-intake/internal/types"
)

// ExperiencePayload is one work-experience row in the backend shape.
type ExperiencePayload struct {
	Industry       string `json:"industry"`
	Position       string `json:"position"`
	Company        string `json:"company"`
	NoticePeriod   string `json:"notice_period,omitempty"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date,omitempty"`
	CurrentWages   string `json:"current_wages"`
	CurrentCity    string `json:"current_city"`
	CurrentVillage string `json:"current_village"`
}

// EducationPayload is one education row in the backend shape.
type EducationPayload struct {
	Degree      string `json:"degree"`
	University  string `json:"university"`
	PassingYear string `json:"passing_year"`
	Grade       string `json:"grade,omitempty"`
}

// SkillPayload is one skill row in the backend shape.
type SkillPayload struct {
	Name string `json:"name"`
}

// CertificationPayload is one certification row in the backend shape.
type CertificationPayload struct {
	Name        string `json:"name,omitempty"`
	Year        string `json:"year,omitempty"`
	Achievement string `json:"achievement,omitempty"`
}

// ProfilePayload is the candidate-profile creation body. The work-type
// discriminator is flattened to the two booleans the backend expects,
// and the multi-select availability cities are comma-joined.
type ProfilePayload struct {
	FirstName       string `json:"first_name"`
	SurName         string `json:"sur_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	AlternateMobile string `json:"alternate_mobile,omitempty"`
	DOB             string `json:"dob"`
	Gender          string `json:"gender"`
	MaritalStatus   string `json:"marital_status"`

	State    string `json:"state"`
	District string `json:"district"`
	City     string `json:"city"`
	Village  string `json:"village"`
	Address  string `json:"address"`
	Pincode  string `json:"pincode"`

	Summary string `json:"summary,omitempty"`

	IsExperienced bool `json:"is_experienced"`
	IsFresher     bool `json:"is_fresher"`

	Experiences    []ExperiencePayload    `json:"experiences"`
	Education      []EducationPayload     `json:"education_list"`
	Skills         []SkillPayload         `json:"skills_list"`
	Certifications []CertificationPayload `json:"certification_list,omitempty"`

	AvailabilityCategory    string `json:"availability_category"`
	AvailabilityIndustry    string `json:"availability_industry,omitempty"`
	AvailabilityJobCategory string `json:"availability_job_category"`
	AvailabilityState       string `json:"availability_state"`
	AvailabilityDistrict    string `json:"availability_district"`
	AvailabilityCities      string `json:"availability_cities"`
	AvailabilityVillage     string `json:"availability_village"`

	ExpectedSalary  string   `json:"expected_salary"`
	TotalExperience string   `json:"total_experience,omitempty"`
	JoiningDate     string   `json:"joining_date,omitempty"`
	AdditionalInfo  string   `json:"additional_info,omitempty"`
	LanguagesKnown  []string `json:"languages_known,omitempty"`
}

// resolveOther substitutes the free-text override for the manual-entry
// sentinel.
func resolveOther(selection, override string) string {
	if selection == types.OtherSentinel {
		return strings.TrimSpace(override)
	}
	return selection
}

// BuildPayload maps a normalized, validated snapshot into the backend
// shape. Entirely blank repeating entries are dropped; a fresher
// submission always carries an empty experiences list.
func BuildPayload(f types.ResumeForm) ProfilePayload {
	experiences := []ExperiencePayload{}
	if f.WorkType == types.WorkTypeExperienced {
		kept := lo.Filter(f.Experiences, func(e types.ExperienceEntry, _ int) bool {
			return !e.IsBlank()
		})
		experiences = lo.Map(kept, func(e types.ExperienceEntry, _ int) ExperiencePayload {
			return ExperiencePayload{
				Industry:       resolveOther(e.Industry, e.CustomIndustry),
				Position:       e.Position,
				Company:        e.Company,
				NoticePeriod:   e.NoticePeriod,
				StartDate:      e.StartDate,
				EndDate:        e.EndDate,
				CurrentWages:   e.CurrentWages,
				CurrentCity:    e.CurrentCity,
				CurrentVillage: resolveOther(e.CurrentVillage, e.CurrentVillageOther),
			}
		})
	}

	education := lo.FilterMap(f.EducationList, func(e types.EducationEntry, _ int) (EducationPayload, bool) {
		if e.IsBlank() {
			return EducationPayload{}, false
		}
		return EducationPayload{
			Degree:      e.Degree,
			University:  e.University,
			PassingYear: e.PassingYear,
			Grade:       e.Grade,
		}, true
	})

	skills := lo.FilterMap(f.SkillsList, func(e types.SkillEntry, _ int) (SkillPayload, bool) {
		if e.IsBlank() {
			return SkillPayload{}, false
		}
		return SkillPayload{Name: e.Name}, true
	})

	certifications := lo.FilterMap(f.CertificationList, func(e types.CertificationEntry, _ int) (CertificationPayload, bool) {
		if e.IsBlank() {
			return CertificationPayload{}, false
		}
		return CertificationPayload{Name: e.Name, Year: e.Year, Achievement: e.Achievement}, true
	})

	return ProfilePayload{
		FirstName:       f.FirstName,
		SurName:         f.SurName,
		Email:           f.Email,
		Phone:           f.Phone,
		AlternateMobile: f.AlternateMobile,
		DOB:             f.DOB,
		Gender:          f.Gender,
		MaritalStatus:   f.MaritalStatus,

		State:    f.State,
		District: f.District,
		City:     f.City,
		Village:  resolveOther(f.Village, f.OtherVillage),
		Address:  f.Address,
		Pincode:  f.Pincode,

		Summary: f.Summary,

		IsExperienced: f.WorkType == types.WorkTypeExperienced,
		IsFresher:     f.WorkType == types.WorkTypeFresher,

		Experiences:    experiences,
		Education:      education,
		Skills:         skills,
		Certifications: certifications,

		AvailabilityCategory:    f.AvailabilityCategory,
		AvailabilityIndustry:    resolveOther(f.AvailabilityIndustry, f.AvailabilityCustomIndustry),
		AvailabilityJobCategory: f.AvailabilityJobCategory,
		AvailabilityState:       f.AvailabilityState,
		AvailabilityDistrict:    f.AvailabilityDistrict,
		AvailabilityCities:      strings.Join(f.AvailabilityCity, ","),
		AvailabilityVillage:     resolveOther(f.AvailabilityVillage, f.AvailabilityOtherVillage),

		ExpectedSalary:  f.ExpectedSalary,
		TotalExperience: f.TotalExperience,
		JoiningDate:     f.JoiningDate,
		AdditionalInfo:  f.AdditionalInfo,
		LanguagesKnown:  f.LanguagesKnown,
	}
}
