package submit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rojgari/candidate-intake/internal/types"
)

func submittableForm() types.ResumeForm {
	f := types.NewResumeForm()
	f.FirstName = "Asha"
	f.SurName = "Patil"
	f.Email = "asha.patil@example.com"
	f.Phone = "+919876543210"
	f.DOB = "1995-04-12"
	f.Gender = "Female"
	f.MaritalStatus = "Single"
	f.State = "Maharashtra"
	f.District = "Pune"
	f.City = "Haveli"
	f.Village = "Wagholi"
	f.Address = "12 Main Road"
	f.Pincode = "412207"
	f.WorkType = types.WorkTypeExperienced
	f.Experiences = []types.ExperienceEntry{{
		Industry:       "Manufacturing",
		Position:       "Operator",
		Company:        "Acme Industries",
		StartDate:      "2019-01-01",
		CurrentWages:   "18000",
		CurrentCity:    "Haveli",
		CurrentVillage: "Wagholi",
	}}
	f.EducationList = []types.EducationEntry{{
		Degree:      "B.Com",
		University:  "Pune University",
		PassingYear: "2016",
	}}
	f.SkillsList = []types.SkillEntry{{Name: "Welding"}}
	f.AvailabilityCategory = "Full Time"
	f.AvailabilityJobCategory = "Machine Operator"
	f.AvailabilityState = "Maharashtra"
	f.AvailabilityDistrict = "Pune"
	f.AvailabilityCity = []string{"Haveli", "Mulshi"}
	f.AvailabilityVillage = "Wagholi"
	f.ExpectedSalary = "25000"
	f.DeclarationChecked = true
	return f
}

func TestBuildPayloadBasics(t *testing.T) {
	p := BuildPayload(submittableForm())

	assert.Equal(t, "Asha", p.FirstName)
	assert.True(t, p.IsExperienced)
	assert.False(t, p.IsFresher)
	assert.Equal(t, "Haveli,Mulshi", p.AvailabilityCities)
	require.Len(t, p.Experiences, 1)
	assert.Equal(t, "Operator", p.Experiences[0].Position)
}

func TestBuildPayloadFresherDropsExperiences(t *testing.T) {
	f := submittableForm()
	f.WorkType = types.WorkTypeFresher

	p := BuildPayload(f)
	assert.False(t, p.IsExperienced)
	assert.True(t, p.IsFresher)
	assert.Empty(t, p.Experiences)
	assert.NotNil(t, p.Experiences)
}

func TestBuildPayloadSentinelSubstitution(t *testing.T) {
	f := submittableForm()
	f.Village = types.OtherSentinel
	f.OtherVillage = " Kesnand "
	f.AvailabilityVillage = types.OtherSentinel
	f.AvailabilityOtherVillage = "Paud"
	f.Experiences[0].Industry = types.OtherSentinel
	f.Experiences[0].CustomIndustry = "Handloom"
	f.Experiences[0].CurrentVillage = types.OtherSentinel
	f.Experiences[0].CurrentVillageOther = "Lohegaon"

	p := BuildPayload(f)
	assert.Equal(t, "Kesnand", p.Village)
	assert.Equal(t, "Paud", p.AvailabilityVillage)
	assert.Equal(t, "Handloom", p.Experiences[0].Industry)
	assert.Equal(t, "Lohegaon", p.Experiences[0].CurrentVillage)
}

func TestBuildPayloadFiltersBlankRows(t *testing.T) {
	f := submittableForm()
	f.Experiences = append(f.Experiences, types.ExperienceEntry{})
	f.EducationList = append(f.EducationList, types.EducationEntry{})
	f.SkillsList = append(f.SkillsList, types.SkillEntry{})
	f.CertificationList = []types.CertificationEntry{{}, {Name: "ITI Fitter"}}

	p := BuildPayload(f)
	assert.Len(t, p.Experiences, 1)
	assert.Len(t, p.Education, 1)
	assert.Len(t, p.Skills, 1)
	require.Len(t, p.Certifications, 1)
	assert.Equal(t, "ITI Fitter", p.Certifications[0].Name)
}

func TestCheckPayloadValid(t *testing.T) {
	assert.NoError(t, CheckPayload(BuildPayload(submittableForm())))
}

func TestCheckPayloadCatchesMappingBugs(t *testing.T) {
	p := BuildPayload(submittableForm())
	p.Phone = "9876543210" // not canonicalized

	err := CheckPayload(p)
	require.Error(t, err)
	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.NotEmpty(t, se.Violations)
}

func TestCheckPayloadExperiencedNeedsRows(t *testing.T) {
	f := submittableForm()
	p := BuildPayload(f)
	p.Experiences = []ExperiencePayload{}

	assert.Error(t, CheckPayload(p))
}
