package formstate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rojgari/candidate-intake/internal/logging"
	"github.com/rojgari/candidate-intake/internal/schema"
	"github.com/rojgari/candidate-intake/internal/types"
	"github.com/rojgari/candidate-intake/internal/validation"
)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	opts = append([]Option{WithDebounce(0)}, opts...)
	s := New(validation.New(), logging.NewTestLogger(t), opts...)
	t.Cleanup(s.Stop)
	return s
}

func TestInitialDefaults(t *testing.T) {
	s := newTestStore(t)
	f := s.Snapshot()

	assert.Equal(t, types.WorkTypeExperienced, f.WorkType)
	assert.Len(t, f.Experiences, 1)
	assert.Len(t, f.EducationList, 1)
	assert.Len(t, f.SkillsList, 1)
	assert.Len(t, f.CertificationList, 1)
	assert.False(t, f.DeclarationChecked)
	assert.Empty(t, s.Errors())
}

func TestSetFieldMarksTouchedAndValidates(t *testing.T) {
	s := newTestStore(t)

	s.SetField("firstName", "")
	assert.True(t, s.Touched("firstName"))
	assert.Equal(t, "First name required", s.Errors()["firstName"])

	s.SetField("firstName", "Asha")
	assert.NotContains(t, s.Errors(), "firstName")
}

func TestUntouchedFieldStaysSilent(t *testing.T) {
	s := newTestStore(t)

	s.SetField("firstName", "")
	errs := s.Errors()
	assert.Contains(t, errs, "firstName")
	assert.NotContains(t, errs, "surName")
	assert.NotContains(t, errs, "email")
}

func TestSubmitAttemptLiftsTouchedGate(t *testing.T) {
	s := newTestStore(t)
	s.MarkSubmitAttempt()

	// Not touched before, but failing values now surface.
	res := validation.New().ValidateForm(s.Snapshot())
	s.SetErrors(res.Errors)
	assert.Contains(t, s.Errors(), "firstName")
}

func TestCascadeClearsDescendantErrors(t *testing.T) {
	s := newTestStore(t)
	s.SetField("state", "Maharashtra")
	s.SetField("district", "Pune")
	s.SetField("city", "Haveli")
	s.SetField("village", "Wagholi")

	// Clear the district by selecting a new state; descendants reset and
	// their errors/touched state drop.
	s.SetField("district", "")
	assert.Contains(t, s.Errors(), "district")

	s.SetField("state", "Gujarat")
	f := s.Snapshot()
	assert.Empty(t, f.District)
	assert.Empty(t, f.Village)
	assert.NotContains(t, s.Errors(), "district")
	assert.False(t, s.Touched("village"))
}

func TestNumericFieldsStripNonDigits(t *testing.T) {
	s := newTestStore(t)

	s.SetField("expectedSalary", "₹25,000")
	assert.Equal(t, "25000", s.Snapshot().ExpectedSalary)

	s.SetEntryField(schema.KindEducation, 0, "passingYear", "2016 AD")
	assert.Equal(t, "2016", s.Snapshot().EducationList[0].PassingYear)

	s.SetEntryField(schema.KindExperience, 0, "currentWages", "18,000/-")
	assert.Equal(t, "18000", s.Snapshot().Experiences[0].CurrentWages)
}

func TestSetEntryFieldValidatesRow(t *testing.T) {
	s := newTestStore(t)

	s.SetEntryField(schema.KindExperience, 0, "position", "")
	assert.Equal(t, "Position is required", s.Errors()["position-0"])

	s.SetEntryField(schema.KindExperience, 0, "position", "Operator")
	assert.NotContains(t, s.Errors(), "position-0")

	s.SetEntryField(schema.KindSkill, 0, "name", "")
	assert.Equal(t, "Skill name required", s.Errors()["skill-name-0"])
}

func TestSetEntryFieldOutOfRangeIgnored(t *testing.T) {
	s := newTestStore(t)
	s.SetEntryField(schema.KindEducation, 5, "degree", "B.Com")
	assert.Len(t, s.Snapshot().EducationList, 1)
	assert.Empty(t, s.Snapshot().EducationList[0].Degree)
}

func TestExperienceDateOrdering(t *testing.T) {
	s := newTestStore(t)

	s.SetEntryField(schema.KindExperience, 0, "endDate", "2020-01-01")
	s.SetEntryField(schema.KindExperience, 0, "startDate", "2021-06-01")
	assert.Equal(t, "End date cannot be before start date", s.Errors()["endDate-0"])

	s.SetEntryField(schema.KindExperience, 0, "endDate", "2022-01-01")
	assert.NotContains(t, s.Errors(), "endDate-0")
}

func TestAddRemoveEntry(t *testing.T) {
	s := newTestStore(t)

	s.AddEntry(schema.KindEducation)
	assert.Len(t, s.Snapshot().EducationList, 2)

	s.SetEntryField(schema.KindEducation, 1, "degree", "")
	assert.Contains(t, s.Errors(), "degree-1")

	s.RemoveEntry(schema.KindEducation, 1)
	assert.Len(t, s.Snapshot().EducationList, 1)
	assert.NotContains(t, s.Errors(), "degree-1")
}

func TestRemoveEntryKeepsLastRow(t *testing.T) {
	s := newTestStore(t)
	s.RemoveEntry(schema.KindSkill, 0)
	assert.Len(t, s.Snapshot().SkillsList, 1)
}

func TestSetWorkTypeReinitializesExperiences(t *testing.T) {
	s := newTestStore(t)
	s.AddEntry(schema.KindExperience)
	s.SetEntryField(schema.KindExperience, 0, "position", "")
	require.Contains(t, s.Errors(), "position-0")

	s.SetWorkType(types.WorkTypeFresher)
	f := s.Snapshot()
	assert.Equal(t, types.WorkTypeFresher, f.WorkType)
	assert.Len(t, f.Experiences, 1)
	assert.True(t, f.Experiences[0].IsBlank())
	assert.NotContains(t, s.Errors(), "position-0")

	// Reselecting the current value changes nothing.
	s.SetEntryField(schema.KindExperience, 0, "company", "Acme")
	s.SetWorkType(types.WorkTypeFresher)
	assert.Equal(t, "Acme", s.Snapshot().Experiences[0].Company)
}

func TestCurrentVillageSentinelPairing(t *testing.T) {
	s := newTestStore(t)
	s.SetEntryField(schema.KindExperience, 0, "currentVillage", types.OtherSentinel)
	s.SetEntryField(schema.KindExperience, 0, "currentVillageOther", "Kesnand")

	s.SetEntryField(schema.KindExperience, 0, "currentVillage", "Wagholi")
	assert.Empty(t, s.Snapshot().Experiences[0].CurrentVillageOther)
}

func TestDebounceLastWriteWins(t *testing.T) {
	s := New(validation.New(), logging.NewTestLogger(t), WithDebounce(20*time.Millisecond))
	t.Cleanup(s.Stop)

	s.SetField("email", "bad")
	s.SetField("email", "asha@example.com")

	assert.Eventually(t, func() bool {
		_, present := s.Errors()["email"]
		return !present && s.Snapshot().Email == "asha@example.com"
	}, time.Second, 5*time.Millisecond)

	s.SetField("email", "worse")
	assert.Eventually(t, func() bool {
		return s.Errors()["email"] == "Invalid email"
	}, time.Second, 5*time.Millisecond)
}

func TestReset(t *testing.T) {
	s := newTestStore(t)
	s.SetField("firstName", "Asha")
	s.SetField("declarationChecked", true)
	s.StagePhoto("me.jpg", "image/jpeg", []byte{0xff, 0xd8})
	s.MarkSubmitAttempt()

	s.Reset()
	f := s.Snapshot()
	assert.Empty(t, f.FirstName)
	assert.False(t, f.DeclarationChecked)
	assert.Empty(t, s.Errors())
	assert.False(t, s.Touched("firstName"))
	assert.Nil(t, s.Photo())
}

func TestLoadReplacesForm(t *testing.T) {
	s := newTestStore(t)
	f := types.NewResumeForm()
	f.FirstName = "Ravi"
	s.Load(f)
	assert.Equal(t, "Ravi", s.Snapshot().FirstName)
}
