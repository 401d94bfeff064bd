package schema

// Rule is the declarative validation contract for a single field. Tag is
// a validator expression evaluated against the field value; Messages
// maps each failed tag to its user-facing message.
//
// Some fields validate differently while typing than at submission (a
// dropdown may only need to be nonempty while typing, but must hold a
// known value at submit). SubmitTag and SubmitMessages override Tag and
// Messages for whole-form validation when set; SubmitTag of "-" skips
// the field at submission entirely.
type Rule struct {
	Tag            string
	Messages       map[string]string
	SubmitTag      string
	SubmitMessages map[string]string
}

// SkipSubmit marks a field-level rule that does not apply to whole-form
// validation.
const SkipSubmit = "-"

const mobileMessage = "Enter a valid Indian mobile number"

var formRules = map[string]Rule{
	"firstName": {Tag: "required", Messages: map[string]string{"required": "First name required"}},
	"surName":   {Tag: "required", Messages: map[string]string{"required": "Last name required"}},
	"email": {Tag: "required,email", Messages: map[string]string{
		"required": "Invalid email",
		"email":    "Invalid email",
	}},
	"phone": {Tag: "required,inmobile", Messages: map[string]string{
		"required": mobileMessage,
		"inmobile": mobileMessage,
	}},
	"alternateMobile": {Tag: "omitempty,inmobile", Messages: map[string]string{
		"inmobile": mobileMessage,
	}},
	"dob": {Tag: "required", Messages: map[string]string{"required": "Date of birth required"}},
	"gender": {
		Tag:      "required",
		Messages: map[string]string{"required": "Gender required"},
		SubmitTag: "required,oneof=Male Female Other",
		SubmitMessages: map[string]string{
			"required": "Select gender",
			"oneof":    "Select gender",
		},
	},
	"maritalStatus": {
		Tag:      "required",
		Messages: map[string]string{"required": "Marital status required"},
		SubmitTag: "required,oneof=Single Married Divorced Widowed",
		SubmitMessages: map[string]string{
			"required": "Select marital status",
			"oneof":    "Select marital status",
		},
	},
	"state":    {Tag: "required", Messages: map[string]string{"required": "State required"}},
	"district": {Tag: "required", Messages: map[string]string{"required": "District required"}},
	"city":     {Tag: "required", Messages: map[string]string{"required": "City required"}},
	"village":  {Tag: "required", Messages: map[string]string{"required": "Village required"}},
	"address":  {Tag: "required", Messages: map[string]string{"required": "Address required"}},
	"pincode": {Tag: "required,len=6,numeric", Messages: map[string]string{
		"required": "PIN CODE must be 6 digits",
		"len":      "PIN CODE must be 6 digits",
		"numeric":  "PIN CODE must contain only numbers",
	}},
	"availabilityCategory":    {Tag: "required", Messages: map[string]string{"required": "Category required"}},
	"availabilityJobCategory": {Tag: "required", Messages: map[string]string{"required": "Job category required"}},
	"availabilityState": {
		Tag:            "required",
		Messages:       map[string]string{"required": "State required"},
		SubmitTag:      "required",
		SubmitMessages: map[string]string{"required": "Availability state required"},
	},
	"availabilityDistrict": {
		Tag:            "required",
		Messages:       map[string]string{"required": "District required"},
		SubmitTag:      "required",
		SubmitMessages: map[string]string{"required": "Availability district required"},
	},
	"availabilityCity": {Tag: "min=1", Messages: map[string]string{
		"min": "Select at least one city",
	}},
	"availabilityVillage": {
		Tag:            "required",
		Messages:       map[string]string{"required": "Village required"},
		SubmitTag:      "required",
		SubmitMessages: map[string]string{"required": "Availability village required"},
	},
	"expectedSalary": {Tag: "required", Messages: map[string]string{"required": "Expected salary required"}},
	"joiningDate": {
		Tag:       "required",
		Messages:  map[string]string{"required": "Joining date required"},
		SubmitTag: SkipSubmit,
	},
	"declarationChecked": {Tag: "eq=true", Messages: map[string]string{
		"eq": "You must certify that the information is true",
	}},

	// Optional fields carry no checks but must resolve as known fields.
	"otherVillage":               {},
	"availabilityOtherVillage":   {},
	"availabilityIndustry":       {},
	"availabilityCustomIndustry": {},
	"summary":                    {},
	"totalExperience":            {},
	"additionalInfo":             {},
	"languagesKnown":             {},
}

var experienceRules = map[string]Rule{
	"industry":            {Tag: "required", Messages: map[string]string{"required": "Industry is required"}},
	"position":            {Tag: "required", Messages: map[string]string{"required": "Position is required"}},
	"company":             {Tag: "required", Messages: map[string]string{"required": "Company name is required"}},
	"currentWages":        {Tag: "required", Messages: map[string]string{"required": "Current wages required"}},
	"currentCity":         {Tag: "required", Messages: map[string]string{"required": "Current city required"}},
	"currentVillage":      {Tag: "required", Messages: map[string]string{"required": "Current village required"}},
	"startDate":           {Tag: "required", Messages: map[string]string{"required": "Start date required"}},
	"endDate":             {},
	"noticePeriod":        {},
	"currentVillageOther": {},
	"customIndustry":      {},
}

var educationRules = map[string]Rule{
	"degree":      {Tag: "required", Messages: map[string]string{"required": "Degree is required"}},
	"university":  {Tag: "required", Messages: map[string]string{"required": "University is required"}},
	"passingYear": {Tag: "required", Messages: map[string]string{"required": "Passing year is required"}},
	"grade":       {},
}

var skillRules = map[string]Rule{
	"name": {Tag: "required", Messages: map[string]string{"required": "Skill name required"}},
}

var certificationRules = map[string]Rule{
	"name":        {},
	"year":        {},
	"achievement": {},
}

var rulesByKind = map[EntityKind]map[string]Rule{
	KindForm:          formRules,
	KindExperience:    experienceRules,
	KindEducation:     educationRules,
	KindSkill:         skillRules,
	KindCertification: certificationRules,
}

// Lookup returns the rule for a field reference. ok is false when the
// field is unknown for that kind; unknown fields are not validated.
func Lookup(ref FieldRef) (Rule, bool) {
	rules, ok := rulesByKind[ref.Kind]
	if !ok {
		return Rule{}, false
	}
	r, ok := rules[ref.Field]
	return r, ok
}

// Fields returns the names of every field known for a kind.
func Fields(kind EntityKind) []string {
	rules := rulesByKind[kind]
	out := make([]string, 0, len(rules))
	for f := range rules {
		out = append(out, f)
	}
	return out
}

// GroupMinMessages holds the error shown when a required repeating group
// is empty at submission, keyed by the group's error-map key.
var GroupMinMessages = map[string]string{
	"experiences":   "Add at least one experience",
	"educationList": "Add at least one education",
	"skillsList":    "Add at least one skill",
}
