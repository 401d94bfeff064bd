package submit

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// profileSchema is the contract the outbound payload must satisfy. A
// violation means a mapping bug, caught before any network call.
const profileSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": [
    "first_name", "sur_name", "email", "phone", "dob", "gender",
    "marital_status", "state", "district", "city", "village", "address",
    "pincode", "is_experienced", "is_fresher", "experiences",
    "education_list", "skills_list", "availability_category",
    "availability_job_category", "availability_state",
    "availability_district", "availability_cities",
    "availability_village", "expected_salary"
  ],
  "properties": {
    "first_name": {"type": "string", "minLength": 1},
    "sur_name": {"type": "string", "minLength": 1},
    "email": {"type": "string", "format": "email"},
    "phone": {"type": "string", "pattern": "^\\+91[6-9][0-9]{9}$"},
    "alternate_mobile": {"type": "string"},
    "dob": {"type": "string", "minLength": 1},
    "gender": {"enum": ["Male", "Female", "Other"]},
    "marital_status": {"enum": ["Single", "Married", "Divorced", "Widowed"]},
    "state": {"type": "string", "minLength": 1},
    "district": {"type": "string", "minLength": 1},
    "city": {"type": "string", "minLength": 1},
    "village": {"type": "string", "minLength": 1},
    "address": {"type": "string", "minLength": 1},
    "pincode": {"type": "string", "pattern": "^[0-9]{6}$"},
    "summary": {"type": "string"},
    "is_experienced": {"type": "boolean"},
    "is_fresher": {"type": "boolean"},
    "experiences": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["industry", "position", "company", "start_date",
                     "current_wages", "current_city", "current_village"],
        "properties": {
          "industry": {"type": "string", "minLength": 1},
          "position": {"type": "string", "minLength": 1},
          "company": {"type": "string", "minLength": 1},
          "notice_period": {"type": "string"},
          "start_date": {"type": "string", "minLength": 1},
          "end_date": {"type": "string"},
          "current_wages": {"type": "string", "minLength": 1},
          "current_city": {"type": "string", "minLength": 1},
          "current_village": {"type": "string", "minLength": 1}
        }
      }
    },
    "education_list": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["degree", "university", "passing_year"],
        "properties": {
          "degree": {"type": "string", "minLength": 1},
          "university": {"type": "string", "minLength": 1},
          "passing_year": {"type": "string", "minLength": 1},
          "grade": {"type": "string"}
        }
      }
    },
    "skills_list": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {"name": {"type": "string", "minLength": 1}}
      }
    },
    "certification_list": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "year": {"type": "string"},
          "achievement": {"type": "string"}
        }
      }
    },
    "availability_category": {"type": "string", "minLength": 1},
    "availability_industry": {"type": "string"},
    "availability_job_category": {"type": "string", "minLength": 1},
    "availability_state": {"type": "string", "minLength": 1},
    "availability_district": {"type": "string", "minLength": 1},
    "availability_cities": {"type": "string", "minLength": 1},
    "availability_village": {"type": "string", "minLength": 1},
    "expected_salary": {"type": "string", "minLength": 1},
    "total_experience": {"type": "string"},
    "joining_date": {"type": "string"},
    "additional_info": {"type": "string"},
    "languages_known": {"type": "array", "items": {"type": "string"}}
  },
  "allOf": [
    {
      "if": {"properties": {"is_experienced": {"const": true}}},
      "then": {"properties": {"experiences": {"minItems": 1}}}
    }
  ]
}`

// SchemaError reports payload fields that violate the outbound
// contract.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	var sb strings.Builder
	sb.WriteString("payload schema check failed:\n")
	for i, v := range e.Violations {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, v))
	}
	return sb.String()
}

// CheckPayload validates an outbound payload against the embedded
// schema.
func CheckPayload(p ProfilePayload) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(profileSchema),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("failed to run payload schema check: %w", err)
	}
	if result.Valid() {
		return nil
	}

	se := &SchemaError{Violations: make([]string, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		se.Violations = append(se.Violations, fmt.Sprintf("%s: %s", field, desc.Description()))
	}
	return se
}
