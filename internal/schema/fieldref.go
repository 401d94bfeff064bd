// Package schema holds the declarative validation rules for the intake
// form and the structured addressing of form fields, including rows of
// the repeating groups.
package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// EntityKind identifies which entity a field belongs to: the top-level
// form or one of the repeating groups.
type EntityKind int

const (
	KindForm EntityKind = iota
	KindExperience
	KindEducation
	KindSkill
	KindCertification
)

func (k EntityKind) String() string {
	switch k {
	case KindForm:
		return "form"
	case KindExperience:
		return "experience"
	case KindEducation:
		return "education"
	case KindSkill:
		return "skill"
	case KindCertification:
		return "certification"
	}
	return "unknown"
}

// FieldRef addresses a single field instance. Row is meaningful only for
// the repeating-group kinds.
type FieldRef struct {
	Kind  EntityKind
	Row   int
	Field string
}

// Key renders the reference in the wire format the UI uses for error
// maps and field updates: top-level fields by name, experience and
// education rows as "<field>-<row>", skills as "skill-<field>-<row>" and
// certifications as "cert-<field>-<row>".
func (r FieldRef) Key() string {
	switch r.Kind {
	case KindForm:
		return r.Field
	case KindExperience, KindEducation:
		return fmt.Sprintf("%s-%d", r.Field, r.Row)
	case KindSkill:
		return fmt.Sprintf("skill-%s-%d", r.Field, r.Row)
	case KindCertification:
		return fmt.Sprintf("cert-%s-%d", r.Field, r.Row)
	}
	return r.Field
}

// ParseKey is the inverse of Key. A bare "<field>-<row>" key is resolved
// against the experience rules first, then education, matching how the
// rule tables are consulted. Returns ok=false for keys that address no
// known field.
func ParseKey(key string) (FieldRef, bool) {
	if !strings.Contains(key, "-") {
		return FieldRef{Kind: KindForm, Field: key}, true
	}

	parts := strings.Split(key, "-")
	if len(parts) == 2 {
		row, err := strconv.Atoi(parts[1])
		if err != nil || row < 0 {
			return FieldRef{}, false
		}
		field := parts[0]
		if _, ok := experienceRules[field]; ok {
			return FieldRef{Kind: KindExperience, Row: row, Field: field}, true
		}
		if _, ok := educationRules[field]; ok {
			return FieldRef{Kind: KindEducation, Row: row, Field: field}, true
		}
		return FieldRef{}, false
	}

	if len(parts) == 3 {
		row, err := strconv.Atoi(parts[2])
		if err != nil || row < 0 {
			return FieldRef{}, false
		}
		switch parts[0] {
		case "skill":
			return FieldRef{Kind: KindSkill, Row: row, Field: parts[1]}, true
		case "cert":
			return FieldRef{Kind: KindCertification, Row: row, Field: parts[1]}, true
		}
	}

	return FieldRef{}, false
}
