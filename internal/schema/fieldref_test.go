package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldRefKey(t *testing.T) {
	tests := []struct {
		name string
		ref  FieldRef
		want string
	}{
		{"form field", FieldRef{Kind: KindForm, Field: "firstName"}, "firstName"},
		{"experience row", FieldRef{Kind: KindExperience, Row: 0, Field: "position"}, "position-0"},
		{"education row", FieldRef{Kind: KindEducation, Row: 2, Field: "degree"}, "degree-2"},
		{"skill row", FieldRef{Kind: KindSkill, Row: 1, Field: "name"}, "skill-name-1"},
		{"certification row", FieldRef{Kind: KindCertification, Row: 3, Field: "year"}, "cert-year-3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ref.Key())
		})
	}
}

func TestParseKeyRoundTrip(t *testing.T) {
	refs := []FieldRef{
		{Kind: KindForm, Field: "email"},
		{Kind: KindExperience, Row: 1, Field: "startDate"},
		{Kind: KindEducation, Row: 0, Field: "passingYear"},
		{Kind: KindSkill, Row: 4, Field: "name"},
		{Kind: KindCertification, Row: 0, Field: "achievement"},
	}
	for _, ref := range refs {
		got, ok := ParseKey(ref.Key())
		require.True(t, ok, ref.Key())
		assert.Equal(t, ref, got)
	}
}

func TestParseKeyUnknown(t *testing.T) {
	_, ok := ParseKey("nosuchfield-0")
	assert.False(t, ok)

	_, ok = ParseKey("position-x")
	assert.False(t, ok)

	_, ok = ParseKey("widget-name-2")
	assert.False(t, ok)
}

func TestLookup(t *testing.T) {
	r, ok := Lookup(FieldRef{Kind: KindForm, Field: "firstName"})
	require.True(t, ok)
	assert.Equal(t, "required", r.Tag)
	assert.Equal(t, "First name required", r.Messages["required"])

	r, ok = Lookup(FieldRef{Kind: KindExperience, Field: "endDate"})
	require.True(t, ok)
	assert.Empty(t, r.Tag)

	_, ok = Lookup(FieldRef{Kind: KindForm, Field: "nosuchfield"})
	assert.False(t, ok)
}

func TestSubmitOverrides(t *testing.T) {
	r, ok := Lookup(FieldRef{Kind: KindForm, Field: "gender"})
	require.True(t, ok)
	assert.Equal(t, "Select gender", r.SubmitMessages["oneof"])

	r, ok = Lookup(FieldRef{Kind: KindForm, Field: "joiningDate"})
	require.True(t, ok)
	assert.Equal(t, SkipSubmit, r.SubmitTag)
}
