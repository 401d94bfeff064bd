package location

import (
	"github.com/samber/lo"

	"github.com/rojgari/candidate-intake/internal/types"
)

// Group identifies one of the two cascading location selector chains on
// the form.
type Group int

const (
	GroupPersonal Group = iota
	GroupAvailability
)

// Level is a selector's depth in a chain.
type Level int

const (
	LevelState Level = iota
	LevelDistrict
	LevelCity
	LevelVillage
)

// FieldLevel resolves a form field name to its cascade group and level.
// Returns ok=false for fields that are not part of a location chain.
func FieldLevel(field string) (Group, Level, bool) {
	switch field {
	case "state":
		return GroupPersonal, LevelState, true
	case "district":
		return GroupPersonal, LevelDistrict, true
	case "city":
		return GroupPersonal, LevelCity, true
	case "village":
		return GroupPersonal, LevelVillage, true
	case "availabilityState":
		return GroupAvailability, LevelState, true
	case "availabilityDistrict":
		return GroupAvailability, LevelDistrict, true
	case "availabilityCity":
		return GroupAvailability, LevelCity, true
	case "availabilityVillage":
		return GroupAvailability, LevelVillage, true
	}
	return 0, 0, false
}

// Apply writes a new value to a chain level and clears every strict
// descendant in the same group when the value actually changed.
// Reselecting the identical value preserves descendants. The returned
// slice holds the form field names that were cleared.
//
// The availability city level is multi-select; use ApplyCities for it.
func Apply(f *types.ResumeForm, group Group, level Level, value string) []string {
	switch group {
	case GroupPersonal:
		return applyPersonal(f, level, value)
	default:
		return applyAvailability(f, level, value)
	}
}

func applyPersonal(f *types.ResumeForm, level Level, value string) []string {
	switch level {
	case LevelState:
		if f.State == value {
			return nil
		}
		f.State = value
		f.District, f.City, f.Village, f.OtherVillage = "", "", "", ""
		return []string{"district", "city", "village", "otherVillage"}
	case LevelDistrict:
		if f.District == value {
			return nil
		}
		f.District = value
		f.City, f.Village, f.OtherVillage = "", "", ""
		return []string{"city", "village", "otherVillage"}
	case LevelCity:
		if f.City == value {
			return nil
		}
		f.City = value
		f.Village, f.OtherVillage = "", ""
		return []string{"village", "otherVillage"}
	default:
		if f.Village == value {
			return nil
		}
		f.Village = value
		if value != types.OtherSentinel {
			f.OtherVillage = ""
			return []string{"otherVillage"}
		}
		return nil
	}
}

func applyAvailability(f *types.ResumeForm, level Level, value string) []string {
	switch level {
	case LevelState:
		if f.AvailabilityState == value {
			return nil
		}
		f.AvailabilityState = value
		f.AvailabilityDistrict = ""
		f.AvailabilityCity = []string{}
		f.AvailabilityVillage, f.AvailabilityOtherVillage = "", ""
		return []string{"availabilityDistrict", "availabilityCity", "availabilityVillage", "availabilityOtherVillage"}
	case LevelDistrict:
		if f.AvailabilityDistrict == value {
			return nil
		}
		f.AvailabilityDistrict = value
		f.AvailabilityCity = []string{}
		f.AvailabilityVillage, f.AvailabilityOtherVillage = "", ""
		return []string{"availabilityCity", "availabilityVillage", "availabilityOtherVillage"}
	default:
		if f.AvailabilityVillage == value {
			return nil
		}
		f.AvailabilityVillage = value
		if value != types.OtherSentinel {
			f.AvailabilityOtherVillage = ""
			return []string{"availabilityOtherVillage"}
		}
		return nil
	}
}

// ApplyCities replaces the availability multi-select city list. A changed
// selection clears the dependent village fields; an identical selection
// preserves them.
func ApplyCities(f *types.ResumeForm, cities []string) []string {
	if equalStrings(f.AvailabilityCity, cities) {
		return nil
	}
	f.AvailabilityCity = append([]string(nil), cities...)
	f.AvailabilityVillage, f.AvailabilityOtherVillage = "", ""
	return []string{"availabilityVillage", "availabilityOtherVillage"}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Options computes the valid option set for a selector level from the
// index and the current ancestor chain. An incomplete chain, or a nil
// index, yields an empty list.
func Options(idx *Index, f *types.ResumeForm, group Group, level Level) []string {
	if group == GroupPersonal {
		switch level {
		case LevelState:
			return idx.States()
		case LevelDistrict:
			return idx.Districts(f.State)
		case LevelCity:
			return idx.Cities(f.State, f.District)
		default:
			return idx.Villages(f.State, f.District, f.City)
		}
	}

	switch level {
	case LevelState:
		return idx.States()
	case LevelDistrict:
		return idx.Districts(f.AvailabilityState)
	case LevelCity:
		return idx.Cities(f.AvailabilityState, f.AvailabilityDistrict)
	default:
		// Multi-select cities: the village choices are the union across
		// every selected city.
		villages := lo.FlatMap(f.AvailabilityCity, func(city string, _ int) []string {
			return idx.Villages(f.AvailabilityState, f.AvailabilityDistrict, city)
		})
		return lo.Uniq(villages)
	}
}
