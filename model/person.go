package model

import "strings"

// Gender is the inferred gender of a person, based on their first name
type Gender string

const (
	GenderMale    Gender = "Male"
	GenderFemale  Gender = "Female"
	GenderUnknown Gender = "Unknown"
)

// ParseGender converts a stored string into a Gender.
// Anything that is not exactly Male or Female maps to Unknown.
func ParseGender(value string) Gender {
	switch strings.TrimSpace(value) {
	case string(GenderMale):
		return GenderMale
	case string(GenderFemale):
		return GenderFemale
	default:
		return GenderUnknown
	}
}

// PersonRecord represents one person discovered on a page, together with
// the gender that was inferred when the person was first observed.
type PersonRecord struct {
	Name   string `json:"name"`
	Gender Gender `json:"gender"`
}

// LinkList is the ordered sequence of persons discovered when processing
// one source entity. The order is the order links were returned by the
// page source, it is never sorted.
type LinkList []PersonRecord

// NewPersonRecord creates a record with a trimmed name.
func NewPersonRecord(name string, gender Gender) PersonRecord {
	return PersonRecord{
		Name:   strings.TrimSpace(name),
		Gender: gender,
	}
}
