package entity

import (
	"database/sql/driver"
	"fmt"
)

// Gender is the closed set of gender values a patient may carry.
// The zero value means "not set".
type Gender string

const (
	GenderUnset  Gender = ""
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// ParseGender converts free text into a Gender. Matching is case-sensitive.
// Empty input maps to GenderUnset; anything else outside the set is rejected.
func ParseGender(s string) (Gender, error) {
	switch g := Gender(s); g {
	case GenderUnset, GenderMale, GenderFemale, GenderOther:
		return g, nil
	default:
		return GenderUnset, ErrInvalidGender
	}
}

// IsValid reports whether g is one of the enumerated values or unset.
func (g Gender) IsValid() bool {
	_, err := ParseGender(string(g))
	return err == nil
}

// IsSet reports whether a gender value has been chosen.
func (g Gender) IsSet() bool {
	return g != GenderUnset
}

func (g Gender) String() string {
	return string(g)
}

// Value stores an unset gender as NULL, implements driver.Valuer
func (g Gender) Value() (driver.Value, error) {
	if !g.IsSet() {
		return nil, nil
	}
	return string(g), nil
}

// Scan reads a nullable gender column, implements sql.Scanner
func (g *Gender) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*g = GenderUnset
	case string:
		*g = Gender(v)
	case []byte:
		*g = Gender(v)
	default:
		return fmt.Errorf("failed to scan gender value: %v", value)
	}
	return nil
}
