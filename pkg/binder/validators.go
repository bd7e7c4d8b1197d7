package binder

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var yearRE = regexp.MustCompile(`^\d{1,4}$`)

// yearValidator ensures the value is a publication year of up to four
// digits or the empty string. The empty string is allowed so the validator
// composes with omitempty on optional criteria.
func yearValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return yearRE.MatchString(value)
}
