package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// CurieValidation validates that a field is a compact URI of the form
// prefix:localpart (e.g. "nmdc:bsm-11-002vgm56"). Both parts must be
// non-empty and the prefix must not contain whitespace.
func CurieValidation(fl validator.FieldLevel) bool {
	value := fl.Field().String()

	prefix, local, found := strings.Cut(value, ":")
	if !found {
		return false
	}
	if prefix == "" || local == "" {
		return false
	}
	if strings.ContainsAny(prefix, " \t") {
		return false
	}

	return true
}
