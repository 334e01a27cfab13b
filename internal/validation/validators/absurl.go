package validators

import (
	"net/url"

	"github.com/go-playground/validator/v10"
)

// ValidateAbsURL accepts URLs that carry both a scheme and a host.
func ValidateAbsURL(fl validator.FieldLevel) bool {
	value := fl.Field().String()

	// leave empty values to "required"
	if value == "" {
		return true
	}

	u, err := url.Parse(value)
	if err != nil {
		return false
	}

	return u.Scheme != "" && u.Hostname() != ""
}
