package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sergeii/toolbelt/internal/core/entities/probe"
	"github.com/sergeii/toolbelt/internal/validation/validators"
)

func New() (*validator.Validate, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their user facing names, e.g. "endpoint" instead of "Endpoint"
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("name"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	if err := validate.RegisterValidation("absurl", validators.ValidateAbsURL); err != nil {
		return nil, err
	}
	return validate, nil
}

// Explain turns the first validation failure into a message fit for the caller.
func Explain(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Please provide a valid %s parameter.", fe.Field())
	case "gt", "gte", "min":
		return fmt.Sprintf("Please provide a valid %s parameter. It must be a positive integer.", fe.Field())
	case "ip", "ipv4", "ipv6":
		return fmt.Sprintf("Please provide a valid IP address as the %s parameter.", fe.Field())
	case "absurl", "url":
		return fmt.Sprintf("Please provide a valid URL as the %s parameter.", fe.Field())
	case "hostname", "fqdn", "hostname_rfc1123":
		return fmt.Sprintf("Please provide a valid domain name as the %s parameter.", fe.Field())
	default:
		return fmt.Sprintf("Invalid %s parameter.", fe.Field())
	}
}

// RequestError wraps a validation failure into a classified probe error.
func RequestError(err error) *probe.Error {
	return probe.NewError(probe.RequestError, Explain(err), err)
}
