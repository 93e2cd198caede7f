package foundation

import (
	"fmt"
	"net/url"
	"strings"

	"git.home.luguber.info/inful/rf24docs/internal/foundation/errors"
)

// FieldError is one failed check on a configuration field.
type FieldError struct {
	Field   string
	Code    string
	Message string
}

func (fe FieldError) Error() string {
	if fe.Field != "" {
		return fmt.Sprintf("field '%s': %s", fe.Field, fe.Message)
	}
	return fe.Message
}

func NewValidationError(field, code, message string) FieldError {
	return FieldError{Field: field, Code: code, Message: message}
}

// ValidationResult collects field errors. The zero value is valid.
type ValidationResult struct {
	Valid  bool
	Errors []FieldError
}

func Valid() ValidationResult { return ValidationResult{Valid: true} }

func Invalid(errs ...FieldError) ValidationResult {
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// Combine returns a result holding the errors of both.
func (vr ValidationResult) Combine(other ValidationResult) ValidationResult {
	all := make([]FieldError, 0, len(vr.Errors)+len(other.Errors))
	all = append(all, vr.Errors...)
	all = append(all, other.Errors...)
	return ValidationResult{Valid: vr.Valid && other.Valid && len(all) == 0, Errors: all}
}

// ToError joins the field errors into one validation error, or returns nil.
func (vr ValidationResult) ToError() error {
	if vr.Valid {
		return nil
	}
	messages := make([]string, 0, len(vr.Errors))
	fields := make([]string, 0, len(vr.Errors))
	for _, fe := range vr.Errors {
		messages = append(messages, fe.Error())
		fields = append(fields, fe.Field)
	}
	return errors.ValidationError(strings.Join(messages, "; ")).
		WithContext("fields", strings.Join(fields, ",")).
		Build()
}

// Required fails on blank values.
func Required(field, value string) ValidationResult {
	if strings.TrimSpace(value) == "" {
		return Invalid(NewValidationError(field, "required", "must not be empty"))
	}
	return Valid()
}

// AbsoluteURL fails unless value is an absolute http(s) URL with a host.
func AbsoluteURL(field, value string) ValidationResult {
	u, err := url.Parse(value)
	if err != nil {
		return Invalid(NewValidationError(field, "url", err.Error()))
	}
	if !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return Invalid(NewValidationError(field, "url", fmt.Sprintf("%q is not an absolute http(s) URL", value)))
	}
	return Valid()
}
