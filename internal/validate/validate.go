// Package validate wraps go-playground/validator with English translations
// and exposes validation failures as a field-keyed error list, so callers
// can fold them into whatever per-field display shape they need.
package validate

import (
	"errors"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var check *validator.Validate

var translator ut.Translator

func init() {
	check = validator.New()

	translator, _ = ut.New(en.New(), en.New()).GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(check, translator)
}

// FieldError is one failed constraint on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is the full set of failed constraints for a value.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	msgs := make([]string, 0, len(fe))
	for _, fieldErr := range fe {
		msgs = append(msgs, fieldErr.Field+": "+fieldErr.Message)
	}
	return strings.Join(msgs, "; ")
}

// Check validates a struct against its validate tags. It returns nil when
// the value is valid, FieldErrors when constraints failed, and the raw
// validator error for anything else.
func Check(val any) error {
	err := check.Struct(val)
	if err == nil {
		return nil
	}

	var verrors validator.ValidationErrors
	if !errors.As(err, &verrors) {
		return err
	}

	fields := make(FieldErrors, 0, len(verrors))
	for _, verr := range verrors {
		fields = append(fields, FieldError{
			Field:   strings.ToLower(verr.Field()),
			Message: verr.Translate(translator),
		})
	}

	return fields
}

// AsFieldErrors extracts the field error list from an error returned by
// Check, reporting whether it was a validation failure.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fields FieldErrors
	if errors.As(err, &fields) {
		return fields, true
	}
	return nil, false
}
