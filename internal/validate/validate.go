// Package validate checks form input structs and reports every failing
// field as a readable message.
package validate

import (
	"errors"
	"reflect"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/msomdec/storefront/internal/domain"
)

var validate *validator.Validate

var translator ut.Translator

// messages replace the stock English translations for the tags the forms use.
var messages = map[string]string{
	"required": "{0} cannot be blank.",
	"email":    "Please use a valid email.",
	"eqfield":  "Passwords don't match.",
}

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})

	translator, _ = ut.New(en.New(), en.New()).GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}

	for tag, text := range messages {
		register := func(trans ut.Translator) error {
			return trans.Add(tag, text, true)
		}
		translate := func(trans ut.Translator, fe validator.FieldError) string {
			msg, err := trans.T(fe.Tag(), fe.Field())
			if err != nil {
				return fe.Error()
			}
			return msg
		}
		if err := validate.RegisterTranslation(tag, translator, register, translate); err != nil {
			panic(err)
		}
	}
}

// Check validates val. Failing fields are returned together as a
// *domain.ValidationError, in struct field order.
func Check(val any) error {
	err := validate.Struct(val)
	if err == nil {
		return nil
	}

	var verrors validator.ValidationErrors
	if !errors.As(err, &verrors) {
		return err
	}
	if len(verrors) == 0 {
		return nil
	}

	msgs := make([]string, 0, len(verrors))
	for _, fe := range verrors {
		msgs = append(msgs, fe.Translate(translator))
	}
	return &domain.ValidationError{Messages: msgs}
}
