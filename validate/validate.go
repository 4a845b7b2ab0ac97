// Package validate holds the request payload validator. It is a thin
// seam over go-playground/validator that reports failures as field
// errors keyed by JSON path, matching what the form engine emits.
package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"

	"github.com/truthtechno/lockerroom-evals/log"
	"github.com/truthtechno/lockerroom-evals/model"
)

var (
	std        *validator.Validate
	translator ut.Translator
)

func init() {
	locale := en.New()
	uni := ut.New(locale, locale)
	translator, _ = uni.GetTranslator("en")

	std = validator.New()
	if err := entrans.RegisterDefaultTranslations(std, translator); err != nil {
		log.Fatal("validate.init.translations:", err)
	}

	// report JSON member names, not Go field names
	std.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	err := std.RegisterTranslation("required", translator,
		func(t ut.Translator) error {
			return t.Add("required", "this field is required", true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T("required", fe.Field())
			return msg
		},
	)
	if err != nil {
		log.Fatal("validate.init.required:", err)
	}
}

// Struct validates v and folds any failures into a ValidationError the
// HTTP layer renders as a 422.
func Struct(v any) error {
	err := std.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make([]model.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, model.FieldError{
			Field: pathOf(fe),
			Error: fe.Translate(translator),
		})
	}
	return model.NewValidationError("invalid request payload", fields...)
}

// pathOf strips the root struct name off the namespace, leaving the
// JSON path into the payload.
func pathOf(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
