package validator

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	once     sync.Once
	validate *govalidator.Validate
	trans    ut.Translator
)

func engine() (*govalidator.Validate, ut.Translator) {
	once.Do(func() {
		validate = govalidator.New(govalidator.WithRequiredStructEnabled())

		// Use JSON tag name for field names in error messages.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(validate, trans)
	})
	return validate, trans
}

// FieldErrors maps JSON field names to human-readable messages.
type FieldErrors map[string]string

// Error renders the messages sorted by field so output is deterministic.
func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, f[k])
	}
	return strings.Join(msgs, "; ")
}

// Struct validates v against its `validate` tags. It returns nil when v is
// valid and FieldErrors otherwise.
func Struct(v any) FieldErrors {
	validate, trans := engine()
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fields := make(FieldErrors)
	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = fe.Translate(trans)
		}
		return fields
	}

	// Not a validation error (e.g. a nil or non-struct value).
	fields["detail"] = err.Error()
	return fields
}
