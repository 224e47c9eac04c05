package config

import (
	"errors"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/dshills/pagecraft/internal/selection"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report paths by their TOML names.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
			if name == "-" {
				return ""
			}
			return name
		})

		_ = validate.RegisterValidation("selection_kind", func(fl validator.FieldLevel) bool {
			return slices.Contains(knownKinds, fl.Field().String())
		})
	})
	return validate
}

var knownKinds = []string{
	selection.KindText,
	selection.KindMedia,
	selection.KindFormControl,
	selection.KindElement,
	selection.KindSection,
	selection.KindRepeatItem,
	selection.KindRepeatContainer,
	selection.KindDataBound,
}

// Validate checks c and returns a *ValidationError naming every rejected
// setting.
func (c *Config) Validate() error {
	err := validatorInstance().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		// Namespace is "Config.selection.direct_bonus"; drop the root.
		_, path, _ := strings.Cut(fe.Namespace(), ".")
		out.Fields = append(out.Fields, FieldError{
			Path:  path,
			Rule:  fe.Tag(),
			Value: fe.Value(),
		})
	}
	return out
}
