package movie

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/oakwood-commons/reel/internal/form"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
	validateErr  error
)

// InvalidError lists the fields of a movie that break the record invariant.
type InvalidError struct {
	Fields []FieldError
}

// FieldError names one broken field and the rule it failed.
type FieldError struct {
	Field string
	Rule  string
}

func (e *InvalidError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", f.Field, f.Rule))
	}
	return "invalid movie: " + strings.Join(parts, ", ")
}

func validatorInstance() (*validator.Validate, error) {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		}); err != nil {
			validateErr = fmt.Errorf("register notblank: %w", err)
			return
		}
		if err := v.RegisterValidation("permissive_url", func(fl validator.FieldLevel) bool {
			trimmed := strings.TrimSpace(fl.Field().String())
			return trimmed == "" || form.URL(trimmed)
		}); err != nil {
			validateErr = fmt.Errorf("register permissive_url: %w", err)
			return
		}
		validate = v
	})
	return validate, validateErr
}

// Validate checks the record invariant. It returns an *InvalidError listing
// every broken field.
func Validate(m Movie) error {
	v, err := validatorInstance()
	if err != nil {
		return err
	}
	err = v.Struct(m)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate movie: %w", err)
	}
	invalid := &InvalidError{}
	for _, fe := range verrs {
		invalid.Fields = append(invalid.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return invalid
}
