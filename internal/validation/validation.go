// Package validation wraps a single go-playground/validator instance
// configured for this API's payloads.
//
// validator.New() builds and caches struct metadata, so the handlers share
// one instance instead of creating a fresh validator per request.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/aanand-mishra/campus-api/internal/types"
)

// uniPattern matches a Columbia-style UNI: letters/digits then digits, e.g. "ab1234".
var uniPattern = regexp.MustCompile(`^\w+\d+$`)

var (
	once     sync.Once
	instance *validator.Validate
)

// unwrapper is implemented by types.Optional and types.Nullable.
type unwrapper interface {
	Unwrap() any
}

// Validator returns the shared, fully configured validator.
func Validator() *validator.Validate {
	once.Do(func() {
		instance = newValidator()
	})
	return instance
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names ("postal_code") instead of Go names ("PostalCode").
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	// Validate the value inside PATCH wrappers; absent and null become nil,
	// which "omitempty" skips.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if u, ok := field.Interface().(unwrapper); ok {
			return u.Unwrap()
		}
		return nil
	},
		types.Optional[string]{},
		types.Optional[uuid.UUID]{},
		types.Optional[[]types.PersonAddress]{},
		types.Nullable[string]{},
		types.Nullable[int]{},
	)

	if err := v.RegisterValidation("uni", func(fl validator.FieldLevel) bool {
		return uniPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("validation: register uni: %v", err))
	}

	return v
}

// Struct validates s against its validate:"..." tags.
func Struct(s any) error {
	return Validator().Struct(s)
}

// DecodeError reports a request body or parameter that could not be
// parsed into the expected shape. Handlers treat it like a failed
// validation.
type DecodeError struct {
	Msg string
	Err error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// NewDecodeError builds a DecodeError with an optional cause.
func NewDecodeError(msg string, err error) error {
	return &DecodeError{Msg: msg, Err: err}
}

// IsValidationError reports whether err came from decoding or validating
// client input.
func IsValidationError(err error) bool {
	var decodeErr *DecodeError
	var fieldErrs validator.ValidationErrors
	return errors.As(err, &decodeErr) || errors.As(err, &fieldErrs)
}
