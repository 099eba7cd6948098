package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance. It is safe for concurrent use
// and caches struct metadata, so a single instance serves the whole process.
var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError reports which input fields failed validation. It is
// surfaced at the endpoint boundary as HTTP 422 with field-level detail.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, ", ")
}

// checkStruct runs the validator over v and converts field failures into a
// *ValidationError. A non-struct input or other internal validator failure
// is wrapped as ErrInvalidDataProvided.
func checkStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}

	return &ValidationError{Fields: fields}
}
