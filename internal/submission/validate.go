package submission

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/toolsubmit/internal/common"
)

// Rules live in struct tags. "validate" holds the limits the processor always
// enforces, "complete" the required fields and list entries.
var (
	structure = newValidator("validate")
	complete  = newValidator("complete")
)

func newValidator(tag string) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName(tag)
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	must(v.RegisterValidation("filled", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}))
	must(v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return IsCategory(fl.Field().String())
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// FieldError describes one failing field. Field uses JSON paths such as
// "pricingTiers[1].features[0]".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every field that failed a check.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return fmt.Sprintf("%s: %s", common.ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return common.ErrValidation
}

func (e *ValidationError) err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// ValidateStructure checks the limits the processor always enforces.
func ValidateStructure(s *Submission) error {
	return check(structure, s)
}

// ValidateRequired checks that every required field and every added list
// entry is filled in. The collector always runs it before submitting.
func ValidateRequired(s *Submission) error {
	return check(complete, s)
}

// Validate runs both levels and merges their field errors.
func Validate(s *Submission) error {
	merged := &ValidationError{}
	for _, fn := range []func(*Submission) error{ValidateStructure, ValidateRequired} {
		err := fn(s)
		if err == nil {
			continue
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		merged.Fields = append(merged.Fields, verr.Fields...)
	}
	return merged.err()
}

func check(v *validator.Validate, s *Submission) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}

	verr := &ValidationError{}
	for _, fe := range ves {
		verr.Fields = append(verr.Fields, FieldError{Field: fieldPath(fe), Message: message(fe)})
	}
	return verr.err()
}

// fieldPath drops the root type from the namespace: "Submission.pros[0].title"
// becomes "pros[0].title".
func fieldPath(fe validator.FieldError) string {
	_, path, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}
	return path
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "filled", "required":
		return "is required"
	case "category":
		return "is not a known category"
	case "gte":
		return "must not be negative"
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at most %s entries", fe.Param())
		}
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	}
	return "is invalid"
}
