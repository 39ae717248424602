package store

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nissyi-gh/highstill/internal/model"
)

var (
	// ErrNotFound is returned when no task has the requested id.
	ErrNotFound = errors.New("task not found")
	// ErrCancelled is returned by Delete when the caller did not confirm.
	ErrCancelled = errors.New("delete cancelled")
	// ErrMissingFields is matched by a ValidationError with empty required fields.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidField is matched by a ValidationError with malformed values.
	ErrInvalidField = errors.New("invalid field value")
)

// MissingFieldsMessage is the notification shown when a submitted task fails validation.
const MissingFieldsMessage = "Please fill in all required fields."

// Fields are the user-supplied values of a task.
type Fields struct {
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description" validate:"required"`
	DueDate     string         `json:"dueDate" validate:"required,datetime=2006-01-02"`
	Priority    model.Priority `json:"priority" validate:"required,oneof=Low Medium High"`
	Location    string         `json:"location" validate:"required"`
}

// FieldsOf returns the user-supplied values of t.
func FieldsOf(t model.Task) Fields {
	return Fields{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		Location:    t.Location,
	}
}

func (f Fields) trimmed() Fields {
	return Fields{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		DueDate:     strings.TrimSpace(f.DueDate),
		Priority:    model.Priority(strings.TrimSpace(string(f.Priority))),
		Location:    strings.TrimSpace(f.Location),
	}
}

// ValidationError lists the fields that blocked a create or update.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid fields: "+strings.Join(e.Invalid, ", "))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() []error {
	var errs []error
	if len(e.Missing) > 0 {
		errs = append(errs, ErrMissingFields)
	}
	if len(e.Invalid) > 0 {
		errs = append(errs, ErrInvalidField)
	}
	return errs
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// check validates f, which must already be trimmed.
func (f Fields) check() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate fields: %w", err)
	}
	ve := &ValidationError{}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			ve.Missing = append(ve.Missing, fe.Field())
		} else {
			ve.Invalid = append(ve.Invalid, fe.Field())
		}
	}
	return ve
}
