// Package validators adapts go-playground/validator to echo and renders
// failures as per-field, human readable messages keyed by JSON field name.
package validators

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a JSON field name to its validation messages
type FieldErrors map[string][]string

// Error implements the error interface
func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, strings.Join(fe[field], " "))
	}
	return strings.Join(msgs, " ")
}

// Add appends a message for field
func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// CustomValidator implements echo.Validator
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a validator that reports fields by their JSON names
func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	return &CustomValidator{validator: v}
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// Validate checks i against its validate tags. Failures are returned as FieldErrors.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := FieldErrors{}
	for _, fe := range verrs {
		fields.Add(fe.Field(), message(fe.Field(), fe.Tag()))
	}
	return fields
}

// TypeErrors reports field of i as invalid after its JSON value had the wrong
// type. Fields limited to a fixed set of values get the "selected" wording.
func TypeErrors(i interface{}, field string) FieldErrors {
	tag := ""
	t := reflect.TypeOf(i)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t != nil && t.Kind() == reflect.Struct {
		for n := 0; n < t.NumField(); n++ {
			f := t.Field(n)
			if jsonName(f) == field && strings.Contains(f.Tag.Get("validate"), "oneof") {
				tag = "oneof"
				break
			}
		}
	}

	fields := FieldErrors{}
	fields.Add(field, message(field, tag))
	return fields
}

func message(field, tag string) string {
	name := Humanize(field)
	switch tag {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", name)
	default:
		return fmt.Sprintf("The %s field is invalid.", name)
	}
}

// Humanize turns a camelCase field name into lower-case words ("userId" -> "user id")
func Humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte(' ')
			}
			r = unicode.ToLower(r)
		}
		if r == '_' {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}
