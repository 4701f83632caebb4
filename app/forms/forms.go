// Package forms binds submitted request values onto typed forms, cleans them
// and validates them, yielding either cleaned values or per-field errors.
package forms

import (
	"errors"
	"fmt"
	"html"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/microcosm-cc/bluemonday"
)

// Result is the outcome of binding a form. An unbound result is an empty
// form ready for display; a bound result carries either cleaned values or
// field errors keyed by form field name.
type Result[T any] struct {
	Data   T                 `json:"data"`
	Errors map[string]string `json:"errors,omitempty"`
	Bound  bool              `json:"bound"`
}

// Valid reports whether the form was submitted and passed validation.
func (r Result[T]) Valid() bool {
	return r.Bound && len(r.Errors) == 0
}

// Error returns the message recorded for field, if any.
func (r Result[T]) Error(field string) string {
	return r.Errors[field]
}

type cleaner interface {
	Clean()
}

var (
	validate = newValidator()
	decoder  = newDecoder()
	strict   = bluemonday.StrictPolicy()
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.SetAliasTag("form")
	d.IgnoreUnknownKeys(true)
	return d
}

// Empty returns an unbound form.
func Empty[T any]() Result[T] {
	var data T
	return Result[T]{Data: data}
}

// Bind decodes values into a T, cleans it and validates it.
func Bind[T any](values url.Values) Result[T] {
	var data T
	errs := map[string]string{}

	if err := decoder.Decode(&data, values); err != nil {
		var multi schema.MultiError
		if errors.As(err, &multi) {
			for field := range multi {
				errs[field] = "Enter a valid value."
			}
		} else {
			errs["__all__"] = err.Error()
		}
	}

	if c, ok := any(&data).(cleaner); ok {
		c.Clean()
	}

	for field, msg := range check(&data) {
		if _, seen := errs[field]; !seen {
			errs[field] = msg
		}
	}
	if len(errs) == 0 {
		errs = nil
	}

	return Result[T]{Data: data, Errors: errs, Bound: true}
}

func check(data any) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"__all__": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).",
			fe.Param(), len([]rune(fmt.Sprint(fe.Value()))))
	default:
		return "Enter a valid value."
	}
}

// cleanLine trims surrounding whitespace.
func cleanLine(s string) string {
	return strings.TrimSpace(s)
}

// cleanText strips markup from free text, leaving plain characters.
func cleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
