// Package validators holds the field rules for login, registration, task and
// profile input. Each schema reports at most one message per field: the
// first rule that fails.
package validators

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	model "taskdesk.com/taskdesk/pkg/models"
)

// FieldErrors maps a field name to its message. An empty map means valid.
type FieldErrors map[string]string

func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// Fields returns the failing field names in sorted order.
func (e FieldErrors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

var messages = map[string]string{
	"username.min":       "Username must be at least 3 characters",
	"username.max":       "Username cannot exceed 50 characters",
	"username.username":  "Username can only contain letters, numbers, hyphens, and underscores",
	"password.min":       "Password must be at least 6 characters",
	"password.max":       "Password cannot exceed 100 characters",
	"password.hasletter": "Password must contain at least one letter",
	"password.hasdigit":  "Password must contain at least one number",
	"email.email":        "Invalid email address",
	"email.max":          "Email cannot exceed 100 characters",
	"title.notblank":     "Title is required",
	"title.max":          "Title cannot exceed 200 characters",
	"description.max":    "Description cannot exceed 1000 characters",
	"priority.enum":      "Invalid priority level",
	"status.enum":        "Invalid status",
	"dueDate.date":       "Invalid date format",
	"category.max":       "Category cannot exceed 100 characters",
	"tags.max":           "Tags cannot exceed 500 characters",
	"firstName.max":      "First name cannot exceed 50 characters",
	"lastName.max":       "Last name cannot exceed 50 characters",
}

type enum interface {
	IsValid() bool
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "hasletter", func(fl validator.FieldLevel) bool {
		return strings.ContainsFunc(fl.Field().String(), func(r rune) bool {
			return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		})
	})
	mustRegister(v, "hasdigit", func(fl validator.FieldLevel) bool {
		return strings.ContainsFunc(fl.Field().String(), func(r rune) bool {
			return r >= '0' && r <= '9'
		})
	})
	mustRegister(v, "date", func(fl validator.FieldLevel) bool {
		_, err := model.ParseDate(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(enum)
		return ok && e.IsValid()
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// check runs the struct rules and collapses the result into FieldErrors.
func check(input any) FieldErrors {
	errs := FieldErrors{}

	err := validate.Struct(input)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["_"] = err.Error()
		return errs
	}

	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := errs[field]; seen {
			continue
		}
		errs[field] = message(field, fe.Tag())
	}
	return errs
}

func message(field, tag string) string {
	if msg, ok := messages[field+"."+tag]; ok {
		return msg
	}
	return "Invalid " + field
}
