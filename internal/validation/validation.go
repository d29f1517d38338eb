// Package validation checks request bodies against the constraints declared in
// their `validate` struct tags.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Error carries every violated constraint of a request body.
type Error struct {
	Fields  map[string]string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	once     sync.Once
	validate *validator.Validate
)

// messages overrides the generic text for specific field/rule pairs.
var messages = map[string]string{
	"name.min":          "Name must be at least 2 characters",
	"email.email":       "Please enter a valid email address",
	"subject.min":       "Subject must be at least 3 characters",
	"message.min":       "Message must be at least 10 characters",
	"issuer.min":        "Issuer must be at least 2 characters",
	"date.min":          "Date is required",
	"description.min":   "Description must be at least 10 characters",
	"credentialUrl.url": "Please enter a valid URL",
	"headline.min":      "Headline must be at least 5 characters",
	"bio.min":           "Bio must be at least 20 characters",
}

// structMessages overrides messages for one request type, keyed by the
// top-level struct name.
var structMessages = map[string]string{
	"ProfileInput.title.min": "Name must be at least 2 characters",
	"ProfilePatch.title.min": "Name must be at least 2 characters",
}

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// Registration only fails for an empty tag or nil func.
		_ = validate.RegisterValidation("optional_url", optionalURL)
	})
	return validate
}

// optionalURL accepts an empty string or an absolute http(s) URL.
func optionalURL(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Struct validates v and returns a *Error listing every failed rule, or nil.
func Struct(v interface{}) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validation: %w", err)
	}

	verr := &Error{Fields: make(map[string]string, len(fieldErrs))}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := describe(fe)
		verr.Fields[fe.Field()] = msg
		parts = append(parts, msg)
	}
	verr.Message = strings.Join(parts, "; ")
	return verr
}

func describe(fe validator.FieldError) string {
	tag := fe.Tag()
	if tag == "optional_url" {
		tag = "url"
	}
	key := fe.Field() + "." + tag
	owner := strings.SplitN(fe.Namespace(), ".", 2)[0]
	if msg, ok := structMessages[owner+"."+key]; ok {
		return msg
	}
	if msg, ok := messages[key]; ok {
		return msg
	}

	switch tag {
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label(fe.Field()), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label(fe.Field()), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", label(fe.Field()))
	case "url":
		return fmt.Sprintf("%s must be a valid URL", label(fe.Field()))
	default:
		return fmt.Sprintf("%s is invalid", label(fe.Field()))
	}
}

func label(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
