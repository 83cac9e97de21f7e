package dtos

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/justsurfingit/Placement-Tracker/internal/resume"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9\- ]{7,20}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("partialdate", func(fl validator.FieldLevel) bool {
		return resume.ValidPartialDate(fl.Field().String())
	})
	v.RegisterValidation("perioddate", func(fl validator.FieldLevel) bool {
		return resume.ValidPeriodDate(fl.Field().String())
	})
	v.RegisterValidation("fulldate", func(fl validator.FieldLevel) bool {
		return validFullDate(fl.Field().String())
	})
	v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// validFullDate checks YYYY-MM-DD against the real month length.
func validFullDate(s string) bool {
	if len(s) != len("2006-01-02") || !resume.ValidPartialDate(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// Validate returns every failing field keyed by its JSON path, or nil.
func Validate(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fieldPath(fe.Namespace())] = message(fe)
	}
	return out
}

// fieldPath drops the root struct name: "StudentRequest.education[0].end_date" -> "education[0].end_date".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must be a phone number (digits, spaces, dashes, optional +)"
	case "partialdate":
		return "must be YYYY, YYYY-MM or YYYY-MM-DD (month 00 = unknown)"
	case "perioddate":
		return "must be YYYY, YYYY-MM, YYYY-MM-DD or -MM (month 00 = unknown)"
	case "fulldate":
		return "must be a real date in YYYY-MM-DD"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}
