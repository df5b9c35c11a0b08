package quote

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"porterquote/lib/textutil"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "phone10", func(fl validator.FieldLevel) bool {
		return isTenDigits(fl.Field().String())
	})
	mustRegister(v, "city", func(fl validator.FieldLevel) bool {
		_, ok := LookupCity(fl.Field().String())
		return ok
	})
	mustRegister(v, "service_type", func(fl validator.FieldLevel) bool {
		return ServiceType(fl.Field().String()).Valid()
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// no separators, no country code, ASCII digits only
func isTenDigits(phone string) bool {
	if len(phone) != 10 {
		return false
	}
	for i := 0; i < len(phone); i++ {
		if phone[i] < '0' || phone[i] > '9' {
			return false
		}
	}
	return true
}

func serviceTypeList() string {
	names := make([]string, len(serviceTypes))
	for i, s := range serviceTypes {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "phone10":
		return "phone must be exactly 10 digits"
	case "city":
		return "city not supported"
	case "service_type":
		return fmt.Sprintf("service_type must be one of {%s}", serviceTypeList())
	case "notblank":
		return fmt.Sprintf("%s must not be empty", fe.Field())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

func citySuggestion(city string) string {
	closest, ok := textutil.Closest(city, supportedCities, 0.85)
	if ok {
		return fmt.Sprintf("verify city spelling, did you mean %s?", closest)
	}
	return fmt.Sprintf("verify city spelling, supported cities are %s", strings.Join(supportedCities, ", "))
}

func fieldSuggestion(fe validator.FieldError, req Request) (string, bool) {
	switch fe.Tag() {
	case "phone10":
		return "enter the 10 digit mobile number without spaces or country code", true
	case "city":
		return citySuggestion(req.City), true
	case "service_type":
		return fmt.Sprintf("use one of %s", serviceTypeList()), true
	}
	return "", false
}

// Validate checks every field of req and returns it with the city in its
// canonical spelling. It never touches a browser.
func Validate(req Request) (Request, error) {
	err := validate.Struct(req)
	if err == nil {
		req.City, _ = LookupCity(req.City)
		return req, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return req, newError(CategoryValidation, "", err, "invalid request")
	}

	messages := make([]string, len(fieldErrs))
	suggestion := metadataByCategory[CategoryValidation].suggestion
	for i, fe := range fieldErrs {
		messages[i] = validationMessage(fe)
	}
	// fields are reported in declaration order, the first specific hint wins
	for _, fe := range fieldErrs {
		hint, ok := fieldSuggestion(fe, req)
		if ok {
			suggestion = hint
			break
		}
	}

	return req, &Error{
		Category:   CategoryValidation,
		Message:    strings.Join(messages, "; "),
		Suggestion: suggestion,
		Err:        err,
	}
}
