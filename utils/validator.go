package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"hr_payroll/types"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

var nationalIDPattern = regexp.MustCompile(`^[1-9]\d{0,19}$`)

var personKinds = map[string]bool{
	"REGULAR":    true,
	"FULL_TIME":  true,
	"HOURLY":     true,
	"CONTRACTOR": true,
	"MANAGER":    true,
}

func init() {
	Validate = validator.New()
	Validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	Validate.RegisterValidation("national_id", validateNationalID)
	Validate.RegisterValidation("date", validateDate)
	Validate.RegisterValidation("person_kind", validatePersonKind)
}

func validateNationalID(fl validator.FieldLevel) bool {
	return nationalIDPattern.MatchString(fl.Field().String())
}

// validateDate accepts YYYY-MM-DD or RFC3339.
func validateDate(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if _, err := time.Parse("2006-01-02", value); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, value)
	return err == nil
}

func validatePersonKind(fl validator.FieldLevel) bool {
	return personKinds[strings.ToUpper(fl.Field().String())]
}

// ValidateStruct runs the struct tags on s and returns a ValidationFailed
// error listing every failed field, or nil.
func ValidateStruct(s interface{}) error {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return types.ValidationFailed("invalid request: %v", err)
	}

	fields := make([]types.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		element := types.FieldError{
			Field: fe.Field(),
			Tag:   fe.Tag(),
		}

		switch fe.Tag() {
		case "required":
			element.Message = fmt.Sprintf("Field '%s' is required.", fe.Field())
		case "min":
			element.Message = fmt.Sprintf("Field '%s' must be at least %s.", fe.Field(), fe.Param())
		case "max":
			element.Message = fmt.Sprintf("Field '%s' must be at most %s.", fe.Field(), fe.Param())
		case "oneof":
			element.Message = fmt.Sprintf("Field '%s' must be one of: %s.", fe.Field(), fe.Param())
		case "national_id":
			element.Message = "National ID must be 1 to 20 digits and cannot start with 0."
		case "date":
			element.Message = fmt.Sprintf("Field '%s' must be a date in YYYY-MM-DD format.", fe.Field())
		case "person_kind":
			element.Message = "Kind must be one of REGULAR, FULL_TIME, HOURLY, CONTRACTOR, MANAGER."
		default:
			element.Message = fmt.Sprintf("Field '%s' failed validation on tag '%s'.", fe.Field(), fe.Tag())
		}
		fields = append(fields, element)
	}

	verr := types.ValidationFailed("request validation failed on %d field(s)", len(fields))
	verr.Fields = fields
	return verr
}
