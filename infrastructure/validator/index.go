package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	validate.RegisterValidation("password", validatePasswordStrength)
	validate.RegisterValidation("name_special_char", validateNameWithSpecialChars)
	validate.RegisterValidation("face_image", validateImagePayload)
}

type Validator struct{}

func (v *Validator) ValidateStruct(payload interface{}) *[]error {
	return validateStruct(payload)
}

func (v *Validator) ValidateValue(value any, rules string) error {
	return validate.Var(value, rules)
}

var ValidatorInstance = Validator{}

func validateStruct(payload interface{}) *[]error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errs := []error{err}
		return &errs
	}
	var errs []error
	for _, fieldErr := range validationErrors {
		errs = append(errs, fmt.Errorf("%s failed validation for rule %s", fieldErr.Field(), fieldErr.Tag()))
	}
	return &errs
}
