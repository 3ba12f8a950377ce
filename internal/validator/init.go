package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// "mark" accepts the two placeable marks.
	_ = validate.RegisterValidation("mark", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "X", "O":
			return true
		}
		return false
	})
}

func GetValidator() *validator.Validate {
	return validate
}
