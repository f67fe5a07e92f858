package validators

import (
	"github.com/go-playground/validator/v10"
)

// SplitRatioValidation validates that a split ratio fraction lies strictly
// between zero and one.
func SplitRatioValidation(fl validator.FieldLevel) bool {
	ratio := fl.Field().Float()
	return ratio > 0 && ratio < 1
}
