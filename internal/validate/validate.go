// Package validate wraps go-playground/validator with one shared instance
// and the starfield's own tags.
package validate

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

// Device pixel ratios accepted by the pixel_ratio tag.
const (
	MinPixelRatio = 0.5
	MaxPixelRatio = 4.0
)

//nolint:gochecknoglobals // Shared validator singleton.
var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

func get() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// Registration only fails on an empty tag or nil func.
		_ = v.RegisterValidation("pixel_ratio", pixelRatio)
		validatorInst = v
	})
	return validatorInst
}

func pixelRatio(fl validator.FieldLevel) bool {
	if !fl.Field().CanFloat() {
		return false
	}
	r := fl.Field().Float()
	return r >= MinPixelRatio && r <= MaxPixelRatio
}

// Struct validates a struct's validate tags.
func Struct(v any) error {
	return get().Struct(v)
}

// Var validates a single value against tag, e.g. "gte=1" or "pixel_ratio".
func Var(field any, tag string) error {
	return get().Var(field, tag)
}
