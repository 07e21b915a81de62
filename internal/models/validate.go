package models

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("pokemon_type", func(fl validator.FieldLevel) bool {
		return IsPokemonType(fl.Field().String())
	})

	return v
}

// ValidatePokemon reports the required fields that are absent (or zero) and the
// fields holding a value outside of their allowed range. Both are in field order.
func ValidatePokemon(p *Pokemon) (missing, invalid []string) {
	if p.TypeSecondaire != nil && *p.TypeSecondaire == "" {
		p.TypeSecondaire = nil
	}

	err := validate.Struct(p)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, []string{err.Error()}
	}

	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
			continue
		}
		invalid = append(invalid, fe.Field())
	}
	return missing, invalid
}

func ValidateConfig(cfg *Config) error {
	return validate.Struct(cfg)
}
