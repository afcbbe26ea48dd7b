package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/LootLoop_Go/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var (
	validate     *Validator
	validateOnce sync.Once
)

// InitValidator initializes the global validator
func InitValidator() {
	validateOnce.Do(func() {
		v := validator.New()
		// report fields by their JSON names
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("subgame", validateSubGame)
		_ = v.RegisterValidation("track", validateTrack)
		_ = v.RegisterValidation("category", validateCategory)
		validate = &Validator{validate: v}
	})
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	InitValidator()
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s any) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// keyed by the field's JSON name.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "subgame", "track":
			errs[field] = "Unknown sub-game"
		case "category":
			errs[field] = "Unknown category"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min", "gte":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "excludesall":
			errs[field] = "Contains invalid characters"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

func knownSubGame(name string) bool {
	for _, sg := range domain.AllSubGames() {
		if string(sg) == name {
			return true
		}
	}
	return false
}

// validateSubGame accepts a sub-game with a loop.
func validateSubGame(fl validator.FieldLevel) bool {
	return knownSubGame(fl.Field().String())
}

// validateTrack also accepts the primary roll, which has levels but no loop.
func validateTrack(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	return name == string(domain.TrackRoll) || knownSubGame(name)
}

func validateCategory(fl validator.FieldLevel) bool {
	switch domain.Category(fl.Field().String()) {
	case domain.CategoryLoot, domain.CategoryOre, domain.CategoryFish, domain.CategoryPlant, domain.CategoryMoon:
		return true
	}
	return false
}
