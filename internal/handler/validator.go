package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
)

const tagRewardToken = "token"

var (
	validatorOnce sync.Once
	validate      *validator.Validate
)

// requestValidator returns the shared validator, registering the custom
// tags on first use. Field errors are reported under their JSON names.
func requestValidator() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation(tagRewardToken, validateRewardToken)
		validate = v
	})
	return validate
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return strings.ToLower(f.Name)
	}
	return name
}

// validateRequest checks req against its validate tags
func validateRequest(req any) error {
	return requestValidator().Struct(req)
}

// fieldErrors turns a validation failure into client-facing messages keyed by
// field. Anything that is not a validation error collapses to one "error" entry.
func fieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"error": "Invalid request format"}
	}

	out := make(map[string]string, len(verrs))
	for _, e := range verrs {
		out[e.Field()] = fieldMessage(e)
	}
	return out
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case tagRewardToken:
		return "Must be one of " + strings.Join(tokenLetters(), ", ")
	case "max", "lte":
		return fmt.Sprintf("Must be at most %s", e.Param())
	case "min", "gte":
		return fmt.Sprintf("Must be at least %s", e.Param())
	case "ne":
		return fmt.Sprintf("Must not be %s", e.Param())
	case "excludesall":
		return "Contains invalid characters"
	}
	return "Invalid value"
}

func tokenLetters() []string {
	letters := make([]string, len(domain.RewardTokens))
	for i, t := range domain.RewardTokens {
		letters[i] = string(t)
	}
	return letters
}

// validateRewardToken accepts empty values; pair with required when needed
func validateRewardToken(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return true
	}
	_, ok := domain.ParseRewardToken(strings.ToUpper(raw))
	return ok
}
