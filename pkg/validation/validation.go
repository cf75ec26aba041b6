package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	apperrors "mentorbooking/pkg/errors"

	"github.com/go-playground/validator/v10"
)

var skillRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9 .+#/-]*$`)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Validator wraps go-playground/validator with the custom tags used by the
// mentor booking models. Field names in errors follow the JSON names.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("skill", func(fl validator.FieldLevel) bool {
		return skillRegex.MatchString(fl.Field().String())
	})

	return &Validator{validate: v}
}

// Struct returns ValidationErrors for field failures and nil on success.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return translate(validationErrs)
	}
	return err
}

func translate(errs validator.ValidationErrors) ValidationErrors {
	validationErrors := make(ValidationErrors, 0, len(errs))

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "uuid", "uuid4":
			message = fmt.Sprintf("%s must be a valid UUID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "gtfield":
			message = fmt.Sprintf("%s must be after %s", err.Field(), err.Param())
		case "skill":
			message = fmt.Sprintf("%s must be a lowercase skill name", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Namespace(),
			Message: message,
		})
	}

	return validationErrors
}

// InvalidInput converts a validation failure into a 400 AppError carrying the
// per-field messages. Non-validation errors become internal errors.
func InvalidInput(message string, err error) *apperrors.AppError {
	var validationErrs ValidationErrors
	if errors.As(err, &validationErrs) {
		return apperrors.InvalidInput(message).WithDetails(map[string]any{
			"errors": validationErrs,
		})
	}
	return apperrors.Internal(message, err)
}
