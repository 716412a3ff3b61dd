package app

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"consumer_reviews/internal/domain"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// report json names so messages line up with the payload
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("rating", func(fl validator.FieldLevel) bool {
			return domain.Rating(fl.Field().String()).Valid()
		})
		validate = v
	})
	return validate
}

// ValidateNewReview checks the client-controlled fields of a review.
func ValidateNewReview(in domain.NewReview) error {
	ve := domain.NewValidationError()
	if err := getValidator().Struct(in); err != nil {
		var fes validator.ValidationErrors
		if !errors.As(err, &fes) {
			return err
		}
		for _, fe := range fes {
			ve.Add(fe.Field(), fieldMessage(fe))
		}
	}
	// a company of the wrong kind is reported instead of "required"
	if msg := in.CompanyTypeError(); msg != "" {
		ve.Fields["company"] = []string{msg}
	}
	if ve.Empty() {
		return nil
	}
	return ve
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "rating":
		return fmt.Sprintf("%q is not a valid choice.", fe.Value())
	}
	return fmt.Sprintf("Failed on %s validation.", fe.Tag())
}
