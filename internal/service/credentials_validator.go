package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	fieldRequiredMessage = "This field is required."
	nonFieldErrorsKey    = "non_field_errors"
)

type LoginCredentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type credentialsValidator struct {
	validate *validator.Validate
}

func newCredentialsValidator() *credentialsValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &credentialsValidator{validate: v}
}

// Fields returns per-field error messages keyed by json name, or nil.
func (v *credentialsValidator) Fields(creds LoginCredentials) map[string][]string {
	err := v.validate.Struct(creds)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string][]string{nonFieldErrorsKey: {err.Error()}}
	}
	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		msg := fieldRequiredMessage
		if fe.Tag() != "required" {
			msg = "Invalid value."
		}
		fields[fe.Field()] = append(fields[fe.Field()], msg)
	}
	return fields
}
