package dto

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

// jsonFieldName makes validator namespaces use the JSON names clients send.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// Validate checks the binding rules of req. It is for requests that were
// not decoded through gin, such as imported sheets and CLI input.
func Validate(req any) error {
	return FromBindingError(binding.Validator.ValidateStruct(req))
}

// FromBindingError converts the validator's field errors into
// ValidationErrors keyed by JSON path, e.g. cargo[0].count. Any other error,
// nil included, is returned unchanged.
func FromBindingError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var errs ValidationErrors
	for _, fe := range fieldErrs {
		errs.Add(fieldPath(fe.Namespace()), ruleMessage(fe))
	}
	return errs
}

// fieldPath drops the leading struct name from a validator namespace.
func fieldPath(namespace string) string {
	if _, path, ok := strings.Cut(namespace, "."); ok {
		return path
	}
	return namespace
}

func ruleMessage(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_without":
		return fe.Field() + " or " + strings.ToLower(param) + " is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return "must contain at least " + param + " entry"
		}
		return "must be at least " + param
	case "gt":
		if param == "0" {
			return "must be positive"
		}
		return "must be greater than " + param
	case "gte":
		if param == "0" {
			return "must not be negative"
		}
		return "must be at least " + param
	case "lte":
		return "must be at most " + param
	case "oneof":
		return "must be one of " + strings.ReplaceAll(param, " ", ", ")
	default:
		return "failed the " + fe.Tag() + " rule"
	}
}
