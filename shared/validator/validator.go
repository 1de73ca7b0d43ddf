package validator

import (
	"encoding/json"
	"fmt"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"io"
	"reflect"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

func layoutValidation(layout string) val.Func {
	return func(field val.FieldLevel) bool {
		str, ok := field.Field().Interface().(string)
		if !ok {
			return false
		}

		_, err := time.Parse(layout, str)

		return err == nil
	}
}

func jsonTagName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0] //nolint:mnd
	if name == "-" || name == "" {
		return field.Name
	}

	return name
}

// rules are the custom tags available on request structs next to the built-in ones.
var rules = map[string]val.Func{
	"empty": func(fl val.FieldLevel) bool { return fl.Field().IsZero() },
	"date":  layoutValidation(constant.DateOnlyFormat),
	"month": layoutValidation(constant.MonthFormat),
	"year":  layoutValidation(constant.YearFormat),
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonTagName)

	for tag, fn := range rules {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %q validation: %v", tag, err))
		}
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
