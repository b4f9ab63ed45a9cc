package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// fieldMessages maps validation tags onto client-facing messages. A %s
// verb receives the tag parameter.
var fieldMessages = map[string]string{
	"required":    "This field is required",
	"participant": "Participant IDs must be printable with no spaces",
	"max":         "Must be at most %s",
	"min":         "Must be at least %s",
	"gte":         "Must be at least %s",
	"lte":         "Must be at most %s",
}

// requestValidator reports fields by their JSON names
var requestValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation("participant", validateParticipantID); err != nil {
		panic(err)
	}
	return v
})

// validateRequest runs the struct tags of req
func validateRequest(req any) error {
	return requestValidator().Struct(req)
}

// FieldErrors maps a validation failure to JSON path -> message, for example
// "questions[1].options" -> "Must be at least 2". Anything that is not a
// validation failure is reported under "error".
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"error": "Invalid request format"}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Tag()]
		if !ok {
			msg = "Invalid value"
		}
		if strings.Contains(msg, "%s") {
			msg = fmt.Sprintf(msg, fe.Param())
		}
		out[fieldPath(fe)] = msg
	}
	return out
}

// fieldPath drops the root struct name from the namespace
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
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

// validateParticipantID accepts opaque printable identifiers without whitespace
func validateParticipantID(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
