package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator configures gin's binding validator to report field names
// from json/form tags instead of Go struct field names.
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
	}
}

// ValidationMessage turns a binding error into a user-facing message.
// Only the first failed rule is reported.
func ValidationMessage(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return "Datos de entrada inválidos"
	}
	e := validationErrors[0]
	field := e.Field()
	if field == "" {
		field = e.StructField()
	}
	return "El campo '" + field + "' " + validationReason(e)
}

func validationReason(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "es obligatorio"
	case "email":
		return "debe ser un email válido"
	case "oneof":
		return "debe ser uno de: " + strings.ReplaceAll(e.Param(), " ", ", ")
	case "min":
		if e.Type().Kind() == reflect.String {
			return "debe tener al menos " + e.Param() + " caracteres"
		}
		return "debe ser al menos " + e.Param()
	case "max":
		if e.Type().Kind() == reflect.String {
			return "debe tener como máximo " + e.Param() + " caracteres"
		}
		return "debe ser como máximo " + e.Param()
	case "len":
		return "debe tener exactamente " + e.Param() + " caracteres"
	case "gt":
		return "debe ser mayor que " + e.Param()
	case "gte":
		return "debe ser mayor o igual a " + e.Param()
	case "lt":
		return "debe ser menor que " + e.Param()
	case "lte":
		return "debe ser menor o igual a " + e.Param()
	case "numeric":
		return "debe ser numérico"
	default:
		return "tiene un valor inválido"
	}
}
