package dto

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/Empresa-api/internal/domain"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// Los errores se reportan con el nombre del campo JSON (nombre, fechaVencimiento, ...).
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// fieldChecker validaciones que el motor de etiquetas no cubre (decimales, fechas).
type fieldChecker interface {
	checkFields(errs map[string]string)
}

// Validate valida in con las etiquetas `validate` y devuelve *domain.ValidationError
// con un mensaje por campo, o nil.
func Validate(in interface{}) error {
	errs := map[string]string{}
	if err := engine().Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			if _, dup := errs[fe.Field()]; !dup {
				errs[fe.Field()] = message(fe)
			}
		}
	}
	if fc, ok := in.(fieldChecker); ok {
		fc.checkFields(errs)
	}
	if len(errs) == 0 {
		return nil
	}
	return &domain.ValidationError{Fields: errs}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "email":
		return "el formato del email no es válido"
	case "min":
		if fe.Kind() == reflect.Slice {
			return "debe tener al menos " + fe.Param() + " elementos"
		}
		return "debe tener al menos " + fe.Param() + " caracteres"
	case "max":
		return "no puede superar " + fe.Param() + " caracteres"
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	default:
		return "valor no válido"
	}
}
