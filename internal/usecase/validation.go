package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"pei_compras/internal/domain/entities"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	structValidator = newStructValidator()
	itemIndexRe     = regexp.MustCompile(`Items\[(\d+)\]`)
)

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("urgency", func(fl validator.FieldLevel) bool {
		return entities.Urgency(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("nonnegative", func(fl validator.FieldLevel) bool {
		return fl.Field().Float() >= 0
	})
	return v
}

// ValidateStructuredRequest checks a StructuredRequest before it is persisted.
// It never fails on a present but unknown category; extraction already coerced it.
func ValidateStructuredRequest(req entities.StructuredRequest) (bool, string) {
	err := structValidator.Struct(req)
	if err == nil {
		return true, ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return false, err.Error()
	}
	return false, validationReason(verrs[0])
}

func validationReason(fe validator.FieldError) string {
	idx := itemIndex(fe.Namespace())
	switch fe.StructField() {
	case "Items":
		return "Debe haber al menos un producto en la solicitud"
	case "Name":
		return fmt.Sprintf("El producto #%d no tiene nombre", idx)
	case "Quantity":
		return fmt.Sprintf("El producto #%d tiene una cantidad inválida", idx)
	case "Category":
		return fmt.Sprintf("El producto #%d no tiene categoría", idx)
	case "Urgency":
		return "Urgencia inválida"
	case "EstimatedBudget":
		return "Presupuesto inválido"
	default:
		return strings.TrimSpace(fe.Error())
	}
}

func itemIndex(namespace string) int {
	m := itemIndexRe.FindStringSubmatch(namespace)
	if len(m) != 2 {
		return 0
	}
	i, _ := strconv.Atoi(m[1])
	return i + 1
}
