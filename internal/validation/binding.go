package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ignatzorin/freelance-bidding/internal/domain/valueobject"
)

// RegisterBindings добавляет в валидатор gin теги, которые используют DTO:
//   - future: время строго позже текущего;
//   - role: известная роль участника.
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("validation: gin validator engine is not go-playground/validator")
	}
	return Register(v)
}

// Register регистрирует теги на произвольном экземпляре валидатора.
// В сообщениях об ошибках поля называются по json тегу.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		"future": isFuture,
		"role":   isRole,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("validation: register %s: %w", tag, err)
		}
	}
	return nil
}

func isFuture(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	return ok && t.After(time.Now())
}

func isRole(fl validator.FieldLevel) bool {
	return valueobject.Role(strings.ToLower(fl.Field().String())).IsValid()
}

// Describe превращает ошибки валидатора в короткое сообщение для клиента.
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			parts = append(parts, field+" обязательно")
		case "future":
			parts = append(parts, field+" должен быть в будущем")
		case "role":
			parts = append(parts, field+" должна быть freelancer или client")
		case "gt":
			parts = append(parts, field+" должно быть больше нуля")
		case "gte", "min":
			parts = append(parts, fmt.Sprintf("%s должно быть не меньше %s", field, fe.Param()))
		case "max", "lte":
			parts = append(parts, fmt.Sprintf("%s должно быть не больше %s", field, fe.Param()))
		case "email":
			parts = append(parts, field+" должен быть корректным email")
		default:
			parts = append(parts, fmt.Sprintf("%s не прошло проверку %s", field, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
