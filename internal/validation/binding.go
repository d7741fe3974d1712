package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/ignatzorin/skillswapper-backend/internal/models"
)

// RegisterBindingRules подключает кастомные теги к валидатору gin.
// Вызывается один раз при старте сервера.
func RegisterBindingRules() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("validation: неожиданный движок валидации %T", binding.Validator.Engine())
	}
	return registerRules(v)
}

func registerRules(v *validator.Validate) error {
	// Имена полей в ошибках берём из json тегов.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		"skill_level":   oneOfSet(models.ValidProficiencyLevels),
		"urgency_level": oneOfSet(models.ValidUrgencyLevels),
		"match_status":  oneOfSet(models.ValidMatchStatuses),
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("validation: не удалось зарегистрировать тег %s: %w", tag, err)
		}
	}
	return nil
}

func oneOfSet(set map[string]struct{}) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true // пустое значение проверяет required
		}
		_, ok := set[strings.ToLower(value)]
		return ok
	}
}

// BindingMessage превращает ошибку биндинга gin в сообщение для клиента.
func BindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "некорректный формат запроса"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("поле %s обязательно", field)
	case "email":
		return fmt.Sprintf("поле %s должно быть корректным email", field)
	case "min":
		return fmt.Sprintf("поле %s должно быть не короче %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("поле %s должно быть не длиннее %s", field, fe.Param())
	case "uuid", "uuid4":
		return fmt.Sprintf("поле %s должно быть UUID", field)
	case "skill_level":
		return fmt.Sprintf("поле %s: допустимые уровни beginner, intermediate, advanced, expert", field)
	case "urgency_level":
		return fmt.Sprintf("поле %s: допустимые значения low, medium, high", field)
	case "match_status":
		return fmt.Sprintf("поле %s: неизвестный статус", field)
	default:
		return fmt.Sprintf("поле %s не прошло проверку %s", field, fe.Tag())
	}
}
