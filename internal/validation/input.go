package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ignatzorin/skillswapper-backend/internal/models"
)

// Константы валидации
const (
	MinNameLength     = 2
	MaxNameLength     = 100
	MaxBioLength      = 1000
	MaxLocationLength = 100
	MaxSkillLength    = 50
	MaxSkillsCount    = 50
)

var (
	emailLocalRegex  = regexp.MustCompile(`^[a-z0-9._+-]+$`)
	emailDomainRegex = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	localPart := parts[0]
	domainPart := parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}

	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}

	if !emailLocalRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}

	if !emailDomainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateName проверяет имя пользователя.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("имя обязательно")
	}

	return ValidateLength("имя", name, MinNameLength, MaxNameLength)
}

// ValidateLocation проверяет город.
func ValidateLocation(location *string) error {
	if location != nil && *location != "" {
		if err := ValidateLength("город", strings.TrimSpace(*location), 0, MaxLocationLength); err != nil {
			return err
		}
	}
	return nil
}

// ValidateBio проверяет описание профиля.
func ValidateBio(bio *string) error {
	if bio != nil && *bio != "" {
		if err := ValidateLength("описание", strings.TrimSpace(*bio), 0, MaxBioLength); err != nil {
			return err
		}
	}
	return nil
}

// NormalizeSkillName обрезает пробелы по краям и схлопывает внутренние.
func NormalizeSkillName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// ValidateSkillInputs нормализует и проверяет набор навыков.
// Дубликаты без учёта регистра схлопываются, побеждает последнее значение уровня.
func ValidateSkillInputs(inputs []models.SkillInput, levels map[string]struct{}, defaultLevel string) ([]models.SkillInput, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("не указано ни одного навыка")
	}
	if len(inputs) > MaxSkillsCount {
		return nil, fmt.Errorf("количество навыков не может превышать %d", MaxSkillsCount)
	}

	out := make([]models.SkillInput, 0, len(inputs))
	index := make(map[string]int, len(inputs))

	for _, in := range inputs {
		name := NormalizeSkillName(in.Name)
		if name == "" {
			return nil, fmt.Errorf("навык не может быть пустым")
		}
		if utf8.RuneCountInString(name) > MaxSkillLength {
			return nil, fmt.Errorf("навык не может быть длиннее %d символов", MaxSkillLength)
		}

		level := strings.ToLower(strings.TrimSpace(in.Level))
		if level == "" {
			level = defaultLevel
		}
		if _, ok := levels[level]; !ok {
			return nil, fmt.Errorf("недопустимый уровень %q для навыка %q", in.Level, name)
		}

		key := strings.ToLower(name)
		if i, ok := index[key]; ok {
			out[i].Level = level
			continue
		}
		index[key] = len(out)
		out = append(out, models.SkillInput{Name: name, Level: level})
	}

	return out, nil
}
