package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/partyklinest/cleaning-backend/internal/models"
)

// Константы валидации
const (
	MinMessLevel = 1
	MaxMessLevel = 5

	MinOpinionRating = 1
	MaxOpinionRating = 5

	MinPrice = 0.0
	MaxPrice = 10000000.0 // 10 миллионов

	MaxCommentLength = 2000
	MaxNameLength    = 100

	MaxScheduleEntries = 21 // до трёх окон на каждый день недели
)

// timeOfDayRegex — время начала и конца окна расписания в формате ЧЧ:ММ.
var timeOfDayRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

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

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = strings.TrimSpace(email)
	email = strings.ToLower(email)

	if !strings.Contains(email, "@") {
		return fmt.Errorf("email должен содержать символ @")
	}

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

	localRegex := regexp.MustCompile(`^[a-z0-9._+-]+$`)
	if !localRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}

	domainRegex := regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	if !domainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateMessLevel проверяет уровень загрязнения.
func ValidateMessLevel(level int) error {
	if level < MinMessLevel || level > MaxMessLevel {
		return fmt.Errorf("уровень загрязнения должен быть от %d до %d", MinMessLevel, MaxMessLevel)
	}
	return nil
}

// ValidatePrice проверяет цену заказа.
func ValidatePrice(price float64) error {
	if price <= MinPrice {
		return fmt.Errorf("цена должна быть положительной")
	}
	if price > MaxPrice {
		return fmt.Errorf("цена не может превышать %.0f", MaxPrice)
	}
	return nil
}

// ValidateOpinion проверяет мнение клинера о клиенте.
func ValidateOpinion(opinion models.Opinion) error {
	if opinion.Rating < MinOpinionRating || opinion.Rating > MaxOpinionRating {
		return fmt.Errorf("оценка должна быть от %d до %d", MinOpinionRating, MaxOpinionRating)
	}
	if opinion.Comment != "" {
		if err := ValidateLength("комментарий", opinion.Comment, 0, MaxCommentLength); err != nil {
			return err
		}
	}
	return nil
}

// ValidateOrderFilter проверяет фильтр заказов клинера.
func ValidateOrderFilter(filter models.OrderFilter) error {
	if err := ValidateMessLevel(filter.MaxMessLevel); err != nil {
		return fmt.Errorf("максимальный %w", err)
	}
	if filter.MinPrice < MinPrice {
		return fmt.Errorf("минимальная цена не может быть отрицательной")
	}
	if filter.MaxPrice < filter.MinPrice {
		return fmt.Errorf("максимальная цена не может быть меньше минимальной")
	}
	if filter.MinClientRating != nil {
		if *filter.MinClientRating < float64(MinOpinionRating) || *filter.MinClientRating > float64(MaxOpinionRating) {
			return fmt.Errorf("порог рейтинга клиента должен быть от %d до %d", MinOpinionRating, MaxOpinionRating)
		}
	}
	return nil
}

// ValidateSchedule проверяет окна расписания клинера.
func ValidateSchedule(entries []models.ScheduleEntry) error {
	if len(entries) > MaxScheduleEntries {
		return fmt.Errorf("количество окон расписания не может превышать %d", MaxScheduleEntries)
	}
	for i, entry := range entries {
		if entry.DayOfWeek < time.Sunday || entry.DayOfWeek > time.Saturday {
			return fmt.Errorf("окно %d: некорректный день недели", i+1)
		}
		if !timeOfDayRegex.MatchString(entry.StartTime) {
			return fmt.Errorf("окно %d: время начала должно быть в формате ЧЧ:ММ", i+1)
		}
		if !timeOfDayRegex.MatchString(entry.EndTime) {
			return fmt.Errorf("окно %d: время конца должно быть в формате ЧЧ:ММ", i+1)
		}
		if entry.StartTime >= entry.EndTime {
			return fmt.Errorf("окно %d: время начала должно быть раньше времени конца", i+1)
		}
	}
	return nil
}

// ValidateName проверяет отображаемое имя клиента.
func ValidateName(name string) error {
	if err := ValidateNonEmpty("имя", name); err != nil {
		return err
	}
	return ValidateLength("имя", strings.TrimSpace(name), 0, MaxNameLength)
}
