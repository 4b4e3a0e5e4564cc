package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeLayout формат времени HH:MM (24-часовой)
const TimeLayout = "15:04"

const minutesPerDay = 24 * 60

// TimeString время суток в формате "HH:MM" (например, "09:30")
// Хранится и передаётся как строка, сравнивается по количеству минут с полуночи.
// Специальное значение "24:00" допустимо как конец интервала (полночь следующего дня).
type TimeString string

// NewTimeString создает TimeString из time.Time (отбрасывает дату и секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeLayout))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет, что строка имеет корректный формат HH:MM
func (t TimeString) Validate() error {
	_, err := t.Minutes()
	return err
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление времени
func (t TimeString) String() string {
	return string(t)
}

// Minutes возвращает количество минут с полуночи
func (t TimeString) Minutes() (int, error) {
	var hours, minutes int
	if _, err := fmt.Sscanf(string(t), "%2d:%2d", &hours, &minutes); err != nil {
		return 0, fmt.Errorf("invalid time string format: %q", string(t))
	}
	if len(t) != 5 || t[2] != ':' {
		return 0, fmt.Errorf("invalid time string format: %q", string(t))
	}
	if minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time string format: %q", string(t))
	}
	// "24:00" допустимо как граница конца дня
	if hours < 0 || hours > 24 || (hours == 24 && minutes != 0) {
		return 0, fmt.Errorf("invalid time string format: %q", string(t))
	}
	return hours*60 + minutes, nil
}

// AddMinutes возвращает время, сдвинутое на m минут вперед
// Возвращает ошибку, если результат выходит за пределы суток
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	total, err := t.Minutes()
	if err != nil {
		return "", err
	}
	total += m
	if total < 0 || total > minutesPerDay {
		return "", fmt.Errorf("time out of range: %q + %d minutes", string(t), m)
	}
	return fromMinutes(total), nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a > b
}

// Scan реализует sql.Scanner
// Поддерживает string, []byte и time.Time (колонки TIME в postgres)
func (t *TimeString) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		*t = TimeString(v)
	case []byte:
		*t = TimeString(v)
	case time.Time:
		*t = NewTimeString(v)
	default:
		return fmt.Errorf("cannot scan %T into TimeString", value)
	}
	if len(*t) > 5 {
		// postgres TIME может прийти как "09:30:00"
		*t = (*t)[:5]
	}
	return t.Validate()
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

func fromMinutes(total int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60))
}
