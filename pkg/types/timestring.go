package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"time"
)

// TimeString represents a time of day in "HH:MM" format (e.g. "10:30").
// The zero value is the empty string and is considered unset.
type TimeString string

const timeStringLayout = "15:04"

// MinutesPerDay количество минут в сутках, валидный минутный диапазон [0, 1439]
const MinutesPerDay = 24 * 60

var timeStringRe = regexp.MustCompile(`^([0-1]\d|2[0-3]):[0-5]\d$`)

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("types: invalid time string format, expected HH:MM")

	// ErrMinutesOutOfRange возвращается, когда минута дня выходит за пределы [0, 1439]
	ErrMinutesOutOfRange = errors.New("types: minutes out of range [0, 1439]")

	// ErrCrossesMidnight возвращается, когда результат сложения переходит через полночь.
	// Интервалы через полночь системой не поддерживаются, поэтому возвращаем ошибку,
	// а не "заворачиваем" время на следующие сутки.
	ErrCrossesMidnight = errors.New("types: time crosses midnight")
)

// NewTimeString creates a TimeString from the clock part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeStringLayout))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes converts a minute of day back to "HH:MM".
// Values outside [0, 1439] indicate a cross-midnight interval and are rejected.
func NewTimeStringFromMinutes(m int) (TimeString, error) {
	if m < 0 || m >= MinutesPerDay {
		return "", fmt.Errorf("%w: %d", ErrMinutesOutOfRange, m)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// Validate checks the "HH:MM" format (00-23 hours, 00-59 minutes).
func (t TimeString) Validate() error {
	if !timeStringRe.MatchString(string(t)) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// IsZero returns true if the value is unset.
func (t TimeString) IsZero() bool {
	return t == ""
}

// MinuteOfDay returns hours*60+minutes. The value must be validated beforehand;
// for a malformed string the result is undefined (callers validate at the boundary).
func (t TimeString) MinuteOfDay() int {
	if len(t) != 5 {
		return 0
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	minutes := int(t[3]-'0')*10 + int(t[4]-'0')
	return hours*60 + minutes
}

// AddMinutes returns the time of day n minutes later.
// Returns ErrCrossesMidnight if the result would pass 23:59.
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	sum := t.MinuteOfDay() + n
	if sum < 0 || sum >= MinutesPerDay {
		return "", fmt.Errorf("%w: %s + %d min", ErrCrossesMidnight, string(t), n)
	}
	return NewTimeStringFromMinutes(sum)
}

// IsBefore returns true if t is strictly earlier than other.
func (t TimeString) IsBefore(other TimeString) bool {
	return t.MinuteOfDay() < other.MinuteOfDay()
}

// IsAfter returns true if t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return t.MinuteOfDay() > other.MinuteOfDay()
}

// Equal returns true if both values denote the same minute of day.
func (t TimeString) Equal(other TimeString) bool {
	return t.MinuteOfDay() == other.MinuteOfDay()
}

// String implements fmt.Stringer.
func (t TimeString) String() string {
	return string(t)
}

// Value implements driver.Valuer for storing in the database.
func (t TimeString) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan implements sql.Scanner.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*t = TimeString(v)
	case []byte:
		*t = TimeString(v)
	case time.Time:
		*t = NewTimeString(v)
	case nil:
		*t = ""
	default:
		return fmt.Errorf("types: cannot scan %T into TimeString", src)
	}
	return nil
}
