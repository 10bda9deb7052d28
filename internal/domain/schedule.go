package domain

import (
	"time"

	"github.com/lumibook/booking-service/pkg/types"
)

// Schedule is a specialist's recurring weekly working interval for one
// weekday (0=Sunday .. 6=Saturday). At most one per (specialist, weekday).
type Schedule struct {
	ID           int64
	CompanyID    int64
	SpecialistID int64
	DayOfWeek    int // 0=воскресенье .. 6=суббота
	StartTime    types.TimeString
	EndTime      types.TimeString
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Interval returns the working hours as a half-open minute interval.
func (s *Schedule) Interval() Interval {
	return Interval{
		StartMin: s.StartTime.MinuteOfDay(),
		EndMin:   s.EndTime.MinuteOfDay(),
	}
}

// DayOfWeekUTC maps a calendar date to its weekday using the UTC midnight
// instant, so the schedule lookup does not drift with the server's local zone.
func DayOfWeekUTC(date time.Time) int {
	utcMidnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return int(utcMidnight.Weekday())
}
