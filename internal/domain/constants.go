package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Weekday range for schedules
const (
	MinDayOfWeek = 0 // воскресенье
	MaxDayOfWeek = 6 // суббота
)

// Business validation constants
const (
	MaxCommentLength = 500
)
