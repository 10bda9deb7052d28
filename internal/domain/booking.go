package domain

import (
	"time"

	"github.com/lumibook/booking-service/pkg/types"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusCompleted BookingStatus = "COMPLETED"
)

// statusTransitions allowed lifecycle transitions:
// PENDING -> CONFIRMED | CANCELLED, CONFIRMED -> CANCELLED | COMPLETED.
// CANCELLED and COMPLETED are terminal.
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
	StatusCancelled: {},
	StatusCompleted: {},
}

// ParseBookingStatus validates a raw status string.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return BookingStatus(s), true
	}
	return "", false
}

// IsOccupying returns true if the status counts toward blocking a time slot.
// Only pending and confirmed bookings occupy time; cancelled never do.
func (s BookingStatus) IsOccupying() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsTerminal returns true if no further transition is allowed from s.
func (s BookingStatus) IsTerminal() bool {
	return len(statusTransitions[s]) == 0
}

// CanTransitionTo returns true if the transition s -> next is allowed.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking represents a client appointment or a specialist-initiated block.
// A block is a booking with no client and IsBlock set; it occupies time the
// same way a client booking does.
type Booking struct {
	ID           int64
	CompanyID    int64
	SpecialistID int64
	ClientID     *int64 // nil для блокировки времени специалистом
	ServiceIDs   []int64
	Date         time.Time // календарный день, без времени
	StartTime    types.TimeString
	EndTime      types.TimeString
	Status       BookingStatus
	IsBlock      bool
	Comment      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Interval returns the booking's half-open minute interval.
func (b *Booking) Interval() Interval {
	return Interval{
		StartMin: b.StartTime.MinuteOfDay(),
		EndMin:   b.EndTime.MinuteOfDay(),
	}
}

// IsOccupying returns true if the booking blocks its time slot.
func (b *Booking) IsOccupying() bool {
	return b.Status.IsOccupying()
}

// CanBeUpdated returns true if the booking's time or fields may still change.
func (b *Booking) CanBeUpdated() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// OccupyingStatuses statuses that count toward blocking a slot
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// CompanyBookingsFilter фильтр для выборки бронирований компании
type CompanyBookingsFilter struct {
	CompanyID     int64
	SpecialistID  *int64         // только указанный специалист
	Date          *time.Time     // только указанный день
	Status        *BookingStatus // только указанный статус
	OnlyOccupying bool           // только занимающие слот (pending/confirmed)
	OnlyBlocks    bool           // только блокировки времени
}
