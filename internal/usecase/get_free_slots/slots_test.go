package get_free_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lumibook/booking-service/internal/domain"
	companyRepo "github.com/lumibook/booking-service/internal/infra/storage/company"
	scheduleRepo "github.com/lumibook/booking-service/internal/infra/storage/schedule"
	"github.com/lumibook/booking-service/pkg/types"
)

func mustAddMinutes(t *testing.T, ts types.TimeString, minutes int) types.TimeString {
	t.Helper()
	result, err := ts.AddMinutes(minutes)
	if err != nil {
		t.Fatalf("AddMinutes(%s, %d): %v", ts, minutes, err)
	}
	return result
}

func occupyingBooking(id int64, start, end types.TimeString) *domain.Booking {
	return &domain.Booking{
		ID:        id,
		StartTime: start,
		EndTime:   end,
		Status:    domain.StatusConfirmed,
	}
}

func slotStarts(slots []Slot) []types.TimeString {
	starts := make([]types.TimeString, len(slots))
	for i, s := range slots {
		starts[i] = s.StartTime
	}
	return starts
}

func assertSlotStarts(t *testing.T, slots []Slot, want []types.TimeString) {
	t.Helper()
	got := slotStarts(slots)
	if len(got) != len(want) {
		t.Fatalf("slot starts = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("slot starts = %v, want %v", got, want)
		}
	}
}

func TestGenerateFreeSlots(t *testing.T) {
	tests := []struct {
		name       string
		workStart  types.TimeString
		workEnd    types.TimeString
		duration   int
		occupying  []*domain.Booking
		wantStarts []types.TimeString
	}{
		{
			name:       "grid fills working day exactly",
			workStart:  "10:00",
			workEnd:    "13:00",
			duration:   60,
			wantStarts: []types.TimeString{"10:00", "11:00", "12:00"},
		},
		{
			name:      "remainder shorter than duration is dropped",
			workStart: "10:00",
			workEnd:   "13:00",
			duration:  45,
			// 12:15 + 45 = 13:00 is still inside; the next, 13:00, is not
			wantStarts: []types.TimeString{"10:00", "10:45", "11:30", "12:15"},
		},
		{
			name:      "booking removes overlapping candidates only",
			workStart: "09:00",
			workEnd:   "12:00",
			duration:  30,
			occupying: []*domain.Booking{
				occupyingBooking(1, "10:15", "10:45"),
			},
			// кандидаты 10:00-10:30 и 10:30-11:00 пересекаются с бронью
			wantStarts: []types.TimeString{"09:00", "09:30", "11:00", "11:30"},
		},
		{
			name:      "adjacent booking does not block the slot",
			workStart: "09:00",
			workEnd:   "11:00",
			duration:  60,
			occupying: []*domain.Booking{
				occupyingBooking(1, "08:00", "09:00"),
				occupyingBooking(2, "11:00", "12:00"),
			},
			wantStarts: []types.TimeString{"09:00", "10:00"},
		},
		{
			name:      "fully booked day yields no slots",
			workStart: "09:00",
			workEnd:   "12:00",
			duration:  60,
			occupying: []*domain.Booking{
				occupyingBooking(1, "09:00", "12:00"),
			},
			wantStarts: []types.TimeString{},
		},
		{
			name:       "duration longer than working day yields no slots",
			workStart:  "10:00",
			workEnd:    "11:00",
			duration:   90,
			wantStarts: []types.TimeString{},
		},
		{
			name:       "working day near midnight does not wrap",
			workStart:  "23:00",
			workEnd:    "23:59",
			duration:   30,
			wantStarts: []types.TimeString{"23:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := generateFreeSlots(tt.workStart, tt.workEnd, tt.duration, tt.occupying)
			assertSlotStarts(t, slots, tt.wantStarts)

			// Конец каждого слота равен началу плюс длительность
			for _, slot := range slots {
				wantEnd := mustAddMinutes(t, slot.StartTime, tt.duration)
				if slot.EndTime != wantEnd {
					t.Errorf("slot %s end = %s, want %s", slot.StartTime, slot.EndTime, wantEnd)
				}
			}
		})
	}
}

func TestGenerateFreeSlotsAscendingOrder(t *testing.T) {
	slots := generateFreeSlots("08:00", "20:00", 25, []*domain.Booking{
		occupyingBooking(1, "11:00", "13:00"),
	})

	for i := 1; i < len(slots); i++ {
		if !slots[i-1].StartTime.IsBefore(slots[i].StartTime) {
			t.Fatalf("slots not in ascending order: %s before %s",
				slots[i-1].StartTime, slots[i].StartTime)
		}
	}
}

func TestFilterElapsedSlots(t *testing.T) {
	slots := []Slot{
		{StartTime: "10:00", EndTime: "10:30"},
		{StartTime: "10:30", EndTime: "11:00"},
		{StartTime: "11:00", EndTime: "11:30"},
	}

	// Слот, начинающийся ровно сейчас, отбрасывается
	filtered := filterElapsedSlots(slots, 10*60+30)
	assertSlotStarts(t, filtered, []types.TimeString{"11:00"})

	filtered = filterElapsedSlots(slots, 10*60+29)
	assertSlotStarts(t, filtered, []types.TimeString{"10:30", "11:00"})
}

// --- фейки для Execute ---

type fakeCompanyRepo struct {
	company *domain.Company
	err     error
}

func (f *fakeCompanyRepo) GetByDomain(_ context.Context, _ string) (*domain.Company, error) {
	return f.company, f.err
}

type fakeSpecialistRepo struct {
	specialist *domain.Specialist
	err        error
}

func (f *fakeSpecialistRepo) GetByID(_ context.Context, _, _ int64) (*domain.Specialist, error) {
	return f.specialist, f.err
}

type fakeServiceRepo struct {
	services []*domain.Service
	err      error
}

func (f *fakeServiceRepo) GetByIDs(_ context.Context, _ int64, _ []int64) ([]*domain.Service, error) {
	return f.services, f.err
}

type fakeScheduleRepo struct {
	schedule *domain.Schedule
	err      error
}

func (f *fakeScheduleRepo) GetBySpecialistAndDay(_ context.Context, _, _ int64, dayOfWeek int) (*domain.Schedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.schedule.DayOfWeek != dayOfWeek {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return f.schedule, nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) FindOccupying(_ context.Context, _, _ int64, _ time.Time, _ *int64) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

func newTestUseCase(schedule *domain.Schedule, bookings []*domain.Booking, now time.Time) *UseCase {
	uc := NewUseCase(
		&fakeCompanyRepo{company: &domain.Company{ID: 1, Domain: "salon.example.com", Timezone: "UTC"}},
		&fakeSpecialistRepo{specialist: &domain.Specialist{ID: 7, CompanyID: 1}},
		&fakeServiceRepo{services: []*domain.Service{{ID: 3, CompanyID: 1, DurationMin: 60}}},
		&fakeScheduleRepo{schedule: schedule},
		&fakeBookingRepo{bookings: bookings},
		time.UTC,
		testLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecuteFreeSlotsFutureDate(t *testing.T) {
	// 2025-11-03 - понедельник
	date := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)

	schedule := &domain.Schedule{
		ID: 1, CompanyID: 1, SpecialistID: 7,
		DayOfWeek: 1, StartTime: "09:00", EndTime: "13:00",
	}
	bookings := []*domain.Booking{occupyingBooking(5, "10:00", "11:00")}

	uc := newTestUseCase(schedule, bookings, now)

	resp, err := uc.Execute(context.Background(), &Request{
		Hostname:     "salon.example.com",
		SpecialistID: 7,
		ServiceIDs:   []int64{3},
		Date:         date,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if resp.DurationMinutes != 60 {
		t.Errorf("DurationMinutes = %d, want 60", resp.DurationMinutes)
	}
	assertSlotStarts(t, resp.Slots, []types.TimeString{"09:00", "11:00", "12:00"})
}

func TestExecuteFreeSlotsClosedDay(t *testing.T) {
	// 2025-11-04 - вторник, расписание есть только на понедельник
	date := time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)

	schedule := &domain.Schedule{
		ID: 1, CompanyID: 1, SpecialistID: 7,
		DayOfWeek: 1, StartTime: "09:00", EndTime: "13:00",
	}

	uc := newTestUseCase(schedule, nil, now)

	resp, err := uc.Execute(context.Background(), &Request{
		Hostname:     "salon.example.com",
		SpecialistID: 7,
		ServiceIDs:   []int64{3},
		Date:         date,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil for a closed day", err)
	}
	if len(resp.Slots) != 0 {
		t.Fatalf("Slots = %v, want empty list for a closed day", resp.Slots)
	}
}

func TestExecuteFreeSlotsTodayFiltersElapsed(t *testing.T) {
	// Запрос на сегодня в 10:00 - слоты 09:00 и 10:00 уже недоступны
	date := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)

	schedule := &domain.Schedule{
		ID: 1, CompanyID: 1, SpecialistID: 7,
		DayOfWeek: 1, StartTime: "09:00", EndTime: "13:00",
	}

	uc := newTestUseCase(schedule, nil, now)

	resp, err := uc.Execute(context.Background(), &Request{
		Hostname:     "salon.example.com",
		SpecialistID: 7,
		ServiceIDs:   []int64{3},
		Date:         date,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	assertSlotStarts(t, resp.Slots, []types.TimeString{"11:00", "12:00"})
}

func TestExecuteFreeSlotsPastDate(t *testing.T) {
	date := time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)

	schedule := &domain.Schedule{
		ID: 1, CompanyID: 1, SpecialistID: 7,
		DayOfWeek: 5, StartTime: "09:00", EndTime: "13:00",
	}

	uc := newTestUseCase(schedule, nil, now)

	resp, err := uc.Execute(context.Background(), &Request{
		Hostname:     "salon.example.com",
		SpecialistID: 7,
		ServiceIDs:   []int64{3},
		Date:         date,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(resp.Slots) != 0 {
		t.Fatalf("Slots = %v, want empty list for a past date", resp.Slots)
	}
}

func TestExecuteFreeSlotsUnknownCompany(t *testing.T) {
	uc := newTestUseCase(&domain.Schedule{DayOfWeek: 1}, nil, time.Now())
	uc.companyRepo = &fakeCompanyRepo{err: companyRepo.ErrCompanyNotFound}

	_, err := uc.Execute(context.Background(), &Request{
		Hostname:     "unknown.example.com",
		SpecialistID: 7,
		ServiceIDs:   []int64{3},
		Date:         time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrCompanyNotFound) {
		t.Fatalf("Execute() error = %v, want ErrCompanyNotFound", err)
	}
}

func TestExecuteFreeSlotsInvalidInput(t *testing.T) {
	uc := newTestUseCase(&domain.Schedule{DayOfWeek: 1}, nil, time.Now())

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "empty hostname", req: &Request{SpecialistID: 7, ServiceIDs: []int64{3}, Date: time.Now()}},
		{name: "no services", req: &Request{Hostname: "x", SpecialistID: 7, Date: time.Now()}},
		{name: "zero date", req: &Request{Hostname: "x", SpecialistID: 7, ServiceIDs: []int64{3}}},
		{name: "negative specialist", req: &Request{Hostname: "x", SpecialistID: -1, ServiceIDs: []int64{3}, Date: time.Now()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("Execute() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}
