package update_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lumibook/booking-service/internal/domain"
	bookingRepo "github.com/lumibook/booking-service/internal/infra/storage/booking"
	"github.com/lumibook/booking-service/internal/service/availability"
	"github.com/lumibook/booking-service/pkg/ptr"
	"github.com/lumibook/booking-service/pkg/types"
)

type memStore struct {
	bookings map[int64]*domain.Booking
}

func (s *memStore) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (s *memStore) Update(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if _, ok := s.bookings[booking.ID]; !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	stored := *booking
	stored.UpdatedAt = time.Now()
	s.bookings[booking.ID] = &stored
	copied := stored
	return &copied, nil
}

func (s *memStore) FindOccupying(_ context.Context, companyID, specialistID int64, date time.Time, excludeID *int64) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.CompanyID != companyID || b.SpecialistID != specialistID {
			continue
		}
		if !b.Date.Equal(date) {
			continue
		}
		if !b.Status.IsOccupying() {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fakeCompanyRepo struct{}

func (fakeCompanyRepo) GetByDomain(_ context.Context, _ string) (*domain.Company, error) {
	return &domain.Company{ID: 1, Domain: "salon.example.com", Timezone: "UTC"}, nil
}

type fakeSpecialistRepo struct{}

func (fakeSpecialistRepo) GetByID(_ context.Context, id, companyID int64) (*domain.Specialist, error) {
	return &domain.Specialist{ID: id, CompanyID: companyID}, nil
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

var testDate = time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)

func newStoreWithBookings() *memStore {
	return &memStore{bookings: map[int64]*domain.Booking{
		1: {
			ID: 1, CompanyID: 1, SpecialistID: 7, ClientID: ptr.Ptr(int64(11)),
			Date: testDate, StartTime: "10:00", EndTime: "11:00",
			Status: domain.StatusPending,
		},
		2: {
			ID: 2, CompanyID: 1, SpecialistID: 7, ClientID: ptr.Ptr(int64(12)),
			Date: testDate, StartTime: "12:00", EndTime: "13:00",
			Status: domain.StatusConfirmed,
		},
	}}
}

func newTestUseCase(store *memStore) *UseCase {
	guard := availability.NewGuard(store, testLogger{})
	uc := NewUseCase(
		store,
		fakeCompanyRepo{},
		fakeSpecialistRepo{},
		guard,
		&fakeTxManager{},
		time.UTC,
		testLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecuteUpdateBookingMovesInterval(t *testing.T) {
	store := newStoreWithBookings()
	uc := newTestUseCase(store)

	resp, err := uc.Execute(context.Background(), &Request{
		Hostname:  "salon.example.com",
		BookingID: 1,
		StartTime: ptr.Ptr(types.TimeString("14:00")),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	// Длительность сохраняется, сдвигается весь интервал
	if resp.StartTime != "14:00" || resp.EndTime != "15:00" {
		t.Errorf("interval = [%s, %s), want [14:00, 15:00)", resp.StartTime, resp.EndTime)
	}
}

func TestExecuteUpdateBookingDoesNotConflictWithItself(t *testing.T) {
	store := newStoreWithBookings()
	uc := newTestUseCase(store)

	// Сдвиг внутри собственного прежнего интервала
	resp, err := uc.Execute(context.Background(), &Request{
		Hostname:  "salon.example.com",
		BookingID: 1,
		StartTime: ptr.Ptr(types.TimeString("10:30")),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v, booking must not conflict with itself", err)
	}
	if resp.StartTime != "10:30" || resp.EndTime != "11:30" {
		t.Errorf("interval = [%s, %s), want [10:30, 11:30)", resp.StartTime, resp.EndTime)
	}
}

func TestExecuteUpdateBookingConflictWithOther(t *testing.T) {
	store := newStoreWithBookings()
	uc := newTestUseCase(store)

	// Перенос на интервал, пересекающийся с бронью id=2 [12:00, 13:00)
	_, err := uc.Execute(context.Background(), &Request{
		Hostname:  "salon.example.com",
		BookingID: 1,
		StartTime: ptr.Ptr(types.TimeString("12:30")),
	})
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("Execute() error = %v, want ErrSlotTaken", err)
	}

	// Бронирование не изменилось
	if store.bookings[1].StartTime != "10:00" {
		t.Errorf("booking start = %s, want unchanged 10:00", store.bookings[1].StartTime)
	}
}

func TestExecuteUpdateBookingCommentOnlySkipsGuard(t *testing.T) {
	store := newStoreWithBookings()
	// Бронь id=2 пересекалась бы с id=1 при любой проверке с её же интервалом,
	// но изменение комментария проверку доступности не запускает
	store.bookings[1].StartTime = "12:00"
	store.bookings[1].EndTime = "13:00"

	uc := newTestUseCase(store)

	resp, err := uc.Execute(context.Background(), &Request{
		Hostname:  "salon.example.com",
		BookingID: 2,
		Comment:   ptr.Ptr("перенести кресло к окну"),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v, comment-only update must skip the guard", err)
	}
	if resp.Comment == nil || *resp.Comment != "перенести кресло к окну" {
		t.Errorf("Comment = %v, want updated", resp.Comment)
	}
	if resp.StartTime != "12:00" {
		t.Errorf("StartTime = %s, want unchanged 12:00", resp.StartTime)
	}
}

func TestExecuteUpdateBookingTerminalStatus(t *testing.T) {
	store := newStoreWithBookings()
	store.bookings[1].Status = domain.StatusCancelled

	uc := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), &Request{
		Hostname:  "salon.example.com",
		BookingID: 1,
		StartTime: ptr.Ptr(types.TimeString("15:00")),
	})
	if !errors.Is(err, ErrBookingNotUpdatable) {
		t.Fatalf("Execute() error = %v, want ErrBookingNotUpdatable", err)
	}
}

func TestExecuteUpdateBookingForeignCompany(t *testing.T) {
	store := newStoreWithBookings()
	store.bookings[1].CompanyID = 99

	uc := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), &Request{
		Hostname:  "salon.example.com",
		BookingID: 1,
		StartTime: ptr.Ptr(types.TimeString("15:00")),
	})
	if !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("Execute() error = %v, want ErrBookingNotFound", err)
	}
}

func TestExecuteUpdateBookingNotFound(t *testing.T) {
	uc := newTestUseCase(newStoreWithBookings())

	_, err := uc.Execute(context.Background(), &Request{
		Hostname:  "salon.example.com",
		BookingID: 404,
	})
	if !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("Execute() error = %v, want ErrBookingNotFound", err)
	}
}
