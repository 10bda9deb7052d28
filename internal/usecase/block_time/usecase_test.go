package block_time

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lumibook/booking-service/internal/domain"
	"github.com/lumibook/booking-service/internal/service/availability"
	"github.com/lumibook/booking-service/pkg/types"
)

type memStore struct {
	nextID   int64
	bookings []*domain.Booking
}

func (s *memStore) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s.nextID++
	stored := *booking
	stored.ID = s.nextID
	stored.CreatedAt = time.Now()
	s.bookings = append(s.bookings, &stored)
	return &stored, nil
}

func (s *memStore) FindOccupying(_ context.Context, companyID, specialistID int64, date time.Time, excludeID *int64) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.CompanyID != companyID || b.SpecialistID != specialistID {
			continue
		}
		if !b.Date.Equal(date) || !b.Status.IsOccupying() {
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
	return &domain.Company{ID: 1, Domain: "salon.example.com"}, nil
}

type fakeSpecialistRepo struct{}

func (fakeSpecialistRepo) GetByID(_ context.Context, id, companyID int64) (*domain.Specialist, error) {
	return &domain.Specialist{ID: id, CompanyID: companyID}, nil
}

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

func newTestUseCase(store *memStore) *UseCase {
	guard := availability.NewGuard(store, testLogger{})
	return NewUseCase(store, fakeCompanyRepo{}, fakeSpecialistRepo{}, guard, &fakeTxManager{}, testLogger{})
}

func blockRequest(start, end types.TimeString) *Request {
	return &Request{
		Hostname:     "salon.example.com",
		SpecialistID: 7,
		Date:         time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC),
		StartTime:    start,
		EndTime:      end,
	}
}

func TestExecuteBlockTime(t *testing.T) {
	store := &memStore{}
	uc := newTestUseCase(store)

	resp, err := uc.Execute(context.Background(), blockRequest("13:00", "14:00"))
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !resp.IsBlock {
		t.Error("IsBlock = false, want true")
	}
	if resp.Status != string(domain.StatusConfirmed) {
		t.Errorf("Status = %s, want %s", resp.Status, domain.StatusConfirmed)
	}
	if len(store.bookings) != 1 || store.bookings[0].ClientID != nil {
		t.Error("block must be stored without a client")
	}
}

// Блокировка занимает слот наравне с клиентской записью: вторая блокировка
// или запись на тот же интервал получает конфликт.
func TestExecuteBlockTimeConflicts(t *testing.T) {
	store := &memStore{}
	uc := newTestUseCase(store)

	if _, err := uc.Execute(context.Background(), blockRequest("13:00", "14:00")); err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}

	_, err := uc.Execute(context.Background(), blockRequest("13:30", "14:30"))
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("Execute() error = %v, want ErrSlotTaken", err)
	}

	// Граничащая блокировка проходит
	if _, err := uc.Execute(context.Background(), blockRequest("14:00", "15:00")); err != nil {
		t.Fatalf("adjacent Execute() error = %v, want nil", err)
	}
}

func TestExecuteBlockTimeInvalidInterval(t *testing.T) {
	uc := newTestUseCase(&memStore{})

	tests := []struct {
		name       string
		start, end types.TimeString
	}{
		{name: "zero length", start: "13:00", end: "13:00"},
		{name: "inverted", start: "14:00", end: "13:00"},
		{name: "bad format", start: "25:00", end: "26:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), blockRequest(tt.start, tt.end))
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("Execute() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}
