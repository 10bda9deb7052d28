package create_booking

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

// memStore хранит бронирования в памяти. Методы не берут мьютекс сами:
// сериализацию обеспечивает fakeTxManager, как это делает serializable
// изоляция в Postgres.
type memStore struct {
	nextID   int64
	bookings []*domain.Booking
}

func (s *memStore) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s.nextID++
	stored := *booking
	stored.ID = s.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	s.bookings = append(s.bookings, &stored)
	return &stored, nil
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

// fakeTxManager выполняет callback под общим мьютексом: два конкурентных
// "транзакционных" блока никогда не видят промежуточное состояние друг друга
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

type fakeClientRepo struct{}

func (fakeClientRepo) GetByID(_ context.Context, id, companyID int64) (*domain.Client, error) {
	return &domain.Client{ID: id, CompanyID: companyID}, nil
}

type fakeServiceRepo struct {
	durations map[int64]int
}

func (f *fakeServiceRepo) GetByIDs(_ context.Context, companyID int64, ids []int64) ([]*domain.Service, error) {
	services := make([]*domain.Service, len(ids))
	for i, id := range ids {
		services[i] = &domain.Service{ID: id, CompanyID: companyID, DurationMin: f.durations[id]}
	}
	return services, nil
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

func newTestUseCase(store *memStore, now time.Time) *UseCase {
	guard := availability.NewGuard(store, testLogger{})
	uc := NewUseCase(
		store,
		fakeCompanyRepo{},
		fakeSpecialistRepo{},
		fakeClientRepo{},
		&fakeServiceRepo{durations: map[int64]int{3: 60, 4: 30}},
		guard,
		&fakeTxManager{},
		time.UTC,
		testLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func validRequest() *Request {
	return &Request{
		Hostname:     "salon.example.com",
		ClientID:     11,
		SpecialistID: 7,
		ServiceIDs:   []int64{3},
		Date:         time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC),
		StartTime:    "10:00",
	}
}

func TestExecuteCreateBooking(t *testing.T) {
	store := &memStore{}
	uc := newTestUseCase(store, time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if resp.Status != string(domain.StatusPending) {
		t.Errorf("Status = %s, want %s", resp.Status, domain.StatusPending)
	}
	if resp.StartTime != "10:00" || resp.EndTime != "11:00" {
		t.Errorf("interval = [%s, %s), want [10:00, 11:00)", resp.StartTime, resp.EndTime)
	}
	if resp.ClientID == nil || *resp.ClientID != 11 {
		t.Errorf("ClientID = %v, want 11", resp.ClientID)
	}
	if len(store.bookings) != 1 {
		t.Fatalf("stored bookings = %d, want 1", len(store.bookings))
	}
}

func TestExecuteCreateBookingSumsServiceDurations(t *testing.T) {
	store := &memStore{}
	uc := newTestUseCase(store, time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC))

	req := validRequest()
	req.ServiceIDs = []int64{3, 4} // 60 + 30 минут

	resp, err := uc.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if resp.EndTime != "11:30" {
		t.Errorf("EndTime = %s, want 11:30", resp.EndTime)
	}
}

func TestExecuteCreateBookingOverlapRejected(t *testing.T) {
	store := &memStore{}
	now := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(store, now)

	if _, err := uc.Execute(context.Background(), validRequest()); err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}

	// Любое пересечение с существующей бронью [10:00, 11:00) отклоняется
	for _, start := range []types.TimeString{"10:00", "10:30", "09:30"} {
		req := validRequest()
		req.StartTime = start

		_, err := uc.Execute(context.Background(), req)
		if !errors.Is(err, ErrSlotTaken) {
			t.Errorf("Execute(start=%s) error = %v, want ErrSlotTaken", start, err)
		}
	}

	// Граничащая бронь [11:00, 12:00) проходит
	req := validRequest()
	req.StartTime = "11:00"
	if _, err := uc.Execute(context.Background(), req); err != nil {
		t.Errorf("Execute(start=11:00) error = %v, want nil", err)
	}
}

// Два конкурентных запроса на один и тот же слот: ровно один создаёт бронь,
// второй получает конфликт.
func TestExecuteCreateBookingConcurrentSameSlot(t *testing.T) {
	store := &memStore{}
	uc := newTestUseCase(store, time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC))

	var wg sync.WaitGroup
	results := make([]error, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = uc.Execute(context.Background(), validRequest())
		}(i)
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSlotTaken):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if succeeded != 1 || conflicted != 1 {
		t.Fatalf("succeeded=%d, conflicted=%d, want exactly one of each", succeeded, conflicted)
	}
	if len(store.bookings) != 1 {
		t.Fatalf("stored bookings = %d, want 1", len(store.bookings))
	}
}

func TestExecuteCreateBookingCrossesMidnight(t *testing.T) {
	store := &memStore{}
	uc := newTestUseCase(store, time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC))

	req := validRequest()
	req.StartTime = "23:30" // 60 минут перешагивают полночь

	_, err := uc.Execute(context.Background(), req)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Execute() error = %v, want ErrInvalidInput", err)
	}
	if len(store.bookings) != 0 {
		t.Fatalf("stored bookings = %d, want 0", len(store.bookings))
	}
}

func TestExecuteCreateBookingPastTime(t *testing.T) {
	store := &memStore{}
	// Сейчас 2025-11-10 10:00 - запрос на 10:00 того же дня уже опоздал
	uc := newTestUseCase(store, time.Date(2025, 11, 10, 10, 0, 0, 0, time.UTC))

	req := validRequest()

	_, err := uc.Execute(context.Background(), req)
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("Execute() error = %v, want ErrInvalidDate", err)
	}

	// Вчерашняя дата отклоняется целиком
	req = validRequest()
	req.Date = time.Date(2025, 11, 9, 0, 0, 0, 0, time.UTC)
	req.StartTime = "23:00"

	_, err = uc.Execute(context.Background(), req)
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("Execute() error = %v, want ErrInvalidDate", err)
	}
}
