package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lumibook/booking-service/internal/domain"
	bookingRepo "github.com/lumibook/booking-service/internal/infra/storage/booking"
	"github.com/lumibook/booking-service/internal/service/bookings/models"
	"github.com/lumibook/booking-service/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings   map[int64]*domain.Booking
	updated    map[int64]domain.BookingStatus
	lastFilter *domain.CompanyBookingsFilter
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{
		bookings: make(map[int64]*domain.Booking),
		updated:  make(map[int64]domain.BookingStatus),
	}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByCompanyWithFilter(_ context.Context, filter domain.CompanyBookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = &filter
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.CompanyID != filter.CompanyID {
			continue
		}
		if filter.SpecialistID != nil && b.SpecialistID != *filter.SpecialistID {
			continue
		}
		if filter.OnlyBlocks && !b.IsBlock {
			continue
		}
		if filter.OnlyOccupying && !b.Status.IsOccupying() {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	f.updated[id] = status
	return nil
}

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)

func testBooking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID: id, CompanyID: 1, SpecialistID: 7, ClientID: ptr.Ptr(int64(11)),
		Date: testDate, StartTime: "10:00", EndTime: "11:00", Status: status,
	}
}

func TestChangeStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.BookingStatus
		to      string
		wantErr error
	}{
		{name: "pending to confirmed", from: domain.StatusPending, to: "CONFIRMED"},
		{name: "pending to cancelled", from: domain.StatusPending, to: "CANCELLED"},
		{name: "confirmed to completed", from: domain.StatusConfirmed, to: "COMPLETED"},
		{name: "confirmed to cancelled", from: domain.StatusConfirmed, to: "CANCELLED"},
		{name: "pending to completed forbidden", from: domain.StatusPending, to: "COMPLETED", wantErr: ErrInvalidTransition},
		{name: "cancelled is terminal", from: domain.StatusCancelled, to: "CONFIRMED", wantErr: ErrInvalidTransition},
		{name: "completed is terminal", from: domain.StatusCompleted, to: "CANCELLED", wantErr: ErrInvalidTransition},
		{name: "unknown status", from: domain.StatusPending, to: "ARCHIVED", wantErr: ErrInvalidStatus},
		{name: "lowercase rejected", from: domain.StatusPending, to: "confirmed", wantErr: ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeBookingRepo(testBooking(1, tt.from))
			svc := NewService(repo, testLogger{})

			resp, err := svc.ChangeStatus(context.Background(), 1, 1, tt.to)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ChangeStatus() error = %v, want %v", err, tt.wantErr)
				}
				if len(repo.updated) != 0 {
					t.Fatal("status must not be updated on forbidden transition")
				}
				return
			}
			if err != nil {
				t.Fatalf("ChangeStatus() error = %v", err)
			}
			if resp.Status != tt.to {
				t.Errorf("Status = %s, want %s", resp.Status, tt.to)
			}
		})
	}
}

func TestChangeStatusForeignCompany(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusPending))
	svc := NewService(repo, testLogger{})

	_, err := svc.ChangeStatus(context.Background(), 99, 1, "CONFIRMED")
	if !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("ChangeStatus() error = %v, want ErrBookingNotFound", err)
	}
}

func TestGetByID(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
	svc := NewService(repo, testLogger{})

	resp, err := svc.GetByID(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if resp.ID != 1 || resp.Date != "2025-11-10" || resp.StartTime != "10:00" {
		t.Errorf("unexpected response: %+v", resp)
	}

	if _, err := svc.GetByID(context.Background(), 2, 1); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("GetByID(foreign company) error = %v, want ErrBookingNotFound", err)
	}
	if _, err := svc.GetByID(context.Background(), 1, 404); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("GetByID(missing) error = %v, want ErrBookingNotFound", err)
	}
}

func TestGetBlockedTimes(t *testing.T) {
	block := &domain.Booking{
		ID: 2, CompanyID: 1, SpecialistID: 7,
		Date: testDate, StartTime: "13:00", EndTime: "14:00",
		Status: domain.StatusConfirmed, IsBlock: true,
	}
	repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed), block)
	svc := NewService(repo, testLogger{})

	resp, err := svc.GetBlockedTimes(context.Background(), 1, 7, nil)
	if err != nil {
		t.Fatalf("GetBlockedTimes() error = %v", err)
	}
	if resp.Total != 1 || !resp.Bookings[0].IsBlock {
		t.Fatalf("GetBlockedTimes() = %+v, want only the block", resp)
	}
	if !repo.lastFilter.OnlyBlocks || !repo.lastFilter.OnlyOccupying {
		t.Error("filter must request only occupying blocks")
	}
}

func TestGetCompanyBookingsInvalidStatusFilter(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := NewService(repo, testLogger{})

	_, err := svc.GetCompanyBookings(context.Background(), &models.GetCompanyBookingsRequest{
		CompanyID: 1,
		Status:    ptr.Ptr("NOPE"),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("GetCompanyBookings() error = %v, want ErrInvalidInput", err)
	}
}
