package mocks

import (
	"context"

	"github.com/metinatakli/cinema-ticket-service/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepo struct {
	mock.Mock
	domain.BookingRepository
}

func (m *MockBookingRepo) CreateAll(ctx context.Context, bookings []domain.Booking) error {
	args := m.Called(ctx, bookings)
	return args.Error(0)
}

func (m *MockBookingRepo) GetSeatsByScreening(ctx context.Context, screeningID int) ([]domain.Seat, error) {
	args := m.Called(ctx, screeningID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockBookingRepo) GetAllByAccount(ctx context.Context, accountID int) ([]domain.AccountBooking, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBooking), args.Error(1)
}
