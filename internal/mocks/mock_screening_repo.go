package mocks

import (
	"context"
	"time"

	"github.com/metinatakli/cinema-ticket-service/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockScreeningRepo struct {
	mock.Mock
	domain.ScreeningRepository

	// ExistingInRoom is handed to the clash check callback passed to
	// Create, standing in for the screenings already persisted in the
	// candidate's room.
	ExistingInRoom []domain.Screening
}

func (m *MockScreeningRepo) Create(ctx context.Context, screening *domain.Screening, clashCheck func(existing []domain.Screening) error) error {
	if err := clashCheck(m.ExistingInRoom); err != nil {
		return err
	}

	args := m.Called(ctx, screening)
	return args.Error(0)
}

func (m *MockScreeningRepo) GetByNaturalKey(ctx context.Context, movieTitle, roomName string, startAt time.Time) (*domain.Screening, error) {
	args := m.Called(ctx, movieTitle, roomName, startAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Screening), args.Error(1)
}

func (m *MockScreeningRepo) GetAll(ctx context.Context) ([]domain.Screening, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Screening), args.Error(1)
}

func (m *MockScreeningRepo) Delete(ctx context.Context, movieTitle, roomName string, startAt time.Time) error {
	args := m.Called(ctx, movieTitle, roomName, startAt)
	return args.Error(0)
}
