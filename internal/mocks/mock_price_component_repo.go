package mocks

import (
	"context"
	"time"

	"github.com/metinatakli/cinema-ticket-service/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockPriceComponentRepo struct {
	mock.Mock
	domain.PriceComponentRepository
}

func (m *MockPriceComponentRepo) Create(ctx context.Context, component *domain.PriceComponent) error {
	args := m.Called(ctx, component)
	return args.Error(0)
}

func (m *MockPriceComponentRepo) AttachToMovie(ctx context.Context, componentName, movieTitle string) error {
	args := m.Called(ctx, componentName, movieTitle)
	return args.Error(0)
}

func (m *MockPriceComponentRepo) AttachToRoom(ctx context.Context, componentName, roomName string) error {
	args := m.Called(ctx, componentName, roomName)
	return args.Error(0)
}

func (m *MockPriceComponentRepo) AttachToScreening(ctx context.Context, componentName, movieTitle, roomName string, startAt time.Time) error {
	args := m.Called(ctx, componentName, movieTitle, roomName, startAt)
	return args.Error(0)
}

func (m *MockPriceComponentRepo) GetByScreening(ctx context.Context, screeningID int) (*domain.ScreeningComponents, error) {
	args := m.Called(ctx, screeningID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScreeningComponents), args.Error(1)
}
