package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/metinatakli/cinema-ticket-service/internal/domain"
)

// DefaultBasePrice is the per-seat base price in HUF before any price
// components are applied.
const DefaultBasePrice = 1500

// PriceService composes a per-seat price from the base price and the
// additive components attached to a screening, its room and its movie.
// The base price is a process-wide scalar; readers take a snapshot, so
// an update never tears a price in half but is also never retroactive
// to committed bookings.
type PriceService struct {
	componentRepo domain.PriceComponentRepository
	screeningRepo domain.ScreeningRepository
	basePrice     atomic.Int64
}

func NewPriceService(componentRepo domain.PriceComponentRepository, screeningRepo domain.ScreeningRepository) *PriceService {
	s := &PriceService{
		componentRepo: componentRepo,
		screeningRepo: screeningRepo,
	}
	s.basePrice.Store(DefaultBasePrice)

	return s
}

func (s *PriceService) BasePrice() int {
	return int(s.basePrice.Load())
}

// UpdateBasePrice replaces the base price. In-flight and committed
// bookings keep the price they were calculated with.
func (s *PriceService) UpdateBasePrice(price int) {
	s.basePrice.Store(int64(price))
}

// PerSeatPrice returns the price of one seat for the screening:
// base price plus the fees of every attached component. Summation
// order is irrelevant and duplicate component names across owners all
// contribute.
func (s *PriceService) PerSeatPrice(ctx context.Context, screening *domain.Screening) (int, error) {
	components, err := s.componentRepo.GetByScreening(ctx, screening.ID)
	if err != nil {
		return 0, err
	}

	price := s.BasePrice()

	for _, group := range [][]domain.PriceComponent{components.Screening, components.Room, components.Movie} {
		for _, component := range group {
			price += component.Fee
		}
	}

	return price, nil
}

// Quote prices a prospective booking of seatCount seats without
// committing anything.
func (s *PriceService) Quote(ctx context.Context, movieTitle, roomName string, startAt time.Time, seatCount int) (int, error) {
	screening, err := s.screeningRepo.GetByNaturalKey(ctx, movieTitle, roomName, startAt)
	if err != nil {
		return 0, err
	}

	perSeat, err := s.PerSeatPrice(ctx, screening)
	if err != nil {
		return 0, err
	}

	return perSeat * seatCount, nil
}

func (s *PriceService) CreateComponent(ctx context.Context, name string, fee int) error {
	return s.componentRepo.Create(ctx, &domain.PriceComponent{Name: name, Fee: fee})
}

func (s *PriceService) AttachToMovie(ctx context.Context, componentName, movieTitle string) error {
	return s.componentRepo.AttachToMovie(ctx, componentName, movieTitle)
}

func (s *PriceService) AttachToRoom(ctx context.Context, componentName, roomName string) error {
	return s.componentRepo.AttachToRoom(ctx, componentName, roomName)
}

func (s *PriceService) AttachToScreening(ctx context.Context, componentName, movieTitle, roomName string, startAt time.Time) error {
	return s.componentRepo.AttachToScreening(ctx, componentName, movieTitle, roomName, startAt)
}
