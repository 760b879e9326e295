package service

import (
	"context"
	"fmt"
	"time"

	"github.com/metinatakli/cinema-ticket-service/internal/domain"
)

// ScreeningService schedules and removes screenings. Creation runs the
// clash check and the insert atomically per room, so two concurrent
// creations for overlapping slots in one room cannot both succeed.
type ScreeningService struct {
	movieRepo     domain.MovieRepository
	roomRepo      domain.RoomRepository
	screeningRepo domain.ScreeningRepository
	clash         ClashDetector
}

func NewScreeningService(
	movieRepo domain.MovieRepository,
	roomRepo domain.RoomRepository,
	screeningRepo domain.ScreeningRepository,
) *ScreeningService {
	return &ScreeningService{
		movieRepo:     movieRepo,
		roomRepo:      roomRepo,
		screeningRepo: screeningRepo,
	}
}

func (s *ScreeningService) Create(ctx context.Context, movieTitle, roomName string, startAt time.Time) error {
	movie, err := s.movieRepo.GetByTitle(ctx, movieTitle)
	if err != nil {
		return err
	}

	room, err := s.roomRepo.GetByName(ctx, roomName)
	if err != nil {
		return err
	}

	screening := &domain.Screening{
		MovieID:  movie.ID,
		RoomID:   room.ID,
		Duration: movie.Duration,
		StartAt:  startAt,
	}

	return s.screeningRepo.Create(ctx, screening, func(existing []domain.Screening) error {
		return s.clash.CheckAll(movie.Duration, startAt, existing)
	})
}

// Delete removes the screening; its bookings go with it.
func (s *ScreeningService) Delete(ctx context.Context, movieTitle, roomName string, startAt time.Time) error {
	return s.screeningRepo.Delete(ctx, movieTitle, roomName, startAt)
}

// List renders every scheduled screening, one line each.
func (s *ScreeningService) List(ctx context.Context) ([]string, error) {
	screenings, err := s.screeningRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	lines := make([]string, len(screenings))
	for i, screening := range screenings {
		lines[i] = fmt.Sprintf("%s (%s, %d minutes), screened in room %s, at %s",
			screening.MovieTitle,
			screening.MovieGenre,
			screening.Duration,
			screening.RoomName,
			screening.StartAt.Format(startTimeLayout))
	}

	return lines, nil
}
