package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-ticket-service/internal/domain"
)

// startTimeLayout is the fixed format used whenever a screening start
// time is rendered for humans.
const startTimeLayout = "2006-01-02 15:04"

// Receipt is the outcome of a successful multi-seat booking. Seats are
// echoed back in row-major order.
type Receipt struct {
	Reference    string
	MovieTitle   string
	RoomName     string
	StartAt      time.Time
	Seats        []domain.Seat
	PerSeatPrice int
	TotalPrice   int
}

// BookingService validates and atomically commits multi-seat bookings
// against the shared seat inventory of a screening.
type BookingService struct {
	accountRepo   domain.AccountRepository
	screeningRepo domain.ScreeningRepository
	bookingRepo   domain.BookingRepository
	prices        *PriceService
}

func NewBookingService(
	accountRepo domain.AccountRepository,
	screeningRepo domain.ScreeningRepository,
	bookingRepo domain.BookingRepository,
	prices *PriceService,
) *BookingService {
	return &BookingService{
		accountRepo:   accountRepo,
		screeningRepo: screeningRepo,
		bookingRepo:   bookingRepo,
		prices:        prices,
	}
}

// Book resolves the screening, validates every requested seat, prices
// the booking and commits all seats as one unit. On any rejection the
// data model is left unchanged.
func (s *BookingService) Book(
	ctx context.Context,
	username, movieTitle, roomName string,
	startAt time.Time,
	seats []domain.Seat,
) (*Receipt, error) {

	account, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	screening, err := s.screeningRepo.GetByNaturalKey(ctx, movieTitle, roomName, startAt)
	if err != nil {
		return nil, err
	}

	reasons, err := s.ValidateSeats(ctx, screening, seats)
	if err != nil {
		return nil, err
	}
	if len(reasons) > 0 {
		return nil, &domain.BookingRejectedError{Reasons: reasons}
	}

	perSeatPrice, err := s.prices.PerSeatPrice(ctx, screening)
	if err != nil {
		return nil, err
	}

	bookings := make([]domain.Booking, len(seats))
	for i, seat := range seats {
		bookings[i] = domain.Booking{
			ScreeningID: screening.ID,
			Seat:        seat,
			AccountID:   account.ID,
			Price:       perSeatPrice,
		}
	}

	err = s.bookingRepo.CreateAll(ctx, bookings)
	if err != nil {
		if errors.Is(err, domain.ErrSeatAlreadyTaken) {
			// Lost a race on at least one seat. Re-read the occupancy so
			// the caller sees which seats the winner took rather than a
			// generic conflict.
			reasons, verr := s.ValidateSeats(ctx, screening, seats)
			if verr == nil && len(reasons) > 0 {
				return nil, &domain.BookingRejectedError{Reasons: reasons}
			}
		}

		return nil, err
	}

	sorted := make([]domain.Seat, len(seats))
	copy(sorted, seats)
	domain.SortSeats(sorted)

	return &Receipt{
		Reference:    uuid.NewString(),
		MovieTitle:   screening.MovieTitle,
		RoomName:     screening.RoomName,
		StartAt:      screening.StartAt,
		Seats:        sorted,
		PerSeatPrice: perSeatPrice,
		TotalPrice:   perSeatPrice * len(seats),
	}, nil
}

// ValidateSeats checks every requested seat against the room geometry
// and the committed bookings of the screening. It never fails fast: the
// returned slice holds one message per problem found, and a single seat
// can contribute both a bounds and an occupancy message. An empty slice
// means the request is bookable.
func (s *BookingService) ValidateSeats(ctx context.Context, screening *domain.Screening, seats []domain.Seat) ([]string, error) {
	booked, err := s.bookingRepo.GetSeatsByScreening(ctx, screening.ID)
	if err != nil {
		return nil, err
	}

	taken := make(map[domain.Seat]bool, len(booked))
	for _, seat := range booked {
		taken[seat] = true
	}

	var reasons []string

	for _, seat := range seats {
		if seat.Row > screening.RoomRows || seat.Column > screening.RoomColumns {
			reasons = append(reasons, fmt.Sprintf("Seat (%d,%d) is invalid, room has %d rows and %d columns",
				seat.Row, seat.Column, screening.RoomRows, screening.RoomColumns))
		}
		if taken[seat] {
			reasons = append(reasons, fmt.Sprintf("Seat (%d,%d) is already taken", seat.Row, seat.Column))
		}
	}

	return reasons, nil
}

// ListByAccount renders one line per screening the account holds
// bookings for, seats sorted row-major, groups ordered by start time
// and then movie title.
func (s *BookingService) ListByAccount(ctx context.Context, username string) ([]string, error) {
	account, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.GetAllByAccount(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	groups := make(map[int][]domain.AccountBooking)
	for _, booking := range bookings {
		groups[booking.ScreeningID] = append(groups[booking.ScreeningID], booking)
	}

	summaries := make([]domain.AccountBooking, 0, len(groups))
	for _, group := range groups {
		summaries = append(summaries, group[0])
	}

	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].StartAt.Equal(summaries[j].StartAt) {
			return summaries[i].StartAt.Before(summaries[j].StartAt)
		}

		return summaries[i].MovieTitle < summaries[j].MovieTitle
	})

	lines := make([]string, 0, len(summaries))

	for _, summary := range summaries {
		group := groups[summary.ScreeningID]

		seats := make([]domain.Seat, len(group))
		total := 0
		for i, booking := range group {
			seats[i] = booking.Seat
			total += booking.Price
		}
		domain.SortSeats(seats)

		lines = append(lines, fmt.Sprintf("Seats %s on %s in room %s starting at %s for %d HUF",
			domain.SeatsString(seats),
			summary.MovieTitle,
			summary.RoomName,
			summary.StartAt.Format(startTimeLayout),
			total))
	}

	return lines, nil
}
