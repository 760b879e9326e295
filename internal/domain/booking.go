package domain

import (
	"context"
	"time"
)

// Booking is a committed assignment of one seat, for one screening, to
// one account, at the price locked in at commit time. It is never
// mutated after creation and is removed only when its screening is
// deleted.
type Booking struct {
	ScreeningID int
	Seat        Seat
	AccountID   int
	Price       int
	CreatedAt   time.Time
}

// AccountBooking is a booking joined with its screening metadata, as
// needed for per-account listings.
type AccountBooking struct {
	ScreeningID int
	MovieTitle  string
	RoomName    string
	StartAt     time.Time
	Seat        Seat
	Price       int
}

type BookingRepository interface {
	// CreateAll persists the bookings as a single unit. If any seat of
	// the batch is already booked for its screening, nothing is written
	// and ErrSeatAlreadyTaken is returned.
	CreateAll(ctx context.Context, bookings []Booking) error
	GetSeatsByScreening(ctx context.Context, screeningID int) ([]Seat, error)
	GetAllByAccount(ctx context.Context, accountID int) ([]AccountBooking, error)
}
