package domain

import (
	"context"
	"time"
)

// Screening is one scheduled showing of a movie in a room at a start
// time. (MovieID, RoomID, StartAt) is its natural key and is never
// reassigned. Duration is denormalized from the movie so that clash
// checks need no extra lookup.
type Screening struct {
	ID          int
	MovieID     int
	MovieTitle  string
	MovieGenre  string
	Duration    int // minutes
	RoomID      int
	RoomName    string
	RoomRows    int
	RoomColumns int
	StartAt     time.Time
}

// EndAt is the showing end without the trailing break.
func (s Screening) EndAt() time.Time {
	return s.StartAt.Add(time.Duration(s.Duration) * time.Minute)
}

type ScreeningRepository interface {
	// Create inserts the screening after running clashCheck against the
	// screenings already scheduled in the same room. The check and the
	// insert are atomic with respect to other creations in that room.
	Create(ctx context.Context, screening *Screening, clashCheck func(existing []Screening) error) error
	GetByNaturalKey(ctx context.Context, movieTitle, roomName string, startAt time.Time) (*Screening, error)
	GetAll(ctx context.Context) ([]Screening, error)
	Delete(ctx context.Context, movieTitle, roomName string, startAt time.Time) error
}
