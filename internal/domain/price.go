package domain

import (
	"context"
	"time"
)

// PriceComponent is a named additive fee attachable to a movie, a room,
// or a specific screening.
type PriceComponent struct {
	ID   int
	Name string
	Fee  int
}

// ScreeningComponents holds the price components attached to a
// screening and to its room and movie. Components sharing a name across
// owners all contribute; there is no deduplication.
type ScreeningComponents struct {
	Screening []PriceComponent
	Room      []PriceComponent
	Movie     []PriceComponent
}

type PriceComponentRepository interface {
	Create(ctx context.Context, component *PriceComponent) error
	AttachToMovie(ctx context.Context, componentName, movieTitle string) error
	AttachToRoom(ctx context.Context, componentName, roomName string) error
	AttachToScreening(ctx context.Context, componentName, movieTitle, roomName string, startAt time.Time) error
	GetByScreening(ctx context.Context, screeningID int) (*ScreeningComponents, error)
}
