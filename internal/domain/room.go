package domain

import "context"

type Room struct {
	ID      int
	Name    string
	Rows    int
	Columns int
}

// Capacity is the number of seats in the room's grid.
func (r Room) Capacity() int {
	return r.Rows * r.Columns
}

type RoomRepository interface {
	Create(ctx context.Context, room *Room) error
	GetByName(ctx context.Context, name string) (*Room, error)
	GetAll(ctx context.Context) ([]Room, error)
	Update(ctx context.Context, room *Room) error
	Delete(ctx context.Context, name string) error
}
