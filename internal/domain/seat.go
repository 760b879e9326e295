package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Seat is a (row, column) coordinate within a room's seating grid.
// Rows and columns are 1-based.
type Seat struct {
	Row    int
	Column int
}

func (s Seat) String() string {
	return fmt.Sprintf("(%d,%d)", s.Row, s.Column)
}

// Less orders seats row-major: row ascending, then column ascending.
// The ordering is used for deterministic receipt and listing output.
func (s Seat) Less(other Seat) bool {
	if s.Row != other.Row {
		return s.Row < other.Row
	}

	return s.Column < other.Column
}

// SortSeats sorts seats in place into row-major order.
func SortSeats(seats []Seat) {
	sort.Slice(seats, func(i, j int) bool {
		return seats[i].Less(seats[j])
	})
}

// SeatsString renders seats as "(r1,c1), (r2,c2)" in the given order.
func SeatsString(seats []Seat) string {
	parts := make([]string, len(seats))
	for i, seat := range seats {
		parts[i] = seat.String()
	}

	return strings.Join(parts, ", ")
}
