package domain

import (
	"errors"
	"strings"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrAccountNotFound   = errors.New("the user does not exist")
	ErrMovieNotFound     = errors.New("the movie does not exist")
	ErrRoomNotFound      = errors.New("the room does not exist")
	ErrScreeningNotFound = errors.New("the screening does not exist")
	ErrComponentNotFound = errors.New("the price component does not exist")

	ErrAccountExists   = errors.New("account already exists")
	ErrMovieExists     = errors.New("movie already exists")
	ErrRoomExists      = errors.New("room already exists")
	ErrScreeningExists = errors.New("screening already exists")
	ErrComponentExists = errors.New("price component already exists")

	ErrSeatAlreadyTaken = errors.New("seat is already taken")
)

// ClashError reports a scheduling conflict between a candidate screening
// and one already occupying the room.
type ClashError struct {
	Message string
}

func (e *ClashError) Error() string {
	return e.Message
}

// BookingRejectedError aggregates every seat validation failure of a
// booking request so the caller can report all of them at once.
type BookingRejectedError struct {
	Reasons []string
}

func (e *BookingRejectedError) Error() string {
	return strings.Join(e.Reasons, "; ")
}
