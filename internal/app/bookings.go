package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/metinatakli/cinema-ticket-service/internal/domain"
)

func (app *Application) CreateBooking(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	accountId := app.contextGetAccountId(r)

	account, err := app.accountRepo.GetById(r.Context(), accountId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	var input BookingRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	startAt, err := parseStartTime(input.StartTime)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	seats := make([]domain.Seat, len(input.Seats))
	for i, seat := range input.Seats {
		seats[i] = domain.Seat{Row: seat.Row, Column: seat.Column}
	}

	receipt, err := app.bookings.Book(r.Context(), account.Username, input.MovieTitle, input.RoomName, startAt, seats)
	if err != nil {
		var rejection *domain.BookingRejectedError

		switch {
		case errors.As(err, &rejection):
			logger.Warn("booking rejected", "reasons", len(rejection.Reasons))
			app.rejectionResponse(w, r, "The booking was rejected", rejection.Reasons)
		case errors.Is(err, domain.ErrSeatAlreadyTaken):
			app.rejectionResponse(w, r, "The booking was rejected", []string{"One or more requested seats are already taken"})
		case errors.Is(err, domain.ErrScreeningNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	go func(ctx context.Context) {
		gLogger := app.contextGetLogger(r.WithContext(ctx))

		defer func() {
			if err := recover(); err != nil {
				gLogger.Error("panic occurred during sending receipt mail", "panic", err)
			}
		}()

		data := map[string]any{
			"username":   account.Username,
			"reference":  receipt.Reference,
			"movieTitle": receipt.MovieTitle,
			"roomName":   receipt.RoomName,
			"startAt":    receipt.StartAt.Format(startTimeLayout),
			"seats":      domain.SeatsString(receipt.Seats),
			"totalPrice": receipt.TotalPrice,
		}

		err := app.mailer.Send(account.Email, "booking_receipt.tmpl", data)
		if err != nil {
			gLogger.Error("failed to send receipt email", "error", err)
		} else {
			gLogger.Info("receipt email sent successfully")
		}
	}(context.WithoutCancel(r.Context()))

	respSeats := make([]SeatRequest, len(receipt.Seats))
	for i, seat := range receipt.Seats {
		respSeats[i] = SeatRequest{Row: seat.Row, Column: seat.Column}
	}

	resp := BookingResponse{
		Reference:    receipt.Reference,
		MovieTitle:   receipt.MovieTitle,
		RoomName:     receipt.RoomName,
		StartTime:    receipt.StartAt.Format(startTimeLayout),
		Seats:        respSeats,
		PerSeatPrice: receipt.PerSeatPrice,
		TotalPrice:   receipt.TotalPrice,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetBookingsOfAccount(w http.ResponseWriter, r *http.Request) {
	accountId := app.contextGetAccountId(r)

	account, err := app.accountRepo.GetById(r.Context(), accountId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	lines, err := app.bookings.ListByAccount(r.Context(), account.Username)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := BookingListResponse{Bookings: lines}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
