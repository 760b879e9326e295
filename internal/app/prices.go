package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/metinatakli/cinema-ticket-service/internal/domain"
)

func (app *Application) GetPriceQuote(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	movieTitle := query.Get("movieTitle")
	roomName := query.Get("roomName")
	startTime := query.Get("startTime")

	if movieTitle == "" || roomName == "" || startTime == "" {
		app.badRequestResponse(w, r, fmt.Errorf("movieTitle, roomName and startTime are required"))
		return
	}

	startAt, err := parseStartTime(startTime)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	seatCount := 1
	if raw := query.Get("seatCount"); raw != "" {
		seatCount, err = strconv.Atoi(raw)
		if err != nil || seatCount < 1 {
			app.badRequestResponse(w, r, fmt.Errorf("seatCount must be a positive integer"))
			return
		}
	}

	total, err := app.prices.Quote(r.Context(), movieTitle, roomName, startAt, seatCount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrScreeningNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := PriceQuoteResponse{
		MovieTitle: movieTitle,
		RoomName:   roomName,
		StartTime:  startTime,
		SeatCount:  seatCount,
		TotalPrice: total,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateBasePrice(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input BasePriceRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	app.prices.UpdateBasePrice(input.Amount)
	logger.Info("base price updated", "amount", input.Amount)

	resp := BasePriceResponse{Amount: app.prices.BasePrice()}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreatePriceComponent(w http.ResponseWriter, r *http.Request) {
	var input PriceComponentRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	err = app.prices.CreateComponent(r.Context(), input.Name, input.Fee)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrComponentExists):
			app.badRequestResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (app *Application) AttachComponentToMovie(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	title, err := pathParam(r, "title")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.prices.AttachToMovie(r.Context(), name, title)
	if err != nil {
		app.attachErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) AttachComponentToRoom(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	room, err := pathParam(r, "room")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.prices.AttachToRoom(r.Context(), name, room)
	if err != nil {
		app.attachErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) AttachComponentToScreening(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input ScreeningRequest

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

	err = app.prices.AttachToScreening(r.Context(), name, input.MovieTitle, input.RoomName, startAt)
	if err != nil {
		app.attachErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) attachErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrComponentNotFound),
		errors.Is(err, domain.ErrMovieNotFound),
		errors.Is(err, domain.ErrRoomNotFound),
		errors.Is(err, domain.ErrScreeningNotFound):
		app.notFoundResponse(w, r)
	default:
		app.serverErrorResponse(w, r, err)
	}
}
