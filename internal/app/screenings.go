package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/cinema-ticket-service/internal/domain"
)

func (app *Application) GetScreenings(w http.ResponseWriter, r *http.Request) {
	lines, err := app.screenings.List(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := ScreeningListResponse{Screenings: lines}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateScreening(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input ScreeningRequest

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

	startAt, err := parseStartTime(input.StartTime)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.screenings.Create(r.Context(), input.MovieTitle, input.RoomName, startAt)
	if err != nil {
		var clashErr *domain.ClashError

		switch {
		case errors.As(err, &clashErr):
			logger.Warn("screening rejected by clash check", "room", input.RoomName)
			app.rejectionResponse(w, r, "The screening cannot be scheduled", []string{clashErr.Message})
		case errors.Is(err, domain.ErrMovieNotFound), errors.Is(err, domain.ErrRoomNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrScreeningExists):
			app.badRequestResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (app *Application) DeleteScreening(w http.ResponseWriter, r *http.Request) {
	var input ScreeningRequest

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

	startAt, err := parseStartTime(input.StartTime)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.screenings.Delete(r.Context(), input.MovieTitle, input.RoomName, startAt)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrScreeningNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
