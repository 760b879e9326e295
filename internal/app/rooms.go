package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/cinema-ticket-service/internal/domain"
)

func (app *Application) GetRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := app.roomRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := RoomListResponse{Rooms: make([]RoomResponse, len(rooms))}
	for i, room := range rooms {
		resp.Rooms[i] = RoomResponse{
			Name:     room.Name,
			Rows:     room.Rows,
			Columns:  room.Columns,
			Capacity: room.Capacity(),
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var input RoomRequest

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

	room := domain.Room{
		Name:    input.Name,
		Rows:    input.Rows,
		Columns: input.Columns,
	}

	err = app.roomRepo.Create(r.Context(), &room)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomExists):
			app.badRequestResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := RoomResponse{
		Name:     room.Name,
		Rows:     room.Rows,
		Columns:  room.Columns,
		Capacity: room.Capacity(),
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input RoomUpdateRequest

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

	room := domain.Room{
		Name:    name,
		Rows:    input.Rows,
		Columns: input.Columns,
	}

	err = app.roomRepo.Update(r.Context(), &room)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := RoomResponse{
		Name:     room.Name,
		Rows:     room.Rows,
		Columns:  room.Columns,
		Capacity: room.Capacity(),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.roomRepo.Delete(r.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
