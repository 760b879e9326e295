package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/cinema-ticket-service/internal/domain"
)

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := app.movieRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := MovieListResponse{Movies: make([]MovieResponse, len(movies))}
	for i, movie := range movies {
		resp.Movies[i] = MovieResponse{
			Title:    movie.Title,
			Genre:    movie.Genre,
			Duration: movie.Duration,
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var input MovieRequest

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

	movie := domain.Movie{
		Title:    input.Title,
		Genre:    input.Genre,
		Duration: input.Duration,
	}

	err = app.movieRepo.Create(r.Context(), &movie)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMovieExists):
			app.badRequestResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := MovieResponse{
		Title:    movie.Title,
		Genre:    movie.Genre,
		Duration: movie.Duration,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	title, err := pathParam(r, "title")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input MovieUpdateRequest

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

	movie := domain.Movie{
		Title:    title,
		Genre:    input.Genre,
		Duration: input.Duration,
	}

	err = app.movieRepo.Update(r.Context(), &movie)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMovieNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := MovieResponse{
		Title:    movie.Title,
		Genre:    movie.Genre,
		Duration: movie.Duration,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	title, err := pathParam(r, "title")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.movieRepo.Delete(r.Context(), title)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMovieNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
