package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/metinatakli/cinema-ticket-service/internal/domain"
)

func (app *Application) RegisterAccount(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input RegisterRequest

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

	account := domain.Account{
		Username: input.Username,
		Email:    input.Email,
	}

	err = account.Password.Set(input.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.accountRepo.Create(r.Context(), &account)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountExists):
			logger.Warn("registration attempt for existing username")
			// do not reveal which usernames exist
			app.badRequestResponse(w, r, fmt.Errorf("invalid input data"))
		default:
			logger.Error("failed to create account", "error", err)
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := AccountResponse{
		Id:        account.ID,
		Username:  account.Username,
		Email:     account.Email,
		IsAdmin:   account.IsAdmin,
		CreatedAt: account.CreatedAt,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) Login(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	accountId := app.sessionManager.GetInt(r.Context(), SessionKeyAccountId.String())
	if accountId != 0 {
		resp := MessageResponse{
			Message: "You are already logged in",
		}

		err := app.writeJSON(w, http.StatusOK, resp, nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	var input LoginRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		logger.Warn("login validation failed")
		app.invalidCredentialsResponse(w, r)
		return
	}

	account, err := app.accountRepo.GetByUsername(r.Context(), input.Username)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			logger.Warn("login attempt for non-existent account")
			app.invalidCredentialsResponse(w, r)
		default:
			logger.Error("failed to get account during login", "error", err)
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	matches, err := account.Password.Matches(input.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if !matches {
		logger.Warn("login failed due to incorrect password")
		app.invalidCredentialsResponse(w, r)
		return
	}

	// To help prevent session fixation attacks we should renew the session token after any privilege level change.
	// https://github.com/OWASP/CheatSheetSeries/blob/master/cheatsheets/Session_Management_Cheat_Sheet.md#renew-the-session-id-after-any-privilege-level-change
	err = app.sessionManager.RenewToken(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.sessionManager.Put(r.Context(), SessionKeyAccountId.String(), account.ID)
	app.sessionManager.Put(r.Context(), SessionKeyIsAdmin.String(), account.IsAdmin)

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) Logout(w http.ResponseWriter, r *http.Request) {
	accountId := app.sessionManager.GetInt(r.Context(), SessionKeyAccountId.String())
	if accountId == 0 {
		app.notFoundResponse(w, r)
		return
	}

	app.sessionManager.Destroy(r.Context())

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) GetCurrentAccount(w http.ResponseWriter, r *http.Request) {
	accountId := app.contextGetAccountId(r)

	account, err := app.accountRepo.GetById(r.Context(), accountId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			app.logger.Error("account ID in session but not found in DB", "accountId", accountId)
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := AccountResponse{
		Id:        account.ID,
		Username:  account.Username,
		Email:     account.Email,
		IsAdmin:   account.IsAdmin,
		CreatedAt: account.CreatedAt,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
