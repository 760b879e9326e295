package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/cinema-ticket-service/internal/mailer"
	"github.com/metinatakli/cinema-ticket-service/internal/mocks"
	appvalidator "github.com/metinatakli/cinema-ticket-service/internal/validator"
)

type testMocks struct {
	accountRepo   *mocks.MockAccountRepo
	movieRepo     *mocks.MockMovieRepo
	roomRepo      *mocks.MockRoomRepo
	screeningRepo *mocks.MockScreeningRepo
	bookingRepo   *mocks.MockBookingRepo
	componentRepo *mocks.MockPriceComponentRepo
	mailer        *mailer.MockMailer
}

func newTestApplication() (*Application, *testMocks) {
	m := &testMocks{
		accountRepo:   &mocks.MockAccountRepo{},
		movieRepo:     &mocks.MockMovieRepo{},
		roomRepo:      &mocks.MockRoomRepo{},
		screeningRepo: &mocks.MockScreeningRepo{},
		bookingRepo:   &mocks.MockBookingRepo{},
		componentRepo: &mocks.MockPriceComponentRepo{},
		mailer:        mailer.NewMockMailer(),
	}

	app := NewApp(
		Config{Env: "test"},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		nil,
		nil,
		appvalidator.NewValidator(),
		m.mailer,
		scs.New(),
		m.accountRepo,
		m.movieRepo,
		m.roomRepo,
		m.screeningRepo,
		m.bookingRepo,
		m.componentRepo,
	)

	return app, m
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

// asAccount puts the account id where requireAuthentication would, so
// handlers can be exercised without the full middleware chain.
func asAccount(r *http.Request, accountId int) *http.Request {
	ctx := context.WithValue(r.Context(), SessionKeyAccountId, accountId)
	return r.WithContext(ctx)
}

// withSession loads a fresh scs session onto the request context.
func withSession(t *testing.T, app *Application, r *http.Request) *http.Request {
	t.Helper()

	ctx, err := app.sessionManager.Load(r.Context(), "")
	if err != nil {
		t.Fatalf("failed to load session: %v", err)
	}

	return r.WithContext(ctx)
}

// withURLParams injects chi route parameters, so handlers reading
// pathParam can run without the router.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantErrMessage string) {
	t.Helper()

	if wantStatus >= 200 && wantStatus < 300 {
		return
	}

	if wantErrMessage == "" {
		return
	}

	switch wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[wantErrMessage] {
			t.Errorf("expected validation error message %q not found in response", wantErrMessage)
		}

	default:
		var errorResp ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("failed to decode error response: %v", err)
		}

		if wantErrMessage != "" && errorResp.Message != wantErrMessage {
			t.Errorf("error message = %v, want %v", errorResp.Message, wantErrMessage)
		}
	}
}
