package integration_test

import (
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-ticket-service/internal/app"
	"github.com/metinatakli/cinema-ticket-service/internal/mailer"
	"github.com/metinatakli/cinema-ticket-service/internal/repository"
	appvalidator "github.com/metinatakli/cinema-ticket-service/internal/validator"
)

type TestApp struct {
	App    *app.Application
	DB     *pgxpool.Pool
	Mailer *mailer.MockMailer
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()
	mockMailer := mailer.NewMockMailer()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	sessionManager := app.NewSessionManager(redisClient)

	accountRepo := repository.NewPostgresAccountRepository(db)
	movieRepo := repository.NewPostgresMovieRepository(db)
	roomRepo := repository.NewPostgresRoomRepository(db)
	screeningRepo := repository.NewPostgresScreeningRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)
	componentRepo := repository.NewPostgresPriceComponentRepository(db)

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		mockMailer,
		sessionManager,
		accountRepo,
		movieRepo,
		roomRepo,
		screeningRepo,
		bookingRepo,
		componentRepo,
	)

	return &TestApp{
		App:    application,
		DB:     db,
		Mailer: mockMailer,
	}, nil
}
