package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-ticket-service/internal/domain"
	"github.com/metinatakli/cinema-ticket-service/internal/mailer"
	"github.com/metinatakli/cinema-ticket-service/internal/repository"
	"github.com/metinatakli/cinema-ticket-service/internal/service"
	appvalidator "github.com/metinatakli/cinema-ticket-service/internal/validator"
	"github.com/metinatakli/cinema-ticket-service/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
)

var (
	version = vcs.Version()
)

type Application struct {
	config         Config
	logger         *slog.Logger
	db             *pgxpool.Pool
	redis          redis.UniversalClient
	validator      *validator.Validate
	mailer         mailer.Mailer
	sessionManager *scs.SessionManager

	accountRepo domain.AccountRepository
	movieRepo   domain.MovieRepository
	roomRepo    domain.RoomRepository

	screenings *service.ScreeningService
	bookings   *service.BookingService
	prices     *service.PriceService
}

type Config struct {
	Port             int
	Env              string
	BasePrice        int
	OtelCollectorUrl string
	DB               DBConfig
	Redis            RedisConfig
	SMTP             SMTPConfig
	Admin            AdminConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

// AdminConfig seeds the administrator account at startup. Bootstrap is
// skipped when the password is left empty.
type AdminConfig struct {
	Username string
	Email    string
	Password string
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")
	flag.IntVar(&cfg.BasePrice, "base-price", service.DefaultBasePrice, "Per-seat base price in HUF")
	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector URL")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.SMTP.Host, "smtp-host", "sandbox.smtp.mailtrap.io", "SMTP host")
	flag.IntVar(&cfg.SMTP.Port, "smtp-port", 2525, "SMTP port")
	flag.StringVar(&cfg.SMTP.Username, "smtp-username", "", "SMTP username")
	flag.StringVar(&cfg.SMTP.Password, "smtp-password", "", "SMTP password")
	flag.StringVar(&cfg.SMTP.Sender, "smtp-sender", "Cinema Tickets <no-reply@cinema-tickets.example>", "SMTP sender")

	flag.StringVar(&cfg.Admin.Username, "admin-username", "admin", "Administrator username")
	flag.StringVar(&cfg.Admin.Email, "admin-email", "admin@cinema-tickets.example", "Administrator email")
	flag.StringVar(&cfg.Admin.Password, "admin-password", "", "Administrator password (bootstrap skipped when empty)")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	accountRepo := repository.NewPostgresAccountRepository(db)
	movieRepo := repository.NewPostgresMovieRepository(db)
	roomRepo := repository.NewPostgresRoomRepository(db)
	screeningRepo := repository.NewPostgresScreeningRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)
	componentRepo := repository.NewPostgresPriceComponentRepository(db)

	app := NewApp(
		cfg,
		logger,
		db,
		redisClient,
		appvalidator.NewValidator(),
		mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender),
		NewSessionManager(redisClient),
		accountRepo,
		movieRepo,
		roomRepo,
		screeningRepo,
		bookingRepo,
		componentRepo,
	)

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	err = app.EnsureAdminAccount(context.Background())
	if err != nil {
		return err
	}

	return app.serve()
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redisClient redis.UniversalClient,
	validator *validator.Validate,
	mailer mailer.Mailer,
	sessionManager *scs.SessionManager,
	accountRepo domain.AccountRepository,
	movieRepo domain.MovieRepository,
	roomRepo domain.RoomRepository,
	screeningRepo domain.ScreeningRepository,
	bookingRepo domain.BookingRepository,
	componentRepo domain.PriceComponentRepository,
) *Application {

	prices := service.NewPriceService(componentRepo, screeningRepo)
	if cfg.BasePrice > 0 {
		prices.UpdateBasePrice(cfg.BasePrice)
	}

	return &Application{
		config:         cfg,
		logger:         logger,
		db:             db,
		redis:          redisClient,
		validator:      validator,
		mailer:         mailer,
		sessionManager: sessionManager,
		accountRepo:    accountRepo,
		movieRepo:      movieRepo,
		roomRepo:       roomRepo,
		screenings:     service.NewScreeningService(movieRepo, roomRepo, screeningRepo),
		bookings:       service.NewBookingService(accountRepo, screeningRepo, bookingRepo, prices),
		prices:         prices,
	}
}

func NewSessionManager(client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"

	return sessionManager
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	if err := redisotel.InstrumentTracing(rdb); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureAdminAccount creates the configured administrator account if it
// does not exist yet. An existing account is left untouched.
func (app *Application) EnsureAdminAccount(ctx context.Context) error {
	if app.config.Admin.Password == "" {
		app.logger.Info("admin password not configured, skipping admin account bootstrap")
		return nil
	}

	admin := domain.Account{
		Username: app.config.Admin.Username,
		Email:    app.config.Admin.Email,
		IsAdmin:  true,
	}

	err := admin.Password.Set(app.config.Admin.Password)
	if err != nil {
		return err
	}

	err = app.accountRepo.Create(ctx, &admin)
	if err != nil {
		if errors.Is(err, domain.ErrAccountExists) {
			return nil
		}

		return err
	}

	app.logger.Info("created admin account", "username", admin.Username)

	return nil
}

func (app *Application) serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("cinema-ticket-api", otelchi.WithChiRoutes(r)))
	r.Use(app.recoverPanic)
	r.Use(app.requestLogger)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/health", app.GetHealth)

	r.Post("/accounts", app.RegisterAccount)
	r.Post("/accounts/login", app.Login)
	r.Post("/accounts/logout", app.Logout)
	r.With(app.requireAuthentication).Get("/accounts/me", app.GetCurrentAccount)

	r.Get("/movies", app.GetMovies)
	r.Get("/rooms", app.GetRooms)
	r.Get("/screenings", app.GetScreenings)
	r.Get("/price", app.GetPriceQuote)

	r.With(app.requireAuthentication).Route("/bookings", func(r chi.Router) {
		r.Post("/", app.CreateBooking)
		r.Get("/", app.GetBookingsOfAccount)
	})

	r.With(app.requireAuthentication, app.requireAdmin).Group(func(r chi.Router) {
		r.Post("/movies", app.CreateMovie)
		r.Patch("/movies/{title}", app.UpdateMovie)
		r.Delete("/movies/{title}", app.DeleteMovie)

		r.Post("/rooms", app.CreateRoom)
		r.Patch("/rooms/{name}", app.UpdateRoom)
		r.Delete("/rooms/{name}", app.DeleteRoom)

		r.Post("/screenings", app.CreateScreening)
		r.Delete("/screenings", app.DeleteScreening)

		r.Put("/admin/base-price", app.UpdateBasePrice)
		r.Post("/price-components", app.CreatePriceComponent)
		r.Post("/price-components/{name}/movies/{title}", app.AttachComponentToMovie)
		r.Post("/price-components/{name}/rooms/{room}", app.AttachComponentToRoom)
		r.Post("/price-components/{name}/screenings", app.AttachComponentToScreening)
	})

	return r
}
