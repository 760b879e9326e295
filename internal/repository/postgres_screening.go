package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-ticket-service/internal/domain"
)

type PostgresScreeningRepository struct {
	db *pgxpool.Pool
}

func NewPostgresScreeningRepository(db *pgxpool.Pool) *PostgresScreeningRepository {
	return &PostgresScreeningRepository{
		db: db,
	}
}

// Create locks the room row, loads the room's schedule, runs clashCheck
// against it and inserts the screening, all in one transaction. The row
// lock serializes concurrent creations in the same room, so two
// overlapping candidates can never both pass the check.
func (p *PostgresScreeningRepository) Create(
	ctx context.Context,
	screening *domain.Screening,
	clashCheck func(existing []domain.Screening) error,
) error {

	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var roomID int

		err := tx.QueryRow(ctx, `SELECT id FROM rooms WHERE id = $1 FOR UPDATE`, screening.RoomID).Scan(&roomID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRoomNotFound
			}

			return err
		}

		existing, err := getAllByRoom(ctx, tx, screening.RoomID)
		if err != nil {
			return err
		}

		err = clashCheck(existing)
		if err != nil {
			return err
		}

		query := `
			INSERT INTO screenings (movie_id, room_id, duration_minutes, start_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`

		err = tx.QueryRow(ctx, query,
			screening.MovieID,
			screening.RoomID,
			screening.Duration,
			screening.StartAt,
		).Scan(&screening.ID)

		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrScreeningExists
			}

			return err
		}

		return nil
	})
}

func getAllByRoom(ctx context.Context, tx pgx.Tx, roomID int) ([]domain.Screening, error) {
	query := `
		SELECT s.id, s.movie_id, s.room_id, s.duration_minutes, s.start_at
		FROM screenings s
		WHERE s.room_id = $1
		ORDER BY s.start_at
	`

	rows, err := tx.Query(ctx, query, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	screenings := make([]domain.Screening, 0)

	for rows.Next() {
		var screening domain.Screening

		err = rows.Scan(
			&screening.ID,
			&screening.MovieID,
			&screening.RoomID,
			&screening.Duration,
			&screening.StartAt,
		)
		if err != nil {
			return nil, err
		}

		screenings = append(screenings, screening)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return screenings, nil
}

func (p *PostgresScreeningRepository) GetByNaturalKey(
	ctx context.Context,
	movieTitle, roomName string,
	startAt time.Time,
) (*domain.Screening, error) {

	query := `
		SELECT s.id, s.movie_id, m.title, m.genre, s.duration_minutes,
			s.room_id, r.name, r.seat_rows, r.seat_columns, s.start_at
		FROM screenings s
		JOIN movies m ON s.movie_id = m.id
		JOIN rooms r ON s.room_id = r.id
		WHERE m.title = $1 AND r.name = $2 AND s.start_at = $3
	`

	var screening domain.Screening

	err := p.db.QueryRow(ctx, query, movieTitle, roomName, startAt).Scan(
		&screening.ID,
		&screening.MovieID,
		&screening.MovieTitle,
		&screening.MovieGenre,
		&screening.Duration,
		&screening.RoomID,
		&screening.RoomName,
		&screening.RoomRows,
		&screening.RoomColumns,
		&screening.StartAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrScreeningNotFound
		}

		return nil, err
	}

	return &screening, nil
}

func (p *PostgresScreeningRepository) GetAll(ctx context.Context) ([]domain.Screening, error) {
	query := `
		SELECT s.id, s.movie_id, m.title, m.genre, s.duration_minutes,
			s.room_id, r.name, r.seat_rows, r.seat_columns, s.start_at
		FROM screenings s
		JOIN movies m ON s.movie_id = m.id
		JOIN rooms r ON s.room_id = r.id
		ORDER BY s.start_at, m.title
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	screenings := make([]domain.Screening, 0)

	for rows.Next() {
		var screening domain.Screening

		err = rows.Scan(
			&screening.ID,
			&screening.MovieID,
			&screening.MovieTitle,
			&screening.MovieGenre,
			&screening.Duration,
			&screening.RoomID,
			&screening.RoomName,
			&screening.RoomRows,
			&screening.RoomColumns,
			&screening.StartAt,
		)
		if err != nil {
			return nil, err
		}

		screenings = append(screenings, screening)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return screenings, nil
}

func (p *PostgresScreeningRepository) Delete(ctx context.Context, movieTitle, roomName string, startAt time.Time) error {
	query := `
		DELETE FROM screenings s
		USING movies m, rooms r
		WHERE s.movie_id = m.id AND s.room_id = r.id
			AND m.title = $1 AND r.name = $2 AND s.start_at = $3
	`

	tag, err := p.db.Exec(ctx, query, movieTitle, roomName, startAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrScreeningNotFound
	}

	return nil
}
