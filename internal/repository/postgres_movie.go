package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-ticket-service/internal/domain"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `
		INSERT INTO movies (title, genre, duration_minutes)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := p.db.QueryRow(ctx, query, movie.Title, movie.Genre, movie.Duration).Scan(&movie.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrMovieExists
		}

		return err
	}

	return nil
}

func (p *PostgresMovieRepository) GetByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	query := `
		SELECT id, title, genre, duration_minutes
		FROM movies
		WHERE title = $1
	`

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, title).Scan(&movie.ID, &movie.Title, &movie.Genre, &movie.Duration)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMovieNotFound
		}

		return nil, err
	}

	return &movie, nil
}

func (p *PostgresMovieRepository) GetAll(ctx context.Context) ([]domain.Movie, error) {
	query := `
		SELECT id, title, genre, duration_minutes
		FROM movies
		ORDER BY title
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]domain.Movie, 0)

	for rows.Next() {
		var movie domain.Movie

		err = rows.Scan(&movie.ID, &movie.Title, &movie.Genre, &movie.Duration)
		if err != nil {
			return nil, err
		}

		movies = append(movies, movie)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

func (p *PostgresMovieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	query := `
		UPDATE movies
		SET genre = $2, duration_minutes = $3
		WHERE title = $1
	`

	tag, err := p.db.Exec(ctx, query, movie.Title, movie.Genre, movie.Duration)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrMovieNotFound
	}

	return nil
}

func (p *PostgresMovieRepository) Delete(ctx context.Context, title string) error {
	// Screenings and their bookings cascade through the schema.
	tag, err := p.db.Exec(ctx, `DELETE FROM movies WHERE title = $1`, title)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrMovieNotFound
	}

	return nil
}
