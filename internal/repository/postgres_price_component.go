package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-ticket-service/internal/domain"
)

type PostgresPriceComponentRepository struct {
	db *pgxpool.Pool
}

func NewPostgresPriceComponentRepository(db *pgxpool.Pool) *PostgresPriceComponentRepository {
	return &PostgresPriceComponentRepository{
		db: db,
	}
}

func (p *PostgresPriceComponentRepository) Create(ctx context.Context, component *domain.PriceComponent) error {
	query := `
		INSERT INTO price_components (name, fee)
		VALUES ($1, $2)
		RETURNING id
	`

	err := p.db.QueryRow(ctx, query, component.Name, component.Fee).Scan(&component.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrComponentExists
		}

		return err
	}

	return nil
}

func (p *PostgresPriceComponentRepository) AttachToMovie(ctx context.Context, componentName, movieTitle string) error {
	query := `
		INSERT INTO movie_price_components (movie_id, component_id)
		SELECT m.id, c.id
		FROM movies m, price_components c
		WHERE m.title = $1 AND c.name = $2
		ON CONFLICT DO NOTHING
	`

	tag, err := p.db.Exec(ctx, query, movieTitle, componentName)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return p.attachFailure(ctx, componentName, func() error {
			_, err := NewPostgresMovieRepository(p.db).GetByTitle(ctx, movieTitle)
			return err
		})
	}

	return nil
}

func (p *PostgresPriceComponentRepository) AttachToRoom(ctx context.Context, componentName, roomName string) error {
	query := `
		INSERT INTO room_price_components (room_id, component_id)
		SELECT r.id, c.id
		FROM rooms r, price_components c
		WHERE r.name = $1 AND c.name = $2
		ON CONFLICT DO NOTHING
	`

	tag, err := p.db.Exec(ctx, query, roomName, componentName)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return p.attachFailure(ctx, componentName, func() error {
			_, err := NewPostgresRoomRepository(p.db).GetByName(ctx, roomName)
			return err
		})
	}

	return nil
}

func (p *PostgresPriceComponentRepository) AttachToScreening(
	ctx context.Context,
	componentName, movieTitle, roomName string,
	startAt time.Time,
) error {

	query := `
		INSERT INTO screening_price_components (screening_id, component_id)
		SELECT s.id, c.id
		FROM screenings s
		JOIN movies m ON s.movie_id = m.id
		JOIN rooms r ON s.room_id = r.id
		JOIN price_components c ON c.name = $1
		WHERE m.title = $2 AND r.name = $3 AND s.start_at = $4
		ON CONFLICT DO NOTHING
	`

	tag, err := p.db.Exec(ctx, query, componentName, movieTitle, roomName, startAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return p.attachFailure(ctx, componentName, func() error {
			_, err := NewPostgresScreeningRepository(p.db).GetByNaturalKey(ctx, movieTitle, roomName, startAt)
			return err
		})
	}

	return nil
}

// attachFailure figures out which side of a zero-row attach was
// missing. Attaching an already-attached component is a no-op, not an
// error.
func (p *PostgresPriceComponentRepository) attachFailure(ctx context.Context, componentName string, checkOwner func() error) error {
	var exists bool

	err := p.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM price_components WHERE name = $1)`,
		componentName,
	).Scan(&exists)
	if err != nil {
		return err
	}

	if !exists {
		return domain.ErrComponentNotFound
	}

	if err := checkOwner(); err != nil {
		return err
	}

	// Both sides exist, so the join row was already there.
	return nil
}

func (p *PostgresPriceComponentRepository) GetByScreening(ctx context.Context, screeningID int) (*domain.ScreeningComponents, error) {
	query := `
		SELECT c.id, c.name, c.fee, o.owner
		FROM price_components c
		JOIN (
			SELECT component_id, 'screening' AS owner
			FROM screening_price_components
			WHERE screening_id = $1
			UNION ALL
			SELECT rc.component_id, 'room'
			FROM room_price_components rc
			JOIN screenings s ON s.room_id = rc.room_id
			WHERE s.id = $1
			UNION ALL
			SELECT mc.component_id, 'movie'
			FROM movie_price_components mc
			JOIN screenings s ON s.movie_id = mc.movie_id
			WHERE s.id = $1
		) o ON o.component_id = c.id
	`

	rows, err := p.db.Query(ctx, query, screeningID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var components domain.ScreeningComponents

	for rows.Next() {
		var component domain.PriceComponent
		var owner string

		err = rows.Scan(&component.ID, &component.Name, &component.Fee, &owner)
		if err != nil {
			return nil, err
		}

		switch owner {
		case "screening":
			components.Screening = append(components.Screening, component)
		case "room":
			components.Room = append(components.Room, component)
		case "movie":
			components.Movie = append(components.Movie, component)
		}
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &components, nil
}
