package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-ticket-service/internal/domain"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

// CreateAll inserts the whole batch in one transaction. The unique
// index on (screening_id, seat_row, seat_col) makes the commit the
// serialization point for racing requests: whichever transaction lands
// second aborts with ErrSeatAlreadyTaken and writes nothing.
func (p *PostgresBookingRepository) CreateAll(ctx context.Context, bookings []domain.Booking) error {
	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		rows := make([][]any, 0, len(bookings))
		for _, booking := range bookings {
			rows = append(rows, []any{
				booking.ScreeningID,
				booking.Seat.Row,
				booking.Seat.Column,
				booking.AccountID,
				booking.Price,
			})
		}

		_, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{"bookings"},
			[]string{"screening_id", "seat_row", "seat_col", "account_id", "price"},
			pgx.CopyFromRows(rows),
		)

		return err
	})

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSeatAlreadyTaken
		}

		return err
	}

	return nil
}

func (p *PostgresBookingRepository) GetSeatsByScreening(ctx context.Context, screeningID int) ([]domain.Seat, error) {
	query := `
		SELECT seat_row, seat_col
		FROM bookings
		WHERE screening_id = $1
	`

	rows, err := p.db.Query(ctx, query, screeningID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var seat domain.Seat

		err = rows.Scan(&seat.Row, &seat.Column)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

func (p *PostgresBookingRepository) GetAllByAccount(ctx context.Context, accountID int) ([]domain.AccountBooking, error) {
	query := `
		SELECT b.screening_id, m.title, r.name, s.start_at, b.seat_row, b.seat_col, b.price
		FROM bookings b
		JOIN screenings s ON b.screening_id = s.id
		JOIN movies m ON s.movie_id = m.id
		JOIN rooms r ON s.room_id = r.id
		WHERE b.account_id = $1
		ORDER BY s.start_at, b.seat_row, b.seat_col
	`

	rows, err := p.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.AccountBooking, 0)

	for rows.Next() {
		var booking domain.AccountBooking

		err = rows.Scan(
			&booking.ScreeningID,
			&booking.MovieTitle,
			&booking.RoomName,
			&booking.StartAt,
			&booking.Seat.Row,
			&booking.Seat.Column,
			&booking.Price,
		)
		if err != nil {
			return nil, err
		}

		bookings = append(bookings, booking)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}
