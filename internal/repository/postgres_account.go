package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-ticket-service/internal/domain"
)

type PostgresAccountRepository struct {
	db *pgxpool.Pool
}

func NewPostgresAccountRepository(db *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{
		db: db,
	}
}

func (p *PostgresAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (username, email, password_hash, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := p.db.QueryRow(ctx, query,
		account.Username,
		account.Email,
		account.Password.Hash,
		account.IsAdmin,
	).Scan(&account.ID, &account.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAccountExists
		}

		return err
	}

	return nil
}

func (p *PostgresAccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	query := `
		SELECT id, username, email, password_hash, is_admin, created_at
		FROM accounts
		WHERE username = $1
	`

	return p.getOne(ctx, query, username)
}

func (p *PostgresAccountRepository) GetById(ctx context.Context, id int) (*domain.Account, error) {
	query := `
		SELECT id, username, email, password_hash, is_admin, created_at
		FROM accounts
		WHERE id = $1
	`

	return p.getOne(ctx, query, id)
}

func (p *PostgresAccountRepository) getOne(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var account domain.Account

	err := p.db.QueryRow(ctx, query, arg).Scan(
		&account.ID,
		&account.Username,
		&account.Email,
		&account.Password.Hash,
		&account.IsAdmin,
		&account.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return &account, nil
}
