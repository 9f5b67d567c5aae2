package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/funds-transfer-engine/internal/domain"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Verify that AccountRepository implements the domain.AccountRepository interface
var _ domain.AccountRepository = (*AccountRepository)(nil)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (domain.Account, error) {
	const query = `
SELECT id, currency, balance, created_at, updated_at
FROM accounts
WHERE id = $1`

	var account domain.Account
	var balance string

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID,
		&account.Currency,
		&balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrRecordNotFound
		}
		return domain.Account{}, fmt.Errorf("get account %d: %w", id, err)
	}

	account.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return domain.Account{}, fmt.Errorf("parse balance of account %d: %w", id, err)
	}

	return account, nil
}

func (r *AccountRepository) Save(ctx context.Context, account domain.Account) error {
	const query = `
UPDATE accounts
SET balance = $2, updated_at = NOW()
WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, account.ID, account.Balance.String())
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("save account %d: balance constraint rejected %s: %w", account.ID, account.Balance, err)
		}
		return fmt.Errorf("save account %d: %w", account.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("save account %d: rows affected: %w", account.ID, err)
	}
	if affected == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
INSERT INTO accounts (currency, balance)
VALUES ($1, $2)
RETURNING id, created_at, updated_at`

	var id int64
	var createdAt time.Time
	var updatedAt time.Time

	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.Currency,
		account.Balance.String(),
	).Scan(&id, &createdAt, &updatedAt); err != nil {
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	account.ID = id
	account.CreatedAt = createdAt
	account.UpdatedAt = updatedAt

	return account, nil
}

// isCheckViolation reports a postgres CHECK constraint failure, e.g. the
// accounts_balance_non_negative guard.
func isCheckViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "23514"
	}
	return false
}
