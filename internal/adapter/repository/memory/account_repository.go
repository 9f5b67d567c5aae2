package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/api-sage/funds-transfer-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// Verify that AccountRepository implements the domain.AccountRepository interface
var _ domain.AccountRepository = (*AccountRepository)(nil)

// AccountRepository is an in-memory account store for tests and local runs.
// It mirrors the postgres adapter's contract, including the non-negative
// balance guard.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[int64]domain.Account
	nextID   int64
}

func NewAccountRepository(seed ...domain.Account) *AccountRepository {
	r := &AccountRepository{
		accounts: make(map[int64]domain.Account),
		nextID:   1,
	}

	for _, account := range seed {
		r.put(account)
	}

	return r
}

// SeedAccounts returns the fixture accounts used for local runs.
func SeedAccounts() []domain.Account {
	return []domain.Account{
		{ID: 1, Currency: "USD", Balance: decimal.NewFromInt(2000)},
		{ID: 2, Currency: "EUR", Balance: decimal.NewFromInt(500)},
		{ID: 3, Currency: "BRL", Balance: decimal.NewFromInt(10000)},
		{ID: 4, Currency: "USD", Balance: decimal.NewFromInt(0)},
	}
}

func (r *AccountRepository) GetByID(_ context.Context, id int64) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return domain.Account{}, domain.ErrRecordNotFound
	}

	return account, nil
}

func (r *AccountRepository) Save(_ context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.accounts[account.ID]
	if !ok {
		return domain.ErrRecordNotFound
	}
	if account.Balance.IsNegative() {
		return fmt.Errorf("save account %d: balance constraint rejected %s", account.ID, account.Balance)
	}

	account.CreatedAt = stored.CreatedAt
	account.UpdatedAt = time.Now().UTC()
	r.accounts[account.ID] = account

	return nil
}

func (r *AccountRepository) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.put(account), nil
}

func (r *AccountRepository) put(account domain.Account) domain.Account {
	if account.ID == 0 {
		account.ID = r.nextID
	}
	if account.ID >= r.nextID {
		r.nextID = account.ID + 1
	}

	now := time.Now().UTC()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now
	r.accounts[account.ID] = account

	return account
}
