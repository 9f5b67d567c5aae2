package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/api-sage/funds-transfer-engine/internal/adapter/repository/memory"
	"github.com/api-sage/funds-transfer-engine/internal/domain"
	"github.com/shopspring/decimal"
)

func TestAccountRepositoryGetAndSave(t *testing.T) {
	repo := memory.NewAccountRepository(
		domain.Account{ID: 1, Currency: "USD", Balance: decimal.NewFromInt(100)},
	)

	account, err := repo.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	account.Balance = decimal.NewFromInt(75)
	if err := repo.Save(context.Background(), account); err != nil {
		t.Fatalf("save: %v", err)
	}

	stored, err := repo.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("get after save: %v", err)
	}
	if !stored.Balance.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("expected balance 75, got %s", stored.Balance)
	}
}

func TestAccountRepositoryGetUnknownID(t *testing.T) {
	repo := memory.NewAccountRepository()

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}

func TestAccountRepositorySaveUnknownID(t *testing.T) {
	repo := memory.NewAccountRepository()

	err := repo.Save(context.Background(), domain.Account{ID: 5, Currency: "USD"})
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}

func TestAccountRepositorySaveRejectsNegativeBalance(t *testing.T) {
	repo := memory.NewAccountRepository(
		domain.Account{ID: 1, Currency: "USD", Balance: decimal.NewFromInt(10)},
	)

	err := repo.Save(context.Background(), domain.Account{ID: 1, Currency: "USD", Balance: decimal.NewFromInt(-1)})
	if err == nil {
		t.Fatal("expected negative balance to be rejected")
	}
}

func TestAccountRepositoryCreateAssignsIDs(t *testing.T) {
	repo := memory.NewAccountRepository()

	first, err := repo.Create(context.Background(), domain.Account{Currency: "USD"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := repo.Create(context.Background(), domain.Account{Currency: "EUR"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID == 0 || second.ID == 0 || first.ID == second.ID {
		t.Fatalf("expected distinct assigned ids, got %d and %d", first.ID, second.ID)
	}
}
