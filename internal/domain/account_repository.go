package domain

import "context"

type AccountRepository interface {
	GetByID(ctx context.Context, id int64) (Account, error)
	Save(ctx context.Context, account Account) error
}
