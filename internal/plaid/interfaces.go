package plaid

import (
	"context"

	"github.com/anoushkasinn/Spend.Sense/internal/service"
)

// TransactionFetcher is a transaction source that can also list accounts.
type TransactionFetcher interface {
	service.TransactionSource
	GetAccounts(ctx context.Context) ([]string, error)
}

var _ TransactionFetcher = (*Client)(nil)
