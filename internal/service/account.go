package service

import (
	"context"

	"github.com/deppfellow/account-service/internal/model"
)

// AccountReader is implemented by repository.AccountRepository.
type AccountReader interface {
	GetByID(ctx context.Context, id int64) (model.Account, error)
}

// AccountService turns stored accounts into response values.
// It holds no state of its own and is safe for concurrent use.
type AccountService struct {
	accounts AccountReader
}

func NewAccountService(accounts AccountReader) *AccountService {
	return &AccountService{accounts: accounts}
}

// Get returns the account with the given id. Repository errors are returned
// as they are.
func (s *AccountService) Get(ctx context.Context, id int64) (model.AccountInfo, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return model.AccountInfo{}, err
	}

	return model.AccountInfo{
		ID:   account.ID,
		Name: account.Name,
	}, nil
}
