package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/deppfellow/account-service/internal/errs"
	"github.com/deppfellow/account-service/internal/model"
	"github.com/deppfellow/account-service/internal/sqlerr"
)

// A NULL name is read as "".
const getAccountByIDQuery = `SELECT id, COALESCE(name, '') FROM account_management WHERE id = $1`

type AccountRepository struct {
	db DBTX
}

func NewAccountRepository(db DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetByID fetches one account by primary key.
//
// Any id is sent to the database as-is, including zero and negative values.
// It returns *errs.NotFoundError when no row matches and *errs.StorageError
// for every other failure.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (model.Account, error) {
	var account model.Account

	err := r.db.QueryRow(ctx, getAccountByIDQuery, id).Scan(&account.ID, &account.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, &errs.NotFoundError{Entity: "account", Key: id}
		}
		return model.Account{}, &errs.StorageError{
			Op:  "account.get_by_id",
			Err: errors.WithStack(sqlerr.Normalize(err)),
		}
	}

	return account, nil
}
