package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/account-service/internal/errs"
	"github.com/deppfellow/account-service/internal/model"
)

type stubReader struct {
	account model.Account
	err     error
	gotID   int64
	gotCtx  context.Context
}

func (s *stubReader) GetByID(ctx context.Context, id int64) (model.Account, error) {
	s.gotID = id
	s.gotCtx = ctx
	return s.account, s.err
}

type ctxKey struct{}

func TestAccountServiceGet(t *testing.T) {
	reader := &stubReader{account: model.Account{ID: 2, Name: "山田"}}
	ctx := context.WithValue(context.Background(), ctxKey{}, "req")

	info, err := NewAccountService(reader).Get(ctx, 2)
	require.NoError(t, err)

	assert.Equal(t, model.AccountInfo{ID: 2, Name: "山田"}, info)
	assert.Equal(t, int64(2), reader.gotID)
	assert.Equal(t, "req", reader.gotCtx.Value(ctxKey{}))
}

func TestAccountServiceForwardsErrorsUnchanged(t *testing.T) {
	notFound := &errs.NotFoundError{Entity: "account", Key: int64(999)}
	storage := &errs.StorageError{Op: "account.get_by_id", Err: errors.New("connection refused")}

	for _, want := range []error{notFound, storage} {
		info, err := NewAccountService(&stubReader{err: want}).Get(context.Background(), 999)
		assert.Same(t, want, err)
		assert.Equal(t, model.AccountInfo{}, info)
	}
}
