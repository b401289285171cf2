package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/account-service/internal/model"
)

// AccountGetter is implemented by service.AccountService.
type AccountGetter interface {
	Get(ctx context.Context, id int64) (model.AccountInfo, error)
}

// GetAccountRequest is the query of GET /accounts.
type GetAccountRequest struct {
	ID int64
}

func NewGetAccountRequest() *GetAccountRequest {
	return &GetAccountRequest{}
}

// Bind reads the mandatory id query parameter. Values outside the int64
// range, fractions and non-numeric input are rejected.
func (r *GetAccountRequest) Bind(c echo.Context) error {
	return echo.QueryParamsBinder(c).
		MustInt64("id", &r.ID).
		BindError()
}

// Validate accepts every id: zero and negative ids are simply not found.
func (r *GetAccountRequest) Validate() error {
	return nil
}

type AccountHandler struct {
	accounts AccountGetter
}

func NewAccountHandler(accounts AccountGetter) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// GetAccount serves GET /accounts?id=<int64>.
//
// The request context is forwarded, so a client disconnect cancels the query.
func (h *AccountHandler) GetAccount(c echo.Context, req *GetAccountRequest) (model.AccountInfo, error) {
	return h.accounts.Get(c.Request().Context(), req.ID)
}
