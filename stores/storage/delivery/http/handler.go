package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/base/delivery"
	"github.com/tokenmart/goapi/domain"
	"github.com/tokenmart/goapi/domain/storage"
	"github.com/tokenmart/goapi/middleware"
)

type handler struct {
	storage storage.UseCase
}

// balanceResp carries the raw amount next to its whole-unit rendering
type balanceResp struct {
	Amount  domain.Balance `json:"amount"`
	Display string         `json:"display"`
}

func makeBalanceResp(b domain.Balance) balanceResp {
	return balanceResp{Amount: b, Display: b.Display()}
}

// New registers storage ledger routes
func New(e *echo.Echo, storageUC storage.UseCase) {
	h := &handler{storageUC}

	g := e.Group("/storage")
	g.GET("/minimum-balance", h.minimumBalance)
	g.POST("/deposit", h.deposit)
	g.POST("/withdraw", h.withdraw)
	g.GET("/balance/:accountId", h.balanceOf, middleware.IsValidAccountId("accountId"))
}

func (h *handler) minimumBalance(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	return delivery.MakeJsonResp(_ctx, http.StatusOK, makeBalanceResp(h.storage.MinimumBalance(ctx)))
}

func (h *handler) deposit(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	type params struct {
		PayerId domain.AccountId `json:"payerId" validate:"required,account_id"`
		// AccountId optionally deposits on behalf of another account
		AccountId       domain.AccountId `json:"accountId"`
		AttachedDeposit domain.Balance   `json:"attachedDeposit" validate:"required,balance"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if err := _ctx.Validate(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}

	if err := h.storage.Deposit(ctx, p.PayerId, p.AccountId, p.AttachedDeposit); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, "ok")
}

func (h *handler) withdraw(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	type params struct {
		AccountId domain.AccountId `json:"accountId" validate:"required,account_id"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if err := _ctx.Validate(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}

	refund, err := h.storage.Withdraw(ctx, p.AccountId)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, makeBalanceResp(refund))
}

func (h *handler) balanceOf(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	accountId := domain.AccountId(_ctx.Param("accountId"))

	balance, err := h.storage.BalanceOf(ctx, accountId)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, makeBalanceResp(balance))
}
