package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/base/delivery"
	"github.com/tokenmart/goapi/domain"
	"github.com/tokenmart/goapi/domain/market"
	"github.com/tokenmart/goapi/middleware"
)

type handler struct {
	market market.UseCase
}

// New registers market routes
func New(e *echo.Echo, marketUC market.UseCase) {
	h := &handler{marketUC}

	g := e.Group("/market")
	g.POST("/nft-on-approve", h.nftOnApprove)
	g.POST("/offer", h.offer)
	g.POST("/accept-offer", h.acceptOffer)
	g.POST("/price", h.updatePrice)
	g.DELETE("/sale", h.removeSale)
	g.GET("/sale/:nftContractToken", h.getSale)
	g.GET("/sales/owner/:accountId", h.getSalesByOwner, middleware.IsValidAccountId("accountId"))
	g.GET("/sales/collection/:contractId", h.getSalesByCollection, middleware.IsValidAccountId("contractId"))
	g.GET("/supply/sales", h.getSupply)
	g.GET("/supply/owner/:accountId", h.getSupplyByOwner, middleware.IsValidAccountId("accountId"))
	g.GET("/supply/collection/:contractId", h.getSupplyByCollection, middleware.IsValidAccountId("contractId"))
	g.POST("/contract-royalty", h.setContractRoyalty)
	g.POST("/resolve-purchase", h.resolvePurchase)
}

// nftOnApprove is the webhook the approval relay posts when an NFT
// contract approves the marketplace, listing the token for sale.
func (h *handler) nftOnApprove(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	p := &market.CreateSaleReq{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if err := _ctx.Validate(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}

	sale, err := h.market.CreateSale(ctx, p)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusCreated, sale)
}

func (h *handler) offer(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	p := &market.OfferReq{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if err := _ctx.Validate(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}

	res, err := h.market.Offer(ctx, p)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}

func (h *handler) acceptOffer(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	type params struct {
		NftContractId domain.AccountId `json:"nftContractId" validate:"required"`
		TokenId       domain.TokenId   `json:"tokenId" validate:"required"`
		AccountId     domain.AccountId `json:"accountId" validate:"required"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if err := _ctx.Validate(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}

	settlement, err := h.market.AcceptOffer(ctx, p.NftContractId, p.TokenId, p.AccountId)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, settlement)
}

func (h *handler) updatePrice(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	type params struct {
		NftContractId domain.AccountId `json:"nftContractId" validate:"required"`
		TokenId       domain.TokenId   `json:"tokenId" validate:"required"`
		AccountId     domain.AccountId `json:"accountId" validate:"required"`
		FtTokenId     domain.AccountId `json:"ftTokenId"`
		Price         domain.Balance   `json:"price" validate:"required,balance"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if err := _ctx.Validate(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}

	ftTokenId := p.FtTokenId
	if ftTokenId == "" {
		ftTokenId = domain.NativeTokenId
	}

	if err := h.market.UpdatePrice(ctx, p.NftContractId, p.TokenId, p.AccountId, ftTokenId, p.Price); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, "ok")
}

func (h *handler) removeSale(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	type params struct {
		NftContractId domain.AccountId `json:"nftContractId" validate:"required"`
		TokenId       domain.TokenId   `json:"tokenId" validate:"required"`
		AccountId     domain.AccountId `json:"accountId" validate:"required"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if err := _ctx.Validate(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}

	if err := h.market.RemoveSale(ctx, p.NftContractId, p.TokenId, p.AccountId); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, "ok")
}

func (h *handler) getSale(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	id := domain.ContractAndTokenId(_ctx.Param("nftContractToken"))

	sale, err := h.market.GetSale(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, sale)
}

type pagingParams struct {
	Offset int `query:"offset"`
	Limit  int `query:"limit"`
}

func (p *pagingParams) options() []market.FindAllOptionsFunc {
	limit := p.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}
	return []market.FindAllOptionsFunc{market.WithPagination(offset, limit)}
}

func (h *handler) getSalesByOwner(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	p := &pagingParams{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}

	opts := append(p.options(), market.WithOwnerId(domain.AccountId(_ctx.Param("accountId"))))

	sales, err := h.market.GetSales(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, sales)
}

func (h *handler) getSalesByCollection(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	p := &pagingParams{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}

	opts := append(p.options(), market.WithNftContractId(domain.AccountId(_ctx.Param("contractId"))))

	sales, err := h.market.GetSales(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, sales)
}

func (h *handler) getSupply(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	supply, err := h.market.GetSupply(ctx)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, supply)
}

func (h *handler) getSupplyByOwner(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	supply, err := h.market.GetSupply(ctx, market.WithOwnerId(domain.AccountId(_ctx.Param("accountId"))))
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, supply)
}

func (h *handler) getSupplyByCollection(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	supply, err := h.market.GetSupply(ctx, market.WithNftContractId(domain.AccountId(_ctx.Param("contractId"))))
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, supply)
}

func (h *handler) setContractRoyalty(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	type params struct {
		AccountId domain.AccountId   `json:"accountId" validate:"required"`
		Cut       domain.BasisPoints `json:"cut"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if err := _ctx.Validate(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}

	if err := h.market.SetContractRoyalty(ctx, p.AccountId, p.Cut); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, "ok")
}

// resolvePurchase is the settlement callback posted by the node relay once
// the cross contract transfer concludes.
func (h *handler) resolvePurchase(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	p := &market.ResolvePurchaseReq{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if err := _ctx.Validate(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}

	if err := h.market.ResolvePurchase(ctx, p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, "ok")
}
