package market

import (
	"time"

	"github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/domain"
)

type SaleStatus string

const (
	// SaleStatusListed accepts offers and bids
	SaleStatusListed SaleStatus = "listed"
	// SaleStatusSettling is locked while a purchase is resolving on the token contract
	SaleStatusSettling SaleStatus = "settling"
)

// Bid is one entry of a sale's bounded bid history, most recent last
type Bid struct {
	BidderId  domain.AccountId `json:"bidderId" bson:"bidderId"`
	Price     domain.Balance   `json:"price" bson:"price"`
	FtTokenId domain.AccountId `json:"ftTokenId" bson:"ftTokenId"`
	CreatedAt time.Time        `json:"createdAt" bson:"createdAt"`
}

type Sale struct {
	NftContractToken   domain.ContractAndTokenId `json:"nftContractToken" bson:"nftContractToken"`
	NftContractId      domain.AccountId          `json:"nftContractId" bson:"nftContractId"`
	TokenId            domain.TokenId            `json:"tokenId" bson:"tokenId"`
	OwnerId            domain.AccountId          `json:"ownerId" bson:"ownerId"`
	ApprovalId         uint64                    `json:"approvalId" bson:"approvalId"`
	ApprovedAccountIds []domain.AccountId        `json:"approvedAccountIds" bson:"approvedAccountIds"`
	Conditions         []SaleCondition           `json:"saleConditions" bson:"saleConditions"`
	IsAuction          bool                      `json:"isAuction" bson:"isAuction"`
	Bids               []Bid                     `json:"bids" bson:"bids"`
	Status             SaleStatus                `json:"status" bson:"status"`

	// royalty terms are frozen at listing time so later changes on the
	// token contract or the marketplace cut never touch in-flight sales
	Royalties   Royalties          `json:"royalties" bson:"royalties"`
	ContractCut domain.BasisPoints `json:"contractCut" bson:"contractCut"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// ConditionFor returns the listed price for the given fungible token id,
// domain.NativeTokenId for the native asset.
func (s *Sale) ConditionFor(ftTokenId domain.AccountId) (domain.Balance, bool) {
	for _, c := range s.Conditions {
		if c.FtTokenId == ftTokenId {
			return c.Price, true
		}
	}
	return "", false
}

// BestBid returns the most recent bid, which by construction is the highest
// acceptable one, or nil when the history is empty.
func (s *Sale) BestBid() *Bid {
	if len(s.Bids) == 0 {
		return nil
	}
	return &s.Bids[len(s.Bids)-1]
}

type SalePatchable struct {
	Conditions *[]SaleCondition `bson:"saleConditions,omitempty"`
	Bids       *[]Bid           `bson:"bids,omitempty"`
	Status     *SaleStatus      `bson:"status,omitempty"`
}

type FindAllOptions struct {
	OwnerId       *domain.AccountId
	NftContractId *domain.AccountId
	Status        *SaleStatus
	BidderId      *domain.AccountId
	Offset        *int
	Limit         *int
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithOwnerId(ownerId domain.AccountId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.OwnerId = &ownerId
		return nil
	}
}

func WithNftContractId(contractId domain.AccountId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.NftContractId = &contractId
		return nil
	}
}

func WithStatus(status SaleStatus) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Status = &status
		return nil
	}
}

func WithBidderId(bidderId domain.AccountId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.BidderId = &bidderId
		return nil
	}
}

func WithPagination(offset, limit int) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		if offset < 0 || limit < 0 {
			return domain.ErrBadParamInput
		}
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type SaleRepo interface {
	FindOne(c ctx.Ctx, id domain.ContractAndTokenId) (*Sale, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Sale, error)
	Count(c ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
	// Insert fails with domain.ErrAlreadyListed when the key is taken
	Insert(c ctx.Ctx, sale *Sale) error
	Patch(c ctx.Ctx, id domain.ContractAndTokenId, patchable SalePatchable) error
	Remove(c ctx.Ctx, id domain.ContractAndTokenId) error
	// Lock transitions listed -> settling, failing with domain.ErrSaleLocked
	// when another settlement holds the sale. Linearizes per sale key.
	Lock(c ctx.Ctx, id domain.ContractAndTokenId) (*Sale, error)
	// Unlock transitions settling -> listed after a recoverable failure
	Unlock(c ctx.Ctx, id domain.ContractAndTokenId) error
}

type CreateSaleReq struct {
	NftContractId      domain.AccountId            `json:"nftContractId" validate:"required"`
	TokenId            domain.TokenId              `json:"tokenId" validate:"required"`
	OwnerId            domain.AccountId            `json:"ownerId" validate:"required"`
	ApprovalId         uint64                      `json:"approvalId"`
	ApprovedAccountIds []domain.AccountId          `json:"approvedAccountIds"`
	Royalties          map[domain.AccountId]uint32 `json:"royalties"`
	// Msg is the opaque payload forwarded from nft_approve, parsed as sale
	// conditions JSON at this boundary
	Msg string `json:"msg" validate:"required"`
}

type OfferReq struct {
	NftContractId   domain.AccountId `json:"nftContractId" validate:"required"`
	TokenId         domain.TokenId   `json:"tokenId" validate:"required"`
	BuyerId         domain.AccountId `json:"buyerId" validate:"required"`
	FtTokenId       domain.AccountId `json:"ftTokenId"`
	AttachedDeposit domain.Balance   `json:"attachedDeposit" validate:"required"`
}

type OfferResult struct {
	// Settlement is set when the offer transitioned the sale to settling
	Settlement *Settlement `json:"settlement,omitempty"`
	// Bid is set when the offer was recorded as an auction bid
	Bid *Bid `json:"bid,omitempty"`
	// EvictedBid holds the refunded entry when the history was full
	EvictedBid *Bid `json:"evictedBid,omitempty"`
}

type UseCase interface {
	CreateSale(c ctx.Ctx, req *CreateSaleReq) (*Sale, error)
	GetSale(c ctx.Ctx, id domain.ContractAndTokenId) (*Sale, error)
	RemoveSale(c ctx.Ctx, nftContractId domain.AccountId, tokenId domain.TokenId, callerId domain.AccountId) error
	UpdatePrice(c ctx.Ctx, nftContractId domain.AccountId, tokenId domain.TokenId, callerId domain.AccountId, ftTokenId domain.AccountId, price domain.Balance) error
	Offer(c ctx.Ctx, req *OfferReq) (*OfferResult, error)
	AcceptOffer(c ctx.Ctx, nftContractId domain.AccountId, tokenId domain.TokenId, callerId domain.AccountId) (*Settlement, error)
	ResolvePurchase(c ctx.Ctx, req *ResolvePurchaseReq) error
	GetSales(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Sale, error)
	// GetSupply returns a decimal-string count for the given scope
	GetSupply(c ctx.Ctx, opts ...FindAllOptionsFunc) (string, error)
	SetContractRoyalty(c ctx.Ctx, callerId domain.AccountId, cut domain.BasisPoints) error
}
