package market

import (
	"time"

	"github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/domain"
)

type SettlementStatus string

const (
	// SettlementStatusPending awaits the token transfer confirmation
	SettlementStatusPending SettlementStatus = "pending"
	// SettlementStatusResolving is held by the callback currently dispatching
	// refunds or payouts
	SettlementStatusResolving SettlementStatus = "resolving"
	// SettlementStatusCompleted dispatched every payout
	SettlementStatusCompleted SettlementStatus = "completed"
	// SettlementStatusRefunded returned the buyer's deposit, sale stays listed
	SettlementStatusRefunded SettlementStatus = "refunded"
	// SettlementStatusPayoutFailed moved the token but could not dispatch
	// part of the payout; kept for manual remediation
	SettlementStatusPayoutFailed SettlementStatus = "payout_failed"
)

// Settlement persists everything the purchase callback needs, so resuming
// after the cross-contract transfer never depends on in-memory state.
type Settlement struct {
	Id               string                    `json:"id" bson:"id"`
	NftContractToken domain.ContractAndTokenId `json:"nftContractToken" bson:"nftContractToken"`
	NftContractId    domain.AccountId          `json:"nftContractId" bson:"nftContractId"`
	TokenId          domain.TokenId            `json:"tokenId" bson:"tokenId"`
	SellerId         domain.AccountId          `json:"sellerId" bson:"sellerId"`
	BuyerId          domain.AccountId          `json:"buyerId" bson:"buyerId"`
	Price            domain.Balance            `json:"price" bson:"price"`
	FtTokenId        domain.AccountId          `json:"ftTokenId" bson:"ftTokenId"`
	ApprovalId       uint64                    `json:"approvalId" bson:"approvalId"`
	Royalties        Royalties                 `json:"royalties" bson:"royalties"`
	ContractCut      domain.BasisPoints        `json:"contractCut" bson:"contractCut"`
	Status           SettlementStatus          `json:"status" bson:"status"`
	// FailedPayouts records entries that could not be dispatched
	FailedPayouts Payout     `json:"failedPayouts,omitempty" bson:"failedPayouts,omitempty"`
	FailureReason string     `json:"failureReason,omitempty" bson:"failureReason,omitempty"`
	CreatedAt     time.Time  `json:"createdAt" bson:"createdAt"`
	ResolvedAt    *time.Time `json:"resolvedAt,omitempty" bson:"resolvedAt,omitempty"`
}

type SettlementPatchable struct {
	Status        *SettlementStatus `bson:"status,omitempty"`
	FailedPayouts *Payout           `bson:"failedPayouts,omitempty"`
	FailureReason *string           `bson:"failureReason,omitempty"`
	ResolvedAt    *time.Time        `bson:"resolvedAt,omitempty"`
}

type SettlementRepo interface {
	FindOne(c ctx.Ctx, id string) (*Settlement, error)
	FindAllByStatus(c ctx.Ctx, status SettlementStatus, offset, limit int) ([]*Settlement, error)
	Insert(c ctx.Ctx, settlement *Settlement) error
	Update(c ctx.Ctx, id string, patchable SettlementPatchable) error
	// Claim flips status pending -> resolving with a conditional patch and
	// returns the claimed settlement. A redelivered callback racing for the
	// same settlement gets ErrSettlementResolved.
	Claim(c ctx.Ctx, id string) (*Settlement, error)
}

// ResolvePurchaseReq resumes a pending settlement with the cross-contract
// transfer outcome. Payout optionally carries the token contract's reported
// split for verification against the snapshot.
type ResolvePurchaseReq struct {
	SettlementId string `json:"settlementId" validate:"required"`
	Success      bool   `json:"success"`
	Payout       Payout `json:"payout,omitempty"`
}
