package nft

import (
	"github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/domain"
)

// TokenClient initiates calls against an external NFT contract. Transfer
// outcomes arrive asynchronously through the purchase resolution callback;
// TransferPayout only reports whether the call was dispatched.
type TokenClient interface {
	TransferPayout(c ctx.Ctx, nftContractId, receiverId domain.AccountId, tokenId domain.TokenId, approvalId uint64, memo string, balance domain.Balance, maxLenPayout uint32) error
	// Token reads current ownership and approvals from the NFT contract
	Token(c ctx.Ctx, nftContractId domain.AccountId, tokenId domain.TokenId) (*Token, error)
}

// Token is the view the NFT contract exposes for a single token
type Token struct {
	TokenId            domain.TokenId              `json:"token_id"`
	OwnerId            domain.AccountId            `json:"owner_id"`
	ApprovedAccountIds map[domain.AccountId]uint64 `json:"approved_account_ids"`
	Royalty            map[domain.AccountId]uint32 `json:"royalty"`
}

// FungibleTokenClient moves fungible token balances for FT-denominated
// payouts and refunds
type FungibleTokenClient interface {
	Transfer(c ctx.Ctx, ftContractId, receiverId domain.AccountId, amount domain.Balance, memo string) error
}

// NativeTransferer moves the native asset out of the marketplace account
type NativeTransferer interface {
	TransferNative(c ctx.Ctx, receiverId domain.AccountId, amount domain.Balance) error
}
