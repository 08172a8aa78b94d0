package storage

import (
	"math/big"
	"time"

	"github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/domain"
)

// MinimumBalance is the deposit one sale or bid consumes, 0.01 in native
// units at 24 decimals
var MinimumBalance = domain.Balance(new(big.Int).Exp(big.NewInt(10), big.NewInt(22), nil).String())

// Balance is one account's storage ledger entry. Used is derived from the
// account's live sales and bids, never stored, so the two can't drift.
type Balance struct {
	AccountId domain.AccountId `json:"accountId" bson:"accountId"`
	Deposited domain.Balance   `json:"deposited" bson:"deposited"`
	UpdatedAt time.Time        `json:"updatedAt" bson:"updatedAt"`
}

type Repo interface {
	FindOne(c ctx.Ctx, accountId domain.AccountId) (*Balance, error)
	// IncrementDeposit adds amount to the account's deposit, creating the
	// entry when absent. Never a silent no-op.
	IncrementDeposit(c ctx.Ctx, accountId domain.AccountId, amount domain.Balance) error
	SetDeposited(c ctx.Ctx, accountId domain.AccountId, deposited domain.Balance) error
}

// UsageCounter reports how many storage-consuming records an account
// currently holds. Implemented by the sale store.
type UsageCounter interface {
	CountStorageUnits(c ctx.Ctx, accountId domain.AccountId) (int, error)
}

type UseCase interface {
	// Deposit credits payerId's attached amount to accountId's ledger
	Deposit(c ctx.Ctx, payerId, accountId domain.AccountId, amount domain.Balance) error
	// Withdraw returns the unused part of the deposit, leaving exactly what
	// live sales and bids still consume
	Withdraw(c ctx.Ctx, accountId domain.AccountId) (domain.Balance, error)
	// BalanceOf returns deposited - used as a decimal string
	BalanceOf(c ctx.Ctx, accountId domain.AccountId) (domain.Balance, error)
	MinimumBalance(c ctx.Ctx) domain.Balance
	// HasCapacityFor reports whether the account's free deposit covers
	// `units` more sales or bids
	HasCapacityFor(c ctx.Ctx, accountId domain.AccountId, units int) (bool, error)
}
