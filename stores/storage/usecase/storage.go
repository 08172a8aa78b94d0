package usecase

import (
	"math/big"

	"github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/base/log"
	"github.com/tokenmart/goapi/domain"
	"github.com/tokenmart/goapi/domain/nft"
	"github.com/tokenmart/goapi/domain/storage"
)

type StorageUseCaseCfg struct {
	Repo         storage.Repo
	UsageCounter storage.UsageCounter
	Transferer   nft.NativeTransferer
}

type impl struct {
	repo         storage.Repo
	usageCounter storage.UsageCounter
	transferer   nft.NativeTransferer
}

// New creates storage usecase
func New(cfg *StorageUseCaseCfg) storage.UseCase {
	return &impl{
		repo:         cfg.Repo,
		usageCounter: cfg.UsageCounter,
		transferer:   cfg.Transferer,
	}
}

func (im *impl) Deposit(c ctx.Ctx, payerId, accountId domain.AccountId, amount domain.Balance) error {
	if accountId == "" {
		accountId = payerId
	}
	if !accountId.IsValid() {
		return domain.ErrInvalidAccountId
	}

	attached, err := amount.BigInt()
	if err != nil {
		return domain.ErrInvalidNumberFormat
	}
	minimum, _ := storage.MinimumBalance.BigInt()
	if attached.Cmp(minimum) < 0 {
		c.WithFields(log.Fields{
			"accountId": accountId,
			"amount":    amount,
		}).Warn("deposit below minimum")
		return domain.ErrInsufficientStorageDeposit
	}

	if err := im.repo.IncrementDeposit(c, accountId, amount); err != nil {
		c.WithFields(log.Fields{
			"accountId": accountId,
			"err":       err,
		}).Error("increment deposit failed")
		return err
	}
	return nil
}

// Withdraw pays back everything live sales and bids do not consume and
// keeps the rest on the ledger.
func (im *impl) Withdraw(c ctx.Ctx, accountId domain.AccountId) (domain.Balance, error) {
	deposited, used, err := im.balances(c, accountId)
	if err != nil {
		return "", err
	}

	unused := new(big.Int).Sub(deposited, used)
	if unused.Sign() <= 0 {
		return domain.ZeroBalance, nil
	}

	if err := im.repo.SetDeposited(c, accountId, domain.BalanceFromBigInt(used)); err != nil {
		return "", err
	}

	refund := domain.BalanceFromBigInt(unused)
	if err := im.transferer.TransferNative(c, accountId, refund); err != nil {
		c.WithFields(log.Fields{
			"accountId": accountId,
			"refund":    refund,
			"err":       err,
		}).Error("withdraw transfer failed")
		// restore the ledger so the deposit is not lost
		if err := im.repo.SetDeposited(c, accountId, domain.BalanceFromBigInt(deposited)); err != nil {
			c.WithFields(log.Fields{
				"accountId": accountId,
				"err":       err,
			}).Error("restore deposit failed")
		}
		return "", err
	}

	return refund, nil
}

func (im *impl) BalanceOf(c ctx.Ctx, accountId domain.AccountId) (domain.Balance, error) {
	deposited, used, err := im.balances(c, accountId)
	if err != nil {
		return "", err
	}
	free := new(big.Int).Sub(deposited, used)
	if free.Sign() < 0 {
		free.SetInt64(0)
	}
	return domain.BalanceFromBigInt(free), nil
}

func (im *impl) MinimumBalance(c ctx.Ctx) domain.Balance {
	return storage.MinimumBalance
}

func (im *impl) HasCapacityFor(c ctx.Ctx, accountId domain.AccountId, units int) (bool, error) {
	deposited, used, err := im.balances(c, accountId)
	if err != nil {
		return false, err
	}

	minimum, _ := storage.MinimumBalance.BigInt()
	needed := new(big.Int).Mul(minimum, big.NewInt(int64(units)))
	needed.Add(needed, used)

	return deposited.Cmp(needed) >= 0, nil
}

// balances returns the deposited amount and the amount consumed by live
// sales and bids, both in native units.
func (im *impl) balances(c ctx.Ctx, accountId domain.AccountId) (deposited, used *big.Int, err error) {
	entry, err := im.repo.FindOne(c, accountId)
	if err == domain.ErrNotFound {
		deposited = big.NewInt(0)
	} else if err != nil {
		return nil, nil, err
	} else if deposited, err = entry.Deposited.BigInt(); err != nil {
		return nil, nil, err
	}

	units, err := im.usageCounter.CountStorageUnits(c, accountId)
	if err != nil {
		return nil, nil, err
	}

	minimum, _ := storage.MinimumBalance.BigInt()
	used = new(big.Int).Mul(minimum, big.NewInt(int64(units)))
	return deposited, used, nil
}
