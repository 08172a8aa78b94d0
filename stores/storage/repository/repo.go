package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/tokenmart/goapi/base/backoff"
	"github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/base/log"
	"github.com/tokenmart/goapi/domain"
	"github.com/tokenmart/goapi/domain/storage"
	"github.com/tokenmart/goapi/service/query"
)

const incrementRetries = 5

type impl struct {
	query query.Mongo
}

// New creates new storage balance repo
func New(query query.Mongo) storage.Repo {
	return &impl{query: query}
}

func (im *impl) FindOne(c ctx.Ctx, accountId domain.AccountId) (*storage.Balance, error) {
	balance := &storage.Balance{}
	err := im.query.FindOne(c, domain.TableStorageBalances, bson.M{"accountId": accountId}, balance)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"accountId": accountId,
			"err":       err,
		}).Error("find storage balance failed")
		return nil, err
	}
	return balance, nil
}

// IncrementDeposit adds amount on top of whatever is deposited now. Amounts
// exceed int64 so mongo's $inc cannot apply; instead the current value is
// read and a conditional patch ensures nobody moved it in between, retrying
// with backoff on contention.
func (im *impl) IncrementDeposit(c ctx.Ctx, accountId domain.AccountId, amount domain.Balance) error {
	bo := backoff.NewExponential(10*time.Millisecond, 200*time.Millisecond)

	for i := 0; i < incrementRetries; i++ {
		current, err := im.FindOne(c, accountId)
		if err == domain.ErrNotFound {
			err := im.query.Insert(c, domain.TableStorageBalances, &storage.Balance{
				AccountId: accountId,
				Deposited: amount,
				UpdatedAt: time.Now(),
			})
			if err == query.ErrDuplicateKey {
				// someone created the entry first, retry as an update
				continue
			} else if err != nil {
				c.WithFields(log.Fields{
					"accountId": accountId,
					"err":       err,
				}).Error("insert storage balance failed")
				return err
			}
			return nil
		} else if err != nil {
			return err
		}

		next, err := addBalances(current.Deposited, amount)
		if err != nil {
			return err
		}

		selector := bson.M{
			"accountId": accountId,
			"deposited": current.Deposited,
		}
		update := bson.M{
			"$set": bson.M{
				"deposited": next,
				"updatedAt": time.Now(),
			},
		}
		err = im.query.CustomPatch(c, domain.TableStorageBalances, selector, update, false)
		if err == nil {
			return nil
		} else if err != query.ErrNotFound {
			c.WithFields(log.Fields{
				"accountId": accountId,
				"err":       err,
			}).Error("patch storage balance failed")
			return err
		}

		// deposited moved under us, back off and retry
		if err := bo.Backoff(c); err != nil {
			return err
		}
	}

	c.WithField("accountId", accountId).Error("increment deposit exhausted retries")
	return domain.ErrInternalServerError
}

func (im *impl) SetDeposited(c ctx.Ctx, accountId domain.AccountId, deposited domain.Balance) error {
	selector := bson.M{"accountId": accountId}
	update := bson.M{
		"accountId": accountId,
		"deposited": deposited,
		"updatedAt": time.Now(),
	}
	if err := im.query.Upsert(c, domain.TableStorageBalances, selector, update); err != nil {
		c.WithFields(log.Fields{
			"accountId": accountId,
			"err":       err,
		}).Error("upsert storage balance failed")
		return err
	}
	return nil
}

func addBalances(a, b domain.Balance) (domain.Balance, error) {
	ai, err := a.BigInt()
	if err != nil {
		return "", err
	}
	bi, err := b.BigInt()
	if err != nil {
		return "", err
	}
	return domain.BalanceFromBigInt(ai.Add(ai, bi)), nil
}
