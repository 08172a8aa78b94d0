package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/base/database/mongoclient"
	"github.com/tokenmart/goapi/base/log"
	"github.com/tokenmart/goapi/domain"
	"github.com/tokenmart/goapi/domain/market"
	"github.com/tokenmart/goapi/service/query"
)

type settlementImpl struct {
	query query.Mongo
}

// NewSettlement creates new settlement repo
func NewSettlement(query query.Mongo) market.SettlementRepo {
	return &settlementImpl{query: query}
}

func (im *settlementImpl) FindOne(c ctx.Ctx, id string) (*market.Settlement, error) {
	settlement := &market.Settlement{}
	err := im.query.FindOne(c, domain.TableSettlements, bson.M{"id": id}, settlement)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("find settlement failed")
		return nil, err
	}
	return settlement, nil
}

func (im *settlementImpl) FindAllByStatus(c ctx.Ctx, status market.SettlementStatus, offset, limit int) ([]*market.Settlement, error) {
	settlements := []*market.Settlement{}
	selector := bson.M{"status": status}
	if err := im.query.Search(c, domain.TableSettlements, offset, limit, "createdAt", selector, &settlements); err != nil {
		c.WithFields(log.Fields{
			"status": status,
			"err":    err,
		}).Error("search settlements failed")
		return nil, err
	}
	return settlements, nil
}

func (im *settlementImpl) Insert(c ctx.Ctx, settlement *market.Settlement) error {
	if err := im.query.Insert(c, domain.TableSettlements, settlement); err != nil {
		c.WithFields(log.Fields{
			"id":  settlement.Id,
			"err": err,
		}).Error("insert settlement failed")
		return err
	}
	return nil
}

// Claim flips status pending -> resolving with a conditional patch, so two
// redelivered callbacks can never both dispatch the payout loop.
func (im *settlementImpl) Claim(c ctx.Ctx, id string) (*market.Settlement, error) {
	selector := bson.M{
		"id":     id,
		"status": market.SettlementStatusPending,
	}
	update := bson.M{
		"$set": bson.M{"status": market.SettlementStatusResolving},
	}
	if err := im.query.CustomPatch(c, domain.TableSettlements, selector, update, false); err == query.ErrNotFound {
		// either the settlement is missing or another callback holds it
		if _, err := im.FindOne(c, id); err != nil {
			return nil, err
		}
		return nil, domain.ErrSettlementResolved
	} else if err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("claim settlement failed")
		return nil, err
	}
	return im.FindOne(c, id)
}

func (im *settlementImpl) Update(c ctx.Ctx, id string, patchable market.SettlementPatchable) error {
	patchableBson, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("make bsonM failed")
		return err
	}
	if err := im.query.Patch(c, domain.TableSettlements, bson.M{"id": id}, patchableBson); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("patch settlement failed")
		return err
	}
	return nil
}
