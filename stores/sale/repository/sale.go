package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/base/database/mongoclient"
	"github.com/tokenmart/goapi/base/log"
	"github.com/tokenmart/goapi/domain"
	"github.com/tokenmart/goapi/domain/keys"
	"github.com/tokenmart/goapi/domain/market"
	"github.com/tokenmart/goapi/domain/storage"
	"github.com/tokenmart/goapi/service/cache"
	"github.com/tokenmart/goapi/service/cache/provider"
	"github.com/tokenmart/goapi/service/cache/provider/compound"
	"github.com/tokenmart/goapi/service/cache/provider/primitive"
	redisCache "github.com/tokenmart/goapi/service/cache/provider/redis"
	"github.com/tokenmart/goapi/service/query"
	"github.com/tokenmart/goapi/service/redis"
)

// SaleRepo is the sale persistence surface plus the storage usage counter
// derived from it
type SaleRepo interface {
	market.SaleRepo
	storage.UsageCounter
}

type saleImpl struct {
	query     query.Mongo
	saleCache cache.Service
}

// NewSale creates new sale repo
func NewSale(query query.Mongo, redis redis.Service) SaleRepo {
	cacheProviders := []provider.Provider{
		primitive.NewPrimitive(keys.PfxSale, 64),
	}

	if redis != nil {
		cacheProviders = append(cacheProviders, redisCache.NewRedis(redis))
	}

	return &saleImpl{
		query: query,
		saleCache: cache.New(cache.ServiceConfig{
			Ttl:   time.Minute,
			Pfx:   keys.PfxSale,
			Cache: compound.NewCompound(cacheProviders),
		}),
	}
}

func (im *saleImpl) FindOne(c ctx.Ctx, id domain.ContractAndTokenId) (*market.Sale, error) {
	res := &market.Sale{}

	if err := im.saleCache.GetByFunc(c, string(id), res, func() (interface{}, error) {
		return im.findOne(c, id)
	}); err != nil {
		return nil, err
	}

	return res, nil
}

func (im *saleImpl) findOne(c ctx.Ctx, id domain.ContractAndTokenId) (*market.Sale, error) {
	sale := &market.Sale{}
	err := im.query.FindOne(c, domain.TableSales, bson.M{"nftContractToken": id}, sale)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("find sale failed")
		return nil, err
	}
	return sale, nil
}

func makeSelector(opts ...market.FindAllOptionsFunc) (bson.M, market.FindAllOptions, error) {
	options, err := market.GetFindAllOptions(opts...)
	if err != nil {
		return nil, options, err
	}

	selector := bson.M{}

	if options.OwnerId != nil {
		selector["ownerId"] = *options.OwnerId
	}

	if options.NftContractId != nil {
		selector["nftContractId"] = *options.NftContractId
	}

	if options.Status != nil {
		selector["status"] = *options.Status
	}

	if options.BidderId != nil {
		selector["bids.bidderId"] = *options.BidderId
	}

	return selector, options, nil
}

func (im *saleImpl) FindAll(c ctx.Ctx, opts ...market.FindAllOptionsFunc) ([]*market.Sale, error) {
	selector, options, err := makeSelector(opts...)
	if err != nil {
		return nil, err
	}

	offset := 0
	limit := 0

	if options.Offset != nil {
		offset = *options.Offset
	}

	if options.Limit != nil {
		limit = *options.Limit
	}

	sales := []*market.Sale{}
	if err := im.query.Search(c, domain.TableSales, offset, limit, "createdAt", selector, &sales); err != nil {
		c.WithFields(log.Fields{
			"selector": selector,
			"err":      err,
		}).Error("search sales failed")
		return nil, err
	}
	return sales, nil
}

func (im *saleImpl) Count(c ctx.Ctx, opts ...market.FindAllOptionsFunc) (int, error) {
	selector, _, err := makeSelector(opts...)
	if err != nil {
		return 0, err
	}

	count, err := im.query.Count(c, domain.TableSales, selector)
	if err != nil {
		c.WithFields(log.Fields{
			"selector": selector,
			"err":      err,
		}).Error("count sales failed")
		return 0, err
	}
	return count, nil
}

func (im *saleImpl) Insert(c ctx.Ctx, sale *market.Sale) error {
	if err := im.query.Insert(c, domain.TableSales, sale); err == query.ErrDuplicateKey {
		return domain.ErrAlreadyListed
	} else if err != nil {
		c.WithFields(log.Fields{
			"id":  sale.NftContractToken,
			"err": err,
		}).Error("insert sale failed")
		return err
	}
	return nil
}

func (im *saleImpl) Patch(c ctx.Ctx, id domain.ContractAndTokenId, patchable market.SalePatchable) error {
	patchableBson, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("make bsonM failed")
		return err
	}
	if err := im.query.Patch(c, domain.TableSales, bson.M{"nftContractToken": id}, patchableBson); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("patch sale failed")
		return err
	}
	return im.invalidateCache(c, id)
}

func (im *saleImpl) Remove(c ctx.Ctx, id domain.ContractAndTokenId) error {
	if err := im.query.Remove(c, domain.TableSales, bson.M{"nftContractToken": id}); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("remove sale failed")
		return err
	}
	return im.invalidateCache(c, id)
}

// Lock flips status listed -> settling with a conditional patch, so two
// concurrent settlements on the same sale can never both proceed.
func (im *saleImpl) Lock(c ctx.Ctx, id domain.ContractAndTokenId) (*market.Sale, error) {
	selector := bson.M{
		"nftContractToken": id,
		"status":           market.SaleStatusListed,
	}
	update := bson.M{
		"$set": bson.M{"status": market.SaleStatusSettling},
	}
	if err := im.query.CustomPatch(c, domain.TableSales, selector, update, false); err == query.ErrNotFound {
		// either the sale is gone or another settlement holds it
		if _, err := im.findOne(c, id); err != nil {
			return nil, err
		}
		return nil, domain.ErrSaleLocked
	} else if err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("lock sale failed")
		return nil, err
	}
	if err := im.invalidateCache(c, id); err != nil {
		return nil, err
	}
	return im.findOne(c, id)
}

func (im *saleImpl) Unlock(c ctx.Ctx, id domain.ContractAndTokenId) error {
	selector := bson.M{
		"nftContractToken": id,
		"status":           market.SaleStatusSettling,
	}
	update := bson.M{
		"$set": bson.M{"status": market.SaleStatusListed},
	}
	if err := im.query.CustomPatch(c, domain.TableSales, selector, update, false); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("unlock sale failed")
		return err
	}
	return im.invalidateCache(c, id)
}

// CountStorageUnits counts the storage bearing records an account holds,
// one unit per listed sale plus one per live bid.
func (im *saleImpl) CountStorageUnits(c ctx.Ctx, accountId domain.AccountId) (int, error) {
	saleCount, err := im.query.Count(c, domain.TableSales, bson.M{"ownerId": accountId})
	if err != nil {
		c.WithFields(log.Fields{
			"accountId": accountId,
			"err":       err,
		}).Error("count sales failed")
		return 0, err
	}

	// one unit per sale the account holds a live bid on
	bidCount, err := im.query.Count(c, domain.TableSales, bson.M{"bids.bidderId": accountId})
	if err != nil {
		c.WithFields(log.Fields{
			"accountId": accountId,
			"err":       err,
		}).Error("count bids failed")
		return 0, err
	}

	return saleCount + bidCount, nil
}

func (im *saleImpl) invalidateCache(c ctx.Ctx, id domain.ContractAndTokenId) error {
	if err := im.saleCache.Del(c, string(id)); err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("saleCache.Del failed")
		return err
	}
	return nil
}
