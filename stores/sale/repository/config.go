package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/base/log"
	"github.com/tokenmart/goapi/domain"
	"github.com/tokenmart/goapi/domain/keys"
	"github.com/tokenmart/goapi/domain/market"
	"github.com/tokenmart/goapi/service/cache"
	"github.com/tokenmart/goapi/service/cache/provider/primitive"
	"github.com/tokenmart/goapi/service/query"
)

// the config collection holds a single versioned document
const configDocId = "marketplace"

type configImpl struct {
	query       query.Mongo
	configCache cache.Service
}

// NewConfig creates new marketplace config repo
func NewConfig(query query.Mongo) market.ConfigRepo {
	return &configImpl{
		query: query,
		configCache: cache.New(cache.ServiceConfig{
			Ttl:   10 * time.Second,
			Pfx:   keys.PfxMarketConfig,
			Cache: primitive.NewPrimitive(keys.PfxMarketConfig, 1),
		}),
	}
}

func (im *configImpl) Get(c ctx.Ctx) (*market.Config, error) {
	res := &market.Config{}

	if err := im.configCache.GetByFunc(c, configDocId, res, func() (interface{}, error) {
		return im.get(c)
	}); err != nil {
		return nil, err
	}

	return res, nil
}

func (im *configImpl) get(c ctx.Ctx) (*market.Config, error) {
	cfg := &market.Config{}
	err := im.query.FindOne(c, domain.TableMarketConfigs, bson.M{"docId": configDocId}, cfg)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("find market config failed")
		return nil, err
	}
	return cfg, nil
}

func (im *configImpl) Upsert(c ctx.Ctx, cfg *market.Config) error {
	update := bson.M{
		"docId":            configDocId,
		"ownerId":          cfg.OwnerId,
		"treasuryId":       cfg.TreasuryId,
		"contractCut":      cfg.ContractCut,
		"bidHistoryLength": cfg.BidHistoryLength,
		"ftTokenIds":       cfg.FtTokenIds,
		"version":          cfg.Version,
	}
	if err := im.query.Upsert(c, domain.TableMarketConfigs, bson.M{"docId": configDocId}, update); err != nil {
		c.WithFields(log.Fields{
			"version": cfg.Version,
			"err":     err,
		}).Error("upsert market config failed")
		return err
	}
	if err := im.configCache.Del(c, configDocId); err != nil {
		c.WithField("err", err).Error("configCache.Del failed")
	}
	return nil
}
