package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/xerrors"

	"github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/base/database/mongoclient"
	hcdomain "github.com/tokenmart/goapi/domain/healthcheck"
	"github.com/tokenmart/goapi/domain/keys"
	"github.com/tokenmart/goapi/service/redis"
)

type impl struct {
	mgoClient  *mongoclient.Client
	redisCache redis.Service
}

// New creates new healthcheck repo
func New(
	mgoClient *mongoclient.Client,
	redisCache redis.Service,
) hcdomain.HealthCheckRepo {
	return &impl{
		mgoClient:  mgoClient,
		redisCache: redisCache,
	}
}

func (im *impl) PingDB(context ctx.Ctx) error {
	ctx, cancel := ctx.WithTimeout(context, 2*time.Second)
	defer cancel()
	if err := im.mgoClient.Ping(ctx, readpref.Primary()); err != nil {
		context.WithField("err", err).Error("ping mongo error")
		return xerrors.Errorf("ping mongo: %w", err)
	}

	if im.redisCache != nil {
		if err := im.redisCache.Set(ctx, keys.RedisKey(keys.PfxHealthCheck, "testset"), []byte("1"), 30*time.Second); err != nil {
			context.WithField("err", err).Error("test redis set failed")
			return xerrors.Errorf("redis set: %w", err)
		}
	}
	return nil
}
