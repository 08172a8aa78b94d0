package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/base/database/mongoclient"
	"github.com/tokenmart/goapi/base/database/redisclient"
	"github.com/tokenmart/goapi/base/goroutine"
	"github.com/tokenmart/goapi/base/log"
	"github.com/tokenmart/goapi/base/metrics"
	bValidator "github.com/tokenmart/goapi/base/validator"
	"github.com/tokenmart/goapi/domain"
	"github.com/tokenmart/goapi/domain/market"
	mmiddleware "github.com/tokenmart/goapi/middleware"
	"github.com/tokenmart/goapi/service/chainrpc"
	"github.com/tokenmart/goapi/service/query"
	"github.com/tokenmart/goapi/service/redis"
	hc_delivery "github.com/tokenmart/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/tokenmart/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/tokenmart/goapi/stores/healthcheck/usecase"
	sale_delivery "github.com/tokenmart/goapi/stores/sale/delivery/http"
	sale_repository "github.com/tokenmart/goapi/stores/sale/repository"
	sale_usecase "github.com/tokenmart/goapi/stores/sale/usecase"
	storage_delivery "github.com/tokenmart/goapi/stores/storage/delivery/http"
	storage_repository "github.com/tokenmart/goapi/stores/storage/repository"
	storage_usecase "github.com/tokenmart/goapi/stores/storage/usecase"
)

func init() {
	configPath := pflag.String("config", "infra/configs/config.yaml", "path to config file")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configPath)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	// init Redis service
	context.Info("init redis cache")
	var redisCache redis.Service
	if redisCacheURI := viper.GetString("redis_cache.uri"); redisCacheURI != "" {
		redisCacheName := viper.GetString("redis_cache.name")
		redisCachePwd := viper.GetString("redis_cache.password")
		redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
		redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
			PoolMultiplier: redisCachePoolMultiplier,
		})
		redisCache = redis.New(redisCacheName, metrics.New(redisCacheName), &redis.Pools{
			Src: redisCachePool,
		})
	}

	// init chain rpc client
	context.Info("init chain rpc client")
	rpcClient := chainrpc.NewClient(&chainrpc.ClientCfg{
		HttpClient:      http.Client{},
		Timeout:         viper.GetDuration("chain.timeout"),
		NodeUrl:         viper.GetString("chain.nodeUrl"),
		MarketAccountId: domain.AccountId(viper.GetString("chain.marketAccountId")),
		CallbackUrl:     viper.GetString("chain.callbackUrl"),
	})

	saleRepo := sale_repository.NewSale(q, redisCache)
	settlementRepo := sale_repository.NewSettlement(q)
	configRepo := sale_repository.NewConfig(q)
	storageRepo := storage_repository.New(q)
	hcRepo := hc_repo.New(mongoClient, redisCache)

	storageUC := storage_usecase.New(&storage_usecase.StorageUseCaseCfg{
		Repo:         storageRepo,
		UsageCounter: saleRepo,
		Transferer:   rpcClient,
	})
	saleUC := sale_usecase.New(&sale_usecase.SaleUseCaseCfg{
		SaleRepo:        saleRepo,
		SettlementRepo:  settlementRepo,
		ConfigRepo:      configRepo,
		StorageUC:       storageUC,
		TokenClient:     rpcClient,
		FtClient:        rpcClient,
		Transferer:      rpcClient,
		MarketAccountId: domain.AccountId(viper.GetString("chain.marketAccountId")),
	})
	hcUC := hc_usecase.New(hcRepo)

	// seed the marketplace config on first boot
	if _, err := configRepo.Get(context); err == domain.ErrNotFound {
		cfg := &market.Config{
			OwnerId:          domain.AccountId(viper.GetString("market.ownerId")),
			TreasuryId:       domain.AccountId(viper.GetString("market.treasuryId")),
			ContractCut:      market.DefaultContractCut,
			BidHistoryLength: viper.GetInt("market.bidHistoryLength"),
			FtTokenIds:       []domain.AccountId{},
			Version:          1,
		}
		for _, id := range viper.GetStringSlice("market.ftTokenIds") {
			cfg.FtTokenIds = append(cfg.FtTokenIds, domain.AccountId(id))
		}
		if cut := viper.GetInt("market.contractCut"); cut > 0 {
			cfg.ContractCut = domain.BasisPoints(cut)
		}
		if cfg.BidHistoryLength <= 0 {
			cfg.BidHistoryLength = market.DefaultBidHistoryLength
		}
		if err := configRepo.Upsert(context, cfg); err != nil {
			log.Log().WithField("err", err).Panic("seed market config failed")
		}
	} else if err != nil {
		log.Log().WithField("err", err).Panic("load market config failed")
	}

	hc_delivery.New(e, hcUC)
	sale_delivery.New(e, saleUC)
	storage_delivery.New(e, storageUC)

	// watch for settlements stuck in pending
	goroutine.RecoverableGo(func() {
		watchStaleSettlements(context, settlementRepo)
	})

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}

// watchStaleSettlements flags unresolved settlements whose callback never
// arrived or never finished, so operators can resolve them by hand.
func watchStaleSettlements(context ctx.Ctx, repo market.SettlementRepo) {
	met := metrics.New("settlement")
	staleAfter := viper.GetDuration("market.settlementStaleAfter")
	if staleAfter == 0 {
		staleAfter = 10 * time.Minute
	}

	for range time.Tick(time.Minute) {
		stale := 0
		for _, status := range []market.SettlementStatus{market.SettlementStatusPending, market.SettlementStatusResolving} {
			unresolved, err := repo.FindAllByStatus(context, status, 0, 100)
			if err != nil {
				context.WithField("err", err).Error("list unresolved settlements failed")
				continue
			}

			for _, s := range unresolved {
				if time.Since(s.CreatedAt) > staleAfter {
					stale++
					context.WithFields(log.Fields{
						"settlementId": s.Id,
						"status":       s.Status,
						"createdAt":    s.CreatedAt,
					}).Warn("settlement unresolved past deadline")
				}
			}
		}
		met.BumpAvg("pending.stale", float64(stale))
	}
}
