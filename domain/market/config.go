package market

import (
	"github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/domain"
)

// DefaultContractCut is the marketplace's own share of each sale, 5%
const DefaultContractCut = domain.BasisPoints(500)

// DefaultBidHistoryLength bounds per sale bid retention
const DefaultBidHistoryLength = 8

// Config is the process wide marketplace configuration, initialized once
// and mutated only through owner-only calls. Sales snapshot the cut at
// listing time, so edits never retroactively change in-flight sales.
type Config struct {
	OwnerId          domain.AccountId   `json:"ownerId" bson:"ownerId"`
	TreasuryId       domain.AccountId   `json:"treasuryId" bson:"treasuryId"`
	ContractCut      domain.BasisPoints `json:"contractCut" bson:"contractCut"`
	BidHistoryLength int                `json:"bidHistoryLength" bson:"bidHistoryLength"`
	// FtTokenIds whitelists fungible tokens accepted as sale denominations
	FtTokenIds []domain.AccountId `json:"ftTokenIds" bson:"ftTokenIds"`
	Version    int64              `json:"version" bson:"version"`
}

func (cfg *Config) AcceptsFtToken(ftTokenId domain.AccountId) bool {
	if ftTokenId == domain.NativeTokenId {
		return true
	}
	for _, id := range cfg.FtTokenIds {
		if id == ftTokenId {
			return true
		}
	}
	return false
}

type ConfigRepo interface {
	Get(c ctx.Ctx) (*Config, error)
	Upsert(c ctx.Ctx, cfg *Config) error
}
