package usecase

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/base/log"
	"github.com/tokenmart/goapi/base/ptr"
	"github.com/tokenmart/goapi/domain"
	"github.com/tokenmart/goapi/domain/market"
	"github.com/tokenmart/goapi/domain/nft"
	"github.com/tokenmart/goapi/domain/storage"
)

const payoutMemo = "payout from market"

type SaleUseCaseCfg struct {
	SaleRepo        market.SaleRepo
	SettlementRepo  market.SettlementRepo
	ConfigRepo      market.ConfigRepo
	StorageUC       storage.UseCase
	TokenClient     nft.TokenClient
	FtClient        nft.FungibleTokenClient
	Transferer      nft.NativeTransferer
	MarketAccountId domain.AccountId
}

type impl struct {
	saleRepo        market.SaleRepo
	settlementRepo  market.SettlementRepo
	configRepo      market.ConfigRepo
	storage         storage.UseCase
	tokenClient     nft.TokenClient
	ftClient        nft.FungibleTokenClient
	transferer      nft.NativeTransferer
	marketAccountId domain.AccountId
}

// New creates sale usecase
func New(cfg *SaleUseCaseCfg) market.UseCase {
	return &impl{
		saleRepo:        cfg.SaleRepo,
		settlementRepo:  cfg.SettlementRepo,
		configRepo:      cfg.ConfigRepo,
		storage:         cfg.StorageUC,
		tokenClient:     cfg.TokenClient,
		ftClient:        cfg.FtClient,
		transferer:      cfg.Transferer,
		marketAccountId: cfg.MarketAccountId,
	}
}

func (im *impl) CreateSale(c ctx.Ctx, req *market.CreateSaleReq) (*market.Sale, error) {
	if !req.NftContractId.IsValid() || !req.OwnerId.IsValid() || len(req.TokenId) == 0 {
		return nil, domain.ErrInvalidAccountId
	}

	conditions, isAuction, err := market.ParseApprovalMsg(req.Msg)
	if err != nil {
		return nil, err
	}

	cfg, err := im.configRepo.Get(c)
	if err != nil {
		return nil, err
	}

	for _, condition := range conditions {
		if !cfg.AcceptsFtToken(condition.FtTokenId) {
			c.WithFields(log.Fields{
				"ftTokenId": condition.FtTokenId,
			}).Warn("sale condition names unsupported ft token")
			return nil, domain.ErrBadParamInput
		}
	}

	royalties := market.RoyaltiesFromMap(req.Royalties)
	if err := market.ValidateRoyalties(royalties, cfg.ContractCut); err != nil {
		return nil, err
	}

	if ok, err := im.storage.HasCapacityFor(c, req.OwnerId, 1); err != nil {
		return nil, err
	} else if !ok {
		return nil, domain.ErrInsufficientStorageDeposit
	}

	// the approval webhook is not trusted: a sale only exists while the
	// token contract reports the market as an approved spender
	token, err := im.tokenClient.Token(c, req.NftContractId, req.TokenId)
	if err != nil {
		return nil, err
	}
	if token.OwnerId != req.OwnerId {
		return nil, domain.ErrUnauthorized
	}
	if _, ok := token.ApprovedAccountIds[im.marketAccountId]; !ok {
		return nil, domain.ErrUnauthorized
	}

	sale := &market.Sale{
		NftContractToken:   domain.MakeContractAndTokenId(req.NftContractId, req.TokenId),
		NftContractId:      req.NftContractId,
		TokenId:            req.TokenId,
		OwnerId:            req.OwnerId,
		ApprovalId:         req.ApprovalId,
		ApprovedAccountIds: req.ApprovedAccountIds,
		Conditions:         conditions,
		IsAuction:          isAuction,
		Bids:               []market.Bid{},
		Status:             market.SaleStatusListed,
		Royalties:          royalties,
		ContractCut:        cfg.ContractCut,
		CreatedAt:          time.Now(),
	}

	if err := im.saleRepo.Insert(c, sale); err != nil {
		return nil, err
	}

	return sale, nil
}

func (im *impl) GetSale(c ctx.Ctx, id domain.ContractAndTokenId) (*market.Sale, error) {
	return im.saleRepo.FindOne(c, id)
}

func (im *impl) RemoveSale(c ctx.Ctx, nftContractId domain.AccountId, tokenId domain.TokenId, callerId domain.AccountId) error {
	id := domain.MakeContractAndTokenId(nftContractId, tokenId)
	sale, err := im.saleRepo.FindOne(c, id)
	if err != nil {
		return err
	}

	if sale.OwnerId != callerId {
		return domain.ErrUnauthorized
	}

	if sale.Status == market.SaleStatusSettling {
		return domain.ErrSaleLocked
	}

	im.refundBids(c, sale.Bids)

	return im.saleRepo.Remove(c, id)
}

func (im *impl) UpdatePrice(c ctx.Ctx, nftContractId domain.AccountId, tokenId domain.TokenId, callerId domain.AccountId, ftTokenId domain.AccountId, price domain.Balance) error {
	id := domain.MakeContractAndTokenId(nftContractId, tokenId)
	sale, err := im.saleRepo.FindOne(c, id)
	if err != nil {
		return err
	}

	if sale.OwnerId != callerId {
		return domain.ErrUnauthorized
	}

	if sale.Status == market.SaleStatusSettling {
		return domain.ErrSaleLocked
	}

	if !price.IsValid() {
		return domain.ErrInvalidNumberFormat
	}

	cfg, err := im.configRepo.Get(c)
	if err != nil {
		return err
	}
	if !cfg.AcceptsFtToken(ftTokenId) {
		return domain.ErrBadParamInput
	}

	conditions := make([]market.SaleCondition, 0, len(sale.Conditions)+1)
	replaced := false
	for _, condition := range sale.Conditions {
		if condition.FtTokenId == ftTokenId {
			condition.Price = price
			replaced = true
		}
		conditions = append(conditions, condition)
	}
	if !replaced {
		conditions = append(conditions, market.SaleCondition{FtTokenId: ftTokenId, Price: price})
	}

	return im.saleRepo.Patch(c, id, market.SalePatchable{Conditions: &conditions})
}

func (im *impl) Offer(c ctx.Ctx, req *market.OfferReq) (*market.OfferResult, error) {
	ftTokenId := req.FtTokenId
	if ftTokenId == "" {
		ftTokenId = domain.NativeTokenId
	}

	id := domain.MakeContractAndTokenId(req.NftContractId, req.TokenId)
	sale, err := im.saleRepo.FindOne(c, id)
	if err != nil {
		im.refundDeposit(c, ftTokenId, req.BuyerId, req.AttachedDeposit)
		return nil, err
	}

	if sale.OwnerId == req.BuyerId {
		im.refundDeposit(c, ftTokenId, req.BuyerId, req.AttachedDeposit)
		return nil, domain.ErrUnauthorized
	}

	price, ok := sale.ConditionFor(ftTokenId)
	if !ok {
		im.refundDeposit(c, ftTokenId, req.BuyerId, req.AttachedDeposit)
		return nil, domain.ErrBadParamInput
	}

	deposit, err := req.AttachedDeposit.BigInt()
	if err != nil || deposit.Sign() <= 0 {
		im.refundDeposit(c, ftTokenId, req.BuyerId, req.AttachedDeposit)
		return nil, domain.ErrInvalidNumberFormat
	}

	if !sale.IsAuction {
		if req.AttachedDeposit.Cmp(price) != 0 {
			im.refundDeposit(c, ftTokenId, req.BuyerId, req.AttachedDeposit)
			return nil, domain.ErrPriceMismatch
		}
		if ok, err := im.storage.HasCapacityFor(c, req.BuyerId, 1); err != nil {
			im.refundDeposit(c, ftTokenId, req.BuyerId, req.AttachedDeposit)
			return nil, err
		} else if !ok {
			im.refundDeposit(c, ftTokenId, req.BuyerId, req.AttachedDeposit)
			return nil, domain.ErrInsufficientStorageDeposit
		}
		settlement, err := im.startSettlement(c, sale, req.BuyerId, ftTokenId, req.AttachedDeposit)
		if err != nil {
			return nil, err
		}
		return &market.OfferResult{Settlement: settlement}, nil
	}

	return im.addBid(c, sale, req.BuyerId, ftTokenId, price, req.AttachedDeposit)
}

// addBid records an auction bid, evicting and refunding the oldest entry
// once the bounded history is full.
func (im *impl) addBid(c ctx.Ctx, sale *market.Sale, bidderId, ftTokenId domain.AccountId, reserve, deposit domain.Balance) (*market.OfferResult, error) {
	if deposit.Cmp(reserve) < 0 {
		im.refundDeposit(c, ftTokenId, bidderId, deposit)
		return nil, domain.ErrBidTooLow
	}

	if best := sale.BestBid(); best != nil {
		// a new bid only beats the current one in the same denomination
		if best.FtTokenId != ftTokenId || deposit.Cmp(best.Price) <= 0 {
			im.refundDeposit(c, ftTokenId, bidderId, deposit)
			return nil, domain.ErrBidTooLow
		}
	}

	if ok, err := im.storage.HasCapacityFor(c, bidderId, 1); err != nil {
		im.refundDeposit(c, ftTokenId, bidderId, deposit)
		return nil, err
	} else if !ok {
		im.refundDeposit(c, ftTokenId, bidderId, deposit)
		return nil, domain.ErrInsufficientStorageDeposit
	}

	cfg, err := im.configRepo.Get(c)
	if err != nil {
		im.refundDeposit(c, ftTokenId, bidderId, deposit)
		return nil, err
	}
	historyLength := cfg.BidHistoryLength
	if historyLength <= 0 {
		historyLength = market.DefaultBidHistoryLength
	}

	bid := market.Bid{
		BidderId:  bidderId,
		Price:     deposit,
		FtTokenId: ftTokenId,
		CreatedAt: time.Now(),
	}

	bids := append(append([]market.Bid{}, sale.Bids...), bid)

	var evicted *market.Bid
	if len(bids) > historyLength {
		oldest := bids[0]
		evicted = &oldest
		bids = bids[1:]
	}

	if err := im.saleRepo.Patch(c, sale.NftContractToken, market.SalePatchable{Bids: &bids}); err != nil {
		im.refundDeposit(c, ftTokenId, bidderId, deposit)
		return nil, err
	}

	if evicted != nil {
		im.refundDeposit(c, evicted.FtTokenId, evicted.BidderId, evicted.Price)
	}

	return &market.OfferResult{Bid: &bid, EvictedBid: evicted}, nil
}

func (im *impl) AcceptOffer(c ctx.Ctx, nftContractId domain.AccountId, tokenId domain.TokenId, callerId domain.AccountId) (*market.Settlement, error) {
	id := domain.MakeContractAndTokenId(nftContractId, tokenId)
	sale, err := im.saleRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}

	if sale.OwnerId != callerId {
		return nil, domain.ErrUnauthorized
	}

	best := sale.BestBid()
	if best == nil {
		return nil, domain.ErrBadParamInput
	}

	// the winning bid leaves the history, its deposit now rides the
	// settlement
	bids := append([]market.Bid{}, sale.Bids[:len(sale.Bids)-1]...)
	if err := im.saleRepo.Patch(c, id, market.SalePatchable{Bids: &bids}); err != nil {
		return nil, err
	}
	winning := *best
	sale.Bids = bids

	settlement, err := im.startSettlement(c, sale, winning.BidderId, winning.FtTokenId, winning.Price)
	if err != nil {
		// the deposit goes back to the bidder, not into the history
		im.refundDeposit(c, winning.FtTokenId, winning.BidderId, winning.Price)
		return nil, err
	}
	return settlement, nil
}

// startSettlement locks the sale, persists the pending settlement and
// dispatches the cross contract transfer. Failure to dispatch refunds the
// buyer and relists the sale.
func (im *impl) startSettlement(c ctx.Ctx, sale *market.Sale, buyerId, ftTokenId domain.AccountId, price domain.Balance) (*market.Settlement, error) {
	if _, err := im.saleRepo.Lock(c, sale.NftContractToken); err != nil {
		im.refundDeposit(c, ftTokenId, buyerId, price)
		return nil, err
	}

	settlement := &market.Settlement{
		Id:               uuid.New().String(),
		NftContractToken: sale.NftContractToken,
		NftContractId:    sale.NftContractId,
		TokenId:          sale.TokenId,
		SellerId:         sale.OwnerId,
		BuyerId:          buyerId,
		Price:            price,
		FtTokenId:        ftTokenId,
		ApprovalId:       sale.ApprovalId,
		Royalties:        sale.Royalties,
		ContractCut:      sale.ContractCut,
		Status:           market.SettlementStatusPending,
		CreatedAt:        time.Now(),
	}

	if err := im.settlementRepo.Insert(c, settlement); err != nil {
		im.refundDeposit(c, ftTokenId, buyerId, price)
		im.unlock(c, sale.NftContractToken)
		return nil, err
	}

	if err := im.tokenClient.TransferPayout(c, sale.NftContractId, buyerId, sale.TokenId, sale.ApprovalId, settlement.Id, price, market.MaxPayoutLen); err != nil {
		c.WithFields(log.Fields{
			"settlementId": settlement.Id,
			"err":          err,
		}).Error("transfer payout dispatch failed")
		im.refundDeposit(c, ftTokenId, buyerId, price)
		im.unlock(c, sale.NftContractToken)
		im.markResolved(c, settlement.Id, market.SettlementStatusRefunded, nil, "transfer dispatch failed")
		return nil, domain.ErrSettlementFailed
	}

	return settlement, nil
}

func (im *impl) ResolvePurchase(c ctx.Ctx, req *market.ResolvePurchaseReq) error {
	// the conditional claim linearizes redelivered callbacks; whichever
	// loses the race sees the settlement already resolved
	settlement, err := im.settlementRepo.Claim(c, req.SettlementId)
	if err == domain.ErrSettlementResolved {
		return nil
	} else if err != nil {
		return err
	}

	if !req.Success {
		im.refundDeposit(c, settlement.FtTokenId, settlement.BuyerId, settlement.Price)
		if err := im.unlock(c, settlement.NftContractToken); err != nil && err != domain.ErrNotFound {
			return err
		}
		im.markResolved(c, settlement.Id, market.SettlementStatusRefunded, nil, "token transfer failed")
		return nil
	}

	payout := req.Payout
	if len(payout) > 0 {
		if err := market.CheckPayout(payout, settlement.Price); err != nil {
			c.WithFields(log.Fields{
				"settlementId": settlement.Id,
				"err":          err,
			}).Warn("reported payout rejected, falling back to snapshot")
			payout = nil
		}
	}

	if len(payout) == 0 {
		cfg, err := im.configRepo.Get(c)
		if err != nil {
			return err
		}
		payout, err = market.ComputePayout(settlement.Price, settlement.Royalties, settlement.ContractCut, cfg.TreasuryId, settlement.SellerId)
		if err != nil {
			// royalty snapshot was validated at listing time, but never
			// strand a completed transfer
			c.WithFields(log.Fields{
				"settlementId": settlement.Id,
				"err":          err,
			}).Error("compute payout failed, paying seller in full")
			payout = market.Payout{{AccountId: settlement.SellerId, Amount: settlement.Price}}
		}
	}

	failed := market.Payout{}
	for _, entry := range payout {
		if err := im.transfer(c, settlement.FtTokenId, entry.AccountId, entry.Amount, payoutMemo); err != nil {
			c.WithFields(log.Fields{
				"settlementId": settlement.Id,
				"accountId":    entry.AccountId,
				"amount":       entry.Amount,
				"err":          err,
			}).Error("payout transfer failed")
			failed = append(failed, entry)
		}
	}

	sale, err := im.saleRepo.FindOne(c, settlement.NftContractToken)
	if err == nil {
		im.refundBids(c, sale.Bids)
		if err := im.saleRepo.Remove(c, settlement.NftContractToken); err != nil {
			c.WithFields(log.Fields{
				"id":  settlement.NftContractToken,
				"err": err,
			}).Error("remove sale after settlement failed")
		}
	} else if err != domain.ErrNotFound {
		return err
	}

	if len(failed) > 0 {
		im.markResolved(c, settlement.Id, market.SettlementStatusPayoutFailed, failed, "payout dispatch failed")
		return domain.ErrSettlementFailed
	}

	im.markResolved(c, settlement.Id, market.SettlementStatusCompleted, nil, "")
	return nil
}

func (im *impl) GetSales(c ctx.Ctx, opts ...market.FindAllOptionsFunc) ([]*market.Sale, error) {
	return im.saleRepo.FindAll(c, opts...)
}

func (im *impl) GetSupply(c ctx.Ctx, opts ...market.FindAllOptionsFunc) (string, error) {
	count, err := im.saleRepo.Count(c, opts...)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(count), nil
}

func (im *impl) SetContractRoyalty(c ctx.Ctx, callerId domain.AccountId, cut domain.BasisPoints) error {
	cfg, err := im.configRepo.Get(c)
	if err != nil {
		return err
	}

	if cfg.OwnerId != callerId {
		return domain.ErrUnauthorized
	}

	if cut > domain.TotalBasisPoints {
		return domain.ErrBadParamInput
	}

	cfg.ContractCut = cut
	cfg.Version++
	return im.configRepo.Upsert(c, cfg)
}

// transfer routes an amount to its receiver in the given denomination
func (im *impl) transfer(c ctx.Ctx, ftTokenId, receiverId domain.AccountId, amount domain.Balance, memo string) error {
	if ftTokenId == domain.NativeTokenId || ftTokenId == "" {
		return im.transferer.TransferNative(c, receiverId, amount)
	}
	return im.ftClient.Transfer(c, ftTokenId, receiverId, amount, memo)
}

// refundDeposit pays an attached deposit back to its sender. Refunds are
// fire and forget; a failed refund is logged for remediation but never
// masks the original outcome.
func (im *impl) refundDeposit(c ctx.Ctx, ftTokenId, receiverId domain.AccountId, amount domain.Balance) {
	if amount == "" || amount == domain.ZeroBalance {
		return
	}
	if err := im.transfer(c, ftTokenId, receiverId, amount, "refund from market"); err != nil {
		c.WithFields(log.Fields{
			"receiverId": receiverId,
			"amount":     amount,
			"err":        err,
		}).Error("refund failed")
	}
}

// refundBids returns every lodged bid deposit. The winning bid never passes
// through here; AcceptOffer drops it from the history before settling.
func (im *impl) refundBids(c ctx.Ctx, bids []market.Bid) {
	for _, bid := range bids {
		im.refundDeposit(c, bid.FtTokenId, bid.BidderId, bid.Price)
	}
}

func (im *impl) unlock(c ctx.Ctx, id domain.ContractAndTokenId) error {
	if err := im.saleRepo.Unlock(c, id); err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("unlock sale failed")
		return err
	}
	return nil
}

func (im *impl) markResolved(c ctx.Ctx, id string, status market.SettlementStatus, failed market.Payout, reason string) {
	patchable := market.SettlementPatchable{
		Status:     &status,
		ResolvedAt: ptr.Time(time.Now()),
	}
	if len(failed) > 0 {
		patchable.FailedPayouts = &failed
	}
	if reason != "" {
		patchable.FailureReason = &reason
	}
	if err := im.settlementRepo.Update(c, id, patchable); err != nil {
		c.WithFields(log.Fields{
			"settlementId": id,
			"err":          err,
		}).Error("update settlement failed")
	}
}
