package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/domain"
	"github.com/tokenmart/goapi/domain/market"
	mMarket "github.com/tokenmart/goapi/domain/market/mocks"
	"github.com/tokenmart/goapi/domain/nft"
	mNft "github.com/tokenmart/goapi/domain/nft/mocks"
	mStorage "github.com/tokenmart/goapi/domain/storage/mocks"
)

type testSuite struct {
	suite.Suite

	saleRepo       *mMarket.SaleRepo
	settlementRepo *mMarket.SettlementRepo
	configRepo     *mMarket.ConfigRepo
	storageUC      *mStorage.UseCase
	tokenClient    *mNft.TokenClient
	ftClient       *mNft.FungibleTokenClient
	transferer     *mNft.NativeTransferer

	im *impl
}

func TestSuite(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) SetupTest() {
	s.saleRepo = &mMarket.SaleRepo{}
	s.settlementRepo = &mMarket.SettlementRepo{}
	s.configRepo = &mMarket.ConfigRepo{}
	s.storageUC = &mStorage.UseCase{}
	s.tokenClient = &mNft.TokenClient{}
	s.ftClient = &mNft.FungibleTokenClient{}
	s.transferer = &mNft.NativeTransferer{}

	s.im = New(&SaleUseCaseCfg{
		SaleRepo:        s.saleRepo,
		SettlementRepo:  s.settlementRepo,
		ConfigRepo:      s.configRepo,
		StorageUC:       s.storageUC,
		TokenClient:     s.tokenClient,
		FtClient:        s.ftClient,
		Transferer:      s.transferer,
		MarketAccountId: "market.test",
	}).(*impl)
}

func (s *testSuite) TearDownTest() {
	s.saleRepo.AssertExpectations(s.T())
	s.settlementRepo.AssertExpectations(s.T())
	s.configRepo.AssertExpectations(s.T())
	s.storageUC.AssertExpectations(s.T())
	s.tokenClient.AssertExpectations(s.T())
	s.ftClient.AssertExpectations(s.T())
	s.transferer.AssertExpectations(s.T())
}

func (s *testSuite) marketConfig() *market.Config {
	return &market.Config{
		OwnerId:          "owner.test",
		TreasuryId:       "treasury.test",
		ContractCut:      500,
		BidHistoryLength: 2,
		FtTokenIds:       []domain.AccountId{"usdc.test"},
		Version:          1,
	}
}

func (s *testSuite) listedSale() *market.Sale {
	return &market.Sale{
		NftContractToken: "nft.test.1",
		NftContractId:    "nft.test",
		TokenId:          "1",
		OwnerId:          "seller.test",
		ApprovalId:       7,
		Conditions: []market.SaleCondition{
			{FtTokenId: domain.NativeTokenId, Price: "10000"},
		},
		Status:      market.SaleStatusListed,
		Bids:        []market.Bid{},
		Royalties:   market.Royalties{{AccountId: "artist.test", Bps: 1000}},
		ContractCut: 500,
		CreatedAt:   time.Now(),
	}
}

func (s *testSuite) approvedToken() *nft.Token {
	return &nft.Token{
		TokenId:            "1",
		OwnerId:            "seller.test",
		ApprovedAccountIds: map[domain.AccountId]uint64{"market.test": 7},
	}
}

func statusIs(status market.SettlementStatus) interface{} {
	return mock.MatchedBy(func(p market.SettlementPatchable) bool {
		return p.Status != nil && *p.Status == status
	})
}

func (s *testSuite) TestCreateSale() {
	c := ctx.Background()

	s.configRepo.On("Get", mock.Anything).Return(s.marketConfig(), nil).Once()
	s.storageUC.On("HasCapacityFor", mock.Anything, domain.AccountId("seller.test"), 1).Return(true, nil).Once()
	s.tokenClient.On("Token", mock.Anything, domain.AccountId("nft.test"), domain.TokenId("1")).Return(s.approvedToken(), nil).Once()
	s.saleRepo.On("Insert", mock.Anything, mock.MatchedBy(func(sale *market.Sale) bool {
		return sale.NftContractToken == "nft.test.1" &&
			sale.Status == market.SaleStatusListed &&
			!sale.IsAuction &&
			sale.ContractCut == 500
	})).Return(nil).Once()

	sale, err := s.im.CreateSale(c, &market.CreateSaleReq{
		NftContractId: "nft.test",
		TokenId:       "1",
		OwnerId:       "seller.test",
		ApprovalId:    7,
		Royalties:     map[domain.AccountId]uint32{"artist.test": 1000},
		Msg:           `{"sale_conditions":"10000"}`,
	})
	s.NoError(err)
	s.Equal([]market.SaleCondition{{FtTokenId: domain.NativeTokenId, Price: "10000"}}, sale.Conditions)
	s.Equal(market.Royalties{{AccountId: "artist.test", Bps: 1000}}, sale.Royalties)
}

func (s *testSuite) TestCreateSaleRejectsUnsupportedFtToken() {
	c := ctx.Background()

	s.configRepo.On("Get", mock.Anything).Return(s.marketConfig(), nil).Once()

	_, err := s.im.CreateSale(c, &market.CreateSaleReq{
		NftContractId: "nft.test",
		TokenId:       "1",
		OwnerId:       "seller.test",
		Msg:           `{"sale_conditions":{"dai.test":"10000"}}`,
	})
	s.Equal(domain.ErrBadParamInput, err)
}

func (s *testSuite) TestCreateSaleRejectsOverweightRoyalties() {
	c := ctx.Background()

	s.configRepo.On("Get", mock.Anything).Return(s.marketConfig(), nil).Once()

	_, err := s.im.CreateSale(c, &market.CreateSaleReq{
		NftContractId: "nft.test",
		TokenId:       "1",
		OwnerId:       "seller.test",
		Royalties:     map[domain.AccountId]uint32{"artist.test": 9600},
		Msg:           `{"sale_conditions":"10000"}`,
	})
	s.Equal(domain.ErrRoyaltyOverflow, err)
}

func (s *testSuite) TestCreateSaleWithoutStorageDeposit() {
	c := ctx.Background()

	s.configRepo.On("Get", mock.Anything).Return(s.marketConfig(), nil).Once()
	s.storageUC.On("HasCapacityFor", mock.Anything, domain.AccountId("seller.test"), 1).Return(false, nil).Once()

	_, err := s.im.CreateSale(c, &market.CreateSaleReq{
		NftContractId: "nft.test",
		TokenId:       "1",
		OwnerId:       "seller.test",
		Msg:           `{"sale_conditions":"10000"}`,
	})
	s.Equal(domain.ErrInsufficientStorageDeposit, err)
}

func (s *testSuite) TestCreateSaleWithoutMarketApproval() {
	c := ctx.Background()
	token := s.approvedToken()
	token.ApprovedAccountIds = map[domain.AccountId]uint64{"other-market.test": 3}

	s.configRepo.On("Get", mock.Anything).Return(s.marketConfig(), nil).Once()
	s.storageUC.On("HasCapacityFor", mock.Anything, domain.AccountId("seller.test"), 1).Return(true, nil).Once()
	s.tokenClient.On("Token", mock.Anything, domain.AccountId("nft.test"), domain.TokenId("1")).Return(token, nil).Once()

	_, err := s.im.CreateSale(c, &market.CreateSaleReq{
		NftContractId: "nft.test",
		TokenId:       "1",
		OwnerId:       "seller.test",
		Msg:           `{"sale_conditions":"10000"}`,
	})
	s.Equal(domain.ErrUnauthorized, err)
}

func (s *testSuite) TestCreateSaleByNonOwner() {
	c := ctx.Background()

	s.configRepo.On("Get", mock.Anything).Return(s.marketConfig(), nil).Once()
	s.storageUC.On("HasCapacityFor", mock.Anything, domain.AccountId("mallory.test"), 1).Return(true, nil).Once()
	s.tokenClient.On("Token", mock.Anything, domain.AccountId("nft.test"), domain.TokenId("1")).Return(s.approvedToken(), nil).Once()

	_, err := s.im.CreateSale(c, &market.CreateSaleReq{
		NftContractId: "nft.test",
		TokenId:       "1",
		OwnerId:       "mallory.test",
		Msg:           `{"sale_conditions":"10000"}`,
	})
	s.Equal(domain.ErrUnauthorized, err)
}

func (s *testSuite) TestOfferFixedPrice() {
	c := ctx.Background()
	sale := s.listedSale()

	s.saleRepo.On("FindOne", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(sale, nil).Once()
	s.storageUC.On("HasCapacityFor", mock.Anything, domain.AccountId("buyer.test"), 1).Return(true, nil).Once()
	s.saleRepo.On("Lock", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(sale, nil).Once()
	s.settlementRepo.On("Insert", mock.Anything, mock.MatchedBy(func(st *market.Settlement) bool {
		return st.Status == market.SettlementStatusPending &&
			st.BuyerId == "buyer.test" &&
			st.Price == "10000" &&
			st.Id != ""
	})).Return(nil).Once()
	s.tokenClient.On("TransferPayout", mock.Anything, domain.AccountId("nft.test"), domain.AccountId("buyer.test"),
		domain.TokenId("1"), uint64(7), mock.AnythingOfType("string"), domain.Balance("10000"), uint32(market.MaxPayoutLen)).
		Return(nil).Once()

	res, err := s.im.Offer(c, &market.OfferReq{
		NftContractId:   "nft.test",
		TokenId:         "1",
		BuyerId:         "buyer.test",
		AttachedDeposit: "10000",
	})
	s.NoError(err)
	s.NotNil(res.Settlement)
	s.Equal(market.SettlementStatusPending, res.Settlement.Status)
	s.Nil(res.Bid)
}

func (s *testSuite) TestOfferFixedPriceWithoutStorageDeposit() {
	c := ctx.Background()

	s.saleRepo.On("FindOne", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(s.listedSale(), nil).Once()
	s.storageUC.On("HasCapacityFor", mock.Anything, domain.AccountId("unregistered.test"), 1).Return(false, nil).Once()
	s.transferer.On("TransferNative", mock.Anything, domain.AccountId("unregistered.test"), domain.Balance("10000")).Return(nil).Once()

	res, err := s.im.Offer(c, &market.OfferReq{
		NftContractId:   "nft.test",
		TokenId:         "1",
		BuyerId:         "unregistered.test",
		AttachedDeposit: "10000",
	})
	s.Equal(domain.ErrInsufficientStorageDeposit, err)
	s.Nil(res)
}

func (s *testSuite) TestOfferFixedPriceMismatchRefunds() {
	c := ctx.Background()

	s.saleRepo.On("FindOne", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(s.listedSale(), nil).Once()
	s.transferer.On("TransferNative", mock.Anything, domain.AccountId("buyer.test"), domain.Balance("9999")).Return(nil).Once()

	_, err := s.im.Offer(c, &market.OfferReq{
		NftContractId:   "nft.test",
		TokenId:         "1",
		BuyerId:         "buyer.test",
		AttachedDeposit: "9999",
	})
	s.Equal(domain.ErrPriceMismatch, err)
}

func (s *testSuite) TestOfferOnOwnSaleRefunds() {
	c := ctx.Background()

	s.saleRepo.On("FindOne", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(s.listedSale(), nil).Once()
	s.transferer.On("TransferNative", mock.Anything, domain.AccountId("seller.test"), domain.Balance("10000")).Return(nil).Once()

	_, err := s.im.Offer(c, &market.OfferReq{
		NftContractId:   "nft.test",
		TokenId:         "1",
		BuyerId:         "seller.test",
		AttachedDeposit: "10000",
	})
	s.Equal(domain.ErrUnauthorized, err)
}

func (s *testSuite) TestOfferInUnlistedDenominationRefunds() {
	c := ctx.Background()

	s.saleRepo.On("FindOne", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(s.listedSale(), nil).Once()
	s.ftClient.On("Transfer", mock.Anything, domain.AccountId("usdc.test"), domain.AccountId("buyer.test"),
		domain.Balance("10000"), mock.AnythingOfType("string")).Return(nil).Once()

	_, err := s.im.Offer(c, &market.OfferReq{
		NftContractId:   "nft.test",
		TokenId:         "1",
		BuyerId:         "buyer.test",
		FtTokenId:       "usdc.test",
		AttachedDeposit: "10000",
	})
	s.Equal(domain.ErrBadParamInput, err)
}

func (s *testSuite) TestOfferOnMissingSaleRefunds() {
	c := ctx.Background()

	s.saleRepo.On("FindOne", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(nil, domain.ErrNotFound).Once()
	s.transferer.On("TransferNative", mock.Anything, domain.AccountId("buyer.test"), domain.Balance("10000")).Return(nil).Once()

	_, err := s.im.Offer(c, &market.OfferReq{
		NftContractId:   "nft.test",
		TokenId:         "1",
		BuyerId:         "buyer.test",
		AttachedDeposit: "10000",
	})
	s.Equal(domain.ErrNotFound, err)
}

func (s *testSuite) TestOfferOnLockedSaleRefunds() {
	c := ctx.Background()

	s.saleRepo.On("FindOne", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(s.listedSale(), nil).Once()
	s.storageUC.On("HasCapacityFor", mock.Anything, domain.AccountId("buyer.test"), 1).Return(true, nil).Once()
	s.saleRepo.On("Lock", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(nil, domain.ErrSaleLocked).Once()
	s.transferer.On("TransferNative", mock.Anything, domain.AccountId("buyer.test"), domain.Balance("10000")).Return(nil).Once()

	_, err := s.im.Offer(c, &market.OfferReq{
		NftContractId:   "nft.test",
		TokenId:         "1",
		BuyerId:         "buyer.test",
		AttachedDeposit: "10000",
	})
	s.Equal(domain.ErrSaleLocked, err)
}

func (s *testSuite) TestOfferDispatchFailureRefundsAndRelists() {
	c := ctx.Background()
	sale := s.listedSale()

	s.saleRepo.On("FindOne", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(sale, nil).Once()
	s.storageUC.On("HasCapacityFor", mock.Anything, domain.AccountId("buyer.test"), 1).Return(true, nil).Once()
	s.saleRepo.On("Lock", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(sale, nil).Once()
	s.settlementRepo.On("Insert", mock.Anything, mock.AnythingOfType("*market.Settlement")).Return(nil).Once()
	s.tokenClient.On("TransferPayout", mock.Anything, domain.AccountId("nft.test"), domain.AccountId("buyer.test"),
		domain.TokenId("1"), uint64(7), mock.AnythingOfType("string"), domain.Balance("10000"), uint32(market.MaxPayoutLen)).
		Return(domain.ErrInternalServerError).Once()
	s.transferer.On("TransferNative", mock.Anything, domain.AccountId("buyer.test"), domain.Balance("10000")).Return(nil).Once()
	s.saleRepo.On("Unlock", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(nil).Once()
	s.settlementRepo.On("Update", mock.Anything, mock.AnythingOfType("string"), statusIs(market.SettlementStatusRefunded)).Return(nil).Once()

	_, err := s.im.Offer(c, &market.OfferReq{
		NftContractId:   "nft.test",
		TokenId:         "1",
		BuyerId:         "buyer.test",
		AttachedDeposit: "10000",
	})
	s.Equal(domain.ErrSettlementFailed, err)
}

func (s *testSuite) auctionSale() *market.Sale {
	sale := s.listedSale()
	sale.IsAuction = true
	return sale
}

func (s *testSuite) TestOfferAuctionBid() {
	c := ctx.Background()

	s.saleRepo.On("FindOne", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(s.auctionSale(), nil).Once()
	s.storageUC.On("HasCapacityFor", mock.Anything, domain.AccountId("bidder.test"), 1).Return(true, nil).Once()
	s.configRepo.On("Get", mock.Anything).Return(s.marketConfig(), nil).Once()
	s.saleRepo.On("Patch", mock.Anything, domain.ContractAndTokenId("nft.test.1"), mock.MatchedBy(func(p market.SalePatchable) bool {
		return p.Bids != nil && len(*p.Bids) == 1 && (*p.Bids)[0].BidderId == "bidder.test"
	})).Return(nil).Once()

	res, err := s.im.Offer(c, &market.OfferReq{
		NftContractId:   "nft.test",
		TokenId:         "1",
		BuyerId:         "bidder.test",
		AttachedDeposit: "12000",
	})
	s.NoError(err)
	s.Nil(res.Settlement)
	s.NotNil(res.Bid)
	s.Equal(domain.Balance("12000"), res.Bid.Price)
	s.Nil(res.EvictedBid)
}

func (s *testSuite) TestOfferAuctionBidBelowReserveRefunds() {
	c := ctx.Background()

	s.saleRepo.On("FindOne", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(s.auctionSale(), nil).Once()
	s.transferer.On("TransferNative", mock.Anything, domain.AccountId("bidder.test"), domain.Balance("9999")).Return(nil).Once()

	_, err := s.im.Offer(c, &market.OfferReq{
		NftContractId:   "nft.test",
		TokenId:         "1",
		BuyerId:         "bidder.test",
		AttachedDeposit: "9999",
	})
	s.Equal(domain.ErrBidTooLow, err)
}

func (s *testSuite) TestOfferAuctionBidMustBeatBestBid() {
	c := ctx.Background()
	sale := s.auctionSale()
	sale.Bids = []market.Bid{
		{BidderId: "alice.test", Price: "12000", FtTokenId: domain.NativeTokenId},
	}

	s.saleRepo.On("FindOne", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(sale, nil).Once()
	s.transferer.On("TransferNative", mock.Anything, domain.AccountId("bidder.test"), domain.Balance("12000")).Return(nil).Once()

	_, err := s.im.Offer(c, &market.OfferReq{
		NftContractId:   "nft.test",
		TokenId:         "1",
		BuyerId:         "bidder.test",
		AttachedDeposit: "12000",
	})
	s.Equal(domain.ErrBidTooLow, err)
}

func (s *testSuite) TestOfferAuctionBidStorageCheckErrorRefunds() {
	c := ctx.Background()

	s.saleRepo.On("FindOne", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(s.auctionSale(), nil).Once()
	s.storageUC.On("HasCapacityFor", mock.Anything, domain.AccountId("bidder.test"), 1).
		Return(false, domain.ErrInternalServerError).Once()
	s.transferer.On("TransferNative", mock.Anything, domain.AccountId("bidder.test"), domain.Balance("12000")).Return(nil).Once()

	_, err := s.im.Offer(c, &market.OfferReq{
		NftContractId:   "nft.test",
		TokenId:         "1",
		BuyerId:         "bidder.test",
		AttachedDeposit: "12000",
	})
	s.Equal(domain.ErrInternalServerError, err)
}

func (s *testSuite) TestOfferAuctionBidConfigErrorRefunds() {
	c := ctx.Background()

	s.saleRepo.On("FindOne", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(s.auctionSale(), nil).Once()
	s.storageUC.On("HasCapacityFor", mock.Anything, domain.AccountId("bidder.test"), 1).Return(true, nil).Once()
	s.configRepo.On("Get", mock.Anything).Return(nil, domain.ErrInternalServerError).Once()
	s.transferer.On("TransferNative", mock.Anything, domain.AccountId("bidder.test"), domain.Balance("12000")).Return(nil).Once()

	_, err := s.im.Offer(c, &market.OfferReq{
		NftContractId:   "nft.test",
		TokenId:         "1",
		BuyerId:         "bidder.test",
		AttachedDeposit: "12000",
	})
	s.Equal(domain.ErrInternalServerError, err)
}

func (s *testSuite) TestOfferAuctionBidEvictsOldest() {
	c := ctx.Background()
	sale := s.auctionSale()
	sale.Bids = []market.Bid{
		{BidderId: "alice.test", Price: "11000", FtTokenId: domain.NativeTokenId},
		{BidderId: "bob.test", Price: "12000", FtTokenId: domain.NativeTokenId},
	}

	s.saleRepo.On("FindOne", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(sale, nil).Once()
	s.storageUC.On("HasCapacityFor", mock.Anything, domain.AccountId("carol.test"), 1).Return(true, nil).Once()
	s.configRepo.On("Get", mock.Anything).Return(s.marketConfig(), nil).Once()
	s.saleRepo.On("Patch", mock.Anything, domain.ContractAndTokenId("nft.test.1"), mock.MatchedBy(func(p market.SalePatchable) bool {
		return p.Bids != nil && len(*p.Bids) == 2 &&
			(*p.Bids)[0].BidderId == "bob.test" &&
			(*p.Bids)[1].BidderId == "carol.test"
	})).Return(nil).Once()
	s.transferer.On("TransferNative", mock.Anything, domain.AccountId("alice.test"), domain.Balance("11000")).Return(nil).Once()

	res, err := s.im.Offer(c, &market.OfferReq{
		NftContractId:   "nft.test",
		TokenId:         "1",
		BuyerId:         "carol.test",
		AttachedDeposit: "13000",
	})
	s.NoError(err)
	s.NotNil(res.EvictedBid)
	s.Equal(domain.AccountId("alice.test"), res.EvictedBid.BidderId)
}

func (s *testSuite) TestAcceptOffer() {
	c := ctx.Background()
	sale := s.auctionSale()
	sale.Bids = []market.Bid{
		{BidderId: "alice.test", Price: "11000", FtTokenId: domain.NativeTokenId},
		{BidderId: "bob.test", Price: "12000", FtTokenId: domain.NativeTokenId},
	}

	s.saleRepo.On("FindOne", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(sale, nil).Once()
	s.saleRepo.On("Patch", mock.Anything, domain.ContractAndTokenId("nft.test.1"), mock.MatchedBy(func(p market.SalePatchable) bool {
		return p.Bids != nil && len(*p.Bids) == 1 && (*p.Bids)[0].BidderId == "alice.test"
	})).Return(nil).Once()
	s.saleRepo.On("Lock", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(sale, nil).Once()
	s.settlementRepo.On("Insert", mock.Anything, mock.MatchedBy(func(st *market.Settlement) bool {
		return st.BuyerId == "bob.test" && st.Price == "12000"
	})).Return(nil).Once()
	s.tokenClient.On("TransferPayout", mock.Anything, domain.AccountId("nft.test"), domain.AccountId("bob.test"),
		domain.TokenId("1"), uint64(7), mock.AnythingOfType("string"), domain.Balance("12000"), uint32(market.MaxPayoutLen)).
		Return(nil).Once()

	settlement, err := s.im.AcceptOffer(c, "nft.test", "1", "seller.test")
	s.NoError(err)
	s.Equal(domain.AccountId("bob.test"), settlement.BuyerId)
}

func (s *testSuite) TestAcceptOfferWithoutBids() {
	c := ctx.Background()

	s.saleRepo.On("FindOne", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(s.auctionSale(), nil).Once()

	_, err := s.im.AcceptOffer(c, "nft.test", "1", "seller.test")
	s.Equal(domain.ErrBadParamInput, err)
}

func (s *testSuite) TestAcceptOfferUnauthorized() {
	c := ctx.Background()

	s.saleRepo.On("FindOne", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(s.auctionSale(), nil).Once()

	_, err := s.im.AcceptOffer(c, "nft.test", "1", "mallory.test")
	s.Equal(domain.ErrUnauthorized, err)
}

func (s *testSuite) claimedSettlement() *market.Settlement {
	return &market.Settlement{
		Id:               "settlement-1",
		NftContractToken: "nft.test.1",
		NftContractId:    "nft.test",
		TokenId:          "1",
		SellerId:         "seller.test",
		BuyerId:          "buyer.test",
		Price:            "10000",
		FtTokenId:        domain.NativeTokenId,
		ApprovalId:       7,
		Royalties:        market.Royalties{{AccountId: "artist.test", Bps: 1000}},
		ContractCut:      500,
		Status:           market.SettlementStatusResolving,
		CreatedAt:        time.Now(),
	}
}

func (s *testSuite) TestResolvePurchaseSuccess() {
	c := ctx.Background()
	sale := s.listedSale()
	sale.Status = market.SaleStatusSettling
	sale.Bids = []market.Bid{
		{BidderId: "loser.test", Price: "9000", FtTokenId: domain.NativeTokenId},
	}

	s.settlementRepo.On("Claim", mock.Anything, "settlement-1").Return(s.claimedSettlement(), nil).Once()
	s.configRepo.On("Get", mock.Anything).Return(s.marketConfig(), nil).Once()

	// computed from the snapshot: 10% royalty, 5% cut, remainder to seller
	s.transferer.On("TransferNative", mock.Anything, domain.AccountId("artist.test"), domain.Balance("1000")).Return(nil).Once()
	s.transferer.On("TransferNative", mock.Anything, domain.AccountId("treasury.test"), domain.Balance("500")).Return(nil).Once()
	s.transferer.On("TransferNative", mock.Anything, domain.AccountId("seller.test"), domain.Balance("8500")).Return(nil).Once()

	s.saleRepo.On("FindOne", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(sale, nil).Once()
	s.transferer.On("TransferNative", mock.Anything, domain.AccountId("loser.test"), domain.Balance("9000")).Return(nil).Once()
	s.saleRepo.On("Remove", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(nil).Once()
	s.settlementRepo.On("Update", mock.Anything, "settlement-1", statusIs(market.SettlementStatusCompleted)).Return(nil).Once()

	err := s.im.ResolvePurchase(c, &market.ResolvePurchaseReq{
		SettlementId: "settlement-1",
		Success:      true,
	})
	s.NoError(err)
}

func (s *testSuite) TestResolvePurchaseUsesReportedPayout() {
	c := ctx.Background()
	sale := s.listedSale()
	sale.Status = market.SaleStatusSettling

	s.settlementRepo.On("Claim", mock.Anything, "settlement-1").Return(s.claimedSettlement(), nil).Once()

	s.transferer.On("TransferNative", mock.Anything, domain.AccountId("artist.test"), domain.Balance("2000")).Return(nil).Once()
	s.transferer.On("TransferNative", mock.Anything, domain.AccountId("seller.test"), domain.Balance("8000")).Return(nil).Once()

	s.saleRepo.On("FindOne", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(sale, nil).Once()
	s.saleRepo.On("Remove", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(nil).Once()
	s.settlementRepo.On("Update", mock.Anything, "settlement-1", statusIs(market.SettlementStatusCompleted)).Return(nil).Once()

	err := s.im.ResolvePurchase(c, &market.ResolvePurchaseReq{
		SettlementId: "settlement-1",
		Success:      true,
		Payout: market.Payout{
			{AccountId: "artist.test", Amount: "2000"},
			{AccountId: "seller.test", Amount: "8000"},
		},
	})
	s.NoError(err)
}

func (s *testSuite) TestResolvePurchaseRejectsBadReportedPayout() {
	c := ctx.Background()
	sale := s.listedSale()
	sale.Status = market.SaleStatusSettling

	s.settlementRepo.On("Claim", mock.Anything, "settlement-1").Return(s.claimedSettlement(), nil).Once()
	s.configRepo.On("Get", mock.Anything).Return(s.marketConfig(), nil).Once()

	// the reported split overshoots the price, so the snapshot wins
	s.transferer.On("TransferNative", mock.Anything, domain.AccountId("artist.test"), domain.Balance("1000")).Return(nil).Once()
	s.transferer.On("TransferNative", mock.Anything, domain.AccountId("treasury.test"), domain.Balance("500")).Return(nil).Once()
	s.transferer.On("TransferNative", mock.Anything, domain.AccountId("seller.test"), domain.Balance("8500")).Return(nil).Once()

	s.saleRepo.On("FindOne", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(sale, nil).Once()
	s.saleRepo.On("Remove", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(nil).Once()
	s.settlementRepo.On("Update", mock.Anything, "settlement-1", statusIs(market.SettlementStatusCompleted)).Return(nil).Once()

	err := s.im.ResolvePurchase(c, &market.ResolvePurchaseReq{
		SettlementId: "settlement-1",
		Success:      true,
		Payout: market.Payout{
			{AccountId: "artist.test", Amount: "20000"},
		},
	})
	s.NoError(err)
}

func (s *testSuite) TestResolvePurchaseFailureRefundsBuyer() {
	c := ctx.Background()

	s.settlementRepo.On("Claim", mock.Anything, "settlement-1").Return(s.claimedSettlement(), nil).Once()
	s.transferer.On("TransferNative", mock.Anything, domain.AccountId("buyer.test"), domain.Balance("10000")).Return(nil).Once()
	s.saleRepo.On("Unlock", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(nil).Once()
	s.settlementRepo.On("Update", mock.Anything, "settlement-1", statusIs(market.SettlementStatusRefunded)).Return(nil).Once()

	err := s.im.ResolvePurchase(c, &market.ResolvePurchaseReq{
		SettlementId: "settlement-1",
		Success:      false,
	})
	s.NoError(err)
}

func (s *testSuite) TestResolvePurchaseIsIdempotent() {
	c := ctx.Background()

	// a redelivered callback loses the conditional claim and must not run
	// the payout loop again
	s.settlementRepo.On("Claim", mock.Anything, "settlement-1").Return(nil, domain.ErrSettlementResolved).Once()

	err := s.im.ResolvePurchase(c, &market.ResolvePurchaseReq{
		SettlementId: "settlement-1",
		Success:      true,
	})
	s.NoError(err)
}

func (s *testSuite) TestResolvePurchaseUnknownSettlement() {
	c := ctx.Background()

	s.settlementRepo.On("Claim", mock.Anything, "settlement-1").Return(nil, domain.ErrNotFound).Once()

	err := s.im.ResolvePurchase(c, &market.ResolvePurchaseReq{
		SettlementId: "settlement-1",
		Success:      true,
	})
	s.Equal(domain.ErrNotFound, err)
}

func (s *testSuite) TestResolvePurchasePartialPayoutFailure() {
	c := ctx.Background()
	sale := s.listedSale()
	sale.Status = market.SaleStatusSettling

	s.settlementRepo.On("Claim", mock.Anything, "settlement-1").Return(s.claimedSettlement(), nil).Once()
	s.configRepo.On("Get", mock.Anything).Return(s.marketConfig(), nil).Once()

	s.transferer.On("TransferNative", mock.Anything, domain.AccountId("artist.test"), domain.Balance("1000")).
		Return(domain.ErrInternalServerError).Once()
	s.transferer.On("TransferNative", mock.Anything, domain.AccountId("treasury.test"), domain.Balance("500")).Return(nil).Once()
	s.transferer.On("TransferNative", mock.Anything, domain.AccountId("seller.test"), domain.Balance("8500")).Return(nil).Once()

	s.saleRepo.On("FindOne", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(sale, nil).Once()
	s.saleRepo.On("Remove", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(nil).Once()
	s.settlementRepo.On("Update", mock.Anything, "settlement-1", mock.MatchedBy(func(p market.SettlementPatchable) bool {
		return p.Status != nil && *p.Status == market.SettlementStatusPayoutFailed &&
			p.FailedPayouts != nil && len(*p.FailedPayouts) == 1 &&
			(*p.FailedPayouts)[0].AccountId == "artist.test"
	})).Return(nil).Once()

	err := s.im.ResolvePurchase(c, &market.ResolvePurchaseReq{
		SettlementId: "settlement-1",
		Success:      true,
	})
	s.Equal(domain.ErrSettlementFailed, err)
}

func (s *testSuite) TestRemoveSale() {
	c := ctx.Background()
	sale := s.auctionSale()
	sale.Bids = []market.Bid{
		{BidderId: "alice.test", Price: "11000", FtTokenId: domain.NativeTokenId},
	}

	s.saleRepo.On("FindOne", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(sale, nil).Once()
	s.transferer.On("TransferNative", mock.Anything, domain.AccountId("alice.test"), domain.Balance("11000")).Return(nil).Once()
	s.saleRepo.On("Remove", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(nil).Once()

	s.NoError(s.im.RemoveSale(c, "nft.test", "1", "seller.test"))
}

func (s *testSuite) TestRemoveSaleUnauthorized() {
	c := ctx.Background()

	s.saleRepo.On("FindOne", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(s.listedSale(), nil).Once()

	s.Equal(domain.ErrUnauthorized, s.im.RemoveSale(c, "nft.test", "1", "mallory.test"))
}

func (s *testSuite) TestRemoveSaleWhileSettling() {
	c := ctx.Background()
	sale := s.listedSale()
	sale.Status = market.SaleStatusSettling

	s.saleRepo.On("FindOne", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(sale, nil).Once()

	s.Equal(domain.ErrSaleLocked, s.im.RemoveSale(c, "nft.test", "1", "seller.test"))
}

func (s *testSuite) TestUpdatePriceReplacesCondition() {
	c := ctx.Background()

	s.saleRepo.On("FindOne", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(s.listedSale(), nil).Once()
	s.configRepo.On("Get", mock.Anything).Return(s.marketConfig(), nil).Once()
	s.saleRepo.On("Patch", mock.Anything, domain.ContractAndTokenId("nft.test.1"), mock.MatchedBy(func(p market.SalePatchable) bool {
		return p.Conditions != nil && len(*p.Conditions) == 1 && (*p.Conditions)[0].Price == "20000"
	})).Return(nil).Once()

	s.NoError(s.im.UpdatePrice(c, "nft.test", "1", "seller.test", domain.NativeTokenId, "20000"))
}

func (s *testSuite) TestUpdatePriceAddsCondition() {
	c := ctx.Background()

	s.saleRepo.On("FindOne", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(s.listedSale(), nil).Once()
	s.configRepo.On("Get", mock.Anything).Return(s.marketConfig(), nil).Once()
	s.saleRepo.On("Patch", mock.Anything, domain.ContractAndTokenId("nft.test.1"), mock.MatchedBy(func(p market.SalePatchable) bool {
		return p.Conditions != nil && len(*p.Conditions) == 2 &&
			(*p.Conditions)[1].FtTokenId == "usdc.test" &&
			(*p.Conditions)[1].Price == "250"
	})).Return(nil).Once()

	s.NoError(s.im.UpdatePrice(c, "nft.test", "1", "seller.test", "usdc.test", "250"))
}

func (s *testSuite) TestUpdatePriceUnauthorized() {
	c := ctx.Background()

	s.saleRepo.On("FindOne", mock.Anything, domain.ContractAndTokenId("nft.test.1")).Return(s.listedSale(), nil).Once()

	s.Equal(domain.ErrUnauthorized, s.im.UpdatePrice(c, "nft.test", "1", "mallory.test", domain.NativeTokenId, "20000"))
}

func (s *testSuite) TestGetSupply() {
	c := ctx.Background()

	s.saleRepo.On("Count", mock.Anything).Return(3, nil).Once()

	supply, err := s.im.GetSupply(c)
	s.NoError(err)
	s.Equal("3", supply)
}

func (s *testSuite) TestSetContractRoyalty() {
	c := ctx.Background()

	s.configRepo.On("Get", mock.Anything).Return(s.marketConfig(), nil).Once()
	s.configRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(cfg *market.Config) bool {
		return cfg.ContractCut == 300 && cfg.Version == 2
	})).Return(nil).Once()

	s.NoError(s.im.SetContractRoyalty(c, "owner.test", 300))
}

func (s *testSuite) TestSetContractRoyaltyUnauthorized() {
	c := ctx.Background()

	s.configRepo.On("Get", mock.Anything).Return(s.marketConfig(), nil).Once()

	s.Equal(domain.ErrUnauthorized, s.im.SetContractRoyalty(c, "mallory.test", 300))
}

func (s *testSuite) TestSetContractRoyaltyAboveTotal() {
	c := ctx.Background()

	s.configRepo.On("Get", mock.Anything).Return(s.marketConfig(), nil).Once()

	s.Equal(domain.ErrBadParamInput, s.im.SetContractRoyalty(c, "owner.test", 10001))
}
