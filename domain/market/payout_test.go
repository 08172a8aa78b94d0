package market

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tokenmart/goapi/domain"
)

func TestRoyaltiesFromMap(t *testing.T) {
	req := require.New(t)

	royalties := RoyaltiesFromMap(map[domain.AccountId]uint32{
		"zoe.test":   100,
		"alice.test": 250,
		"bob.test":   50,
	})

	req.Equal(Royalties{
		{AccountId: "alice.test", Bps: 250},
		{AccountId: "bob.test", Bps: 50},
		{AccountId: "zoe.test", Bps: 100},
	}, royalties)
	req.Equal(domain.BasisPoints(400), royalties.TotalBps())
}

func TestValidateRoyalties(t *testing.T) {
	req := require.New(t)

	req.NoError(ValidateRoyalties(nil, 500))
	req.NoError(ValidateRoyalties(Royalties{{AccountId: "alice.test", Bps: 9500}}, 500))

	overweight := Royalties{{AccountId: "alice.test", Bps: 9501}}
	req.Equal(domain.ErrRoyaltyOverflow, ValidateRoyalties(overweight, 500))

	crowded := make(Royalties, MaxRoyaltyParticipants+1)
	for i := range crowded {
		crowded[i] = RoyaltyShare{AccountId: domain.AccountId(string(rune('a'+i)) + "0.test"), Bps: 10}
	}
	req.Equal(domain.ErrTooManyRoyalties, ValidateRoyalties(crowded, 500))
}

func TestComputePayout(t *testing.T) {
	req := require.New(t)

	cases := []struct {
		name        string
		price       domain.Balance
		royalties   Royalties
		contractCut domain.BasisPoints
		expected    Payout
	}{
		{
			name:        "no royalties no cut",
			price:       "1000000",
			royalties:   nil,
			contractCut: 0,
			expected: Payout{
				{AccountId: "seller.test", Amount: "1000000"},
			},
		},
		{
			name:  "royalties plus cut",
			price: "10000",
			royalties: Royalties{
				{AccountId: "artist.test", Bps: 1000},
				{AccountId: "charity.test", Bps: 500},
			},
			contractCut: 500,
			expected: Payout{
				{AccountId: "artist.test", Amount: "1000"},
				{AccountId: "charity.test", Amount: "500"},
				{AccountId: "treasury.test", Amount: "500"},
				{AccountId: "seller.test", Amount: "8000"},
			},
		},
		{
			name:  "rounding remainder goes to seller",
			price: "10001",
			royalties: Royalties{
				{AccountId: "artist.test", Bps: 3333},
			},
			contractCut: 500,
			expected: Payout{
				// 10001*3333/10000 = 3333.33 -> 3333
				{AccountId: "artist.test", Amount: "3333"},
				// 10001*500/10000 = 500.05 -> 500
				{AccountId: "treasury.test", Amount: "500"},
				{AccountId: "seller.test", Amount: "6168"},
			},
		},
		{
			name:  "dust price drops zero shares",
			price: "3",
			royalties: Royalties{
				{AccountId: "artist.test", Bps: 1000},
			},
			contractCut: 500,
			expected: Payout{
				{AccountId: "seller.test", Amount: "3"},
			},
		},
		{
			name:  "whole price consumed leaves no seller entry",
			price: "10000",
			royalties: Royalties{
				{AccountId: "artist.test", Bps: 9500},
			},
			contractCut: 500,
			expected: Payout{
				{AccountId: "artist.test", Amount: "9500"},
				{AccountId: "treasury.test", Amount: "500"},
			},
		},
	}

	for _, c := range cases {
		payout, err := ComputePayout(c.price, c.royalties, c.contractCut, "treasury.test", "seller.test")
		req.NoError(err, c.name)
		req.Equal(c.expected, payout, c.name)
	}
}

func TestComputePayoutSumsToPrice(t *testing.T) {
	req := require.New(t)

	royalties := Royalties{
		{AccountId: "a1.test", Bps: 123},
		{AccountId: "b2.test", Bps: 777},
		{AccountId: "c3.test", Bps: 1},
	}

	for _, price := range []domain.Balance{"1", "999", "1000000000000000000000000", "123456789123456789"} {
		payout, err := ComputePayout(price, royalties, 250, "treasury.test", "seller.test")
		req.NoError(err)
		req.NoError(CheckPayout(payout, price))

		total := domain.ZeroBalance
		for _, entry := range payout {
			x, err := total.BigInt()
			req.NoError(err)
			y, err := entry.Amount.BigInt()
			req.NoError(err)
			total = domain.BalanceFromBigInt(x.Add(x, y))
		}
		req.Equal(price, total)
	}
}

func TestComputePayoutRejectsInvalidInput(t *testing.T) {
	req := require.New(t)

	_, err := ComputePayout("not-a-number", nil, 0, "treasury.test", "seller.test")
	req.Equal(domain.ErrInvalidNumberFormat, err)

	_, err = ComputePayout("10000", Royalties{{AccountId: "artist.test", Bps: 9600}}, 500, "treasury.test", "seller.test")
	req.Equal(domain.ErrRoyaltyOverflow, err)
}

func TestCheckPayout(t *testing.T) {
	req := require.New(t)

	req.NoError(CheckPayout(Payout{
		{AccountId: "artist.test", Amount: "1000"},
		{AccountId: "seller.test", Amount: "9000"},
	}, "10000"))

	// one unit of rounding is tolerated
	req.NoError(CheckPayout(Payout{
		{AccountId: "artist.test", Amount: "3333"},
		{AccountId: "seller.test", Amount: "6666"},
	}, "10000"))

	// two units are not
	req.Equal(domain.ErrRoyaltyOverflow, CheckPayout(Payout{
		{AccountId: "artist.test", Amount: "3333"},
		{AccountId: "seller.test", Amount: "6665"},
	}, "10000"))

	// overshooting the price fails
	req.Equal(domain.ErrRoyaltyOverflow, CheckPayout(Payout{
		{AccountId: "artist.test", Amount: "10001"},
	}, "10000"))

	req.Equal(domain.ErrTooManyRoyalties, CheckPayout(nil, "10000"))

	crowded := make(Payout, MaxPayoutLen+1)
	for i := range crowded {
		crowded[i] = PayoutEntry{AccountId: "x0.test", Amount: "1"}
	}
	req.Equal(domain.ErrTooManyRoyalties, CheckPayout(crowded, "10000"))
}
