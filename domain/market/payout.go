package market

import (
	"math/big"
	"sort"

	"github.com/tokenmart/goapi/domain"
)

// MaxRoyaltyParticipants bounds a royalty map so settlement can always
// dispatch every transfer within one call's gas allowance
const MaxRoyaltyParticipants = 8

// MaxPayoutLen additionally covers the marketplace treasury and the seller
const MaxPayoutLen = MaxRoyaltyParticipants + 2

type RoyaltyShare struct {
	AccountId domain.AccountId   `json:"accountId" bson:"accountId"`
	Bps       domain.BasisPoints `json:"bps" bson:"bps"`
}

// Royalties is a royalty map in canonical (payee-sorted) order
type Royalties []RoyaltyShare

func (r Royalties) TotalBps() domain.BasisPoints {
	total := domain.BasisPoints(0)
	for _, share := range r {
		total += share.Bps
	}
	return total
}

// RoyaltiesFromMap converts the wire form into canonical order
func RoyaltiesFromMap(m map[domain.AccountId]uint32) Royalties {
	res := make(Royalties, 0, len(m))
	for accountId, bps := range m {
		res = append(res, RoyaltyShare{AccountId: accountId, Bps: domain.BasisPoints(bps)})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].AccountId < res[j].AccountId })
	return res
}

// ValidateRoyalties rejects maps that can never settle: more payees than the
// cap, or shares that together with the marketplace cut exceed the whole.
// Checked at listing time, not at settlement.
func ValidateRoyalties(royalties Royalties, contractCut domain.BasisPoints) error {
	if len(royalties) > MaxRoyaltyParticipants {
		return domain.ErrTooManyRoyalties
	}
	if royalties.TotalBps()+contractCut > domain.TotalBasisPoints {
		return domain.ErrRoyaltyOverflow
	}
	return nil
}

type PayoutEntry struct {
	AccountId domain.AccountId `json:"accountId" bson:"accountId"`
	Amount    domain.Balance   `json:"amount" bson:"amount"`
}

// Payout is an ordered payout split. Royalty payees come first in canonical
// order, then the marketplace treasury, then the seller.
type Payout []PayoutEntry

// ComputePayout splits price into royalty shares, the marketplace cut and
// the seller proceeds. Integer division remainders go to the seller so the
// entries always sum to price exactly. Zero amounts are skipped.
func ComputePayout(price domain.Balance, royalties Royalties, contractCut domain.BasisPoints, treasuryId, sellerId domain.AccountId) (Payout, error) {
	if err := ValidateRoyalties(royalties, contractCut); err != nil {
		return nil, err
	}
	total, err := price.BigInt()
	if err != nil {
		return nil, err
	}

	bpsDenominator := big.NewInt(int64(domain.TotalBasisPoints))
	remainder := new(big.Int).Set(total)
	payout := Payout{}

	share := func(bps domain.BasisPoints) *big.Int {
		amount := new(big.Int).Mul(total, big.NewInt(int64(bps)))
		return amount.Div(amount, bpsDenominator)
	}

	for _, royalty := range royalties {
		amount := share(royalty.Bps)
		if amount.Sign() == 0 {
			continue
		}
		remainder.Sub(remainder, amount)
		payout = append(payout, PayoutEntry{AccountId: royalty.AccountId, Amount: domain.BalanceFromBigInt(amount)})
	}

	if cut := share(contractCut); cut.Sign() > 0 {
		remainder.Sub(remainder, cut)
		payout = append(payout, PayoutEntry{AccountId: treasuryId, Amount: domain.BalanceFromBigInt(cut)})
	}

	if remainder.Sign() > 0 {
		payout = append(payout, PayoutEntry{AccountId: sellerId, Amount: domain.BalanceFromBigInt(remainder)})
	}

	return payout, nil
}

// CheckPayout verifies a payout reported by an external token contract:
// bounded length and amounts summing back to price, tolerating a single
// unit of rounding the way the settlement path does.
func CheckPayout(payout Payout, price domain.Balance) error {
	if len(payout) == 0 || len(payout) > MaxPayoutLen {
		return domain.ErrTooManyRoyalties
	}
	total, err := price.BigInt()
	if err != nil {
		return err
	}
	remainder := new(big.Int).Set(total)
	for _, entry := range payout {
		amount, err := entry.Amount.BigInt()
		if err != nil {
			return err
		}
		remainder.Sub(remainder, amount)
		if remainder.Sign() < 0 {
			return domain.ErrRoyaltyOverflow
		}
	}
	if remainder.Cmp(big.NewInt(1)) > 0 {
		return domain.ErrRoyaltyOverflow
	}
	return nil
}
