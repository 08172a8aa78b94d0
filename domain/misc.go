package domain

import (
	"math/big"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Delimiter joins a token contract id and a token id into a sale key.
// '.' can never appear in a token id minted by the collections we list,
// so a key splits unambiguously at the last delimiter even when the
// contract id is a subaccount.
const Delimiter = "."

type Table string

const (
	TableSales           Table = "sales"
	TableStorageBalances Table = "storage_balances"
	TableSettlements     Table = "settlements"
	TableMarketConfigs   Table = "market_configs"
)

// AccountId is a human readable account name, e.g. "alice.testnet"
type AccountId string

var accountIdPattern = regexp.MustCompile(`^(([a-z\d]+[-_])*[a-z\d]+\.)*([a-z\d]+[-_])*[a-z\d]+$`)

func (a AccountId) String() string {
	return string(a)
}

func (a AccountId) IsValid() bool {
	return len(a) >= 2 && len(a) <= 64 && accountIdPattern.MatchString(string(a))
}

func (a AccountId) IsEmpty() bool {
	return len(a) == 0
}

func (a AccountId) Equals(b AccountId) bool {
	return string(a) == string(b)
}

type TokenId string

func (i TokenId) String() string {
	return string(i)
}

// ContractAndTokenId is the composite sale key, `<contract><Delimiter><token>`
type ContractAndTokenId string

func MakeContractAndTokenId(contractId AccountId, tokenId TokenId) ContractAndTokenId {
	return ContractAndTokenId(string(contractId) + Delimiter + string(tokenId))
}

// Split returns the contract id and token id components. Contract ids may
// contain the delimiter, token ids never do, so the last one splits.
func (c ContractAndTokenId) Split() (AccountId, TokenId, error) {
	i := strings.LastIndex(string(c), Delimiter)
	if i <= 0 || i == len(c)-1 {
		return "", "", ErrBadParamInput
	}
	return AccountId(c[:i]), TokenId(c[i+1:]), nil
}

// Balance is a u128 amount encoded as a decimal string, e.g. "1000000000000000000000000"
type Balance string

const ZeroBalance = Balance("0")

func (b Balance) BigInt() (*big.Int, error) {
	if b == "" {
		return big.NewInt(0), nil
	}
	n, ok := new(big.Int).SetString(string(b), 10)
	if !ok || n.Sign() < 0 {
		return nil, ErrInvalidNumberFormat
	}
	return n, nil
}

func (b Balance) IsValid() bool {
	_, err := b.BigInt()
	return err == nil
}

func BalanceFromBigInt(n *big.Int) Balance {
	return Balance(n.String())
}

// Cmp compares two balances numerically. Invalid balances compare as zero.
func (b Balance) Cmp(other Balance) int {
	x, err := b.BigInt()
	if err != nil {
		x = big.NewInt(0)
	}
	y, err := other.BigInt()
	if err != nil {
		y = big.NewInt(0)
	}
	return x.Cmp(y)
}

// NativeDecimals is the native asset's precision
const NativeDecimals = 24

// Display renders the balance in whole native units, e.g. "0.01"
func (b Balance) Display() string {
	n, err := b.BigInt()
	if err != nil {
		return "0"
	}
	return decimal.NewFromBigInt(n, -NativeDecimals).String()
}

// BasisPoints of a whole, 10000 = 100%
type BasisPoints uint32

const TotalBasisPoints BasisPoints = 10000

// NativeTokenId marks a sale condition denominated in the native asset
// rather than a fungible token contract.
const NativeTokenId = AccountId("near")
