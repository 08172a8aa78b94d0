package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContractAndTokenId(t *testing.T) {
	req := require.New(t)

	id := MakeContractAndTokenId("nft.example.test", "42")
	req.Equal(ContractAndTokenId("nft.example.test.42"), id)

	// dotted contract ids split at the last delimiter
	contractId, tokenId, err := ContractAndTokenId("nft.example.test.42").Split()
	req.NoError(err)
	req.Equal(AccountId("nft.example.test"), contractId)
	req.Equal(TokenId("42"), tokenId)

	_, _, err = ContractAndTokenId("noseparator").Split()
	req.Equal(ErrBadParamInput, err)
}

func TestAccountIdIsValid(t *testing.T) {
	req := require.New(t)

	for _, id := range []AccountId{"alice.test", "a1", "sub.alice.test", "a-b_c.test"} {
		req.True(id.IsValid(), id)
	}
	for _, id := range []AccountId{"", "a", "Alice.test", "alice..test", ".alice", "alice.", "-alice"} {
		req.False(id.IsValid(), id)
	}
}

func TestBalance(t *testing.T) {
	req := require.New(t)

	n, err := Balance("1000000000000000000000000").BigInt()
	req.NoError(err)
	req.Equal("1000000000000000000000000", n.String())

	n, err = Balance("").BigInt()
	req.NoError(err)
	req.Equal(int64(0), n.Int64())

	_, err = Balance("-1").BigInt()
	req.Equal(ErrInvalidNumberFormat, err)
	_, err = Balance("1e24").BigInt()
	req.Equal(ErrInvalidNumberFormat, err)

	req.Equal("0.01", Balance("10000000000000000000000").Display())
	req.Equal("1", Balance("1000000000000000000000000").Display())
	req.Equal("0", Balance("bogus").Display())

	req.Equal(0, Balance("100").Cmp("100"))
	req.Equal(1, Balance("101").Cmp("100"))
	req.Equal(-1, Balance("99").Cmp("100"))
}
