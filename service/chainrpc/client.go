package chainrpc

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/tokenmart/goapi/domain"
	"github.com/tokenmart/goapi/domain/nft"
)

var (
	ErrStatusCodeNotOk = errors.New("http.status != 200")
	ErrRpcError        = errors.New("rpc returned error")
	ErrTokenNotFound   = errors.New("token not found")
)

// Client talks to a chain node over JSON-RPC on behalf of the
// marketplace account. Change calls are dispatched and resolved
// asynchronously, view calls return immediately.
type Client interface {
	nft.TokenClient
	nft.FungibleTokenClient
	nft.NativeTransferer
}

type ClientCfg struct {
	HttpClient http.Client
	Timeout    time.Duration
	// NodeUrl is the JSON-RPC endpoint of the chain node
	NodeUrl string
	// MarketAccountId is the account the marketplace signs calls as
	MarketAccountId domain.AccountId
	// CallbackUrl is attached to change calls so the node relay can
	// post the purchase resolution back to us
	CallbackUrl string
}

type rpcRequest struct {
	JsonRpc string      `json:"jsonrpc"`
	Id      string      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JsonRpc string          `json:"jsonrpc"`
	Id      string          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type callFunctionParams struct {
	SignerId   domain.AccountId `json:"signer_id"`
	ReceiverId domain.AccountId `json:"receiver_id"`
	MethodName string           `json:"method_name"`
	Args       interface{}      `json:"args"`
	Deposit    domain.Balance   `json:"deposit,omitempty"`
	// CallbackUrl receives the call outcome for change calls
	CallbackUrl string `json:"callback_url,omitempty"`
}

type viewFunctionParams struct {
	ReceiverId domain.AccountId `json:"receiver_id"`
	MethodName string           `json:"method_name"`
	Args       interface{}      `json:"args"`
}

type transferParams struct {
	SignerId   domain.AccountId `json:"signer_id"`
	ReceiverId domain.AccountId `json:"receiver_id"`
	Amount     domain.Balance   `json:"amount"`
}

type transferPayoutArgs struct {
	TokenId      domain.TokenId   `json:"token_id"`
	ReceiverId   domain.AccountId `json:"receiver_id"`
	ApprovalId   uint64           `json:"approval_id"`
	Memo         string           `json:"memo,omitempty"`
	Balance      domain.Balance   `json:"balance"`
	MaxLenPayout uint32           `json:"max_len_payout"`
}

type ftTransferArgs struct {
	ReceiverId domain.AccountId `json:"receiver_id"`
	Amount     domain.Balance   `json:"amount"`
	Memo       string           `json:"memo,omitempty"`
}

type nftTokenArgs struct {
	TokenId domain.TokenId `json:"token_id"`
}
