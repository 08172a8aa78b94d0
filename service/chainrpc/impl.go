package chainrpc

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/google/uuid"

	bCtx "github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/base/log"
	"github.com/tokenmart/goapi/domain"
	"github.com/tokenmart/goapi/domain/nft"
)

func NewClient(cfg *ClientCfg) Client {
	return &client{
		client:          cfg.HttpClient,
		timeout:         cfg.Timeout,
		nodeUrl:         cfg.NodeUrl,
		marketAccountId: cfg.MarketAccountId,
		callbackUrl:     cfg.CallbackUrl,
	}
}

type client struct {
	client          http.Client
	timeout         time.Duration
	nodeUrl         string
	marketAccountId domain.AccountId
	callbackUrl     string
}

func (c *client) TransferPayout(ctx bCtx.Ctx, nftContractId, receiverId domain.AccountId, tokenId domain.TokenId, approvalId uint64, memo string, balance domain.Balance, maxLenPayout uint32) error {
	params := callFunctionParams{
		SignerId:   c.marketAccountId,
		ReceiverId: nftContractId,
		MethodName: "nft_transfer_payout",
		Args: transferPayoutArgs{
			TokenId:      tokenId,
			ReceiverId:   receiverId,
			ApprovalId:   approvalId,
			Memo:         memo,
			Balance:      balance,
			MaxLenPayout: maxLenPayout,
		},
		CallbackUrl: c.callbackUrl,
	}
	if _, err := c.call(ctx, "call_function", params); err != nil {
		ctx.WithFields(log.Fields{
			"nftContractId": nftContractId,
			"tokenId":       tokenId,
			"err":           err,
		}).Error("nft_transfer_payout dispatch failed")
		return err
	}
	return nil
}

func (c *client) Token(ctx bCtx.Ctx, nftContractId domain.AccountId, tokenId domain.TokenId) (*nft.Token, error) {
	params := viewFunctionParams{
		ReceiverId: nftContractId,
		MethodName: "nft_token",
		Args:       nftTokenArgs{TokenId: tokenId},
	}
	data, err := c.call(ctx, "view_function", params)
	if err != nil {
		ctx.WithFields(log.Fields{
			"nftContractId": nftContractId,
			"tokenId":       tokenId,
			"err":           err,
		}).Error("nft_token view failed")
		return nil, err
	}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, ErrTokenNotFound
	}
	token := &nft.Token{}
	if err := json.Unmarshal(data, token); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return nil, err
	}
	return token, nil
}

func (c *client) Transfer(ctx bCtx.Ctx, ftContractId, receiverId domain.AccountId, amount domain.Balance, memo string) error {
	params := callFunctionParams{
		SignerId:   c.marketAccountId,
		ReceiverId: ftContractId,
		MethodName: "ft_transfer",
		Args: ftTransferArgs{
			ReceiverId: receiverId,
			Amount:     amount,
			Memo:       memo,
		},
		// ft_transfer requires exactly one attached unit
		Deposit: domain.Balance("1"),
	}
	if _, err := c.call(ctx, "call_function", params); err != nil {
		ctx.WithFields(log.Fields{
			"ftContractId": ftContractId,
			"receiverId":   receiverId,
			"err":          err,
		}).Error("ft_transfer dispatch failed")
		return err
	}
	return nil
}

func (c *client) TransferNative(ctx bCtx.Ctx, receiverId domain.AccountId, amount domain.Balance) error {
	params := transferParams{
		SignerId:   c.marketAccountId,
		ReceiverId: receiverId,
		Amount:     amount,
	}
	if _, err := c.call(ctx, "transfer", params); err != nil {
		ctx.WithFields(log.Fields{
			"receiverId": receiverId,
			"amount":     amount,
			"err":        err,
		}).Error("native transfer dispatch failed")
		return err
	}
	return nil
}

func (c *client) call(ctx bCtx.Ctx, method string, params interface{}) (json.RawMessage, error) {
	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqBody, err := json.Marshal(rpcRequest{
		JsonRpc: "2.0",
		Id:      uuid.New().String(),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		ctx.WithField("err", err).Error("json.Marshal failed")
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.nodeUrl, bytes.NewReader(reqBody))
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": c.nodeUrl,
			"err": err,
		}).Error("NewRequestWithContext failed")
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": c.nodeUrl,
			"err": err,
		}).Error("client.Do failed")
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		ctx.WithFields(log.Fields{
			"url":        c.nodeUrl,
			"statusCode": resp.StatusCode,
		}).Error("resp.StatusCode != 200")
		return nil, ErrStatusCodeNotOk
	}

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		ctx.WithField("err", err).Error("failed to read body")
		return nil, err
	}

	rpcResp := &rpcResponse{}
	if err := json.Unmarshal(body, rpcResp); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return nil, err
	}
	if rpcResp.Error != nil {
		ctx.WithFields(log.Fields{
			"code":    rpcResp.Error.Code,
			"message": rpcResp.Error.Message,
			"method":  method,
		}).Error("rpc returned error")
		return nil, ErrRpcError
	}
	return rpcResp.Result, nil
}
