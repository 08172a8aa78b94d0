package market

import (
	"encoding/json"
	"sort"

	"github.com/tokenmart/goapi/domain"
)

// SaleCondition is one accepted payment denomination with its price. A sale
// listed only for the native asset carries a single condition keyed
// domain.NativeTokenId.
type SaleCondition struct {
	FtTokenId domain.AccountId `json:"ftTokenId" bson:"ftTokenId"`
	Price     domain.Balance   `json:"price" bson:"price"`
}

// approvalMsg is the wire shape of the nft_approve msg payload. The legacy
// form carries a bare price string for a native-asset fixed price; the
// extended form maps fungible token ids to prices and may flag an auction.
type approvalMsg struct {
	SaleConditions json.RawMessage `json:"sale_conditions"`
	IsAuction      bool            `json:"is_auction"`
}

// ParseApprovalMsg parses and validates sale conditions from the opaque
// approval payload, rejecting malformed input before any state mutation.
func ParseApprovalMsg(msg string) ([]SaleCondition, bool, error) {
	var parsed approvalMsg
	if err := json.Unmarshal([]byte(msg), &parsed); err != nil {
		return nil, false, domain.ErrInvalidJsonFormat
	}
	if len(parsed.SaleConditions) == 0 {
		return nil, false, domain.ErrInvalidJsonFormat
	}

	// bare string: a native-asset price
	var price domain.Balance
	if err := json.Unmarshal(parsed.SaleConditions, &price); err == nil {
		if !price.IsValid() {
			return nil, false, domain.ErrInvalidNumberFormat
		}
		return []SaleCondition{{FtTokenId: domain.NativeTokenId, Price: price}}, parsed.IsAuction, nil
	}

	var prices map[domain.AccountId]domain.Balance
	if err := json.Unmarshal(parsed.SaleConditions, &prices); err != nil {
		return nil, false, domain.ErrInvalidJsonFormat
	}
	if len(prices) == 0 {
		return nil, false, domain.ErrInvalidJsonFormat
	}

	conditions := make([]SaleCondition, 0, len(prices))
	for ft, p := range prices {
		if ft != domain.NativeTokenId && !ft.IsValid() {
			return nil, false, domain.ErrInvalidAccountId
		}
		if !p.IsValid() {
			return nil, false, domain.ErrInvalidNumberFormat
		}
		conditions = append(conditions, SaleCondition{FtTokenId: ft, Price: p})
	}
	sort.Slice(conditions, func(i, j int) bool {
		return conditions[i].FtTokenId < conditions[j].FtTokenId
	})
	return conditions, parsed.IsAuction, nil
}
