package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput     = errors.New("Given Param is not valid")
	ErrInvalidJsonFormat = errors.New("invalid JSON format")

	// ErrAlreadyListed will throw when creating a sale for a token that is already on sale
	ErrAlreadyListed = errors.New("token is already listed")
	// ErrUnauthorized will throw when the caller is not allowed to perform the mutation
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInsufficientStorageDeposit will throw when an account interacts without enough storage deposit
	ErrInsufficientStorageDeposit = errors.New("insufficient storage deposit")
	// ErrStorageInUse will throw when withdrawing a deposit that still pays for live sales or bids
	ErrStorageInUse = errors.New("storage deposit still in use")
	// ErrPriceMismatch will throw when a fixed price offer does not match the sale price exactly
	ErrPriceMismatch = errors.New("attached deposit does not match sale price")
	// ErrBidTooLow will throw when a bid does not beat the current best bid
	ErrBidTooLow = errors.New("bid is lower than current bid")
	// ErrTooManyRoyalties will throw when a royalty map exceeds the participant cap
	ErrTooManyRoyalties = errors.New("too many royalty participants")
	// ErrRoyaltyOverflow will throw when royalties plus the marketplace cut exceed 100%
	ErrRoyaltyOverflow = errors.New("royalties exceed total basis points")
	// ErrSaleLocked will throw when a sale is mid-settlement and cannot accept offers
	ErrSaleLocked = errors.New("sale is locked for settlement")
	// ErrSettlementFailed will throw when the token transfer could not be confirmed
	ErrSettlementFailed = errors.New("settlement failed")
	// ErrSettlementResolved will throw when claiming a settlement another callback already resolved
	ErrSettlementResolved = errors.New("settlement already resolved")

	ErrInvalidNumberFormat = errors.New("invalid number format")
	ErrInvalidAccountId    = errors.New("invalid account id")
)
