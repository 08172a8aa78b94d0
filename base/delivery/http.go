package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tokenmart/goapi/domain"
	"github.com/tokenmart/goapi/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

// MakeJsonResp writes the envelope, remapping domain errors to the right
// status code
func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		switch {
		case errors.Is(err, domain.ErrNotFound) || errors.Is(err, query.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, domain.ErrAlreadyListed):
			status = http.StatusConflict
		case errors.Is(err, domain.ErrUnauthorized):
			status = http.StatusForbidden
		case errors.Is(err, domain.ErrSaleLocked):
			status = http.StatusConflict
		case errors.Is(err, domain.ErrInsufficientStorageDeposit),
			errors.Is(err, domain.ErrPriceMismatch),
			errors.Is(err, domain.ErrBidTooLow),
			errors.Is(err, domain.ErrStorageInUse),
			errors.Is(err, domain.ErrTooManyRoyalties),
			errors.Is(err, domain.ErrRoyaltyOverflow),
			errors.Is(err, domain.ErrBadParamInput),
			errors.Is(err, domain.ErrInvalidJsonFormat),
			errors.Is(err, domain.ErrInvalidNumberFormat),
			errors.Is(err, domain.ErrInvalidAccountId):
			status = http.StatusBadRequest
		case errors.Is(err, domain.ErrSettlementFailed):
			status = http.StatusBadGateway
		}
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
