package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/tokenmart/goapi/domain"
)

func NewCustomValidator(v *validator.Validate) echo.Validator {
	_ = v.RegisterValidation("account_id", validAccountId)
	_ = v.RegisterValidation("balance", validBalance)
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

// validAccountId accepts human readable account names like "alice.testnet"
func validAccountId(fl validator.FieldLevel) bool {
	return domain.AccountId(fl.Field().String()).IsValid()
}

// validBalance accepts non-negative u128 decimal strings
func validBalance(fl validator.FieldLevel) bool {
	return domain.Balance(fl.Field().String()).IsValid()
}
