package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// RegisterValidators adds the ledger specific tags to gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("money_nonneg", validateMoneyNonNegative); err != nil {
		return err
	}
	if err := v.RegisterValidation("movement_kind", validateMovementKind); err != nil {
		return err
	}
	return v.RegisterValidation("payment_method", validatePaymentMethod)
}

func validateMoneyNonNegative(fl validator.FieldLevel) bool {
	m, ok := fl.Field().Interface().(domain.Money)
	return ok && !m.IsNegative()
}

func validateMovementKind(fl validator.FieldLevel) bool {
	return domain.MovementKind(fl.Field().String()).IsValid()
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	return domain.PaymentMethod(fl.Field().String()).IsValid()
}
