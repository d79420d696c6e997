// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("asset_type", validateAssetType)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("chat_role", validateChatRole)
	}
}

func validateAssetType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Stock", "Cryptocurrency", "ETF", "Real Estate", "Bond", "Other":
		return true
	}
	return false
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Buy", "Sell", "Deposit", "Withdraw":
		return true
	}
	return false
}

func validateChatRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "user", "assistant":
		return true
	}
	return false
}
