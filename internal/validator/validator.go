// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"vincowealth/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn registers the custom validators on v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("knowledge_level", validateKnowledgeLevel)
	_ = v.RegisterValidation("objective", validateObjective)
	_ = v.RegisterValidation("risk_level", validateRiskLevel)
	_ = v.RegisterValidation("trade_account_type", validateTradeAccountType)
	_ = v.RegisterValidation("asset_type", validateAssetType)
	_ = v.RegisterValidation("trade_side", validateTradeSide)
	_ = v.RegisterValidation("letter_status", validateLetterStatus)
}

func validateKnowledgeLevel(fl validator.FieldLevel) bool {
	return models.KnowledgeLevel(fl.Field().String()).Valid()
}

func validateObjective(fl validator.FieldLevel) bool {
	return models.Objective(fl.Field().String()).Valid()
}

func validateRiskLevel(fl validator.FieldLevel) bool {
	return models.RiskLevel(fl.Field().String()).Valid()
}

func validateTradeAccountType(fl validator.FieldLevel) bool {
	return models.TradeAccountType(fl.Field().String()).Valid()
}

func validateAssetType(fl validator.FieldLevel) bool {
	return models.AssetType(fl.Field().String()).Valid()
}

func validateTradeSide(fl validator.FieldLevel) bool {
	return models.TradeSide(fl.Field().String()).Valid()
}

func validateLetterStatus(fl validator.FieldLevel) bool {
	return models.LetterStatus(fl.Field().String()).Valid()
}
