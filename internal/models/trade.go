package models

import (
	"time"

	"gorm.io/gorm"
)

// SellAll is the quantity literal for closing a whole position.
const SellAll = "Sell All"

// Trade represents a single order placed on behalf of a client
type Trade struct {
	ID          uint             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ClientID    string           `gorm:"column:client_id;not null" json:"clientId"`
	AssetName   string           `gorm:"column:asset_name;not null" json:"assetName"`
	AccountType TradeAccountType `gorm:"column:account_type;not null" json:"accountType"`
	AssetType   AssetType        `gorm:"column:asset_type;not null" json:"assetType"`
	AssetRisk   RiskLevel        `gorm:"column:asset_risk;not null" json:"assetRisk"`
	Side        TradeSide        `gorm:"column:side;not null" json:"side"`
	Quantity    *string          `gorm:"column:quantity" json:"quantity"`
	TimeOfTrade *string          `gorm:"column:time_of_trade" json:"timeOfTrade"`
	DateOfTrade *string          `gorm:"column:date_of_trade" json:"dateOfTrade"`
	Reason1     *string          `gorm:"column:reason_1" json:"reason1"`
	Reason2     *string          `gorm:"column:reason_2" json:"reason2"`
	Reason3     *string          `gorm:"column:reason_3" json:"reason3"`
	CreatedAt   time.Time        `gorm:"column:created_at" json:"createdAt"`
}

// TableName pins the persisted table name.
func (Trade) TableName() string {
	return "trades"
}

// ApplyDefaults fills empty enum fields.
func (t *Trade) ApplyDefaults() {
	t.AccountType = t.AccountType.OrDefault()
	t.AssetType = t.AssetType.OrDefault()
	t.AssetRisk = t.AssetRisk.OrDefault()
	t.Side = t.Side.OrDefault()
}

// BeforeCreate hook to set default values
func (t *Trade) BeforeCreate(tx *gorm.DB) error {
	t.ApplyDefaults()
	return nil
}
