package models

import (
	"gorm.io/gorm"

	"vincowealth/internal/uuid"
)

// Client represents a wealth-management client
type Client struct {
	ID                  string         `gorm:"column:id;primaryKey" json:"id"`
	FirstName           string         `gorm:"column:first_name;not null" json:"firstName"`
	LastName            string         `gorm:"column:last_name;not null" json:"lastName"`
	InvestmentManager   *string        `gorm:"column:investment_manager" json:"investmentManager"`
	KnowledgeExperience KnowledgeLevel `gorm:"column:knowledge_experience;not null" json:"knowledgeExperience"`
	LossPct             int            `gorm:"column:loss_pct;not null" json:"lossPct"`
	AccountNumber       string         `gorm:"column:account_number;not null" json:"accountNumber"`
	TypeAccount         string         `gorm:"column:type_account" json:"typeAccount"`
	Salutation          *string        `gorm:"column:salutation" json:"salutation"`
	Objective           Objective      `gorm:"column:objective;not null" json:"objective"`
	Risk                RiskLevel      `gorm:"column:risk;not null" json:"risk"`
	Email               *string        `gorm:"column:email" json:"email"`
	Phone               *string        `gorm:"column:phone" json:"phone"`
	Address             *string        `gorm:"column:address" json:"address"`
	PowerOfAttorney     *string        `gorm:"column:power_of_attorney" json:"powerOfAttorney"`
	AnnualReviewDate    string         `gorm:"column:annual_review_date;not null" json:"annualReviewDate"`
	FeesCommissionRate  string         `gorm:"column:fees_commission_rate;not null" json:"feesCommissionRate"`
	Timestamps
}

// TableName pins the persisted table name.
func (Client) TableName() string {
	return "clients"
}

// FullName returns "First Last".
func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

// ApplyDefaults fills empty enum and placeholder fields.
func (c *Client) ApplyDefaults() {
	c.KnowledgeExperience = c.KnowledgeExperience.OrDefault()
	c.Objective = c.Objective.OrDefault()
	c.Risk = c.Risk.OrDefault()
	c.AnnualReviewDate = stringOrDefault(c.AnnualReviewDate, NotApplicable)
	c.FeesCommissionRate = stringOrDefault(c.FeesCommissionRate, NotApplicable)
}

// BeforeCreate assigns an identifier when none was given and applies defaults
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New()
	}
	c.ApplyDefaults()
	return nil
}
