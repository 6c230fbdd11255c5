package services

import (
	"context"

	"gorm.io/gorm"

	"vincowealth/internal/models"
	"vincowealth/internal/pagination"
)

// Store is the embedded store the services persist through. Write serializes
// fn with every other writer and runs it in one transaction; DB serves reads.
type Store interface {
	DB() *gorm.DB
	Write(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ClientUpdate carries the client fields to change. Nil fields are left as
// they are. The identifier is never updatable.
type ClientUpdate struct {
	FirstName           *string
	LastName            *string
	InvestmentManager   *string
	KnowledgeExperience *models.KnowledgeLevel
	LossPct             *int
	AccountNumber       *string
	TypeAccount         *string
	Salutation          *string
	Objective           *models.Objective
	Risk                *models.RiskLevel
	Email               *string
	Phone               *string
	Address             *string
	PowerOfAttorney     *string
	AnnualReviewDate    *string
	FeesCommissionRate  *string
}

// ClientServicer defines the contract for client-related business logic.
type ClientServicer interface {
	CreateClient(ctx context.Context, client *models.Client) (*models.Client, error)
	GetClientByID(ctx context.Context, id string) (*models.Client, error)
	ListClients(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Client], error)
	SearchClients(ctx context.Context, query string, page pagination.PageRequest) (*pagination.PageResponse[models.Client], error)
	UpdateClient(ctx context.Context, id string, update ClientUpdate) (*models.Client, error)
	DeleteClient(ctx context.Context, id string) error
	ReplaceClients(ctx context.Context, clients []models.Client) (int, error)
}

// TradeUpdate carries the trade fields to change. Nil fields are left as
// they are; an empty optional field clears it.
type TradeUpdate struct {
	ClientID    *string
	AssetName   *string
	AccountType *models.TradeAccountType
	AssetType   *models.AssetType
	AssetRisk   *models.RiskLevel
	Side        *models.TradeSide
	Quantity    *string
	TimeOfTrade *string
	DateOfTrade *string
	Reason1     *string
	Reason2     *string
	Reason3     *string
}

// TradeServicer defines the contract for trade-related business logic.
type TradeServicer interface {
	CreateTrade(ctx context.Context, trade *models.Trade) (*models.Trade, error)
	GetTradeByID(ctx context.Context, id uint) (*models.Trade, error)
	ListClientTrades(ctx context.Context, clientID string, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error)
	UpdateTrade(ctx context.Context, id uint, update TradeUpdate) (*models.Trade, error)
	DeleteTrade(ctx context.Context, id uint) error
}

// LetterUpdate carries the suitability letter fields to change.
type LetterUpdate struct {
	Content *string
	PDFPath *string
	Status  *models.LetterStatus
}

// SuitabilityLetterServicer defines the contract for suitability letter business logic.
type SuitabilityLetterServicer interface {
	CreateLetter(ctx context.Context, letter *models.SuitabilityLetter) (*models.SuitabilityLetter, error)
	GetLetterByID(ctx context.Context, id uint) (*models.SuitabilityLetter, error)
	ListClientLetters(ctx context.Context, clientID string, page pagination.PageRequest) (*pagination.PageResponse[models.SuitabilityLetter], error)
	UpdateLetter(ctx context.Context, id uint, update LetterUpdate) (*models.SuitabilityLetter, error)
	DeleteLetter(ctx context.Context, id uint) error
}

// AuditServicer records mutations for later review.
type AuditServicer interface {
	Log(ctx context.Context, action, resourceType, resourceID string, changes map[string]any)
}
