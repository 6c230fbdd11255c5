package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vincowealth/internal/models"
	"vincowealth/internal/services"
)

// TradeHandler handles trade-related requests.
type TradeHandler struct {
	tradeService services.TradeServicer
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(tradeService services.TradeServicer) *TradeHandler {
	return &TradeHandler{tradeService: tradeService}
}

// CreateTradeRequest represents the request payload for recording a trade
type CreateTradeRequest struct {
	ClientID    string  `json:"clientId" binding:"required"`
	AssetName   string  `json:"assetName" binding:"required,max=200"`
	AccountType string  `json:"accountType" binding:"omitempty,trade_account_type"`
	AssetType   string  `json:"assetType" binding:"omitempty,asset_type"`
	AssetRisk   string  `json:"assetRisk" binding:"omitempty,risk_level"`
	Side        string  `json:"side" binding:"omitempty,trade_side"`
	Quantity    *string `json:"quantity" binding:"omitempty,max=50"`
	TimeOfTrade *string `json:"timeOfTrade" binding:"omitempty,max=20"`
	DateOfTrade *string `json:"dateOfTrade" binding:"omitempty,max=20"`
	Reason1     *string `json:"reason1" binding:"omitempty,max=1000"`
	Reason2     *string `json:"reason2" binding:"omitempty,max=1000"`
	Reason3     *string `json:"reason3" binding:"omitempty,max=1000"`
}

func (r CreateTradeRequest) toModel() *models.Trade {
	return &models.Trade{
		ClientID:    r.ClientID,
		AssetName:   r.AssetName,
		AccountType: models.TradeAccountType(r.AccountType),
		AssetType:   models.AssetType(r.AssetType),
		AssetRisk:   models.RiskLevel(r.AssetRisk),
		Side:        models.TradeSide(r.Side),
		Quantity:    r.Quantity,
		TimeOfTrade: r.TimeOfTrade,
		DateOfTrade: r.DateOfTrade,
		Reason1:     r.Reason1,
		Reason2:     r.Reason2,
		Reason3:     r.Reason3,
	}
}

// UpdateTradeRequest represents the request payload for correcting a trade
type UpdateTradeRequest struct {
	ClientID    *string `json:"clientId" binding:"omitempty,min=1"`
	AssetName   *string `json:"assetName" binding:"omitempty,max=200"`
	AccountType *string `json:"accountType" binding:"omitempty,trade_account_type"`
	AssetType   *string `json:"assetType" binding:"omitempty,asset_type"`
	AssetRisk   *string `json:"assetRisk" binding:"omitempty,risk_level"`
	Side        *string `json:"side" binding:"omitempty,trade_side"`
	Quantity    *string `json:"quantity" binding:"omitempty,max=50"`
	TimeOfTrade *string `json:"timeOfTrade" binding:"omitempty,max=20"`
	DateOfTrade *string `json:"dateOfTrade" binding:"omitempty,max=20"`
	Reason1     *string `json:"reason1" binding:"omitempty,max=1000"`
	Reason2     *string `json:"reason2" binding:"omitempty,max=1000"`
	Reason3     *string `json:"reason3" binding:"omitempty,max=1000"`
}

func (r UpdateTradeRequest) toUpdate() services.TradeUpdate {
	return services.TradeUpdate{
		ClientID:    r.ClientID,
		AssetName:   r.AssetName,
		AccountType: enumPtr[models.TradeAccountType](r.AccountType),
		AssetType:   enumPtr[models.AssetType](r.AssetType),
		AssetRisk:   enumPtr[models.RiskLevel](r.AssetRisk),
		Side:        enumPtr[models.TradeSide](r.Side),
		Quantity:    r.Quantity,
		TimeOfTrade: r.TimeOfTrade,
		DateOfTrade: r.DateOfTrade,
		Reason1:     r.Reason1,
		Reason2:     r.Reason2,
		Reason3:     r.Reason3,
	}
}

// enumPtr converts an optional request string to an optional enum value.
func enumPtr[T ~string](s *string) *T {
	if s == nil {
		return nil
	}
	v := T(*s)
	return &v
}

// TradeResponse wraps a single trade.
type TradeResponse struct {
	Trade *models.Trade `json:"trade"`
}

// CreateTrade records a trade for an existing client
// @Summary     Record a trade
// @Tags        trades
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTradeRequest true "Trade details"
// @Success     201 {object} TradeResponse "Trade created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Unknown client"
// @Router      /trades [post]
func (h *TradeHandler) CreateTrade(c *gin.Context) {
	var req CreateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	trade, err := h.tradeService.CreateTrade(c.Request.Context(), req.toModel())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, TradeResponse{Trade: trade})
}

// GetTrade returns a single trade
// @Summary     Get trade by ID
// @Tags        trades
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Trade ID"
// @Success     200 {object} TradeResponse
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Trade not found"
// @Router      /trades/{id} [get]
func (h *TradeHandler) GetTrade(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	trade, err := h.tradeService.GetTradeByID(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, TradeResponse{Trade: trade})
}

// UpdateTrade corrects fields of a recorded trade
// @Summary     Update a trade
// @Tags        trades
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                true "Trade ID"
// @Param       request body UpdateTradeRequest true "Fields to change"
// @Success     200 {object} TradeResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Trade not found"
// @Failure     409 {object} ErrorResponse "Unknown client"
// @Router      /trades/{id} [patch]
func (h *TradeHandler) UpdateTrade(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	trade, err := h.tradeService.UpdateTrade(c.Request.Context(), id, req.toUpdate())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, TradeResponse{Trade: trade})
}

// DeleteTrade removes a trade
// @Summary     Delete a trade
// @Tags        trades
// @Security    BearerAuth
// @Param       id path int true "Trade ID"
// @Success     204
// @Failure     404 {object} ErrorResponse "Trade not found"
// @Router      /trades/{id} [delete]
func (h *TradeHandler) DeleteTrade(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.tradeService.DeleteTrade(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
