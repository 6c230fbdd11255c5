package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "vincowealth/internal/errors"
	"vincowealth/internal/models"
	"vincowealth/internal/pagination"
	"vincowealth/internal/services"
)

// ClientHandler handles client-related requests.
type ClientHandler struct {
	clientService services.ClientServicer
	tradeService  services.TradeServicer
	letterService services.SuitabilityLetterServicer
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientService services.ClientServicer, tradeService services.TradeServicer, letterService services.SuitabilityLetterServicer) *ClientHandler {
	return &ClientHandler{clientService: clientService, tradeService: tradeService, letterService: letterService}
}

// ClientRequest represents the request payload for creating a client
type ClientRequest struct {
	ID                  string  `json:"id" binding:"max=64"`
	FirstName           string  `json:"firstName" binding:"required,max=100"`
	LastName            string  `json:"lastName" binding:"required,max=100"`
	InvestmentManager   *string `json:"investmentManager" binding:"omitempty,max=100"`
	KnowledgeExperience string  `json:"knowledgeExperience" binding:"omitempty,knowledge_level"`
	LossPct             int     `json:"lossPct" binding:"gte=0,lte=100"`
	AccountNumber       string  `json:"accountNumber" binding:"required,max=50"`
	TypeAccount         string  `json:"typeAccount" binding:"required,max=50"`
	Salutation          *string `json:"salutation" binding:"omitempty,max=50"`
	Objective           string  `json:"objective" binding:"omitempty,objective"`
	Risk                string  `json:"risk" binding:"omitempty,risk_level"`
	Email               *string `json:"email" binding:"omitempty,max=254"`
	Phone               *string `json:"phone" binding:"omitempty,max=50"`
	Address             *string `json:"address" binding:"omitempty,max=500"`
	PowerOfAttorney     *string `json:"powerOfAttorney" binding:"omitempty,max=200"`
	AnnualReviewDate    string  `json:"annualReviewDate" binding:"max=50"`
	FeesCommissionRate  string  `json:"feesCommissionRate" binding:"max=50"`
}

func (r ClientRequest) toModel() *models.Client {
	return &models.Client{
		ID:                  r.ID,
		FirstName:           r.FirstName,
		LastName:            r.LastName,
		InvestmentManager:   r.InvestmentManager,
		KnowledgeExperience: models.KnowledgeLevel(r.KnowledgeExperience),
		LossPct:             r.LossPct,
		AccountNumber:       r.AccountNumber,
		TypeAccount:         r.TypeAccount,
		Salutation:          r.Salutation,
		Objective:           models.Objective(r.Objective),
		Risk:                models.RiskLevel(r.Risk),
		Email:               r.Email,
		Phone:               r.Phone,
		Address:             r.Address,
		PowerOfAttorney:     r.PowerOfAttorney,
		AnnualReviewDate:    r.AnnualReviewDate,
		FeesCommissionRate:  r.FeesCommissionRate,
	}
}

// UpdateClientRequest represents the request payload for updating a client.
// Omitted fields are left unchanged.
type UpdateClientRequest struct {
	ID                  *string `json:"id"`
	FirstName           *string `json:"firstName" binding:"omitempty,max=100"`
	LastName            *string `json:"lastName" binding:"omitempty,max=100"`
	InvestmentManager   *string `json:"investmentManager" binding:"omitempty,max=100"`
	KnowledgeExperience *string `json:"knowledgeExperience" binding:"omitempty,knowledge_level"`
	LossPct             *int    `json:"lossPct" binding:"omitempty,gte=0,lte=100"`
	AccountNumber       *string `json:"accountNumber" binding:"omitempty,max=50"`
	TypeAccount         *string `json:"typeAccount" binding:"omitempty,max=50"`
	Salutation          *string `json:"salutation" binding:"omitempty,max=50"`
	Objective           *string `json:"objective" binding:"omitempty,objective"`
	Risk                *string `json:"risk" binding:"omitempty,risk_level"`
	Email               *string `json:"email" binding:"omitempty,max=254"`
	Phone               *string `json:"phone" binding:"omitempty,max=50"`
	Address             *string `json:"address" binding:"omitempty,max=500"`
	PowerOfAttorney     *string `json:"powerOfAttorney" binding:"omitempty,max=200"`
	AnnualReviewDate    *string `json:"annualReviewDate" binding:"omitempty,max=50"`
	FeesCommissionRate  *string `json:"feesCommissionRate" binding:"omitempty,max=50"`
}

func (r UpdateClientRequest) toUpdate() services.ClientUpdate {
	u := services.ClientUpdate{
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		InvestmentManager:  r.InvestmentManager,
		LossPct:            r.LossPct,
		AccountNumber:      r.AccountNumber,
		TypeAccount:        r.TypeAccount,
		Salutation:         r.Salutation,
		Email:              r.Email,
		Phone:              r.Phone,
		Address:            r.Address,
		PowerOfAttorney:    r.PowerOfAttorney,
		AnnualReviewDate:   r.AnnualReviewDate,
		FeesCommissionRate: r.FeesCommissionRate,
	}
	if r.KnowledgeExperience != nil {
		v := models.KnowledgeLevel(*r.KnowledgeExperience)
		u.KnowledgeExperience = &v
	}
	if r.Objective != nil {
		v := models.Objective(*r.Objective)
		u.Objective = &v
	}
	if r.Risk != nil {
		v := models.RiskLevel(*r.Risk)
		u.Risk = &v
	}
	return u
}

// ReplaceClientsRequest is the full client list for an import.
type ReplaceClientsRequest struct {
	Clients []ClientRequest `json:"clients" binding:"dive"`
}

// ReplaceClientsResponse reports how many clients were written.
type ReplaceClientsResponse struct {
	Count int `json:"count"`
}

// ClientResponse wraps a single client.
type ClientResponse struct {
	Client *models.Client `json:"client"`
}

// CreateClient handles the creation of a new client
// @Summary     Create a client
// @Tags        clients
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ClientRequest true "Client details"
// @Success     201 {object} ClientResponse "Client created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate client"
// @Router      /clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req.toModel())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ClientResponse{Client: client})
}

// ListClients lists clients ordered by name, optionally filtered by a name search
// @Summary     List clients
// @Tags        clients
// @Produce     json
// @Security    BearerAuth
// @Param       q         query string false "Name search"
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Client]
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	var (
		result *pagination.PageResponse[models.Client]
		err    error
	)
	if q := c.Query("q"); q != "" {
		result, err = h.clientService.SearchClients(c.Request.Context(), q, page)
	} else {
		result, err = h.clientService.ListClients(c.Request.Context(), page)
	}
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetClient returns a single client
// @Summary     Get client by ID
// @Tags        clients
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Client ID"
// @Success     200 {object} ClientResponse
// @Failure     404 {object} ErrorResponse "Client not found"
// @Router      /clients/{id} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	client, err := h.clientService.GetClientByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ClientResponse{Client: client})
}

// UpdateClient applies a partial update to a client
// @Summary     Update a client
// @Tags        clients
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string              true "Client ID"
// @Param       request body UpdateClientRequest true "Fields to change"
// @Success     200 {object} ClientResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Client not found"
// @Router      /clients/{id} [patch]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}
	id := c.Param("id")
	if req.ID != nil && *req.ID != id {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "client id cannot be changed"))
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), id, req.toUpdate())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ClientResponse{Client: client})
}

// DeleteClient removes a client without trades or letters
// @Summary     Delete a client
// @Tags        clients
// @Security    BearerAuth
// @Param       id path string true "Client ID"
// @Success     204
// @Failure     404 {object} ErrorResponse "Client not found"
// @Failure     409 {object} ErrorResponse "Client has dependents"
// @Router      /clients/{id} [delete]
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	if err := h.clientService.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReplaceClients replaces the stored client list in one transaction
// @Summary     Import clients
// @Tags        clients
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ReplaceClientsRequest true "Complete client list"
// @Success     200 {object} ReplaceClientsResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Integrity violation"
// @Router      /clients [put]
func (h *ClientHandler) ReplaceClients(c *gin.Context) {
	var req ReplaceClientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	clients := make([]models.Client, len(req.Clients))
	for i, r := range req.Clients {
		clients[i] = *r.toModel()
	}
	n, err := h.clientService.ReplaceClients(c.Request.Context(), clients)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ReplaceClientsResponse{Count: n})
}

// ListClientTrades lists a client's trades, newest first
// @Summary     List client trades
// @Tags        trades
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  string true  "Client ID"
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Trade]
// @Failure     404 {object} ErrorResponse "Client not found"
// @Router      /clients/{id}/trades [get]
func (h *ClientHandler) ListClientTrades(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}
	result, err := h.tradeService.ListClientTrades(c.Request.Context(), c.Param("id"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListClientLetters lists a client's suitability letters, newest first
// @Summary     List client suitability letters
// @Tags        letters
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  string true  "Client ID"
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Page size"
// @Success     200 {object} pagination.PageResponse[models.SuitabilityLetter]
// @Failure     404 {object} ErrorResponse "Client not found"
// @Router      /clients/{id}/letters [get]
func (h *ClientHandler) ListClientLetters(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}
	result, err := h.letterService.ListClientLetters(c.Request.Context(), c.Param("id"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
