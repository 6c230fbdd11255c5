package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vincowealth/internal/models"
	"vincowealth/internal/services"
)

// LetterHandler handles suitability letter requests.
type LetterHandler struct {
	letterService services.SuitabilityLetterServicer
}

// NewLetterHandler creates a new LetterHandler.
func NewLetterHandler(letterService services.SuitabilityLetterServicer) *LetterHandler {
	return &LetterHandler{letterService: letterService}
}

// CreateLetterRequest represents the request payload for drafting a letter
type CreateLetterRequest struct {
	ClientID string  `json:"clientId" binding:"required"`
	Content  *string `json:"content"`
	PDFPath  *string `json:"pdfPath" binding:"omitempty,max=1024"`
	Status   string  `json:"status" binding:"omitempty,letter_status"`
}

// UpdateLetterRequest represents the request payload for updating a letter
type UpdateLetterRequest struct {
	Content *string `json:"content"`
	PDFPath *string `json:"pdfPath" binding:"omitempty,max=1024"`
	Status  *string `json:"status" binding:"omitempty,letter_status"`
}

// LetterResponse wraps a single suitability letter.
type LetterResponse struct {
	Letter *models.SuitabilityLetter `json:"letter"`
}

// CreateLetter stores a suitability letter for an existing client
// @Summary     Create a suitability letter
// @Tags        letters
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateLetterRequest true "Letter details"
// @Success     201 {object} LetterResponse "Letter created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Unknown client"
// @Router      /letters [post]
func (h *LetterHandler) CreateLetter(c *gin.Context) {
	var req CreateLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	letter, err := h.letterService.CreateLetter(c.Request.Context(), &models.SuitabilityLetter{
		ClientID: req.ClientID,
		Content:  req.Content,
		PDFPath:  req.PDFPath,
		Status:   models.LetterStatus(req.Status),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, LetterResponse{Letter: letter})
}

// GetLetter returns a single suitability letter
// @Summary     Get suitability letter by ID
// @Tags        letters
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Letter ID"
// @Success     200 {object} LetterResponse
// @Failure     404 {object} ErrorResponse "Letter not found"
// @Router      /letters/{id} [get]
func (h *LetterHandler) GetLetter(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	letter, err := h.letterService.GetLetterByID(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, LetterResponse{Letter: letter})
}

// UpdateLetter changes a letter's content, PDF path or status
// @Summary     Update a suitability letter
// @Tags        letters
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                 true "Letter ID"
// @Param       request body UpdateLetterRequest true "Fields to change"
// @Success     200 {object} LetterResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Letter not found"
// @Router      /letters/{id} [patch]
func (h *LetterHandler) UpdateLetter(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	update := services.LetterUpdate{Content: req.Content, PDFPath: req.PDFPath}
	if req.Status != nil {
		status := models.LetterStatus(*req.Status)
		update.Status = &status
	}

	letter, err := h.letterService.UpdateLetter(c.Request.Context(), id, update)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, LetterResponse{Letter: letter})
}

// DeleteLetter removes a suitability letter
// @Summary     Delete a suitability letter
// @Tags        letters
// @Security    BearerAuth
// @Param       id path int true "Letter ID"
// @Success     204
// @Failure     404 {object} ErrorResponse "Letter not found"
// @Router      /letters/{id} [delete]
func (h *LetterHandler) DeleteLetter(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.letterService.DeleteLetter(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
