package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"vincowealth/internal/migrate"
	"vincowealth/internal/version"
)

// SchemaStatuser reports the store's schema version.
type SchemaStatuser interface {
	Status(ctx context.Context) (*migrate.Status, error)
}

// AppHandler serves application-level commands.
type AppHandler struct {
	schema SchemaStatuser
}

// NewAppHandler creates a new AppHandler.
func NewAppHandler(schema SchemaStatuser) *AppHandler {
	return &AppHandler{schema: schema}
}

// VersionResponse is the application version.
type VersionResponse struct {
	Version string `json:"version"`
}

// GreetResponse is the greeting message.
type GreetResponse struct {
	Message string `json:"message"`
}

// SchemaResponse describes the store's schema.
type SchemaResponse struct {
	Current int64                      `json:"current"`
	Latest  int64                      `json:"latest"`
	Pending int                        `json:"pending"`
	Applied []migrate.AppliedMigration `json:"applied"`
}

// Greet builds the greeting shown on first launch.
func Greet(name string) string {
	return fmt.Sprintf("Hello, %s! Welcome to Vinco Wealth.", name)
}

// Version returns the semantic version of the application
// @Summary     Application version
// @Tags        app
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} VersionResponse
// @Router      /app/version [get]
func (h *AppHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{Version: version.Version})
}

// Greet returns a greeting for the given name
// @Summary     Greeting
// @Tags        app
// @Produce     json
// @Security    BearerAuth
// @Param       name query string false "Name to greet"
// @Success     200 {object} GreetResponse
// @Router      /app/greet [get]
func (h *AppHandler) Greet(c *gin.Context) {
	c.JSON(http.StatusOK, GreetResponse{Message: Greet(c.Query("name"))})
}

// Schema returns the store's schema version and migration history
// @Summary     Schema status
// @Tags        app
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} SchemaResponse
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /schema [get]
func (h *AppHandler) Schema(c *gin.Context) {
	status, err := h.schema.Status(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	applied := status.Applied
	if applied == nil {
		applied = []migrate.AppliedMigration{}
	}
	c.JSON(http.StatusOK, SchemaResponse{
		Current: status.Current,
		Latest:  status.Latest,
		Pending: len(status.Pending),
		Applied: applied,
	})
}
