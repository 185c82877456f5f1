package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alizia-edu/alizia-api/internal/dto"
	"github.com/alizia-edu/alizia-api/internal/models"
	"github.com/alizia-edu/alizia-api/internal/state"
	appErrors "github.com/alizia-edu/alizia-api/pkg/errors"
	"github.com/alizia-edu/alizia-api/pkg/response"
)

type sessionService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Info(store *state.Store) dto.SessionInfo
	Logout(claims *models.SessionClaims)
}

// SessionHandler exposes login, session introspection and logout.
type SessionHandler struct {
	service sessionService
}

// NewSessionHandler builds a new handler.
func NewSessionHandler(service sessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// Login godoc
// @Summary Start a session: resolve the user and run the bulk initial load
// @Tags Session
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Login payload"
// @Success 201 {object} response.Envelope
// @Router /session [post]
func (h *SessionHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}

// Info godoc
// @Summary Describe the current session
// @Tags Session
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /session [get]
func (h *SessionHandler) Info(c *gin.Context) {
	store := storeFromContext(c)
	if store == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, h.service.Info(store))
}

// Logout godoc
// @Summary End the current session
// @Tags Session
// @Success 204
// @Router /session [delete]
func (h *SessionHandler) Logout(c *gin.Context) {
	h.service.Logout(claimsFromContext(c))
	response.NoContent(c)
}
