package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alizia-edu/alizia-api/internal/dto"
	"github.com/alizia-edu/alizia-api/internal/models"
	appErrors "github.com/alizia-edu/alizia-api/pkg/errors"
	"github.com/alizia-edu/alizia-api/pkg/response"
)

type inclusionService interface {
	Save(ctx context.Context, userID int64, req dto.SaveInclusionPlanRequest) (*models.InclusionPlan, error)
	List(ctx context.Context, userID int64) ([]models.InclusionPlan, error)
}

// InclusionHandler exposes the append-only inclusion planning sessions.
type InclusionHandler struct {
	service inclusionService
}

// NewInclusionHandler builds a new handler.
func NewInclusionHandler(service inclusionService) *InclusionHandler {
	return &InclusionHandler{service: service}
}

// Save godoc
// @Summary Append one inclusion-planning session
// @Tags Inclusion
// @Accept json
// @Produce json
// @Param payload body dto.SaveInclusionPlanRequest true "Plan payload"
// @Success 201 {object} response.Envelope
// @Router /inclusion-plans [post]
func (h *InclusionHandler) Save(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.SaveInclusionPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid inclusion plan payload"))
		return
	}
	plan, err := h.service.Save(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, plan)
}

// List godoc
// @Summary List the current user's saved sessions
// @Tags Inclusion
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /inclusion-plans [get]
func (h *InclusionHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	plans, err := h.service.List(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plans)
}
