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

type documentWizardSubmitter interface {
	SubmitWizard(ctx context.Context, store *state.Store) (*models.CoordinationDocument, error)
}

// DocumentWizardHandler exposes the three-step document creation flow.
// All draft state lives in the session store; handlers only dispatch
// actions and render the draft back.
type DocumentWizardHandler struct {
	service documentWizardSubmitter
}

// NewDocumentWizardHandler builds a new handler.
func NewDocumentWizardHandler(service documentWizardSubmitter) *DocumentWizardHandler {
	return &DocumentWizardHandler{service: service}
}

// Get godoc
// @Summary Read the current document draft
// @Tags Document wizard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /wizard/document [get]
func (h *DocumentWizardHandler) Get(c *gin.Context) {
	response.JSON(c, http.StatusOK, storeFromContext(c).DocumentWizard())
}

// Update godoc
// @Summary Shallow-merge fields into the document draft
// @Tags Document wizard
// @Accept json
// @Produce json
// @Param payload body dto.DocumentWizardUpdate true "Draft update"
// @Success 200 {object} response.Envelope
// @Router /wizard/document [patch]
func (h *DocumentWizardHandler) Update(c *gin.Context) {
	var update dto.DocumentWizardUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid draft update"))
		return
	}
	store := storeFromContext(c)
	store.UpdateDocumentWizard(update)
	response.JSON(c, http.StatusOK, store.DocumentWizard())
}

// ToggleNucleus selects or deselects a nucleus, pruning unreachable
// category selections on deselect.
func (h *DocumentWizardHandler) ToggleNucleus(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	store := storeFromContext(c)
	store.ToggleWizardNucleus(id)
	response.JSON(c, http.StatusOK, store.DocumentWizard())
}

// ToggleCategory selects or deselects a category.
func (h *DocumentWizardHandler) ToggleCategory(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	store := storeFromContext(c)
	if err := store.ToggleWizardCategory(id); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, store.DocumentWizard())
}

// Assign godoc
// @Summary Move a category into a subject bucket (or the unassigned zone)
// @Tags Document wizard
// @Accept json
// @Produce json
// @Param payload body dto.AssignCategoryRequest true "Assignment"
// @Success 200 {object} response.Envelope
// @Router /wizard/document/assignments [post]
func (h *DocumentWizardHandler) Assign(c *gin.Context) {
	var req dto.AssignCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CategoryID <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid assignment payload"))
		return
	}
	store := storeFromContext(c)
	if err := store.AssignWizardCategory(req.CategoryID, req.SubjectID); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, store.DocumentWizard())
}

// Next advances the draft one step when its preconditions hold.
func (h *DocumentWizardHandler) Next(c *gin.Context) {
	store := storeFromContext(c)
	if err := store.AdvanceDocumentWizard(); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, store.DocumentWizard())
}

// Back returns to the previous step, never discarding entered data.
func (h *DocumentWizardHandler) Back(c *gin.Context) {
	store := storeFromContext(c)
	store.RewindDocumentWizard()
	response.JSON(c, http.StatusOK, store.DocumentWizard())
}

// Submit godoc
// @Summary Assemble the draft into one creation request
// @Tags Document wizard
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /wizard/document/submit [post]
func (h *DocumentWizardHandler) Submit(c *gin.Context) {
	doc, err := h.service.SubmitWizard(c.Request.Context(), storeFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, doc)
}

// Reset restores the initial draft literal (cancellation).
func (h *DocumentWizardHandler) Reset(c *gin.Context) {
	storeFromContext(c).ResetDocumentWizard()
	response.NoContent(c)
}
