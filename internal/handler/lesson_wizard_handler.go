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

type lessonWizardSubmitter interface {
	SubmitWizard(ctx context.Context, store *state.Store) (*models.LessonPlan, error)
}

// LessonWizardHandler exposes the two-step lesson planning flow.
type LessonWizardHandler struct {
	service lessonWizardSubmitter
}

// NewLessonWizardHandler builds a new handler.
func NewLessonWizardHandler(service lessonWizardSubmitter) *LessonWizardHandler {
	return &LessonWizardHandler{service: service}
}

// Get reads the current lesson draft.
func (h *LessonWizardHandler) Get(c *gin.Context) {
	response.JSON(c, http.StatusOK, storeFromContext(c).LessonWizard())
}

// Update shallow-merges fields into the lesson draft.
func (h *LessonWizardHandler) Update(c *gin.Context) {
	var update dto.LessonWizardUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid draft update"))
		return
	}
	store := storeFromContext(c)
	store.UpdateLessonWizard(update)
	response.JSON(c, http.StatusOK, store.LessonWizard())
}

// ToggleCategory selects or deselects a category for the planned class.
func (h *LessonWizardHandler) ToggleCategory(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	store := storeFromContext(c)
	if err := store.ToggleLessonWizardCategory(id); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, store.LessonWizard())
}

// SetMoment godoc
// @Summary Replace one lesson phase of the draft
// @Tags Lesson wizard
// @Accept json
// @Produce json
// @Param payload body dto.MomentUpdate true "Moment payload"
// @Success 200 {object} response.Envelope
// @Router /wizard/lesson/moments [put]
func (h *LessonWizardHandler) SetMoment(c *gin.Context) {
	var req dto.MomentUpdate
	if err := c.ShouldBindJSON(&req); err != nil || req.Key == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid moment payload"))
		return
	}
	store := storeFromContext(c)
	if err := store.SetLessonWizardMoment(req.Key, req.ActivityIDs, req.Notes); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, store.LessonWizard())
}

// Next advances the draft one step when its preconditions hold.
func (h *LessonWizardHandler) Next(c *gin.Context) {
	store := storeFromContext(c)
	if err := store.AdvanceLessonWizard(); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, store.LessonWizard())
}

// Back returns to the previous step, never discarding entered data.
func (h *LessonWizardHandler) Back(c *gin.Context) {
	store := storeFromContext(c)
	store.RewindLessonWizard()
	response.JSON(c, http.StatusOK, store.LessonWizard())
}

// Submit assembles the draft into one creation request.
func (h *LessonWizardHandler) Submit(c *gin.Context) {
	plan, err := h.service.SubmitWizard(c.Request.Context(), storeFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, plan)
}

// Reset restores the initial draft literal (cancellation).
func (h *LessonWizardHandler) Reset(c *gin.Context) {
	storeFromContext(c).ResetLessonWizard()
	response.NoContent(c)
}
