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

type lessonService interface {
	CourseSubjectsForUser(ctx context.Context, store *state.Store) ([]models.CourseSubject, error)
	TeacherCourses(ctx context.Context, store *state.Store) ([]models.Course, error)
	Status(ctx context.Context, id int64) (*models.CoordinationStatus, error)
	PlansByWeek(ctx context.Context, store *state.Store, courseSubjectID int64) ([]dto.WeekGroup, error)
	Update(ctx context.Context, id int64, req dto.UpdateLessonPlanRequest) (*models.LessonPlan, error)
	Delete(ctx context.Context, store *state.Store, id int64) error
	Chat(ctx context.Context, store *state.Store, planID int64, content string) (*dto.ChatResponse, error)
}

// LessonHandler exposes course-subject planning views and lesson plans.
type LessonHandler struct {
	service lessonService
}

// NewLessonHandler builds a new handler.
func NewLessonHandler(service lessonService) *LessonHandler {
	return &LessonHandler{service: service}
}

// CourseSubjects godoc
// @Summary List the course-subjects taught by the current user
// @Tags Lessons
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /course-subjects [get]
func (h *LessonHandler) CourseSubjects(c *gin.Context) {
	list, err := h.service.CourseSubjectsForUser(c.Request.Context(), storeFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// TeacherCourses lists the courses the current user teaches in.
func (h *LessonHandler) TeacherCourses(c *gin.Context) {
	courses, err := h.service.TeacherCourses(c.Request.Context(), storeFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses)
}

// Status reports coordination coverage for one course-subject.
func (h *LessonHandler) Status(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	status, err := h.service.Status(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status)
}

// Plans godoc
// @Summary List the lesson plans of a course-subject grouped by week
// @Tags Lessons
// @Produce json
// @Param id path int true "Course-subject id"
// @Success 200 {object} response.Envelope
// @Router /course-subjects/{id}/lesson-plans [get]
func (h *LessonHandler) Plans(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	groups, err := h.service.PlansByWeek(c.Request.Context(), storeFromContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, groups)
}

// Update patches one lesson plan.
func (h *LessonHandler) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateLessonPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid lesson plan update"))
		return
	}
	plan, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plan)
}

// Delete removes one lesson plan.
func (h *LessonHandler) Delete(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), storeFromContext(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Chat godoc
// @Summary Send one message to the lesson-plan assistant
// @Tags Lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson plan id"
// @Param payload body dto.ChatRequest true "Chat payload"
// @Success 200 {object} response.Envelope
// @Router /lesson-plans/{id}/chat [post]
func (h *LessonHandler) Chat(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "content is required"))
		return
	}
	resp, err := h.service.Chat(c.Request.Context(), storeFromContext(c), id, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}
