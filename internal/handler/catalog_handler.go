package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alizia-edu/alizia-api/internal/models"
	appErrors "github.com/alizia-edu/alizia-api/pkg/errors"
	"github.com/alizia-edu/alizia-api/pkg/response"
)

type catalogService interface {
	Courses(ctx context.Context) ([]models.Course, error)
	CourseStudents(ctx context.Context, courseID int64) ([]models.Student, error)
	Subjects(ctx context.Context) ([]models.Subject, error)
	Nuclei(ctx context.Context) ([]models.ProblematicNucleus, error)
	KnowledgeAreas(ctx context.Context) ([]models.KnowledgeArea, error)
	Categories(ctx context.Context) ([]models.Category, error)
	MomentTypes(ctx context.Context) ([]models.MomentType, error)
	Activities(ctx context.Context) ([]models.Activity, error)
	Fonts(ctx context.Context, areaID *int64) ([]models.Font, error)
}

// CatalogHandler serves the read-mostly reference collections.
type CatalogHandler struct {
	service catalogService
}

// NewCatalogHandler builds a new handler.
func NewCatalogHandler(service catalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// Courses godoc
// @Summary List courses
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalog/courses [get]
func (h *CatalogHandler) Courses(c *gin.Context) {
	h.respond(c, func(ctx context.Context) (interface{}, error) { return h.service.Courses(ctx) })
}

// CourseStudents godoc
// @Summary List the students of one course
// @Tags Catalog
// @Produce json
// @Param id path int true "Course id"
// @Success 200 {object} response.Envelope
// @Router /catalog/courses/{id}/students [get]
func (h *CatalogHandler) CourseStudents(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, func(ctx context.Context) (interface{}, error) { return h.service.CourseStudents(ctx, id) })
}

// Subjects lists all subjects.
func (h *CatalogHandler) Subjects(c *gin.Context) {
	h.respond(c, func(ctx context.Context) (interface{}, error) { return h.service.Subjects(ctx) })
}

// Nuclei lists the taxonomy roots.
func (h *CatalogHandler) Nuclei(c *gin.Context) {
	h.respond(c, func(ctx context.Context) (interface{}, error) { return h.service.Nuclei(ctx) })
}

// KnowledgeAreas lists the middle taxonomy level.
func (h *CatalogHandler) KnowledgeAreas(c *gin.Context) {
	h.respond(c, func(ctx context.Context) (interface{}, error) { return h.service.KnowledgeAreas(ctx) })
}

// Categories lists the taxonomy leaves.
func (h *CatalogHandler) Categories(c *gin.Context) {
	h.respond(c, func(ctx context.Context) (interface{}, error) { return h.service.Categories(ctx) })
}

// MomentTypes lists the lesson phase descriptors.
func (h *CatalogHandler) MomentTypes(c *gin.Context) {
	h.respond(c, func(ctx context.Context) (interface{}, error) { return h.service.MomentTypes(ctx) })
}

// Activities lists the activity bank.
func (h *CatalogHandler) Activities(c *gin.Context) {
	h.respond(c, func(ctx context.Context) (interface{}, error) { return h.service.Activities(ctx) })
}

// Fonts godoc
// @Summary List information sources, optionally filtered by area
// @Tags Catalog
// @Produce json
// @Param area_id query int false "Area id"
// @Success 200 {object} response.Envelope
// @Router /catalog/fonts [get]
func (h *CatalogHandler) Fonts(c *gin.Context) {
	var areaID *int64
	if raw := c.Query("area_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid area_id"))
			return
		}
		areaID = &parsed
	}
	h.respond(c, func(ctx context.Context) (interface{}, error) { return h.service.Fonts(ctx, areaID) })
}

func (h *CatalogHandler) respond(c *gin.Context, fetch func(context.Context) (interface{}, error)) {
	items, err := fetch(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}
