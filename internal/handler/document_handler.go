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

type documentService interface {
	List(ctx context.Context, store *state.Store) ([]models.CoordinationDocument, error)
	Get(ctx context.Context, store *state.Store, id int64) (*models.CoordinationDocument, error)
	Publish(ctx context.Context, store *state.Store, id int64) (*models.CoordinationDocument, error)
	Archive(ctx context.Context, store *state.Store, id int64) (*models.CoordinationDocument, error)
	Delete(ctx context.Context, store *state.Store, id int64) error
	Chat(ctx context.Context, store *state.Store, docID int64, content string) (*dto.ChatResponse, error)
	Generate(ctx context.Context, store *state.Store, docID int64) (*models.CoordinationDocument, error)
}

type documentExporter interface {
	ExportDocument(ctx context.Context, store *state.Store, id int64) ([]byte, error)
}

// DocumentHandler exposes coordination documents: listing, lifecycle,
// assistant chat, generation and PDF export.
type DocumentHandler struct {
	service  documentService
	exporter documentExporter
}

// NewDocumentHandler builds a new handler. A nil exporter disables export.
func NewDocumentHandler(service documentService, exporter documentExporter) *DocumentHandler {
	return &DocumentHandler{service: service, exporter: exporter}
}

// List godoc
// @Summary List coordination documents
// @Tags Documents
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.service.List(c.Request.Context(), storeFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, docs)
}

// Get godoc
// @Summary Get one coordination document
// @Tags Documents
// @Produce json
// @Param id path int true "Document id"
// @Success 200 {object} response.Envelope
// @Router /documents/{id} [get]
func (h *DocumentHandler) Get(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	doc, err := h.service.Get(c.Request.Context(), storeFromContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doc)
}

// Publish moves a draft document to published.
func (h *DocumentHandler) Publish(c *gin.Context) {
	h.transition(c, h.service.Publish)
}

// Archive moves a published document to archived.
func (h *DocumentHandler) Archive(c *gin.Context) {
	h.transition(c, h.service.Archive)
}

func (h *DocumentHandler) transition(c *gin.Context, apply func(context.Context, *state.Store, int64) (*models.CoordinationDocument, error)) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	doc, err := apply(c.Request.Context(), storeFromContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doc)
}

// Delete godoc
// @Summary Delete a coordination document
// @Tags Documents
// @Param id path int true "Document id"
// @Success 204
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
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
// @Summary Send one message to the document assistant
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path int true "Document id"
// @Param payload body dto.ChatRequest true "Chat payload"
// @Success 200 {object} response.Envelope
// @Router /documents/{id}/chat [post]
func (h *DocumentHandler) Chat(c *gin.Context) {
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

// Generate asks the assistant to fill per-subject content.
func (h *DocumentHandler) Generate(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	doc, err := h.service.Generate(c.Request.Context(), storeFromContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doc)
}

// Export godoc
// @Summary Export a coordination document as PDF
// @Tags Documents
// @Produce application/pdf
// @Param id path int true "Document id"
// @Success 200
// @Router /documents/{id}/export [get]
func (h *DocumentHandler) Export(c *gin.Context) {
	if h.exporter == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "export is disabled"))
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	payload, err := h.exporter.ExportDocument(c.Request.Context(), storeFromContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "application/pdf", payload)
}
