package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alizia-edu/alizia-api/internal/dto"
	"github.com/alizia-edu/alizia-api/internal/middleware"
	"github.com/alizia-edu/alizia-api/internal/models"
	"github.com/alizia-edu/alizia-api/internal/state"
	appErrors "github.com/alizia-edu/alizia-api/pkg/errors"
)

type documentWizardSubmitterMock struct {
	doc *models.CoordinationDocument
	err error
}

func (m *documentWizardSubmitterMock) SubmitWizard(context.Context, *state.Store) (*models.CoordinationDocument, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.doc, nil
}

func wizardTestContext(t *testing.T, store *state.Store, method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextStoreKey, store)
	return c, w
}

func TestDocumentWizardHandlerNext_BlockedWithoutNucleus(t *testing.T) {
	handler := NewDocumentWizardHandler(&documentWizardSubmitterMock{})
	store := state.New(models.User{ID: 1})

	c, w := wizardTestContext(t, store, http.MethodPost, "/wizard/document/next", nil)
	handler.Next(c)

	require.Equal(t, http.StatusPreconditionFailed, w.Code)
	assert.Equal(t, 1, store.DocumentWizard().Step)
}

func TestDocumentWizardHandlerToggleNucleus_AdvancesAfterSelection(t *testing.T) {
	handler := NewDocumentWizardHandler(&documentWizardSubmitterMock{})
	store := state.New(models.User{ID: 1})
	store.SetKnowledgeAreas([]models.KnowledgeArea{{ID: 10, NucleusID: 1}})
	store.SetCategories([]models.Category{{ID: 100, KnowledgeAreaID: 10}})

	c, w := wizardTestContext(t, store, http.MethodPost, "/wizard/document/nuclei/1/toggle", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	handler.ToggleNucleus(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = wizardTestContext(t, store, http.MethodPost, "/wizard/document/next", nil)
	handler.Next(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, store.DocumentWizard().Step)
}

func TestDocumentWizardHandlerToggleCategory_UnreachableRejected(t *testing.T) {
	handler := NewDocumentWizardHandler(&documentWizardSubmitterMock{})
	store := state.New(models.User{ID: 1})

	c, w := wizardTestContext(t, store, http.MethodPost, "/wizard/document/categories/100/toggle", nil)
	c.Params = gin.Params{{Key: "id", Value: "100"}}
	handler.ToggleCategory(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDocumentWizardHandlerAssign_InvalidPayload(t *testing.T) {
	handler := NewDocumentWizardHandler(&documentWizardSubmitterMock{})
	store := state.New(models.User{ID: 1})

	c, w := wizardTestContext(t, store, http.MethodPost, "/wizard/document/assign", map[string]interface{}{"category_id": 0})
	handler.Assign(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDocumentWizardHandlerSubmit_BlockedError(t *testing.T) {
	handler := NewDocumentWizardHandler(&documentWizardSubmitterMock{
		err: appErrors.Clone(appErrors.ErrWizardBlocked, "2 categories are not assigned to any subject"),
	})
	store := state.New(models.User{ID: 1})

	c, w := wizardTestContext(t, store, http.MethodPost, "/wizard/document/submit", nil)
	handler.Submit(c)

	require.Equal(t, http.StatusPreconditionFailed, w.Code)
}

func TestDocumentWizardHandlerSubmit_Created(t *testing.T) {
	handler := NewDocumentWizardHandler(&documentWizardSubmitterMock{
		doc: &models.CoordinationDocument{ID: 77, Status: models.StatusDraft},
	})
	store := state.New(models.User{ID: 1})

	c, w := wizardTestContext(t, store, http.MethodPost, "/wizard/document/submit", nil)
	handler.Submit(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":77`)
}

func TestDocumentWizardHandlerReset_NoContent(t *testing.T) {
	handler := NewDocumentWizardHandler(&documentWizardSubmitterMock{})
	store := state.New(models.User{ID: 1})
	area := int64(3)
	store.UpdateDocumentWizard(dto.DocumentWizardUpdate{AreaID: &area})

	c, w := wizardTestContext(t, store, http.MethodPost, "/wizard/document/reset", nil)
	handler.Reset(c)
	c.Writer.WriteHeaderNow()

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, int64(0), store.DocumentWizard().AreaID)
}
