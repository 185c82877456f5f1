package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/alizia-edu/alizia-api/internal/dto"
	"github.com/alizia-edu/alizia-api/internal/models"
	"github.com/alizia-edu/alizia-api/internal/state"
	appErrors "github.com/alizia-edu/alizia-api/pkg/errors"
)

type documentAPI interface {
	Documents(ctx context.Context) ([]models.CoordinationDocument, error)
	Document(ctx context.Context, id int64) (*models.CoordinationDocument, error)
	CreateDocument(ctx context.Context, req dto.CreateDocumentRequest) (*models.CoordinationDocument, error)
	PatchDocument(ctx context.Context, id int64, patch map[string]interface{}) (*models.CoordinationDocument, error)
	DeleteDocument(ctx context.Context, id int64) error
	DocumentChat(ctx context.Context, docID int64, content string) (string, error)
	GenerateDocument(ctx context.Context, docID int64) (*models.CoordinationDocument, error)
}

// DocumentService drives coordination documents: listing, the one-way
// lifecycle, the document assistant chat and wizard submission.
type DocumentService struct {
	upstream documentAPI
	validate *validator.Validate
	logger   *zap.Logger
}

// NewDocumentService constructs the service.
func NewDocumentService(upstream documentAPI, validate *validator.Validate, logger *zap.Logger) *DocumentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{upstream: upstream, validate: validate, logger: logger}
}

// List re-fetches all documents and replaces the store collection.
func (s *DocumentService) List(ctx context.Context, store *state.Store) ([]models.CoordinationDocument, error) {
	docs, err := s.upstream.Documents(ctx)
	if err != nil {
		return nil, err
	}
	store.SetDocuments(docs)
	return docs, nil
}

// Get fetches one document and marks it as the current selection.
func (s *DocumentService) Get(ctx context.Context, store *state.Store, id int64) (*models.CoordinationDocument, error) {
	doc, err := s.upstream.Document(ctx, id)
	if err != nil {
		return nil, err
	}
	store.SetCurrentDocument(&doc.ID)
	return doc, nil
}

// Publish moves a draft document to published. The lifecycle is strictly
// one-way: any other transition is rejected before calling upstream.
func (s *DocumentService) Publish(ctx context.Context, store *state.Store, id int64) (*models.CoordinationDocument, error) {
	return s.transition(ctx, store, id, models.StatusPublished)
}

// Archive moves a published document to archived.
func (s *DocumentService) Archive(ctx context.Context, store *state.Store, id int64) (*models.CoordinationDocument, error) {
	return s.transition(ctx, store, id, models.StatusArchived)
}

func (s *DocumentService) transition(ctx context.Context, store *state.Store, id int64, next models.DocumentStatus) (*models.CoordinationDocument, error) {
	doc, err := s.upstream.Document(ctx, id)
	if err != nil {
		return nil, err
	}
	if !doc.Status.CanTransition(next) {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition, fmt.Sprintf("cannot move document from %s to %s", doc.Status, next))
	}

	updated, err := s.upstream.PatchDocument(ctx, id, map[string]interface{}{"status": next})
	if err != nil {
		return nil, err
	}

	// Mutation responses are merged back by re-fetching the collection.
	if docs, err := s.upstream.Documents(ctx); err == nil {
		store.SetDocuments(docs)
	} else {
		s.logger.Warn("document re-fetch after status change failed", zap.Int64("document_id", id), zap.Error(err))
	}
	return updated, nil
}

// Delete removes a document upstream and locally filters the collection.
func (s *DocumentService) Delete(ctx context.Context, store *state.Store, id int64) error {
	if err := s.upstream.DeleteDocument(ctx, id); err != nil {
		return err
	}

	remaining := []models.CoordinationDocument{}
	for _, doc := range store.Documents() {
		if doc.ID != id {
			remaining = append(remaining, doc)
		}
	}
	store.SetDocuments(remaining)

	if current := store.CurrentDocument(); current != nil && *current == id {
		store.SetCurrentDocument(nil)
	}
	return nil
}

// SubmitWizard assembles the draft into one creation POST. On success the
// draft resets to its initial state; on failure it is left intact at its
// current step so the user can retry.
func (s *DocumentService) SubmitWizard(ctx context.Context, store *state.Store) (*models.CoordinationDocument, error) {
	payload, err := store.DocumentWizardPayload()
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid document payload")
	}

	doc, err := s.upstream.CreateDocument(ctx, payload)
	if err != nil {
		return nil, err
	}

	store.ResetDocumentWizard()
	store.SetCurrentDocument(&doc.ID)
	if docs, err := s.upstream.Documents(ctx); err == nil {
		store.SetDocuments(docs)
	} else {
		s.logger.Warn("document re-fetch after create failed", zap.Error(err))
	}
	return doc, nil
}

// Chat appends the user message to the document transcript, forwards it to
// the assistant and appends the reply. The lesson transcript is untouched.
func (s *DocumentService) Chat(ctx context.Context, store *state.Store, docID int64, content string) (*dto.ChatResponse, error) {
	store.AppendDocumentChat(models.ChatMessage{Role: models.ChatRoleUser, Content: content})

	replyContent, err := s.upstream.DocumentChat(ctx, docID, content)
	if err != nil {
		return nil, err
	}

	reply := models.ChatMessage{Role: models.ChatRoleAssistant, Content: replyContent}
	store.AppendDocumentChat(reply)
	return &dto.ChatResponse{Reply: reply, Transcript: store.DocumentChat()}, nil
}

// Generate asks the assistant to fill per-subject content and merges the
// result back into the store collection.
func (s *DocumentService) Generate(ctx context.Context, store *state.Store, docID int64) (*models.CoordinationDocument, error) {
	doc, err := s.upstream.GenerateDocument(ctx, docID)
	if err != nil {
		return nil, err
	}

	docs := store.Documents()
	for i := range docs {
		if docs[i].ID == doc.ID {
			docs[i] = *doc
		}
	}
	store.SetDocuments(docs)
	return doc, nil
}
