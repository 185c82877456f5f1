package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/alizia-edu/alizia-api/internal/models"
	"github.com/alizia-edu/alizia-api/internal/state"
	appErrors "github.com/alizia-edu/alizia-api/pkg/errors"
	"github.com/alizia-edu/alizia-api/pkg/export"
)

type documentFetcher interface {
	Document(ctx context.Context, id int64) (*models.CoordinationDocument, error)
}

type documentRenderer interface {
	Render(summary export.DocumentSummary) ([]byte, error)
}

// ExportService renders a coordination document into a printable PDF,
// resolving names from the session's loaded collections.
type ExportService struct {
	upstream documentFetcher
	renderer documentRenderer
	logger   *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(upstream documentFetcher, renderer documentRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{upstream: upstream, renderer: renderer, logger: logger}
}

// ExportDocument fetches the document and renders it as PDF.
func (s *ExportService) ExportDocument(ctx context.Context, store *state.Store, id int64) ([]byte, error) {
	doc, err := s.upstream.Document(ctx, id)
	if err != nil {
		return nil, err
	}

	summary := buildSummary(doc, store)
	payload, err := s.renderer.Render(summary)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render document")
	}
	return payload, nil
}

func buildSummary(doc *models.CoordinationDocument, store *state.Store) export.DocumentSummary {
	areaName := fmt.Sprintf("area %d", doc.AreaID)
	for _, area := range store.Areas() {
		if area.ID == doc.AreaID {
			areaName = area.Name
			break
		}
	}

	nucleusNames := make(map[int64]string)
	for _, nucleus := range store.Nuclei() {
		nucleusNames[nucleus.ID] = nucleus.Name
	}
	categoryNames := make(map[int64]string)
	for _, category := range store.Categories() {
		categoryNames[category.ID] = category.Name
	}

	summary := export.DocumentSummary{
		Title:     fmt.Sprintf("Coordination document #%d", doc.ID),
		AreaName:  areaName,
		StartDate: doc.StartDate,
		EndDate:   doc.EndDate,
		Status:    string(doc.Status),
	}
	for _, id := range doc.NucleusIDs {
		if name, ok := nucleusNames[id]; ok {
			summary.Nuclei = append(summary.Nuclei, name)
		} else {
			summary.Nuclei = append(summary.Nuclei, fmt.Sprintf("nucleus %d", id))
		}
	}
	for subjectID, plan := range doc.SubjectsData {
		section := export.SubjectSection{SubjectName: plan.SubjectName}
		if section.SubjectName == "" {
			section.SubjectName = fmt.Sprintf("subject %d", subjectID)
		}
		for _, id := range plan.CategoryIDs {
			if name, ok := categoryNames[id]; ok {
				section.Categories = append(section.Categories, name)
			} else {
				section.Categories = append(section.Categories, fmt.Sprintf("category %d", id))
			}
		}
		summary.Subjects = append(summary.Subjects, section)
	}
	sort.Slice(summary.Subjects, func(i, j int) bool {
		return summary.Subjects[i].SubjectName < summary.Subjects[j].SubjectName
	})
	return summary
}
