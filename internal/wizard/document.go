// Package wizard implements the two linear data-collection flows: the
// coordination-document wizard (3 steps) and the lesson-plan wizard
// (2 steps). Drafts are transient: they are never persisted and reset to a
// fixed initial shape on completion or cancellation.
package wizard

import (
	"fmt"

	"github.com/alizia-edu/alizia-api/internal/dto"
	"github.com/alizia-edu/alizia-api/internal/models"
	appErrors "github.com/alizia-edu/alizia-api/pkg/errors"
)

// Document wizard steps.
const (
	DocStepNuclei     = 1
	DocStepCategories = 2
	DocStepSubjects   = 3
)

// DocumentDraft accumulates input across the three document wizard steps.
// Assignments maps subject id to the ordered categories dropped on it.
type DocumentDraft struct {
	Step        int               `json:"step"`
	AreaID      int64             `json:"area_id"`
	StartDate   string            `json:"start_date"`
	EndDate     string            `json:"end_date"`
	NucleusIDs  []int64           `json:"nucleus_ids"`
	CategoryIDs []int64           `json:"category_ids"`
	Assignments map[int64][]int64 `json:"assignments"`
}

// NewDocumentDraft returns the initial draft literal: step 1, nothing
// selected. Resets must produce exactly this shape.
func NewDocumentDraft() DocumentDraft {
	return DocumentDraft{
		Step:        DocStepNuclei,
		NucleusIDs:  []int64{},
		CategoryIDs: []int64{},
		Assignments: map[int64][]int64{},
	}
}

// Apply shallow-merges the update into the draft. Nil fields are ignored;
// provided slices replace the previous value wholesale.
func (d *DocumentDraft) Apply(update dto.DocumentWizardUpdate) {
	if update.AreaID != nil {
		d.AreaID = *update.AreaID
	}
	if update.StartDate != nil {
		d.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		d.EndDate = *update.EndDate
	}
	if update.NucleusIDs != nil {
		d.NucleusIDs = append([]int64{}, (*update.NucleusIDs)...)
	}
	if update.CategoryIDs != nil {
		d.CategoryIDs = append([]int64{}, (*update.CategoryIDs)...)
	}
}

// ToggleNucleus selects or deselects a nucleus. Deselecting prunes every
// category selection whose knowledge area is no longer reachable from the
// remaining nuclei, including copies already assigned to subjects.
func (d *DocumentDraft) ToggleNucleus(id int64, areas []models.KnowledgeArea, categories []models.Category) {
	if idx := indexOf(d.NucleusIDs, id); idx >= 0 {
		d.NucleusIDs = append(d.NucleusIDs[:idx], d.NucleusIDs[idx+1:]...)
		d.pruneCategories(areas, categories)
		return
	}
	d.NucleusIDs = append(d.NucleusIDs, id)
}

func (d *DocumentDraft) pruneCategories(areas []models.KnowledgeArea, categories []models.Category) {
	valid := models.CategoriesUnderNuclei(d.NucleusIDs, areas, categories)

	kept := d.CategoryIDs[:0]
	for _, id := range d.CategoryIDs {
		if _, ok := valid[id]; ok {
			kept = append(kept, id)
		}
	}
	d.CategoryIDs = kept

	for subjectID, assigned := range d.Assignments {
		filtered := assigned[:0]
		for _, id := range assigned {
			if _, ok := valid[id]; ok {
				filtered = append(filtered, id)
			}
		}
		if len(filtered) == 0 {
			delete(d.Assignments, subjectID)
			continue
		}
		d.Assignments[subjectID] = filtered
	}
}

// ToggleCategory selects or deselects a category. Selecting requires its
// knowledge area to belong to one of the currently selected nuclei.
// Deselecting also removes it from whichever subject bucket held it.
func (d *DocumentDraft) ToggleCategory(id int64, areas []models.KnowledgeArea, categories []models.Category) error {
	if idx := indexOf(d.CategoryIDs, id); idx >= 0 {
		d.CategoryIDs = append(d.CategoryIDs[:idx], d.CategoryIDs[idx+1:]...)
		d.removeAssignment(id)
		return nil
	}

	valid := models.CategoriesUnderNuclei(d.NucleusIDs, areas, categories)
	if _, ok := valid[id]; !ok {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("category %d is not reachable from the selected nuclei", id))
	}
	d.CategoryIDs = append(d.CategoryIDs, id)
	return nil
}

// Assign moves a selected category into a subject bucket. A category lives
// in at most one bucket: re-assignment removes it from the previous bucket
// first (move, not copy). A nil subject drops it into the unassigned zone.
func (d *DocumentDraft) Assign(categoryID int64, subjectID *int64) error {
	if indexOf(d.CategoryIDs, categoryID) < 0 {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("category %d is not selected", categoryID))
	}

	d.removeAssignment(categoryID)
	if subjectID == nil {
		return nil
	}
	d.Assignments[*subjectID] = append(d.Assignments[*subjectID], categoryID)
	return nil
}

func (d *DocumentDraft) removeAssignment(categoryID int64) {
	for subjectID, assigned := range d.Assignments {
		if idx := indexOf(assigned, categoryID); idx >= 0 {
			assigned = append(assigned[:idx], assigned[idx+1:]...)
			if len(assigned) == 0 {
				delete(d.Assignments, subjectID)
			} else {
				d.Assignments[subjectID] = assigned
			}
			return
		}
	}
}

// Unassigned returns the selected categories not yet dropped on a subject,
// preserving selection order.
func (d *DocumentDraft) Unassigned() []int64 {
	assigned := make(map[int64]struct{})
	for _, bucket := range d.Assignments {
		for _, id := range bucket {
			assigned[id] = struct{}{}
		}
	}

	unassigned := []int64{}
	for _, id := range d.CategoryIDs {
		if _, ok := assigned[id]; !ok {
			unassigned = append(unassigned, id)
		}
	}
	return unassigned
}

// Next advances one step. Step 1 requires at least one selected nucleus;
// the category step has no minimum of its own.
func (d *DocumentDraft) Next() error {
	switch d.Step {
	case DocStepNuclei:
		if len(d.NucleusIDs) == 0 {
			return appErrors.Clone(appErrors.ErrWizardStep, "select at least one nucleus to continue")
		}
	case DocStepSubjects:
		return appErrors.Clone(appErrors.ErrWizardStep, "already at the last step")
	}
	d.Step++
	return nil
}

// Back returns to the previous step without discarding any entered data.
func (d *DocumentDraft) Back() {
	if d.Step > DocStepNuclei {
		d.Step--
	}
}

// CanSubmit reports whether the terminal create action is allowed:
// every selected category must be assigned to a subject.
func (d *DocumentDraft) CanSubmit() error {
	if len(d.NucleusIDs) == 0 {
		return appErrors.Clone(appErrors.ErrWizardBlocked, "no nuclei selected")
	}
	if len(d.CategoryIDs) == 0 {
		return appErrors.Clone(appErrors.ErrWizardBlocked, "no categories selected")
	}
	if unassigned := d.Unassigned(); len(unassigned) > 0 {
		return appErrors.Clone(appErrors.ErrWizardBlocked, fmt.Sprintf("%d categories are not assigned to any subject", len(unassigned)))
	}
	return nil
}

// Payload assembles the single creation request from the whole draft.
func (d *DocumentDraft) Payload(subjects []models.Subject) dto.CreateDocumentRequest {
	names := make(map[int64]string, len(subjects))
	for _, subject := range subjects {
		names[subject.ID] = subject.Name
	}

	data := make(map[int64]models.SubjectPlan, len(d.Assignments))
	for subjectID, assigned := range d.Assignments {
		data[subjectID] = models.SubjectPlan{
			SubjectName: names[subjectID],
			CategoryIDs: append([]int64{}, assigned...),
		}
	}

	return dto.CreateDocumentRequest{
		AreaID:       d.AreaID,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		NucleusIDs:   append([]int64{}, d.NucleusIDs...),
		CategoryIDs:  append([]int64{}, d.CategoryIDs...),
		SubjectsData: data,
	}
}

func indexOf(ids []int64, id int64) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
