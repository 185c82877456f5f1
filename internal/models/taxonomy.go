package models

// ProblematicNucleus is the root of the three-level curriculum taxonomy.
type ProblematicNucleus struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// KnowledgeArea belongs to exactly one nucleus.
type KnowledgeArea struct {
	ID        int64  `json:"id"`
	NucleusID int64  `json:"nucleus_id"`
	Name      string `json:"name"`
}

// Category is the leaf level, child of a knowledge area.
type Category struct {
	ID              int64  `json:"id"`
	KnowledgeAreaID int64  `json:"knowledge_area_id"`
	Name            string `json:"name"`
}

// CategoriesUnderNuclei computes the set of category ids reachable from the
// given nucleus selection through their knowledge areas.
func CategoriesUnderNuclei(nucleusIDs []int64, areas []KnowledgeArea, categories []Category) map[int64]struct{} {
	selected := make(map[int64]struct{}, len(nucleusIDs))
	for _, id := range nucleusIDs {
		selected[id] = struct{}{}
	}

	validAreas := make(map[int64]struct{}, len(areas))
	for _, area := range areas {
		if _, ok := selected[area.NucleusID]; ok {
			validAreas[area.ID] = struct{}{}
		}
	}

	valid := make(map[int64]struct{}, len(categories))
	for _, category := range categories {
		if _, ok := validAreas[category.KnowledgeAreaID]; ok {
			valid[category.ID] = struct{}{}
		}
	}
	return valid
}
