package models

// Area is a school knowledge area led by at most one coordinator.
type Area struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	CoordinatorID *int64 `json:"coordinator_id,omitempty"`
}
