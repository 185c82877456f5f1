package models

import "time"

// Resource is a free-text/markdown teaching resource.
type Resource struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	ResourceType string    `json:"resource_type"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Font is a bibliographic/information source, optionally scoped to an area.
type Font struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	AreaID *int64 `json:"area_id,omitempty"`
}
