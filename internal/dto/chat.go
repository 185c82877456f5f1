package dto

import "github.com/alizia-edu/alizia-api/internal/models"

// ChatRequest sends one user message to an assistant conversation.
type ChatRequest struct {
	Content string `json:"content" validate:"required"`
}

// ChatResponse returns the assistant reply plus the full transcript so the
// client can re-render without a second round trip.
type ChatResponse struct {
	Reply      models.ChatMessage   `json:"reply"`
	Transcript []models.ChatMessage `json:"transcript"`
}
