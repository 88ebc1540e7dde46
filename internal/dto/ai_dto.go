package dto

import "github.com/google/uuid"

// AiContentRequest is shared by the three proxy endpoints. NoteId is
// optional; when set, the result is applied back onto the owned note and the
// matching provenance flag recorded.
type AiContentRequest struct {
	Content string     `json:"content" validate:"required,min=10,max=10000"`
	NoteId  *uuid.UUID `json:"noteId"`
}

type SummarizeResponse struct {
	Summary        string `json:"summary"`
	OriginalLength int    `json:"originalLength"`
	SummaryLength  int    `json:"summaryLength"`
}

type CategorizeResponse struct {
	Category       string `json:"category"`
	OriginalLength int    `json:"originalLength"`
}

type GenerateTagsResponse struct {
	Tags           []string `json:"tags"`
	OriginalLength int      `json:"originalLength"`
}

// ApplyAiResultMessage is the write-back pipeline payload.
type ApplyAiResultMessage struct {
	NoteId   uuid.UUID `json:"note_id"`
	UserId   uuid.UUID `json:"user_id"`
	Field    string    `json:"field"` // "summary" | "category" | "tags"
	Summary  string    `json:"summary,omitempty"`
	Category string    `json:"category,omitempty"`
	Tags     []string  `json:"tags,omitempty"`
}
