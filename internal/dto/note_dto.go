package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title    string   `json:"title" validate:"required,max=100"`
	Content  string   `json:"content" validate:"required,max=10000"`
	Summary  string   `json:"summary" validate:"omitempty,max=500"`
	Category string   `json:"category" validate:"omitempty,oneof=personal work education health finance travel other"`
	Tags     []string `json:"tags" validate:"omitempty,dive,max=20"`
	Color    string   `json:"color" validate:"omitempty,len=7,hexcolor"`
	IsPinned bool     `json:"isPinned"`
}

// UpdateNoteRequest is a partial update: only non-nil fields are applied.
type UpdateNoteRequest struct {
	Id         uuid.UUID `json:"-"`
	Title      *string   `json:"title" validate:"omitempty,max=100"`
	Content    *string   `json:"content" validate:"omitempty,max=10000"`
	Summary    *string   `json:"summary" validate:"omitempty,max=500"`
	Category   *string   `json:"category" validate:"omitempty,oneof=personal work education health finance travel other"`
	Tags       *[]string `json:"tags" validate:"omitempty,dive,max=20"`
	Color      *string   `json:"color" validate:"omitempty,len=7,hexcolor"`
	IsPinned   *bool     `json:"isPinned"`
	IsArchived *bool     `json:"isArchived"`
}

type ListNotesQuery struct {
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
	Search     string `query:"search"`
	Category   string `query:"category" validate:"omitempty,oneof=personal work education health finance travel other"`
	Tags       string `query:"tags"` // comma-separated, any-match
	SortBy     string `query:"sortBy"`
	SortOrder  string `query:"sortOrder"` // "asc" | "desc"
	IsArchived bool   `query:"isArchived"`
}

type AiGeneratedFlags struct {
	Summary  bool `json:"summary"`
	Category bool `json:"category"`
	Tags     bool `json:"tags"`
}

type NoteResponse struct {
	Id          uuid.UUID        `json:"id"`
	Title       string           `json:"title"`
	Content     string           `json:"content"`
	Summary     string           `json:"summary,omitempty"`
	Category    string           `json:"category"`
	Tags        []string         `json:"tags"`
	IsPinned    bool             `json:"isPinned"`
	IsArchived  bool             `json:"isArchived"`
	AiGenerated AiGeneratedFlags `json:"aiGenerated"`
	Color       string           `json:"color"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   *time.Time       `json:"updatedAt,omitempty"`

	// Derived at serialization, never stored.
	FormattedDate string `json:"formattedDate"`
	ReadingTime   int    `json:"readingTime"`
}

type CategoryStat struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type NoteStatsResponse struct {
	TotalNotes    int64          `json:"totalNotes"`
	PinnedNotes   int64          `json:"pinnedNotes"`
	ArchivedNotes int64          `json:"archivedNotes"`
	Categories    []string       `json:"categories"`
	CategoryStats []CategoryStat `json:"categoryStats"`
}
