package entity

import "github.com/google/uuid"

// Sortable note fields; anything else falls back to createdAt.
const (
	SortByCreatedAt = "createdAt"
	SortByUpdatedAt = "updatedAt"
	SortByTitle     = "title"
	SortByIsPinned  = "isPinned"
)

// NoteFilter is the typed criteria for the list endpoint. Repositories
// translate it to their own query language.
type NoteFilter struct {
	UserId     uuid.UUID
	Search     string
	Category   *NoteCategory
	Tags       []string // any-match against normalized tags
	IsArchived bool
	SortBy     string
	SortDesc   bool
	Page       int // 1-based
	Limit      int
}

func (f NoteFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// NoteCounts is the owner-scoped aggregate for the stats endpoint.
type NoteCounts struct {
	TotalNotes    int64
	PinnedNotes   int64
	ArchivedNotes int64
	Categories    []string
}

type CategoryCount struct {
	Category string
	Count    int64
}
