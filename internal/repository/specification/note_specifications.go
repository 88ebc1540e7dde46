package specification

import (
	"strings"

	"ai-notes-be/internal/entity"

	"gorm.io/gorm"
)

// CategoryIs filters notes by exact category.
type CategoryIs struct {
	Category entity.NoteCategory
}

func (s CategoryIs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

// ArchivedIs filters by the archived flag.
type ArchivedIs struct {
	Archived bool
}

func (s ArchivedIs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_archived = ?", s.Archived)
}

// HasAnyTag matches notes whose jsonb tags array contains at least one of
// the given tags. Inputs are lowercased to match normalized storage.
type HasAnyTag struct {
	Tags []string
}

func (s HasAnyTag) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Tags) == 0 {
		return db
	}
	placeholders := make([]string, len(s.Tags))
	args := make([]interface{}, len(s.Tags))
	for i, tag := range s.Tags {
		placeholders[i] = "?"
		args[i] = strings.ToLower(strings.TrimSpace(tag))
	}
	// jsonb_exists_any is the function form of the ?| operator, which would
	// otherwise collide with the placeholder syntax.
	query := "jsonb_exists_any(tags, array[" + strings.Join(placeholders, ",") + "]::text[])"
	return db.Where(query, args...)
}

// TextSearch runs the store-native full-text match over title+content.
// Ranking is left to the store.
type TextSearch struct {
	Query string
}

func (s TextSearch) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"to_tsvector('simple', title || ' ' || content) @@ plainto_tsquery('simple', ?)",
		s.Query,
	)
}

// sortColumns whitelists request sort fields to real columns.
var sortColumns = map[string]string{
	entity.SortByCreatedAt: "created_at",
	entity.SortByUpdatedAt: "updated_at",
	entity.SortByTitle:     "title",
	entity.SortByIsPinned:  "is_pinned",
}

// NoteOrder maps a requested sort field to a safe OrderBy specification.
// Unknown fields fall back to createdAt.
func NoteOrder(sortBy string, desc bool) Specification {
	column, ok := sortColumns[sortBy]
	if !ok {
		column = "created_at"
	}
	return OrderBy{Field: column, Desc: desc}
}

// ForNoteFilter translates the typed filter criteria into the store's query
// language. Ordering and pagination are excluded so the same set can drive
// the count query.
func ForNoteFilter(f entity.NoteFilter) []Specification {
	specs := []Specification{
		OwnedBy{UserID: f.UserId},
		ArchivedIs{Archived: f.IsArchived},
	}
	if f.Search != "" {
		specs = append(specs, TextSearch{Query: f.Search})
	}
	if f.Category != nil {
		specs = append(specs, CategoryIs{Category: *f.Category})
	}
	if len(f.Tags) > 0 {
		specs = append(specs, HasAnyTag{Tags: f.Tags})
	}
	return specs
}
