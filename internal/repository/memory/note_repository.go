package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"ai-notes-be/internal/entity"
	"ai-notes-be/internal/repository/contract"

	"github.com/google/uuid"
)

// NoteRepository is the injectable in-memory implementation used by tests.
// It interprets the same NoteFilter criteria the store-backed repository
// translates to SQL; full-text search degrades to a case-insensitive
// substring match.
type NoteRepository struct {
	mu    sync.RWMutex
	notes map[uuid.UUID]*entity.Note
}

func NewNoteRepository() *NoteRepository {
	return &NoteRepository{
		notes: make(map[uuid.UUID]*entity.Note),
	}
}

var _ contract.NoteRepository = (*NoteRepository)(nil)

func cloneNote(n *entity.Note) *entity.Note {
	c := *n
	c.Tags = append([]string(nil), n.Tags...)
	if n.UpdatedAt != nil {
		t := *n.UpdatedAt
		c.UpdatedAt = &t
	}
	return &c
}

func (r *NoteRepository) Create(ctx context.Context, note *entity.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if note.Id == uuid.Nil {
		note.Id = uuid.New()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}
	r.notes[note.Id] = cloneNote(note)
	return nil
}

func (r *NoteRepository) Update(ctx context.Context, note *entity.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes[note.Id] = cloneNote(note)
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.notes, id)
	return nil
}

func (r *NoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.notes[id]
	if !ok {
		return nil, nil
	}
	return cloneNote(n), nil
}

func matches(n *entity.Note, f entity.NoteFilter) bool {
	if n.UserId != f.UserId || n.IsArchived != f.IsArchived {
		return false
	}
	if f.Category != nil && n.Category != *f.Category {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(n.Title), q) &&
			!strings.Contains(strings.ToLower(n.Content), q) {
			return false
		}
	}
	if len(f.Tags) > 0 {
		found := false
		for _, want := range f.Tags {
			want = strings.ToLower(strings.TrimSpace(want))
			for _, have := range n.Tags {
				if have == want {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func sortNotes(notes []*entity.Note, sortBy string, desc bool) {
	less := func(a, b *entity.Note) bool {
		switch sortBy {
		case entity.SortByTitle:
			return a.Title < b.Title
		case entity.SortByIsPinned:
			return !a.IsPinned && b.IsPinned
		case entity.SortByUpdatedAt:
			var at, bt time.Time
			if a.UpdatedAt != nil {
				at = *a.UpdatedAt
			}
			if b.UpdatedAt != nil {
				bt = *b.UpdatedAt
			}
			return at.Before(bt)
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(notes, func(i, j int) bool {
		if desc {
			return less(notes[j], notes[i])
		}
		return less(notes[i], notes[j])
	})
}

func (r *NoteRepository) FindPage(ctx context.Context, filter entity.NoteFilter) ([]*entity.Note, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*entity.Note, 0)
	for _, n := range r.notes {
		if matches(n, filter) {
			matched = append(matched, cloneNote(n))
		}
	}
	total := int64(len(matched))

	sortNotes(matched, filter.SortBy, filter.SortDesc)

	start := filter.Offset()
	if start >= len(matched) {
		return []*entity.Note{}, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *NoteRepository) CountsByOwner(ctx context.Context, userId uuid.UUID) (*entity.NoteCounts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := &entity.NoteCounts{}
	seen := make(map[string]bool)
	for _, n := range r.notes {
		if n.UserId != userId {
			continue
		}
		counts.TotalNotes++
		if n.IsPinned {
			counts.PinnedNotes++
		}
		if n.IsArchived {
			counts.ArchivedNotes++
		}
		if !seen[string(n.Category)] {
			seen[string(n.Category)] = true
			counts.Categories = append(counts.Categories, string(n.Category))
		}
	}
	sort.Strings(counts.Categories)
	return counts, nil
}

func (r *NoteRepository) CountByCategory(ctx context.Context, userId uuid.UUID) ([]entity.CategoryCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byCategory := make(map[string]int64)
	for _, n := range r.notes {
		if n.UserId == userId {
			byCategory[string(n.Category)]++
		}
	}
	stats := make([]entity.CategoryCount, 0, len(byCategory))
	for category, count := range byCategory {
		stats = append(stats, entity.CategoryCount{Category: category, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Category < stats[j].Category
	})
	return stats, nil
}
