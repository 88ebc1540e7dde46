package memory

import (
	"context"
	"testing"
	"time"

	"ai-notes-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedNote(t *testing.T, repo *NoteRepository, userId uuid.UUID, title string, mutate func(*entity.Note)) *entity.Note {
	t.Helper()
	note := &entity.Note{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     title,
		Content:   "content of " + title,
		Category:  entity.CategoryOther,
		Color:     entity.DefaultColor,
		CreatedAt: time.Now(),
	}
	if mutate != nil {
		mutate(note)
	}
	require.NoError(t, repo.Create(context.Background(), note))
	return note
}

func TestNoteRepositoryFindByIDIsUnscoped(t *testing.T) {
	repo := NewNoteRepository()
	owner := uuid.New()
	note := seedNote(t, repo, owner, "mine", nil)

	found, err := repo.FindByID(context.Background(), note.Id)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, owner, found.UserId)

	missing, err := repo.FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestNoteRepositoryFindPageFilters(t *testing.T) {
	repo := NewNoteRepository()
	owner := uuid.New()
	other := uuid.New()

	work := entity.CategoryWork

	seedNote(t, repo, owner, "meeting notes", func(n *entity.Note) {
		n.Category = entity.CategoryWork
		n.Tags = []string{"meeting", "q3"}
	})
	seedNote(t, repo, owner, "grocery list", func(n *entity.Note) {
		n.Category = entity.CategoryPersonal
		n.Tags = []string{"shopping"}
	})
	seedNote(t, repo, owner, "old plans", func(n *entity.Note) {
		n.IsArchived = true
	})
	seedNote(t, repo, other, "not mine", nil)

	base := entity.NoteFilter{UserId: owner, Page: 1, Limit: 10}

	notes, total, err := repo.FindPage(context.Background(), base)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total) // archived and foreign notes excluded
	assert.Len(t, notes, 2)

	withCategory := base
	withCategory.Category = &work
	notes, total, err = repo.FindPage(context.Background(), withCategory)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "meeting notes", notes[0].Title)

	withTags := base
	withTags.Tags = []string{"q3", "unknown"}
	notes, total, err = repo.FindPage(context.Background(), withTags)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "meeting notes", notes[0].Title)

	withSearch := base
	withSearch.Search = "GROCERY"
	notes, total, err = repo.FindPage(context.Background(), withSearch)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "grocery list", notes[0].Title)

	archived := base
	archived.IsArchived = true
	notes, total, err = repo.FindPage(context.Background(), archived)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "old plans", notes[0].Title)
}

func TestNoteRepositoryFindPageSortAndPaginate(t *testing.T) {
	repo := NewNoteRepository()
	owner := uuid.New()

	base := time.Now()
	titles := []string{"alpha", "bravo", "charlie"}
	for i, title := range titles {
		created := base.Add(time.Duration(i) * time.Minute)
		seedNote(t, repo, owner, title, func(n *entity.Note) {
			n.CreatedAt = created
		})
	}

	newestFirst := entity.NoteFilter{
		UserId:   owner,
		SortBy:   entity.SortByCreatedAt,
		SortDesc: true,
		Page:     1,
		Limit:    2,
	}
	notes, total, err := repo.FindPage(context.Background(), newestFirst)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, notes, 2)
	assert.Equal(t, "charlie", notes[0].Title)
	assert.Equal(t, "bravo", notes[1].Title)

	secondPage := newestFirst
	secondPage.Page = 2
	notes, _, err = repo.FindPage(context.Background(), secondPage)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "alpha", notes[0].Title)

	outOfRange := newestFirst
	outOfRange.Page = 5
	notes, total, err = repo.FindPage(context.Background(), outOfRange)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Empty(t, notes)

	byTitle := entity.NoteFilter{
		UserId: owner,
		SortBy: entity.SortByTitle,
		Page:   1,
		Limit:  10,
	}
	notes, _, err = repo.FindPage(context.Background(), byTitle)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "alpha", notes[0].Title)
	assert.Equal(t, "charlie", notes[2].Title)
}

func TestNoteRepositoryCounts(t *testing.T) {
	repo := NewNoteRepository()
	owner := uuid.New()

	seedNote(t, repo, owner, "a", func(n *entity.Note) {
		n.Category = entity.CategoryWork
		n.IsPinned = true
	})
	seedNote(t, repo, owner, "b", func(n *entity.Note) {
		n.Category = entity.CategoryWork
		n.IsArchived = true
	})
	seedNote(t, repo, owner, "c", func(n *entity.Note) {
		n.Category = entity.CategoryTravel
	})
	seedNote(t, repo, uuid.New(), "foreign", nil)

	counts, err := repo.CountsByOwner(context.Background(), owner)
	require.NoError(t, err)
	assert.EqualValues(t, 3, counts.TotalNotes)
	assert.EqualValues(t, 1, counts.PinnedNotes)
	assert.EqualValues(t, 1, counts.ArchivedNotes)
	assert.Equal(t, []string{"travel", "work"}, counts.Categories)

	stats, err := repo.CountByCategory(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "work", stats[0].Category)
	assert.EqualValues(t, 2, stats[0].Count)
	assert.Equal(t, "travel", stats[1].Category)
	assert.EqualValues(t, 1, stats[1].Count)
}

func TestNoteRepositoryClonesOnReadAndWrite(t *testing.T) {
	repo := NewNoteRepository()
	owner := uuid.New()
	note := seedNote(t, repo, owner, "original", func(n *entity.Note) {
		n.Tags = []string{"a"}
	})

	// Mutating the returned copy must not touch the stored note.
	found, err := repo.FindByID(context.Background(), note.Id)
	require.NoError(t, err)
	found.Title = "mutated"
	found.Tags[0] = "z"

	again, err := repo.FindByID(context.Background(), note.Id)
	require.NoError(t, err)
	assert.Equal(t, "original", again.Title)
	assert.Equal(t, []string{"a"}, again.Tags)
}
