package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ai-notes-be/internal/dto"
	"ai-notes-be/internal/entity"
	"ai-notes-be/internal/repository/memory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyMessage(t *testing.T, factory *memory.RepositoryFactory, payload dto.ApplyAiResultMessage) {
	t.Helper()
	cs := &consumerService{
		topicName:  "apply",
		uowFactory: factory,
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	cs.processMessage(context.Background(), message.NewMessage(watermill.NewUUID(), raw))
}

func seedConsumerNote(t *testing.T, factory *memory.RepositoryFactory, owner uuid.UUID) *entity.Note {
	t.Helper()
	note := &entity.Note{
		Id:        uuid.New(),
		UserId:    owner,
		Title:     "note",
		Content:   "content",
		Category:  entity.CategoryOther,
		CreatedAt: time.Now(),
	}
	require.NoError(t, factory.Notes.Create(context.Background(), note))
	return note
}

func TestConsumerAppliesSummary(t *testing.T) {
	factory := memory.NewRepositoryFactory()
	owner := uuid.New()
	note := seedConsumerNote(t, factory, owner)

	applyMessage(t, factory, dto.ApplyAiResultMessage{
		NoteId:  note.Id,
		UserId:  owner,
		Field:   "summary",
		Summary: "machine made",
	})

	stored, err := factory.Notes.FindByID(context.Background(), note.Id)
	require.NoError(t, err)
	assert.Equal(t, "machine made", stored.Summary)
	assert.True(t, stored.AiGenerated.Summary)
	assert.False(t, stored.AiGenerated.Category)
	assert.NotNil(t, stored.UpdatedAt)
}

func TestConsumerAppliesCategoryWithFallback(t *testing.T) {
	factory := memory.NewRepositoryFactory()
	owner := uuid.New()
	note := seedConsumerNote(t, factory, owner)

	applyMessage(t, factory, dto.ApplyAiResultMessage{
		NoteId:   note.Id,
		UserId:   owner,
		Field:    "category",
		Category: "work",
	})
	stored, err := factory.Notes.FindByID(context.Background(), note.Id)
	require.NoError(t, err)
	assert.Equal(t, entity.CategoryWork, stored.Category)
	assert.True(t, stored.AiGenerated.Category)

	applyMessage(t, factory, dto.ApplyAiResultMessage{
		NoteId:   note.Id,
		UserId:   owner,
		Field:    "category",
		Category: "made-up",
	})
	stored, err = factory.Notes.FindByID(context.Background(), note.Id)
	require.NoError(t, err)
	assert.Equal(t, entity.CategoryOther, stored.Category)
}

func TestConsumerAppliesNormalizedTags(t *testing.T) {
	factory := memory.NewRepositoryFactory()
	owner := uuid.New()
	note := seedConsumerNote(t, factory, owner)

	applyMessage(t, factory, dto.ApplyAiResultMessage{
		NoteId: note.Id,
		UserId: owner,
		Field:  "tags",
		Tags:   []string{" Go ", "go", "API"},
	})

	stored, err := factory.Notes.FindByID(context.Background(), note.Id)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "api"}, stored.Tags)
	assert.True(t, stored.AiGenerated.Tags)
}

func TestConsumerDropsOwnerMismatch(t *testing.T) {
	factory := memory.NewRepositoryFactory()
	note := seedConsumerNote(t, factory, uuid.New())

	applyMessage(t, factory, dto.ApplyAiResultMessage{
		NoteId:  note.Id,
		UserId:  uuid.New(),
		Field:   "summary",
		Summary: "should not land",
	})

	stored, err := factory.Notes.FindByID(context.Background(), note.Id)
	require.NoError(t, err)
	assert.Empty(t, stored.Summary)
	assert.False(t, stored.AiGenerated.Summary)
}

func TestConsumerIgnoresMissingNote(t *testing.T) {
	factory := memory.NewRepositoryFactory()

	// Must not panic or create anything.
	applyMessage(t, factory, dto.ApplyAiResultMessage{
		NoteId:  uuid.New(),
		UserId:  uuid.New(),
		Field:   "summary",
		Summary: "orphan",
	})
}
