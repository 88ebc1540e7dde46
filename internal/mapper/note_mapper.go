package mapper

import (
	"encoding/json"
	"time"

	"ai-notes-be/internal/entity"
	"ai-notes-be/internal/model"

	"gorm.io/datatypes"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	var tags []string
	if len(n.Tags) > 0 {
		// Stored value is always a JSON array written by ToModel.
		_ = json.Unmarshal(n.Tags, &tags)
	}
	if tags == nil {
		tags = []string{}
	}

	var updatedAt *time.Time
	if !n.UpdatedAt.IsZero() {
		t := n.UpdatedAt
		updatedAt = &t
	}

	return &entity.Note{
		Id:         n.Id,
		UserId:     n.UserId,
		Title:      n.Title,
		Content:    n.Content,
		Summary:    n.Summary,
		Category:   entity.NoteCategory(n.Category),
		Tags:       tags,
		IsPinned:   n.IsPinned,
		IsArchived: n.IsArchived,
		AiGenerated: entity.AiProvenance{
			Summary:  n.AiSummary,
			Category: n.AiCategory,
			Tags:     n.AiTags,
		},
		Color:     n.Color,
		CreatedAt: n.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJson, _ := json.Marshal(tags)

	var updatedAt time.Time
	if n.UpdatedAt != nil {
		updatedAt = *n.UpdatedAt
	}

	return &model.Note{
		Id:         n.Id,
		UserId:     n.UserId,
		Title:      n.Title,
		Content:    n.Content,
		Summary:    n.Summary,
		Category:   string(n.Category),
		Tags:       datatypes.JSON(tagsJson),
		IsPinned:   n.IsPinned,
		IsArchived: n.IsArchived,
		AiSummary:  n.AiGenerated.Summary,
		AiCategory: n.AiGenerated.Category,
		AiTags:     n.AiGenerated.Tags,
		Color:      n.Color,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
