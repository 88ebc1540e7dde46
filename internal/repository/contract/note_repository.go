package contract

import (
	"context"

	"ai-notes-be/internal/entity"

	"github.com/google/uuid"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	Update(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID is deliberately unscoped; the service layer compares owners
	// so a foreign note yields 403 instead of 404.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Note, error)

	// FindPage returns the filtered page plus the total matching count.
	FindPage(ctx context.Context, filter entity.NoteFilter) ([]*entity.Note, int64, error)

	CountsByOwner(ctx context.Context, userId uuid.UUID) (*entity.NoteCounts, error)
	CountByCategory(ctx context.Context, userId uuid.UUID) ([]entity.CategoryCount, error)
}
