package implementation

import (
	"context"
	"errors"

	"ai-notes-be/internal/entity"
	"ai-notes-be/internal/mapper"
	"ai-notes-be/internal/model"
	"ai-notes-be/internal/repository/contract"
	"ai-notes-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteMapper
}

func NewNoteRepository(db *gorm.DB) contract.NoteRepository {
	return &NoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteMapper(),
	}
}

func (r *NoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NoteRepositoryImpl) Create(ctx context.Context, note *entity.Note) error {
	m := r.mapper.ToModel(note)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*note = *r.mapper.ToEntity(m)
	return nil
}

func (r *NoteRepositoryImpl) Update(ctx context.Context, note *entity.Note) error {
	m := r.mapper.ToModel(note)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*note = *r.mapper.ToEntity(m)
	return nil
}

func (r *NoteRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Note{}, id).Error
}

func (r *NoteRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	var m model.Note
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NoteRepositoryImpl) FindPage(ctx context.Context, filter entity.NoteFilter) ([]*entity.Note, int64, error) {
	base := specification.ForNoteFilter(filter)

	var total int64
	countQuery := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Note{}), base...)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pageSpecs := append(base,
		specification.NoteOrder(filter.SortBy, filter.SortDesc),
		specification.Pagination{Limit: filter.Limit, Offset: filter.Offset()},
	)

	var models []*model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), pageSpecs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, 0, err
	}
	return r.mapper.ToEntities(models), total, nil
}

func (r *NoteRepositoryImpl) CountsByOwner(ctx context.Context, userId uuid.UUID) (*entity.NoteCounts, error) {
	var counts struct {
		TotalNotes    int64
		PinnedNotes   int64
		ArchivedNotes int64
	}
	err := r.db.WithContext(ctx).Model(&model.Note{}).
		Select("COUNT(*) AS total_notes"+
			", COUNT(*) FILTER (WHERE is_pinned) AS pinned_notes"+
			", COUNT(*) FILTER (WHERE is_archived) AS archived_notes").
		Where("user_id = ?", userId).
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	var categories []string
	err = r.db.WithContext(ctx).Model(&model.Note{}).
		Distinct("category").
		Where("user_id = ?", userId).
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}

	return &entity.NoteCounts{
		TotalNotes:    counts.TotalNotes,
		PinnedNotes:   counts.PinnedNotes,
		ArchivedNotes: counts.ArchivedNotes,
		Categories:    categories,
	}, nil
}

func (r *NoteRepositoryImpl) CountByCategory(ctx context.Context, userId uuid.UUID) ([]entity.CategoryCount, error) {
	var stats []entity.CategoryCount
	err := r.db.WithContext(ctx).Model(&model.Note{}).
		Select("category, COUNT(*) AS count").
		Where("user_id = ?", userId).
		Group("category").
		Order("count DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
