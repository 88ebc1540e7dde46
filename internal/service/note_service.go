package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-notes-be/internal/dto"
	"ai-notes-be/internal/entity"
	"ai-notes-be/internal/pkg/serverutils"
	"ai-notes-be/internal/repository/unitofwork"
	"ai-notes-be/pkg/events"
	pktNats "ai-notes-be/pkg/nats"

	"github.com/google/uuid"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type INoteService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	List(ctx context.Context, userId uuid.UUID, query *dto.ListNotesQuery) ([]*dto.NoteResponse, serverutils.Pagination, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	TogglePin(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	ToggleArchive(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	Stats(ctx context.Context, userId uuid.UUID) (*dto.NoteStatsResponse, error)
}

type noteService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
) INoteService {
	return &noteService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (s *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if details := requireNoteText(title, content); len(details) > 0 {
		return nil, serverutils.NewValidationError(details)
	}

	category := entity.CategoryOther
	if req.Category != "" {
		category = entity.NoteCategory(req.Category)
	}
	color := entity.DefaultColor
	if req.Color != "" {
		color = req.Color
	}

	note := entity.Note{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     title,
		Content:   content,
		Summary:   strings.TrimSpace(req.Summary),
		Category:  category,
		Tags:      entity.NormalizeTags(req.Tags),
		IsPinned:  req.IsPinned,
		Color:     color,
		CreatedAt: time.Now(),
	}

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.NewNoteCreated(note.Id.String(), userId.String()))

	return toNoteResponse(&note), nil
}

func (s *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	return toNoteResponse(note), nil
}

func (s *noteService) List(ctx context.Context, userId uuid.UUID, query *dto.ListNotesQuery) ([]*dto.NoteResponse, serverutils.Pagination, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	filter := buildNoteFilter(userId, query)
	notes, total, err := uow.NoteRepository().FindPage(ctx, filter)
	if err != nil {
		return nil, serverutils.Pagination{}, err
	}

	responses := make([]*dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		responses = append(responses, toNoteResponse(note))
	}

	return responses, serverutils.NewPagination(filter.Page, filter.Limit, total), nil
}

func (s *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := s.findOwned(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, serverutils.NewValidationError([]serverutils.FieldError{
				{Field: "title", Message: "title must not be empty"},
			})
		}
		note.Title = title
	}
	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		if content == "" {
			return nil, serverutils.NewValidationError([]serverutils.FieldError{
				{Field: "content", Message: "content must not be empty"},
			})
		}
		note.Content = content
	}
	if req.Summary != nil {
		note.Summary = strings.TrimSpace(*req.Summary)
		note.AiGenerated.Summary = false
	}
	if req.Category != nil {
		note.Category = entity.NoteCategory(*req.Category)
		note.AiGenerated.Category = false
	}
	if req.Tags != nil {
		note.Tags = entity.NormalizeTags(*req.Tags)
		note.AiGenerated.Tags = false
	}
	if req.Color != nil {
		note.Color = *req.Color
	}
	if req.IsPinned != nil {
		note.IsPinned = *req.IsPinned
	}
	if req.IsArchived != nil {
		note.IsArchived = *req.IsArchived
	}

	now := time.Now()
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	return toNoteResponse(note), nil
}

func (s *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return err
	}

	if err := uow.NoteRepository().Delete(ctx, note.Id); err != nil {
		return err
	}

	s.publishEvent(ctx, events.NewNoteDeleted(note.Id.String(), userId.String()))

	return nil
}

func (s *noteService) TogglePin(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	return s.toggle(ctx, userId, id, func(n *entity.Note) {
		n.IsPinned = !n.IsPinned
	})
}

func (s *noteService) ToggleArchive(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	return s.toggle(ctx, userId, id, func(n *entity.Note) {
		n.IsArchived = !n.IsArchived
	})
}

func (s *noteService) toggle(ctx context.Context, userId uuid.UUID, id uuid.UUID, flip func(*entity.Note)) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	flip(note)
	now := time.Now()
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	return toNoteResponse(note), nil
}

func (s *noteService) Stats(ctx context.Context, userId uuid.UUID) (*dto.NoteStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	counts, err := uow.NoteRepository().CountsByOwner(ctx, userId)
	if err != nil {
		return nil, err
	}

	byCategory, err := uow.NoteRepository().CountByCategory(ctx, userId)
	if err != nil {
		return nil, err
	}

	stats := dto.NoteStatsResponse{
		TotalNotes:    counts.TotalNotes,
		PinnedNotes:   counts.PinnedNotes,
		ArchivedNotes: counts.ArchivedNotes,
		Categories:    counts.Categories,
		CategoryStats: make([]dto.CategoryStat, 0, len(byCategory)),
	}
	for _, c := range byCategory {
		stats.CategoryStats = append(stats.CategoryStats, dto.CategoryStat{
			Category: c.Category,
			Count:    c.Count,
		})
	}

	return &stats, nil
}

// findOwned loads the note without an owner scope so the caller can tell a
// missing note (404) apart from someone else's note (403).
func (s *noteService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, id uuid.UUID) (*entity.Note, error) {
	note, err := uow.NoteRepository().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, serverutils.NewNotFoundError("Note not found")
	}
	if note.UserId != userId {
		return nil, serverutils.NewForbiddenError("You do not have access to this note")
	}
	return note, nil
}

func (s *noteService) publishEvent(ctx context.Context, evt events.Event) {
	if s.eventPublisher == nil {
		return
	}
	// Notification is auxiliary, log and move on
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", evt.EventType(), err)
	}
}

func requireNoteText(title, content string) []serverutils.FieldError {
	var details []serverutils.FieldError
	if title == "" {
		details = append(details, serverutils.FieldError{Field: "title", Message: "title must not be empty"})
	}
	if content == "" {
		details = append(details, serverutils.FieldError{Field: "content", Message: "content must not be empty"})
	}
	return details
}

func buildNoteFilter(userId uuid.UUID, query *dto.ListNotesQuery) entity.NoteFilter {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	filter := entity.NoteFilter{
		UserId:     userId,
		Search:     strings.TrimSpace(query.Search),
		IsArchived: query.IsArchived,
		SortBy:     query.SortBy,
		SortDesc:   query.SortOrder != "asc",
		Page:       page,
		Limit:      limit,
	}

	if query.Category != "" {
		category := entity.NoteCategory(query.Category)
		filter.Category = &category
	}

	if query.Tags != "" {
		filter.Tags = entity.NormalizeTags(strings.Split(query.Tags, ","))
	}

	return filter
}

func toNoteResponse(note *entity.Note) *dto.NoteResponse {
	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}
	return &dto.NoteResponse{
		Id:         note.Id,
		Title:      note.Title,
		Content:    note.Content,
		Summary:    note.Summary,
		Category:   string(note.Category),
		Tags:       tags,
		IsPinned:   note.IsPinned,
		IsArchived: note.IsArchived,
		AiGenerated: dto.AiGeneratedFlags{
			Summary:  note.AiGenerated.Summary,
			Category: note.AiGenerated.Category,
			Tags:     note.AiGenerated.Tags,
		},
		Color:         note.Color,
		CreatedAt:     note.CreatedAt,
		UpdatedAt:     note.UpdatedAt,
		FormattedDate: note.FormattedDate(),
		ReadingTime:   note.ReadingTime(),
	}
}
