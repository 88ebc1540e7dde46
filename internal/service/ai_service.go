package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"ai-notes-be/internal/dto"
	"ai-notes-be/internal/entity"
	"ai-notes-be/internal/pkg/ailimit"
	"ai-notes-be/internal/pkg/serverutils"
	"ai-notes-be/internal/repository/unitofwork"
	"ai-notes-be/pkg/llm"

	"github.com/google/uuid"
)

const (
	summarizeSystemPrompt = "You are a text summarization expert. You produce short, concise summaries that keep the main ideas of the given text."
	summarizeMaxTokens    = 300

	categorizeSystemPrompt = "You are a text classification expert. You assign the given text to the single most fitting category."
	categorizeMaxTokens    = 50

	tagsSystemPrompt = "You are a tagging expert. You produce fitting tags for the given text."
	tagsMaxTokens    = 100

	aiTemperature = 0.3
	maxTagCount   = 5
)

type IAiService interface {
	Summarize(ctx context.Context, userId uuid.UUID, req *dto.AiContentRequest) (*dto.SummarizeResponse, error)
	Categorize(ctx context.Context, userId uuid.UUID, req *dto.AiContentRequest) (*dto.CategorizeResponse, error)
	GenerateTags(ctx context.Context, userId uuid.UUID, req *dto.AiContentRequest) (*dto.GenerateTagsResponse, error)
}

type aiService struct {
	llmProvider      llm.LLMProvider
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	limiter          *ailimit.Limiter
}

func NewAiService(
	llmProvider llm.LLMProvider,
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	limiter *ailimit.Limiter,
) IAiService {
	return &aiService{
		llmProvider:      llmProvider,
		uowFactory:       uowFactory,
		publisherService: publisherService,
		limiter:          limiter,
	}
}

func (s *aiService) Summarize(ctx context.Context, userId uuid.UUID, req *dto.AiContentRequest) (*dto.SummarizeResponse, error) {
	content, err := s.prepare(ctx, userId, req)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Summarize the following text briefly and concisely.
The summary must be at most 200 words and contain the main ideas.

Text:
%s

Summary:`, content)

	summary, err := s.chat(ctx, summarizeSystemPrompt, prompt, summarizeMaxTokens)
	if err != nil {
		return nil, err
	}
	summary = strings.TrimSpace(summary)

	s.applyResult(ctx, userId, req.NoteId, &dto.ApplyAiResultMessage{
		Field:   "summary",
		Summary: summary,
	})

	return &dto.SummarizeResponse{
		Summary:        summary,
		OriginalLength: len(content),
		SummaryLength:  len(summary),
	}, nil
}

func (s *aiService) Categorize(ctx context.Context, userId uuid.UUID, req *dto.AiContentRequest) (*dto.CategorizeResponse, error) {
	content, err := s.prepare(ctx, userId, req)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Analyze the following text and pick the single most fitting category.
Categories: personal, work, education, health, finance, travel, other

Text:
%s

Return only the category name:`, content)

	raw, err := s.chat(ctx, categorizeSystemPrompt, prompt, categorizeMaxTokens)
	if err != nil {
		return nil, err
	}

	category := entity.NoteCategory(strings.ToLower(strings.TrimSpace(raw)))
	if !category.Valid() {
		category = entity.CategoryOther
	}

	s.applyResult(ctx, userId, req.NoteId, &dto.ApplyAiResultMessage{
		Field:    "category",
		Category: string(category),
	})

	return &dto.CategorizeResponse{
		Category:       string(category),
		OriginalLength: len(content),
	}, nil
}

func (s *aiService) GenerateTags(ctx context.Context, userId uuid.UUID, req *dto.AiContentRequest) (*dto.GenerateTagsResponse, error) {
	content, err := s.prepare(ctx, userId, req)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Analyze the following text and pick the 3-5 most fitting tags.
The tags must be comma separated, lowercase single words or short phrases.

Text:
%s

Tags:`, content)

	raw, err := s.chat(ctx, tagsSystemPrompt, prompt, tagsMaxTokens)
	if err != nil {
		return nil, err
	}

	tags := entity.NormalizeTags(strings.Split(raw, ","))
	if len(tags) > maxTagCount {
		tags = tags[:maxTagCount]
	}

	s.applyResult(ctx, userId, req.NoteId, &dto.ApplyAiResultMessage{
		Field: "tags",
		Tags:  tags,
	})

	return &dto.GenerateTagsResponse{
		Tags:           tags,
		OriginalLength: len(content),
	}, nil
}

// prepare runs the shared pre-flight checks before any upstream call is made.
func (s *aiService) prepare(ctx context.Context, userId uuid.UUID, req *dto.AiContentRequest) (string, error) {
	if s.llmProvider == nil {
		return "", serverutils.NewServiceUnavailableError("AI service is not available. Please check configuration.")
	}

	content := strings.TrimSpace(req.Content)
	if len(content) < 10 || len(content) > 10000 {
		return "", serverutils.NewValidationError([]serverutils.FieldError{
			{Field: "content", Message: "Content must be between 10 and 10000 characters"},
		})
	}

	if s.limiter != nil && !s.limiter.Allow(ctx, userId) {
		return "", serverutils.NewRateLimitedError("Daily AI usage limit reached. Please try again tomorrow.")
	}

	return content, nil
}

func (s *aiService) chat(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	result, err := s.llmProvider.Chat(ctx,
		[]llm.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		llm.WithTemperature(aiTemperature),
		llm.WithMaxTokens(maxTokens),
	)
	if err != nil {
		if errors.Is(err, llm.ErrQuotaExceeded) {
			return "", serverutils.NewRateLimitedError("AI service quota exceeded. Please try again later.")
		}
		return "", serverutils.NewInternalError(fmt.Errorf("ai provider: %w", err))
	}
	return result, nil
}

// applyResult queues the write-back for an owned note. The proxy response
// is already in hand at this point, so failures are logged, not returned.
func (s *aiService) applyResult(ctx context.Context, userId uuid.UUID, noteId *uuid.UUID, msg *dto.ApplyAiResultMessage) {
	if noteId == nil || s.publisherService == nil {
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindByID(ctx, *noteId)
	if err != nil {
		fmt.Printf("[WARN] Failed to load note %s for AI write-back: %v\n", noteId, err)
		return
	}
	if note == nil || note.UserId != userId {
		return
	}

	msg.NoteId = *noteId
	msg.UserId = userId
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		fmt.Printf("[WARN] Failed to queue AI write-back for note %s: %v\n", noteId, err)
	}
}
