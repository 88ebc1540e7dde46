package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-notes-be/internal/dto"
	"ai-notes-be/internal/entity"
	"ai-notes-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService applies queued AI results back onto notes and records
// which fields are machine generated.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ApplyAiResultMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal AI result message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Applying AI %s result to note %s", payload.Field, payload.NoteId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindByID(ctx, payload.NoteId)
	if err != nil {
		log.Printf("[ERROR] Failed to get note %s: %v", payload.NoteId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if note == nil {
		log.Printf("[WARN] Note not found: %s", payload.NoteId)
		msg.Ack() // Note deleted in the meantime? Ack.
		return
	}
	if note.UserId != payload.UserId {
		log.Printf("[WARN] Owner mismatch for note %s, dropping AI result", payload.NoteId)
		msg.Ack()
		return
	}

	switch payload.Field {
	case "summary":
		note.Summary = payload.Summary
		note.AiGenerated.Summary = true
	case "category":
		category := entity.NoteCategory(payload.Category)
		if !category.Valid() {
			category = entity.CategoryOther
		}
		note.Category = category
		note.AiGenerated.Category = true
	case "tags":
		note.Tags = entity.NormalizeTags(payload.Tags)
		note.AiGenerated.Tags = true
	default:
		log.Printf("[WARN] Unknown AI result field %q, dropping message", payload.Field)
		msg.Ack()
		return
	}

	now := time.Now()
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		log.Printf("[ERROR] Failed to save AI result on note %s: %v", payload.NoteId, err)
		msg.Nack()
		return
	}

	msg.Ack()
}
