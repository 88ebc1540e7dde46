package bootstrap

import (
	"context"
	"log"

	"ai-notes-be/internal/config"
	"ai-notes-be/internal/controller"
	"ai-notes-be/internal/pkg/ailimit"
	"ai-notes-be/internal/pkg/logger"
	"ai-notes-be/internal/repository/memory"
	"ai-notes-be/internal/repository/unitofwork"
	"ai-notes-be/internal/service"
	"ai-notes-be/pkg/llm/factory"

	pktNats "ai-notes-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController controller.IAuthController
	NoteController controller.INoteController
	AiController   controller.IAiController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.Provider,
		cfg.Ai.Model,
		cfg.Ai.APIKey,
		cfg.Ai.BaseURL,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		// The AI endpoints answer with a configuration error until fixed.
		log.Printf("[WARN] LLM Provider unavailable: %v", err)
		llmProvider = nil
	} else {
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)
	}

	// 4. Services
	userCache := memory.NewUserCache()
	aiLimiter := ailimit.NewLimiter(rdb, cfg.Ai.DailyCallLimit, sysLogger)

	publisherService := service.NewPublisherService(cfg.Ai.ApplyTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Ai.ApplyTopic, uowFactory)

	authService := service.NewAuthService(uowFactory, cfg.Auth, userCache, natsPub)
	noteService := service.NewNoteService(uowFactory, natsPub)
	aiService := service.NewAiService(llmProvider, uowFactory, publisherService, aiLimiter)

	// 5. Controllers
	return &Container{
		AuthController:  controller.NewAuthController(authService),
		NoteController:  controller.NewNoteController(noteService),
		AiController:    controller.NewAiController(aiService),
		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
