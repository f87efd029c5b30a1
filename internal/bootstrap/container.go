package bootstrap

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/eneaslivv/livvos/internal/config"
	"github.com/eneaslivv/livvos/internal/controller"
	"github.com/eneaslivv/livvos/internal/handler"
	"github.com/eneaslivv/livvos/internal/pkg/logger"
	"github.com/eneaslivv/livvos/internal/repository/memory"
	"github.com/eneaslivv/livvos/internal/repository/unitofwork"
	"github.com/eneaslivv/livvos/internal/service"
	"github.com/eneaslivv/livvos/internal/websocket"
	"github.com/eneaslivv/livvos/pkg/agent"
	"github.com/eneaslivv/livvos/pkg/agent/skills"
	"github.com/eneaslivv/livvos/pkg/llm/factory"

	pktNats "github.com/eneaslivv/livvos/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	ContactController   controller.IContactController

	// Background Services (Exposed for main.go to run)
	ConsumerService       service.IConsumerService
	DeviceDispatchService *service.DeviceDispatchService

	// WebSockets & Voice
	VoiceHandler *handler.VoiceHandler
	WebSocketHub *websocket.Hub
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

	// 3. LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.HuggingFace,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Initialize In-Memory Dialogue Storage
	dialogueRepo := memory.NewDialogueRepository()

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
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

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/voice_channel.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Services
	contactService := service.NewContactService(uowFactory)
	noteService := service.NewNoteService(uowFactory)

	// Dialogue engine
	agentLogger := initAgentLogger()
	registry := skills.DefaultRegistry(natsPub, noteService)
	engine := agent.NewEngine(
		agent.NewLLMClassifier(llmProvider, agentLogger),
		agent.NewEntityResolver(contactService, agentLogger),
		agent.NewClarifier(agent.NewLLMQuestionGenerator(llmProvider, agentLogger), agentLogger),
		agent.NewDispatcher(registry, agentLogger),
		agent.NewComposer(agent.NewLLMReplyGenerator(llmProvider, agentLogger), agentLogger),
		cfg.Assistant.DefaultLanguage,
		agentLogger,
	)

	publisherService := service.NewPublisherService(cfg.Assistant.AuditTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Assistant.AuditTopic,
		uowFactory,
	)

	assistantService := service.NewAssistantService(
		uowFactory,
		engine,
		dialogueRepo,
		publisherService,
		cfg.Assistant.DefaultLanguage,
		cfg.Assistant.MaxClarifications,
	)

	// Device dispatch worker (NATS events -> connected devices)
	var deviceDispatch *service.DeviceDispatchService
	if natsSub != nil {
		deviceDispatch = service.NewDeviceDispatchService(natsSub, wsHub, sysLogger)
		go deviceDispatch.Start()
	}

	// Voice channel handler
	voiceHandler := handler.NewVoiceHandler(assistantService, wsHub, wsLogger)

	// 5. Controllers
	return &Container{
		AssistantController: controller.NewAssistantController(assistantService),
		ContactController:   controller.NewContactController(contactService),

		ConsumerService:       consumerService,
		DeviceDispatchService: deviceDispatch,

		VoiceHandler: voiceHandler,
		WebSocketHub: wsHub,
	}
}

func initAgentLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "agent.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[AGENT] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}
