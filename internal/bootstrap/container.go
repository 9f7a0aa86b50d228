package bootstrap

import (
	"context"
	"log"

	"compliance-screening-be/internal/config"
	"compliance-screening-be/internal/controller"
	"compliance-screening-be/internal/handler"
	"compliance-screening-be/internal/pkg/logger"
	"compliance-screening-be/internal/pkg/mailer"
	"compliance-screening-be/internal/repository/implementation"
	"compliance-screening-be/internal/repository/unitofwork"
	"compliance-screening-be/internal/service"
	"compliance-screening-be/internal/websocket"
	"compliance-screening-be/pkg/screening/cache"
	"compliance-screening-be/pkg/screening/matcher"
	"compliance-screening-be/pkg/screening/stream"

	pktNats "compliance-screening-be/pkg/nats"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ScreeningController controller.IScreeningController

	// Background Services (Exposed for main.go to run)
	StreamService service.IStreamService

	// WebSockets & Push
	StreamHandler *handler.StreamHandler
	WebSocketHub  *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Infrastructure
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
	wsLogger := logger.NewIsolatedLogger("logs/screening_stream.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Screening Engine
	store := implementation.NewGormRegulationStore(db)
	resultCache := cache.New(cfg.Screening.CacheMaxEntries)
	screeningMatcher := matcher.New(store, resultCache)

	streamer := stream.NewStreamer(screeningMatcher, resultCache, sysLogger)
	streamer.AddDelivery(wsHub)

	// 4. Services
	screeningService := service.NewScreeningService(uowFactory, screeningMatcher, natsPub, sysLogger)
	streamService := service.NewStreamService(uowFactory, streamer, natsSub, emailService, sysLogger)

	if err := streamService.Start(context.Background()); err != nil {
		log.Printf("[WARN] Failed to start stream service: %v", err)
	}

	// 5. Handlers
	streamHandler := handler.NewStreamHandler(streamService, natsPub, wsHub, wsLogger)

	return &Container{
		ScreeningController: controller.NewScreeningController(screeningService, cfg.Screening.PreviewLimit),
		StreamService:       streamService,
		StreamHandler:       streamHandler,
		WebSocketHub:        wsHub,
	}
}
