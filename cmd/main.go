package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	natsgo "github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/emergency_geo/internal/config"
	v1 "github.com/shenikar/emergency_geo/internal/handler/http/v1"
	"github.com/shenikar/emergency_geo/internal/metrics"
	"github.com/shenikar/emergency_geo/internal/notify"
	"github.com/shenikar/emergency_geo/internal/repository"
	"github.com/shenikar/emergency_geo/internal/repository/memory"
	"github.com/shenikar/emergency_geo/internal/service"
	"github.com/shenikar/emergency_geo/pkg/logger"
	natsclient "github.com/shenikar/emergency_geo/pkg/nats"
	"github.com/shenikar/emergency_geo/pkg/postgres"
	redisclient "github.com/shenikar/emergency_geo/pkg/redis"

	_ "github.com/shenikar/emergency_geo/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// stores - набор хранилищ выбранного бэкенда
type stores struct {
	incidents      service.IncidentRepository
	secrets        service.SecretRepository
	contacts       service.ContactRepository
	responderIndex service.IndexStore
	crimeIndex     service.IndexStore
}

func newPostgresStores(dbpool *pgxpool.Pool, redisClient *goredis.Client) stores {
	return stores{
		incidents:      repository.NewIncidentRepository(dbpool, redisClient),
		secrets:        repository.NewSecretRepository(dbpool),
		contacts:       repository.NewContactRepository(dbpool),
		responderIndex: repository.NewRedisIndex(redisClient, "responders"),
		crimeIndex:     repository.NewPostgresIndex(dbpool, "crimes"),
	}
}

func newMemoryStores() stores {
	return stores{
		incidents:      memory.NewIncidentRepository(),
		secrets:        memory.NewSecretRepository(),
		contacts:       memory.NewContactRepository(),
		responderIndex: memory.NewIndex(),
		crimeIndex:     memory.NewIndex(),
	}
}

// @title Emergency Geo API
// @version 1.0
// @description Emergency alerts with duress secrets, responder dispatch and proximity search.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализация Redis клиента, только если его использует бэкенд или транспорт
	var redisClient *goredis.Client
	if cfg.RedisRequired() {
		redisClient, err = redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to Redis")
	}

	var st stores
	switch cfg.StorageBackend {
	case config.StorageBackendMemory:
		log.Warn("Using in-memory storage, data will be lost on restart")
		st = newMemoryStores()
	default:
		log.Info("Running database migrations...")
		if err := postgres.Migrate(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}
		log.Info("Database migrations applied successfully")

		dbpool, err := postgres.NewPostgresDB(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		defer dbpool.Close()
		log.Info("Successfully connected to PostgreSQL")

		st = newPostgresStores(dbpool, redisClient)
	}

	appMetrics := metrics.New()

	// Транспорт оповещений
	var (
		transport     notify.Transport
		webhookWorker *notify.WebhookWorker
	)
	switch cfg.NotifyTransport {
	case config.NotifyTransportNATS:
		nc, err := natsclient.NewNATSConn(natsclient.Options{
			URL:           cfg.NATSURL,
			MaxReconnects: cfg.NATSMaxReconnects,
			ReconnectWait: cfg.NATSReconnectWait,
			Timeout:       cfg.NATSTimeout,
		}, log)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer func(nc *natsgo.Conn) {
			if err := nc.Drain(); err != nil {
				log.WithError(err).Warn("Failed to drain NATS connection")
			}
		}(nc)
		log.Info("Successfully connected to NATS")
		transport = notify.NewNATSTransport(nc)
	default:
		transport = notify.NewRedisQueueTransport(redisClient)

		// Инициализация и запуск воркера вебхуков
		webhookWorker = notify.NewWebhookWorker(redisClient, log, cfg)
		webhookWorker.Start(ctx)
	}
	fanout := notify.NewFanout(transport, cfg, log, appMetrics)

	// Инициализация сервисов
	responderService := service.NewProximityService("responders", st.responderIndex, cfg, log, appMetrics)
	crimeService := service.NewProximityService("crimes", st.crimeIndex, cfg, log, appMetrics)
	emergencyService := service.NewEmergencyService(st.incidents, st.secrets, st.contacts, responderService, fanout, cfg, log, appMetrics)

	// Инициализация хэндлеров
	handler := v1.NewHandler(emergencyService, responderService, crimeService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	// Дожидаемся фоновых рассылок, затем останавливаем воркер
	if err := emergencyService.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("Pending notifications were not drained")
	}
	cancel()
	if webhookWorker != nil {
		select {
		case <-webhookWorker.Done():
		case <-shutdownCtx.Done():
			log.Warn("Webhook worker did not stop in time")
		}
	}

	log.Info("Server gracefully stopped")
}
