package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/partyklinest/cleaning-backend/internal/config"
	"github.com/partyklinest/cleaning-backend/internal/db"
	"github.com/partyklinest/cleaning-backend/internal/graph"
	httpHandlers "github.com/partyklinest/cleaning-backend/internal/http/handlers"
	httpRouter "github.com/partyklinest/cleaning-backend/internal/http/router"
	"github.com/partyklinest/cleaning-backend/internal/logger"
	"github.com/partyklinest/cleaning-backend/internal/repository"
	"github.com/partyklinest/cleaning-backend/internal/service"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	orderRepo := repository.NewOrderRepository(dbConn)
	cleanerRepo := repository.NewCleanerRepository(dbConn)
	clientRepo := repository.NewClientRepository(dbConn)

	// Сервисы.
	authService := service.NewAuthService(userRepo, tokenManager)
	orderService := service.NewOrderService(orderRepo)

	var directory service.DirectoryClient
	if cfg.GraphBaseURL != "" {
		directory = graph.NewClient(cfg.GraphBaseURL, cfg.GraphTimeout)
	}

	cleanerService := service.NewCleanerService(cleanerRepo, orderService, orderRepo, directory)
	clientService := service.NewClientService(clientRepo, orderService)

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(authService)
	cleanerHandler := httpHandlers.NewCleanerHandler(cleanerService)
	orderHandler := httpHandlers.NewOrderHandler(orderService, cleanerService)
	clientHandler := httpHandlers.NewClientHandler(clientService)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, authHandler, cleanerHandler, orderHandler, clientHandler, healthHandler, tokenManager)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
