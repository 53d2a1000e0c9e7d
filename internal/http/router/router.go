package router

import (
	"github.com/gin-gonic/gin"

	"github.com/partyklinest/cleaning-backend/internal/config"
	"github.com/partyklinest/cleaning-backend/internal/http/handlers"
	"github.com/partyklinest/cleaning-backend/internal/http/middleware"
	"github.com/partyklinest/cleaning-backend/internal/models"
	"github.com/partyklinest/cleaning-backend/internal/service"
)

// SetupRouter собирает HTTP маршруты сервиса.
func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	cleanerHandler *handlers.CleanerHandler,
	orderHandler *handlers.OrderHandler,
	clientHandler *handlers.ClientHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authRateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
	authGroup.Use(authRateLimit)
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		// Клиенты
		protected.POST("/clients", clientHandler.AddClient)
		protected.GET("/clients/:id", middleware.OIDValidator("id"), clientHandler.GetClient)

		// Заказы
		protected.POST("/orders", orderHandler.CreateOrder)
		protected.GET("/orders", orderHandler.ListMyOrders)
		protected.GET("/orders/:id", middleware.OrderIDValidator("id"), orderHandler.GetOrder)
		protected.GET("/orders/:id/matching-cleaners", middleware.OrderIDValidator("id"), orderHandler.MatchingCleaners)
		protected.PUT("/orders/:id/assignment-offer", middleware.OrderIDValidator("id"), orderHandler.AssignCleaner)

		// Действия клинера над заказом
		cleanerOnly := protected.Group("/")
		cleanerOnly.Use(middleware.RequireRole(models.RoleCleaner, models.RoleAdmin))
		{
			cleanerOnly.PUT("/orders/:id/assignment", middleware.OrderIDValidator("id"), cleanerHandler.AcceptRejectOrder)
			cleanerOnly.POST("/orders/:id/opinion", middleware.OrderIDValidator("id"), cleanerHandler.ConfirmOrderCompleted)
		}

		// Профиль клинера
		protected.GET("/cleaners/:id", middleware.OIDValidator("id"), cleanerHandler.GetCleaner)
		protected.GET("/cleaners/:id/orders", middleware.OIDValidator("id"), cleanerHandler.GetAssignedOrders)
		protected.PUT("/cleaners/:id", middleware.OIDValidator("id"), cleanerHandler.UpdateCleaner)

		// Администрирование
		admin := protected.Group("/admin")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/clients", clientHandler.ListClients)
			admin.DELETE("/clients/:id", middleware.OIDValidator("id"), clientHandler.DeleteClient)
			admin.PUT("/cleaners/:id/status", middleware.OIDValidator("id"), cleanerHandler.SetCleanerStatus)
		}
	}

	return r
}
