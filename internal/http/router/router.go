package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/freelance-bidding/internal/config"
	"github.com/ignatzorin/freelance-bidding/internal/http/middleware"
	"github.com/ignatzorin/freelance-bidding/internal/interface/http/handler"
	"github.com/ignatzorin/freelance-bidding/internal/metrics"
	"github.com/ignatzorin/freelance-bidding/internal/service"
)

// Handlers - все HTTP обработчики, которые монтирует роутер.
type Handlers struct {
	Auth    *handler.AuthHandler
	Profile *handler.ProfileHandler
	Project *handler.ProjectHandler
	Bid     *handler.BidHandler
	Order   *handler.OrderHandler
	Health  *handler.HealthHandler
}

func SetupRouter(cfg *config.Config, h Handlers, tokenManager *service.TokenManager, log logrus.FieldLogger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recovery(log))
	r.Use(metrics.Middleware())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)
	r.GET("/metrics", metrics.Handler())

	authGroup := r.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(cfg.AuthRateLimit, cfg.RateLimitPeriod))
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
	}

	// Защищённые маршруты
	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	protected.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		protected.GET("/profiles/me", h.Profile.GetMe)
		protected.POST("/profiles/me/roles", h.Profile.ActivateRole)
		protected.GET("/profiles/me/bids", h.Profile.ListMyBids)

		protected.POST("/projects", h.Project.CreateProject)
		protected.GET("/projects", h.Project.ListProjects)
		protected.GET("/projects/:id", middleware.UUIDValidator("id"), h.Project.GetProject)
		protected.POST("/projects/:id/cancel", middleware.UUIDValidator("id"), h.Project.CancelProject)
		protected.GET("/projects/:id/bids/stats", middleware.UUIDValidator("id"), h.Project.BidStats)
		protected.GET("/projects/:id/orders", middleware.UUIDValidator("id"), h.Project.ListOrders)

		protected.POST("/projects/:id/bids", middleware.UUIDValidator("id"), h.Bid.SubmitBid)
		protected.GET("/projects/:id/bids", middleware.UUIDValidator("id"), h.Bid.ListBids)
		protected.GET("/bids/:id", middleware.UUIDValidator("id"), h.Bid.GetBid)
		protected.POST("/bids/:id/withdraw", middleware.UUIDValidator("id"), h.Bid.WithdrawBid)
		protected.POST("/bids/:id/accept", middleware.UUIDValidator("id"), h.Bid.AcceptBid)

		protected.GET("/orders/:id", middleware.UUIDValidator("id"), h.Order.GetOrder)
		protected.POST("/orders/:id/start", middleware.UUIDValidator("id"), h.Order.StartOrder)
		protected.POST("/orders/:id/complete", middleware.UUIDValidator("id"), h.Order.CompleteOrder)
		protected.POST("/orders/:id/cancel", middleware.UUIDValidator("id"), h.Order.CancelOrder)
	}

	return r
}
