package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skillswapper-backend/internal/config"
	"github.com/ignatzorin/skillswapper-backend/internal/http/handlers"
	"github.com/ignatzorin/skillswapper-backend/internal/http/middleware"
	"github.com/ignatzorin/skillswapper-backend/internal/http/response"
	"github.com/ignatzorin/skillswapper-backend/internal/service"
)

// Handlers набор HTTP обработчиков приложения.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Admin        *handlers.AdminHandler
	Profile      *handlers.ProfileHandler
	Skill        *handlers.SkillHandler
	Match        *handlers.MatchHandler
	Notification *handlers.NotificationHandler
	Health       *handlers.HealthHandler
}

func SetupRouter(cfg *config.Config, h Handlers, tokenManager *service.TokenManager) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	response.SetDebug(!cfg.IsProduction())

	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Recovery())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)
	r.StaticFS(handlers.UploadsURLPrefix, gin.Dir(cfg.UploadStoragePath, false))

	api := r.Group("/api")
	auth := middleware.AuthMiddleware(tokenManager)
	rateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)

	authGroup := api.Group("/auth")
	authGroup.Use(rateLimit)
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
	}

	api.POST("/admin/login", rateLimit, h.Admin.Login)
	admin := api.Group("/admin")
	admin.Use(auth, middleware.RequireAdmin())
	{
		admin.GET("/users", h.Admin.ListUsers)
		admin.DELETE("/users/:id", middleware.UUIDValidator("id"), h.Admin.DeleteUser)
	}

	// Публичные маршруты
	api.GET("/skills", h.Skill.ListSkills)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(auth)
	{
		protected.GET("/users/me", h.Profile.GetMe)
		protected.PUT("/users/me", h.Profile.UpdateMe)
		protected.POST("/users/me/picture", h.Profile.UploadPicture)

		protected.GET("/users/me/skills", h.Skill.ListMine)
		protected.POST("/users/me/skills/have", h.Skill.AddHave)
		protected.POST("/users/me/skills/want", h.Skill.AddWant)
		protected.DELETE("/users/me/skills/have/:skillId", middleware.UUIDValidator("skillId"), h.Skill.RemoveHave)
		protected.DELETE("/users/me/skills/want/:skillId", middleware.UUIDValidator("skillId"), h.Skill.RemoveWant)

		protected.GET("/matches", h.Match.FindMatches)
		protected.GET("/matches/detailed/:userId", middleware.UUIDValidator("userId"), h.Match.Detailed)
		protected.POST("/matches/save", h.Match.Save)
		protected.POST("/matches/accept", h.Match.Accept)
		protected.POST("/matches/decline", h.Match.Decline)
		protected.GET("/matches/saved", h.Match.Saved)

		protected.GET("/notifications", h.Notification.ListNotifications)
		protected.GET("/notifications/unread-count", h.Notification.CountUnread)
		protected.PUT("/notifications/mark-all-read", h.Notification.MarkAllAsRead)
		protected.PUT("/notifications/:id/read", middleware.UUIDValidator("id"), h.Notification.MarkAsRead)
		protected.DELETE("/notifications/:id", middleware.UUIDValidator("id"), h.Notification.DeleteNotification)
	}

	// Статический сегмент /users/me имеет приоритет над параметром :id.
	api.GET("/users/:id", middleware.UUIDValidator("id"), h.Profile.GetPublicProfile)

	return r
}
