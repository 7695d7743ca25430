package app

import (
	"nandhub_backend/internal/config"
	"nandhub_backend/internal/middleware"
	"nandhub_backend/internal/model"
	"nandhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.PopulateLocale())
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.POST("/user/avatar", c.user.UploadAvatar)

		puzzles := authGroup.Group("/puzzles")
		{
			puzzles.GET("/list/:category", c.puzzle.List)
			puzzles.GET("/download/:puzzleId", c.puzzle.Download)
			puzzles.POST("/search", c.puzzle.Search)

			// Mutations are off limits while serving a ban.
			mutating := puzzles.Group("/")
			mutating.Use(middleware.NotBanned(a.services.ban))
			{
				mutating.POST("/submit", c.puzzle.Submit)
				mutating.POST("/complete/:puzzleId", c.puzzle.Complete)
				mutating.POST("/report/:puzzleId", c.puzzle.Report)
				mutating.POST("/translate/:puzzleId", c.puzzle.Translate)
				mutating.DELETE("/:puzzleId", c.puzzle.Delete)
			}
		}
	}

	moderation := router.Group("/api/moderation")
	moderation.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleModerator), middleware.Paginated())
	{
		moderation.GET("/reports", c.moderation.ListReports)
		moderation.PUT("/reports/:reportId", c.moderation.RespondToReport)
		moderation.GET("/translations", c.moderation.ListPendingTranslations)
		moderation.PUT("/translations/:translationId", c.moderation.ReviewTranslation)
		moderation.GET("/puzzles/hidden", c.moderation.ListHiddenPuzzles)
		moderation.PUT("/hidePuzzle/:puzzleId", c.moderation.HidePuzzle)
		moderation.PUT("/unhidePuzzle/:puzzleId", c.moderation.UnhidePuzzle)

		admin := moderation.Group("/")
		admin.Use(middleware.RoleMiddleware(model.RoleAdmin))
		{
			admin.PUT("/banUser/:userId", c.moderation.BanUser)
			admin.PUT("/unban/:banId", c.moderation.Unban)
			admin.GET("/bans", c.moderation.ListActiveBans)
			admin.GET("/bans/:userId", c.moderation.ListUserBans)
			admin.PUT("/userRole/:userId", c.user.ChangeRole)
		}
	}
}
