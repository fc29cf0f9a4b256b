package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"ai-edu-portal/cmd/api/handlers"
	"ai-edu-portal/cmd/api/middleware"
	"ai-edu-portal/cmd/api/services"
	"ai-edu-portal/db"
	_ "ai-edu-portal/docs"
)

// Deps 는 라우터가 의존하는 서비스 묶음이다. main 에서 조립해 주입한다.
type Deps struct {
	Auth       *services.AuthService
	Blogs      *services.BlogService
	Portfolios *services.PortfolioService
	Analysis   *services.AnalysisService
	Users      *services.UserService
	Analytics  *services.AnalyticsService
}

func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestTrace())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := db.Client().Ping(ctx, nil); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// v1 routes
	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", handlers.RegisterHandler(deps.Auth))
			authGroup.POST("/login", handlers.LoginHandler(deps.Auth))
			authGroup.GET("/me", handlers.MeHandler(deps.Auth))
			authGroup.POST("/forgot-password", handlers.ForgotPasswordHandler(deps.Auth))
			authGroup.POST("/reset-password", handlers.ResetPasswordHandler(deps.Auth))
			authGroup.GET("/google/login", handlers.GoogleLoginHandler(deps.Auth))
			authGroup.GET("/google/callback", handlers.GoogleCallbackHandler(deps.Auth))
		}

		api.GET("/users/profile", handlers.MeHandler(deps.Auth))

		api.GET("/blogs", handlers.ListBlogsHandler(deps.Blogs))
		api.GET("/blogs/me", handlers.ListMyBlogsHandler(deps.Auth, deps.Blogs))
		api.GET("/blogs/:slug", handlers.GetBlogHandler(deps.Blogs))
		api.POST("/blogs", handlers.CreateBlogHandler(deps.Auth, deps.Blogs))
		api.PUT("/blogs/:slug", handlers.UpdateBlogHandler(deps.Auth, deps.Blogs))
		api.DELETE("/blogs/:slug", handlers.DeleteBlogHandler(deps.Auth, deps.Blogs))

		api.GET("/portfolios", handlers.ListPortfoliosHandler(deps.Portfolios))
		api.GET("/portfolios/me", handlers.ListMyPortfoliosHandler(deps.Auth, deps.Portfolios))
		api.GET("/portfolios/:slug", handlers.GetPortfolioHandler(deps.Portfolios))
		api.POST("/portfolios", handlers.CreatePortfolioHandler(deps.Auth, deps.Portfolios))
		api.PUT("/portfolios/:slug", handlers.UpdatePortfolioHandler(deps.Auth, deps.Portfolios))
		api.DELETE("/portfolios/:slug", handlers.DeletePortfolioHandler(deps.Auth, deps.Portfolios))

		api.GET("/analytics/content/:id", handlers.GetContentAnalysisHandler(deps.Analysis))
		api.POST("/analytics/content/:id", handlers.AnalyzeContentHandler(deps.Auth, deps.Analysis))
		api.GET("/analytics/user/:id", handlers.GetUserAnalyticsHandler(deps.Auth, deps.Users))
		api.POST("/analytics/user/:id", handlers.RefreshUserAnalyticsHandler(deps.Auth, deps.Users))
		api.GET("/analytics/community", handlers.ListCommunityReportsHandler(deps.Analytics))
		api.POST("/analytics/community", middleware.AdminAuthMiddleware(deps.Auth),
			handlers.GenerateCommunityReportHandler(deps.Analytics))

		admin := api.Group("/admin", middleware.AdminAuthMiddleware(deps.Auth))
		{
			admin.POST("/analytics/batch", handlers.BatchAnalyzeHandler(deps.Analysis, deps.Blogs, deps.Portfolios))
		}
	}

	return r
}
