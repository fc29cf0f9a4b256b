package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/cors"

	"ai-edu-portal/analyzer"
	"ai-edu-portal/cmd/api/router"
	"ai-edu-portal/cmd/api/scheduler"
	"ai-edu-portal/cmd/api/services"
	"ai-edu-portal/cmd/internal/logger"
	"ai-edu-portal/config"
	"ai-edu-portal/db"
	"ai-edu-portal/mailer"
	"ai-edu-portal/repositories"
)

// @title           AI Edu Portal API
// @version         1.0
// @description     Course companion API for blogs, portfolios and AI content analytics
// @BasePath        /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	ctx := context.Background()
	if err := db.Init(ctx); err != nil {
		logger.Log.Errorf("mongo init failed: %v", err)
		os.Exit(1)
	}
	database := db.Database()

	users := repositories.NewUserRepository(database)
	resets := repositories.NewPasswordResetRepository(database)
	blogs := repositories.NewBlogRepository(database)
	portfolios := repositories.NewPortfolioRepository(database)
	analyses := repositories.NewContentAnalysisRepository(database)
	interests := repositories.NewUserInterestRepository(database)
	reports := repositories.NewCommunityAnalyticsRepository(database)
	aiLogs := repositories.NewAILogRepository(database)

	llm := analyzer.New()
	mail := mailer.NewFromConfig(cfg)

	authSvc, err := services.NewAuthServiceFromEnv(users, resets, mail)
	if err != nil {
		logger.Log.Errorf("auth service init failed: %v", err)
		os.Exit(1)
	}

	analysisSvc := services.NewAnalysisService(llm, analyses, aiLogs, blogs, portfolios)
	blogSvc := services.NewBlogService(blogs, analysisSvc)
	portfolioSvc := services.NewPortfolioService(portfolios, analysisSvc)
	userSvc := services.NewUserService(llm, users, interests, blogs, portfolios, analyses, aiLogs)
	analyticsSvc := services.NewAnalyticsService(llm, blogs, portfolios, analyses, reports, aiLogs)

	sched := scheduler.New(analyticsSvc, cfg.Community.ScheduleEnabled)
	if err := sched.Start(); err != nil {
		logger.Log.Errorf("scheduler start failed: %v", err)
		os.Exit(1)
	}

	r := router.New(router.Deps{
		Auth:       authSvc,
		Blogs:      blogSvc,
		Portfolios: portfolioSvc,
		Analysis:   analysisSvc,
		Users:      userSvc,
		Analytics:  analyticsSvc,
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: corsHandler.Handler(r),
	}

	go func() {
		logger.Log.Infof("api server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Errorf("server stopped: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down api server")
	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("graceful shutdown failed: %v", err)
	}
}

// allowedOrigins 는 CORS_ALLOWED_ORIGINS(콤마 구분)를 파싱한다.
// 비어 있으면 로컬 개발 프론트 기본값을 사용한다.
func allowedOrigins() []string {
	raw := os.Getenv("CORS_ALLOWED_ORIGINS")
	if raw == "" {
		return []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
