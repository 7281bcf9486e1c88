package main

import (
	"context"
	"log"

	"github.com/MdAyanBadar/interview-prep/internal/config"
	"github.com/MdAyanBadar/interview-prep/internal/database"
	"github.com/MdAyanBadar/interview-prep/internal/handlers"
	"github.com/MdAyanBadar/interview-prep/internal/llm"
	"github.com/MdAyanBadar/interview-prep/internal/middleware"
	"github.com/MdAyanBadar/interview-prep/internal/models"
	"github.com/MdAyanBadar/interview-prep/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Interview Prep API
// @version         1.0
// @description     API for interview practice sessions with AI-assisted grading
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	var provider llm.Provider = llm.Disabled{}
	if cfg.GeminiAPIKey != "" {
		p, err := llm.NewGeminiProvider(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("failed to create Gemini provider: %v", err)
		}
		provider = p
	} else {
		log.Println("GEMINI_API_KEY not set, short-answer grading will return fallback verdicts")
	}

	authService := services.NewAuthService(db, cfg.JWTSecret)
	questionService := services.NewQuestionService(db)
	graderService := services.NewGraderService(provider, services.GraderConfig{
		RetryDelay: cfg.GradeRetryDelay,
	})
	sessionService := services.NewSessionService(db, questionService, graderService, cfg.GradePacing)
	reportService := services.NewReportService(db)
	bookmarkService := services.NewBookmarkService(db)

	authHandler := handlers.NewAuthHandler(authService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	reportHandler := handlers.NewReportHandler(reportService)
	bookmarkHandler := handlers.NewBookmarkHandler(bookmarkService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/profile", middleware.JWTAuth(authService), authHandler.Profile)
		}

		questions := api.Group("/questions")
		questions.Use(middleware.JWTAuth(authService))
		{
			questions.POST("", middleware.RequireRole(models.RoleAdmin), questionHandler.Create)
			questions.GET("", questionHandler.List)
		}

		sessions := api.Group("/sessions")
		sessions.Use(middleware.JWTAuth(authService))
		{
			sessions.POST("/start", sessionHandler.Start)
			sessions.POST("/:sessionId/submit", sessionHandler.Submit)
			sessions.POST("/recheck/:sessionId", sessionHandler.Recheck)
		}

		reports := api.Group("/reports")
		reports.Use(middleware.JWTAuth(authService))
		{
			reports.GET("/progress", reportHandler.Progress)
			reports.GET("/session/:sessionId", reportHandler.SessionResult)
		}

		bookmarks := api.Group("/bookmarks")
		bookmarks.Use(middleware.JWTAuth(authService))
		{
			bookmarks.POST("", bookmarkHandler.Add)
			bookmarks.GET("", bookmarkHandler.List)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
