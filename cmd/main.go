package main

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/interview-coach/config"
	"github.com/lshigami/interview-coach/database"
	_ "github.com/lshigami/interview-coach/docs" // Swagger docs
	"github.com/lshigami/interview-coach/internal/controller"
	"github.com/lshigami/interview-coach/internal/controller/auth"
	"github.com/lshigami/interview-coach/internal/controller/interview"
	"github.com/lshigami/interview-coach/internal/logger"
	"github.com/lshigami/interview-coach/internal/middleware"
	"github.com/lshigami/interview-coach/internal/repository"
	"github.com/lshigami/interview-coach/internal/router"
	"github.com/lshigami/interview-coach/internal/service"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Interview Coach API
// @version 1.0
// @description Generates interview questions and evaluates answers with an LLM, storing sessions per user.
// @host localhost:8080
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init("info", true)

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			router.NewGinEngine,  // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewSessionRepository,
			repository.NewQuestionRepository,
			repository.NewAnswerRepository,
			repository.NewTokenBlacklistRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewChatCompleter,
			service.NewLLMGateway,
			service.NewTokenService,
			service.NewBlacklistCache,
			service.NewAuthService,
			service.NewInterviewService,
			service.NewSessionService,
			service.NewQuestionService,
			service.NewAnswerService,
		),

		// API Controllers Layer
		fx.Provide(
			middleware.NewAuthMiddleware,
			controller.NewSystemController,
			auth.NewAuthController,
			interview.NewInterviewController,
			interview.NewSessionController,
			interview.NewQuestionController,
			interview.NewAnswerController,
		),

		// Invokers - Functions that are executed by Fx, in order
		fx.Invoke(ConfigureLogger),
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterResourceCleanup),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	// Wait for a shutdown signal
	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

// ConfigureLogger re-initialises the global logger from config: console
// output in debug mode, JSON otherwise.
func ConfigureLogger(cfg *config.Config) {
	logger.Init(cfg.LogLevel, cfg.Server.Mode != gin.ReleaseMode)
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	if err := database.Migrate(db); err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}

// RegisterResourceCleanup closes long-lived clients after the HTTP server
// has stopped.
func RegisterResourceCleanup(lc fx.Lifecycle, db *gorm.DB, cache service.BlacklistCache, completer service.ChatCompleter) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if c, ok := completer.(io.Closer); ok {
				if err := c.Close(); err != nil {
					log.Warn().Err(err).Msg("Failed to close LLM client")
				}
			}
			if err := cache.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close token blacklist cache")
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	engine *gin.Engine,
	cfg *config.Config,
	authMW *middleware.AuthMiddleware,
	systemCtrl *controller.SystemController,
	authCtrl *auth.AuthController,
	interviewCtrl *interview.InterviewController,
	sessionCtrl *interview.SessionController,
	questionCtrl *interview.QuestionController,
	answerCtrl *interview.AnswerController,
) {
	router.Register(engine, authMW, router.Controllers{
		System:    systemCtrl,
		Auth:      authCtrl,
		Interview: interviewCtrl,
		Session:   sessionCtrl,
		Question:  questionCtrl,
		Answer:    answerCtrl,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Interview API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
