package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/interview-coach/config"
	"github.com/lshigami/interview-coach/internal/controller"
	"github.com/lshigami/interview-coach/internal/controller/auth"
	"github.com/lshigami/interview-coach/internal/controller/interview"
	"github.com/lshigami/interview-coach/internal/middleware"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Controllers groups every handler set mounted by Register.
type Controllers struct {
	System    *controller.SystemController
	Auth      *auth.AuthController
	Interview *interview.InterviewController
	Session   *interview.SessionController
	Question  *interview.QuestionController
	Answer    *interview.AnswerController
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	controller.UseJSONFieldNames()

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(corsConfig(cfg.CORS.AllowedOrigins)))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}

func Register(r *gin.Engine, authMW *middleware.AuthMiddleware, ctrls Controllers) {
	r.GET("/", ctrls.System.Root)
	r.GET("/healthz", ctrls.System.Healthz)

	api := r.Group("/api")
	{
		users := api.Group("/users")
		users.POST("/register", ctrls.Auth.Register)
		users.POST("/login", ctrls.Auth.Login)
		users.POST("/logout", authMW.RequireAuth(), ctrls.Auth.Logout)

		api.POST("/token", ctrls.Auth.ObtainToken)
		api.POST("/token/refresh", ctrls.Auth.RefreshToken)
	}

	interviews := api.Group("/interviews", authMW.RequireAuth())
	{
		interviews.POST("/generate-question", ctrls.Interview.GenerateQuestion)
		interviews.POST("/evaluate-answer", ctrls.Interview.EvaluateAnswer)
		interviews.POST("/save-session", ctrls.Interview.SaveSession)
		interviews.GET("/session-history", ctrls.Interview.SessionHistory)

		sessions := interviews.Group("/sessions")
		sessions.GET("", ctrls.Session.ListSessions)
		sessions.POST("", ctrls.Session.CreateSession)
		sessions.GET("/:id", ctrls.Session.GetSession)
		sessions.PUT("/:id", ctrls.Session.UpdateSession)
		sessions.PATCH("/:id", ctrls.Session.PatchSession)
		sessions.DELETE("/:id", ctrls.Session.DeleteSession)

		questions := interviews.Group("/questions")
		questions.GET("", ctrls.Question.ListQuestions)
		questions.POST("", ctrls.Question.CreateQuestion)
		questions.GET("/:id", ctrls.Question.GetQuestion)
		questions.PUT("/:id", ctrls.Question.UpdateQuestion)
		questions.PATCH("/:id", ctrls.Question.PatchQuestion)
		questions.DELETE("/:id", ctrls.Question.DeleteQuestion)

		answers := interviews.Group("/answers")
		answers.GET("", ctrls.Answer.ListAnswers)
		answers.POST("", ctrls.Answer.CreateAnswer)
		answers.GET("/:id", ctrls.Answer.GetAnswer)
		answers.PUT("/:id", ctrls.Answer.UpdateAnswer)
		answers.PATCH("/:id", ctrls.Answer.PatchAnswer)
		answers.DELETE("/:id", ctrls.Answer.DeleteAnswer)
	}
}
