package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/interview-coach/internal/dto"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type SystemController struct {
	db *gorm.DB
}

func NewSystemController(db *gorm.DB) *SystemController {
	return &SystemController{db: db}
}

// Root godoc
// @Summary Welcome message
// @Tags System
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router / [get]
func (ctrl *SystemController) Root(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Welcome to the Interview API!"})
}

// Healthz godoc
// @Summary Liveness and database check
// @Tags System
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /healthz [get]
func (ctrl *SystemController) Healthz(c *gin.Context) {
	sqlDB, err := ctrl.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		log.Error().Err(err).Msg("Healthz: database ping failed")
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable"})
		return
	}
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
