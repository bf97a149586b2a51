package delivery

import (
	"sharkpay/api/internal/config"
	v1 "sharkpay/api/internal/delivery/rest/v1"
	"sharkpay/api/internal/logger"
	"sharkpay/api/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	Services *service.Services
	Db       *gorm.DB
	Config   *config.Config
	Log      logger.Logger
}

func (h *Handler) InitAPI(r *gin.Engine) {
	v1Handler := v1.NewHandler(h.Services, h.Db, h.Config, h.Log)

	r.Use(v1Handler.DashboardCors())

	{
		// bill api and checkout keep the paths merchants already integrate with
		v1Handler.InitPublicRoutes(r)
		v1Handler.InitRoutes(r.Group("/v1"))
	}
}

func InitHandler(services *service.Services, db *gorm.DB, config *config.Config, log logger.Logger) *Handler {
	return &Handler{
		Config:   config,
		Log:      log,
		Services: services,
		Db:       db,
	}
}
