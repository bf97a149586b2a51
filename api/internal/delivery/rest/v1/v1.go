package v1

import (
	"sharkpay/api/internal/config"
	"sharkpay/api/internal/logger"
	"sharkpay/api/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	services *service.Services
	db       *gorm.DB
	config   *config.Config
	log      logger.Logger
}

func (h *Handler) InitRoutes(g *gin.RouterGroup) {
	{
		h.initAuthRoutes(g)
		h.initMerchantRoutes(g)

		dashboard := g.Group("/dashboard", h.sessionMiddleware())
		h.initDashboardMerchantRoutes(dashboard)
		h.initLinksRoutes(dashboard)
		h.initInvoicesRoutes(dashboard)
		h.initFinancesRoutes(dashboard)
		h.initNotificationsRoutes(dashboard)

		h.initPrivateRoutes(g.Group("/admin", h.adminAccessMiddleware()))
	}
}

// InitPublicRoutes registers the bill api and the checkout page data.
func (h *Handler) InitPublicRoutes(r *gin.Engine) {
	h.initBillRoutes(r)
	h.initCheckoutRoutes(r)
}

func NewHandler(services *service.Services, db *gorm.DB, config *config.Config, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		log:      log,
		services: services,
		db:       db,
	}
}
