package v1

import (
	"net/http"

	"sharkpay/api/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type responsePlan struct {
	Plan    string          `json:"plan"`
	Price   decimal.Decimal `json:"price"`
	Current bool            `json:"current"`
}

// GET /v1/dashboard/transactions
func (h *Handler) transactionList(c *gin.Context) {
	txs, err := h.services.Transactions.List(currentMerchant(c).MerchantID)
	if err != nil {
		h.responseServiceErr(c, "list transactions", err)
		return
	}

	response := make([]domain.ResponseTransaction, 0, len(txs))
	for i := range txs {
		response = append(response, txs[i].Response())
	}
	c.AbortWithStatusJSON(http.StatusOK, response)
}

// GET /v1/dashboard/analytics
func (h *Handler) analytics(c *gin.Context) {
	analytics, err := h.services.Transactions.Analytics(currentMerchant(c).MerchantID)
	if err != nil {
		h.responseServiceErr(c, "analytics", err)
		return
	}
	c.AbortWithStatusJSON(http.StatusOK, analytics)
}

// GET /v1/dashboard/overview
func (h *Handler) overview(c *gin.Context) {
	overview, err := h.services.Transactions.Overview(currentMerchant(c))
	if err != nil {
		h.responseServiceErr(c, "overview", err)
		return
	}
	c.AbortWithStatusJSON(http.StatusOK, overview)
}

// GET /v1/dashboard/plans
func (h *Handler) plans(c *gin.Context) {
	merchant := currentMerchant(c)

	response := make([]responsePlan, 0, len(domain.Plans))
	for i, name := range domain.Plans {
		response = append(response, responsePlan{
			Plan:    name,
			Price:   decimal.NewFromInt(h.config.Plans[name]),
			Current: domain.Plan(i) == merchant.CurrentPlan,
		})
	}
	c.AbortWithStatusJSON(http.StatusOK, response)
}

func (h *Handler) initFinancesRoutes(g *gin.RouterGroup) {
	g.GET("/transactions", h.transactionList)
	g.GET("/analytics", h.analytics)
	g.GET("/overview", h.overview)
	g.GET("/plans", h.plans)
}
