package v1

import (
	"net/http"
	"time"

	"sharkpay/api/internal/domain"
	"sharkpay/api/internal/service"

	"github.com/gin-gonic/gin"
)

// POST /v1/merchant/onboarding
func (h *Handler) merchantOnboarding(c *gin.Context) {
	data, ok := bindJSON[onboardingData](c)
	if !ok {
		return
	}

	merchant, err := h.services.Merchants.Onboard(c.Request.Context(), data.IdToken, data.BusinessName, data.Sector)
	if err != nil {
		h.responseServiceErr(c, "onboard merchant", err)
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, merchant.Response())
}

// POST /v1/auth/session
func (h *Handler) sessionStart(c *gin.Context) {
	data, ok := bindJSON[sessionData](c)
	if !ok {
		return
	}

	res, err := h.services.Sessions.Start(c.Request.Context(), data.IdToken)
	if err != nil {
		h.responseServiceErr(c, "start session", err)
		return
	}

	if res.ClearCookie {
		h.setSessionCookie(c, "", -1)
	} else {
		h.setSessionCookie(c, res.Cookie, int(res.MaxAge/time.Second))
	}
	c.AbortWithStatusJSON(http.StatusOK, responseSession{Redirect: res.Redirect})
}

// POST /v1/auth/logout
func (h *Handler) logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.AbortWithStatusJSON(http.StatusOK, responseSession{Redirect: service.RedirectLogin})
}

func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.config.Session.CookieName, value, maxAge, "/", "", h.config.Prod_env, true)
}

// GET /v1/dashboard/me
func (h *Handler) me(c *gin.Context) {
	merchant := currentMerchant(c)
	c.AbortWithStatusJSON(http.StatusOK, merchant.Response())
}

// GET /v1/dashboard/api-key?reveal=1
func (h *Handler) apiKey(c *gin.Context) {
	merchant := currentMerchant(c)
	c.AbortWithStatusJSON(http.StatusOK, apiKeyResponse(merchant, c.Query("reveal") == "1"))
}

// POST /v1/dashboard/api-key
func (h *Handler) apiKeyGenerate(c *gin.Context) {
	merchant, err := h.services.Merchants.GenerateApiKey(currentMerchant(c).MerchantID)
	if err != nil {
		h.responseServiceErr(c, "generate api key", err)
		return
	}
	// shown once in full right after generation
	c.AbortWithStatusJSON(http.StatusOK, apiKeyResponse(merchant, true))
}

func apiKeyResponse(merchant *domain.Merchants, reveal bool) responseApiKey {
	response := responseApiKey{ApiKey: merchant.ApiKey}
	if !reveal {
		response.ApiKey = domain.MaskApiKey(merchant.ApiKey)
		response.Masked = true
	}
	if merchant.ApiKeyCreatedAt != nil {
		createdAt := merchant.ApiKeyCreatedAt.Format(time.RFC3339)
		response.CreatedAt = &createdAt
	}
	return response
}

// POST /v1/dashboard/wallet
func (h *Handler) linkWallet(c *gin.Context) {
	data, ok := bindJSON[walletData](c)
	if !ok {
		return
	}

	merchant, err := h.services.Merchants.LinkWallet(currentMerchant(c).MerchantID, data.WalletUID)
	if err != nil {
		h.responseServiceErr(c, "link wallet", err)
		return
	}
	c.AbortWithStatusJSON(http.StatusOK, merchant.Response())
}

func (h *Handler) initAuthRoutes(g *gin.RouterGroup) {
	g.POST("/auth/session", h.sessionStart)
	g.POST("/auth/logout", h.logout)
}

func (h *Handler) initMerchantRoutes(g *gin.RouterGroup) {
	g.POST("/merchant/onboarding", h.merchantOnboarding)
}

func (h *Handler) initDashboardMerchantRoutes(g *gin.RouterGroup) {
	g.GET("/me", h.me)
	g.GET("/api-key", h.apiKey)
	g.POST("/api-key", h.apiKeyGenerate)
	g.POST("/wallet", h.linkWallet)
}
