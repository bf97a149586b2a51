package v1

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"sharkpay/api/internal/domain"
	"sharkpay/api/internal/logger"

	"github.com/gin-gonic/gin"
	cors "github.com/rs/cors/wrapper/gin"
)

const ctxMerchant = "merchant"

func (h *Handler) adminAccessMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		access := c.Request.Header.Get("Access")
		if h.config.PrivateKey == "" || subtle.ConstantTimeCompare([]byte(access), []byte(h.config.PrivateKey)) != 1 {
			responseErr(c, http.StatusUnauthorized, "access denied", "")
			return
		}
		c.Next()
	}
}

// sessionMiddleware loads the merchant behind the session cookie.
func (h *Handler) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := c.Cookie(h.config.Session.CookieName)

		merchant, err := h.services.Sessions.Authenticate(c.Request.Context(), cookie)
		if err != nil {
			status := domain.GetStatusByErr(err)
			if status == http.StatusInternalServerError {
				h.responseInternal(c, "authenticate session", err)
				return
			}
			responseErr(c, status, errMsg(err), "")
			return
		}

		c.Set(ctxMerchant, merchant)
		c.Next()
	}
}

func currentMerchant(c *gin.Context) *domain.Merchants {
	return c.MustGet(ctxMerchant).(*domain.Merchants)
}

// DashboardCors answers the web app, including preflights of unregistered OPTIONS routes,
// so it is installed on the engine and filters by path.
func (h *Handler) DashboardCors() gin.HandlerFunc {
	handler := cors.New(cors.Options{
		AllowedOrigins:   h.config.Api.Origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/v1/") {
			handler(c)
		}
	}
}

// bill api is called server to server or from any storefront
func billCors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Next()
	}
}

func (h *Handler) responseInternal(c *gin.Context, msg string, err error) {
	errid := logger.GenErrorId()
	h.log.TemplRequestErr(msg, errid, c.Request.RequestURI, c.ClientIP(), err)
	responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
}
