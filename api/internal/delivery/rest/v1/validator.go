package v1

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"sharkpay/api/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("weburl", validateWebURL)
	v.RegisterValidation("sector", func(fl validator.FieldLevel) bool {
		return domain.IsValidSector(fl.Field().String())
	})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// absolute http(s) url with a host
func validateWebURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

type onboardingData struct {
	IdToken      string `json:"id_token" validate:"required"`
	BusinessName string `json:"business_name" validate:"required,max=128"`
	Sector       string `json:"sector" validate:"required,sector"`
}

type sessionData struct {
	IdToken string `json:"id_token" validate:"required"`
}

type walletData struct {
	WalletUID string `json:"wallet_uid" validate:"required,max=128"`
}

type newLinkData struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description" validate:"required,max=500"`
}

type upgradeData struct {
	TargetPlan string `json:"target_plan" validate:"required"`
}

type billIDs struct {
	MerchantID string `validate:"required,max=128,printascii"`
	BillID     string `validate:"required,max=128,printascii"`
}

type billURLs struct {
	RedirectURL string `json:"redirectUrl" validate:"omitempty,weburl,max=2048"`
	WebhookURL  string `json:"webhookUrl" validate:"omitempty,weburl,max=2048"`
}

// bindJSON decodes and validates the body, the response is written on failure.
func bindJSON[T any](c *gin.Context) (*T, bool) {
	var data T
	if err := c.ShouldBindJSON(&data); err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return nil, false
	}

	if err := validate.Struct(data); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
			responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
			return nil, false
		}
		responseErr(c, http.StatusBadRequest, formatValidationErr(validationErrs[0]), "")
		return nil, false
	}
	return &data, true
}

func formatValidationErr(err validator.FieldError) string {
	field := err.Field()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", field)
	case "max":
		return fmt.Sprintf("field '%s' must be at most %s characters long", field, err.Param())
	case "gt":
		return fmt.Sprintf("field '%s' must be greater than %s", field, err.Param())
	//  custom tags
	case "weburl":
		return fmt.Sprintf("field '%s' must be a valid http(s) url", field)
	case "sector":
		return fmt.Sprintf("field '%s' must be one of '%s'", field, strings.Join(domain.Sectors[:], ", "))
	default:
		return fmt.Sprintf("invalid field '%s'", field)
	}
}
