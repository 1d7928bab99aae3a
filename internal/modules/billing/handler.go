package billing

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"github.com/tagshop/core/internal/middleware"
	"github.com/tagshop/core/internal/pkg/response"
)

// WebhookSecretHeader carries the shared secret on provider callbacks.
const WebhookSecretHeader = "X-Billing-Secret"

type Handler struct {
	svc           *Service
	webhookSecret string
}

func NewHandler(svc *Service, webhookSecret string) *Handler {
	return &Handler{svc: svc, webhookSecret: webhookSecret}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	grp := rg.Group("/billing")

	grp.GET("/subscription", authMW, h.subscription)
	grp.POST("/webhook", h.webhook)
}

// subscription GET /billing/subscription
func (h *Handler) subscription(c *gin.Context) {
	sub, err := h.svc.Current(middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, sub)
}

// webhook POST /billing/webhook
func (h *Handler) webhook(c *gin.Context) {
	if h.webhookSecret == "" {
		response.NotFound(c, "not found")
		return
	}
	supplied := c.GetHeader(WebhookSecretHeader)
	if subtle.ConstantTimeCompare([]byte(supplied), []byte(h.webhookSecret)) != 1 {
		response.Unauthorized(c)
		return
	}

	var dto WebhookDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	sub, err := h.svc.ApplyWebhook(&dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, sub)
}
