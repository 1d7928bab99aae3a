package dashboard

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tagshop/core/internal/middleware"
	"github.com/tagshop/core/internal/modules/workspace"
)

type Handler struct {
	svc     *Service
	baseURL string
}

func NewHandler(svc *Service, baseURL string) *Handler {
	return &Handler{svc: svc, baseURL: baseURL}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/dashboard", authMW, h.resolve)
}

// resolve GET /dashboard
func (h *Handler) resolve(c *gin.Context) {
	last, _ := c.Cookie(workspace.LastWorkspaceCookie)
	res := h.svc.Resolve(middleware.CurrentUserID(c), last)

	switch {
	case res.FailedOpen:
		c.Redirect(http.StatusTemporaryRedirect, h.baseURL+"/")
	case res.Onboarding:
		c.Redirect(http.StatusTemporaryRedirect, h.baseURL+"/onboarding")
	default:
		c.SetCookie(workspace.LastWorkspaceCookie, res.Workspace.ID, int(30*24*3600), "/", "", false, true)
		c.Redirect(http.StatusTemporaryRedirect, fmt.Sprintf("%s/w/%s", h.baseURL, res.Workspace.Slug))
	}
}
