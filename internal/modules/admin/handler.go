package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/tagshop/core/internal/middleware"
	"github.com/tagshop/core/internal/pkg/pagination"
	"github.com/tagshop/core/internal/pkg/response"
)

// Handler exposes platform-wide listings to platform admins. These bypass
// workspace membership entirely.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	grp := rg.Group("/admin", authMW, middleware.RequirePlatformAdmin())

	grp.GET("/users", h.users)
	grp.GET("/workspaces", h.workspaces)
}

// users GET /admin/users
func (h *Handler) users(c *gin.Context) {
	users, pg, err := h.svc.Users(c.Query("search"), pagination.FromContext(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paged(c, users, pg)
}

// workspaces GET /admin/workspaces
func (h *Handler) workspaces(c *gin.Context) {
	workspaces, pg, err := h.svc.Workspaces(c.Query("include_deleted") == "true", pagination.FromContext(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paged(c, workspaces, pg)
}
