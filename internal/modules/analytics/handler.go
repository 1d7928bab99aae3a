package analytics

import (
	"github.com/gin-gonic/gin"
	"github.com/tagshop/core/internal/middleware"
	"github.com/tagshop/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the event intake (public) and the stats read
// (members only).
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/workspaces/:id/posts/:postId/events", h.record)
	rg.GET("/workspaces/:id/posts/:postId/stats", authMW, h.stats)
}

// record POST /workspaces/:id/posts/:postId/events
func (h *Handler) record(c *gin.Context) {
	var dto RecordEventDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	err := h.svc.Record(c.Param("id"), c.Param("postId"), &dto, c.ClientIP(), c.Request.Referer())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, gin.H{"recorded": true})
}

// stats GET /workspaces/:id/posts/:postId/stats
func (h *Handler) stats(c *gin.Context) {
	stats, err := h.svc.Stats(middleware.CurrentUserID(c), c.Param("id"), c.Param("postId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, stats)
}
