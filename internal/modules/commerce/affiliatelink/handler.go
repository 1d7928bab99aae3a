package affiliatelink

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	links := rg.Group("/workspaces/:id/affiliate-links", authMW)

	links.GET("", h.list)
	links.POST("", h.create)
	links.PUT("/:linkId", h.update)
	links.DELETE("/:linkId", h.delete)
	links.POST("/:linkId/set-active", h.setActive)
	links.DELETE("/:linkId/set-active", h.clearActive)
}

func (h *Handler) list(c *gin.Context) {
	q := ListQuery{ProductID: c.Query("product_id")}
	links, err := h.svc.List(middleware.CurrentUserID(c), c.Param("id"), &q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, links)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateLinkDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	link, err := h.svc.Create(middleware.CurrentUserID(c), c.Param("id"), &dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, link)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateLinkDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	link, err := h.svc.Update(middleware.CurrentUserID(c), c.Param("id"), c.Param("linkId"), &dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, link)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(middleware.CurrentUserID(c), c.Param("id"), c.Param("linkId")); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) setActive(c *gin.Context) {
	prod, err := h.svc.SetActive(middleware.CurrentUserID(c), c.Param("id"), c.Param("linkId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, prod)
}

func (h *Handler) clearActive(c *gin.Context) {
	prod, err := h.svc.ClearActive(middleware.CurrentUserID(c), c.Param("id"), c.Param("linkId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, prod)
}
