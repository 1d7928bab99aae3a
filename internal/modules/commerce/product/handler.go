package product

import (
	"github.com/gin-gonic/gin"
	"github.com/tagshop/core/internal/middleware"
	"github.com/tagshop/core/internal/pkg/pagination"
	"github.com/tagshop/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	products := rg.Group("/workspaces/:id/products", authMW)

	products.GET("", h.list)
	products.POST("", h.create)
	products.GET("/:productId", h.get)
	products.PUT("/:productId", h.update)
	products.DELETE("/:productId", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	q := ListQuery{
		CategoryID: c.Query("category_id"),
		Search:     c.Query("search"),
	}
	products, pg, err := h.svc.List(middleware.CurrentUserID(c), c.Param("id"), &q, pagination.FromContext(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paged(c, products, pg)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateProductDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	prod, err := h.svc.Create(middleware.CurrentUserID(c), c.Param("id"), &dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, prod)
}

func (h *Handler) get(c *gin.Context) {
	prod, err := h.svc.Get(middleware.CurrentUserID(c), c.Param("id"), c.Param("productId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, prod)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateProductDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	prod, err := h.svc.Update(middleware.CurrentUserID(c), c.Param("id"), c.Param("productId"), &dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, prod)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(middleware.CurrentUserID(c), c.Param("id"), c.Param("productId")); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}
