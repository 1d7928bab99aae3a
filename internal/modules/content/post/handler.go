package post

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
	posts := rg.Group("/workspaces/:id/posts", authMW)

	posts.GET("", h.list)
	posts.POST("", h.create)
	posts.GET("/:postId", h.get)
	posts.PUT("/:postId", h.update)
	posts.DELETE("/:postId", h.delete)
}

// list GET /workspaces/:id/posts
func (h *Handler) list(c *gin.Context) {
	q := ListQuery{
		IncludeDeleted: c.Query("include_deleted") == "true",
	}
	if raw, ok := c.GetQuery("published"); ok {
		published := raw == "true"
		q.Published = &published
	}

	posts, pg, err := h.svc.List(middleware.CurrentUserID(c), c.Param("id"), &q, pagination.FromContext(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paged(c, posts, pg)
}

// create POST /workspaces/:id/posts
func (h *Handler) create(c *gin.Context) {
	var dto CreatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Create(middleware.CurrentUserID(c), c.Param("id"), &dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, p)
}

// get GET /workspaces/:id/posts/:postId
func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(middleware.CurrentUserID(c), c.Param("id"), c.Param("postId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, p)
}

// update PUT /workspaces/:id/posts/:postId
func (h *Handler) update(c *gin.Context) {
	var dto UpdatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Update(middleware.CurrentUserID(c), c.Param("id"), c.Param("postId"), &dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, p)
}

// delete DELETE /workspaces/:id/posts/:postId
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(middleware.CurrentUserID(c), c.Param("id"), c.Param("postId")); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}
