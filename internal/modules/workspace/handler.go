package workspace

import (
	"github.com/gin-gonic/gin"
	"github.com/tagshop/core/internal/middleware"
	"github.com/tagshop/core/internal/pkg/response"
)

// LastWorkspaceCookie is the client-held "last workspace" token consumed by
// the dashboard resolver.
const LastWorkspaceCookie = "tagshop_last_workspace"

// Handler handles workspace HTTP requests.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts workspace routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	ws := rg.Group("/workspaces", authMW)

	ws.GET("", h.list)
	ws.POST("", h.create)
	ws.GET("/by-slug/:slug", h.getBySlug)
	ws.GET("/:id", h.get)
	ws.PUT("/:id", h.update)
	ws.DELETE("/:id", h.delete)

	ws.GET("/:id/members", h.members)
	ws.POST("/:id/members", h.addMember)
	ws.PUT("/:id/members/:userId", h.updateMember)
	ws.DELETE("/:id/members/:userId", h.removeMember)
}

// list GET /workspaces
func (h *Handler) list(c *gin.Context) {
	workspaces, err := h.svc.ListForUser(middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, workspaces)
}

// create POST /workspaces
func (h *Handler) create(c *gin.Context) {
	var dto CreateWorkspaceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	ws, err := h.svc.Create(middleware.CurrentUserID(c), &dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, ws)
}

// get GET /workspaces/:id
func (h *Handler) get(c *gin.Context) {
	ws, err := h.svc.Get(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, ws)
}

// getBySlug GET /workspaces/by-slug/:slug
//
// Successful slug resolution counts as entering the workspace, so the
// last-workspace cookie is refreshed here.
func (h *Handler) getBySlug(c *gin.Context) {
	ws, err := h.svc.GetBySlug(middleware.CurrentUserID(c), c.Param("slug"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.SetCookie(LastWorkspaceCookie, ws.ID, int(30*24*3600), "/", "", false, true)
	response.OK(c, ws)
}

// update PUT /workspaces/:id
func (h *Handler) update(c *gin.Context) {
	var dto UpdateWorkspaceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	ws, err := h.svc.Update(middleware.CurrentUserID(c), c.Param("id"), &dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, ws)
}

// delete DELETE /workspaces/:id
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(middleware.CurrentUserID(c), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}

// members GET /workspaces/:id/members
func (h *Handler) members(c *gin.Context) {
	memberships, err := h.svc.Members(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, memberships)
}

// addMember POST /workspaces/:id/members
func (h *Handler) addMember(c *gin.Context) {
	var dto AddMemberDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	membership, err := h.svc.AddMember(middleware.CurrentUserID(c), c.Param("id"), &dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, membership)
}

// updateMember PUT /workspaces/:id/members/:userId
func (h *Handler) updateMember(c *gin.Context) {
	var dto UpdateMemberDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	membership, err := h.svc.UpdateMemberRole(middleware.CurrentUserID(c), c.Param("id"), c.Param("userId"), &dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, membership)
}

// removeMember DELETE /workspaces/:id/members/:userId
func (h *Handler) removeMember(c *gin.Context) {
	if err := h.svc.RemoveMember(middleware.CurrentUserID(c), c.Param("id"), c.Param("userId")); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}
