package auth

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
	grp := rg.Group("/auth")

	grp.POST("/register", h.register)
	grp.POST("/login", h.login)
	grp.GET("/me", authMW, h.me)
}

// register POST /auth/register
func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	session, err := h.svc.Register(&dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, session)
}

// login POST /auth/login
func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	session, err := h.svc.Login(&dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, session)
}

// me GET /auth/me
func (h *Handler) me(c *gin.Context) {
	user, err := h.svc.Me(middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, user)
}
