package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tagshop/core/internal/pkg/apperr"
)

// Envelope is the JSON shape of every API response.
type Envelope struct {
	Success bool              `json:"success"`
	Data    interface{}       `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Pagination metadata returned with paginated responses.
type Pagination struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"current_page"`
	TotalPage   int   `json:"total_page"`
	Size        int   `json:"size"`
	HasNextPage bool  `json:"has_next_page"`
}

type pagedData struct {
	Items      interface{} `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

// OK sends a 200 response.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Paged sends a 200 response with pagination metadata.
func Paged(c *gin.Context, items interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: pagedData{Items: items, Pagination: pagination}})
}

// Created sends a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{Error: message})
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{Error: "authentication required"})
}

// Forbidden sends a 403 error response.
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "insufficient permissions"
	}
	c.AbortWithStatusJSON(http.StatusForbidden, Envelope{Error: message})
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "not found"
	}
	c.AbortWithStatusJSON(http.StatusNotFound, Envelope{Error: message})
}

// Conflict sends a 409 error response.
func Conflict(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusConflict, Envelope{Error: message})
}

// InternalError sends a 500 error response without leaking the cause.
func InternalError(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope{Error: "internal error"})
}

// FromError maps an error from the service layer onto the envelope using the
// apperr taxonomy. Unknown errors become 500s with the cause withheld.
func FromError(c *gin.Context, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		InternalError(c)
		return
	}
	switch e.Kind {
	case apperr.KindValidation:
		c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{Error: e.Message, Fields: e.Fields})
	case apperr.KindUnauthorized:
		c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{Error: e.Message})
	case apperr.KindForbidden:
		c.AbortWithStatusJSON(http.StatusForbidden, Envelope{Error: e.Message})
	case apperr.KindNotFound:
		c.AbortWithStatusJSON(http.StatusNotFound, Envelope{Error: e.Message})
	case apperr.KindConflict:
		c.AbortWithStatusJSON(http.StatusConflict, Envelope{Error: e.Message})
	default:
		InternalError(c)
	}
}

// MethodNotAllowed sends a 405 error response.
func MethodNotAllowed(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, Envelope{Error: "method not allowed"})
}
