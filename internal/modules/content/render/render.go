package render

import (
	"bytes"

	"github.com/gin-gonic/gin"
	"github.com/tagshop/core/internal/modules/analytics"
	"github.com/tagshop/core/internal/modules/content/post"
	"github.com/tagshop/core/internal/pkg/apperr"
	"github.com/tagshop/core/internal/pkg/response"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// RenderedPost is the public read of a published post: metadata plus the
// markdown body rendered to HTML.
type RenderedPost struct {
	ID            string `json:"id"`
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	HTML          string `json:"html"`
	VideoURL      string `json:"videoUrl"`
	VideoPlatform string `json:"videoPlatform"`
}

// Service renders published posts for anonymous readers.
type Service struct {
	posts    *post.Service
	events   *analytics.Service
	markdown goldmark.Markdown
}

func NewService(posts *post.Service, events *analytics.Service) *Service {
	return &Service{
		posts:  posts,
		events: events,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

// Render converts the post's markdown content to HTML. A VIEW event is
// recorded in the background; the rendering never waits on it.
func (s *Service) Render(workspaceID, postID, ip, referer string) (*RenderedPost, error) {
	p, err := s.posts.GetPublished(workspaceID, postID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(p.Content), &buf); err != nil {
		return nil, apperr.Internal("failed to render post", err)
	}

	s.events.RecordView(workspaceID, p.ID, ip, referer)

	return &RenderedPost{
		ID:            p.ID,
		Slug:          p.Slug,
		Title:         p.Title,
		HTML:          buf.String(),
		VideoURL:      p.VideoURL,
		VideoPlatform: p.VideoPlatform,
	}, nil
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the public render endpoint. No auth middleware: the
// publish flag is the gate.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/workspaces/:id/posts/:postId/render", h.render)
}

func (h *Handler) render(c *gin.Context) {
	rendered, err := h.svc.Render(c.Param("id"), c.Param("postId"), c.ClientIP(), c.Request.Referer())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, rendered)
}
