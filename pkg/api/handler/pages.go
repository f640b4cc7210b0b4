package handler

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/dskvich/oracai/pkg/api/middleware"
	"github.com/dskvich/oracai/pkg/api/response"
	"github.com/dskvich/oracai/pkg/domain"
	"github.com/dskvich/oracai/pkg/images"
	"github.com/dskvich/oracai/pkg/logger"
	"github.com/dskvich/oracai/pkg/render"
)

const PageTemplate = "page.html"

type Assistant interface {
	Submit(ctx context.Context, sub domain.Submission) (*domain.Result, error)
	ChatHistory(sessionID string) []domain.ChatMessage
	ClearChat(ctx context.Context, sessionID string)
}

type pages struct {
	assistant      Assistant
	animations     map[domain.Mode]*domain.Animation
	maxUploadBytes int64
}

func NewPages(assistant Assistant, animations map[domain.Mode]*domain.Animation, maxUploadBytes int64) *pages {
	return &pages{
		assistant:      assistant,
		animations:     animations,
		maxUploadBytes: lo.Ternary(maxUploadBytes > 0, maxUploadBytes, int64(images.DefaultMaxBytes)),
	}
}

type messageView struct {
	Role string
	HTML template.HTML
}

type pageData struct {
	View        view
	Views       []view
	Animation   template.JS
	Placeholder string
	History     []messageView
	Result      template.HTML
	Image       template.URL
	ImageName   string
	Error       string
	Input       string
	Accept      string
}

func (p *pages) Show(mode domain.Mode) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, PageTemplate, p.newPage(c, mode))
	}
}

func (p *pages) Submit(mode domain.Mode) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		data := p.newPage(c, mode)

		sub := domain.Submission{
			Mode:      mode,
			SessionID: middleware.SessionID(c),
		}

		if mode.NeedsImage() {
			image, err := readUpload(c, p.maxUploadBytes)
			if err != nil {
				p.renderError(c, data, err)
				return
			}
			sub.Image = image
		} else {
			sub.Text = c.PostForm("text")
		}

		result, err := p.assistant.Submit(ctx, sub)
		if err != nil {
			if mode == domain.ModeTroubleshoot {
				data.Input = sub.Text
			}
			if sub.Image != nil {
				data.Image, data.ImageName = template.URL(sub.Image.DataURL()), sub.Image.Name
			}
			p.renderError(c, data, err)
			return
		}

		switch mode {
		case domain.ModeChat:
			data.History = historyViews(result.History)
		case domain.ModeERDExplain, domain.ModeCloudExplain:
			data.Result = render.ToHTML(result.Text)
			data.Image, data.ImageName = template.URL(result.Image.DataURL()), result.Image.Name
		case domain.ModeTroubleshoot:
			data.Input = sub.Text
			data.Result = render.ToHTML(result.Text)
		}

		c.HTML(http.StatusOK, PageTemplate, data)
	}
}

func (p *pages) ClearChat(c *gin.Context) {
	p.assistant.ClearChat(c.Request.Context(), middleware.SessionID(c))
	c.Redirect(http.StatusSeeOther, "/"+domain.ModeChat.Slug())
}

func (p *pages) newPage(c *gin.Context, mode domain.Mode) pageData {
	v := viewFor(mode)
	data := pageData{
		View:        v,
		Views:       allViews(),
		Animation:   animationScript(p.animations[mode]),
		Placeholder: animationPlaceholder,
		Accept:      images.AcceptAttr,
	}

	if mode == domain.ModeChat {
		data.History = historyViews(p.assistant.ChatHistory(middleware.SessionID(c)))
	}

	return data
}

func (p *pages) renderError(c *gin.Context, data pageData, err error) {
	status, message := response.Describe(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "Submit failed", "mode", data.View.Slug, logger.Err(err))
	}

	_ = c.Error(err)
	data.Error = message
	c.HTML(status, PageTemplate, data)
}

func historyViews(history []domain.ChatMessage) []messageView {
	return lo.Map(history, func(m domain.ChatMessage, _ int) messageView {
		return messageView{Role: string(m.Role), HTML: render.ToHTML(m.Text)}
	})
}
