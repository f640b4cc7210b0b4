package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/dskvich/oracai/pkg/api/middleware"
	"github.com/dskvich/oracai/pkg/api/response"
	"github.com/dskvich/oracai/pkg/domain"
	"github.com/dskvich/oracai/pkg/images"
)

type modes struct {
	assistant      Assistant
	writer         response.JSONResponseWriter
	maxUploadBytes int64
}

func NewModes(assistant Assistant, maxUploadBytes int64) *modes {
	return &modes{
		assistant:      assistant,
		writer:         response.JSONResponseWriter{},
		maxUploadBytes: lo.Ternary(maxUploadBytes > 0, maxUploadBytes, int64(images.DefaultMaxBytes)),
	}
}

type modeInfo struct {
	Slug       string `json:"slug"`
	Label      string `json:"label"`
	Title      string `json:"title"`
	NeedsImage bool   `json:"needs_image"`
}

type submitRequest struct {
	Text string `json:"text"`
}

type submitResponse struct {
	Mode     string               `json:"mode"`
	Response string               `json:"response"`
	History  []domain.ChatMessage `json:"history,omitempty"`
	Image    *imageInfo           `json:"image,omitempty"`
}

type imageInfo struct {
	Name     string `json:"name"`
	MIMEType string `json:"mime_type"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

func (m *modes) List(c *gin.Context) {
	m.writer.WriteSuccessResponse(c, lo.Map(allViews(), func(v view, _ int) modeInfo {
		return modeInfo{Slug: v.Slug, Label: v.Label, Title: v.Title, NeedsImage: v.NeedsImage}
	}))
}

func (m *modes) Submit(c *gin.Context) {
	mode, err := domain.ParseMode(c.Param("mode"))
	if err != nil {
		m.writer.WriteErrorResponse(c, http.StatusNotFound, "Unknown mode.")
		return
	}

	sub := domain.Submission{
		Mode:      mode,
		SessionID: middleware.SessionID(c),
	}

	if mode.NeedsImage() {
		image, err := readUpload(c, m.maxUploadBytes)
		if err != nil {
			m.writer.WriteError(c, err)
			return
		}
		sub.Image = image
	} else {
		var req submitRequest
		if strings.HasPrefix(c.ContentType(), "application/json") {
			if err := c.ShouldBindJSON(&req); err != nil {
				m.writer.WriteErrorResponse(c, http.StatusBadRequest, "Request body is not valid JSON.")
				return
			}
		} else {
			req.Text = c.PostForm("text")
		}
		sub.Text = req.Text
	}

	result, err := m.assistant.Submit(c.Request.Context(), sub)
	if err != nil {
		m.writer.WriteError(c, err)
		return
	}

	resp := submitResponse{
		Mode:     mode.Slug(),
		Response: result.Text,
		History:  result.History,
	}
	if result.Image != nil {
		resp.Image = &imageInfo{
			Name:     result.Image.Name,
			MIMEType: result.Image.MIMEType,
			Width:    result.Image.Width,
			Height:   result.Image.Height,
		}
	}

	m.writer.WriteSuccessResponse(c, resp)
}

func (m *modes) History(c *gin.Context) {
	history := m.assistant.ChatHistory(middleware.SessionID(c))
	m.writer.WriteSuccessResponse(c, gin.H{
		"history": lo.Ternary(history != nil, history, []domain.ChatMessage{}),
	})
}

func (m *modes) ClearHistory(c *gin.Context) {
	m.assistant.ClearChat(c.Request.Context(), middleware.SessionID(c))
	c.Status(http.StatusNoContent)
}
