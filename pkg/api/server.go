package api

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dskvich/oracai/pkg/api/handler"
	"github.com/dskvich/oracai/pkg/api/middleware"
	"github.com/dskvich/oracai/pkg/domain"
)

//go:embed templates/* static/*
var embeddedFS embed.FS

type Config struct {
	Assistant      handler.Assistant
	Animations     map[domain.Mode]*domain.Animation
	MaxUploadBytes int64
}

// NewRouter serves the four mode views, the JSON API and the embedded static assets.
func NewRouter(cfg Config) (*gin.Engine, error) {
	if cfg.Assistant == nil {
		return nil, fmt.Errorf("assistant is nil")
	}

	tmpl, err := template.ParseFS(embeddedFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	static, err := fs.Sub(embeddedFS, "static")
	if err != nil {
		return nil, fmt.Errorf("opening static assets: %w", err)
	}

	router := gin.New()
	router.Use(
		middleware.Recover(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.Session(),
	)
	router.SetHTMLTemplate(tmpl)
	router.StaticFS("/static", http.FS(static))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	pages := handler.NewPages(cfg.Assistant, cfg.Animations, cfg.MaxUploadBytes)
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/"+domain.ModeChat.Slug())
	})
	for _, mode := range domain.Modes() {
		path := "/" + mode.Slug()
		router.GET(path, pages.Show(mode))
		router.POST(path, pages.Submit(mode))
	}
	router.POST("/"+domain.ModeChat.Slug()+"/clear", pages.ClearChat)

	modes := handler.NewModes(cfg.Assistant, cfg.MaxUploadBytes)
	v1 := router.Group("/api/v1")
	{
		v1.GET("/modes", modes.List)
		v1.POST("/modes/:mode", modes.Submit)
		v1.GET("/chat/history", modes.History)
		v1.DELETE("/chat/history", modes.ClearHistory)
	}

	return router, nil
}
