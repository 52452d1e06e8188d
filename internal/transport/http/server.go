package http

import (
	"embed"
	"html/template"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/chommie/chommie-server/internal/config"
	"github.com/chommie/chommie-server/internal/core"
	"github.com/chommie/chommie-server/internal/session"
)

//go:embed templates/index.html
var templatesFS embed.FS

// NewServer builds the HTTP server: index page, health probe, room list,
// and the WebSocket endpoint.
func NewServer(hub *core.Hub, sessions *session.Service, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/index.html")))

	pages := NewPageHandlers(hub, sessions, cfg.SessionTTL, logger)
	router.GET("/", pages.Index)
	router.GET("/health", healthHandler)
	router.GET("/api/rooms", pages.Rooms)

	router.GET("/ws", gin.WrapH(NewWSHandler(hub, sessions, cfg.MessageRateLimit, logger)))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
