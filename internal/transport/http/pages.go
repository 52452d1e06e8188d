package http

import (
	stdhttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/chommie/chommie-server/internal/core"
	"github.com/chommie/chommie-server/internal/session"
)

// PageHandlers serves the chat page and the read-only room list.
type PageHandlers struct {
	hub      *core.Hub
	sessions *session.Service
	ttl      time.Duration
	log      *zerolog.Logger
}

// NewPageHandlers creates the page handlers.
func NewPageHandlers(hub *core.Hub, sessions *session.Service, ttl time.Duration, logger *zerolog.Logger) *PageHandlers {
	return &PageHandlers{hub: hub, sessions: sessions, ttl: ttl, log: logger}
}

// Index renders the chat page. A visitor without a valid session cookie
// gets a fresh guest name signed into one.
// GET /
func (h *PageHandlers) Index(c *gin.Context) {
	name := displayNameFromRequest(c.Request, h.sessions)
	if name == "" {
		name = session.GuestName(time.Now())
		token, err := h.sessions.Issue(name)
		if err != nil {
			h.log.Error().Err(err).Msg("failed to issue session token")
			c.String(stdhttp.StatusInternalServerError, "internal server error")
			return
		}
		c.SetCookie(session.CookieName, token, int(h.ttl.Seconds()), "/", "", false, true)
		h.log.Info().Str("user", name).Msg("new guest session created")
	}

	c.HTML(stdhttp.StatusOK, "index.html", gin.H{
		"Username": name,
		"Rooms":    h.hub.RoomNames(),
	})
}

// Rooms returns the configured room list.
// GET /api/rooms
func (h *PageHandlers) Rooms(c *gin.Context) {
	c.JSON(stdhttp.StatusOK, gin.H{"rooms": h.hub.RoomNames()})
}
