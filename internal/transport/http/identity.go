package http

import (
	stdhttp "net/http"

	"github.com/chommie/chommie-server/internal/session"
)

// displayNameFromRequest extracts the display name from the session cookie.
// Returns "" when the cookie is absent or fails validation.
func displayNameFromRequest(r *stdhttp.Request, sessions *session.Service) string {
	cookie, err := r.Cookie(session.CookieName)
	if err != nil {
		return ""
	}
	claims, err := sessions.Validate(cookie.Value)
	if err != nil {
		return ""
	}
	return claims.Username
}
