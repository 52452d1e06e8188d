package session

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// GuestName returns a display name for an anonymous visitor: "Guest"
// followed by the wall-clock HHMM and four random digits. Collisions are
// possible but astronomically rare within one minute.
func GuestName(now time.Time) string {
	return fmt.Sprintf("Guest%s%04d", now.Format("1504"), rand.IntN(10000))
}
