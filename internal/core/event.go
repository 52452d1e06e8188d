package core

import "time"

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventPresence carries a full display-name snapshot; broadcast to
	// everyone whenever a connection arrives or goes away.
	EventPresence EventKind = iota
	// EventRoomStatus notifies room members about a join or leave.
	EventRoomStatus
	// EventRoomMessage is a chat message scoped to one room.
	EventRoomMessage
	// EventPrivateMessage is delivered to exactly one connection.
	EventPrivateMessage
)

// RoomStatus subtypes.
const (
	StatusJoin  = "join"
	StatusLeave = "leave"
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind      EventKind
	Users     []string // EventPresence
	Room      string
	Status    string // EventRoomStatus: StatusJoin or StatusLeave
	Text      string
	From      string
	To        string
	Timestamp time.Time
}
