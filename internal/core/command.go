package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinRoom subscribes the client to a room.
	CommandJoinRoom CommandKind = iota
	// CommandLeaveRoom unsubscribes the client from a room.
	CommandLeaveRoom
	// CommandSendRoomMessage delivers a chat message to room members.
	CommandSendRoomMessage
	// CommandSendPrivateMessage delivers a message to a single user,
	// addressed by display name.
	CommandSendPrivateMessage
)

// Command represents an action requested by a client.
type Command struct {
	Kind   CommandKind
	Room   string
	Text   string
	Target string // display name, private messages only
}
