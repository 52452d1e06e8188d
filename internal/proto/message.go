package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoin  = "join"
	InboundTypeLeave = "leave"
	InboundTypeMsg   = "msg"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	// Outbound event names.
	EventActiveUsers    = "activeUsers"
	EventStatus         = "status"
	EventMessage        = "message"
	EventPrivateMessage = "privateMessage"

	// Msg type discriminators.
	MsgTypeMessage = "message"
	MsgTypePrivate = "private"
)

// JoinData requests to join or leave a specific room.
type JoinData struct {
	Room string `json:"room"`
}

// MsgData is a chat message from the client. Room defaults server-side when
// omitted; Target is only meaningful for private messages.
type MsgData struct {
	Room   string `json:"room,omitempty"`
	Type   string `json:"type,omitempty"`
	Msg    string `json:"msg"`
	Target string `json:"target,omitempty"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// ActiveUsersData is the presence snapshot broadcast to every connection.
type ActiveUsersData struct {
	Users []string `json:"users"`
}

// StatusData announces a join or leave to room members.
type StatusData struct {
	Msg       string `json:"msg"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

// MessageData is a room-scoped chat message.
type MessageData struct {
	Msg       string `json:"msg"`
	Username  string `json:"username"`
	Room      string `json:"room"`
	Timestamp string `json:"timestamp"`
}

// PrivateMessageData is delivered to a single recipient.
type PrivateMessageData struct {
	Msg       string `json:"msg"`
	From      string `json:"from"`
	To        string `json:"to"`
	Timestamp string `json:"timestamp"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
