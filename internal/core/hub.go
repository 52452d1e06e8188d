package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// clientCommand pairs a command with the client that issued it, so commands
// from every connection funnel through the single hub loop.
type clientCommand struct {
	client *Client
	cmd    *Command
}

// Hub routes inbound events to registry mutations and outbound deliveries.
// It runs as a single-goroutine actor: the Run loop is the only writer of
// the registry, and recipient sets are computed inside the loop, atomically
// with the mutation that triggered them.
//
// Events that cannot apply (invalid room, empty text, unknown private
// target) are dropped without a reply to the client; the drop is logged so
// an operator can see it. Broken preconditions (duplicate register, command
// from an unknown connection) are logged at error level and do not stop the
// loop.
type Hub struct {
	registry *Registry
	rooms    *RoomDirectory

	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	commands   chan clientCommand
	stopped    chan struct{}

	log zerolog.Logger
}

// NewHub constructs a hub over the given room directory. A nil logger
// disables logging.
func NewHub(rooms *RoomDirectory, logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		registry:   NewRegistry(),
		rooms:      rooms,
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan clientCommand, 64),
		stopped:    make(chan struct{}),
		log:        *logger,
	}
}

// RoomNames returns the configured room list. The directory is immutable,
// so this is safe from any goroutine.
func (h *Hub) RoomNames() []string {
	return h.rooms.Names()
}

// RegisterClient hands a new connection to the hub loop.
func (h *Hub) RegisterClient(c *Client) {
	select {
	case h.register <- c:
	case <-h.stopped:
	}
}

// UnregisterClient removes a connection. Safe to call more than once per
// client and after the hub has stopped.
func (h *Hub) UnregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.stopped:
	}
}

// Run processes register, unregister, and client commands until the context
// is cancelled. It must be running before clients are registered.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.stopped)
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.handleRegister(ctx, c)
		case c := <-h.unregister:
			h.handleUnregister(c)
		case cc := <-h.commands:
			h.dispatch(cc.client, cc.cmd)
		}
	}
}

func (h *Hub) handleRegister(ctx context.Context, c *Client) {
	if err := h.registry.Register(c.ID, c.Name, time.Now()); err != nil {
		h.log.Error().Err(err).Str("conn_id", c.ID).Msg("register rejected")
		return
	}
	h.clients[c.ID] = c
	go h.pump(ctx, c)
	h.broadcastPresence()
	h.log.Info().Str("conn_id", c.ID).Str("user", c.Name).Int("online", h.registry.Len()).Msg("user connected")
}

func (h *Hub) handleUnregister(c *Client) {
	conn, ok := h.registry.Unregister(c.ID)
	if !ok {
		// Disconnects are idempotent: a second report is a no-op and emits
		// no presence update.
		return
	}
	delete(h.clients, c.ID)
	close(c.done)
	close(c.Events)
	h.broadcastPresence()
	h.log.Info().Str("conn_id", c.ID).Str("user", conn.DisplayName).Int("online", h.registry.Len()).Msg("user disconnected")
}

// pump forwards one client's commands into the hub loop. It exits when the
// client is unregistered or the hub stops.
func (h *Hub) pump(ctx context.Context, c *Client) {
	for {
		select {
		case cmd := <-c.Commands:
			select {
			case h.commands <- clientCommand{client: c, cmd: cmd}:
			case <-c.done:
				return
			case <-ctx.Done():
				return
			}
		case <-c.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) dispatch(c *Client, cmd *Command) {
	if _, ok := h.registry.Lookup(c.ID); !ok {
		// Command raced with a disconnect; the connection is gone.
		h.log.Debug().Str("conn_id", c.ID).Msg("command from unregistered connection dropped")
		return
	}
	switch cmd.Kind {
	case CommandJoinRoom:
		h.handleJoin(c, cmd.Room)
	case CommandLeaveRoom:
		h.handleLeave(c, cmd.Room)
	case CommandSendRoomMessage:
		h.handleRoomMessage(c, cmd.Room, cmd.Text)
	case CommandSendPrivateMessage:
		h.handlePrivateMessage(c, cmd.Target, cmd.Text)
	default:
		h.log.Warn().Int("kind", int(cmd.Kind)).Str("conn_id", c.ID).Msg("unknown command kind")
	}
}

func (h *Hub) handleJoin(c *Client, room string) {
	if !h.rooms.IsValid(room) {
		h.log.Warn().Str("user", c.Name).Str("room", room).Msg("join to invalid room dropped")
		return
	}
	// Joining while already in a room overwrites the old value with no
	// leave notice for the old room.
	if err := h.registry.SetRoom(c.ID, room); err != nil {
		h.log.Error().Err(err).Str("conn_id", c.ID).Msg("set room")
		return
	}
	h.deliver(h.registry.MembersOf(room), &Event{
		Kind:      EventRoomStatus,
		Room:      room,
		Status:    StatusJoin,
		Text:      fmt.Sprintf("%s has joined the room.", c.Name),
		Timestamp: time.Now(),
	})
	h.log.Info().Str("user", c.Name).Str("room", room).Msg("user joined room")
}

func (h *Hub) handleLeave(c *Client, room string) {
	// Clear before computing recipients: the leave notice goes to the
	// members left after the leaver's room field is gone, so the leaver
	// never receives it.
	if err := h.registry.ClearRoom(c.ID); err != nil {
		h.log.Error().Err(err).Str("conn_id", c.ID).Msg("clear room")
		return
	}
	h.deliver(h.registry.MembersOf(room), &Event{
		Kind:      EventRoomStatus,
		Room:      room,
		Status:    StatusLeave,
		Text:      fmt.Sprintf("%s has left the room.", c.Name),
		Timestamp: time.Now(),
	})
	h.log.Info().Str("user", c.Name).Str("room", room).Msg("user left room")
}

func (h *Hub) handleRoomMessage(c *Client, room, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		h.log.Debug().Str("user", c.Name).Msg("empty message dropped")
		return
	}
	if !h.rooms.IsValid(room) {
		h.log.Warn().Str("user", c.Name).Str("room", room).Msg("message to invalid room dropped")
		return
	}
	h.deliver(h.registry.MembersOf(room), &Event{
		Kind:      EventRoomMessage,
		Room:      room,
		From:      c.Name,
		Text:      text,
		Timestamp: time.Now(),
	})
	h.log.Info().Str("user", c.Name).Str("room", room).Msg("message sent")
}

func (h *Hub) handlePrivateMessage(c *Client, target, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		h.log.Debug().Str("user", c.Name).Msg("empty private message dropped")
		return
	}
	if target == "" {
		h.log.Debug().Str("user", c.Name).Msg("private message without target dropped")
		return
	}
	id, ok := h.registry.FindByDisplayName(target)
	if !ok {
		h.log.Warn().Str("from", c.Name).Str("target", target).Msg("private message target not found")
		return
	}
	h.deliver([]string{id}, &Event{
		Kind:      EventPrivateMessage,
		From:      c.Name,
		To:        target,
		Text:      text,
		Timestamp: time.Now(),
	})
	h.log.Info().Str("from", c.Name).Str("to", target).Msg("private message sent")
}

func (h *Hub) broadcastPresence() {
	h.deliver(h.registry.IDs(), &Event{
		Kind:  EventPresence,
		Users: h.registry.DisplayNames(),
	})
}

// deliver sends an event to each recipient that still has a live client.
// Sends never block; a recipient with a full buffer misses the event.
func (h *Hub) deliver(ids []string, ev *Event) {
	for _, id := range ids {
		c, ok := h.clients[id]
		if !ok {
			continue
		}
		select {
		case c.Events <- ev:
		default:
			h.log.Warn().Str("conn_id", id).Msg("slow consumer, event dropped")
		}
	}
}
