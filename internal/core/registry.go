package core

import "time"

// Connection is the registry's record of one live transport session.
type Connection struct {
	ID          string
	DisplayName string
	ConnectedAt time.Time
	Room        string // empty until a successful join
}

// Registry maps connection ids to Connections. It is the single source of
// truth for who is online and which room each connection is in; room
// membership is derived from the Room field rather than kept in a separate
// list, so the two can never diverge.
//
// The registry does no locking of its own: the hub loop is its only caller
// at runtime, which serializes every mutation and every membership read.
type Registry struct {
	conns map[string]*Connection
	order []string // connection ids in connect order
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]*Connection)}
}

// Register inserts a new connection with no room. The display name must be
// non-empty; callers fall back to the connection id when nothing better is
// available.
func (r *Registry) Register(id, displayName string, now time.Time) error {
	if _, exists := r.conns[id]; exists {
		return ErrDuplicateConnection
	}
	r.conns[id] = &Connection{
		ID:          id,
		DisplayName: displayName,
		ConnectedAt: now,
	}
	r.order = append(r.order, id)
	return nil
}

// Unregister removes and returns the connection. The second return value is
// false when the id is unknown; the transport may report a disconnect more
// than once, so that case is not an error.
func (r *Registry) Unregister(id string) (Connection, bool) {
	conn, ok := r.conns[id]
	if !ok {
		return Connection{}, false
	}
	delete(r.conns, id)
	for i, other := range r.order {
		if other == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return *conn, true
}

// SetRoom records the connection's current room, overwriting any prior
// value. Validity of the room name is the caller's concern.
func (r *Registry) SetRoom(id, room string) error {
	conn, ok := r.conns[id]
	if !ok {
		return ErrNotFound
	}
	conn.Room = room
	return nil
}

// ClearRoom resets the connection's room to none.
func (r *Registry) ClearRoom(id string) error {
	conn, ok := r.conns[id]
	if !ok {
		return ErrNotFound
	}
	conn.Room = ""
	return nil
}

// Lookup returns a copy of the connection's record.
func (r *Registry) Lookup(id string) (Connection, bool) {
	conn, ok := r.conns[id]
	if !ok {
		return Connection{}, false
	}
	return *conn, true
}

// IDs returns all connection ids in connect order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// DisplayNames returns a point-in-time snapshot of every display name, in
// connect order, for presence broadcasts.
func (r *Registry) DisplayNames() []string {
	names := make([]string, 0, len(r.order))
	for _, id := range r.order {
		names = append(names, r.conns[id].DisplayName)
	}
	return names
}

// MembersOf returns the ids of every connection currently in the room, in
// connect order.
func (r *Registry) MembersOf(room string) []string {
	var ids []string
	for _, id := range r.order {
		if r.conns[id].Room == room {
			ids = append(ids, id)
		}
	}
	return ids
}

// FindByDisplayName returns the id of the first connection, in connect
// order, whose display name matches. Display names are not guaranteed
// unique, so this lookup is best-effort: with duplicates the earliest
// connection wins.
func (r *Registry) FindByDisplayName(name string) (string, bool) {
	for _, id := range r.order {
		if r.conns[id].DisplayName == name {
			return id, true
		}
	}
	return "", false
}

// Len returns the number of registered connections.
func (r *Registry) Len() int {
	return len(r.conns)
}
