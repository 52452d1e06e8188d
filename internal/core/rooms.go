package core

// RoomDirectory is the fixed set of valid room names, loaded once at startup
// and never mutated afterwards, so reads need no locking.
type RoomDirectory struct {
	names []string
	valid map[string]struct{}
}

// NewRoomDirectory builds a directory from the configured room list,
// preserving order.
func NewRoomDirectory(names []string) *RoomDirectory {
	d := &RoomDirectory{
		names: make([]string, 0, len(names)),
		valid: make(map[string]struct{}, len(names)),
	}
	for _, name := range names {
		if _, seen := d.valid[name]; seen {
			continue
		}
		d.names = append(d.names, name)
		d.valid[name] = struct{}{}
	}
	return d
}

// IsValid reports whether the room is in the directory.
func (d *RoomDirectory) IsValid(room string) bool {
	_, ok := d.valid[room]
	return ok
}

// Names returns the room names in configured order.
func (d *RoomDirectory) Names() []string {
	names := make([]string, len(d.names))
	copy(names, d.names)
	return names
}
