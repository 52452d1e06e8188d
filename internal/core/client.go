package core

// Client is a chat participant as seen by the core layer. The transport
// writes commands into Commands and drains Events; the hub owns everything
// else, including closing Events and done on unregister.
type Client struct {
	ID       string
	Name     string
	Commands chan *Command
	Events   chan *Event

	done chan struct{}
}

// NewClient constructs a client with initialized channels.
func NewClient(id, name string) *Client {
	if name == "" {
		name = id
	}
	return &Client{
		ID:       id,
		Name:     name,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 16),
		done:     make(chan struct{}),
	}
}
