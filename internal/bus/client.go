package bus

import (
	"github.com/Pauloo27/go-mpris"
	"github.com/godbus/dbus/v5"
)

const (
	// NamePrefix is the well-known bus name prefix shared by all players
	NamePrefix = "org.mpris.MediaPlayer2."
	// ObjectPath is the object path every player exports
	ObjectPath = "/org/mpris/MediaPlayer2"
	// PlayerInterface carries playback state and transport controls
	PlayerInterface = "org.mpris.MediaPlayer2.Player"
	// PropertiesInterface is the standard D-Bus properties interface
	PropertiesInterface = "org.freedesktop.DBus.Properties"

	// PropertiesChangedSignal is emitted when player state or metadata changes
	PropertiesChangedSignal = "org.freedesktop.DBus.Properties.PropertiesChanged"
	// NameOwnerChangedSignal is emitted when any bus name appears or vanishes
	NameOwnerChangedSignal = "org.freedesktop.DBus.NameOwnerChanged"
)

// Client defines the session bus operations the cell needs.
// This abstraction allows us to mock the bus in tests.
//
//go:generate mockgen -destination=mocks/client_mock.go -package=mocks github.com/genricoloni/mprisbar/internal/bus Client
type Client interface {
	// Close closes the bus connection
	Close() error

	// ListNames returns all names on the bus
	ListNames() ([]string, error)

	// GetNameOwner returns the unique name owning the given well-known name
	GetNameOwner(name string) (string, error)

	// NameHasOwner reports whether the given name is currently owned
	NameHasOwner(name string) (bool, error)

	// GetProperty retrieves a property from a D-Bus object
	GetProperty(dest, path, prop string) (dbus.Variant, error)

	// AddMatchSignal adds a signal match rule
	AddMatchSignal(options ...dbus.MatchOption) error

	// RemoveMatchSignal removes a previously added match rule
	RemoveMatchSignal(options ...dbus.MatchOption) error

	// Signal registers a channel to receive bus signals
	Signal(ch chan<- *dbus.Signal)

	// RemoveSignal unregisters a signal channel
	RemoveSignal(ch chan<- *dbus.Signal)

	// PlayPause toggles playback on the named player
	PlayPause(name string) error

	// Previous skips to the previous track on the named player
	Previous(name string) error

	// Next skips to the next track on the named player
	Next(name string) error
}

// SessionClient is the real implementation on a private session bus
// connection, with transport commands going through go-mpris
type SessionClient struct {
	conn *dbus.Conn
}

// Connect opens a private connection to the session bus
func Connect() (*SessionClient, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, err
	}
	return &SessionClient{conn: conn}, nil
}

// Close closes the bus connection
func (c *SessionClient) Close() error {
	return c.conn.Close()
}

// ListNames returns all names on the bus
func (c *SessionClient) ListNames() ([]string, error) {
	var names []string
	err := c.conn.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names)
	return names, err
}

// GetNameOwner returns the unique name owning the given well-known name
func (c *SessionClient) GetNameOwner(name string) (string, error) {
	var owner string
	err := c.conn.BusObject().Call("org.freedesktop.DBus.GetNameOwner", 0, name).Store(&owner)
	return owner, err
}

// NameHasOwner reports whether the given name is currently owned
func (c *SessionClient) NameHasOwner(name string) (bool, error) {
	var has bool
	err := c.conn.BusObject().Call("org.freedesktop.DBus.NameHasOwner", 0, name).Store(&has)
	return has, err
}

// GetProperty retrieves a property from a D-Bus object
func (c *SessionClient) GetProperty(dest, path, prop string) (dbus.Variant, error) {
	obj := c.conn.Object(dest, dbus.ObjectPath(path))
	return obj.GetProperty(prop)
}

// AddMatchSignal adds a signal match rule
func (c *SessionClient) AddMatchSignal(options ...dbus.MatchOption) error {
	return c.conn.AddMatchSignal(options...)
}

// RemoveMatchSignal removes a previously added match rule
func (c *SessionClient) RemoveMatchSignal(options ...dbus.MatchOption) error {
	return c.conn.RemoveMatchSignal(options...)
}

// Signal registers a channel to receive bus signals
func (c *SessionClient) Signal(ch chan<- *dbus.Signal) {
	c.conn.Signal(ch)
}

// RemoveSignal unregisters a signal channel
func (c *SessionClient) RemoveSignal(ch chan<- *dbus.Signal) {
	c.conn.RemoveSignal(ch)
}

// PlayPause toggles playback on the named player
func (c *SessionClient) PlayPause(name string) error {
	return mpris.New(c.conn, name).PlayPause()
}

// Previous skips to the previous track on the named player
func (c *SessionClient) Previous(name string) error {
	return mpris.New(c.conn, name).Previous()
}

// Next skips to the next track on the named player
func (c *SessionClient) Next(name string) error {
	return mpris.New(c.conn, name).Next()
}
