package domain

// Directory tracks which players are on the bus and how recently each one
// was active. Listing is a pure query; the ordering register is fed by the
// bus-wide owner watcher
type Directory interface {
	// Bootstrap scans the bus for players that were already running
	// when we connected and records their owners
	Bootstrap() error

	// ListActivePlayers returns the short names of all running players,
	// most recently active first
	ListActivePlayers() ([]string, error)

	// HandleOwnerChange updates the owner register for an appearance,
	// vanish or owner transfer of the given bus name
	HandleOwnerChange(name, oldOwner, newOwner string)

	// TouchOwner moves the player owning the given unique bus name to
	// the front of the recency order
	TouchOwner(unique string)

	// OwnerName resolves a unique bus name to the short player name,
	// reporting whether the owner is a known player
	OwnerName(unique string) (string, bool)
}

// Session owns the connection to one concrete player. It is a two-state
// machine (disconnected/connected) driven by the refresh passes and the
// appearance/vanish events
type Session interface {
	// EnsureConnected resolves the configured target to a running player
	// and binds to it. It is a no-op when already connected
	EnsureConnected() error

	// Invalidate releases the bound player and its subscription. The next
	// refresh pass reconnects from scratch
	Invalidate()

	// Connected reports whether a player is currently bound
	Connected() bool

	// BoundName returns the short name of the bound player, or ""
	BoundName() string

	// OwnsSender reports whether a signal sender belongs to the bound player
	OwnsSender(sender string) bool

	// Snapshot fetches the player state. It returns either a fully
	// populated PlayerInfo or nil ("no data"), never a partial value
	Snapshot() (*PlayerInfo, error)

	// PlayPause toggles playback on the bound player
	PlayPause() error
	// Previous skips to the previous track on the bound player
	Previous() error
	// Next skips to the next track on the bound player
	Next() error
}

// Renderer turns a snapshot into the markup text of the cell
type Renderer interface {
	// Render picks the template for the snapshot's status and substitutes
	// its placeholders. A direct placeholder referencing an absent field
	// fails with a TemplateError
	Render(info *PlayerInfo) (string, error)
}

// Host is the text-rendering surface the cell is published to
type Host interface {
	// SetText replaces the cell's markup text
	SetText(markup string)

	// SetVisible shows or hides the cell
	SetVisible(visible bool)

	// SwapClass removes the previous style class and adds the current
	// one. Empty names are skipped
	SwapClass(previous, current string)
}
