package directory

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/genricoloni/mprisbar/internal/bus"
	"github.com/genricoloni/mprisbar/internal/domain"
)

// Directory tracks the players present on the bus and the order in which
// they were last active. Listing is a pure bus query; the recency register
// is fed by the owner watcher and by activity touches, so most-recently
// active players sort first even without a playerctld daemon around.
type Directory struct {
	logger *zap.Logger
	bus    bus.Client

	mu     sync.Mutex
	owners map[string]string // unique bus name (:1.45) -> short player name
	recent []string          // short player names, most recently active first
}

// New creates a directory over the given bus client
func New(logger *zap.Logger, client bus.Client) *Directory {
	return &Directory{
		logger: logger,
		bus:    client,
		owners: make(map[string]string),
	}
}

// Bootstrap scans the bus for players that were already running when we
// connected and records their owners. Failures for individual players are
// logged and skipped.
func (d *Directory) Bootstrap() error {
	names, err := d.bus.ListNames()
	if err != nil {
		return &domain.DirectoryError{Err: err}
	}

	count := 0
	for _, name := range names {
		if !strings.HasPrefix(name, bus.NamePrefix) {
			continue
		}
		count++
		short := strings.TrimPrefix(name, bus.NamePrefix)
		owner, err := d.bus.GetNameOwner(name)
		if err != nil {
			d.logger.Warn("cannot resolve player owner",
				zap.String("player", short), zap.Error(err))
			continue
		}
		d.mu.Lock()
		d.owners[owner] = short
		d.appendLocked(short)
		d.mu.Unlock()
		d.logger.Debug("detected running player",
			zap.String("player", short), zap.String("owner", owner))
	}

	d.logger.Info("player scan complete", zap.Int("count", count))
	return nil
}

// ListActivePlayers returns the short names of all running players, most
// recently active first. Players without recorded activity keep their bus
// listing order at the end.
func (d *Directory) ListActivePlayers() ([]string, error) {
	names, err := d.bus.ListNames()
	if err != nil {
		return nil, &domain.DirectoryError{Err: err}
	}

	running := make(map[string]bool)
	var unordered []string
	for _, name := range names {
		if !strings.HasPrefix(name, bus.NamePrefix) {
			continue
		}
		short := strings.TrimPrefix(name, bus.NamePrefix)
		running[short] = true
		unordered = append(unordered, short)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	players := make([]string, 0, len(unordered))
	seen := make(map[string]bool)
	for _, short := range d.recent {
		if running[short] && !seen[short] {
			players = append(players, short)
			seen[short] = true
		}
	}
	for _, short := range unordered {
		if !seen[short] {
			players = append(players, short)
			seen[short] = true
		}
	}
	return players, nil
}

// HandleOwnerChange updates the owner register for an appearance, vanish
// or owner transfer of the given bus name. Non-player names are ignored.
func (d *Directory) HandleOwnerChange(name, oldOwner, newOwner string) {
	if !strings.HasPrefix(name, bus.NamePrefix) {
		return
	}
	short := strings.TrimPrefix(name, bus.NamePrefix)

	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case oldOwner == "" && newOwner != "":
		d.owners[newOwner] = short
		d.touchLocked(short)
	case newOwner == "" && oldOwner != "":
		delete(d.owners, oldOwner)
		d.removeLocked(short)
	default:
		delete(d.owners, oldOwner)
		d.owners[newOwner] = short
	}
}

// TouchOwner moves the player owning the given unique bus name to the
// front of the recency order. Unknown senders are ignored.
func (d *Directory) TouchOwner(unique string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	short, ok := d.owners[unique]
	if !ok {
		return
	}
	d.touchLocked(short)
}

// OwnerName resolves a unique bus name to the short player name
func (d *Directory) OwnerName(unique string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	short, ok := d.owners[unique]
	return short, ok
}

func (d *Directory) touchLocked(short string) {
	d.removeLocked(short)
	d.recent = append([]string{short}, d.recent...)
}

func (d *Directory) appendLocked(short string) {
	for _, name := range d.recent {
		if name == short {
			return
		}
	}
	d.recent = append(d.recent, short)
}

func (d *Directory) removeLocked(short string) {
	for i, name := range d.recent {
		if name == short {
			d.recent = append(d.recent[:i], d.recent[i+1:]...)
			return
		}
	}
}
