package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"

	"github.com/genricoloni/mprisbar/internal/bus"
	"github.com/genricoloni/mprisbar/internal/config"
	"github.com/genricoloni/mprisbar/internal/domain"
)

// ErrNotConnected is returned by transport commands when no player is bound
var ErrNotConnected = errors.New("no player bound")

// Session owns the connection to one concrete player: a two-state machine
// (disconnected/connected). It is created disconnected and binds lazily on
// the first refresh pass that needs a snapshot.
type Session struct {
	logger *zap.Logger
	bus    bus.Client
	dir    domain.Directory
	cfg    *config.Config

	mu        sync.Mutex
	connected bool
	name      string // short name of the bound player
	busName   string // well-known bus name of the bound player
	owner     string // unique bus name of the bound player
}

// New creates a disconnected session for the configured target
func New(logger *zap.Logger, client bus.Client, dir domain.Directory, cfg *config.Config) *Session {
	return &Session{
		logger: logger,
		bus:    client,
		dir:    dir,
		cfg:    cfg,
	}
}

// EnsureConnected resolves the configured target to a running player and
// binds to it: the unique owner is recorded and a per-sender match rule for
// its state signals is installed. No-op when already connected. On any
// failure the session stays fully disconnected.
func (s *Session) EnsureConnected() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected {
		return nil
	}

	name := s.cfg.Player
	if name == config.AggregateTarget {
		players, err := s.dir.ListActivePlayers()
		if err != nil {
			return &domain.ConnectionError{Target: s.cfg.Player, Err: err}
		}
		if len(players) == 0 {
			return &domain.ConnectionError{Target: s.cfg.Player, Err: errors.New("no running players")}
		}
		name = players[0]
	}

	busName := bus.NamePrefix + name
	owner, err := s.bus.GetNameOwner(busName)
	if err != nil {
		return &domain.ConnectionError{Target: name, Err: err}
	}

	if err := s.bus.AddMatchSignal(s.matchOptions(busName)...); err != nil {
		return &domain.ConnectionError{Target: name, Err: err}
	}

	s.connected = true
	s.name = name
	s.busName = busName
	s.owner = owner
	s.logger.Debug("player bound",
		zap.String("player", name), zap.String("owner", owner))
	return nil
}

// Invalidate releases the bound player: the match rule is removed and the
// handle dropped. The next refresh pass reconnects from scratch. Idempotent.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return
	}
	if err := s.bus.RemoveMatchSignal(s.matchOptions(s.busName)...); err != nil {
		s.logger.Debug("cannot remove match rule",
			zap.String("player", s.name), zap.Error(err))
	}
	s.logger.Debug("player released", zap.String("player", s.name))
	s.connected = false
	s.name = ""
	s.busName = ""
	s.owner = ""
}

// Connected reports whether a player is currently bound
func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// BoundName returns the short name of the bound player, or ""
func (s *Session) BoundName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// OwnsSender reports whether a signal sender belongs to the bound player
func (s *Session) OwnsSender(sender string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected || sender == "" {
		return false
	}
	return sender == s.owner || sender == s.busName
}

func (s *Session) matchOptions(busName string) []dbus.MatchOption {
	return []dbus.MatchOption{
		dbus.WithMatchSender(busName),
		dbus.WithMatchObjectPath(bus.ObjectPath),
		dbus.WithMatchInterface(bus.PropertiesInterface),
		dbus.WithMatchMember("PropertiesChanged"),
	}
}

// PlayPause toggles playback on the bound player
func (s *Session) PlayPause() error {
	busName, err := s.boundBusName()
	if err != nil {
		return err
	}
	return s.bus.PlayPause(busName)
}

// Previous skips to the previous track on the bound player
func (s *Session) Previous() error {
	busName, err := s.boundBusName()
	if err != nil {
		return err
	}
	return s.bus.Previous(busName)
}

// Next skips to the next track on the bound player
func (s *Session) Next() error {
	busName, err := s.boundBusName()
	if err != nil {
		return err
	}
	return s.bus.Next(busName)
}

func (s *Session) boundBusName() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return "", ErrNotConnected
	}
	return s.busName, nil
}

// DecodeSignal classifies a PropertiesChanged signal into a typed player
// event. Status changes win over metadata when both arrive in one signal;
// the refresh pass refetches everything anyway.
func DecodeSignal(sig *dbus.Signal) (domain.PlayerEvent, bool) {
	if sig == nil || sig.Name != bus.PropertiesChangedSignal || len(sig.Body) < 2 {
		return 0, false
	}
	iface, ok := sig.Body[0].(string)
	if !ok || iface != bus.PlayerInterface {
		return 0, false
	}
	changed, ok := sig.Body[1].(map[string]dbus.Variant)
	if !ok {
		return 0, false
	}

	if v, ok := changed["PlaybackStatus"]; ok {
		if status, ok := v.Value().(string); ok {
			switch domain.PlaybackStatus(status) {
			case domain.StatusPlaying:
				return domain.EventPlay, true
			case domain.StatusPaused:
				return domain.EventPause, true
			case domain.StatusStopped:
				return domain.EventStop, true
			}
		}
	}
	if _, ok := changed["Metadata"]; ok {
		return domain.EventMetadata, true
	}
	return 0, false
}

// parseStatus maps the raw status text to the enum, defaulting to Stopped
// for anything a non-compliant player might report
func parseStatus(raw string) domain.PlaybackStatus {
	switch domain.PlaybackStatus(raw) {
	case domain.StatusPlaying:
		return domain.StatusPlaying
	case domain.StatusPaused:
		return domain.StatusPaused
	default:
		return domain.StatusStopped
	}
}

// metadataString extracts a trimmed string entry from the metadata map.
// A missing entry is absent (""), a malformed one is an error.
func metadataString(meta map[string]dbus.Variant, key string) (string, error) {
	v, ok := meta[key]
	if !ok {
		return "", nil
	}
	switch value := v.Value().(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(value), nil
	case []string:
		return strings.TrimSpace(strings.Join(value, ", ")), nil
	default:
		return "", fmt.Errorf("unexpected type %T", value)
	}
}

// metadataMicros extracts an integer microsecond entry, tolerating the
// numeric types different players put on the wire. Anything unparsable
// counts as zero, which omits the field.
func metadataMicros(meta map[string]dbus.Variant, key string) int64 {
	v, ok := meta[key]
	if !ok {
		return 0
	}
	switch value := v.Value().(type) {
	case int64:
		return value
	case uint64:
		return int64(value)
	case int32:
		return int64(value)
	case uint32:
		return int64(value)
	case int:
		return int64(value)
	case float64:
		return int64(value)
	default:
		return 0
	}
}

// formatLength renders a microsecond duration as "H:MM:SS" (hours > 0) or
// "MM:SS", all components zero-padded. Non-positive durations yield ""
// so the field is omitted.
func formatLength(micros int64) string {
	if micros <= 0 {
		return ""
	}
	total := micros / 1_000_000
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
