package session

import (
	"fmt"

	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"

	"github.com/genricoloni/mprisbar/internal/bus"
	"github.com/genricoloni/mprisbar/internal/config"
	"github.com/genricoloni/mprisbar/internal/domain"
)

// Snapshot fetches the bound player's displayable state. It returns either
// a fully populated PlayerInfo or nil ("no data"), never a partial value.
// The first field failure aborts the whole snapshot with a QueryError; the
// next triggered pass simply retries.
func (s *Session) Snapshot() (*domain.PlayerInfo, error) {
	s.mu.Lock()
	connected, name, busName := s.connected, s.name, s.busName
	s.mu.Unlock()

	if !connected {
		s.logger.Debug("no player bound", zap.String("target", s.cfg.Player))
		return nil, nil
	}

	statusVar, err := s.bus.GetProperty(busName, bus.ObjectPath, bus.PlayerInterface+".PlaybackStatus")
	if err != nil {
		return nil, &domain.QueryError{Player: name, Field: "PlaybackStatus", Err: err}
	}
	rawStatus, _ := statusVar.Value().(string)
	status := parseStatus(rawStatus)

	// the aggregate target follows whichever player was active last, so
	// the display name is re-resolved on every fetch
	display := name
	if s.cfg.Player == config.AggregateTarget {
		players, err := s.dir.ListActivePlayers()
		if err != nil {
			return nil, err
		}
		if len(players) > 0 {
			display = players[0]
		}
	}

	if s.cfg.IsIgnored(display) {
		s.logger.Warn("ignoring player update", zap.String("player", display))
		return nil, nil
	}

	info := &domain.PlayerInfo{
		Name:         display,
		Status:       status,
		StatusString: statusToken(status),
	}

	metaVar, err := s.bus.GetProperty(busName, bus.ObjectPath, bus.PlayerInterface+".Metadata")
	if err != nil {
		return nil, &domain.QueryError{Player: display, Field: "Metadata", Err: err}
	}
	meta, ok := metaVar.Value().(map[string]dbus.Variant)
	if !ok {
		return nil, &domain.QueryError{
			Player: display,
			Field:  "Metadata",
			Err:    fmt.Errorf("unexpected shape %T", metaVar.Value()),
		}
	}

	if info.Artist, err = metadataString(meta, "xesam:artist"); err != nil {
		return nil, &domain.QueryError{Player: display, Field: "xesam:artist", Err: err}
	}
	if info.Album, err = metadataString(meta, "xesam:album"); err != nil {
		return nil, &domain.QueryError{Player: display, Field: "xesam:album", Err: err}
	}
	if info.Title, err = metadataString(meta, "xesam:title"); err != nil {
		return nil, &domain.QueryError{Player: display, Field: "xesam:title", Err: err}
	}
	info.Length = formatLength(metadataMicros(meta, "mpris:length"))

	s.logger.Debug("snapshot fetched",
		zap.String("player", info.Name),
		zap.String("status", info.StatusString),
		zap.String("artist", info.Artist),
		zap.String("album", info.Album),
		zap.String("title", info.Title),
		zap.String("length", info.Length))
	return info, nil
}

// statusToken is the lowercase single-token form of the status
func statusToken(status domain.PlaybackStatus) string {
	switch status {
	case domain.StatusPlaying:
		return "playing"
	case domain.StatusPaused:
		return "paused"
	default:
		return "stopped"
	}
}
