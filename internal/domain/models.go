package domain

// PlaybackStatus represents the current state of the media player
type PlaybackStatus string

const (
	// StatusPlaying indicates the media is currently playing
	StatusPlaying PlaybackStatus = "Playing"
	// StatusPaused indicates the media is paused
	StatusPaused PlaybackStatus = "Paused"
	// StatusStopped indicates the media is stopped
	StatusStopped PlaybackStatus = "Stopped"
)

// PlayerInfo is an immutable snapshot of one player's displayable state,
// rebuilt from scratch on every refresh pass. The optional fields use the
// empty string as the absent value; the fetch step guarantees they are
// either trimmed non-empty strings or absent.
type PlayerInfo struct {
	// Name is the resolved concrete player identifier (e.g. "spotify")
	Name string
	// Status is the current playback status
	Status PlaybackStatus
	// StatusString is the lowercase token for Status, one of
	// "playing", "paused" or "stopped"
	StatusString string
	// Artist of the current track, absent when empty
	Artist string
	// Album of the current track, absent when empty
	Album string
	// Title of the current track, absent when empty
	Title string
	// Length is the preformatted track duration ("H:MM:SS" or "MM:SS"),
	// absent when the player reports no positive duration
	Length string
}

// ClickButton identifies the mouse button of a host click event
type ClickButton int

const (
	// ClickPrimary is the left mouse button
	ClickPrimary ClickButton = 1
	// ClickMiddle is the middle mouse button
	ClickMiddle ClickButton = 2
	// ClickSecondary is the right mouse button
	ClickSecondary ClickButton = 3
)

// PlayerEvent is a typed player signal decoded from the bus, delivered to
// the dispatch loop instead of mutating shared state from callback context
type PlayerEvent int

const (
	// EventPlay means playback started
	EventPlay PlayerEvent = iota + 1
	// EventPause means playback paused
	EventPause
	// EventStop means playback stopped
	EventStop
	// EventMetadata means track metadata changed
	EventMetadata
)

func (e PlayerEvent) String() string {
	switch e {
	case EventPlay:
		return "play"
	case EventPause:
		return "pause"
	case EventStop:
		return "stop"
	case EventMetadata:
		return "metadata"
	default:
		return "unknown"
	}
}
