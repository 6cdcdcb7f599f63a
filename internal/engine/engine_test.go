package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"

	"github.com/genricoloni/mprisbar/internal/bus"
	"github.com/genricoloni/mprisbar/internal/config"
	"github.com/genricoloni/mprisbar/internal/domain"
	"github.com/genricoloni/mprisbar/internal/render"
)

// noopBus satisfies bus.Client for tests that never reach the bus
type noopBus struct{}

func (noopBus) Close() error                                            { return nil }
func (noopBus) ListNames() ([]string, error)                            { return nil, nil }
func (noopBus) GetNameOwner(string) (string, error)                     { return "", errors.New("noop") }
func (noopBus) NameHasOwner(string) (bool, error)                       { return false, nil }
func (noopBus) GetProperty(string, string, string) (dbus.Variant, error) {
	return dbus.Variant{}, errors.New("noop")
}
func (noopBus) AddMatchSignal(...dbus.MatchOption) error    { return nil }
func (noopBus) RemoveMatchSignal(...dbus.MatchOption) error { return nil }
func (noopBus) Signal(chan<- *dbus.Signal)                  {}
func (noopBus) RemoveSignal(chan<- *dbus.Signal)            {}
func (noopBus) PlayPause(string) error                      { return nil }
func (noopBus) Previous(string) error                       { return nil }
func (noopBus) Next(string) error                           { return nil }

type fakeDirectory struct {
	mu      sync.Mutex
	touched []string
	changes int
}

func (f *fakeDirectory) Bootstrap() error                     { return nil }
func (f *fakeDirectory) ListActivePlayers() ([]string, error) { return nil, nil }
func (f *fakeDirectory) HandleOwnerChange(name, old, current string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.changes++
}
func (f *fakeDirectory) TouchOwner(unique string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched = append(f.touched, unique)
}
func (f *fakeDirectory) OwnerName(unique string) (string, bool) { return "", false }

type fakeSession struct {
	mu          sync.Mutex
	ensureErr   error
	info        *domain.PlayerInfo
	snapErr     error
	owner       string
	connected   bool
	invalidated int
	playPause   int
	previous    int
	next        int
	cmdErr      error
}

func (s *fakeSession) EnsureConnected() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ensureErr != nil {
		return s.ensureErr
	}
	s.connected = true
	return nil
}

func (s *fakeSession) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidated++
	s.connected = false
}

func (s *fakeSession) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

func (s *fakeSession) BoundName() string { return "spotify" }

func (s *fakeSession) OwnsSender(sender string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sender != "" && sender == s.owner
}

func (s *fakeSession) Snapshot() (*domain.PlayerInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info, s.snapErr
}

func (s *fakeSession) PlayPause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playPause++
	return s.cmdErr
}

func (s *fakeSession) Previous() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.previous++
	return s.cmdErr
}

func (s *fakeSession) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.cmdErr
}

type fakeHost struct {
	mu      sync.Mutex
	texts   []string
	visible []bool
	swaps   [][2]string
}

func (h *fakeHost) SetText(markup string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.texts = append(h.texts, markup)
}

func (h *fakeHost) SetVisible(visible bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.visible = append(h.visible, visible)
}

func (h *fakeHost) SwapClass(previous, current string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.swaps = append(h.swaps, [2]string{previous, current})
}

func (h *fakeHost) lastText() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.texts) == 0 {
		return "", false
	}
	return h.texts[len(h.texts)-1], true
}

func (h *fakeHost) lastVisible() (bool, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.visible) == 0 {
		return false, false
	}
	return h.visible[len(h.visible)-1], true
}

func playingInfo() *domain.PlayerInfo {
	return &domain.PlayerInfo{
		Name:         "spotify",
		Status:       domain.StatusPlaying,
		StatusString: "playing",
		Artist:       "A",
		Album:        "B",
		Title:        "C",
		Length:       "03:21",
	}
}

func newTestEngine(t *testing.T, mutate func(*config.Config), sess *fakeSession) (*Engine, *fakeHost, *fakeDirectory) {
	t.Helper()
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	if mutate != nil {
		mutate(cfg)
	}
	host := &fakeHost{}
	dir := &fakeDirectory{}
	logger := zap.NewNop()
	e := New(logger, cfg, noopBus{}, dir, sess, render.New(logger, cfg), host)
	return e, host, dir
}

func TestRefreshPublishes(t *testing.T) {
	sess := &fakeSession{info: playingInfo()}
	e, host, _ := newTestEngine(t, nil, sess)

	e.refresh(context.Background())

	text, ok := host.lastText()
	if !ok {
		t.Fatal("no text published")
	}
	if text != "spotify (playing): A - B - C [03:21]" {
		t.Errorf("unexpected text: %q", text)
	}
	if visible, _ := host.lastVisible(); !visible {
		t.Error("cell should be visible")
	}
	wantSwaps := [][2]string{{"", "playing"}, {"", "spotify"}}
	if len(host.swaps) != 2 || host.swaps[0] != wantSwaps[0] || host.swaps[1] != wantSwaps[1] {
		t.Errorf("class swaps: want %v, got %v", wantSwaps, host.swaps)
	}
	if e.lastSnapshot() == nil {
		t.Error("snapshot should be cached for the click path")
	}
}

func TestRefreshSwapsClassesOnChange(t *testing.T) {
	sess := &fakeSession{info: playingInfo()}
	e, host, _ := newTestEngine(t, nil, sess)

	e.refresh(context.Background())
	paused := playingInfo()
	paused.Status = domain.StatusPaused
	paused.StatusString = "paused"
	sess.mu.Lock()
	sess.info = paused
	sess.mu.Unlock()
	e.refresh(context.Background())

	last := host.swaps[len(host.swaps)-2]
	if last != [2]string{"playing", "paused"} {
		t.Errorf("status class swap: want [playing paused], got %v", last)
	}
}

func TestRefreshNoData(t *testing.T) {
	sess := &fakeSession{}
	e, host, _ := newTestEngine(t, nil, sess)

	e.refresh(context.Background())

	if visible, ok := host.lastVisible(); !ok || visible {
		t.Error("cell should be hidden when there is no data")
	}
	if _, ok := host.lastText(); ok {
		t.Error("no text should be published without data")
	}
	if e.lastSnapshot() != nil {
		t.Error("no snapshot should be cached")
	}
}

func TestRefreshSnapshotErrorYieldsNoData(t *testing.T) {
	sess := &fakeSession{snapErr: &domain.QueryError{Player: "spotify", Field: "Metadata", Err: errors.New("boom")}}
	e, host, _ := newTestEngine(t, nil, sess)

	e.refresh(context.Background())

	if visible, ok := host.lastVisible(); !ok || visible {
		t.Error("cell should be hidden after a failed snapshot")
	}
	if e.lastSnapshot() != nil {
		t.Error("a failed snapshot must not be cached")
	}
}

func TestRefreshConnectErrorHides(t *testing.T) {
	sess := &fakeSession{ensureErr: &domain.ConnectionError{Target: "spotify", Err: errors.New("gone")}}
	e, host, _ := newTestEngine(t, nil, sess)

	e.refresh(context.Background())

	if visible, ok := host.lastVisible(); !ok || visible {
		t.Error("cell should be hidden when no player can be bound")
	}
}

func TestRefreshStoppedHidesButKeepsSnapshot(t *testing.T) {
	stopped := playingInfo()
	stopped.Status = domain.StatusStopped
	stopped.StatusString = "stopped"
	sess := &fakeSession{info: stopped}
	e, host, _ := newTestEngine(t, nil, sess)

	e.refresh(context.Background())

	if visible, ok := host.lastVisible(); !ok || visible {
		t.Error("cell should be hidden while stopped")
	}
	// clicks still work on a stopped player
	if e.lastSnapshot() == nil {
		t.Error("stopped snapshot should stay available to the click path")
	}
}

func TestRefreshTemplateErrorKeepsPriorOutput(t *testing.T) {
	sess := &fakeSession{info: playingInfo()}
	e, host, _ := newTestEngine(t, func(cfg *config.Config) {
		cfg.Format = "{artist}"
	}, sess)

	e.refresh(context.Background())
	first, ok := host.lastText()
	if !ok || first != "A" {
		t.Fatalf("first pass should publish, got %q", first)
	}

	next := playingInfo()
	next.Artist = ""
	sess.mu.Lock()
	sess.info = next
	sess.mu.Unlock()
	e.refresh(context.Background())

	last, _ := host.lastText()
	if last != first {
		t.Errorf("render failure must keep prior output, got %q", last)
	}
	if visible, _ := host.lastVisible(); !visible {
		t.Error("render failure must not hide the cell")
	}
}

func TestHandleClickWithoutSnapshot(t *testing.T) {
	sess := &fakeSession{}
	e, _, _ := newTestEngine(t, nil, sess)

	if e.HandleClick(domain.ClickPrimary) {
		t.Error("click without snapshot must be unhandled")
	}
	if sess.playPause != 0 {
		t.Error("no command should be issued without a snapshot")
	}
}

func TestHandleClickBuiltins(t *testing.T) {
	sess := &fakeSession{info: playingInfo()}
	e, _, _ := newTestEngine(t, nil, sess)
	e.refresh(context.Background())

	if !e.HandleClick(domain.ClickPrimary) {
		t.Error("primary click should be handled")
	}
	if !e.HandleClick(domain.ClickMiddle) {
		t.Error("middle click should be handled")
	}
	if !e.HandleClick(domain.ClickSecondary) {
		t.Error("secondary click should be handled")
	}
	if sess.playPause != 1 || sess.previous != 1 || sess.next != 1 {
		t.Errorf("builtin commands: play-pause=%d previous=%d next=%d",
			sess.playPause, sess.previous, sess.next)
	}
}

func TestHandleClickOverrideSuppressesBuiltin(t *testing.T) {
	sess := &fakeSession{info: playingInfo()}
	e, _, _ := newTestEngine(t, func(cfg *config.Config) {
		cfg.OnMiddleClick = "true"
	}, sess)
	e.refresh(context.Background())

	if !e.HandleClick(domain.ClickMiddle) {
		t.Error("override click should be handled")
	}
	if sess.previous != 0 {
		t.Error("the built-in previous command must never run when an override is bound")
	}
}

func TestHandleClickCommandError(t *testing.T) {
	sess := &fakeSession{info: playingInfo(), cmdErr: errors.New("player rejected the call")}
	e, _, _ := newTestEngine(t, nil, sess)
	e.refresh(context.Background())

	if e.HandleClick(domain.ClickPrimary) {
		t.Error("a failed builtin command must report the event unhandled")
	}
}

func ownerChangeSignal(name, oldOwner, newOwner string) *dbus.Signal {
	return &dbus.Signal{
		Name: bus.NameOwnerChangedSignal,
		Body: []interface{}{name, oldOwner, newOwner},
	}
}

func TestAppearanceForcesDisconnectAndGraceRefresh(t *testing.T) {
	sess := &fakeSession{owner: ":1.100", connected: true}
	e, _, dir := newTestEngine(t, nil, sess)

	e.handleOwnerChange(ownerChangeSignal("org.mpris.MediaPlayer2.vlc", "", ":1.200"))

	if sess.invalidated != 1 {
		t.Error("an appearance must force the session disconnected, even if unrelated")
	}
	if !e.sched.takeGrace() {
		t.Error("appearance refresh must be scheduled after the grace delay")
	}
	if len(e.sched.trigger) != 1 {
		t.Error("a refresh request should be pending")
	}
	if dir.changes != 1 {
		t.Error("owner change should reach the directory")
	}
}

func TestVanishOfBoundPlayerDisconnects(t *testing.T) {
	sess := &fakeSession{owner: ":1.100", connected: true}
	e, _, _ := newTestEngine(t, nil, sess)

	e.handleOwnerChange(ownerChangeSignal("org.mpris.MediaPlayer2.spotify", ":1.100", ""))

	if sess.invalidated != 1 {
		t.Error("vanish of the bound player must disconnect the session")
	}
	if e.sched.takeGrace() {
		t.Error("vanish refresh must not wait for the grace delay")
	}
	if len(e.sched.trigger) != 1 {
		t.Error("a refresh request should be pending")
	}
}

func TestVanishOfUnrelatedPlayerKeepsSession(t *testing.T) {
	sess := &fakeSession{owner: ":1.100", connected: true}
	e, _, _ := newTestEngine(t, nil, sess)

	e.handleOwnerChange(ownerChangeSignal("org.mpris.MediaPlayer2.vlc", ":1.200", ""))

	if sess.invalidated != 0 {
		t.Error("vanish of an unrelated player must not disconnect the session")
	}
	if len(e.sched.trigger) != 1 {
		t.Error("a refresh request should still be pending")
	}
}

func TestNonPlayerOwnerChangeIgnored(t *testing.T) {
	sess := &fakeSession{owner: ":1.100", connected: true}
	e, _, _ := newTestEngine(t, nil, sess)

	e.handleOwnerChange(ownerChangeSignal("com.example.service", "", ":1.300"))

	if sess.invalidated != 0 || len(e.sched.trigger) != 0 {
		t.Error("non-player names must be ignored entirely")
	}
}

func TestStopSignalHidesImmediately(t *testing.T) {
	sess := &fakeSession{owner: ":1.100", connected: true}
	e, host, _ := newTestEngine(t, nil, sess)

	e.handlePlayerSignal(&dbus.Signal{
		Name:   bus.PropertiesChangedSignal,
		Sender: ":1.100",
		Body: []interface{}{
			bus.PlayerInterface,
			map[string]dbus.Variant{"PlaybackStatus": dbus.MakeVariant("Stopped")},
			[]string{},
		},
	})

	if visible, ok := host.lastVisible(); !ok || visible {
		t.Error("a stop signal must hide the cell before the refetch")
	}
	if len(e.sched.trigger) != 1 {
		t.Error("a refresh request should be pending")
	}
}

func TestForeignPlayerSignalOnlyTouchesDirectory(t *testing.T) {
	sess := &fakeSession{owner: ":1.100", connected: true}
	e, host, dir := newTestEngine(t, nil, sess)

	e.handlePlayerSignal(&dbus.Signal{
		Name:   bus.PropertiesChangedSignal,
		Sender: ":1.555",
		Body: []interface{}{
			bus.PlayerInterface,
			map[string]dbus.Variant{"PlaybackStatus": dbus.MakeVariant("Playing")},
			[]string{},
		},
	})

	if len(dir.touched) != 1 || dir.touched[0] != ":1.555" {
		t.Errorf("activity should feed the recency order, got %v", dir.touched)
	}
	if len(e.sched.trigger) != 0 {
		t.Error("signals from unrelated players must not request a refresh")
	}
	if _, ok := host.lastVisible(); ok {
		t.Error("signals from unrelated players must not touch the host")
	}
}
