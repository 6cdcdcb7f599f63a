package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"

	"github.com/genricoloni/mprisbar/internal/bus"
	"github.com/genricoloni/mprisbar/internal/config"
	"github.com/genricoloni/mprisbar/internal/domain"
	"github.com/genricoloni/mprisbar/internal/session"
)

// Engine orchestrates the cell pipeline: bus signals and the optional
// periodic timer request refresh passes, each pass ensures a bound player,
// fetches a snapshot, renders it and publishes to the host. Every pass
// runs on the one dispatch loop; triggers only post requests.
type Engine struct {
	logger   *zap.Logger
	cfg      *config.Config
	bus      bus.Client
	dir      domain.Directory
	session  domain.Session
	renderer domain.Renderer
	host     domain.Host
	sched    *scheduler

	cancel  context.CancelFunc
	wg      sync.WaitGroup
	signals chan *dbus.Signal

	mu   sync.Mutex
	last *domain.PlayerInfo

	// touched only by the dispatch loop
	lastStatusClass string
	lastPlayerClass string
}

// New creates the engine over its collaborators
func New(
	logger *zap.Logger,
	cfg *config.Config,
	client bus.Client,
	dir domain.Directory,
	sess domain.Session,
	renderer domain.Renderer,
	host domain.Host,
) *Engine {
	return &Engine{
		logger:   logger,
		cfg:      cfg,
		bus:      client,
		dir:      dir,
		session:  sess,
		renderer: renderer,
		host:     host,
		sched:    newScheduler(defaultGraceDelay),
	}
}

// Start installs the bus watches and launches the signal pump, the
// dispatch loop and the optional periodic timer. Non-blocking; an initial
// pass is requested before returning.
func (e *Engine) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel

	if err := e.bus.AddMatchSignal(
		dbus.WithMatchInterface("org.freedesktop.DBus"),
		dbus.WithMatchMember("NameOwnerChanged"),
	); err != nil {
		cancel()
		return fmt.Errorf("watch player names: %w", err)
	}
	if err := e.bus.AddMatchSignal(
		dbus.WithMatchObjectPath(bus.ObjectPath),
		dbus.WithMatchInterface(bus.PropertiesInterface),
		dbus.WithMatchMember("PropertiesChanged"),
	); err != nil {
		cancel()
		return fmt.Errorf("watch player state: %w", err)
	}

	e.signals = make(chan *dbus.Signal, 16)
	e.bus.Signal(e.signals)

	if err := e.dir.Bootstrap(); err != nil {
		e.logger.Warn("initial player scan failed", zap.Error(err))
	}

	e.wg.Add(2)
	go func() {
		defer e.wg.Done()
		e.watchSignals(runCtx)
	}()
	go func() {
		defer e.wg.Done()
		e.sched.run(runCtx, e.refresh)
	}()

	if e.cfg.Interval > 0 {
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			e.tick(runCtx, time.Duration(e.cfg.Interval)*time.Second)
		}()
	}

	e.sched.Request()
	e.logger.Info("engine started",
		zap.String("player", e.cfg.Player),
		zap.Int("interval", e.cfg.Interval))
	return nil
}

// Stop cancels the loops, waits for them to drain and releases the player.
// No refresh request is emitted after Stop begins.
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}
	e.wg.Wait()
	if e.signals != nil {
		e.bus.RemoveSignal(e.signals)
	}
	e.session.Invalidate()
	e.logger.Info("engine stopped")
	return nil
}

// tick emits one refresh request per interval until teardown
func (e *Engine) tick(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.sched.Request()
		}
	}
}

// watchSignals is the single pump routing bus signals to typed handling.
// It never mutates pass state; it only posts refresh requests.
func (e *Engine) watchSignals(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-e.signals:
			if sig == nil {
				continue
			}
			switch sig.Name {
			case bus.NameOwnerChangedSignal:
				e.handleOwnerChange(sig)
			case bus.PropertiesChangedSignal:
				e.handlePlayerSignal(sig)
			}
		}
	}
}

// handleOwnerChange reacts to any player appearing on or vanishing from
// the bus, independent of which player the session is bound to
func (e *Engine) handleOwnerChange(sig *dbus.Signal) {
	if len(sig.Body) < 3 {
		return
	}
	name, ok := sig.Body[0].(string)
	if !ok || !strings.HasPrefix(name, bus.NamePrefix) {
		return
	}
	oldOwner, _ := sig.Body[1].(string)
	newOwner, _ := sig.Body[2].(string)

	e.dir.HandleOwnerChange(name, oldOwner, newOwner)

	switch {
	case oldOwner == "" && newOwner != "":
		// rebind after the grace delay even when the session is bound to an
		// unrelated player; the new arrival may be the more recent one
		e.logger.Debug("player appeared", zap.String("name", name))
		e.session.Invalidate()
		e.sched.RequestAfterGrace()
	case newOwner == "" && oldOwner != "":
		e.logger.Debug("player vanished", zap.String("name", name))
		if e.session.OwnsSender(oldOwner) {
			e.session.Invalidate()
		}
		e.sched.Request()
	}
}

// handlePlayerSignal decodes a state change from the bound player. Any
// player activity also feeds the directory's recency order.
func (e *Engine) handlePlayerSignal(sig *dbus.Signal) {
	e.dir.TouchOwner(sig.Sender)

	if !e.session.OwnsSender(sig.Sender) {
		return
	}
	event, ok := session.DecodeSignal(sig)
	if !ok {
		return
	}
	e.logger.Debug("player signal", zap.Stringer("event", event))
	if event == domain.EventStop {
		// hide right away, independent of whether the refetch succeeds
		e.host.SetVisible(false)
	}
	e.sched.Request()
}

// refresh is one pass: ensure-connected, fetch, render, publish
func (e *Engine) refresh(ctx context.Context) {
	if err := e.session.EnsureConnected(); err != nil {
		e.logger.Error("cannot bind player", zap.Error(err))
		e.setNoData()
		return
	}

	info, err := e.session.Snapshot()
	if err != nil {
		e.logger.Error("snapshot failed", zap.Error(err))
		info = nil
	}
	if info == nil {
		e.setNoData()
		return
	}

	e.mu.Lock()
	e.last = info
	e.mu.Unlock()

	if info.Status == domain.StatusStopped {
		e.logger.Debug("player stopped", zap.String("player", info.Name))
		e.host.SetVisible(false)
		return
	}

	text, err := e.renderer.Render(info)
	if err != nil {
		// malformed user template: keep whatever is on screen
		e.logger.Error("render failed",
			zap.String("player", info.Name), zap.Error(err))
		return
	}

	e.host.SwapClass(e.lastStatusClass, info.StatusString)
	e.lastStatusClass = info.StatusString
	e.host.SwapClass(e.lastPlayerClass, info.Name)
	e.lastPlayerClass = info.Name

	e.host.SetText(text)
	e.host.SetVisible(true)
}

func (e *Engine) setNoData() {
	e.mu.Lock()
	e.last = nil
	e.mu.Unlock()
	e.host.SetVisible(false)
}

// lastSnapshot returns the snapshot published by the most recent pass,
// or nil when the cell has no data
func (e *Engine) lastSnapshot() *domain.PlayerInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}
