package engine

import (
	"os/exec"

	"go.uber.org/zap"

	"github.com/genricoloni/mprisbar/internal/domain"
)

// HandleClick maps a host click to a transport command or a configured
// override. It reports whether the event was handled; with no current
// snapshot the event propagates to the host default.
func (e *Engine) HandleClick(button domain.ClickButton) bool {
	info := e.lastSnapshot()
	if info == nil {
		e.logger.Debug("click ignored, no player data",
			zap.Int("button", int(button)))
		return false
	}

	if cmd := e.cfg.OverrideFor(button); cmd != "" {
		return e.runOverride(cmd)
	}

	var err error
	switch button {
	case domain.ClickPrimary:
		err = e.session.PlayPause()
	case domain.ClickMiddle:
		err = e.session.Previous()
	case domain.ClickSecondary:
		err = e.session.Next()
	default:
		return false
	}
	if err != nil {
		e.logger.Error("builtin click action failed",
			zap.String("player", info.Name),
			zap.Int("button", int(button)),
			zap.Error(err))
		return false
	}
	return true
}

// runOverride hands the click to the user command instead of the built-in
// action. The command runs detached; its exit status is not surfaced.
func (e *Engine) runOverride(command string) bool {
	cmd := exec.Command("sh", "-c", command)
	if err := cmd.Start(); err != nil {
		e.logger.Error("override command failed",
			zap.String("command", command), zap.Error(err))
		return false
	}
	go func() {
		_ = cmd.Wait()
	}()
	return true
}
