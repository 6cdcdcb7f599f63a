package host

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/genricoloni/mprisbar/internal/domain"
)

// cellUpdate is the JSON shape bar frameworks read from custom modules
type cellUpdate struct {
	Text  string   `json:"text"`
	Class []string `json:"class"`
}

// Stdout publishes the cell as JSON lines on stdout and feeds click button
// ids read line-by-line from stdin to the registered handler. A hidden
// cell is published as an empty-text update.
type Stdout struct {
	logger *zap.Logger
	out    io.Writer
	in     io.Reader

	click func(domain.ClickButton) bool

	mu      sync.Mutex
	text    string
	classes []string
	visible bool
}

// NewStdout creates a host over the process's stdout and stdin
func NewStdout(logger *zap.Logger) *Stdout {
	return newStdout(logger, os.Stdout, os.Stdin)
}

func newStdout(logger *zap.Logger, out io.Writer, in io.Reader) *Stdout {
	return &Stdout{logger: logger, out: out, in: in}
}

// SetClickHandler registers the function receiving click events. The
// handler reports whether it consumed the event.
func (h *Stdout) SetClickHandler(handler func(domain.ClickButton) bool) {
	h.click = handler
}

// SetText replaces the cell text. Visible cells republish immediately;
// hidden ones pick the text up when they become visible.
func (h *Stdout) SetText(markup string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.text = markup
	if h.visible {
		h.publishLocked()
	}
}

// SetVisible shows or hides the cell. Redundant calls do not republish.
func (h *Stdout) SetVisible(visible bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.visible == visible {
		return
	}
	h.visible = visible
	h.publishLocked()
}

// SwapClass removes the previous style class and adds the current one.
// The change rides along with the next publish.
func (h *Stdout) SwapClass(previous, current string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if previous != "" {
		for i, class := range h.classes {
			if class == previous {
				h.classes = append(h.classes[:i], h.classes[i+1:]...)
				break
			}
		}
	}
	if current == "" {
		return
	}
	for _, class := range h.classes {
		if class == current {
			return
		}
	}
	h.classes = append(h.classes, current)
}

func (h *Stdout) publishLocked() {
	update := cellUpdate{}
	if h.visible {
		update.Text = h.text
		update.Class = append([]string(nil), h.classes...)
	}
	data, err := json.Marshal(update)
	if err != nil {
		h.logger.Error("cannot encode cell update", zap.Error(err))
		return
	}
	fmt.Fprintln(h.out, string(data))
}

// Run reads click button ids (one integer per line) until the input closes
// or ctx is cancelled, delegating each to the click handler
func (h *Stdout) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(h.in)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		button, err := strconv.Atoi(line)
		if err != nil {
			h.logger.Warn("unrecognized click input", zap.String("line", line))
			continue
		}
		if h.click == nil {
			continue
		}
		if !h.click(domain.ClickButton(button)) {
			h.logger.Debug("click not handled", zap.Int("button", button))
		}
	}
	return scanner.Err()
}
