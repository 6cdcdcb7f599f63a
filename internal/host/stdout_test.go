package host

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/genricoloni/mprisbar/internal/domain"
)

func decodeLines(t *testing.T, out *bytes.Buffer) []cellUpdate {
	t.Helper()
	var updates []cellUpdate
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		var update cellUpdate
		require.NoError(t, json.Unmarshal([]byte(line), &update))
		updates = append(updates, update)
	}
	return updates
}

func TestNoOutputWhileHidden(t *testing.T) {
	out := &bytes.Buffer{}
	h := newStdout(zap.NewNop(), out, strings.NewReader(""))

	h.SetText("spotify (playing): A - C")
	h.SwapClass("", "playing")

	assert.Empty(t, out.String())
}

func TestPublishOnShow(t *testing.T) {
	out := &bytes.Buffer{}
	h := newStdout(zap.NewNop(), out, strings.NewReader(""))

	h.SetText("spotify (playing): A - C")
	h.SwapClass("", "playing")
	h.SwapClass("", "spotify")
	h.SetVisible(true)

	updates := decodeLines(t, out)
	require.Len(t, updates, 1)
	assert.Equal(t, "spotify (playing): A - C", updates[0].Text)
	assert.Equal(t, []string{"playing", "spotify"}, updates[0].Class)
}

func TestVisibleTextChangeRepublishes(t *testing.T) {
	out := &bytes.Buffer{}
	h := newStdout(zap.NewNop(), out, strings.NewReader(""))

	h.SetVisible(true)
	h.SetText("first")
	h.SetText("second")

	updates := decodeLines(t, out)
	require.Len(t, updates, 3)
	assert.Equal(t, "second", updates[2].Text)
}

func TestHidePublishesEmptyUpdate(t *testing.T) {
	out := &bytes.Buffer{}
	h := newStdout(zap.NewNop(), out, strings.NewReader(""))

	h.SetText("spotify (playing): A - C")
	h.SwapClass("", "playing")
	h.SetVisible(true)
	h.SetVisible(false)

	updates := decodeLines(t, out)
	require.Len(t, updates, 2)
	assert.Empty(t, updates[1].Text)
	assert.Empty(t, updates[1].Class)
}

func TestRedundantVisibilityIsSilent(t *testing.T) {
	out := &bytes.Buffer{}
	h := newStdout(zap.NewNop(), out, strings.NewReader(""))

	h.SetVisible(false)
	assert.Empty(t, out.String())

	h.SetVisible(true)
	h.SetVisible(true)
	assert.Len(t, decodeLines(t, out), 1)
}

func TestSwapClass(t *testing.T) {
	h := newStdout(zap.NewNop(), &bytes.Buffer{}, strings.NewReader(""))

	h.SwapClass("", "playing")
	h.SwapClass("", "spotify")
	assert.Equal(t, []string{"playing", "spotify"}, h.classes)

	// status flips, player stays
	h.SwapClass("playing", "paused")
	assert.Equal(t, []string{"spotify", "paused"}, h.classes)

	// re-adding an existing class must not duplicate it
	h.SwapClass("", "paused")
	assert.Equal(t, []string{"spotify", "paused"}, h.classes)

	// removing a class that was never added is a no-op
	h.SwapClass("stopped", "")
	assert.Equal(t, []string{"spotify", "paused"}, h.classes)
}

func TestRunRoutesClicks(t *testing.T) {
	in := strings.NewReader("1\n\nnot-a-number\n3\n")
	h := newStdout(zap.NewNop(), &bytes.Buffer{}, in)

	var mu sync.Mutex
	var buttons []domain.ClickButton
	h.SetClickHandler(func(button domain.ClickButton) bool {
		mu.Lock()
		defer mu.Unlock()
		buttons = append(buttons, button)
		return button == domain.ClickPrimary
	})

	require.NoError(t, h.Run(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []domain.ClickButton{domain.ClickPrimary, domain.ClickSecondary}, buttons)
}

func TestRunWithoutHandler(t *testing.T) {
	h := newStdout(zap.NewNop(), &bytes.Buffer{}, strings.NewReader("2\n"))
	require.NoError(t, h.Run(context.Background()))
}
