package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time { return c.now }

func TestRunProgressShowsElapsedWhileRunning(t *testing.T) {
	clock := &stepClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	m := newRunProgress("Running script...", clock.Now, func() error { return nil })

	clock.now = clock.now.Add(1500 * time.Millisecond)
	view := m.View()
	assert.Contains(t, view, "Running script...")
	assert.Contains(t, view, "1.5s")
}

func TestRunProgressFinishedMessage(t *testing.T) {
	clock := &stepClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	boom := errors.New("boom")
	m := newRunProgress("Running greet...", clock.Now, func() error { return boom })

	clock.now = clock.now.Add(250 * time.Millisecond)
	msg := m.work()
	finished, ok := msg.(runFinishedMsg)
	require.True(t, ok)
	assert.ErrorIs(t, finished.err, boom)
	assert.Equal(t, 250*time.Millisecond, finished.elapsed)

	next, cmd := m.Update(finished)
	require.NotNil(t, cmd)
	view := next.View()
	assert.Contains(t, view, "failed")
	assert.Contains(t, view, "250ms")

	after, tick := next.Update(spinner.TickMsg{})
	assert.Nil(t, tick)
	assert.Equal(t, view, after.View())
}

func TestRunProgressSuccessLeavesNoLine(t *testing.T) {
	m := newRunProgress("x", time.Now, func() error { return nil })

	next, _ := m.Update(runFinishedMsg{elapsed: time.Second})
	assert.Empty(t, next.View())
}

func TestWithSpinnerRunsDirectlyWithoutTerminal(t *testing.T) {
	var out bytes.Buffer
	called := false

	err := withSpinner(context.Background(), &out, "label", func(context.Context) error {
		called = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
	assert.Empty(t, out.String())
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "40ms", formatElapsed(40*time.Millisecond))
	assert.Equal(t, "2.0s", formatElapsed(2*time.Second))
}
