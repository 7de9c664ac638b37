package tui

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/rileyhilliard/nerdminer/internal/input"
	"github.com/rileyhilliard/nerdminer/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgram_TrailPrintedOnClose(t *testing.T) {
	var trail bytes.Buffer
	p := Start(Options{
		Output: io.Discard,
		Trail:  &trail,
		KeyMap: input.DefaultKeyMap,
	})

	require.NoError(t, p.Message("Initializing NerdMiner..."))
	require.NoError(t, p.Show(render.Notice("frame")))
	require.NoError(t, p.Message("Shutting down NerdMiner..."))
	require.NoError(t, p.Message("NerdMiner stopped."))
	require.NoError(t, p.Close())

	assert.Equal(t, "Shutting down NerdMiner...\nNerdMiner stopped.\n", trail.String())

	select {
	case <-p.done:
	default:
		t.Fatal("program should have exited")
	}
}

func TestProgram_ExitRunsInterrupt(t *testing.T) {
	interrupted := make(chan struct{}, 1)
	p := Start(Options{
		Output:      io.Discard,
		KeyMap:      input.DefaultKeyMap,
		OnInterrupt: func() { interrupted <- struct{}{} },
	})
	require.NoError(t, p.Close())

	select {
	case <-interrupted:
	case <-time.After(time.Second):
		t.Fatal("interrupt callback not called")
	}
	assert.NoError(t, p.Close())
}

func TestProgram_PollKeyTimeout(t *testing.T) {
	p := Start(Options{Output: io.Discard, KeyMap: input.DefaultKeyMap})
	defer p.Close()

	_, ok := p.PollKey(10 * time.Millisecond)
	assert.False(t, ok)

	p.keys <- 'q'
	r, ok := p.PollKey(time.Second)
	assert.True(t, ok)
	assert.Equal(t, 'q', r)
}
