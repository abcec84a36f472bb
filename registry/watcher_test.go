package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "first.md", "# First\n")

	reg := New(dir, nil, testLogger())
	_, err := reg.Load()
	require.NoError(t, err)
	require.Equal(t, 1, reg.Snapshot().Len())

	w, err := NewWatcher(reg, WatchConfig{Enabled: true, DebounceDelay: "50ms"}, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	writeDoc(t, dir, "second.md", "# Second\n")

	assert.Eventually(t, func() bool {
		return reg.Snapshot().Len() == 2
	}, 5*time.Second, 25*time.Millisecond)
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "doc.md", "# Doc\n")

	reg := New(dir, nil, testLogger())
	_, err := reg.Load()
	require.NoError(t, err)

	w, err := NewWatcher(reg, WatchConfig{Enabled: true, DebounceDelay: "50ms"}, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	before := reg.Snapshot()
	writeDoc(t, dir, "scratch.tmp", "not a document")

	// No reload should fire for an unknown extension.
	time.Sleep(200 * time.Millisecond)
	assert.Same(t, before, reg.Snapshot())
}

func TestWatchConfig_GetDebounceDelay(t *testing.T) {
	tests := []struct {
		name  string
		delay string
		want  time.Duration
	}{
		{"empty defaults", "", 500 * time.Millisecond},
		{"invalid defaults", "soon", 500 * time.Millisecond},
		{"parsed", "2s", 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := WatchConfig{DebounceDelay: tt.delay}
			assert.Equal(t, tt.want, c.GetDebounceDelay())
		})
	}
}
