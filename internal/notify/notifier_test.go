package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftline/dispatch/pkg/structs"
)

const (
	debounce = 20 * time.Millisecond
	patience = 500 * time.Millisecond
)

func expectSignal(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(patience):
		t.Fatal("expected an availability signal")
	}
}

func expectNoSignal(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
		t.Fatal("expected no availability signal")
	case <-time.After(5 * debounce):
	}
}

func TestNotifierSignals(t *testing.T) {
	n, err := NewNotifier(NewMemoryBroadcast(), debounce)
	require.NoError(t, err)
	defer n.Close()

	sig, detach := n.Attach(nil)
	defer detach()

	n.TaskAvailable(structs.TypeTranscodeWebVideo)

	expectSignal(t, sig)
}

func TestNotifierDebouncesBursts(t *testing.T) {
	n, err := NewNotifier(NewMemoryBroadcast(), debounce)
	require.NoError(t, err)
	defer n.Close()

	sig, detach := n.Attach(nil)
	defer detach()

	// a burst of eligible tasks must collapse into one signal
	for i := 0; i < 20; i++ {
		n.TaskAvailable(structs.TypeTranscodeWebVideo)
	}

	expectSignal(t, sig)
	expectNoSignal(t, sig)
}

func TestNotifierFiltersTaskTypes(t *testing.T) {
	n, err := NewNotifier(NewMemoryBroadcast(), debounce)
	require.NoError(t, err)
	defer n.Close()

	transcribe, detachA := n.Attach([]string{structs.TypeGenerateTranscription})
	defer detachA()
	all, detachB := n.Attach(nil)
	defer detachB()

	n.TaskAvailable(structs.TypeStudioEdit)

	expectSignal(t, all)
	expectNoSignal(t, transcribe)
}

func TestNotifierDetach(t *testing.T) {
	n, err := NewNotifier(NewMemoryBroadcast(), debounce)
	require.NoError(t, err)
	defer n.Close()

	sig, detach := n.Attach(nil)
	detach()
	detach() // idempotent

	n.TaskAvailable(structs.TypeReplaceSource)

	expectNoSignal(t, sig)
}

func TestMemoryBroadcastFanout(t *testing.T) {
	m := NewMemoryBroadcast()
	defer m.Close()

	a, err := m.Subscribe()
	require.NoError(t, err)
	b, err := m.Subscribe()
	require.NoError(t, err)

	require.NoError(t, m.Publish(&Event{TaskType: "x"}))

	assert.Equal(t, "x", (<-a).TaskType)
	assert.Equal(t, "x", (<-b).TaskType)
}
