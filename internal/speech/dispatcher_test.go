package speech

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adarsh8081/adarsh-portfolio/internal/metrics"
)

// stubSynth records calls and returns fixed audio.
type stubSynth struct {
	audio []byte
	err   error
	delay time.Duration
}

func (s *stubSynth) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.audio, nil
}

func waitForArtifact(t *testing.T, d *Dispatcher, id string) Artifact {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if artifact, ok := d.Fetch(id); ok {
			return artifact
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("artifact %s never appeared", id)
	return Artifact{}
}

func TestEnqueueRoundTrip(t *testing.T) {
	d := NewDispatcher(&stubSynth{audio: []byte("mp3-bytes")}, 16, nil, nil)
	defer d.Close()

	// Not found before synthesis completes or is even scheduled.
	_, ok := d.Fetch("a1")
	assert.False(t, ok, "artifact must not exist before enqueue")

	d.Enqueue("hello world", "a1")

	artifact := waitForArtifact(t, d, "a1")
	require.NotEmpty(t, artifact.Audio, "synthesized audio must be non-empty")
	assert.Equal(t, "a1", artifact.ID)
	assert.False(t, artifact.CreatedAt.IsZero())
}

func TestEnqueueNoBackend(t *testing.T) {
	d := NewDispatcher(nil, 16, nil, nil)
	defer d.Close()

	assert.False(t, d.Available())

	// No-op: never panics, never produces an artifact.
	d.Enqueue("hello", "a1")
	time.Sleep(50 * time.Millisecond)

	_, ok := d.Fetch("a1")
	assert.False(t, ok, "no artifact should appear without a backend")
	assert.Equal(t, 0, d.Len())
}

func TestSynthesisFailureLeavesNoArtifact(t *testing.T) {
	d := NewDispatcher(&stubSynth{err: errors.New("engine down")}, 16, nil, nil)
	defer d.Close()

	d.Enqueue("hello", "a1")
	time.Sleep(100 * time.Millisecond)

	_, ok := d.Fetch("a1")
	assert.False(t, ok, "failed synthesis must not store a partial artifact")
}

func TestArtifactCacheBound(t *testing.T) {
	d := NewDispatcher(&stubSynth{audio: []byte("x")}, 3, nil, nil)
	defer d.Close()

	for i := 0; i < 6; i++ {
		d.Enqueue("text", fmt.Sprintf("a%d", i))
	}
	waitForArtifact(t, d, "a5")

	assert.LessOrEqual(t, d.Len(), 3, "cache must stay within its bound")

	// The most recent artifact survives eviction.
	_, ok := d.Fetch("a5")
	assert.True(t, ok)
}

func TestFIFOProcessing(t *testing.T) {
	d := NewDispatcher(&stubSynth{audio: []byte("x"), delay: 5 * time.Millisecond}, 16, nil, nil)
	defer d.Close()

	d.Enqueue("first", "a1")
	d.Enqueue("second", "a2")

	first := waitForArtifact(t, d, "a1")
	second := waitForArtifact(t, d, "a2")
	assert.False(t, second.CreatedAt.Before(first.CreatedAt), "jobs must complete in FIFO order")
}

func TestSynthesisTimingsRecorded(t *testing.T) {
	collector := metrics.NewCollector()
	d := NewDispatcher(&stubSynth{audio: []byte("x")}, 16, collector, nil)
	defer d.Close()

	d.Enqueue("hello", "a1")
	waitForArtifact(t, d, "a1")

	snap := collector.Snapshot()
	op, ok := snap.Operations[metrics.OpSynthesize]
	require.True(t, ok, "synthesize timings must reach the collector")
	assert.Equal(t, int64(1), op.Count)
}

func TestFailedSynthesisStillTimed(t *testing.T) {
	collector := metrics.NewCollector()
	d := NewDispatcher(&stubSynth{err: errors.New("engine down")}, 16, collector, nil)
	defer d.Close()

	d.Enqueue("hello", "a1")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if op, ok := collector.Snapshot().Operations[metrics.OpSynthesize]; ok && op.Count == 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("failed synthesis attempt was never timed")
}
