package speech

import (
	"context"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/adarsh8081/adarsh-portfolio/internal/metrics"
)

const (
	// queueCapacity bounds pending synthesis jobs. Enqueue drops (and logs)
	// when full instead of blocking request handlers.
	queueCapacity = 64

	// synthesisTimeout caps one synthesis call.
	synthesisTimeout = 30 * time.Second
)

// Artifact is a synthesized audio clip.
type Artifact struct {
	ID        string
	Audio     []byte
	CreatedAt time.Time
}

type job struct {
	text string
	id   string
}

// Dispatcher hands synthesis off to a single background worker and caches
// the resulting artifacts. The cache is LRU-bounded so the artifact map
// cannot grow without limit.
type Dispatcher struct {
	synth   Synthesizer
	queue   chan job
	cache   *lru.Cache[string, Artifact]
	metrics *metrics.Collector
	logger  *slog.Logger

	done chan struct{}
}

// NewDispatcher creates a dispatcher and starts its worker. synth may be nil
// when no speech backend is configured; Enqueue is then a no-op and no
// artifact ever appears.
func NewDispatcher(synth Synthesizer, maxItems int, collector *metrics.Collector, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if collector == nil {
		collector = metrics.NewCollector()
	}
	if maxItems < 1 {
		maxItems = 1
	}

	// lru.New only fails for a non-positive size, which is clamped above.
	cache, _ := lru.New[string, Artifact](maxItems)

	d := &Dispatcher{
		synth:   synth,
		queue:   make(chan job, queueCapacity),
		cache:   cache,
		metrics: collector,
		logger:  logger,
		done:    make(chan struct{}),
	}

	go d.worker()
	return d
}

// Available reports whether a speech backend is configured.
func (d *Dispatcher) Available() bool {
	return d.synth != nil
}

// Enqueue schedules synthesis of text under the given artifact id and
// returns immediately. Best-effort: with no backend, or with a full queue,
// the job is silently dropped and the artifact never materializes.
func (d *Dispatcher) Enqueue(text, id string) {
	if d.synth == nil || text == "" || id == "" {
		return
	}

	select {
	case d.queue <- job{text: text, id: id}:
	default:
		d.logger.Warn("speech queue full, dropping synthesis job", "artifact_id", id)
	}
}

// Fetch returns the artifact for id, or false if it does not (yet) exist.
// Artifacts appear fully formed or not at all; a partial clip is never
// visible.
func (d *Dispatcher) Fetch(id string) (Artifact, bool) {
	return d.cache.Get(id)
}

// Len returns the number of cached artifacts.
func (d *Dispatcher) Len() int {
	return d.cache.Len()
}

// Close stops the worker. Pending jobs are discarded.
func (d *Dispatcher) Close() {
	close(d.done)
}

// worker serializes synthesis: strictly one job at a time, FIFO.
func (d *Dispatcher) worker() {
	for {
		select {
		case <-d.done:
			return
		case j := <-d.queue:
			d.process(j)
		}
	}
}

func (d *Dispatcher) process(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), synthesisTimeout)
	defer cancel()

	start := time.Now()
	audio, err := d.synth.Synthesize(ctx, j.text)
	d.metrics.RecordTiming(metrics.OpSynthesize, time.Since(start))

	if err != nil {
		d.logger.Warn("speech synthesis failed", "artifact_id", j.id, "error", err)
		return
	}

	d.cache.Add(j.id, Artifact{ID: j.id, Audio: audio, CreatedAt: time.Now().UTC()})
	d.logger.Debug("speech artifact stored", "artifact_id", j.id, "bytes", len(audio))
}
