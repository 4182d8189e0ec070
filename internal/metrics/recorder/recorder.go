package recorder

import (
	"context"
	"sync"
	"time"

	"github.com/5w1tchy/pwstrength/internal/store/assessments"
	"github.com/rs/zerolog"
)

// BatchWriter persists a batch of assessment records.
type BatchWriter interface {
	InsertBatch(ctx context.Context, recs []assessments.Record) error
}

const (
	batchSize  = 100
	flushEvery = 250 * time.Millisecond
	writeTO    = 500 * time.Millisecond
)

// Recorder queues assessment records and writes them in batches from a
// fixed set of workers. Enqueue never blocks.
type Recorder struct {
	w    BatchWriter
	log  zerolog.Logger
	ch   chan assessments.Record
	done chan struct{}
	wg   sync.WaitGroup

	startOnce sync.Once
	stopOnce  sync.Once
}

// New returns a stopped Recorder. Suggested: buf=10000, workers=2.
func New(w BatchWriter, buf int, log zerolog.Logger) *Recorder {
	if buf < 1 {
		buf = 1
	}
	return &Recorder{
		w:    w,
		log:  log.With().Str("component", "recorder").Logger(),
		ch:   make(chan assessments.Record, buf),
		done: make(chan struct{}),
	}
}

// Start spins up N workers.
func (r *Recorder) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	r.startOnce.Do(func() {
		for i := 0; i < workers; i++ {
			r.wg.Add(1)
			go r.worker()
		}
	})
}

// Enqueue tries to queue a record without blocking. It reports false when
// the buffer is full or the recorder is shut down; the record is dropped.
func (r *Recorder) Enqueue(rec assessments.Record) bool {
	if r == nil {
		return false
	}
	select {
	case <-r.done:
		return false
	default:
	}
	select {
	case r.ch <- rec:
		return true
	default:
		return false
	}
}

// Shutdown signals workers to stop, flushes remaining records, and waits.
func (r *Recorder) Shutdown() {
	if r == nil {
		return
	}
	r.stopOnce.Do(func() { close(r.done) })
	r.wg.Wait()
}

func (r *Recorder) worker() {
	defer r.wg.Done()
	tk := time.NewTicker(flushEvery)
	defer tk.Stop()

	batch := make([]assessments.Record, 0, batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), writeTO)
		if err := r.w.InsertBatch(ctx, batch); err != nil {
			// best-effort; the batch is dropped
			r.log.Warn().Err(err).Int("records", len(batch)).Msg("batch insert failed")
		}
		cancel()
		batch = batch[:0]
	}

	for {
		select {
		case <-r.done:
			// drain quickly then flush
			for {
				select {
				case rec := <-r.ch:
					batch = append(batch, rec)
					if len(batch) >= batchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		case rec := <-r.ch:
			batch = append(batch, rec)
			if len(batch) >= batchSize {
				flush()
			}
		case <-tk.C:
			flush()
		}
	}
}
