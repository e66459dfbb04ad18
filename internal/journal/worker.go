package journal

import (
	"context"
	"log"
	"unicode/utf8"

	"mealview/internal/mealdb"
	"mealview/internal/model"
	"mealview/internal/store"
	"mealview/internal/viewer"
)

// maxMessageLen matches the FetchRecord.ErrorMessage column size.
const maxMessageLen = 512

// Recorder persists a single fetch record.
type Recorder interface {
	RecordFetch(ctx context.Context, rec *model.FetchRecord) error
}

// WorkerPool writes fetch-cycle diagnostics off the viewer's goroutine.
type WorkerPool struct {
	size     int
	jobs     chan model.FetchRecord
	recorder Recorder
}

// NewWorkerPool creates a new worker pool with a job buffer of the given size.
func NewWorkerPool(size, buffer int, s store.Store) *WorkerPool {
	var rec Recorder
	if s != nil {
		rec = s
	}
	return newWorkerPool(size, buffer, rec)
}

func newWorkerPool(size, buffer int, rec Recorder) *WorkerPool {
	if size <= 0 {
		size = 1
	}
	if buffer <= 0 {
		buffer = size
	}
	return &WorkerPool{
		size:     size,
		jobs:     make(chan model.FetchRecord, buffer),
		recorder: rec,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Journal worker %d started", id)
	for {
		select {
		case rec := <-wp.jobs:
			wp.record(ctx, rec)
		case <-ctx.Done():
			log.Printf("Journal worker %d shutting down", id)
			return
		}
	}
}

func (wp *WorkerPool) record(ctx context.Context, rec model.FetchRecord) {
	if wp.recorder == nil {
		return
	}
	if err := wp.recorder.RecordFetch(ctx, &rec); err != nil {
		log.Printf("Error recording fetch cycle %d for session %s: %v", rec.Cycle, rec.SessionID, err)
	}
}

// Dispatch queues a record without blocking. It reports false and drops the
// record when the buffer is full.
func (wp *WorkerPool) Dispatch(rec model.FetchRecord) bool {
	select {
	case wp.jobs <- rec:
		return true
	default:
		log.Printf("Journal buffer full; dropping fetch cycle %d for session %s", rec.Cycle, rec.SessionID)
		return false
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan model.FetchRecord {
	return wp.jobs
}

// Observer returns a viewer observer that journals every cycle of sessionID.
// Failures are also logged here since nothing reaches the screen.
func (wp *WorkerPool) Observer(sessionID string) viewer.Observer {
	return func(ev viewer.Event) {
		rec := RecordFromEvent(sessionID, ev)
		if rec.Outcome == model.OutcomeFailed {
			log.Printf("Fetch cycle %d for session %s failed (%s): %s", rec.Cycle, sessionID, rec.ErrorKind, rec.ErrorMessage)
		}
		wp.Dispatch(rec)
	}
}

// RecordFromEvent converts a viewer event into a diagnostic record.
func RecordFromEvent(sessionID string, ev viewer.Event) model.FetchRecord {
	rec := model.FetchRecord{
		SessionID:  sessionID,
		Cycle:      ev.Cycle,
		StartedAt:  ev.StartedAt.UTC(),
		FinishedAt: ev.FinishedAt.UTC(),
	}

	switch {
	case ev.Discarded:
		rec.Outcome = model.OutcomeDiscarded
	case ev.Err != nil:
		rec.Outcome = model.OutcomeFailed
	default:
		rec.Outcome = model.OutcomeLoaded
	}

	if ev.Err != nil {
		rec.ErrorKind = mealdb.Kind(ev.Err)
		rec.ErrorMessage = truncate(ev.Err.Error(), maxMessageLen)
	}
	if ev.Recipe != nil {
		rec.MealID = ev.Recipe.ID
		rec.MealName = truncate(ev.Recipe.Name, 256)
	}
	return rec
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
