package sync

import (
	"bytes"
	"context"
	"daily-planner/localstore"
	"daily-planner/models"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// Source is the backend a snapshot is read from
type Source interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	ListNotes(ctx context.Context) ([]models.Note, error)
}

// Result describes one mirror run
type Result struct {
	Tasks   int       `json:"tasks"`
	Notes   int       `json:"notes"`
	Changed bool      `json:"changed"`
	At      time.Time `json:"at"`
}

// Worker copies a full snapshot of the active backend into a mirror area.
// The mirror is overwritten on every change; nothing is merged back.
type Worker struct {
	source          Source
	mirror          *localstore.Store
	logger          *slog.Logger
	baseInterval    time.Duration
	maxInterval     time.Duration
	currentInterval time.Duration
	running         bool
	mu              sync.Mutex
	runMu           sync.Mutex
	lastTasks       []byte
	lastNotes       []byte
	stopChan        chan struct{}
	done            chan struct{}
	token           *tokenWatch
}

// NewWorker creates a new sync worker instance.
// maxInterval is used while the snapshot stays unchanged.
func NewWorker(source Source, mirror *localstore.Store, baseInterval time.Duration, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	maxInterval := baseInterval * 5 / 2
	return &Worker{
		source:          source,
		mirror:          mirror,
		logger:          logger.With("component", "sync"),
		baseInterval:    baseInterval,
		maxInterval:     maxInterval,
		currentInterval: baseInterval,
	}
}

// SyncNow pushes the current snapshot to the mirror if it changed since the last push
func (w *Worker) SyncNow(ctx context.Context) (Result, error) {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	result := Result{At: time.Now()}

	tasks, err := w.source.ListTasks(ctx)
	if err != nil {
		return result, err
	}
	notes, err := w.source.ListNotes(ctx)
	if err != nil {
		return result, err
	}

	localTasks := make([]models.LocalTask, 0, len(tasks))
	for _, task := range tasks {
		localTasks = append(localTasks, models.LocalTaskFrom(task))
	}
	if notes == nil {
		notes = []models.Note{}
	}

	result.Tasks = len(localTasks)
	result.Notes = len(notes)

	taskBytes, err := json.Marshal(localTasks)
	if err != nil {
		return result, err
	}
	noteBytes, err := json.Marshal(notes)
	if err != nil {
		return result, err
	}

	if w.lastTasks == nil || !bytes.Equal(taskBytes, w.lastTasks) {
		if err := w.mirror.SaveTasks(ctx, localTasks); err != nil {
			return result, err
		}
		w.lastTasks = taskBytes
		result.Changed = true
	}
	if w.lastNotes == nil || !bytes.Equal(noteBytes, w.lastNotes) {
		if err := w.mirror.SaveNotes(ctx, notes); err != nil {
			return result, err
		}
		w.lastNotes = noteBytes
		result.Changed = true
	}

	w.updateTokenIfRefreshed()
	return result, nil
}

// Start begins the background sync worker
func (w *Worker) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})
	w.currentInterval = w.baseInterval
	w.mu.Unlock()

	w.logger.Info("starting background sync worker", "interval", w.baseInterval)

	go w.run(w.stopChan, w.done)
}

// Stop stops the background worker and waits for a run in progress to end
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopChan)
	done := w.done
	w.mu.Unlock()

	<-done
	w.logger.Info("background sync worker stopped")
}

// run is the main worker loop with adaptive backoff
func (w *Worker) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(w.baseInterval)
	defer ticker.Stop()

	// Run immediately on start
	w.runOnce(stop)

	for {
		select {
		case <-ticker.C:
			changed := w.runOnce(stop)

			// Adaptive backoff: slow down while nothing changes, reset on change
			w.mu.Lock()
			if changed {
				if w.currentInterval != w.baseInterval {
					w.currentInterval = w.baseInterval
					ticker.Reset(w.currentInterval)
					w.logger.Debug("snapshot changed, reset interval", "interval", w.currentInterval)
				}
			} else if w.currentInterval < w.maxInterval {
				w.currentInterval = w.maxInterval
				ticker.Reset(w.currentInterval)
				w.logger.Debug("no changes, increased interval", "interval", w.currentInterval)
			}
			w.mu.Unlock()
		case <-stop:
			return
		}
	}
}

func (w *Worker) runOnce(stop <-chan struct{}) bool {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	result, err := w.SyncNow(ctx)
	if err != nil {
		w.logger.Error("sync failed", "error", err)
		return false
	}
	if result.Changed {
		w.logger.Info("snapshot mirrored", "tasks", result.Tasks, "notes", result.Notes)
	}
	return result.Changed
}

// Interval returns the current ticker interval
func (w *Worker) Interval() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.currentInterval
}
