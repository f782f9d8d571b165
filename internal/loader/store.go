package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"MacroGauge/internal/timeseries"
	"MacroGauge/pkg/logger"

	"github.com/fsnotify/fsnotify"
)

// Metrics is the subset of the metrics recorder the store reports to.
type Metrics interface {
	RecordDatasetRows(dataset string, rows int)
	RecordReload(result string)
}

// Store holds the loaded frames behind a read lock and refreshes them when
// a CSV changes on disk. Readers always see a complete, consistent set of
// frames.
type Store struct {
	mu      sync.RWMutex
	frames  map[string]*Frame
	loaded  time.Time
	loader  *Loader
	logger  *logger.Logger
	metrics Metrics

	// debounces editor write bursts
	reloadDelay time.Duration

	hooks []func()
}

// OnReload registers a callback invoked after every successful reload,
// used to drop caches derived from the frames. Not safe to call once
// Watch is running.
func (s *Store) OnReload(fn func()) {
	s.hooks = append(s.hooks, fn)
}

// NewStore loads all datasets eagerly and returns the store.
func NewStore(l *Loader, log *logger.Logger, m Metrics) (*Store, error) {
	s := &Store{loader: l, logger: log, metrics: m, reloadDelay: 500 * time.Millisecond}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads every dataset and swaps the frame set atomically.
func (s *Store) Reload() error {
	frames, err := s.loader.LoadAll()
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordReload("error")
		}
		return fmt.Errorf("reload datasets: %w", err)
	}

	s.mu.Lock()
	s.frames = frames
	s.loaded = time.Now()
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RecordReload("ok")
		for name, f := range frames {
			s.metrics.RecordDatasetRows(name, f.Len())
		}
	}
	if s.logger != nil {
		s.logger.Info("datasets loaded", logger.Int("datasets", len(frames)))
	}
	for _, fn := range s.hooks {
		fn()
	}
	return nil
}

// Frame returns one loaded dataset.
func (s *Store) Frame(name string) (*Frame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.frames[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownDataset)
	}
	return f, nil
}

// Series extracts one column of one dataset.
func (s *Store) Series(dataset, column string) (*timeseries.Series, error) {
	f, err := s.Frame(dataset)
	if err != nil {
		return nil, err
	}
	return f.Series(column)
}

// Datasets lists the names of the loaded datasets.
func (s *Store) Datasets() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.frames))
	for name := range s.frames {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// LatestDate is the most recent observation date across all datasets,
// used to pick the default snapshot month.
func (s *Store) LatestDate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest time.Time
	for _, f := range s.frames {
		if d := f.LatestDate(); d.After(latest) {
			latest = d
		}
	}
	return latest
}

// LoadedAt reports when the frames were last (re)loaded.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Watch reloads the store when a CSV in the data directory is written or
// replaced. Blocks until ctx is cancelled.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.loader.dir); err != nil {
		return fmt.Errorf("watch %s: %w", s.loader.dir, err)
	}

	var timer *time.Timer
	reload := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".csv") {
				continue
			}
			if s.logger != nil {
				s.logger.Debug("dataset change detected", logger.String("file", filepath.Base(event.Name)))
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(s.reloadDelay, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			if err := s.Reload(); err != nil && s.logger != nil {
				s.logger.Error("dataset reload failed", logger.Error(err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if s.logger != nil {
				s.logger.Warn("watcher error", logger.Error(err))
			}
		}
	}
}
