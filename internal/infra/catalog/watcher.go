package catalog

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"mcpstarter/internal/domain"
)

// Watcher reloads the item store when the backing file changes.
type Watcher struct {
	loader   *Loader
	store    *Store
	path     string
	emitter  domain.ListChangeEmitter
	logger   *zap.Logger
	debounce time.Duration
}

func NewWatcher(loader *Loader, store *Store, path string, emitter domain.ListChangeEmitter, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		loader:   loader,
		store:    store,
		path:     path,
		emitter:  emitter,
		logger:   logger.Named("catalog_watcher"),
		debounce: domain.DefaultReloadDebounce,
	}
}

// Reload re-reads the file and swaps the store contents. A broken file keeps
// the previous catalog.
func (w *Watcher) Reload(ctx context.Context) error {
	items, err := w.loader.Load(ctx, w.path)
	if err != nil {
		return err
	}
	w.store.Replace(items)
	w.logger.Info("item catalog reloaded", zap.String("path", w.path), zap.Int("items", len(items)))
	if w.emitter != nil {
		w.emitter.EmitListChange(domain.ListChangeEvent{Kind: domain.ListChangeItems, Name: w.path})
	}
	return nil
}

// Run watches the catalog directory until ctx is done. Editors often replace
// files by rename, so the parent directory is watched and events are
// filtered by name.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	target := filepath.Clean(w.path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("item watcher error", zap.Error(err))
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
		case <-timerChan(timer):
			timer = nil
			if err := w.Reload(ctx); err != nil {
				w.logger.Warn("item catalog reload failed", zap.String("path", w.path), zap.Error(err))
			}
		}
	}
}

func timerChan(timer *time.Timer) <-chan time.Time {
	if timer == nil {
		return nil
	}
	return timer.C
}
