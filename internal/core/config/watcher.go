package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const (
	debounceDelay   = 50 * time.Millisecond
	eventBufferSize = 8
)

// Reload is delivered after the config file changes on disk. Err is set
// when the new file could not be loaded; the previous config stays in effect.
type Reload struct {
	Config *Config
	Err    error
}

// Watcher reloads the config file whenever it is written, created or
// renamed into place. The parent directory is watched so editors that
// replace the file atomically are still seen.
type Watcher struct {
	path    string
	dataDir string
	watcher *fsnotify.Watcher
	log     zerolog.Logger

	events chan Reload

	mu     sync.Mutex
	timer  *time.Timer
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher starts watching configPath. The parent directory must exist.
func NewWatcher(configPath, dataDir string, log zerolog.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(configPath)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:    filepath.Clean(configPath),
		dataDir: dataDir,
		watcher: watcher,
		log:     log,
		events:  make(chan Reload, eventBufferSize),
		ctx:     ctx,
		cancel:  cancel,
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

// Events returns the channel reloads are delivered on. It is closed by Close.
func (w *Watcher) Events() <-chan Reload { return w.events }

// Close stops watching and closes the events channel.
func (w *Watcher) Close() error {
	w.cancel()

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()

	w.mu.Lock()
	w.closed = true
	close(w.events)
	w.mu.Unlock()
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("config watcher error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceDelay, w.reload)
}

func (w *Watcher) reload() {
	if _, err := os.Stat(w.path); err != nil {
		// renamed away; the follow-up create triggers the real reload
		return
	}

	cfg, err := Load(w.path, w.dataDir)
	if err != nil {
		w.log.Warn().Err(err).Str("path", w.path).Msg("config reload failed")
	} else {
		w.log.Debug().Str("path", w.path).Msg("config reloaded")
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case w.events <- Reload{Config: cfg, Err: err}:
	default:
		// consumer is behind; it will see the next change
	}
}
