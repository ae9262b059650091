package bongocat

import (
	"bytes"
	"errors"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultReloadInterval is how often ConfigWatcher re-reads its file.
const DefaultReloadInterval = time.Second

// ConfigWatcher keeps the latest valid Config for a file and republishes it
// whenever the file changes. Readers call Current once per frame and use that
// snapshot for the whole frame.
type ConfigWatcher struct {
	path     string
	interval time.Duration

	current atomic.Pointer[Config]

	mu       sync.Mutex
	lastData []byte // content of the last successful parse
	lastErr  string // last logged failure

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewConfigWatcher loads path once and returns a watcher serving that
// snapshot. A failing initial load is returned as an error: without a valid
// first snapshot there is nothing to fall back to. interval <= 0 selects
// DefaultReloadInterval.
func NewConfigWatcher(path string, interval time.Duration) (*ConfigWatcher, error) {
	if interval <= 0 {
		interval = DefaultReloadInterval
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		setErrorPath(err, path)
		return nil, err
	}
	w := &ConfigWatcher{
		path:     path,
		interval: interval,
		lastData: data,
		stopCh:   make(chan struct{}),
	}
	w.current.Store(cfg)
	return w, nil
}

// Current returns the active snapshot. Never nil.
func (w *ConfigWatcher) Current() *Config {
	return w.current.Load()
}

// Start begins polling in a background goroutine.
func (w *ConfigWatcher) Start() {
	w.wg.Add(1)
	go w.run()
}

// Stop ends polling and waits for the goroutine to exit. Safe to call more
// than once.
func (w *ConfigWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.wg.Wait()
}

func (w *ConfigWatcher) run() {
	defer w.wg.Done()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Reload()
		}
	}
}

// Reload re-reads the file once. On failure the error is logged, the
// previous snapshot stays active and the error is returned. An unchanged
// file is not re-parsed.
func (w *ConfigWatcher) Reload() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	data, err := os.ReadFile(w.path)
	if err == nil && bytes.Equal(data, w.lastData) {
		w.recovered()
		return nil
	}
	var cfg *Config
	if err == nil {
		cfg, err = ParseConfig(data)
		setErrorPath(err, w.path)
	}
	if err != nil {
		if msg := err.Error(); msg != w.lastErr {
			log.Printf("bongocat: config reload failed, keeping previous values: %v", err)
			w.lastErr = msg
		}
		return err
	}
	w.recovered()
	w.lastData = data
	w.current.Store(cfg)
	return nil
}

func (w *ConfigWatcher) recovered() {
	if w.lastErr != "" {
		log.Printf("bongocat: config %s valid again", w.path)
		w.lastErr = ""
	}
}

func setErrorPath(err error, path string) {
	var pe *ConfigParseError
	if errors.As(err, &pe) {
		pe.Path = path
	}
}
