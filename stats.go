package bongocat

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// StatsAppName is the gdata application name the key counters are stored under.
const StatsAppName = "bongocat"

// DefaultStatsInterval is how often KeyStats.MaybeSave flushes dirty counters.
const DefaultStatsInterval = 30 * time.Second

const (
	statsObject   = "stats"
	statsProperty = "keys"
)

// KeyCount is one row of KeyStats.Top.
type KeyCount struct {
	Key   string
	Count int
}

// KeyStats counts key presses and persists the counters through gdata.
// A nil manager keeps the counters in memory only. Safe for concurrent use.
type KeyStats struct {
	manager  *gdata.Manager
	interval time.Duration

	mu       sync.Mutex
	counts   map[string]int
	dirty    bool
	lastSave time.Time
}

// OpenKeyStats opens the platform data directory for StatsAppName and loads
// any saved counters. When the directory cannot be opened the returned stats
// work in memory and the error is returned alongside them.
func OpenKeyStats() (*KeyStats, error) {
	m, err := gdata.Open(gdata.Config{AppName: StatsAppName})
	if err != nil {
		return NewKeyStats(nil), fmt.Errorf("bongocat: open stats storage: %w", err)
	}
	s := NewKeyStats(m)
	return s, s.Load()
}

// NewKeyStats returns empty stats backed by manager, which may be nil.
func NewKeyStats(manager *gdata.Manager) *KeyStats {
	return &KeyStats{
		manager:  manager,
		interval: DefaultStatsInterval,
		counts:   make(map[string]int),
		lastSave: time.Now(),
	}
}

// Load replaces the in-memory counters with the saved ones. A missing save
// is not an error.
func (s *KeyStats) Load() error {
	if s.manager == nil || !s.manager.ObjectPropExists(statsObject, statsProperty) {
		return nil
	}
	data, err := s.manager.LoadObjectProp(statsObject, statsProperty)
	if err != nil {
		return fmt.Errorf("bongocat: load stats: %w", err)
	}
	counts := make(map[string]int)
	if err := yaml.Unmarshal(data, &counts); err != nil {
		return fmt.Errorf("bongocat: decode stats: %w", err)
	}
	s.mu.Lock()
	s.counts = counts
	s.dirty = false
	s.mu.Unlock()
	return nil
}

// Record counts one press of key.
func (s *KeyStats) Record(key string) {
	s.mu.Lock()
	s.counts[key]++
	s.dirty = true
	s.mu.Unlock()
}

// Count returns the number of recorded presses of key.
func (s *KeyStats) Count(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[key]
}

// Total returns the number of recorded presses over all keys.
func (s *KeyStats) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.counts {
		n += c
	}
	return n
}

// Top returns the n most pressed keys, most pressed first. Ties are broken
// by key name. n <= 0 returns all keys.
func (s *KeyStats) Top(n int) []KeyCount {
	s.mu.Lock()
	out := make([]KeyCount, 0, len(s.counts))
	for k, c := range s.counts {
		out = append(out, KeyCount{k, c})
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// MaybeSave saves the counters when they changed and the save interval has
// elapsed since the last save. Failures are logged, not returned.
func (s *KeyStats) MaybeSave(now time.Time) {
	s.mu.Lock()
	due := s.dirty && now.Sub(s.lastSave) >= s.interval
	s.mu.Unlock()
	if !due {
		return
	}
	if err := s.Save(); err != nil {
		log.Printf("bongocat: %v", err)
	}
	s.mu.Lock()
	s.lastSave = now
	s.mu.Unlock()
}

// Save writes the counters. Without a manager it only clears the dirty flag.
func (s *KeyStats) Save() error {
	s.mu.Lock()
	data, err := yaml.Marshal(s.counts)
	s.dirty = false
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("bongocat: encode stats: %w", err)
	}
	if s.manager == nil {
		return nil
	}
	if err := s.manager.SaveObjectProp(statsObject, statsProperty, data); err != nil {
		s.mu.Lock()
		s.dirty = true
		s.mu.Unlock()
		return fmt.Errorf("bongocat: save stats: %w", err)
	}
	return nil
}
