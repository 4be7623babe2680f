// Package quota bounds how many generations a client may request per
// calendar day (UTC). The day tracker is advisory: it lives with the client
// and shapes the UI, it is not an entitlement system.
package quota

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultDailyLimit is the reference allowance per calendar day.
const DefaultDailyLimit = 3

const dayFormat = "2006-01-02"

// Tracker is the day-scoped generation allowance.
type Tracker interface {
	CanGenerate() bool
	Remaining() int
	RecordGeneration() error
}

type state struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DayTracker counts generations per UTC day with a lazy reset: whenever the
// stored date no longer matches today, the count starts over. State is
// persisted to a JSON file when a path is configured, so the allowance
// survives restarts. The count is never decremented.
type DayTracker struct {
	mu    sync.Mutex
	path  string
	limit int
	now   func() time.Time
	state state
}

// NewDayTracker builds a tracker persisting to path (empty keeps state in
// memory only). limit <= 0 selects DefaultDailyLimit.
func NewDayTracker(path string, limit int) (*DayTracker, error) {
	if limit <= 0 {
		limit = DefaultDailyLimit
	}
	t := &DayTracker{
		path:  path,
		limit: limit,
		now:   time.Now,
	}
	if path != "" {
		if err := t.load(); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// CanGenerate reports whether the allowance for today is not yet exhausted.
func (t *DayTracker) CanGenerate() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover()
	return t.state.Count < t.limit
}

// Remaining returns the generations left today, floored at 0.
func (t *DayTracker) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover()
	if left := t.limit - t.state.Count; left > 0 {
		return left
	}
	return 0
}

// RecordGeneration consumes one unit of today's allowance.
func (t *DayTracker) RecordGeneration() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover()
	t.state.Count++
	return t.persist()
}

// rollover applies the lazy day reset. Caller holds the lock.
func (t *DayTracker) rollover() {
	today := t.now().UTC().Format(dayFormat)
	if t.state.Date != today {
		t.state = state{Date: today, Count: 0}
	}
}

func (t *DayTracker) load() error {
	data, err := os.ReadFile(t.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read quota state: %w", err)
	}
	if err := json.Unmarshal(data, &t.state); err != nil {
		// A corrupt state file resets the allowance rather than bricking
		// the client.
		t.state = state{}
	}
	return nil
}

// persist writes state atomically via temp file + rename. Caller holds the
// lock.
func (t *DayTracker) persist() error {
	if t.path == "" {
		return nil
	}
	data, err := json.Marshal(t.state)
	if err != nil {
		return fmt.Errorf("encode quota state: %w", err)
	}
	tmp := t.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		return fmt.Errorf("create quota dir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write quota state: %w", err)
	}
	if err := os.Rename(tmp, t.path); err != nil {
		return fmt.Errorf("replace quota state: %w", err)
	}
	return nil
}
