package quota

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestDayTrackerExhaustionAndRemaining(t *testing.T) {
	tracker, err := NewDayTracker("", 3)
	if err != nil {
		t.Fatalf("new tracker: %v", err)
	}
	if !tracker.CanGenerate() {
		t.Fatalf("fresh tracker should allow generation")
	}
	if got := tracker.Remaining(); got != 3 {
		t.Fatalf("remaining = %d, want 3", got)
	}
	for i := 0; i < 3; i++ {
		if err := tracker.RecordGeneration(); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}
	if tracker.CanGenerate() {
		t.Fatalf("tracker should be exhausted after 3 generations")
	}
	if got := tracker.Remaining(); got != 0 {
		t.Fatalf("remaining = %d, want 0", got)
	}
}

func TestDayTrackerResetsAtDayRollover(t *testing.T) {
	tracker, err := NewDayTracker("", 3)
	if err != nil {
		t.Fatalf("new tracker: %v", err)
	}
	day := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return day }

	for i := 0; i < 3; i++ {
		_ = tracker.RecordGeneration()
	}
	if tracker.CanGenerate() {
		t.Fatalf("tracker should be exhausted")
	}

	day = day.AddDate(0, 0, 1)
	if !tracker.CanGenerate() {
		t.Fatalf("day rollover should reset the allowance")
	}
	if got := tracker.Remaining(); got != 3 {
		t.Fatalf("remaining after rollover = %d, want 3", got)
	}
}

func TestDayTrackerNeverReturnsNegativeRemaining(t *testing.T) {
	tracker, err := NewDayTracker("", 1)
	if err != nil {
		t.Fatalf("new tracker: %v", err)
	}
	_ = tracker.RecordGeneration()
	_ = tracker.RecordGeneration()
	if got := tracker.Remaining(); got != 0 {
		t.Fatalf("remaining = %d, want 0", got)
	}
}

func TestDayTrackerPersistsAcrossRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quota.json")
	tracker, err := NewDayTracker(path, 3)
	if err != nil {
		t.Fatalf("new tracker: %v", err)
	}
	_ = tracker.RecordGeneration()
	_ = tracker.RecordGeneration()

	reloaded, err := NewDayTracker(path, 3)
	if err != nil {
		t.Fatalf("reload tracker: %v", err)
	}
	if got := reloaded.Remaining(); got != 1 {
		t.Fatalf("remaining after reload = %d, want 1", got)
	}
}

func TestRedisDayLimiter(t *testing.T) {
	srv := miniredis.RunT(t)
	limiter, err := NewRedisDayLimiter(srv.Addr(), "", "test:quota", 2)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}
	if !limiter.Allow("client-1") {
		t.Fatalf("first generation should pass")
	}
	if !limiter.Allow("client-1") {
		t.Fatalf("second generation should pass")
	}
	if limiter.Allow("client-1") {
		t.Fatalf("third generation should be blocked")
	}
	if !limiter.Allow("client-2") {
		t.Fatalf("allowance is per key")
	}
}

func TestRedisDayLimiterFailsClosed(t *testing.T) {
	srv := miniredis.RunT(t)
	limiter, err := NewRedisDayLimiter(srv.Addr(), "", "test:quota", 2)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}
	srv.Close()
	if limiter.Allow("client-1") {
		t.Fatalf("limiter should fail closed on redis errors")
	}
}

func TestRedisDayLimiterRequiresAddr(t *testing.T) {
	if _, err := NewRedisDayLimiter("", "", "", 1); err == nil {
		t.Fatalf("expected constructor error for empty redis addr")
	}
}
