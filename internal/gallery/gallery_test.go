package gallery

import (
	"path/filepath"
	"testing"
	"time"

	"beadatelier/pkg/domain"
)

func entry(id string) domain.Artifact {
	return domain.Artifact{
		ID:          id,
		ImageURL:    "data:image/png;base64,aGVsbG8=",
		Size:        domain.SizeS,
		Shape:       "flower",
		Colors:      []string{"coral"},
		Description: "Petals in warm tones.",
		CreatedAt:   time.Now().UTC(),
	}
}

func TestAppendIsIdempotentByID(t *testing.T) {
	m, err := New("")
	if err != nil {
		t.Fatalf("new mirror: %v", err)
	}
	_ = m.Append(entry("a-1"))
	_ = m.Append(entry("a-1"))
	if got := len(m.List()); got != 1 {
		t.Fatalf("entries = %d, want 1", got)
	}
}

func TestListIsMostRecentFirst(t *testing.T) {
	m, err := New("")
	if err != nil {
		t.Fatalf("new mirror: %v", err)
	}
	_ = m.Append(entry("a-1"))
	_ = m.Append(entry("a-2"))
	_ = m.Append(entry("a-3"))
	got := m.List()
	if got[0].ID != "a-3" || got[2].ID != "a-1" {
		t.Fatalf("order = %s,%s,%s, want a-3,a-2,a-1", got[0].ID, got[1].ID, got[2].ID)
	}

	// Re-appending an existing id moves it to the front.
	_ = m.Append(entry("a-1"))
	got = m.List()
	if len(got) != 3 || got[0].ID != "a-1" {
		t.Fatalf("re-append should move a-1 to front, got %v entries, first %s", len(got), got[0].ID)
	}
}

func TestRemoveUnknownIsNoOp(t *testing.T) {
	m, err := New("")
	if err != nil {
		t.Fatalf("new mirror: %v", err)
	}
	_ = m.Append(entry("a-1"))
	if err := m.Remove("missing"); err != nil {
		t.Fatalf("remove missing: %v", err)
	}
	if err := m.Remove("a-1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := len(m.List()); got != 0 {
		t.Fatalf("entries = %d, want 0", got)
	}
}

func TestMirrorPersistsAcrossReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gallery.json")
	m, err := New(path)
	if err != nil {
		t.Fatalf("new mirror: %v", err)
	}
	_ = m.Append(entry("a-1"))
	_ = m.Append(entry("a-2"))

	reloaded, err := New(path)
	if err != nil {
		t.Fatalf("reload mirror: %v", err)
	}
	got := reloaded.List()
	if len(got) != 2 || got[0].ID != "a-2" {
		t.Fatalf("reloaded entries = %+v, want a-2 first of 2", got)
	}
}
