package history

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMemoryPushReplace(t *testing.T) {
	m := NewMemory("/")
	m.Push("/habitats")
	m.Push("/habitats/arctic")
	if got := m.Location(); got != "/habitats/arctic" {
		t.Errorf("Location() = %q", got)
	}
	if got := m.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}

	m.Replace("/cart")
	if got := m.Location(); got != "/cart" {
		t.Errorf("Location() after Replace = %q", got)
	}
	if got := m.Len(); got != 3 {
		t.Errorf("Replace changed Len() to %d", got)
	}
}

func TestMemoryEmptyInitial(t *testing.T) {
	if got := NewMemory("").Location(); got != "/" {
		t.Errorf("Location() = %q, want /", got)
	}
}

func TestMemoryPushTruncatesForward(t *testing.T) {
	m := NewMemory("/a")
	m.Push("/b")
	m.Push("/c")
	m.Back()
	m.Back()
	m.Push("/d")

	entries, index := m.Entries()
	if diff := cmp.Diff([]string{"/a", "/d"}, entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	if index != 1 {
		t.Errorf("index = %d, want 1", index)
	}
}

func TestMemoryTraversalDispatchesPopState(t *testing.T) {
	m := NewMemory("/a")
	m.Push("/b")

	var got []string
	unsubscribe := m.OnPopState(func(path string) {
		got = append(got, path)
	})

	m.Back()
	m.Back() // out of range, no dispatch
	m.Forward()
	m.Forward() // out of range
	m.Go(0)

	if diff := cmp.Diff([]string{"/a", "/b"}, got); diff != "" {
		t.Errorf("pop-state paths mismatch (-want +got):\n%s", diff)
	}

	unsubscribe()
	unsubscribe()
	m.Back()
	if len(got) != 2 {
		t.Errorf("listener called after unsubscribe: %v", got)
	}
	if m.Listeners() != 0 {
		t.Errorf("Listeners() = %d, want 0", m.Listeners())
	}
}

func TestMemoryPushDoesNotDispatch(t *testing.T) {
	m := NewMemory("/")
	called := false
	m.OnPopState(func(string) { called = true })
	m.Push("/a")
	m.Replace("/b")
	if called {
		t.Error("Push/Replace should not dispatch pop-state")
	}
}

func TestMemoryListenerMayReenter(t *testing.T) {
	m := NewMemory("/a")
	m.Push("/b")
	var seen string
	m.OnPopState(func(string) {
		seen = m.Location()
	})
	m.Back()
	if seen != "/a" {
		t.Errorf("listener saw %q, want /a", seen)
	}
}

func TestMemoryScroll(t *testing.T) {
	m := NewMemory("/")
	m.ScrollTo(10, 20)
	if x, y := m.Scroll(); x != 10 || y != 20 {
		t.Errorf("Scroll() = %d, %d", x, y)
	}
}
