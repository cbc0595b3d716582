package history

import "sync"

// Memory is an in-process History. The zero value is not usable; create one
// with NewMemory.
type Memory struct {
	mu      sync.Mutex
	entries []string
	index   int

	nextID    int
	listeners map[int]func(string)

	scrollX, scrollY int
}

// NewMemory returns a history with a single entry at initial.
func NewMemory(initial string) *Memory {
	if initial == "" {
		initial = "/"
	}
	return &Memory{
		entries:   []string{initial},
		listeners: make(map[int]func(string)),
	}
}

// Location implements History.
func (m *Memory) Location() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[m.index]
}

// Push implements History.
func (m *Memory) Push(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries[:m.index+1], path)
	m.index = len(m.entries) - 1
}

// Replace implements History.
func (m *Memory) Replace(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[m.index] = path
}

// Len implements History.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Entries returns a copy of the entry stack and the current index.
func (m *Memory) Entries() ([]string, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.entries))
	copy(out, m.entries)
	return out, m.index
}

// OnPopState implements History.
func (m *Memory) OnPopState(fn func(path string)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// Listeners returns the number of registered pop-state listeners.
func (m *Memory) Listeners() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.listeners)
}

// Back implements Traverser.
func (m *Memory) Back() { m.Go(-1) }

// Forward implements Traverser.
func (m *Memory) Forward() { m.Go(1) }

// Go moves delta entries from the current one and dispatches pop-state.
// Moves outside the stack, and a zero delta, do nothing.
func (m *Memory) Go(delta int) {
	m.mu.Lock()
	target := m.index + delta
	if delta == 0 || target < 0 || target >= len(m.entries) {
		m.mu.Unlock()
		return
	}
	m.index = target
	path := m.entries[target]
	fns := make([]func(string), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(path)
	}
}

// ScrollTo implements Scroller.
func (m *Memory) ScrollTo(x, y int) {
	m.mu.Lock()
	m.scrollX, m.scrollY = x, y
	m.mu.Unlock()
}

// Scroll returns the last position passed to ScrollTo.
func (m *Memory) Scroll() (x, y int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scrollX, m.scrollY
}

var (
	_ History   = (*Memory)(nil)
	_ Traverser = (*Memory)(nil)
	_ Scroller  = (*Memory)(nil)
)
