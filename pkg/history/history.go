// Package history abstracts the browser History API.
//
// The router only depends on the History interface, so the same router code
// runs against an in-process Memory history in tests and server sessions,
// or against a remote browser driven over a WebSocket.
package history

// History is the subset of the browser History API the router needs.
type History interface {
	// Location returns the path of the current entry.
	Location() string

	// Push appends a new entry and makes it current. Entries after the
	// current one are discarded.
	Push(path string)

	// Replace overwrites the current entry.
	Replace(path string)

	// Len returns the number of entries.
	Len() int

	// OnPopState registers fn to be called when the current entry changes
	// through back/forward traversal. Push and Replace never trigger it.
	// The returned function removes the registration and may be called more
	// than once.
	OnPopState(fn func(path string)) (unsubscribe func())
}

// Traverser is implemented by histories that can move between entries.
type Traverser interface {
	Back()
	Forward()
	Go(delta int)
}

// Scroller moves the viewport.
type Scroller interface {
	ScrollTo(x, y int)
}
