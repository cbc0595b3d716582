package server

import (
	"sync"

	"github.com/zoodb/zoodb/pkg/history"
)

// clientHistory mirrors the history of the browser at the other end of a
// navigation session. Push, Replace, Go and ScrollTo are forwarded to the
// browser as messages; pop-state is dispatched when the browser reports a
// back/forward traversal.
//
// Len is the length the browser last reported plus pushes made since. A
// push after a traversal truncates forward entries in the browser, so the
// count can run ahead until the next report.
type clientHistory struct {
	send func(any)

	mu        sync.Mutex
	location  string
	length    int
	nextID    int
	listeners map[int]func(string)
}

func newClientHistory(location string, length int, send func(any)) *clientHistory {
	if location == "" {
		location = "/"
	}
	if length < 1 {
		length = 1
	}
	return &clientHistory{
		send:      send,
		location:  location,
		length:    length,
		listeners: make(map[int]func(string)),
	}
}

func (h *clientHistory) Location() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.location
}

func (h *clientHistory) Push(path string) {
	h.mu.Lock()
	h.location = path
	h.length++
	h.mu.Unlock()
	h.send(historyMessage{Type: "history", Op: "push", Path: path})
}

func (h *clientHistory) Replace(path string) {
	h.mu.Lock()
	h.location = path
	h.mu.Unlock()
	h.send(historyMessage{Type: "history", Op: "replace", Path: path})
}

func (h *clientHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.length
}

func (h *clientHistory) OnPopState(fn func(path string)) func() {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.listeners, id)
		h.mu.Unlock()
	}
}

func (h *clientHistory) Back()    { h.Go(-1) }
func (h *clientHistory) Forward() { h.Go(1) }

// Go asks the browser to traverse. The location changes when the browser
// answers with a popstate message.
func (h *clientHistory) Go(delta int) {
	if delta == 0 {
		return
	}
	h.send(historyMessage{Type: "history", Op: "go", Delta: delta})
}

func (h *clientHistory) ScrollTo(x, y int) {
	h.send(scrollMessage{Type: "scroll", X: x, Y: y})
}

// popState records a traversal reported by the browser and notifies
// listeners.
func (h *clientHistory) popState(path string, length int) {
	h.mu.Lock()
	h.location = path
	if length > 0 {
		h.length = length
	}
	fns := make([]func(string), 0, len(h.listeners))
	for _, fn := range h.listeners {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(path)
	}
}

var (
	_ history.History   = (*clientHistory)(nil)
	_ history.Traverser = (*clientHistory)(nil)
	_ history.Scroller  = (*clientHistory)(nil)
)
