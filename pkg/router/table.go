package router

import (
	"sync"

	"github.com/zoodb/zoodb/pkg/routematch"
)

// Route is a named route pattern.
type Route struct {
	Name    string
	Pattern *routematch.Pattern
}

// Resolution is the result of resolving a path against a Table.
type Resolution struct {
	Route  Route
	Params routematch.Params
}

// Table is an ordered list of routes. The first matching route wins.
type Table struct {
	mu     sync.RWMutex
	routes []Route
}

// NewTable creates an empty route table.
func NewTable() *Table {
	return &Table{}
}

// Handle appends a route and returns t for chaining.
func (t *Table) Handle(name, pattern string) *Table {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.routes = append(t.routes, Route{Name: name, Pattern: routematch.Compile(pattern)})
	return t
}

// Routes returns the routes in registration order.
func (t *Table) Routes() []Route {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Resolve returns the first route matching path. A decode error from a
// candidate route stops the search and is returned.
func (t *Table) Resolve(path string) (Resolution, bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, route := range t.routes {
		params, ok, err := route.Pattern.Match(path)
		if err != nil {
			return Resolution{}, false, err
		}
		if ok {
			return Resolution{Route: route, Params: params}, true, nil
		}
	}
	return Resolution{}, false, nil
}
