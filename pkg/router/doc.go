// Package router tracks the current path of an application and keeps it in
// sync with a browser history.
//
// A Router is created with Mount and torn down with Close. While mounted it
// follows back/forward traversal of the history it was given, and Navigate
// pushes or replaces history entries and updates the current path in one
// step.
//
// # Usage
//
//	h := history.NewMemory("/")
//	r := router.Mount(h)
//	defer r.Close()
//
//	r.Navigate("/animals/42")
//	params, ok, err := r.Match("/animals/:id")
//	// params["id"] == "42"
//
//	r.Navigate("/cart", router.WithReplace(), router.WithoutScrollTop())
//
// # Route tables
//
// Views that branch on many routes can use a Table, which resolves a path
// to the first route whose pattern matches:
//
//	t := router.NewTable()
//	t.Handle("habitat", "/habitats/:id")
//	t.Handle("animal", "/animals/:id")
//	res, ok, err := r.Resolve(t)
//
// There is no support for query strings, hash fragments, nested routes or
// guards. Callers handle those.
package router
