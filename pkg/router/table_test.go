package router

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zoodb/zoodb/pkg/history"
	"github.com/zoodb/zoodb/pkg/routematch"
)

func newZooTable() *Table {
	return NewTable().
		Handle("home", "/").
		Handle("habitats", "/habitats").
		Handle("habitat-new", "/habitats/new").
		Handle("habitat", "/habitats/:id").
		Handle("animal", "/animals/:id")
}

func TestTableResolve(t *testing.T) {
	table := newZooTable()

	tests := []struct {
		path       string
		wantRoute  string
		wantParams routematch.Params
		wantOK     bool
	}{
		{"/", "home", routematch.Params{}, true},
		{"/habitats", "habitats", routematch.Params{}, true},
		{"/habitats/new", "habitat-new", routematch.Params{}, true},
		{"/habitats/arctic", "habitat", routematch.Params{"id": "arctic"}, true},
		{"/animals/7", "animal", routematch.Params{"id": "7"}, true},
		{"/animals/7/photos", "", nil, false},
		{"/giftshop", "", nil, false},
	}

	for _, tt := range tests {
		res, ok, err := table.Resolve(tt.path)
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", tt.path, err)
		}
		if ok != tt.wantOK {
			t.Errorf("Resolve(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			continue
		}
		if res.Route.Name != tt.wantRoute {
			t.Errorf("Resolve(%q) route = %q, want %q", tt.path, res.Route.Name, tt.wantRoute)
		}
		if diff := cmp.Diff(tt.wantParams, res.Params); diff != "" {
			t.Errorf("Resolve(%q) params mismatch (-want +got):\n%s", tt.path, diff)
		}
	}
}

func TestTableResolveDecodeError(t *testing.T) {
	_, ok, err := newZooTable().Resolve("/animals/%zz")
	if ok || !errors.Is(err, routematch.ErrInvalidEncoding) {
		t.Errorf("Resolve() = %v, %v; want ErrInvalidEncoding", ok, err)
	}
}

func TestTableRoutes(t *testing.T) {
	table := newZooTable()
	routes := table.Routes()
	if len(routes) != 5 {
		t.Fatalf("len(Routes()) = %d, want 5", len(routes))
	}
	if routes[3].Name != "habitat" || routes[3].Pattern.String() != "/habitats/:id" {
		t.Errorf("routes[3] = %s %s", routes[3].Name, routes[3].Pattern)
	}

	routes[0].Name = "changed"
	if table.Routes()[0].Name != "home" {
		t.Error("Routes() should return a copy")
	}
}

func TestRouterResolve(t *testing.T) {
	r := Mount(history.NewMemory("/habitats/savanna"))
	defer r.Close()

	res, ok, err := r.Resolve(newZooTable())
	if err != nil || !ok {
		t.Fatalf("Resolve() = %v, %v", ok, err)
	}
	if res.Route.Name != "habitat" || res.Params.Get("id") != "savanna" {
		t.Errorf("Resolve() = %+v", res)
	}
}
