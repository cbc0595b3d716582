package routematch

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSegments(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"", nil},
		{"/", []string{}},
		{"/a/b", []string{"a", "b"}},
		{"a/b/", []string{"a", "b"}},
		{"//a///b//", []string{"a", "b"}},
		{"/animals/:id", []string{"animals", ":id"}},
	}

	for _, tt := range tests {
		got := Segments(tt.path)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Segments(%q) mismatch (-want +got):\n%s", tt.path, diff)
		}
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		want    Params
		wantOK  bool
	}{
		{"param", "/animals/:id", "/animals/42", Params{"id": "42"}, true},
		{"extra segment", "/animals/:id", "/animals/42/extra", nil, false},
		{"missing segment", "/animals/:id", "/animals", nil, false},
		{"static", "/a/b", "/a/b", Params{}, true},
		{"static mismatch", "/a/b", "/a/c", nil, false},
		{"duplicate name last wins", "/a/:x/:x", "/a/1/2", Params{"x": "2"}, true},
		{"percent decoded", "/users/:name", "/users/John%20Doe", Params{"name": "John Doe"}, true},
		{"encoded slash decoded", "/files/:name", "/files/a%2Fb", Params{"name": "a/b"}, true},
		{"root", "/", "/", Params{}, true},
		{"root vs empty", "", "/", Params{}, true},
		{"separators ignored", "/habitats/:id/", "//habitats///savanna", Params{"id": "savanna"}, true},
		{"literal is case sensitive", "/Animals", "/animals", nil, false},
		{"literal not decoded", "/a%20b", "/a b", nil, false},
		{"any value accepted", "/animals/:id", "/animals/not-a-number", Params{"id": "not-a-number"}, true},
		{"plus kept", "/q/:term", "/q/a+b", Params{"term": "a+b"}, true},
		{"multiple params", "/habitats/:habitat/animals/:animal", "/habitats/arctic/animals/7", Params{"habitat": "arctic", "animal": "7"}, true},
		{"bare sentinel binds empty name", "/a/:", "/a/x", Params{"": "x"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := Match(tt.pattern, tt.path)
			if err != nil {
				t.Fatalf("Match(%q, %q) error = %v", tt.pattern, tt.path, err)
			}
			if ok != tt.wantOK {
				t.Fatalf("Match(%q, %q) ok = %v, want %v", tt.pattern, tt.path, ok, tt.wantOK)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Match(%q, %q) params mismatch (-want +got):\n%s", tt.pattern, tt.path, diff)
			}
		})
	}
}

func TestMatchNoMatchIsNil(t *testing.T) {
	params, ok, err := Match("/a/:x", "/b/1")
	if err != nil || ok {
		t.Fatalf("Match() = %v, %v, %v; want no match", params, ok, err)
	}
	if params != nil {
		t.Errorf("no match should return nil params, got %v", params)
	}

	params, ok, _ = Match("/a", "/a")
	if !ok || params == nil {
		t.Errorf("static match should return non-nil empty params, got %v, %v", params, ok)
	}
}

func TestMatchArityAlwaysNoMatch(t *testing.T) {
	patterns := []string{"/", "/a", "/:x", "/a/:x", "/:x/:y/:z"}
	paths := []string{"/", "/a", "/a/b", "/a/b/c", "/a/b/c/d"}

	for _, pattern := range patterns {
		for _, path := range paths {
			if len(Segments(pattern)) == len(Segments(path)) {
				continue
			}
			if _, ok, err := Match(pattern, path); ok || err != nil {
				t.Errorf("Match(%q, %q) = %v, %v; want no match", pattern, path, ok, err)
			}
		}
	}
}

func TestMatchDecodeError(t *testing.T) {
	for _, path := range []string{"/users/%zz", "/users/100%", "/users/%4"} {
		params, ok, err := Match("/users/:name", path)
		if err == nil {
			t.Fatalf("Match(%q) expected error, got params %v", path, params)
		}
		if ok || params != nil {
			t.Errorf("Match(%q) should not report a match on decode error", path)
		}
		if !errors.Is(err, ErrInvalidEncoding) {
			t.Errorf("error %v should wrap ErrInvalidEncoding", err)
		}
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("error %T should be *DecodeError", err)
		}
		if de.Param != "name" {
			t.Errorf("DecodeError.Param = %q, want %q", de.Param, "name")
		}
	}
}

func TestMatchLiteralMismatchBeforeDecode(t *testing.T) {
	// The literal mismatch in the first segment wins; the bad escape is never decoded.
	_, ok, err := Match("/a/:x", "/b/%zz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected no match")
	}
}

func TestMatchDoesNotMutateInputs(t *testing.T) {
	pattern, path := "/animals/:id", "/animals/John%20Doe"
	p, q := pattern, path
	if _, _, err := Match(p, q); err != nil {
		t.Fatal(err)
	}
	if p != pattern || q != path {
		t.Error("Match modified its inputs")
	}
}

func TestParamsGet(t *testing.T) {
	p := Params{"id": "42"}
	if got := p.Get("id"); got != "42" {
		t.Errorf("Get(id) = %q", got)
	}
	if got := p.Get("missing"); got != "" {
		t.Errorf("Get(missing) = %q, want empty", got)
	}
	var nilParams Params
	if got := nilParams.Get("id"); got != "" {
		t.Errorf("nil Params Get = %q", got)
	}
}
