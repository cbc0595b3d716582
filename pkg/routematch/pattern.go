package routematch

import (
	"net/url"
	"strings"
)

// Pattern is a route pattern split into segments ahead of time.
// It is immutable and safe for concurrent use.
type Pattern struct {
	raw      string
	segments []string
}

// Compile splits pattern into segments. Every string is a valid pattern.
func Compile(pattern string) *Pattern {
	return &Pattern{raw: pattern, segments: Segments(pattern)}
}

// String returns the pattern as it was given to Compile.
func (p *Pattern) String() string {
	return p.raw
}

// Match is like the package-level Match with the pattern already split.
func (p *Pattern) Match(path string) (Params, bool, error) {
	return matchSegments(p.segments, Segments(path))
}

// Params returns the parameter names in the order they appear. A name that
// repeats is listed once per occurrence.
func (p *Pattern) Params() []string {
	var names []string
	for _, seg := range p.segments {
		if isParam(seg) {
			names = append(names, seg[1:])
		}
	}
	return names
}

// Static reports whether the pattern has no parameter segments.
func (p *Pattern) Static() bool {
	for _, seg := range p.segments {
		if isParam(seg) {
			return false
		}
	}
	return true
}

// Build fills the pattern's parameters from params and returns a path.
// Values are percent-encoded; missing parameters produce an empty segment,
// which is dropped.
func (p *Pattern) Build(params Params) string {
	var b strings.Builder
	for _, seg := range p.segments {
		if isParam(seg) {
			seg = url.PathEscape(params[seg[1:]])
			if seg == "" {
				continue
			}
		}
		b.WriteByte('/')
		b.WriteString(seg)
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}
