package routematch

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ParamPrefix marks a pattern segment as a named parameter.
const ParamPrefix = ':'

// ErrInvalidEncoding is reported when a path segment bound to a parameter
// contains a malformed percent-escape.
var ErrInvalidEncoding = errors.New("invalid percent-encoding in path segment")

// DecodeError describes a parameter segment that could not be decoded.
type DecodeError struct {
	// Param is the parameter name the segment was bound to.
	Param string

	// Segment is the raw path segment.
	Segment string

	// Err is the error returned by the decoder.
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding param %q from segment %q: %v", e.Param, e.Segment, e.Err)
}

// Unwrap returns ErrInvalidEncoding and the decoder error.
func (e *DecodeError) Unwrap() []error {
	return []error{ErrInvalidEncoding, e.Err}
}

// Params maps parameter names to decoded segment values.
type Params map[string]string

// Get returns the value bound to name, or "" when it is absent.
func (p Params) Get(name string) string {
	return p[name]
}

// Segments splits a path on '/' and drops empty segments.
func Segments(path string) []string {
	if path == "" {
		return nil
	}
	segments := make([]string, 0, strings.Count(path, "/")+1)
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '/' {
			if i > start {
				segments = append(segments, path[start:i])
			}
			start = i + 1
		}
	}
	return segments
}

// Match reports whether path satisfies pattern and returns the bound
// parameters.
//
// ok is false with a nil error when the segment counts differ or a literal
// segment does not match. A parameter name that appears more than once takes
// the value of its last occurrence.
func Match(pattern, path string) (Params, bool, error) {
	return matchSegments(Segments(pattern), Segments(path))
}

func matchSegments(pattern, path []string) (Params, bool, error) {
	if len(pattern) != len(path) {
		return nil, false, nil
	}

	params := Params{}
	for i, seg := range pattern {
		if isParam(seg) {
			name := seg[1:]
			value, err := url.PathUnescape(path[i])
			if err != nil {
				return nil, false, &DecodeError{Param: name, Segment: path[i], Err: err}
			}
			params[name] = value
			continue
		}
		if seg != path[i] {
			return nil, false, nil
		}
	}
	return params, true, nil
}

func isParam(seg string) bool {
	return len(seg) > 0 && seg[0] == ParamPrefix
}
