// Package routematch matches URL paths against route patterns.
//
// A pattern is a slash-separated list of segments. A segment that starts
// with ':' is a parameter and binds whatever the path holds at the same
// position; any other segment must match the path byte for byte.
//
//	params, ok, err := routematch.Match("/animals/:id", "/animals/42")
//	// params["id"] == "42", ok == true, err == nil
//
// Empty segments are discarded, so "/a//b/" and "a/b" are the same path.
// Patterns and paths must have the same number of segments to match; there
// are no wildcards, optional segments or catch-alls.
//
// A failed match is not an error. Match reports it with ok == false and a
// nil Params, which keeps it distinct from a static route that matched with
// no parameters (ok == true, empty Params). Errors are reserved for
// parameter segments whose percent-encoding cannot be decoded.
package routematch
