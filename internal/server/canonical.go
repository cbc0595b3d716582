package server

import (
	"errors"
	"strings"
)

var (
	errNullByte      = errors.New("server: path contains a null byte")
	errEscapesRoot   = errors.New("server: path escapes root")
	errBadPercentEsc = errors.New("server: invalid percent escape in path")
)

// canonicalPath normalizes an escaped request path for the page shell:
// duplicate slashes collapse, "." and ".." segments resolve and the
// trailing slash goes away. Escapes are validated but never decoded, so
// the result is still safe to hand to the route table.
func canonicalPath(path string) (string, error) {
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return "", errNullByte
	}
	if err := validateEscapes(path); err != nil {
		return "", err
	}

	var out []string
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(out) == 0 {
				return "", errEscapesRoot
			}
			out = out[:len(out)-1]
		default:
			out = append(out, seg)
		}
	}
	return "/" + strings.Join(out, "/"), nil
}

func validateEscapes(path string) error {
	for i := 0; i < len(path); i++ {
		if path[i] != '%' {
			continue
		}
		if i+2 >= len(path) || !isHex(path[i+1]) || !isHex(path[i+2]) {
			return errBadPercentEsc
		}
		i += 2
	}
	return nil
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
