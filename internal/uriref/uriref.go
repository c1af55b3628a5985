// Package uriref wraps the generic URI parser for the syntax checks
// schema construction needs. Semantics (resolution, dereferencing) stay
// outside the core.
package uriref

import "net/url"

// IsURI reports whether s is syntactically parseable as a URI.
func IsURI(s string) bool {
	_, err := url.Parse(s)
	return err == nil
}

// IsURIReference reports whether s is syntactically parseable as a URI
// reference (a full URI or a relative reference, fragments included).
func IsURIReference(s string) bool {
	_, err := url.Parse(s)
	return err == nil
}
