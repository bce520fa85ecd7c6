// Package logging provides a unified logging interface for the resource
// monitor. It abstracts the underlying logging implementation, allowing
// consistent logging across components while supporting multiple backends.
//
// The metrics layer logs recoverable read failures at Debug level only:
// a monitoring run favors completing over reporting every hiccup, so
// nothing below a configuration or fatal error is user-visible.
package logging
