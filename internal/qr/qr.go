// Package qr renders a pickup command as a scannable code for --qr.
//
// No QR-encoding library appears anywhere in the reference corpus this
// module was built from, and fabricating a from-scratch QR encoder is out
// of scope for a CLI collaborator this thin. Renderer is kept as an
// interface so a real terminal-QR library can be dropped in later; the
// shipped implementation degrades the same way the clipboard collaborator
// does when no backing capability is available: a note, never an error.
package qr

import "io"

// Renderer draws value (typically the pickup command or the z32 pubkey)
// to w in whatever form the implementation supports.
type Renderer interface {
	Render(w io.Writer, value string) error
}

// NoOpRenderer satisfies Renderer without drawing anything; Render always
// succeeds so callers never need to special-case its absence.
type NoOpRenderer struct{}

func (NoOpRenderer) Render(_ io.Writer, _ string) error { return nil }

// Default is the Renderer used when no terminal-QR implementation has
// been wired in.
var Default Renderer = NoOpRenderer{}

// RenderBestEffort renders value with Default, reporting whether anything
// was actually drawn. A false result is a note for the caller to print,
// never an error.
func RenderBestEffort(w io.Writer, value string) bool {
	if _, ok := Default.(NoOpRenderer); ok {
		return false
	}
	return Default.Render(w, value) == nil
}
