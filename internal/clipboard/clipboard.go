// Package clipboard provides a best-effort clipboard write: absence or
// failure of a system clipboard is reported as a note, never an error.
package clipboard

import (
	"github.com/atotto/clipboard"

	"github.com/johnzilla/cclink/internal/log"
)

// CopyBestEffort writes text to the system clipboard. It never returns an
// error; callers that want to surface the outcome should check the
// returned bool and print their own one-line note.
func CopyBestEffort(text string) bool {
	if err := clipboard.WriteAll(text); err != nil {
		log.Debug("clipboard copy failed", log.Err(err))
		return false
	}
	return true
}
