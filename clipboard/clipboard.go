// Package clipboard wraps the system clipboard as a write-only secret
// sink for the "clip" command.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned by Copy when no clipboard mechanism is
// available on the host (headless Linux with no X11/Wayland utility
// installed, for example).
var ErrUnavailable = errors.New("clipboard: unavailable")

// Copy places text on the system clipboard.
func Copy(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
