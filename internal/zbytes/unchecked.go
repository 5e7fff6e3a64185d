package zbytes

import "github.com/arrowbyte/zbytes/internal/store"

// UncheckedInput is the unchecked random-read view of spec.md §4.4.2,
// sourced from whichever unchecked capability the cursor's underlying
// store exposes.
type UncheckedInput = store.UncheckedInput

type uncheckedCapable interface {
	Unchecked() (UncheckedInput, bool)
}

// Unchecked returns the cursor's underlying unchecked random-read view,
// if its store exposes one.
func (c *cursor) Unchecked() (UncheckedInput, bool) {
	u, ok := c.st.(uncheckedCapable)
	if !ok {
		return nil, false
	}
	return u.Unchecked()
}
