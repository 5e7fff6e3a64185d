package zbytes

import (
	"github.com/arrowbyte/zbytes/internal/store"
	"github.com/arrowbyte/zbytes/internal/zconfig"
)

// HeapCursor is a cursor over an on-heap store. It is non-elastic
// unless built via WrapElastic, matching spec.md §4.4's "on-heap
// cursor (non-elastic unless constructed elastic)".
type HeapCursor struct {
	*cursor
}

// Wrap builds a non-elastic HeapCursor directly over b; writeLimit
// starts at len(b).
func Wrap(b []byte) (*HeapCursor, error) {
	st, err := store.Wrap(b, nil)
	if err != nil {
		return nil, err
	}
	hc := &HeapCursor{cursor: newCursor(st, nil, false, growthHeap, len(b))}
	return hc, nil
}

// WrapWithConfig is Wrap plus cfg-driven leak-check diagnostics on the
// underlying store's reference counter.
func WrapWithConfig(b []byte, cfg *zconfig.Config) (*HeapCursor, error) {
	st, err := store.WrapWithConfig(b, nil, cfg)
	if err != nil {
		return nil, err
	}
	hc := &HeapCursor{cursor: newCursor(st, nil, false, growthHeap, len(b))}
	return hc, nil
}

// WrapElastic builds a HeapCursor over b that may grow up to capacity,
// allocating larger heap stores (or native, once a grow exceeds
// store.HeapMaxSize) as writes demand it.
func WrapElastic(b []byte, capacity int) (*HeapCursor, error) {
	st, err := store.Wrap(b, nil)
	if err != nil {
		return nil, err
	}
	hc := &HeapCursor{cursor: newCursor(st, nil, true, growthHeap, capacity)}
	return hc, nil
}
