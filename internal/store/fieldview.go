package store

import (
	"github.com/arrowbyte/zbytes/internal/fieldgroup"
	"github.com/arrowbyte/zbytes/internal/zerr"
)

// NewHeapField builds a HeapStore over the sub-region of hostBuf that
// layout assigns to group, offset by padding bytes, per spec.md §4.7's
// "on-heap store constructed over (hostObject, groupName, padding)".
func NewHeapField(hostBuf []byte, layout *fieldgroup.Layout, group string, padding int, owner any) (*HeapStore, error) {
	if !layout.Has(group) {
		return nil, zerr.Argument("unknown field group", map[string]any{"group": group})
	}
	start := int(layout.StartOf(group)) + padding
	length := int(layout.LengthOf(group)) - padding
	if start < 0 || length < 0 || start+length > len(hostBuf) {
		return nil, zerr.Argument("field group out of host bounds",
			map[string]any{"start": start, "length": length, "hostLen": len(hostBuf)})
	}
	return NewHeap(hostBuf[start:start+length:start+length], owner, false)
}
