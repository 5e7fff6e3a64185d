package zbytes

import (
	"github.com/google/uuid"

	"github.com/arrowbyte/zbytes/internal/store"
	"github.com/arrowbyte/zbytes/internal/zconfig"
)

// NativeCursor is a cursor over native memory. It is always elastic,
// per spec.md §4.4.
type NativeCursor struct {
	*cursor
}

// ElasticBuffer allocates a native store of initialSize (4096 bytes if
// zero) and wraps it in a NativeCursor that may grow up to
// capacityLimit (math.MaxInt32 if zero), matching spec.md §6's
// elasticBuffer([initialSize[, capacityLimit]]) constructor.
func ElasticBuffer(initialSize, capacityLimit int) (*NativeCursor, error) {
	return ElasticBufferWithConfig(initialSize, capacityLimit, zconfig.Default())
}

// ElasticBufferWithConfig is ElasticBuffer with an explicit Config,
// letting callers opt the initial native store into resource tracing
// (cfg.ResourceTracing) or relax its bounds checks. cfg applies to that
// initial store only: stores allocated by elastic growth use default
// settings (no trace id, bounds checks on, no leak check).
func ElasticBufferWithConfig(initialSize, capacityLimit int, cfg *zconfig.Config) (*NativeCursor, error) {
	if initialSize <= 0 {
		initialSize = 4096
	}
	if capacityLimit <= 0 {
		capacityLimit = 1<<31 - 1
	}
	st, err := store.FixedCapacityWithConfig(initialSize, false, nil, cfg)
	if err != nil {
		return nil, err
	}
	nc := &NativeCursor{cursor: newCursor(st, nil, true, growthNative, capacityLimit)}
	return nc, nil
}

// TraceID reports the native store's leak-diagnostic identity, valid
// only when the cursor was built with ResourceTracing enabled and has
// not grown since (a grown store carries no trace id).
func (c *NativeCursor) TraceID() (uuid.UUID, bool) {
	ns, ok := c.st.(*store.NativeStore)
	if !ok {
		return uuid.UUID{}, false
	}
	id := ns.TraceID()
	return id, id != uuid.UUID{}
}
