// Package zbytes implements the cursor layer (spec.md C4): read/write
// pointers, limits, elastic growth and lenient reads layered over a
// store.Store the cursor reserves a reference on.
package zbytes

import (
	"io"

	"github.com/go-kit/log"

	"github.com/arrowbyte/zbytes/internal/store"
	"github.com/arrowbyte/zbytes/internal/zerr"
)

// growthKind selects what backing a cursor allocates on elastic growth.
type growthKind int

const (
	growthHeap growthKind = iota
	growthNative
)

// cursor is the shared state and logic behind HeapCursor and
// NativeCursor; the two exported types differ only in growthKind and
// default elasticity, per spec.md §9's "differ only in growth
// strategy" note.
type cursor struct {
	st            store.Store
	owner         any
	readPosition  int
	writePosition int
	writeLimit    int
	lenient       bool
	elastic       bool
	kind          growthKind
	capacityLimit int
	disableChecks bool
	logger        log.Logger
}

const headerPadding = 0x3F

func newCursor(st store.Store, owner any, elastic bool, kind growthKind, capacityLimit int) *cursor {
	writeLimit := capacityLimit
	return &cursor{
		st:            st,
		owner:         owner,
		writeLimit:    writeLimit,
		elastic:       elastic,
		kind:          kind,
		capacityLimit: capacityLimit,
		logger:        log.NewNopLogger(),
	}
}

// SetLogger installs a destination for growth/diagnostic messages,
// replacing the no-op default.
func (c *cursor) SetLogger(l log.Logger) { c.logger = l }

func (c *cursor) ReadPosition() int  { return c.readPosition }
func (c *cursor) WritePosition() int { return c.writePosition }
func (c *cursor) WriteLimit() int    { return c.writeLimit }
func (c *cursor) ReadLimit() int     { return c.writePosition }
func (c *cursor) Lenient() bool      { return c.lenient }
func (c *cursor) SetLenient(v bool)  { c.lenient = v }

func (c *cursor) SetReadPosition(p int) error {
	if p < 0 || p > c.ReadLimit() {
		return zerr.Bounds(p, 0, 0, c.ReadLimit())
	}
	c.readPosition = p
	return nil
}

func (c *cursor) SetWritePosition(p int) error {
	if p < 0 || p > c.writeLimit {
		return zerr.Bounds(p, 0, 0, c.writeLimit)
	}
	c.writePosition = p
	return nil
}

func (c *cursor) SetWriteLimit(l int) error {
	if l < 0 || l > c.capacityLimit {
		return zerr.Bounds(l, 0, 0, c.capacityLimit)
	}
	c.writeLimit = l
	return nil
}

// ReadAdvance moves readPosition by n without bounds checking, save
// for the lenient clamp spec.md §4.4 describes.
func (c *cursor) ReadAdvance(n int) {
	p := c.readPosition + n
	if c.lenient && p > c.ReadLimit() {
		p = c.ReadLimit()
	}
	c.readPosition = p
}

func (c *cursor) WriteAdvance(n int) {
	c.writePosition += n
}

// ReadPositionForHeader returns the current read pointer and,  when
// skipPadding is set, advances past (-p)&0x3F bytes of 64-byte header
// padding.
func (c *cursor) ReadPositionForHeader(skipPadding bool) int {
	p := c.readPosition
	if skipPadding {
		c.readPosition += (-p) & headerPadding
	}
	return p
}

func (c *cursor) WritePositionForHeader(skipPadding bool) int {
	p := c.writePosition
	if skipPadding {
		c.writePosition += (-p) & headerPadding
	}
	return p
}

func (c *cursor) ReadRemaining() int  { return c.ReadLimit() - c.readPosition }
func (c *cursor) WriteRemaining() int { return c.writeLimit - c.writePosition }

// Clear restores the pointer state to a freshly wrapped cursor,
// per spec.md §8's idempotent clear() property.
func (c *cursor) Clear() {
	c.readPosition = 0
	c.writePosition = 0
	c.writeLimit = c.capacityLimit
}

func (c *cursor) Store() store.Store { return c.st }

// ensureWritable grows the backing store, if elastic, so that
// [writePosition, writePosition+width) is addressable.
func (c *cursor) ensureWritable(width int) error {
	requested := c.writePosition + width
	if requested <= c.st.SafeLimit() {
		return nil
	}
	if requested > c.writeLimit {
		if c.elastic && requested > c.capacityLimit {
			return zerr.Overflow(requested, c.capacityLimit)
		}
		return zerr.Bounds(c.writePosition, width, 0, c.writeLimit)
	}
	if !c.elastic {
		return zerr.Bounds(c.writePosition, width, 0, c.st.SafeLimit())
	}
	return c.grow(requested)
}

// --- sequential primitives ---

func (c *cursor) WriteByte(v byte) error {
	if err := c.ensureWritable(1); err != nil {
		return err
	}
	off := c.writePosition
	c.WriteAdvance(1)
	return c.st.WriteByte(off, v)
}

func (c *cursor) WriteShort(v int16) error {
	if err := c.ensureWritable(2); err != nil {
		return err
	}
	off := c.writePosition
	c.WriteAdvance(2)
	return c.st.WriteShort(off, v)
}

func (c *cursor) WriteInt(v int32) error {
	if err := c.ensureWritable(4); err != nil {
		return err
	}
	off := c.writePosition
	c.WriteAdvance(4)
	return c.st.WriteInt(off, v)
}

func (c *cursor) WriteLong(v int64) error {
	if err := c.ensureWritable(8); err != nil {
		return err
	}
	off := c.writePosition
	c.WriteAdvance(8)
	return c.st.WriteLong(off, v)
}

func (c *cursor) WriteFloat(v float32) error {
	if err := c.ensureWritable(4); err != nil {
		return err
	}
	off := c.writePosition
	c.WriteAdvance(4)
	return c.st.WriteFloat(off, v)
}

func (c *cursor) WriteDouble(v float64) error {
	if err := c.ensureWritable(8); err != nil {
		return err
	}
	off := c.writePosition
	c.WriteAdvance(8)
	return c.st.WriteDouble(off, v)
}

func (c *cursor) WriteBytes(b []byte) error {
	if err := c.ensureWritable(len(b)); err != nil {
		return err
	}
	off := c.writePosition
	c.WriteAdvance(len(b))
	return c.st.Write(off, b, 0, len(b))
}

func (c *cursor) readLenient(advance int, read func(off int) error) error {
	off := c.readPosition
	c.ReadAdvance(advance)
	err := read(off)
	if err != nil && c.lenient && zerr.Is(err, zerr.CategoryBounds) {
		return nil
	}
	return err
}

func (c *cursor) ReadByte() (byte, error) {
	var v byte
	err := c.readLenient(1, func(off int) error {
		r, e := c.st.ReadByte(off)
		v = r
		return e
	})
	return v, err
}

func (c *cursor) ReadShort() (int16, error) {
	var v int16
	err := c.readLenient(2, func(off int) error {
		r, e := c.st.ReadShort(off)
		v = r
		return e
	})
	return v, err
}

func (c *cursor) ReadInt() (int32, error) {
	var v int32
	err := c.readLenient(4, func(off int) error {
		r, e := c.st.ReadInt(off)
		v = r
		return e
	})
	return v, err
}

func (c *cursor) ReadLong() (int64, error) {
	var v int64
	err := c.readLenient(8, func(off int) error {
		r, e := c.st.ReadLong(off)
		v = r
		return e
	})
	return v, err
}

func (c *cursor) ReadFloat() (float32, error) {
	var v float32
	err := c.readLenient(4, func(off int) error {
		r, e := c.st.ReadFloat(off)
		v = r
		return e
	})
	return v, err
}

func (c *cursor) ReadDouble() (float64, error) {
	var v float64
	err := c.readLenient(8, func(off int) error {
		r, e := c.st.ReadDouble(off)
		v = r
		return e
	})
	return v, err
}

// ReadLongIncomplete reads 8 bytes if available, otherwise 4
// zero-extended, otherwise assembles the remaining little-endian bytes
// zero-extended to 64 bits, per spec.md §4.4.
func (c *cursor) ReadLongIncomplete() (int64, error) {
	remaining := c.ReadRemaining()
	switch {
	case remaining >= 8:
		return c.ReadLong()
	case remaining >= 4:
		v, err := c.ReadInt()
		if err != nil {
			return 0, err
		}
		return int64(uint32(v)), nil
	default:
		var out uint64
		for i := 0; i < remaining; i++ {
			b, err := c.ReadByte()
			if err != nil {
				return 0, err
			}
			out |= uint64(b) << (8 * uint(i))
		}
		return int64(out), nil
	}
}

func (c *cursor) WriteReader(r io.Reader, n int) error {
	if err := c.ensureWritable(n); err != nil {
		return err
	}
	off := c.writePosition
	c.WriteAdvance(n)
	return c.st.WriteReader(off, r, n)
}

func (c *cursor) ReadWriter(w io.Writer, n int) (int, error) {
	off := c.readPosition
	c.ReadAdvance(n)
	return c.st.ReadWriter(off, w, n)
}

// Release drops the cursor's reference on its current store.
func (c *cursor) Release() error {
	return c.st.Release(c.owner)
}
