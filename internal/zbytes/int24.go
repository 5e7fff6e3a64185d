package zbytes

import (
	"github.com/arrowbyte/zbytes/internal/memaccess"
	"github.com/arrowbyte/zbytes/internal/zerr"
)

// readInt24Bytes and writeInt24Bytes implement spec.md §9's corrected
// readInt24: a sign-extending 24-bit composite reader, masked with
// 0xffffff (not the 0xffff the spec calls out as a likely typo),
// branching on host byte order like the other composite readers.
func readInt24Bytes(b []byte) int32 {
	var v uint32
	if memaccess.IsLittleEndian {
		v = uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
	} else {
		v = uint32(b[2]) | uint32(b[1])<<8 | uint32(b[0])<<16
	}
	v &= 0xffffff
	if v&0x800000 != 0 {
		v |= 0xff000000
	}
	return int32(v)
}

func writeInt24Bytes(b []byte, v int32) {
	uv := uint32(v) & 0xffffff
	if memaccess.IsLittleEndian {
		b[0], b[1], b[2] = byte(uv), byte(uv>>8), byte(uv>>16)
	} else {
		b[2], b[1], b[0] = byte(uv), byte(uv>>8), byte(uv>>16)
	}
}

// ReadInt24 sequentially reads a sign-extended 24-bit integer.
func (c *cursor) ReadInt24() (int32, error) {
	var v int32
	err := c.readLenient(3, func(off int) error {
		buf := make([]byte, 3)
		n, e := c.st.Read(off, buf, 0, 3)
		if e != nil {
			return e
		}
		if n < 3 {
			return zerr.Bounds(off, 3, 0, c.st.SafeLimit())
		}
		v = readInt24Bytes(buf)
		return nil
	})
	return v, err
}

// WriteInt24 sequentially writes the low 24 bits of v.
func (c *cursor) WriteInt24(v int32) error {
	if err := c.ensureWritable(3); err != nil {
		return err
	}
	off := c.writePosition
	c.WriteAdvance(3)
	buf := make([]byte, 3)
	writeInt24Bytes(buf, v)
	return c.st.Write(off, buf, 0, 3)
}
