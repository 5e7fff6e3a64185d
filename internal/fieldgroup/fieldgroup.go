// Package fieldgroup implements spec.md C8: grouping a host type's
// primitive fields into named contiguous byte ranges, computed once at
// registration time from a hand-written schema descriptor rather than
// reflection (spec.md §9's "the reflection form is not required").
package fieldgroup

import (
	"sort"

	"github.com/arrowbyte/zbytes/internal/memaccess"
)

// Field describes one primitive slot of a host layout: its own name,
// the group it belongs to, its width, and its byte offset within the
// host.
type Field struct {
	Name   string
	Group  string
	Kind   memaccess.Kind
	Offset uintptr
}

type span struct{ start, end uintptr }

// Layout is the built group-name -> byte-range mapping for one host
// type, plus the field list that produced it (for Fingerprint).
type Layout struct {
	Name   string
	fields []Field
	groups map[string]span
}

// Describe sorts fields by offset and folds them into contiguous
// same-group runs: a run closes the moment the group name changes, and
// a later run sharing an earlier run's name overwrites that entry
// rather than reopening it, per spec.md §4.7.
func Describe(name string, fields ...Field) *Layout {
	sorted := append([]Field(nil), fields...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })

	groups := make(map[string]span)
	var curGroup string
	var cur span
	open := false

	for _, f := range sorted {
		end := f.Offset + uintptr(memaccess.SizeOf(f.Kind))
		if open && f.Group == curGroup && f.Offset == cur.end {
			cur.end = end
			groups[curGroup] = cur
			continue
		}
		curGroup = f.Group
		cur = span{start: f.Offset, end: end}
		groups[curGroup] = cur
		open = true
	}

	return &Layout{Name: name, fields: sorted, groups: groups}
}

// StartOf returns the start offset of group, or 0 if unknown.
func (l *Layout) StartOf(group string) uintptr {
	return l.groups[group].start
}

// LengthOf returns the byte length of group, or 0 if unknown.
func (l *Layout) LengthOf(group string) uintptr {
	s := l.groups[group]
	if s.end < s.start {
		return 0
	}
	return s.end - s.start
}

// Has reports whether group was registered.
func (l *Layout) Has(group string) bool {
	_, ok := l.groups[group]
	return ok
}

func clamp(n, max int) byte {
	if n > max {
		return byte(max)
	}
	return byte(n)
}

// Fingerprint packs long/int/short/byte field counts (clamped to the
// bits available) plus a parity bit into one byte, per spec.md §4.7's
// "schema fingerprint" description: bits 7-6 longs, 5-4 ints, 3-2
// shorts, bit 1 byte-present, bit 0 parity.
func (l *Layout) Fingerprint() byte {
	var longs, ints, shorts, bytesCount int
	for _, f := range l.fields {
		switch f.Kind {
		case memaccess.KindLong:
			longs++
		case memaccess.KindInt:
			ints++
		case memaccess.KindShort:
			shorts++
		case memaccess.KindByte:
			bytesCount++
		}
	}

	body := clamp(longs, 3)<<6 | clamp(ints, 3)<<4 | clamp(shorts, 3)<<2 | clamp(min(bytesCount, 1), 1)<<1
	parity := byte(0)
	for b := body; b != 0; b >>= 1 {
		parity ^= b & 1
	}
	return body | parity
}
