// ABOUTME: lib0-compatible binary primitives for the Yjs update v1 format.
// ABOUTME: Implements varuint, varint, varstring and the tagged Any encoding.

package yjs

import (
	"encoding/binary"
	"fmt"
	"math"
)

// writer accumulates the binary payload of an update. It never fails;
// encoding well-formed values is total.
type writer struct {
	buf []byte
}

func (w *writer) writeUint8(b byte) {
	w.buf = append(w.buf, b)
}

func (w *writer) writeVarUint(n uint64) {
	for n >= 0x80 {
		w.buf = append(w.buf, byte(n)|0x80)
		n >>= 7
	}
	w.buf = append(w.buf, byte(n))
}

func (w *writer) writeVarInt(n int64) {
	neg := n < 0
	if neg {
		n = -n
	}
	first := byte(n & 0x3f)
	if neg {
		first |= 0x40
	}
	n >>= 6
	if n > 0 {
		first |= 0x80
	}
	w.buf = append(w.buf, first)
	for n > 0 {
		b := byte(n & 0x7f)
		n >>= 7
		if n > 0 {
			b |= 0x80
		}
		w.buf = append(w.buf, b)
	}
}

func (w *writer) writeVarString(s string) {
	w.writeVarUint(uint64(len(s)))
	w.buf = append(w.buf, s...)
}

func (w *writer) writeVarBytes(b []byte) {
	w.writeVarUint(uint64(len(b)))
	w.buf = append(w.buf, b...)
}

// Any type tags as defined by lib0. Only the subset that can occur in
// BlockNote documents is produced on write, but reads accept all of them.
const (
	anyUndefined = 127
	anyNull      = 126
	anyInt       = 125
	anyFloat32   = 124
	anyFloat64   = 123
	anyBigInt    = 122
	anyFalse     = 121
	anyTrue      = 120
	anyString    = 119
	anyObject    = 118
	anyArray     = 117
	anyBinary    = 116
)

func (w *writer) writeAny(v any) {
	switch x := v.(type) {
	case nil:
		w.writeUint8(anyNull)
	case string:
		w.writeUint8(anyString)
		w.writeVarString(x)
	case bool:
		if x {
			w.writeUint8(anyTrue)
		} else {
			w.writeUint8(anyFalse)
		}
	case int:
		w.writeUint8(anyInt)
		w.writeVarInt(int64(x))
	case int64:
		w.writeUint8(anyInt)
		w.writeVarInt(x)
	case float64:
		if x == math.Trunc(x) && math.Abs(x) <= (1<<53) {
			w.writeUint8(anyInt)
			w.writeVarInt(int64(x))
		} else {
			w.writeUint8(anyFloat64)
			var be [8]byte
			binary.BigEndian.PutUint64(be[:], math.Float64bits(x))
			w.buf = append(w.buf, be[:]...)
		}
	case []byte:
		w.writeUint8(anyBinary)
		w.writeVarBytes(x)
	case []any:
		w.writeUint8(anyArray)
		w.writeVarUint(uint64(len(x)))
		for _, e := range x {
			w.writeAny(e)
		}
	case map[string]any:
		w.writeUint8(anyObject)
		w.writeVarUint(uint64(len(x)))
		for k, e := range x {
			w.writeVarString(k)
			w.writeAny(e)
		}
	default:
		w.writeUint8(anyString)
		w.writeVarString(fmt.Sprint(x))
	}
}

// reader decodes the binary payload of an update. It carries a sticky
// error: after the first failure every read returns a zero value, and the
// caller checks reader.err once at the end.
type reader struct {
	buf []byte
	pos int
	err error
}

func (r *reader) fail(format string, args ...any) {
	if r.err == nil {
		r.err = fmt.Errorf(format, args...)
	}
}

// capHint bounds a wire-supplied element count before it is used as an
// allocation capacity. Every element takes at least one byte, so the
// bytes left in the buffer cap how many can actually follow; a corrupt
// count can only make the subsequent reads fail, not the allocation.
func (r *reader) capHint(n uint64) int {
	if rest := uint64(len(r.buf) - r.pos); n > rest {
		return int(rest)
	}
	return int(n)
}

func (r *reader) readUint8() byte {
	if r.err != nil {
		return 0
	}
	if r.pos >= len(r.buf) {
		r.fail("unexpected end of update at byte %d", r.pos)
		return 0
	}
	b := r.buf[r.pos]
	r.pos++
	return b
}

func (r *reader) readVarUint() uint64 {
	var n uint64
	var shift uint
	for {
		b := r.readUint8()
		if r.err != nil {
			return 0
		}
		if shift >= 64 {
			r.fail("varuint overflow at byte %d", r.pos)
			return 0
		}
		n |= uint64(b&0x7f) << shift
		if b < 0x80 {
			return n
		}
		shift += 7
	}
}

func (r *reader) readVarInt() int64 {
	b := r.readUint8()
	if r.err != nil {
		return 0
	}
	n := uint64(b & 0x3f)
	neg := b&0x40 != 0
	shift := uint(6)
	for b&0x80 != 0 {
		b = r.readUint8()
		if r.err != nil {
			return 0
		}
		if shift >= 64 {
			r.fail("varint overflow at byte %d", r.pos)
			return 0
		}
		n |= uint64(b&0x7f) << shift
		shift += 7
	}
	if neg {
		return -int64(n)
	}
	return int64(n)
}

func (r *reader) readBytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.pos+n > len(r.buf) {
		r.fail("unexpected end of update: need %d bytes at %d", n, r.pos)
		return nil
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *reader) readVarString() string {
	n := r.readVarUint()
	return string(r.readBytes(int(n)))
}

func (r *reader) readVarBytes() []byte {
	n := r.readVarUint()
	return r.readBytes(int(n))
}

func (r *reader) readAny() any {
	tag := r.readUint8()
	if r.err != nil {
		return nil
	}
	switch tag {
	case anyUndefined, anyNull:
		return nil
	case anyInt:
		return r.readVarInt()
	case anyFloat32:
		b := r.readBytes(4)
		if r.err != nil {
			return nil
		}
		return float64(math.Float32frombits(binary.BigEndian.Uint32(b)))
	case anyFloat64:
		b := r.readBytes(8)
		if r.err != nil {
			return nil
		}
		return math.Float64frombits(binary.BigEndian.Uint64(b))
	case anyBigInt:
		b := r.readBytes(8)
		if r.err != nil {
			return nil
		}
		return int64(binary.BigEndian.Uint64(b))
	case anyFalse:
		return false
	case anyTrue:
		return true
	case anyString:
		return r.readVarString()
	case anyObject:
		n := r.readVarUint()
		m := make(map[string]any, r.capHint(n))
		for i := uint64(0); i < n && r.err == nil; i++ {
			k := r.readVarString()
			m[k] = r.readAny()
		}
		return m
	case anyArray:
		n := r.readVarUint()
		a := make([]any, 0, r.capHint(n))
		for i := uint64(0); i < n && r.err == nil; i++ {
			a = append(a, r.readAny())
		}
		return a
	case anyBinary:
		return r.readVarBytes()
	default:
		r.fail("unknown any tag %d at byte %d", tag, r.pos)
		return nil
	}
}
