package valueobject

import (
	"encoding/binary"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// Hash combines the hash of v's type with the XOR of each public
// field's (name, value) hash.
//
// Slices, maps, funcs and channels have no structural hash; they
// contribute their address instead. Two equal values holding
// distinct but deep-equal slices therefore hash differently.
func Hash(v any) uint64 {
	h := &hasher{active: make(map[uintptr]bool)}
	return h.value(reflect.ValueOf(v))
}

type hasher struct {
	active map[uintptr]bool
}

func sum(parts ...[]byte) uint64 {
	d := xxhash.New()
	for _, p := range parts {
		_, _ = d.Write(p)
	}
	return d.Sum64()
}

func u64(n uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], n)
	return b[:]
}

func identity(v reflect.Value) uint64 {
	return sum([]byte("id:"+v.Type().String()), u64(uint64(v.Pointer())))
}

func (h *hasher) value(v reflect.Value) uint64 {
	if !v.IsValid() {
		return sum([]byte("nil"))
	}

	kind := []byte(v.Kind().String())

	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return sum(kind, []byte{1})
		}
		return sum(kind, []byte{0})
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return sum(kind, u64(uint64(v.Int())))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return sum(kind, u64(v.Uint()))
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if f == 0 {
			f = 0 // fold -0 into +0
		}
		return sum(kind, u64(math.Float64bits(f)))
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		return sum(kind,
			u64(math.Float64bits(real(c)+0)),
			u64(math.Float64bits(imag(c)+0)))
	case reflect.String:
		return sum(kind, []byte(v.String()))
	case reflect.Interface:
		if v.IsNil() {
			return sum([]byte("nil"))
		}
		return h.value(v.Elem())
	case reflect.Pointer:
		if v.IsNil() {
			return sum([]byte("nil"))
		}
		ptr := v.Pointer()
		if h.active[ptr] {
			return identity(v)
		}
		h.active[ptr] = true
		defer delete(h.active, ptr)
		return h.value(v.Elem())
	case reflect.Array:
		parts := make([][]byte, 0, v.Len()+1)
		parts = append(parts, kind)
		for i := 0; i < v.Len(); i++ {
			parts = append(parts, u64(h.value(v.Index(i))))
		}
		return sum(parts...)
	case reflect.Struct:
		return h.structure(v)
	default:
		if v.IsNil() {
			return sum([]byte("nil"))
		}
		return identity(v)
	}
}

func (h *hasher) structure(v reflect.Value) uint64 {
	out := sum([]byte(v.Type().String()))
	for _, name := range Fields(v.Type(), false) {
		field := v.FieldByName(name)
		out ^= sum([]byte(name), u64(h.value(field)))
	}
	return out
}
