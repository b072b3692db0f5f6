package ristretto255

import "unsafe"

// Bool is the constant-time boolean used throughout this package: it is
// either allOnes (success/true) or 0 (failure/false), never anything in
// between, so that `mask & value` selects value-or-zero without branching.
type Bool uint64

const (
	// boolTrue is returned on success.
	boolTrue Bool = ^Bool(0)
	// boolFalse is returned on failure.
	boolFalse Bool = 0
)

// IsTrue reports whether b is the success mask. This is the one place a
// Bool is allowed to drive a Go branch; it must never be used on a path
// whose timing matters for a secret bit that hasn't already been revealed
// (e.g. the final success/failure of a decode is public by the time the
// caller inspects it).
func (b Bool) IsTrue() bool { return b == boolTrue }

// boolFromInt converts a 0/1 integer into a Bool mask without branching.
func boolFromInt(x int) Bool {
	return Bool(-int64(x & 1))
}

// and, or, not — mask algebra, used to combine several equality/validity
// checks into one constant-time verdict.
func (b Bool) and(c Bool) Bool { return b & c }
func (b Bool) or(c Bool) Bool  { return b | c }
func (b Bool) not() Bool       { return ^b }

// cmovU64 conditionally overwrites *r with a, in constant time, when flag
// is boolTrue; leaves *r unchanged when flag is boolFalse.
func cmovU64(r *uint64, a uint64, flag Bool) {
	mask := uint64(flag)
	*r ^= mask & (*r ^ a)
}

// cselU64 constant-time selects between a and b: returns a if flag is
// boolTrue, b if flag is boolFalse. Mirrors the teacher's per-type cmov
// (field.go:327, scalar.go:418) lifted to a single reusable primitive.
func cselU64(a, b uint64, flag Bool) uint64 {
	mask := uint64(flag)
	return (a & mask) | (b &^ mask)
}

// eqU64 returns boolTrue iff a == b, with no data-dependent branch.
func eqU64(a, b uint64) Bool {
	x := a ^ b
	// x is zero iff a == b; fold it down to a single bit and broadcast.
	x |= x >> 32
	x |= x >> 16
	x |= x >> 8
	x |= x >> 4
	x |= x >> 2
	x |= x >> 1
	return Bool((x & 1) - 1)
}

// secureZero overwrites buf with zeros in a way the compiler cannot
// optimise away, mirroring the teacher's memclear (field.go:370) used by
// every `destroy`/`clear` method in this package.
func secureZero(buf []byte) {
	if len(buf) == 0 {
		return
	}
	p := unsafe.Pointer(&buf[0])
	for i := uintptr(0); i < uintptr(len(buf)); i++ {
		*(*byte)(unsafe.Add(p, i)) = 0
	}
}
