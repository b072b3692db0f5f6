package ristretto255

// This file implements spec.md §4.6's scalar multiplication variants.
// point_scalarmul uses constant-time binary double-and-add rather than
// a signed windowed NAF (SPEC_FULL.md §7's Open Question resolution);
// the fixed-base comb path that IS windowed lives in precompute.go.

// scalarBit returns bit i (0 = least significant) of s's canonical
// encoding, as a Bool mask — used to drive constant-time cmov-selects
// instead of a data-dependent branch.
func scalarBit(s *Scalar, i int) Bool {
	enc := s.bytes()
	byteIdx := i / 8
	bitIdx := uint(i % 8)
	return boolFromInt(int((enc[byteIdx] >> bitIdx) & 1))
}

// ScalarMul sets p = s*base via constant-time left-to-right binary
// double-and-add over ℓ's 253 significant bits: no data-dependent
// branch or memory index, matching spec.md §4.7's constant-time
// requirement for any operation on a secret scalar (spec.md §4.6
// point_scalarmul).
func (p *Point) ScalarMul(s *Scalar, base *Point) *Point {
	var acc Point
	acc.setIdentity()

	for i := 252; i >= 0; i-- {
		acc.double(&acc)
		var added Point
		added.add(&acc, base)
		acc.cmov(&added, scalarBit(s, i))
	}
	*p = acc
	return p
}

// DirectScalarMul computes s*base, where base is supplied and returned
// in 32-byte wire form rather than as a decoded Point (spec.md §4.6
// direct_scalarmul). allowIdentity is forwarded to the base point's
// Decode. shortCircuit lets a caller who already knows baseEnc's
// validity is public (e.g. it's a protocol constant, not attacker
// data) skip the scalar multiplication entirely on an invalid
// encoding; without it, the multiplication always runs and out is
// zeroed on failure, so timing does not depend on the validity bit.
func DirectScalarMul(out *[32]byte, s *Scalar, baseEnc *[32]byte, allowIdentity, shortCircuit bool) Bool {
	var base Point
	ok := base.Decode(baseEnc, allowIdentity)

	if shortCircuit && !ok.IsTrue() {
		for i := range out {
			out[i] = 0
		}
		return boolFalse
	}

	var result Point
	result.ScalarMul(s, &base)
	enc := result.Encode()

	if ok.IsTrue() {
		*out = enc
	} else {
		for i := range out {
			out[i] = 0
		}
	}
	return ok
}

// DoubleScalarMul sets p = s1*p1 + s2*p2, computed with the two
// ladders interleaved bit-by-bit so the total cost is one combined
// 253-step loop rather than two independent multiplications followed
// by an add (spec.md §4.6 point_double_scalarmul). Still fully
// constant-time: both cmov selections execute unconditionally.
func (p *Point) DoubleScalarMul(s1 *Scalar, p1 *Point, s2 *Scalar, p2 *Point) *Point {
	var acc Point
	acc.setIdentity()

	for i := 252; i >= 0; i-- {
		acc.double(&acc)

		var added1 Point
		added1.add(&acc, p1)
		acc.cmov(&added1, scalarBit(s1, i))

		var added2 Point
		added2.add(&acc, p2)
		acc.cmov(&added2, scalarBit(s2, i))
	}
	*p = acc
	return p
}

// DualScalarMul computes two independent scalar multiplications
// sharing a single pass over the bits, returning (s1*base1, s2*base2)
// (spec.md §4.6 point_dual_scalarmul) — useful when a caller needs both
// products and wants to amortise loop overhead, though each ladder's
// additions remain independent (no algebraic sharing beyond the loop).
func DualScalarMul(s1 *Scalar, base1 *Point, s2 *Scalar, base2 *Point) (Point, Point) {
	var acc1, acc2 Point
	acc1.setIdentity()
	acc2.setIdentity()

	for i := 252; i >= 0; i-- {
		acc1.double(&acc1)
		acc2.double(&acc2)

		var added1 Point
		added1.add(&acc1, base1)
		acc1.cmov(&added1, scalarBit(s1, i))

		var added2 Point
		added2.add(&acc2, base2)
		acc2.cmov(&added2, scalarBit(s2, i))
	}
	return acc1, acc2
}

// BaseDoubleScalarMulNonSecret sets p = s1*PointBase + s2*p2 using a
// variable-time (branch-on-scalar-bits) double-and-add ladder. This is
// the one deliberately non-constant-time routine in the package
// (spec.md §4.6 base_double_scalarmul_non_secret): it leaks both
// scalars' bit patterns through timing and is documented as safe to
// call ONLY when both scalars are public, e.g. verifying a signature's
// `a*G + b*P == R` check where a, b, R are already public.
func (p *Point) BaseDoubleScalarMulNonSecret(s1 *Scalar, s2 *Scalar, p2 *Point) *Point {
	var acc Point
	acc.setIdentity()

	enc1 := s1.bytes()
	enc2 := s2.bytes()

	for i := 252; i >= 0; i-- {
		acc.double(&acc)
		byteIdx, bitIdx := i/8, uint(i%8)
		if (enc1[byteIdx]>>bitIdx)&1 == 1 {
			acc.add(&acc, &PointBase)
		}
		if (enc2[byteIdx]>>bitIdx)&1 == 1 {
			acc.add(&acc, p2)
		}
	}
	*p = acc
	return p
}
