package ristretto255

import (
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"math/bits"
	"unsafe"
)

// FieldElement is an element of GF(p), p = 2^255 - 19.
//
// An element represents the integer
//
//	n0 + n1*2^51 + n2*2^102 + n3*2^153 + n4*2^204
//
// Between operations every limb is kept below 2^51, except n0 which can
// run up to 2^51 + 2^13*19 from carry propagation (mirrors the teacher's
// magnitude discipline in field.go, generalized to the 2^255-19 prime via
// the addition identity 2^255 ≡ 19 (mod p), ported from the carry
// propagation in FiloSottile-edwards25519/fe.go, other_examples). The zero
// value is a valid representation of 0.
type FieldElement struct {
	n0, n1, n2, n3, n4 uint64
}

const maskLow51 uint64 = (1 << 51) - 1

var (
	// FieldZero is the additive identity.
	FieldZero = FieldElement{}
	// FieldOne is the multiplicative identity.
	FieldOne = FieldElement{1, 0, 0, 0, 0}
	// FieldSqrtMinusOne is the canonical square root of -1 mod p — the
	// one whose low bit is 0 once strongly reduced, per spec.md §3.
	FieldSqrtMinusOne = FieldElement{
		1718705420411056, 234908883556509, 2233514472574048,
		2117202627021982, 765476049583133,
	}
	// fieldD is the twisted Edwards curve constant d = -121665/121666.
	fieldD = FieldElement{
		929955233495203, 466365720129213, 1662059464998953,
		2033849074728123, 1442794654840575,
	}
	// fieldD2 is 2*d, used throughout the group law.
	fieldD2 = FieldElement{
		1859910466990425, 932731440258426, 1072319116312658,
		1815898335770999, 633789495995903,
	}
	// invSqrtAMinusD is 1/sqrt(a-d) = 1/sqrt(-1-d), used by the
	// ristretto codec (spec.md §4.4 step 4). Computed at init time in
	// constants.go from fieldD rather than transcribed as a literal,
	// since a-d and a*d-1 coincide when a=-1 (both equal -1-d), letting
	// sqrtADMinusOne below be derived from this same value.
	invSqrtAMinusD FieldElement
	// sqrtADMinusOne is sqrt(a*d - 1), used by the Elligator map (mapToPoint);
	// computed in constants.go's init as (a-d) * invSqrtAMinusD.
	sqrtADMinusOne FieldElement
)

// newFieldFromLimbs is a convenience constructor from raw limbs; limbs
// must already be < 2^51 (n0 may carry a small excess).
func newFieldFromLimbs(n0, n1, n2, n3, n4 uint64) FieldElement {
	return FieldElement{n0, n1, n2, n3, n4}
}

// carryPropagate1/2 bring the limbs below 2^52, 2^51, 2^51, 2^51, 2^51 and
// then fold the carry out of n4 back into n0 via 2^255 ≡ 19 (mod p). Split
// in two for the same inliner reasons the teacher splits normalize/
// normalizeWeak (field.go:131, field.go:179).
func (f *FieldElement) carryPropagate1() *FieldElement {
	f.n1 += f.n0 >> 51
	f.n0 &= maskLow51
	f.n2 += f.n1 >> 51
	f.n1 &= maskLow51
	f.n3 += f.n2 >> 51
	f.n2 &= maskLow51
	return f
}

func (f *FieldElement) carryPropagate2() *FieldElement {
	f.n4 += f.n3 >> 51
	f.n3 &= maskLow51
	f.n0 += (f.n4 >> 51) * 19
	f.n4 &= maskLow51
	return f
}

// weakReduce brings f to magnitude-1 (each limb < 2^51, except a possible
// small excess in n0) without forcing it below p. This is the "weakly
// reduced" contract every arithmetic op in this file promises on output.
func (f *FieldElement) weakReduce() *FieldElement {
	return f.carryPropagate1().carryPropagate2()
}

// strongReduce canonicalises f to [0, p), per spec.md §4.1 strong_reduce.
func (f *FieldElement) strongReduce() *FieldElement {
	f.weakReduce()

	// c is 0 if f < p, 1 if f >= p = 2^255 - 19 (detected by adding 19
	// and watching for the carry out of the top limb, exactly as
	// FiloSottile-edwards25519/fe.go's reduce does).
	c := (f.n0 + 19) >> 51
	c = (f.n1 + c) >> 51
	c = (f.n2 + c) >> 51
	c = (f.n3 + c) >> 51
	c = (f.n4 + c) >> 51

	f.n0 += 19 * c
	f.n1 += f.n0 >> 51
	f.n0 &= maskLow51
	f.n2 += f.n1 >> 51
	f.n1 &= maskLow51
	f.n3 += f.n2 >> 51
	f.n2 &= maskLow51
	f.n4 += f.n3 >> 51
	f.n3 &= maskLow51
	f.n4 &= maskLow51
	return f
}

// add sets f = a + b. Weakly reduced on output.
func (f *FieldElement) add(a, b *FieldElement) *FieldElement {
	f.n0 = a.n0 + b.n0
	f.n1 = a.n1 + b.n1
	f.n2 = a.n2 + b.n2
	f.n3 = a.n3 + b.n3
	f.n4 = a.n4 + b.n4
	return f.weakReduce()
}

// sub sets f = a - b. Per spec.md §4.1, subtraction biases by a multiple
// of p before subtracting so every limb stays non-negative.
func (f *FieldElement) sub(a, b *FieldElement) *FieldElement {
	f.n0 = (a.n0 + 0xFFFFFFFFFFFDA) - b.n0
	f.n1 = (a.n1 + 0xFFFFFFFFFFFFE) - b.n1
	f.n2 = (a.n2 + 0xFFFFFFFFFFFFE) - b.n2
	f.n3 = (a.n3 + 0xFFFFFFFFFFFFE) - b.n3
	f.n4 = (a.n4 + 0xFFFFFFFFFFFFE) - b.n4
	return f.weakReduce()
}

// negate sets f = -a.
func (f *FieldElement) negate(a *FieldElement) *FieldElement {
	return f.sub(&FieldZero, a)
}

// isZero reports whether f, once strongly reduced, is 0. Constant-time:
// the comparison itself branches only on the already-public result.
func (f *FieldElement) isZero() Bool {
	var t FieldElement
	t = *f
	t.strongReduce()
	var b [32]byte
	t.serialize(&b, false, boolFalse)
	return boolFromInt(subtle.ConstantTimeCompare(b[:], make([]byte, 32)))
}

// eq returns boolTrue iff a ≡ b (mod p); spec.md §4.1 eq.
func (a *FieldElement) eq(b *FieldElement) Bool {
	var d FieldElement
	d.sub(a, b)
	return d.isZero()
}

// cmov sets f = a if flag is boolTrue, leaving f unchanged otherwise.
func (f *FieldElement) cmov(a *FieldElement, flag Bool) *FieldElement {
	cmovU64(&f.n0, a.n0, flag)
	cmovU64(&f.n1, a.n1, flag)
	cmovU64(&f.n2, a.n2, flag)
	cmovU64(&f.n3, a.n3, flag)
	cmovU64(&f.n4, a.n4, flag)
	return f
}

// destroy overwrites f so it can no longer be used, per spec.md §3
// lifecycle / §7 kind-2 error handling.
func (f *FieldElement) destroy() {
	secureZero((*[40]byte)(unsafe.Pointer(f))[:])
}

// serialize strong-reduces f and packs it little-endian into 32 bytes,
// 51 bits per limb. Since p = 2^255-19 < 2^255, a strongly reduced value
// always leaves the top bit of out[31] (and all of out[29..31]'s upper
// bits) clear; withHiBit lets a caller (the ristretto codec) borrow that
// spare bit to fold in a sign, per spec.md §4.1 serialize.
func (f *FieldElement) serialize(out *[32]byte, withHiBit bool, hiBit Bool) {
	t := *f
	t.strongReduce()
	l0, l1, l2, l3, l4 := t.n0, t.n1, t.n2, t.n3, t.n4

	out[0] = byte(l0)
	out[1] = byte(l0 >> 8)
	out[2] = byte(l0 >> 16)
	out[3] = byte(l0 >> 24)
	out[4] = byte(l0 >> 32)
	out[5] = byte(l0 >> 40)
	out[6] = byte(l0>>48 | l1<<3)
	out[7] = byte(l1 >> 5)
	out[8] = byte(l1 >> 13)
	out[9] = byte(l1 >> 21)
	out[10] = byte(l1 >> 29)
	out[11] = byte(l1>>37 | l2<<6)
	out[12] = byte(l2 >> 2)
	out[13] = byte(l2 >> 10)
	out[14] = byte(l2 >> 18)
	out[15] = byte(l2 >> 26)
	out[16] = byte(l2 >> 34)
	out[17] = byte(l2>>42 | l3<<1)
	out[18] = byte(l3 >> 7)
	out[19] = byte(l3 >> 15)
	out[20] = byte(l3 >> 23)
	out[21] = byte(l3 >> 31)
	out[22] = byte(l3>>39 | l4<<4)
	out[23] = byte(l4 >> 4)
	out[24] = byte(l4 >> 12)
	out[25] = byte(l4 >> 20)
	out[26] = byte(l4 >> 28)
	out[27] = byte(l4 >> 36)
	out[28] = byte(l4 >> 44)
	out[29] = 0
	out[30] = 0
	out[31] = 0

	if withHiBit {
		out[31] |= byte(hiBit & 1 << 7)
	}
}

// deserialize unpacks 32 little-endian bytes into a field element. When
// withHiBit is false it reports ok=false (without leaking which check
// failed) if byte 31's top bit is set or b encodes a value >= p; when
// withHiBit is true the top bit is stripped into *hiBit before the
// canonicality check and never affects the ok result, per spec.md §4.1.
func (f *FieldElement) deserialize(b *[32]byte, withHiBit bool, hiBit *Bool) Bool {
	var stripped [32]byte
	copy(stripped[:], b[:])
	top := stripped[31]
	ok := boolFromInt(int(top>>7) ^ 1)
	if withHiBit {
		*hiBit = boolFromInt(int(top >> 7))
		ok = boolTrue
	}
	stripped[31] &= 0x7F

	f.n0 = binary.LittleEndian.Uint64(stripped[0:8]) & maskLow51
	f.n1 = (binary.LittleEndian.Uint64(stripped[6:14]) >> 3) & maskLow51
	f.n2 = (binary.LittleEndian.Uint64(stripped[12:20]) >> 6) & maskLow51
	f.n3 = (binary.LittleEndian.Uint64(stripped[19:27]) >> 1) & maskLow51
	f.n4 = (binary.LittleEndian.Uint64(stripped[24:32]) >> 12) & maskLow51

	// Canonicality: re-serialize and constant-time compare against the
	// (top-bit-stripped) input. Any mismatch means b >= p.
	var check [32]byte
	f.serialize(&check, false, boolFalse)
	canonical := boolFromInt(subtle.ConstantTimeCompare(check[:], stripped[:]))
	return ok.and(canonical)
}

// highBit is the low bit of 2*f mod p, strongly reduced; used to break
// the ± ambiguity of a ristretto coordinate (spec.md §4.1 high_bit).
func (f *FieldElement) highBit() Bool {
	var twice FieldElement
	twice.add(f, f)
	return twice.lowBitRaw()
}

// lowBit is the low bit of f mod p, strongly reduced (spec.md §4.1 low_bit).
func (f *FieldElement) lowBit() Bool {
	return f.lowBitRaw()
}

func (f *FieldElement) lowBitRaw() Bool {
	t := *f
	t.strongReduce()
	return boolFromInt(int(t.n0 & 1))
}

// mul sets f = a*b mod p, via schoolbook multiplication in radix 2^51 with
// the top half folded back in via 2^255 ≡ 19 (mod p) — the generic
// 5-limb analogue of the teacher's mul() (field_mul.go), since the
// teacher's own folding constant (2^256 ≡ 2^32+977) is specific to
// secp256k1 and does not apply to this prime.
func (f *FieldElement) mul(a, b *FieldElement) *FieldElement {
	a0, a1, a2, a3, a4 := a.n0, a.n1, a.n2, a.n3, a.n4
	b0, b1, b2, b3, b4 := b.n0, b.n1, b.n2, b.n3, b.n4

	// Pre-multiply the limbs that wrap around by 19, per the classic
	// radix-2^51 curve25519 multiplication (as used throughout the
	// curve25519/ristretto255 family; see FiloSottile-edwards25519
	// fe.go for the analogous 2-limb refQ64 strategy this generalises).
	b1_19 := b1 * 19
	b2_19 := b2 * 19
	b3_19 := b3 * 19
	b4_19 := b4 * 19

	var r0hi, r0lo, r1hi, r1lo, r2hi, r2lo, r3hi, r3lo, r4hi, r4lo uint64

	addMul := func(hi, lo *uint64, x, y uint64) {
		h, l := bits.Mul64(x, y)
		var c uint64
		*lo, c = bits.Add64(*lo, l, 0)
		*hi += h + c
	}

	addMul(&r0hi, &r0lo, a0, b0)
	addMul(&r0hi, &r0lo, a1, b4_19)
	addMul(&r0hi, &r0lo, a2, b3_19)
	addMul(&r0hi, &r0lo, a3, b2_19)
	addMul(&r0hi, &r0lo, a4, b1_19)

	addMul(&r1hi, &r1lo, a0, b1)
	addMul(&r1hi, &r1lo, a1, b0)
	addMul(&r1hi, &r1lo, a2, b4_19)
	addMul(&r1hi, &r1lo, a3, b3_19)
	addMul(&r1hi, &r1lo, a4, b2_19)

	addMul(&r2hi, &r2lo, a0, b2)
	addMul(&r2hi, &r2lo, a1, b1)
	addMul(&r2hi, &r2lo, a2, b0)
	addMul(&r2hi, &r2lo, a3, b4_19)
	addMul(&r2hi, &r2lo, a4, b3_19)

	addMul(&r3hi, &r3lo, a0, b3)
	addMul(&r3hi, &r3lo, a1, b2)
	addMul(&r3hi, &r3lo, a2, b1)
	addMul(&r3hi, &r3lo, a3, b0)
	addMul(&r3hi, &r3lo, a4, b4_19)

	addMul(&r4hi, &r4lo, a0, b4)
	addMul(&r4hi, &r4lo, a1, b3)
	addMul(&r4hi, &r4lo, a2, b2)
	addMul(&r4hi, &r4lo, a3, b1)
	addMul(&r4hi, &r4lo, a4, b0)

	// Each r_i is a 128-bit accumulator (rihi:rilo); fold down to 51-bit
	// limbs, carrying the excess into the next accumulator up, and
	// finally wrapping the carry out of limb 4 back into limb 0 by *19.
	c0 := (r0hi << 13) | (r0lo >> 51)
	n0 := r0lo & maskLow51

	r1lo, carry := bits.Add64(r1lo, c0, 0)
	r1hi += carry
	c1 := (r1hi << 13) | (r1lo >> 51)
	n1 := r1lo & maskLow51

	r2lo, carry = bits.Add64(r2lo, c1, 0)
	r2hi += carry
	c2 := (r2hi << 13) | (r2lo >> 51)
	n2 := r2lo & maskLow51

	r3lo, carry = bits.Add64(r3lo, c2, 0)
	r3hi += carry
	c3 := (r3hi << 13) | (r3lo >> 51)
	n3 := r3lo & maskLow51

	r4lo, carry = bits.Add64(r4lo, c3, 0)
	r4hi += carry
	c4 := (r4hi << 13) | (r4lo >> 51)
	n4 := r4lo & maskLow51

	n0 += c4 * 19

	f.n0, f.n1, f.n2, f.n3, f.n4 = n0, n1, n2, n3, n4
	return f.weakReduce()
}

// sqr sets f = a^2 mod p. Equivalent to mul(a, a); kept as its own entry
// point because the spec names it separately (spec.md §4.1 sqr) and a
// real squaring routine would fold the cross terms — left as mul(a,a)
// here, matching the teacher's own sqr (field_mul.go), which likewise
// just calls mul(a, a) rather than hand-unrolling the squaring.
func (f *FieldElement) sqr(a *FieldElement) *FieldElement {
	return f.mul(a, a)
}

// sqrn sets f = a^(2^n) mod p, n repeated squarings (spec.md §4.1 sqrn).
func (f *FieldElement) sqrn(a *FieldElement, n int) *FieldElement {
	f.sqr(a)
	for i := 1; i < n; i++ {
		f.sqr(f)
	}
	return f
}

// fieldChain250 returns (a^(2^250-1), a^11), the shared prefix of both
// the inversion and the pow22523 addition chains below, following the
// standard curve25519 chain documented in FiloSottile-edwards25519
// fe.go's Invert (other_examples). The teacher's own inv (field_mul.go)
// is explicitly marked as a simplified/incomplete chain and is not
// usable as-is for this prime.
func fieldChain250(a *FieldElement) (t2_250 FieldElement, z11 FieldElement) {
	var z2, z9, z2_5_0, z2_10_0, z2_20_0, z2_50_0, z2_100_0, t FieldElement

	z2.sqr(a)           // 2
	t.sqr(&z2)          // 4
	t.sqr(&t)           // 8
	z9.mul(&t, a)       // 9
	z11.mul(&z9, &z2)   // 11
	t.sqr(&z11)         // 22
	z2_5_0.mul(&t, &z9) // 2^5 - 1

	t.sqrn(&z2_5_0, 5)
	z2_10_0.mul(&t, &z2_5_0) // 2^10 - 1

	t.sqrn(&z2_10_0, 10)
	z2_20_0.mul(&t, &z2_10_0) // 2^20 - 1

	t.sqrn(&z2_20_0, 20)
	t.mul(&t, &z2_20_0) // 2^40 - 1

	t.sqrn(&t, 10)
	z2_50_0.mul(&t, &z2_10_0) // 2^50 - 1

	t.sqrn(&z2_50_0, 50)
	z2_100_0.mul(&t, &z2_50_0) // 2^100 - 1

	t.sqrn(&z2_100_0, 100)
	t.mul(&t, &z2_100_0) // 2^200 - 1

	t.sqrn(&t, 50)
	t2_250.mul(&t, &z2_50_0) // 2^250 - 1
	return
}

// inv sets f = a^-1 mod p via Fermat's little theorem (a^(p-2)).
func (f *FieldElement) inv(a *FieldElement) *FieldElement {
	t, z11 := fieldChain250(a)
	t.sqrn(&t, 5)
	f.mul(&t, &z11) // 2^255 - 21 = p - 2
	return f
}

// pow22523 sets f = a^((p-5)/8) = a^(2^252-3), the exponent the
// curve25519 family uses to build a square root candidate when p ≡ 5
// (mod 8), following the same ref10-style chain as inv.
func (f *FieldElement) pow22523(a *FieldElement) *FieldElement {
	t, _ := fieldChain250(a)
	t.sqr(&t)
	t.sqr(&t)
	f.mul(&t, a) // 2^252 - 3
	return f
}

// sqrtRatioM1 sets f = sqrt(u/v) (up to the usual curve25519 sign
// convention: the result is chosen to have low_bit 0) and returns
// boolTrue iff u is zero or u/v is a nonzero square; when it is not, f is instead set
// to sqrt(i*u/v) for i = sqrt(-1), matching the standard ristretto255
// sqrt_ratio_m1 routine the codec and decoder are built on (spec.md
// §4.1 inverse_square_root is the u=1 specialisation of this).
func sqrtRatioM1(f *FieldElement, u, v *FieldElement) Bool {
	var v3, r, r2, check, uTimesV3, uTimesV7 FieldElement

	v3.sqr(v)
	v3.mul(&v3, v) // v^3

	uTimesV3.mul(u, &v3)
	uTimesV7.sqr(&v3)
	uTimesV7.mul(&uTimesV7, v)
	uTimesV7.mul(&uTimesV7, u) // u*v^7

	r.pow22523(&uTimesV7)
	r.mul(&r, &uTimesV3) // r = u*v^3*(u*v^7)^((p-5)/8)

	r2.sqr(&r)
	check.mul(&r2, v) // v*r^2

	correctSignSqrt := check.eq(u)
	var negU FieldElement
	negU.negate(u)
	flippedSignSqrt := check.eq(&negU)

	var negUTimesI FieldElement
	negUTimesI.mul(&negU, &FieldSqrtMinusOne)
	flippedSignSqrtI := check.eq(&negUTimesI)

	var rTimesI FieldElement
	rTimesI.mul(&r, &FieldSqrtMinusOne)
	r.cmov(&rTimesI, flippedSignSqrt.or(flippedSignSqrtI))

	var rNeg FieldElement
	rNeg.negate(&r)
	r.cmov(&rNeg, r.lowBitRaw())

	*f = r
	return correctSignSqrt.or(flippedSignSqrt)
}

// invSqrt sets f = 1/sqrt(a) and returns boolTrue if a is a nonzero
// square, boolFalse otherwise (in which case f is set to sqrt(i/a) for
// i = sqrt(-1)), per spec.md §4.1 inverse_square_root.
func (f *FieldElement) invSqrt(a *FieldElement) Bool {
	return sqrtRatioM1(f, &FieldOne, a)
}

// setInt sets f to a small non-negative integer.
func (f *FieldElement) setInt(v uint64) *FieldElement {
	f.n0, f.n1, f.n2, f.n3, f.n4 = v, 0, 0, 0, 0
	return f
}

// errFieldLength describes a field element encoding that is not exactly
// 32 bytes; no function in this package returns it.
var errFieldLength = errors.New("ristretto255: field element encoding must be 32 bytes")
