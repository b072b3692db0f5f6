package ristretto255

import (
	"crypto/subtle"
	"encoding/binary"
)

// Scalar is an integer modulo
//
//	ℓ = 2^252 + 27742317777372353535851937790883648493,
//
// the order of the ristretto255 group. It is stored as a canonical
// little-endian 32-byte value, the same representation the wire format
// uses, mirroring the teacher's Scalar ([4]uint64 for the secp256k1
// order n in `scalar.go`) adapted to ℓ instead of n.
type Scalar struct {
	b [32]byte
}

// ScalarZero and ScalarOne are the additive and multiplicative
// identities of the scalar field (spec.md §3).
var (
	ScalarZero = Scalar{}
	ScalarOne  = Scalar{b: [32]byte{1}}
)

// scalarOrder is ℓ in little-endian limbs, used by scMinimal.
var scalarOrder = [4]uint64{
	0x5812631a5cf5d3ed, 0x14def9dea2f79cd6, 0, 0x1000000000000000,
}

// setCanonicalBytes loads s from a 32-byte little-endian encoding,
// reporting boolFalse (and leaving s set to whatever partially-decoded
// value resulted) if the encoding is not in [0, ℓ), per spec.md §4.2
// decode.
func (s *Scalar) setCanonicalBytes(b *[32]byte) Bool {
	s.b = *b
	return boolFromInt(boolToInt(scMinimal(b[:])))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// setBytesModOrder reduces an arbitrary 32-byte little-endian value mod
// ℓ, per spec.md §4.2 decode_long's 32-byte overload.
func (s *Scalar) setBytesModOrder(b *[32]byte) *Scalar {
	var wide [64]byte
	copy(wide[:32], b[:])
	return s.setBytesModOrderWide(&wide)
}

// setBytesModOrderWide reduces an arbitrary 64-byte little-endian value
// mod ℓ (spec.md §4.2 decode_long). Grounded on gtank-ristretto255's
// scReduce (internal/scalar/scalar.go, other_examples) — the same ℓ as
// ed25519, so the reduction constants carry over unchanged.
func (s *Scalar) setBytesModOrderWide(x *[64]byte) *Scalar {
	scReduce(&s.b, x)
	return s
}

// bytes returns s's canonical little-endian 32-byte encoding (spec.md
// §4.2 encode). s is assumed already reduced mod ℓ.
func (s *Scalar) bytes() [32]byte {
	return s.b
}

// setUint64 sets s = v (spec.md §4.2 set_from_u64). Every uint64 value
// is already less than ℓ (ℓ > 2^252), so this is a direct little-endian
// write rather than a reduction.
func (s *Scalar) setUint64(v uint64) *Scalar {
	s.b = [32]byte{}
	binary.LittleEndian.PutUint64(s.b[:8], v)
	return s
}

// eq returns boolTrue iff s == t (spec.md §4.2 eq).
func (s *Scalar) eq(t *Scalar) Bool {
	return boolFromInt(subtle.ConstantTimeCompare(s.b[:], t.b[:]))
}

// isZero reports whether s is the zero scalar.
func (s *Scalar) isZero() Bool {
	return s.eq(&ScalarZero)
}

// cmov sets s = a if flag is boolTrue.
func (s *Scalar) cmov(a *Scalar, flag Bool) *Scalar {
	mask := byte(flag)
	for i := range s.b {
		s.b[i] ^= mask & (s.b[i] ^ a.b[i])
	}
	return s
}

// destroy zeroes s so it can no longer be used, per spec.md §7.
func (s *Scalar) destroy() {
	secureZero(s.b[:])
}

// add sets s = a + b mod ℓ.
func (s *Scalar) add(a, b *Scalar) *Scalar {
	return s.muladd(&ScalarOne, a, b) // a*1 + b
}

// sub sets s = a - b mod ℓ.
func (s *Scalar) sub(a, b *Scalar) *Scalar {
	var negB Scalar
	negB.negate(b)
	return s.add(a, &negB)
}

// negate sets s = -a mod ℓ, computed as (ℓ-1)*a.
func (s *Scalar) negate(a *Scalar) *Scalar {
	lMinus1 := Scalar{b: [32]byte{
		0xec, 0xd3, 0xf5, 0x5c, 0x1a, 0x63, 0x12, 0x58,
		0xd6, 0x9c, 0xf7, 0xa2, 0xde, 0xf9, 0xde, 0x14,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0x10,
	}}
	return s.mul(&lMinus1, a)
}

// mul sets s = a*b mod ℓ.
func (s *Scalar) mul(a, b *Scalar) *Scalar {
	return s.muladd(a, b, &ScalarZero)
}

// muladd sets s = a*b + c mod ℓ, the single primitive every other
// scalar arithmetic op above is built from — mirroring the teacher's
// preference for one core routine (`mulByOrder`/`mul`, scalar.go) that
// the rest of the API calls into.
func (s *Scalar) muladd(a, b, c *Scalar) *Scalar {
	av := loadScalarLimbs(&a.b)
	bv := loadScalarLimbs(&b.b)
	cv := loadScalarLimbs(&c.b)

	// Schoolbook convolution of two 12-limb (21-bit) operands produces
	// 23 output limbs (indices 0..22); c is added onto the low half
	// before the reduction tail, exactly as if it were a 24th,
	// zero-valued-top-limb addend.
	var acc [24]int64
	for i := 0; i < 12; i++ {
		for j := 0; j < 12; j++ {
			acc[i+j] += av[i] * bv[j]
		}
	}
	for i := 0; i < 12; i++ {
		acc[i] += cv[i]
	}

	// Carry every limb down to about 21 signed bits, so the fold in
	// scReduceLimbs cannot overflow int64.
	for i := 0; i < 23; i++ {
		carry := (acc[i] + (1 << 20)) >> 21
		acc[i+1] += carry
		acc[i] -= carry << 21
	}

	scReduceLimbs(&s.b, &acc)
	return s
}

// scalarLimbs12 holds a scalar split into twelve 21-bit limbs (the top
// limb also keeps bit 252 and above), the representation the NaCl ref10
// sc_muladd-style convolution above operates on.
type scalarLimbs12 [12]int64

func loadScalarLimbs(b *[32]byte) scalarLimbs12 {
	s := *b
	var out scalarLimbs12
	out[0] = 2097151 & load3(s[0:])
	out[1] = 2097151 & (load4(s[2:]) >> 5)
	out[2] = 2097151 & (load3(s[5:]) >> 2)
	out[3] = 2097151 & (load4(s[7:]) >> 7)
	out[4] = 2097151 & (load4(s[10:]) >> 4)
	out[5] = 2097151 & (load3(s[13:]) >> 1)
	out[6] = 2097151 & (load4(s[15:]) >> 6)
	out[7] = 2097151 & (load3(s[18:]) >> 3)
	out[8] = 2097151 & load3(s[21:])
	out[9] = 2097151 & (load4(s[23:]) >> 5)
	out[10] = 2097151 & (load3(s[26:]) >> 2)
	out[11] = load4(s[28:]) >> 7
	return out
}

// load3 and load4 read 3 and 4 little-endian bytes into an int64,
// exactly as gtank-ristretto255's internal/scalar/scalar.go does
// (other_examples).
func load3(in []byte) int64 {
	r := int64(in[0])
	r |= int64(in[1]) << 8
	r |= int64(in[2]) << 16
	return r
}

func load4(in []byte) int64 {
	r := int64(in[0])
	r |= int64(in[1]) << 8
	r |= int64(in[2]) << 16
	r |= int64(in[3]) << 24
	return r
}

// scReduce reduces the 64-byte little-endian integer s mod ℓ, writing
// the canonical 32-byte result to out. Ported verbatim (algorithm and
// reduction constants) from gtank-ristretto255's internal/scalar/
// scalar.go scReduce (other_examples), which implements the same
// ℓ = 2^252 + 27742317777372353535851937790883648493 this package uses.
// It extracts the 24 21-bit limbs from s and hands them to
// scReduceLimbs, the shared fold/carry/pack tail also used by muladd.
func scReduce(out *[32]byte, s *[64]byte) {
	var acc [24]int64
	acc[0] = 2097151 & load3(s[:])
	acc[1] = 2097151 & (load4(s[2:]) >> 5)
	acc[2] = 2097151 & (load3(s[5:]) >> 2)
	acc[3] = 2097151 & (load4(s[7:]) >> 7)
	acc[4] = 2097151 & (load4(s[10:]) >> 4)
	acc[5] = 2097151 & (load3(s[13:]) >> 1)
	acc[6] = 2097151 & (load4(s[15:]) >> 6)
	acc[7] = 2097151 & (load3(s[18:]) >> 3)
	acc[8] = 2097151 & load3(s[21:])
	acc[9] = 2097151 & (load4(s[23:]) >> 5)
	acc[10] = 2097151 & (load3(s[26:]) >> 2)
	acc[11] = 2097151 & (load4(s[28:]) >> 7)
	acc[12] = 2097151 & (load4(s[31:]) >> 4)
	acc[13] = 2097151 & (load3(s[34:]) >> 1)
	acc[14] = 2097151 & (load4(s[36:]) >> 6)
	acc[15] = 2097151 & (load3(s[39:]) >> 3)
	acc[16] = 2097151 & load3(s[42:])
	acc[17] = 2097151 & (load4(s[44:]) >> 5)
	acc[18] = 2097151 & (load3(s[47:]) >> 2)
	acc[19] = 2097151 & (load4(s[49:]) >> 7)
	acc[20] = 2097151 & (load4(s[52:]) >> 4)
	acc[21] = 2097151 & (load3(s[55:]) >> 1)
	acc[22] = 2097151 & (load4(s[57:]) >> 6)
	acc[23] = load4(s[60:]) >> 3

	scReduceLimbs(out, &acc)
}

// scReduceLimbs takes 24 signed limbs of about 21 bits each (the top
// limb may be wider; muladd carries its convolution down to this form
// first) and folds/carries them down to a canonical 32-byte scalar mod
// ℓ. This is the reduction
// tail of gtank-ristretto255's scReduce (other_examples), factored out
// so both a raw 64-byte reduction and a multiply-accumulate's wider
// convolution can share it.
func scReduceLimbs(out *[32]byte, limbs *[24]int64) {
	s0, s1, s2, s3, s4, s5, s6, s7, s8, s9, s10, s11 :=
		limbs[0], limbs[1], limbs[2], limbs[3], limbs[4], limbs[5],
		limbs[6], limbs[7], limbs[8], limbs[9], limbs[10], limbs[11]
	s12, s13, s14, s15, s16, s17, s18, s19, s20, s21, s22, s23 :=
		limbs[12], limbs[13], limbs[14], limbs[15], limbs[16], limbs[17],
		limbs[18], limbs[19], limbs[20], limbs[21], limbs[22], limbs[23]

	s11 += s23 * 666643
	s12 += s23 * 470296
	s13 += s23 * 654183
	s14 -= s23 * 997805
	s15 += s23 * 136657
	s16 -= s23 * 683901
	s23 = 0

	s10 += s22 * 666643
	s11 += s22 * 470296
	s12 += s22 * 654183
	s13 -= s22 * 997805
	s14 += s22 * 136657
	s15 -= s22 * 683901
	s22 = 0

	s9 += s21 * 666643
	s10 += s21 * 470296
	s11 += s21 * 654183
	s12 -= s21 * 997805
	s13 += s21 * 136657
	s14 -= s21 * 683901
	s21 = 0

	s8 += s20 * 666643
	s9 += s20 * 470296
	s10 += s20 * 654183
	s11 -= s20 * 997805
	s12 += s20 * 136657
	s13 -= s20 * 683901
	s20 = 0

	s7 += s19 * 666643
	s8 += s19 * 470296
	s9 += s19 * 654183
	s10 -= s19 * 997805
	s11 += s19 * 136657
	s12 -= s19 * 683901
	s19 = 0

	s6 += s18 * 666643
	s7 += s18 * 470296
	s8 += s18 * 654183
	s9 -= s18 * 997805
	s10 += s18 * 136657
	s11 -= s18 * 683901
	s18 = 0

	var carry [17]int64

	carry[6] = (s6 + (1 << 20)) >> 21
	s7 += carry[6]
	s6 -= carry[6] << 21
	carry[8] = (s8 + (1 << 20)) >> 21
	s9 += carry[8]
	s8 -= carry[8] << 21
	carry[10] = (s10 + (1 << 20)) >> 21
	s11 += carry[10]
	s10 -= carry[10] << 21
	carry[12] = (s12 + (1 << 20)) >> 21
	s13 += carry[12]
	s12 -= carry[12] << 21
	carry[14] = (s14 + (1 << 20)) >> 21
	s15 += carry[14]
	s14 -= carry[14] << 21
	carry[16] = (s16 + (1 << 20)) >> 21
	s17 += carry[16]
	s16 -= carry[16] << 21

	carry[7] = (s7 + (1 << 20)) >> 21
	s8 += carry[7]
	s7 -= carry[7] << 21
	carry[9] = (s9 + (1 << 20)) >> 21
	s10 += carry[9]
	s9 -= carry[9] << 21
	carry[11] = (s11 + (1 << 20)) >> 21
	s12 += carry[11]
	s11 -= carry[11] << 21
	carry[13] = (s13 + (1 << 20)) >> 21
	s14 += carry[13]
	s13 -= carry[13] << 21
	carry[15] = (s15 + (1 << 20)) >> 21
	s16 += carry[15]
	s15 -= carry[15] << 21

	s5 += s17 * 666643
	s6 += s17 * 470296
	s7 += s17 * 654183
	s8 -= s17 * 997805
	s9 += s17 * 136657
	s10 -= s17 * 683901
	s17 = 0

	s4 += s16 * 666643
	s5 += s16 * 470296
	s6 += s16 * 654183
	s7 -= s16 * 997805
	s8 += s16 * 136657
	s9 -= s16 * 683901
	s16 = 0

	s3 += s15 * 666643
	s4 += s15 * 470296
	s5 += s15 * 654183
	s6 -= s15 * 997805
	s7 += s15 * 136657
	s8 -= s15 * 683901
	s15 = 0

	s2 += s14 * 666643
	s3 += s14 * 470296
	s4 += s14 * 654183
	s5 -= s14 * 997805
	s6 += s14 * 136657
	s7 -= s14 * 683901
	s14 = 0

	s1 += s13 * 666643
	s2 += s13 * 470296
	s3 += s13 * 654183
	s4 -= s13 * 997805
	s5 += s13 * 136657
	s6 -= s13 * 683901
	s13 = 0

	s0 += s12 * 666643
	s1 += s12 * 470296
	s2 += s12 * 654183
	s3 -= s12 * 997805
	s4 += s12 * 136657
	s5 -= s12 * 683901
	s12 = 0

	carry[0] = (s0 + (1 << 20)) >> 21
	s1 += carry[0]
	s0 -= carry[0] << 21
	carry[2] = (s2 + (1 << 20)) >> 21
	s3 += carry[2]
	s2 -= carry[2] << 21
	carry[4] = (s4 + (1 << 20)) >> 21
	s5 += carry[4]
	s4 -= carry[4] << 21
	carry[6] = (s6 + (1 << 20)) >> 21
	s7 += carry[6]
	s6 -= carry[6] << 21
	carry[8] = (s8 + (1 << 20)) >> 21
	s9 += carry[8]
	s8 -= carry[8] << 21
	carry[10] = (s10 + (1 << 20)) >> 21
	s11 += carry[10]
	s10 -= carry[10] << 21

	carry[1] = (s1 + (1 << 20)) >> 21
	s2 += carry[1]
	s1 -= carry[1] << 21
	carry[3] = (s3 + (1 << 20)) >> 21
	s4 += carry[3]
	s3 -= carry[3] << 21
	carry[5] = (s5 + (1 << 20)) >> 21
	s6 += carry[5]
	s5 -= carry[5] << 21
	carry[7] = (s7 + (1 << 20)) >> 21
	s8 += carry[7]
	s7 -= carry[7] << 21
	carry[9] = (s9 + (1 << 20)) >> 21
	s10 += carry[9]
	s9 -= carry[9] << 21
	carry[11] = (s11 + (1 << 20)) >> 21
	s12 += carry[11]
	s11 -= carry[11] << 21

	s0 += s12 * 666643
	s1 += s12 * 470296
	s2 += s12 * 654183
	s3 -= s12 * 997805
	s4 += s12 * 136657
	s5 -= s12 * 683901
	s12 = 0

	carry[0] = s0 >> 21
	s1 += carry[0]
	s0 -= carry[0] << 21
	carry[1] = s1 >> 21
	s2 += carry[1]
	s1 -= carry[1] << 21
	carry[2] = s2 >> 21
	s3 += carry[2]
	s2 -= carry[2] << 21
	carry[3] = s3 >> 21
	s4 += carry[3]
	s3 -= carry[3] << 21
	carry[4] = s4 >> 21
	s5 += carry[4]
	s4 -= carry[4] << 21
	carry[5] = s5 >> 21
	s6 += carry[5]
	s5 -= carry[5] << 21
	carry[6] = s6 >> 21
	s7 += carry[6]
	s6 -= carry[6] << 21
	carry[7] = s7 >> 21
	s8 += carry[7]
	s7 -= carry[7] << 21
	carry[8] = s8 >> 21
	s9 += carry[8]
	s8 -= carry[8] << 21
	carry[9] = s9 >> 21
	s10 += carry[9]
	s9 -= carry[9] << 21
	carry[10] = s10 >> 21
	s11 += carry[10]
	s10 -= carry[10] << 21
	carry[11] = s11 >> 21
	s12 += carry[11]
	s11 -= carry[11] << 21

	s0 += s12 * 666643
	s1 += s12 * 470296
	s2 += s12 * 654183
	s3 -= s12 * 997805
	s4 += s12 * 136657
	s5 -= s12 * 683901
	s12 = 0

	carry[0] = s0 >> 21
	s1 += carry[0]
	s0 -= carry[0] << 21
	carry[1] = s1 >> 21
	s2 += carry[1]
	s1 -= carry[1] << 21
	carry[2] = s2 >> 21
	s3 += carry[2]
	s2 -= carry[2] << 21
	carry[3] = s3 >> 21
	s4 += carry[3]
	s3 -= carry[3] << 21
	carry[4] = s4 >> 21
	s5 += carry[4]
	s4 -= carry[4] << 21
	carry[5] = s5 >> 21
	s6 += carry[5]
	s5 -= carry[5] << 21
	carry[6] = s6 >> 21
	s7 += carry[6]
	s6 -= carry[6] << 21
	carry[7] = s7 >> 21
	s8 += carry[7]
	s7 -= carry[7] << 21
	carry[8] = s8 >> 21
	s9 += carry[8]
	s8 -= carry[8] << 21
	carry[9] = s9 >> 21
	s10 += carry[9]
	s9 -= carry[9] << 21
	carry[10] = s10 >> 21
	s11 += carry[10]
	s10 -= carry[10] << 21

	out[0] = byte(s0 >> 0)
	out[1] = byte(s0 >> 8)
	out[2] = byte((s0 >> 16) | (s1 << 5))
	out[3] = byte(s1 >> 3)
	out[4] = byte(s1 >> 11)
	out[5] = byte((s1 >> 19) | (s2 << 2))
	out[6] = byte(s2 >> 6)
	out[7] = byte((s2 >> 14) | (s3 << 7))
	out[8] = byte(s3 >> 1)
	out[9] = byte(s3 >> 9)
	out[10] = byte((s3 >> 17) | (s4 << 4))
	out[11] = byte(s4 >> 4)
	out[12] = byte(s4 >> 12)
	out[13] = byte((s4 >> 20) | (s5 << 1))
	out[14] = byte(s5 >> 7)
	out[15] = byte((s5 >> 15) | (s6 << 6))
	out[16] = byte(s6 >> 2)
	out[17] = byte(s6 >> 10)
	out[18] = byte((s6 >> 18) | (s7 << 3))
	out[19] = byte(s7 >> 5)
	out[20] = byte(s7 >> 13)
	out[21] = byte(s8 >> 0)
	out[22] = byte(s8 >> 8)
	out[23] = byte((s8 >> 16) | (s9 << 5))
	out[24] = byte(s9 >> 3)
	out[25] = byte(s9 >> 11)
	out[26] = byte((s9 >> 19) | (s10 << 2))
	out[27] = byte(s10 >> 6)
	out[28] = byte((s10 >> 14) | (s11 << 7))
	out[29] = byte(s11 >> 1)
	out[30] = byte(s11 >> 9)
	out[31] = byte(s11 >> 17)
}

// scMinimal reports whether sc, a 32-byte little-endian integer, is
// strictly less than ℓ — ported from gtank-ristretto255's scMinimal
// (other_examples), generalised from a []byte length check to this
// package's fixed-size encoding.
func scMinimal(sc []byte) bool {
	if len(sc) != 32 {
		return false
	}
	for i := 3; ; i-- {
		v := binary.LittleEndian.Uint64(sc[i*8:])
		if v > scalarOrder[i] {
			return false
		} else if v < scalarOrder[i] {
			break
		} else if i == 0 {
			return false
		}
	}
	return true
}

// halve sets s = a/2 mod ℓ (spec.md §4.2 halve): if a is even, shift
// right; otherwise add ℓ first so the shift is exact. Grounded in the
// teacher's scalar.go half (even/odd branch structure), generalized to
// the 21-bit-limb-free canonical byte representation used here.
func (s *Scalar) halve(a *Scalar) *Scalar {
	var widened [32]byte
	odd := boolFromInt(int(a.b[0] & 1))

	var withOrder Scalar
	withOrder.addOrderOnce(a)
	for i := range widened {
		widened[i] = byte(cselU64(uint64(withOrder.b[i]), uint64(a.b[i]), odd))
	}

	var carry byte
	for i := 31; i >= 0; i-- {
		nextCarry := widened[i] & 1
		widened[i] = (widened[i] >> 1) | (carry << 7)
		carry = nextCarry
	}
	s.b = widened
	return s
}

// addOrderOnce sets s = a + ℓ as a 256-bit (non-modular) addition; used
// only by halve to make an odd scalar evenly divisible before shifting.
func (s *Scalar) addOrderOnce(a *Scalar) *Scalar {
	var lBytes [32]byte
	binary.LittleEndian.PutUint64(lBytes[0:8], scalarOrder[0])
	binary.LittleEndian.PutUint64(lBytes[8:16], scalarOrder[1])
	binary.LittleEndian.PutUint64(lBytes[16:24], scalarOrder[2])
	binary.LittleEndian.PutUint64(lBytes[24:32], scalarOrder[3])

	var carry uint16
	for i := 0; i < 32; i++ {
		sum := uint16(a.b[i]) + uint16(lBytes[i]) + carry
		s.b[i] = byte(sum)
		carry = sum >> 8
	}
	return s
}

// invert sets s = a^-1 mod ℓ via Fermat's little theorem, a^(ℓ-2),
// using square-and-multiply over the 253 significant bits of ℓ-2. This
// is not on a performance-critical path (spec.md only requires constant
// time here, not a short addition chain), so a straightforward binary
// chain is used rather than hand-deriving ℓ's addition chain, matching
// spec.md §9's allowance for "any correct chain of comparable cost" off
// the hot path.
func (s *Scalar) invert(a *Scalar) *Scalar {
	lMinus2 := [32]byte{
		0xeb, 0xd3, 0xf5, 0x5c, 0x1a, 0x63, 0x12, 0x58,
		0xd6, 0x9c, 0xf7, 0xa2, 0xde, 0xf9, 0xde, 0x14,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0x10,
	}

	result := ScalarOne
	base := *a
	for bit := 0; bit < 253; bit++ {
		byteIdx := bit / 8
		bitIdx := uint(bit % 8)
		if (lMinus2[byteIdx]>>bitIdx)&1 == 1 {
			result.mul(&result, &base)
		}
		base.mul(&base, &base)
	}
	*s = result
	return s
}

// scalarIsCanonical is a convenience wrapper spec.md names directly: reports
// whether b encodes a value already in [0, ℓ).
func scalarIsCanonical(b []byte) Bool {
	return boolFromInt(boolToInt(scMinimal(b)))
}
