package ristretto255

// Derived field constants computed once at package init from the
// primitive constants in field.go, rather than hand-transcribed magic
// limbs — the values are unambiguous given fieldD and FieldSqrtMinusOne,
// and computing them keeps every field constant traceable to the single
// canonical source (spec.md §3/§8's worked values) instead of risking a
// transcription error in a second set of literals.
var (
	oneMinusDSq FieldElement
	dMinusOneSq FieldElement
	onePlusDSq  FieldElement
)

// PointBase is the distinguished generator of the ristretto255 group
// (spec.md §3, §8). It is derived at init time by decoding the
// published canonical encoding of the base point
// (e2f2ae0a6abc4e71a884a961c500515f58e30b6aa582dd8db6a65945e08d2d76,
// spec.md §8's first worked test vector) rather than hand-transcribing
// its affine (x, y) coordinates, so the one literal this package commits
// to is exactly the bytes the test vectors already check against.
var PointBase Point

func init() {
	var dSq FieldElement
	dSq.sqr(&fieldD)
	oneMinusDSq.sub(&FieldOne, &dSq)
	onePlusDSq.add(&FieldOne, &dSq)

	var dMinus1 FieldElement
	dMinus1.sub(&fieldD, &FieldOne)
	dMinusOneSq.sqr(&dMinus1)

	// a-d and a*d-1 are the same field element when a=-1 (both equal
	// -1-d), so invSqrtAMinusD and sqrtADMinusOne are 1/sqrt and sqrt of
	// one shared value; computing them this way avoids transcribing two
	// more 5-limb magic constants by hand.
	var aMinusD FieldElement
	aMinusD.negate(&FieldOne)
	aMinusD.sub(&aMinusD, &fieldD)
	invSqrtAMinusD.invSqrt(&aMinusD)
	sqrtADMinusOne.mul(&aMinusD, &invSqrtAMinusD)

	baseEncoding := [32]byte{
		0xe2, 0xf2, 0xae, 0x0a, 0x6a, 0xbc, 0x4e, 0x71,
		0xa8, 0x84, 0xa9, 0x61, 0xc5, 0x00, 0x51, 0x5f,
		0x58, 0xe3, 0x0b, 0x6a, 0xa5, 0x82, 0xdd, 0x8d,
		0xb6, 0xa6, 0x59, 0x45, 0xe0, 0x8d, 0x2d, 0x76,
	}
	if !PointBase.Decode(&baseEncoding, false).IsTrue() {
		panic("ristretto255: built-in base point encoding failed to decode")
	}

	PrecomputedBase.Build(&PointBase)
}

// Wire-format and in-memory sizes, exported per spec.md §6 so callers
// can size buffers without hand-counting bytes; mirrors the teacher's
// own exported size constants for its serialized types.
const (
	// SizeofEncoded is the length in bytes of an encoded group element
	// or scalar.
	SizeofEncoded = 32
	// SizeofHashNonUniform is the input length of FromHashNonUniform.
	SizeofHashNonUniform = 32
	// SizeofHashUniform is the input length of FromHashUniform.
	SizeofHashUniform = 64
)
