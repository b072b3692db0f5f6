package ristretto255

// Encode and Decode implement the ristretto255 codec (spec.md §4.4):
// a canonical bijection between the prime-order group and 32-byte
// strings, built on top of the field and Edwards-curve primitives in
// field.go and edwards.go. The algorithm and constants follow the
// ristretto255 specification directly (mirrored from
// original_source/src/per_curve/point.tmpl.h's decaf_455_encode /
// decaf_455_decode, the canonical reference this package's spec was
// distilled from).

// ctAbs returns |a|, where "positive" means low_bit(a) == 0, the sign
// convention the whole ristretto255 codec is built on.
func ctAbs(a *FieldElement) FieldElement {
	var neg, out FieldElement
	neg.negate(a)
	out = *a
	out.cmov(&neg, a.lowBitRaw())
	return out
}

// Encode maps p to its canonical 32-byte ristretto255 representation
// (spec.md §4.4 encode). p must be a valid extended-coordinate point;
// the result is always exactly one of the 2^255-19-ish canonical
// encodings the decoder accepts, regardless of which of the 4
// cofactor-coset representatives of p's group element was passed in.
func (p *Point) Encode() [32]byte {
	var u1, u2, zPlusY, zMinusY FieldElement
	zPlusY.add(&p.Z, &p.Y)
	zMinusY.sub(&p.Z, &p.Y)
	u1.mul(&zPlusY, &zMinusY)
	u2.mul(&p.X, &p.Y)

	var u2Sqr, u1u2Sqr FieldElement
	u2Sqr.sqr(&u2)
	u1u2Sqr.mul(&u1, &u2Sqr)

	var invSqrt FieldElement
	invSqrt.invSqrt(&u1u2Sqr)

	var d1, d2 FieldElement
	d1.mul(&u1, &invSqrt)
	d2.mul(&u2, &invSqrt)

	var zInv FieldElement
	zInv.mul(&d1, &d2)
	zInv.mul(&zInv, &p.T)

	var ix0, iy0 FieldElement
	ix0.mul(&p.X, &FieldSqrtMinusOne)
	iy0.mul(&p.Y, &FieldSqrtMinusOne)

	var enchantedDenominator FieldElement
	enchantedDenominator.mul(&d1, &invSqrtAMinusD)

	var tZinv FieldElement
	tZinv.mul(&p.T, &zInv)
	rotate := tZinv.lowBitRaw()

	x, y := p.X, p.Y
	x.cmov(&iy0, rotate)
	y.cmov(&ix0, rotate)
	denInv := d2
	denInv.cmov(&enchantedDenominator, rotate)

	var xZinv FieldElement
	xZinv.mul(&x, &zInv)
	var yNeg FieldElement
	yNeg.negate(&y)
	y.cmov(&yNeg, xZinv.lowBitRaw())

	var zMinusYres FieldElement
	zMinusYres.sub(&p.Z, &y)
	var s FieldElement
	s.mul(&denInv, &zMinusYres)
	s = ctAbs(&s)

	var out [32]byte
	s.serialize(&out, false, boolFalse)
	return out
}

// Decode parses a 32-byte ristretto255 encoding into p, returning
// boolTrue iff b is a valid canonical encoding (spec.md §4.4 decode).
// On failure p is left holding an indeterminate but fully-formed point
// (never partially-initialised memory), per spec.md §7's "always write
// a result" contract. allowIdentity controls whether the identity's
// all-zero encoding is accepted; callers that need to reject a
// protocol's neutral-element edge case (e.g. a Diffie-Hellman public
// key) pass false.
func (p *Point) Decode(b *[32]byte, allowIdentity bool) Bool {
	var s FieldElement
	canonical := s.deserialize(b, false, nil)
	notNegative := s.lowBitRaw().not()

	var ss FieldElement
	ss.sqr(&s)

	var u1, u2 FieldElement
	u1.sub(&FieldOne, &ss)
	u2.add(&FieldOne, &ss)

	var u2Sqr FieldElement
	u2Sqr.sqr(&u2)

	var u1Sqr, dU1Sqr FieldElement
	u1Sqr.sqr(&u1)
	dU1Sqr.mul(&fieldD, &u1Sqr)

	var v FieldElement
	v.negate(&dU1Sqr)
	v.sub(&v, &u2Sqr)

	var vu2Sqr FieldElement
	vu2Sqr.mul(&v, &u2Sqr)

	var invSqrt FieldElement
	wasSquare := sqrtRatioM1(&invSqrt, &FieldOne, &vu2Sqr)

	var denX FieldElement
	denX.mul(&invSqrt, &u2)

	var denY FieldElement
	denY.mul(&invSqrt, &denX)
	denY.mul(&denY, &v)

	var twoS FieldElement
	twoS.add(&s, &s)

	var xRaw FieldElement
	xRaw.mul(&twoS, &denX)
	x := ctAbs(&xRaw)

	var y FieldElement
	y.mul(&u1, &denY)

	var t FieldElement
	t.mul(&x, &y)

	notNegativeT := t.lowBitRaw().not()
	yNonzero := y.isZero().not()

	ok := canonical.and(notNegative).and(wasSquare).and(notNegativeT).and(yNonzero)

	var z FieldElement = FieldOne
	p.setExtended(&x, &y, &z, &t)

	isIdentity := p.eq(&PointIdentity)
	identityOK := boolFromInt(boolToInt(allowIdentity)).or(isIdentity.not())
	ok = ok.and(identityOK)

	return ok
}
