package ristretto255

// Point is a point on the twisted Edwards curve
//
//	-x^2 + y^2 = 1 + d*x^2*y^2   (mod p)
//
// in extended coordinates (X:Y:Z:T) with X/Z = x, Y/Z = y, XY = ZT, a = -1,
// d = -121665/121666. This curve is birationally equivalent to Curve25519
// and the cofactor-8 curve ristretto255 quotients down to a prime-order
// group.
//
// The extended-coordinate representation and the group law below
// generalise the teacher's affine/Jacobian split (GroupElementAffine,
// GroupElementJacobian in `group.go`) to the a=-1 twisted Edwards curve,
// using the Hisil-Wong-Carter-Dawson addition formulas that the rest of
// the curve25519/ristretto255 example material (FiloSottile-edwards25519,
// gtank-ristretto255, other_examples) builds on.
type Point struct {
	X, Y, Z, T FieldElement
}

// PointIdentity is the neutral element (0:1:1:0).
var PointIdentity = Point{
	X: FieldZero, Y: FieldOne, Z: FieldOne, T: FieldZero,
}

// setIdentity sets p to the neutral element.
func (p *Point) setIdentity() *Point {
	*p = PointIdentity
	return p
}

// setExtended sets p's coordinates directly; used by the ristretto
// decoder and by the Elligator map (mapToPoint).
func (p *Point) setExtended(x, y, z, t *FieldElement) *Point {
	p.X, p.Y, p.Z, p.T = *x, *y, *z, *t
	return p
}

// setAffine sets p = (x, y) in affine coordinates (Z=1, T=xy).
func (p *Point) setAffine(x, y *FieldElement) *Point {
	p.X = *x
	p.Y = *y
	p.Z = FieldOne
	p.T.mul(x, y)
	return p
}

// add sets p = a + b using the unified (complete) extended-coordinate
// addition formula for a=-1 twisted Edwards curves (Hisil-Wong-Carter-
// Dawson, 2008), 8M+1*(2d). Complete: no exceptional cases, so it is
// also used for doubling-by-self when a faster dedicated double isn't
// warranted, though double below is the 4M+4S specialisation used on
// the scalar multiplication hot path.
func (p *Point) add(a, b *Point) *Point {
	var A, B, C, D, E, F, G, H FieldElement

	var yMinusX, yPlusX FieldElement
	yMinusX.sub(&a.Y, &a.X)
	yPlusX.add(&a.Y, &a.X)
	var bYMinusX, bYPlusX FieldElement
	bYMinusX.sub(&b.Y, &b.X)
	bYPlusX.add(&b.Y, &b.X)

	A.mul(&yMinusX, &bYMinusX)
	B.mul(&yPlusX, &bYPlusX)
	C.mul(&a.T, &b.T)
	C.mul(&C, &fieldD2)
	D.mul(&a.Z, &b.Z)
	D.add(&D, &D)

	E.sub(&B, &A)
	F.sub(&D, &C)
	G.add(&D, &C)
	H.add(&B, &A)

	p.X.mul(&E, &F)
	p.Y.mul(&G, &H)
	p.Z.mul(&F, &G)
	p.T.mul(&E, &H)
	return p
}

// double sets p = 2*a using the dedicated doubling formula (4M+4S),
// valid for any input including the identity.
func (p *Point) double(a *Point) *Point {
	var A, B, C, D, E, F, G, H FieldElement

	A.sqr(&a.X)
	B.sqr(&a.Y)
	var t FieldElement
	t.sqr(&a.Z)
	C.add(&t, &t)
	D.negate(&A) // a = -1

	var xPlusY FieldElement
	xPlusY.add(&a.X, &a.Y)
	E.sqr(&xPlusY)
	E.sub(&E, &A)
	E.sub(&E, &B)

	G.add(&D, &B)
	F.sub(&G, &C)
	H.sub(&D, &B)

	p.X.mul(&E, &F)
	p.Y.mul(&G, &H)
	p.Z.mul(&F, &G)
	p.T.mul(&E, &H)
	return p
}

// negate sets p = -a: (-X:Y:Z:-T).
func (p *Point) negate(a *Point) *Point {
	p.X.negate(&a.X)
	p.Y = a.Y
	p.Z = a.Z
	p.T.negate(&a.T)
	return p
}

// sub sets p = a - b.
func (p *Point) sub(a, b *Point) *Point {
	var negB Point
	negB.negate(b)
	return p.add(a, &negB)
}

// cmov sets p = a if flag is boolTrue, leaving p unchanged otherwise.
func (p *Point) cmov(a *Point, flag Bool) *Point {
	p.X.cmov(&a.X, flag)
	p.Y.cmov(&a.Y, flag)
	p.Z.cmov(&a.Z, flag)
	p.T.cmov(&a.T, flag)
	return p
}

// eq reports whether p and q represent the same ristretto255 group
// element. Because ristretto255's cofactor-8 quotient identifies four
// Edwards points per group element, equality is NOT simple coordinate
// comparison: it holds iff X1*Y2 == Y1*X2 OR Y1*Y2 == X1*X2 (spec.md
// §4.3 eq) — the two cross-ratio conditions that distinguish the
// cofactor coset from an unrelated point. Both conditions are positive
// in this a=-1 extended-coordinate model (unlike libristretto255's
// internal imaginary-twist layout, where the second condition carries a
// sign flip) — e.g. the order-4 translate (i*y, i*x) of (x, y) has
// Y1Y2 = i*x*y = X1X2, not its negation.
func (p *Point) eq(q *Point) Bool {
	var x1y2, y1x2, y1y2, x1x2 FieldElement
	x1y2.mul(&p.X, &q.Y)
	y1x2.mul(&p.Y, &q.X)
	y1y2.mul(&p.Y, &q.Y)
	x1x2.mul(&p.X, &q.X)

	cond1 := x1y2.eq(&y1x2)
	cond2 := y1y2.eq(&x1x2)

	return cond1.or(cond2)
}

// isValid reports whether p lies on the curve and satisfies XY == ZT,
// the extended-coordinate consistency invariant (spec.md §3 Point
// invariants).
func (p *Point) isValid() Bool {
	var xy, zt FieldElement
	xy.mul(&p.X, &p.Y)
	zt.mul(&p.Z, &p.T)
	consistent := xy.eq(&zt)

	// -x^2*z^2 + y^2*z^2 == z^4 + d*x^2*y^2
	var x2, y2, z2, z4, xy2, lhs, rhs FieldElement
	x2.sqr(&p.X)
	y2.sqr(&p.Y)
	z2.sqr(&p.Z)
	z4.sqr(&z2)
	xy2.mul(&x2, &y2)

	var negX2 FieldElement
	negX2.negate(&x2)
	lhs.add(&negX2, &y2)
	lhs.mul(&lhs, &z2)

	rhs.mul(&xy2, &fieldD)
	rhs.add(&rhs, &z4)

	onCurve := lhs.eq(&rhs)
	return consistent.and(onCurve)
}

// torsion4 is (sqrt(-1), 0), a point of order 4 in the curve's
// cofactor-8 subgroup: doubling it twice reaches the identity, and it
// is not itself the identity, making it the simplest non-trivial
// element to translate by for debuggingTorque below.
var torsion4 = Point{X: FieldSqrtMinusOne, Y: FieldZero, Z: FieldOne, T: FieldZero}

// debuggingTorque sets p = a + torsion4 (spec.md §6 debugging_torque):
// translating by a non-trivial cofactor-8 element changes a's Edwards
// coordinates but must leave its ristretto255 encoding unchanged,
// since encode/decode quotient out exactly this subgroup. Exists to
// let tests exercise that invariant directly rather than only via
// encode/decode round trips.
func (p *Point) debuggingTorque(a *Point) *Point {
	return p.add(a, &torsion4)
}

// debuggingPScale sets p = a with X, Y, Z, T jointly scaled by a
// nonzero lambda (spec.md §6 debugging_pscale): this produces a
// different, but equally valid, projective representative of the same
// affine point, so the encoding must again be unchanged. Catches a
// codec that accidentally depends on Z being 1 or T being in some
// normalised range instead of computing the true affine ratios.
func (p *Point) debuggingPScale(a *Point, lambda *FieldElement) *Point {
	p.X.mul(&a.X, lambda)
	p.Y.mul(&a.Y, lambda)
	p.Z.mul(&a.Z, lambda)
	p.T.mul(&a.T, lambda)
	return p
}

// destroy zeroes p's coordinates, per spec.md §7.
func (p *Point) destroy() {
	p.X.destroy()
	p.Y.destroy()
	p.Z.destroy()
	p.T.destroy()
}
