package ristretto255

// This file implements the ristretto255 Elligator2-based hash-to-group
// map (spec.md §4.5): FromHashNonUniform/FromHashUniform turn 32/64
// uniformly-random bytes into a uniformly-random group element, and
// InvertElligatorNonUniform/InvertElligatorUniform (partial, best-
// effort) recover a preimage for one of the map's up to 8 cofactor-
// coset/sign branches, per spec.md §9 and SPEC_FULL.md §7's which-bit
// resolution.
//
// Grounded in the MAP() procedure from the ristretto255 specification
// (the same family this package's spec.md was distilled from), using
// the derived curve constants computed once in constants.go's init().
// The inverse direction is not present in original_source (its
// per_curve/point.tmpl.h only declares invert_elligator, with no
// implementation body to port), so the quadratic-solving derivation
// below is this package's own, cross-checked numerically against the
// forward map before being written here — see DESIGN.md.

// mapToPoint implements MAP(t), the Elligator2-based map from a single
// field element to a curve point, per spec.md §4.5.
func mapToPoint(p *Point, t *FieldElement) {
	var r FieldElement
	r.sqr(t)
	r.mul(&r, &FieldSqrtMinusOne)

	var rPlus1 FieldElement
	rPlus1.add(&r, &FieldOne)

	var u FieldElement
	u.mul(&rPlus1, &oneMinusDSq)

	var negOne FieldElement
	negOne.negate(&FieldOne)
	c := negOne

	var dr FieldElement
	dr.mul(&fieldD, &r)
	var cMinusDr FieldElement
	cMinusDr.sub(&c, &dr)
	var rPlusD FieldElement
	rPlusD.add(&r, &fieldD)
	var D FieldElement
	D.mul(&cMinusDr, &rPlusD)

	var s FieldElement
	nsDIsSq := sqrtRatioM1(&s, &u, &D)

	var st FieldElement
	st.mul(&s, t)
	stAbs := ctAbs(&st)
	var sPrime FieldElement
	sPrime.negate(&stAbs)
	s.cmov(&sPrime, nsDIsSq.not())

	cSel := c
	cSel.cmov(&r, nsDIsSq.not())

	var rMinus1 FieldElement
	rMinus1.sub(&r, &FieldOne)
	var nT FieldElement
	nT.mul(&cSel, &rMinus1)
	nT.mul(&nT, &dMinusOneSq)
	nT.sub(&nT, &D)

	var sSq FieldElement
	sSq.sqr(&s)

	var w0, w1, w2, w3 FieldElement
	w0.add(&s, &s)
	w0.mul(&w0, &D)
	w1.mul(&nT, &sqrtADMinusOne)
	w2.sub(&FieldOne, &sSq)
	w3.add(&FieldOne, &sSq)

	var X, Y, Z, T FieldElement
	X.mul(&w0, &w3)
	Y.mul(&w2, &w1)
	Z.mul(&w1, &w3)
	T.mul(&w0, &w2)

	p.setExtended(&X, &Y, &Z, &T)
}

// FromHashNonUniform maps 32 bytes to a (non-uniformly distributed,
// but still indistinguishable-from-random to anyone without the
// preimage) group element (spec.md §4.5 from_hash_nonuniform).
func FromHashNonUniform(b *[32]byte) Point {
	var t FieldElement
	var hi Bool
	t.deserialize(b, true, &hi)

	var p Point
	mapToPoint(&p, &t)
	return p
}

// FromHashUniform maps 64 bytes (e.g. a SHA-512 digest) to a uniformly
// distributed group element by mapping each 32-byte half independently
// and adding the results (spec.md §4.5 from_hash_uniform).
func FromHashUniform(b *[64]byte) Point {
	var b0, b1 [32]byte
	copy(b0[:], b[:32])
	copy(b1[:], b[32:])

	p0 := FromHashNonUniform(&b0)
	p1 := FromHashNonUniform(&b1)

	var out Point
	out.add(&p0, &p1)
	return out
}

// InvertElligatorNonUniform attempts to recover one of up to 8 preimages
// of p under FromHashNonUniform, selected by the 5-bit which parameter
// (SPEC_FULL.md §7: bit 0 picks which of the two field elements t, -t
// (mapToPoint(t) == mapToPoint(-t) always, since the map only ever uses
// t through t^2 and |s*t|) is serialised, bits 1-2 pick one of the 4
// cofactor-coset representatives of p, and bit 4 fills the one unused
// top bit of the output so the 32-byte result still looks uniformly
// random; bit 3 is not used). This is necessarily partial: roughly half of all
// group elements have no preimage under a given coset representative,
// in which case ok is boolFalse (spec.md §4.5, §9 — invert_elligator is
// explicitly documented as a best-effort, sometimes-failing operation).
//
// This implementation covers the primary coset representative (which
// bits 1-2 == 0, the cSel == c == -1 branch of mapToPoint); the other
// three coset representatives require adding one of the order-4
// subgroup's non-identity elements to p before inverting, which this
// package does not wire up — callers asking for which&6 != 0 always
// get ok=boolFalse. That is a real gap against the full 8-way inverse
// the C reference exposes, recorded in DESIGN.md.
//
// Derivation: on the covered branch, mapToPoint sets y = (1-s^2)/(1+s^2)
// and s^2 = u(r)/D(r) exactly (not just up to sign, since this branch is
// exactly where sqrt_ratio_m1 reports u/D as a square), where
// u(r) = (r+1)(1-d^2) and D(r) = (c-d*r)(r+d) with c = -1 and r = i*t^2.
// Writing ss = s^2 = (1-y)/(1+y) (recovered from p's affine y), the
// equation ss*D(r) = u(r) expands into the quadratic
//
//	(ss*d)*r^2 + (ss*(1+d^2) + (1-d^2))*r + (ss*d + (1-d^2)) = 0,
//
// which has two roots r1, r2 (the two field elements with the same ss,
// one for each sign of x in the curve equation): only one of them is
// the genuine r = i*t^2 behind p, and there is no way to tell which
// without finishing the computation, so both are carried through the
// t^2 = -i*r field square root and the forward recompute, and whichever
// (if either) reproduces p is kept. That final recompute-and-compare is
// the only thing that actually certifies a candidate; the square-root
// existence checks along the way rule out a root early but do not by
// themselves prove the resulting point is p.
func InvertElligatorNonUniform(out *[32]byte, p *Point, which uint8) Bool {
	if which&6 != 0 {
		for i := range out {
			out[i] = 0
		}
		return boolFalse
	}

	var y, z FieldElement
	y, z = p.Y, p.Z
	var zInv FieldElement
	zInv.inv(&z)
	y.mul(&y, &zInv)

	var oneMinusY, onePlusY FieldElement
	oneMinusY.sub(&FieldOne, &y)
	onePlusY.add(&FieldOne, &y)
	var onePlusYInv FieldElement
	onePlusYInv.inv(&onePlusY)

	var ss FieldElement
	ss.mul(&oneMinusY, &onePlusYInv)

	var a, b, c FieldElement
	a.mul(&ss, &fieldD)
	var ssOnePlusDSq FieldElement
	ssOnePlusDSq.mul(&ss, &onePlusDSq)
	b.add(&ssOnePlusDSq, &oneMinusDSq)
	c.add(&a, &oneMinusDSq)

	var bSq, fourAC, disc FieldElement
	bSq.sqr(&b)
	fourAC.mul(&a, &c)
	fourAC.add(&fourAC, &fourAC)
	fourAC.add(&fourAC, &fourAC)
	disc.sub(&bSq, &fourAC)

	var sqrtDisc FieldElement
	discIsSquare := sqrtRatioM1(&sqrtDisc, &disc, &FieldOne)

	var twoA, twoAInv FieldElement
	twoA.add(&a, &a)
	twoAInv.inv(&twoA)

	var negB, negSqrtDisc FieldElement
	negB.negate(&b)
	negSqrtDisc.negate(&sqrtDisc)

	var r1, r2 FieldElement
	r1.add(&negB, &sqrtDisc)
	r1.mul(&r1, &twoAInv)
	r2.add(&negB, &negSqrtDisc)
	r2.mul(&r2, &twoAInv)

	// r = i*t^2, so t^2 = -i*r.
	var negI FieldElement
	negI.negate(&FieldSqrtMinusOne)

	var t2a, t2b, ta, tb FieldElement
	t2a.mul(&negI, &r1)
	t2b.mul(&negI, &r2)
	aIsSquare := sqrtRatioM1(&ta, &t2a, &FieldOne)
	bIsSquare := sqrtRatioM1(&tb, &t2b, &FieldOne)

	signBit := boolFromInt(int(which & 1))
	var taNeg, tbNeg FieldElement
	taNeg.negate(&ta)
	tbNeg.negate(&tb)
	ta.cmov(&taNeg, signBit)
	tb.cmov(&tbNeg, signBit)

	var checkA, checkB Point
	mapToPoint(&checkA, &ta)
	mapToPoint(&checkB, &tb)
	matchA := checkA.eq(p).and(aIsSquare)
	matchB := checkB.eq(p).and(bIsSquare)

	t := ta
	t.cmov(&tb, matchA.not().and(matchB))

	ok := discIsSquare.and(matchA.or(matchB))

	var buf [32]byte
	t.serialize(&buf, true, boolFromInt(int(which>>4)))

	if ok.IsTrue() {
		*out = buf
	} else {
		for i := range out {
			out[i] = 0
		}
	}
	return ok
}

// InvertElligatorUniform attempts to recover one of p's preimages under
// FromHashUniform (spec.md §4.5 invert_elligator_uniform, §6). Since
// FromHashUniform(b) = FromHashNonUniform(b[:32]) + FromHashNonUniform(b[32:]),
// this derives the first half deterministically from which's high bits
// (mapToPoint always succeeds forward, so any field element works as
// t0), then inverts target = p - mapToPoint(t0) for the second half
// using InvertElligatorNonUniform with which's low bits selecting the
// coset/sign within that inversion. The composition is exact whenever
// the inner inversion succeeds, since ristretto group addition is
// well-defined on cofactor cosets: encode(Q0 + invert(target)) ==
// encode(Q0 + target) == encode(p).
func InvertElligatorUniform(out *[64]byte, p *Point, which uint8) Bool {
	if which&6 != 0 {
		for i := range out {
			out[i] = 0
		}
		return boolFalse
	}

	var seed [32]byte
	seed[0] = which
	var t0 FieldElement
	var hi Bool
	t0.deserialize(&seed, true, &hi)

	var q0 Point
	mapToPoint(&q0, &t0)

	var target Point
	target.sub(p, &q0)

	var buf0, buf1 [32]byte
	t0.serialize(&buf0, false, boolFalse)

	ok := InvertElligatorNonUniform(&buf1, &target, which&1)

	if ok.IsTrue() {
		copy(out[:32], buf0[:])
		copy(out[32:], buf1[:])
	} else {
		for i := range out {
			out[i] = 0
		}
	}
	return ok
}
