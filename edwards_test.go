package ristretto255

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPointIdentityIsAdditiveIdentity(t *testing.T) {
	var sum Point
	sum.add(&PointBase, &PointIdentity)
	require.True(t, sum.eq(&PointBase).IsTrue())
}

func TestPointDoubleMatchesAddToSelf(t *testing.T) {
	var viaDouble, viaAdd Point
	viaDouble.double(&PointBase)
	viaAdd.add(&PointBase, &PointBase)
	require.True(t, viaDouble.eq(&viaAdd).IsTrue())
}

func TestPointNegateThenAddIsIdentity(t *testing.T) {
	var neg, sum Point
	neg.negate(&PointBase)
	sum.add(&PointBase, &neg)
	require.True(t, sum.eq(&PointIdentity).IsTrue())
}

func TestPointSubMatchesAddNegate(t *testing.T) {
	var doubled, neg, viaSub, viaAddNeg Point
	doubled.double(&PointBase)

	neg.negate(&PointBase)
	viaAddNeg.add(&doubled, &neg)

	viaSub.sub(&doubled, &PointBase)
	require.True(t, viaSub.eq(&viaAddNeg).IsTrue())
}

func TestPointBaseIsValid(t *testing.T) {
	require.True(t, PointBase.isValid().IsTrue())
	require.True(t, PointIdentity.isValid().IsTrue())
}

func TestPointCmov(t *testing.T) {
	var doubled, r Point
	doubled.double(&PointBase)

	r = PointBase
	r.cmov(&doubled, boolFalse)
	require.True(t, r.eq(&PointBase).IsTrue())

	r = PointBase
	r.cmov(&doubled, boolTrue)
	require.True(t, r.eq(&doubled).IsTrue())
}

func TestPointEqDistinguishesDifferentPoints(t *testing.T) {
	var doubled Point
	doubled.double(&PointBase)
	require.False(t, PointBase.eq(&doubled).IsTrue())
}

func TestPointEqAcceptsOrder4Translate(t *testing.T) {
	// P' = (i*y, i*x) is the order-4-coset translate of P = (x, y); a
	// correct eq must treat it as the same group element even though
	// its Edwards coordinates differ. The second cross-ratio condition
	// (Y1*Y2 == X1*X2) is what catches this case: X1*Y2 == Y1*X2 alone
	// is false here whenever x != ±y.
	var zInv FieldElement
	zInv.inv(&PointBase.Z)
	var x, y FieldElement
	x.mul(&PointBase.X, &zInv)
	y.mul(&PointBase.Y, &zInv)

	var ix, iy FieldElement
	ix.mul(&x, &FieldSqrtMinusOne)
	iy.mul(&y, &FieldSqrtMinusOne)

	var translated Point
	translated.setAffine(&iy, &ix)

	require.True(t, PointBase.eq(&translated).IsTrue())
}

func TestDebuggingTorqueIsEncodingEquivalent(t *testing.T) {
	var torqued Point
	torqued.debuggingTorque(&PointBase)
	require.Equal(t, PointBase.Encode(), torqued.Encode())
	require.True(t, torqued.isValid().IsTrue())
}

func TestDebuggingPScaleIsEncodingEquivalent(t *testing.T) {
	var lambda FieldElement
	lambda.setInt(12345)

	var scaled Point
	scaled.debuggingPScale(&PointBase, &lambda)
	require.Equal(t, PointBase.Encode(), scaled.Encode())
	require.True(t, scaled.isValid().IsTrue())
}
