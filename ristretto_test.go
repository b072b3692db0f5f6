package ristretto255

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var doubled Point
	doubled.double(&PointBase)

	enc := doubled.Encode()

	var decoded Point
	ok := decoded.Decode(&enc, false)
	require.True(t, ok.IsTrue())
	require.True(t, decoded.eq(&doubled).IsTrue())
}

func TestEncodeIdentityIsAllZero(t *testing.T) {
	enc := PointIdentity.Encode()
	require.Equal(t, [32]byte{}, enc)
}

func TestDecodeIdentityFromAllZero(t *testing.T) {
	var zero [32]byte
	var p Point
	ok := p.Decode(&zero, true)
	require.True(t, ok.IsTrue())
	require.True(t, p.eq(&PointIdentity).IsTrue())
}

func TestDecodeIdentityRejectedUnlessAllowed(t *testing.T) {
	var zero [32]byte
	var p Point
	ok := p.Decode(&zero, false)
	require.False(t, ok.IsTrue())
}

func TestDecodeAllOnesFails(t *testing.T) {
	var ones [32]byte
	for i := range ones {
		ones[i] = 0xff
	}
	var p Point
	ok := p.Decode(&ones, false)
	require.False(t, ok.IsTrue())
}

func TestDecodeAlwaysWritesAPoint(t *testing.T) {
	// Per spec.md §7, decode writes a fully-formed point even on
	// failure, so that timing does not depend on the validity bit.
	var ones [32]byte
	for i := range ones {
		ones[i] = 0xff
	}
	var p Point
	p.Decode(&ones, false)
	require.True(t, p.Z.eq(&FieldOne).IsTrue())
}

func TestProjectiveScaleInvariance(t *testing.T) {
	// P and P with X, Y, Z, T jointly rescaled by the same nonzero
	// factor are the same projective point and must encode identically.
	// Torque invariance is checked by TestDebuggingTorqueIsEncodingEquivalent.
	var base, scaled Point
	base = PointBase

	var lambda FieldElement
	lambda.setInt(7)

	scaled.X.mul(&base.X, &lambda)
	scaled.Y.mul(&base.Y, &lambda)
	scaled.Z.mul(&base.Z, &lambda)
	scaled.T.mul(&base.T, &lambda)

	require.Equal(t, base.Encode(), scaled.Encode())
}

func TestSqrtRatioM1RejectsNonSquare(t *testing.T) {
	// i = FieldSqrtMinusOne is a known non-square: i^((p-1)/2) =
	// (-1)^((p-1)/4) = -1 because (p-1)/4 is odd. So sqrt_ratio_m1(i, 1)
	// must report "not square".
	var r FieldElement
	wasSquare := sqrtRatioM1(&r, &FieldSqrtMinusOne, &FieldOne)
	require.False(t, wasSquare.IsTrue())
}
