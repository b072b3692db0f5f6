package ristretto255

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScalarAddSubNegate(t *testing.T) {
	var a, b, sum, diff, negA Scalar
	a.setBytesModOrder(&[32]byte{5})
	b.setBytesModOrder(&[32]byte{3})

	sum.add(&a, &b)
	var eight Scalar
	eight.setBytesModOrder(&[32]byte{8})
	require.True(t, sum.eq(&eight).IsTrue())

	diff.sub(&a, &b)
	var two Scalar
	two.setBytesModOrder(&[32]byte{2})
	require.True(t, diff.eq(&two).IsTrue())

	negA.negate(&a)
	var zero Scalar
	zero.add(&a, &negA)
	require.True(t, zero.isZero().IsTrue())
}

func TestScalarMulAndInvert(t *testing.T) {
	var a, inv, product Scalar
	a.setBytesModOrder(&[32]byte{42})
	inv.invert(&a)
	product.mul(&a, &inv)
	require.True(t, product.eq(&ScalarOne).IsTrue())
}

func TestScalarMuladdAgainstMulThenAdd(t *testing.T) {
	var a, b, c, viaMuladd, mul, viaMulAdd Scalar
	a.setBytesModOrder(&[32]byte{11})
	b.setBytesModOrder(&[32]byte{13})
	c.setBytesModOrder(&[32]byte{17})

	viaMuladd.muladd(&a, &b, &c)

	mul.mul(&a, &b)
	viaMulAdd.add(&mul, &c)

	require.True(t, viaMuladd.eq(&viaMulAdd).IsTrue())
}

func TestScalarSetBytesModOrderWideReducesLargeInput(t *testing.T) {
	var wide [64]byte
	for i := range wide {
		wide[i] = 0xff
	}
	var s Scalar
	s.setBytesModOrderWide(&wide)

	b := s.bytes()
	require.True(t, scMinimal(b[:]))
}

func TestScalarHalveDoubledIsOriginal(t *testing.T) {
	var a, half, doubled Scalar
	a.setBytesModOrder(&[32]byte{100})
	half.halve(&a)
	doubled.add(&half, &half)
	require.True(t, doubled.eq(&a).IsTrue())
}

func TestScalarIsCanonicalRejectsOrderItself(t *testing.T) {
	b := [32]byte{
		0xed, 0xd3, 0xf5, 0x5c, 0x1a, 0x63, 0x12, 0x58,
		0xd6, 0x9c, 0xf7, 0xa2, 0xde, 0xf9, 0xde, 0x14,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0x10,
	}
	require.False(t, scalarIsCanonical(b[:]).IsTrue())
}

func TestScalarZeroIsZero(t *testing.T) {
	require.True(t, ScalarZero.isZero().IsTrue())
	require.False(t, ScalarOne.isZero().IsTrue())
}

func TestScalarCmov(t *testing.T) {
	var a, b, r Scalar
	a.setBytesModOrder(&[32]byte{1})
	b.setBytesModOrder(&[32]byte{2})

	r = a
	r.cmov(&b, boolFalse)
	require.True(t, r.eq(&a).IsTrue())

	r = a
	r.cmov(&b, boolTrue)
	require.True(t, r.eq(&b).IsTrue())
}
