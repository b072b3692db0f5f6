package ristretto255

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoolIsTrue(t *testing.T) {
	require.True(t, boolTrue.IsTrue())
	require.False(t, boolFalse.IsTrue())
}

func TestBoolAndOrNot(t *testing.T) {
	require.True(t, boolTrue.and(boolTrue).IsTrue())
	require.False(t, boolTrue.and(boolFalse).IsTrue())
	require.True(t, boolTrue.or(boolFalse).IsTrue())
	require.False(t, boolFalse.or(boolFalse).IsTrue())
	require.True(t, boolFalse.not().IsTrue())
	require.False(t, boolTrue.not().IsTrue())
}

func TestCmovU64(t *testing.T) {
	r := uint64(3)
	cmovU64(&r, 5, boolTrue)
	require.Equal(t, uint64(5), r)

	r = 3
	cmovU64(&r, 5, boolFalse)
	require.Equal(t, uint64(3), r)
}

func TestCselU64(t *testing.T) {
	require.Equal(t, uint64(5), cselU64(5, 3, boolTrue))
	require.Equal(t, uint64(3), cselU64(5, 3, boolFalse))
}

func TestEqU64(t *testing.T) {
	require.True(t, eqU64(7, 7).IsTrue())
	require.False(t, eqU64(7, 8).IsTrue())
}

func TestSecureZero(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	secureZero(buf)
	require.Equal(t, []byte{0, 0, 0, 0}, buf)
}
