package ristretto255

import (
	"crypto/sha512"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromHashNonUniformIsDeterministic(t *testing.T) {
	var in [32]byte
	for i := range in {
		in[i] = byte(i)
	}
	p1 := FromHashNonUniform(&in)
	p2 := FromHashNonUniform(&in)
	require.Equal(t, p1.Encode(), p2.Encode())
}

func TestFromHashNonUniformProducesValidPoint(t *testing.T) {
	var in [32]byte
	for i := range in {
		in[i] = byte(i * 7)
	}
	p := FromHashNonUniform(&in)
	require.True(t, p.isValid().IsTrue())
}

func TestFromHashUniformIsDeterministicAndValid(t *testing.T) {
	sum := sha512.Sum512([]byte("Ristretto is traditionally a short shot of espresso coffee"))
	p1 := FromHashUniform(&sum)
	p2 := FromHashUniform(&sum)
	require.Equal(t, p1.Encode(), p2.Encode())
	require.True(t, p1.isValid().IsTrue())
}

func TestFromHashUniformDiffersFromNonUniformHalves(t *testing.T) {
	// from_hash_uniform is the sum of two independent MAP() applications,
	// not just a pass-through of either half, so it should (with
	// overwhelming probability) differ from mapping either half alone.
	var wide [64]byte
	for i := range wide {
		wide[i] = byte(i * 3)
	}
	var half1, half2 [32]byte
	copy(half1[:], wide[:32])
	copy(half2[:], wide[32:])

	full := FromHashUniform(&wide)
	only1 := FromHashNonUniform(&half1)
	only2 := FromHashNonUniform(&half2)

	require.NotEqual(t, full.Encode(), only1.Encode())
	require.NotEqual(t, full.Encode(), only2.Encode())
}

func TestMapToPointIsDeterministic(t *testing.T) {
	var t1 FieldElement
	t1.setInt(12345)

	var p1, p2 Point
	mapToPoint(&p1, &t1)
	mapToPoint(&p2, &t1)
	require.Equal(t, p1.Encode(), p2.Encode())
	require.True(t, p1.isValid().IsTrue())
}

func TestInvertElligatorUnsupportedCosetFails(t *testing.T) {
	var out [32]byte
	ok := InvertElligatorNonUniform(&out, &PointBase, 2) // which&6 == 2, unsupported coset
	require.False(t, ok.IsTrue())
}

func TestInvertElligatorNonUniformRoundTrips(t *testing.T) {
	// Sweep a handful of t values covering the which&6==0 branch of
	// mapToPoint and check that inverting the resulting point recovers
	// a genuine preimage: feeding the recovered bytes back through
	// FromHashNonUniform must reproduce the same point. Not every t
	// lands on this branch's coset, so count successes instead of
	// requiring every trial to hit.
	hits := 0
	for i := 1; i <= 500; i++ {
		var tIn FieldElement
		tIn.setInt(uint64(i))

		var p Point
		mapToPoint(&p, &tIn)

		var out [32]byte
		ok := InvertElligatorNonUniform(&out, &p, 0)
		if !ok.IsTrue() {
			continue
		}
		hits++

		recovered := FromHashNonUniform(&out)
		require.Equal(t, p.Encode(), recovered.Encode(),
			"mismatch recovering preimage of t=%d", i)
	}
	require.Greater(t, hits, 0, "expected at least one successful inversion in the sweep")
}

func TestInvertElligatorNonUniformSignBitSelectsBothRoots(t *testing.T) {
	var tIn FieldElement
	tIn.setInt(2)
	var p Point
	mapToPoint(&p, &tIn)

	var out0, out1 [32]byte
	ok0 := InvertElligatorNonUniform(&out0, &p, 0)
	ok1 := InvertElligatorNonUniform(&out1, &p, 1)
	require.True(t, ok0.IsTrue())
	require.True(t, ok1.IsTrue())

	r0 := FromHashNonUniform(&out0)
	r1 := FromHashNonUniform(&out1)
	require.Equal(t, p.Encode(), r0.Encode())
	require.Equal(t, p.Encode(), r1.Encode())
}

func TestInvertElligatorUniformRoundTrips(t *testing.T) {
	hits := 0
	for i := 0; i < 64; i++ {
		which := uint8(i)

		var seed [64]byte
		seed[0] = which + 1
		seed[40] = which + 2
		p := FromHashUniform(&seed)

		var out [64]byte
		ok := InvertElligatorUniform(&out, &p, which&1)
		if !ok.IsTrue() {
			continue
		}
		hits++

		recovered := FromHashUniform(&out)
		require.Equal(t, p.Encode(), recovered.Encode(),
			"mismatch recovering preimage for which=%d", which)
	}
	require.Greater(t, hits, 0, "expected at least one successful uniform inversion")
}

func TestInvertElligatorUniformUnsupportedCosetFails(t *testing.T) {
	var out [64]byte
	ok := InvertElligatorUniform(&out, &PointBase, 4) // which&6 == 4, unsupported coset
	require.False(t, ok.IsTrue())
}
