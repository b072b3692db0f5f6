package ristretto255

import (
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

// These mirror the concrete end-to-end vectors spec.md §8 lists as coming
// from the ristretto255 test-vectors standard.

func TestVectorEncodeIdentity(t *testing.T) {
	require.Equal(t, [32]byte{}, PointIdentity.Encode())
}

func TestVectorEncodeBase(t *testing.T) {
	want, err := hex.DecodeString("e2f2ae0a6abc4e71a884a961c500515f58e30b6aa582dd8db6a65945e08d2d76")
	require.NoError(t, err)

	got := PointBase.Encode()
	require.Equal(t, want, got[:])
}

func TestVectorEncodeDoubleBase(t *testing.T) {
	want, err := hex.DecodeString("6a493210f7499cd17fecb510ae0cea23a110e8d5b901f8acadd3095c73a3b919")
	require.NoError(t, err)

	var doubled Point
	doubled.double(&PointBase)
	got := doubled.Encode()
	require.Equal(t, want, got[:])
}

func TestVectorDecodeAllOnesFails(t *testing.T) {
	var ones [32]byte
	for i := range ones {
		ones[i] = 0xff
	}
	var p Point
	ok := p.Decode(&ones, false)
	require.False(t, ok.IsTrue())
}

func TestVectorScalarTwoTimesBase(t *testing.T) {
	two := scalarFromUint64(2)

	var viaScalarMul, viaAdd, viaDouble Point
	viaScalarMul.ScalarMul(&two, &PointBase)
	viaAdd.add(&PointBase, &PointBase)
	viaDouble.double(&PointBase)

	require.Equal(t, viaAdd.Encode(), viaScalarMul.Encode())
	require.Equal(t, viaDouble.Encode(), viaScalarMul.Encode())

	want, err := hex.DecodeString("6a493210f7499cd17fecb510ae0cea23a110e8d5b901f8acadd3095c73a3b919")
	require.NoError(t, err)
	got := viaScalarMul.Encode()
	require.Equal(t, want, got[:])
}

func TestVectorFromHashUniformEspressoCoffee(t *testing.T) {
	sum := sha512.Sum512([]byte("Ristretto is traditionally a short shot of espresso coffee"))
	p := FromHashUniform(&sum)

	want, err := hex.DecodeString("80c265adb1ecee30a36096126dde57100034d44a04672d8011d8a93dac0d905d")
	require.NoError(t, err)

	got := p.Encode()
	require.Equal(t, want, got[:])
}
