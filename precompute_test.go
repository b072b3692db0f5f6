package ristretto255

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrecomputedBaseMatchesGeneralScalarMul(t *testing.T) {
	s := scalarFromUint64(777)

	var viaPrecomputed, viaGeneral Point
	PrecomputedBase.ScalarMul(&viaPrecomputed, &s)
	viaGeneral.ScalarMul(&s, &PointBase)

	require.Equal(t, viaGeneral.Encode(), viaPrecomputed.Encode())
}

func TestPrecomputedBaseZeroIsIdentity(t *testing.T) {
	var r Point
	PrecomputedBase.ScalarMul(&r, &ScalarZero)
	require.Equal(t, PointIdentity.Encode(), r.Encode())
}

func TestPrecomputedTableBuildOnArbitraryBase(t *testing.T) {
	var doubled Point
	doubled.double(&PointBase)

	var table PrecomputedTable
	table.Build(&doubled)

	five := scalarFromUint64(5)
	var viaTable, viaGeneral Point
	table.ScalarMul(&viaTable, &five)
	viaGeneral.ScalarMul(&five, &doubled)

	require.Equal(t, viaGeneral.Encode(), viaTable.Encode())
}

func TestNibbleAtExtractsExpectedBits(t *testing.T) {
	enc := [32]byte{0xAB}
	require.Equal(t, uint8(0xB), nibbleAt(&enc, 0))
	require.Equal(t, uint8(0xA), nibbleAt(&enc, 4))
}
