package ristretto255

// PrecomputedTable is a fixed-base comb table: for each of
// precomputeWindows 4-bit windows of the scalar, it holds the 16
// multiples {0, 1, ..., 15} * (2^(4*window)) * base, so a fixed-base
// scalar multiplication costs one constant-time 16-way table lookup and
// one add per window instead of a full double-and-add ladder.
//
// Grounded in the teacher's EcmultGenContextEnhanced/preG table shape
// (`ecmult.go:31`, generalised from secp256k1's 256-bit/4-bit-window
// layout to ristretto255's 253-bit scalar field) and its Build
// (`ecmult.go:47`) which fills each window by repeated doubling.
type PrecomputedTable struct {
	base  Point
	table [precomputeWindows][precomputeTableSize]Point
}

const (
	precomputeWindowBits = 4
	precomputeTableSize  = 1 << precomputeWindowBits // 16
	precomputeWindows    = (253 + precomputeWindowBits - 1) / precomputeWindowBits
)

// SizeofPrecomputed and AlignofPrecomputed are exported per SPEC_FULL.md
// §3's ambient-stack decision to mirror the teacher's exported
// size/alignment constants for its own precomputed tables.
const (
	SizeofPrecomputed  = (precomputeWindows*precomputeTableSize + 1) * 4 * 5 * 8 // table plus base
	AlignofPrecomputed = 8
)

// Build fills t with the comb table for the given base point (spec.md
// §4.6's fixed-base path; §3's PrecomputedTable). Building is not
// constant-time (the base point and table contents are not secret) but
// every subsequent lookup against this table is.
func (t *PrecomputedTable) Build(base *Point) *PrecomputedTable {
	t.base = *base

	windowBase := *base
	for w := 0; w < precomputeWindows; w++ {
		t.table[w][0].setIdentity()
		t.table[w][1] = windowBase
		for d := 2; d < precomputeTableSize; d++ {
			if d%2 == 0 {
				t.table[w][d].double(&t.table[w][d/2])
			} else {
				t.table[w][d].add(&t.table[w][d-1], &windowBase)
			}
		}
		var next Point
		next.double(&windowBase)
		next.double(&next)
		next.double(&next)
		next.double(&next)
		windowBase = next
	}
	return t
}

// ScalarMul sets p = s*t.base using the comb table, selecting each
// window's entry with a constant-time 16-way cmov scan (spec.md §4.6
// precomputed_scalarmul) rather than indexing the table array with a
// secret index, which would leak the nibble through cache timing.
func (t *PrecomputedTable) ScalarMul(p *Point, s *Scalar) *Point {
	enc := s.bytes()

	var acc Point
	acc.setIdentity()

	for w := 0; w < precomputeWindows; w++ {
		nibble := nibbleAt(&enc, w*precomputeWindowBits)

		var selected Point
		selected.setIdentity()
		for d := 0; d < precomputeTableSize; d++ {
			selected.cmov(&t.table[w][d], eqU64(uint64(nibble), uint64(d)))
		}
		acc.add(&acc, &selected)
	}
	*p = acc
	return p
}

// nibbleAt reads a precomputeWindowBits-wide field out of enc starting
// at bit offset bitOffset (little-endian bit numbering, bit 0 = LSB of
// byte 0).
func nibbleAt(enc *[32]byte, bitOffset int) uint8 {
	byteIdx := bitOffset / 8
	bitIdx := uint(bitOffset % 8)
	v := uint16(enc[byteIdx])
	if byteIdx+1 < len(enc) {
		v |= uint16(enc[byteIdx+1]) << 8
	}
	return uint8((v >> bitIdx) & (precomputeTableSize - 1))
}

// Destroy zeroes the table's contents, per spec.md §7.
func (t *PrecomputedTable) Destroy() {
	t.base.destroy()
	for w := range t.table {
		for d := range t.table[w] {
			t.table[w][d].destroy()
		}
	}
}

// PrecomputedBase is the package's ready-built comb table for the
// standard generator, mirroring spec.md §3's precomputed_base constant.
// It is built by constants.go's init (after PointBase itself is
// decoded), not here, so the two package-level values don't depend on
// cross-file init ordering.
var PrecomputedBase PrecomputedTable
