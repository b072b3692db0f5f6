// Package ristretto255 implements the ristretto255 prime-order group:
// a constant-time abstraction over the cofactor-8 Edwards curve built
// on Curve25519, giving callers a 32-byte-encodable group of prime
// order suitable for building discrete-log-based protocols (Schnorr-
// style signatures, OPRFs, VRFs, PAKEs) without cofactor-related pitfalls.
//
// The package is organised by concern rather than by type: field.go is
// the GF(2^255-19) base field, scalar.go is the integers mod the group
// order ℓ, edwards.go is the underlying twisted Edwards curve group
// law, ristretto.go is the canonical encode/decode bijection between
// group elements and 32-byte strings, elligator.go hashes arbitrary
// bytes onto the group, scalarmul.go and precompute.go cover the
// variable- and fixed-base multiplication paths, and ctutil.go holds
// the constant-time primitives the rest of the package is built from.
package ristretto255
