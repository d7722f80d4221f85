// Package felt implements the field element carried in VM panic payloads.
//
// A Felt is an unsigned residue modulo P = 2^251 + 17*2^192 + 1, stored as a
// 256-bit integer. Only the views needed to inspect payloads are provided:
//
//	Bytes32()   canonical 32-byte big-endian form
//	Bytes31()   31-byte packed-word form (fails for values >= 2^248)
//	Stripped()  big-endian bytes without leading zeros
//	Uint()      lossless conversion to a native unsigned size
//	Hex()       lowercase 0x-prefixed form, "0x0" for zero
//
// Felts are plain values; copy and compare them with ==.
package felt
