// Package decompose reduces fixed-width values to the canonical sequences of
// bytes and 32-bit words consumed by the mixing protocols.
//
// Every function is pure and independent of host endianness: multi-byte
// values are always emitted least significant byte (or word) first, so a
// digest computed on a big-endian host matches one computed on amd64 or arm64.
//
// # Strings
//
// Strings are mixed as UTF-16 code units. Go strings hold UTF-8, so UTF16
// transcodes on the fly: runes above U+FFFF become surrogate pairs and
// invalid UTF-8 sequences become U+FFFD.
//
// For word-wise algorithms StringWords pairs code units into words (first unit
// in the low half). When the unit count is odd the last unit is emitted alone,
// zero-extended, after all pairs.
package decompose
