// Package hash provides CRC32-Castagnoli (CRC32C) checksums used to
// fingerprint experiment corpora.
//
// A corpus is usually streamed through a decompressor, so Reader computes the
// checksum while the data is consumed instead of requiring a second pass:
//
//	r := hash.NewReader(src)
//	words, err := corpus.ReadWords(r)
//	fingerprint := r.Sum32()
//
// Two runs that report the same fingerprint hashed byte-identical input.
// The checksum is unrelated to the digests produced by package hashmix.
package hash
