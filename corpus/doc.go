// Package corpus provides the inputs fed to collision and distribution
// experiments: deduplicated word lists and runs of sequential integers.
//
// Word lists are plain text, one word per line. Lines starting with '#' and
// blank lines are ignored. Files may be compressed; the codec is chosen from
// the extension:
//
//	.gz          gzip
//	.zst, .zstd  Zstandard
//	.lz4         LZ4 frame
//
// A Loader reads word lists from the local file system or from S3:
//
//	l := corpus.NewLoader(corpus.WithS3Client(s3.NewFromConfig(cfg)))
//	c, err := l.Load(ctx, "s3://corpora/english-words.txt.zst")
//
// Each loaded corpus carries the CRC32-C of its decompressed bytes so that
// reports can tell whether two runs hashed the same input.
package corpus
