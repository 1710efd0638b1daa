// Package experiment measures how well hashers spread real inputs.
//
// A Runner hashes every item of every corpus with every hasher, counts the
// digests that repeat an earlier digest and how many of 2^bits buckets the
// digests land in, and collects the results into a Report:
//
//	r := experiment.NewRunner(experiment.WithConcurrency(4))
//	report, err := r.Run(ctx, []*corpus.Corpus{words, numbers}, experiment.Default())
//	if err != nil {
//		return err
//	}
//	return report.Render(os.Stdout, experiment.FormatText)
//
// Besides the hashmix accumulators, the built-in hashers include baselines
// that bracket the results: Const collides on every item after the first,
// Terribad is the multiply-by-17 loop many hand-written hash functions use,
// and Noise returns random digests and so shows the collision rate of an
// ideal 32-bit function.
package experiment
