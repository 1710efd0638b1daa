// Command hashmix measures collision counts and bucket spread of the hashmix
// accumulators and a few baselines over word lists and sequential integers.
//
//	hashmix collisions --words english.txt.zst --words s3://corpora/names.txt
//	hashmix hashers
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("hashmix"),
		kong.Description("Hash quality experiments for hashmix accumulators."),
		kong.UsageOnError(),
	)
	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.FatalIfErrorf(kctx.Run(&cli.Globals))
}
