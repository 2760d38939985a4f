package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/herohde/liberty/pkg/engine"
	"github.com/herohde/liberty/pkg/engine/console"
	"github.com/herohde/liberty/pkg/engine/uci"
	"github.com/herohde/liberty/pkg/eval"
	"github.com/herohde/liberty/pkg/search"
	"github.com/seekerror/logw"
)

var (
	depth = flag.Int("depth", 0, "Default search depth limit (zero for none)")
	hash  = flag.Int("hash", 0, "Transposition table size in MB (zero to disable)")
	noise = flag.Int("noise", 10, "Evaluation noise in centipawns (zero if deterministic)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: oxidation [options]

OXIDATION is a UCI-compatible engine for Liberty Chess.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	s := search.PVS{
		Eval: search.Quiescence{
			Eval: eval.Tapered{},
		},
	}
	e := engine.New(ctx, "oxidation", "herohde", s, engine.WithOptions(engine.Options{
		Depth: uint(*depth),
		Hash:  uint(*hash),
		Noise: uint(*noise),
	}))

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		// Use UCI protocol.

		driver, out := uci.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	case console.ProtocolName:
		driver, out := console.NewDriver(ctx, e, s, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
