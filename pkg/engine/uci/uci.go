// Package uci contains a driver for using the engine under the UCI protocol.
//
// See: http://wbec-ridderkerk.nl/html/UCIProtocol.html
// See: https://en.wikipedia.org/wiki/Universal_Chess_Interface
package uci

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/herohde/liberty/pkg/board/fen"
	"github.com/herohde/liberty/pkg/engine"
	"github.com/herohde/liberty/pkg/search"
	"github.com/herohde/liberty/pkg/search/searchctl"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"go.uber.org/atomic"
)

const ProtocolName = "uci"

// Driver implements a UCI driver for an engine. It is activated if sent "uci".
type Driver struct {
	e *engine.Engine

	out chan<- string

	active       atomic.Bool    // user is waiting for engine to move
	ponder       chan search.PV // chan for intermediate search information
	lastPosition string         // last position line (empty if no last position)
	debug        atomic.Bool

	quit   chan struct{}
	closed atomic.Bool
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		e:      e,
		out:    out,
		ponder: make(chan search.PV, 400),
		quit:   make(chan struct{}),
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) Close() {
	if d.closed.CAS(false, true) {
		close(d.quit)
	}
}

func (d *Driver) Closed() <-chan struct{} {
	return d.quit
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "UCI protocol initialized")

	d.out <- fmt.Sprintf("id name %v", d.e.Name())
	d.out <- fmt.Sprintf("id author %v", d.e.Author())
	d.out <- fmt.Sprintf("id version %v", d.e.Version())
	d.out <- "id pieces p n b r q k a c l z x i h u m e o w"

	d.out <- "option name Hash type spin default 0 min 0 max 65536"
	d.out <- "option name Depth type spin default 0 min 0 max 128"
	d.out <- "option name Noise type spin default 0 min 0 max 1000"

	d.out <- "uciok"

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			parts := strings.Fields(line)
			if len(parts) == 0 {
				break
			}

			cmd := parts[0]
			args := parts[1:]

			switch strings.ToLower(cmd) {
			case "isready":
				d.out <- "readyok"

			case "debug":
				if len(args) > 0 {
					d.debug.Store(args[0] == "on")
				}

			case "setoption":
				name, value := parseSetOption(args)
				switch name {
				case "Hash":
					if n, err := strconv.Atoi(value); err == nil && n >= 0 {
						d.e.SetHash(uint(n))
					}
				case "Depth":
					if n, err := strconv.Atoi(value); err == nil && n >= 0 {
						d.e.SetDepth(uint(n))
					}
				case "Noise":
					if n, err := strconv.Atoi(value); err == nil && n >= 0 {
						d.e.SetNoise(uint(n))
					}
				default:
					d.info(ctx, fmt.Sprintf("servererror unknown option '%v'", name))
				}

			case "register":
				// Not required: this engine needs no registration.

			case "ucinewgame":
				d.ensureInactive(ctx)
				d.lastPosition = ""

			case "position":
				d.ensureInactive(ctx)

				if d.lastPosition != "" && strings.HasPrefix(line, d.lastPosition) {
					moves := strings.TrimSpace(strings.TrimPrefix(line, d.lastPosition))
					for _, arg := range strings.Fields(moves) {
						if arg == "moves" {
							continue
						}
						if err := d.e.Move(ctx, arg); err != nil {
							d.illegal(ctx, arg, line)
							return
						}
					}

					d.lastPosition = line
					break
				}

				position, rest, err := parsePosition(args)
				if err != nil {
					logw.Errorf(ctx, "Invalid position: %v: %v", line, err)
					return
				}
				if err := d.e.Reset(ctx, position); err != nil {
					logw.Errorf(ctx, "Invalid position: %v: %v", line, err)
					return
				}

				move := false
				for _, arg := range rest {
					if arg == "moves" {
						move = true
						continue
					}
					if !move {
						continue
					}
					if err := d.e.Move(ctx, arg); err != nil {
						d.illegal(ctx, arg, line)
						return
					}
				}
				d.lastPosition = line

			case "go":
				d.ensureInactive(ctx)

				opt, infinite, timeout := parseGo(args)

				out, err := d.e.Analyze(ctx, opt)
				if err != nil {
					logw.Errorf(ctx, "Analyze failed: %v", err)
					return
				}
				d.active.Store(true)

				go func() {
					var last search.PV
					for pv := range out {
						last = pv
						d.ponder <- pv
					}
					if !infinite {
						d.searchCompleted(ctx, last)
					}
				}()

				if timeout > 0 {
					time.AfterFunc(timeout, func() {
						_, _ = d.e.Halt(ctx)
					})
				}

			case "stop":
				pv, err := d.e.Halt(ctx)
				if err == nil {
					d.searchCompleted(ctx, pv)
				}

			case "eval":
				d.out <- fmt.Sprintf("info string eval %v", d.e.Evaluate(ctx))

			case "bench":
				d.bench(ctx, args)

			case "ponderhit":
				// Pondering is not supported.

			case "quit":
				return

			default:
				d.info(ctx, fmt.Sprintf("servererror unknown command '%v'", cmd))
			}

		case pv := <-d.ponder:
			if d.active.Load() {
				d.out <- printPV(pv)
			}

		case <-d.quit:
			d.ensureInactive(ctx)

			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func (d *Driver) ensureInactive(ctx context.Context) {
	d.active.Store(false)
	_, _ = d.e.Halt(ctx)
}

func (d *Driver) illegal(ctx context.Context, move, line string) {
	d.out <- fmt.Sprintf("servererror illegal move %v from %v", move, line)
	logw.Errorf(ctx, "Illegal move %v: %v", move, line)
}

func (d *Driver) info(ctx context.Context, msg string) {
	if d.debug.Load() {
		d.out <- fmt.Sprintf("info string %v", msg)
	}
}

func (d *Driver) bench(ctx context.Context, args []string) {
	depth := uint(4)
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			depth = uint(n)
		}
	}

	opt := searchctl.Options{DepthLimit: lang.Some(depth)}
	out, err := d.e.Analyze(ctx, opt)
	if err != nil {
		logw.Errorf(ctx, "Bench failed: %v", err)
		return
	}

	var last search.PV
	for pv := range out {
		last = pv
	}
	d.out <- fmt.Sprintf("info string bench %v", last)
}

func (d *Driver) searchCompleted(ctx context.Context, pv search.PV) {
	if d.active.CAS(true, false) {
		if len(pv.Moves) > 0 {
			d.out <- printPV(pv)
			d.out <- fmt.Sprintf("bestmove %v", pv.Moves[0])
		} else {
			d.out <- "bestmove 0000"
		}
	} // else: stale or duplicate result
}

func printPV(pv search.PV) string {
	// "info depth 2 score cp 214 nodes 2124 time 1242 nps 1710 hashfull 0 pv e2e4 e7e5 g1f3"

	parts := []string{"info"}
	parts = append(parts, fmt.Sprintf("depth %v", pv.Depth))
	if moves, ok := pv.Score.MateDistance(); ok {
		parts = append(parts, fmt.Sprintf("score mate %v", moves))
	} else if moves, ok := pv.Score.Negate().MateDistance(); ok {
		parts = append(parts, fmt.Sprintf("score mate %v", -moves))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %v", pv.Score.Value))
	}
	if pv.Nodes > 0 {
		parts = append(parts, fmt.Sprintf("nodes %v", pv.Nodes))
	}
	if pv.Time > 0 {
		parts = append(parts, fmt.Sprintf("time %v", pv.Time.Milliseconds()))
	}
	if pv.Nodes > 0 && pv.Time > 0 {
		parts = append(parts, fmt.Sprintf("nps %v", uint64(time.Second)*pv.Nodes/uint64(pv.Time)))
	}
	parts = append(parts, fmt.Sprintf("hashfull %v", int(1000*pv.Hash)))
	if len(pv.Moves) > 0 {
		parts = append(parts, "pv")
		for _, m := range pv.Moves {
			parts = append(parts, m.String())
		}
	}

	return strings.Join(parts, " ")
}

func parseSetOption(args []string) (name, value string) {
	mode := ""
	var nameParts, valueParts []string
	for _, a := range args {
		switch a {
		case "name":
			mode = "name"
			continue
		case "value":
			mode = "value"
			continue
		}
		switch mode {
		case "name":
			nameParts = append(nameParts, a)
		case "value":
			valueParts = append(valueParts, a)
		}
	}
	return strings.Join(nameParts, " "), strings.Join(valueParts, " ")
}

// parsePosition parses "position {startpos|fen <L-FEN>} [moves ...]" into the
// position's L-FEN string plus the remaining unconsumed tokens.
func parsePosition(args []string) (string, []string, error) {
	if len(args) == 0 {
		return "", nil, fmt.Errorf("empty position command")
	}
	if args[0] == "startpos" {
		return fen.Initial, args[1:], nil
	}
	if args[0] != "fen" {
		return "", nil, fmt.Errorf("expected startpos or fen, got %q", args[0])
	}

	rest := args[1:]
	n := 0
	for n < len(rest) && rest[n] != "moves" {
		n++
	}
	return strings.Join(rest[:n], " "), rest[n:], nil
}

// parseGo parses the arguments to "go" into search options, whether the search is
// unbounded ("infinite", requiring an explicit "stop"), and a hard movetime timeout.
func parseGo(args []string) (searchctl.Options, bool, time.Duration) {
	var opt searchctl.Options
	var tc searchctl.TimeControl
	haveTC := false
	infinite := false
	timeout := time.Duration(0)

	for i := 0; i < len(args); i++ {
		cmd := args[i]
		switch cmd {
		case "wtime", "btime", "winc", "binc", "movestogo", "depth", "movetime", "nodes", "mate":
			i++
			if i == len(args) {
				break
			}
			n, err := strconv.Atoi(args[i])
			if err != nil {
				break
			}

			switch cmd {
			case "depth":
				opt.DepthLimit = lang.Some(uint(n))
			case "mate":
				opt.DepthLimit = lang.Some(uint(2 * n))
			case "wtime":
				tc.White = time.Millisecond * time.Duration(n)
				haveTC = true
			case "btime":
				tc.Black = time.Millisecond * time.Duration(n)
				haveTC = true
			case "movestogo":
				tc.Moves = n
				haveTC = true
			case "movetime":
				timeout = time.Millisecond * time.Duration(n)
			}

		case "infinite":
			infinite = true

		default:
			// winc/binc/nodes/searchmoves/ponder: acknowledged but not separately
			// enforced by this engine's time control.
		}
	}

	if haveTC {
		opt.TimeControl = lang.Some(tc)
	}
	return opt, infinite, timeout
}

