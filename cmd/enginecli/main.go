// Command enginecli is a thin demo driver: it runs a perft count from the
// starting position, then plays a short self-play game against itself,
// printing each move in UCI notation with the search stats behind it.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/profile"

	"github.com/tiraaamisuuu/Orryx-Chess-Engine/engine"
	"github.com/tiraaamisuuu/Orryx-Chess-Engine/orryx"
)

func main() {
	var (
		doProfile = flag.Bool("profile", false, "wrap the run in a CPU profile")
		depth     = flag.Int("depth", engine.DefaultMaxDepth, "max search depth per move")
		timeMs    = flag.Int("movetime", engine.DefaultTimeLimitMs, "time budget per move, in ms")
		plies     = flag.Int("plies", 20, "number of self-play half-moves")
		perftN    = flag.Int("perft", 4, "perft depth to run from the starting position before self-play")
		tag       = flag.String("tag", "", "run identifier for log correlation; a UUID is generated if omitted")
	)
	flag.Parse()

	if *doProfile {
		defer profile.Start().Stop()
	}

	runID := *tag
	if runID == "" {
		runID = uuid.New().String()
	}
	fmt.Printf("run %s: perft(%d) from the starting position\n", runID, *perftN)

	b := engine.NewBoard()
	start := time.Now()
	nodes := perft(b, *perftN)
	fmt.Printf("perft(%d) = %d nodes in %s\n\n", *perftN, nodes, time.Since(start))

	fmt.Printf("run %s: self-play for up to %d plies (depth %d, %dms/move)\n", runID, *plies, *depth, *timeMs)
	e := orryx.New(engine.DefaultConfig())
	for i := 0; i < *plies; i++ {
		ts := e.TerminalState()
		if ts.Kind != engine.Ongoing {
			fmt.Printf("game over: %v\n", ts.Kind)
			break
		}

		move, stats, err := e.Search(*depth, *timeMs)
		if err != nil {
			fmt.Printf("search error: %v\n", err)
			break
		}

		if _, err := e.MakeMove(move); err != nil {
			fmt.Printf("unexpected illegal move from search: %v\n", err)
			break
		}

		fmt.Printf("%3d. %-6s depth=%-2d nodes=%-8d qnodes=%-8d score=%-5d time=%dms\n",
			i+1, move, stats.DepthReached, stats.Nodes, stats.QNodes, stats.BestScore, stats.TimeMs)
	}
}

func perft(b *engine.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range b.GenLegalMoves() {
		var u engine.Undo
		if !b.MakeMove(m, &u) {
			continue
		}
		nodes += perft(b, depth-1)
		b.UndoMove(&u)
	}
	return nodes
}
