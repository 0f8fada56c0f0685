package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/atotto/clipboard"

	"github.com/nstehr/vimy/vimy-combat/battle"
	"github.com/nstehr/vimy/vimy-combat/config"
)

func main() {
	var runs int
	var seedBase uint64
	var seedStep uint64
	var scenario string
	var parallel int
	var auto bool
	var verbose bool
	var copyOut bool

	flag.IntVar(&runs, "runs", 20, "number of battles to fight")
	flag.Uint64Var(&seedBase, "seed-base", 42, "seed for run 1")
	flag.Uint64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenario, "scenario", "scenarios/skirmish.yaml", "scenario file (yaml or json)")
	flag.IntVar(&parallel, "parallel", runtime.NumCPU(), "battles fought at once")
	flag.BoolVar(&auto, "auto", false, "force auto-resolve")
	flag.BoolVar(&verbose, "v", false, "print every run, not just the aggregate")
	flag.BoolVar(&copyOut, "clipboard", false, "copy the report to the clipboard")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		os.Exit(2)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	sc, err := config.Load(scenario)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	if auto {
		sc.AutoResolve = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	seeds := battle.Seeds(seedBase, seedStep, runs)
	results, err := battle.RunSeeds(ctx, seeds, parallel, func(uint64) (battle.Options, error) {
		return sc.Options()
	})
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}

	out := formatReport(sc, seedBase, seedStep, results, verbose)
	fmt.Print(out)

	if copyOut {
		if err := clipboard.WriteAll(out); err != nil {
			fmt.Printf("error: copy to clipboard: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("(report copied to clipboard)")
	}
}
