// Command sim runs a level headless, driving the player from a scenario
// script, and prints the level stats when it ends.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/milk9111/angeldust/game"
	"github.com/milk9111/angeldust/levels"
	"github.com/milk9111/angeldust/prefabs"
	"github.com/milk9111/angeldust/scenario"
	"golang.org/x/sync/errgroup"
)

type options struct {
	level    string
	script   string
	ticks    int
	tps      int
	realtime bool
	watch    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.level, "level", "arena", "level name in levels/ (basename, .json optional)")
	flag.StringVar(&opts.script, "script", "patrol", "scenario script in prefabs/scripts/, empty for an idle player")
	flag.IntVar(&opts.ticks, "ticks", 60*120, "maximum number of ticks to simulate")
	flag.IntVar(&opts.tps, "tps", 60, "simulation ticks per second")
	flag.BoolVar(&opts.realtime, "realtime", false, "pace ticks in wall-clock time")
	flag.BoolVar(&opts.watch, "watch", false, "reload tuning and scripts when prefabs/ changes on disk")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, opts)
	stop()
	if err != nil {
		slog.Error("sim failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	if opts.tps <= 0 {
		return fmt.Errorf("tps must be positive, got %d", opts.tps)
	}

	lvl, err := levels.LoadLevel(opts.level)
	if err != nil {
		return err
	}
	tuning, err := prefabs.LoadTuning()
	if err != nil {
		return err
	}
	g, err := game.New(lvl, tuning)
	if err != nil {
		return err
	}
	defer g.Close()

	var rt *scenario.Runtime
	if opts.script != "" {
		if rt, err = scenario.Load(opts.script); err != nil {
			return err
		}
	}

	changes := make(chan string, 8)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	group, ctx := errgroup.WithContext(ctx)

	if opts.watch {
		watcher, err := prefabs.NewWatcher("prefabs", filepath.Join("prefabs", "scripts"))
		if err != nil {
			return err
		}
		group.Go(func() error {
			return watcher.Run(ctx, func(name string) {
				select {
				case changes <- name:
				default:
					slog.Warn("dropping reload, simulation busy", "file", name)
				}
			})
		})
	}

	group.Go(func() error {
		// The watcher stops with the simulation.
		defer cancel()
		s := &sim{game: g, runtime: rt, opts: opts}
		return s.loop(ctx, changes)
	})

	if err := group.Wait(); err != nil {
		return err
	}

	report(g.Snapshot())
	return nil
}
