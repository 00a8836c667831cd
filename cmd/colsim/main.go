package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	cfg "github.com/automoto/slopecollide/config"
	"github.com/automoto/slopecollide/shared/logging"
	"github.com/automoto/slopecollide/sim"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "YAML file overriding the built-in configuration")
	levelPath := flag.String("level", "", "TMX level, or a directory of levels to run in parallel")
	frames := flag.Int("frames", -1, "Frames to simulate (0 = until interrupted, -1 = from config)")
	realtime := flag.Bool("realtime", false, "Pace frames at the configured tick rate")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if *configPath != "" {
		if err := cfg.LoadFile(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if *levelPath != "" {
		cfg.Sim.Level = *levelPath
	}
	if *frames >= 0 {
		cfg.Sim.Frames = *frames
	}
	level := cfg.Sim.LogLevel
	if *debug {
		level = "debug"
		cfg.Sim.Development = true
	}

	logger, err := logging.New(level, cfg.Sim.Development)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger = logger.With(zap.String("run", uuid.NewString()))

	if info, err := os.Stat(cfg.Sim.Level); err == nil && info.IsDir() {
		runBatch(logger, cfg.Sim.Level)
		return
	}

	data, err := sim.LoadLevel(cfg.Sim.Level)
	if err != nil {
		logger.Fatal("failed to load level", zap.String("path", cfg.Sim.Level), zap.Error(err))
	}
	world, err := sim.NewWorld(data, logger)
	if err != nil {
		logger.Fatal("failed to build world", zap.Error(err))
	}

	tickRate := 0
	if *realtime {
		tickRate = cfg.Sim.TickRate
	}
	loop := sim.NewGameLoop(world, tickRate, cfg.Sim.Frames, cfg.Sim.DigestEvery)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutting down")
		loop.Stop()
	}()

	digest := loop.Run()
	fmt.Printf("%016x\n", digest)
}

// runBatch simulates every level of dir in parallel and prints one digest
// per level.
func runBatch(logger *zap.Logger, dir string) {
	levels, names, err := sim.LoadLevels(dir)
	if err != nil {
		logger.Fatal("failed to load levels", zap.String("dir", dir), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	digests, err := sim.RunAll(ctx, levels, cfg.Sim.Frames, logger)
	if err != nil {
		logger.Fatal("batch run failed", zap.Error(err))
	}
	for _, name := range names {
		fmt.Printf("%016x %s\n", digests[name], name)
	}
}
