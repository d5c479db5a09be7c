package main

import (
	"alcyxob/workout-tracker/internal/config"
	"alcyxob/workout-tracker/internal/console"
	"alcyxob/workout-tracker/internal/logging"
	"alcyxob/workout-tracker/internal/repository/memory"
	"alcyxob/workout-tracker/internal/service"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", ".", "directory containing config.yaml")
	scriptPath := flag.String("script", "", "read commands from this file instead of stdin")
	flag.Parse()

	if err := run(*configPath, *scriptPath); err != nil {
		fmt.Fprintf(os.Stderr, "workouts: %v\n", err)
		os.Exit(1)
	}
}

// run wires the application and blocks until the console stops. Deferred
// cleanup (log file, subscriptions) always runs before it returns.
func run(configPath, scriptPath string) error {
	// --- Configuration ---
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}

	// --- Logging ---
	log := logrus.StandardLogger()
	logCloser := logging.Setup(log, logging.SetupParams{
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
		LogFileName:   cfg.Log.File,
		LogToStderr:   cfg.Log.Stderr,
	})
	defer func() {
		if err := logCloser.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "closing log output: %v\n", err)
		}
	}()
	log.Info("configuration loaded")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Repositories & catalog ---
	exerciseService := service.NewExerciseService(memory.NewExerciseRepository())
	seeded, err := exerciseService.Seed(ctx, catalogSeeds(cfg.Catalog))
	if err != nil {
		log.WithError(err).Error("seeding exercise catalog")
		return fmt.Errorf("seeding exercise catalog: %w", err)
	}
	log.WithField("exercises", seeded).Info("exercise catalog seeded")

	// --- Store ---
	store, err := service.NewWorkoutStore(
		exerciseService,
		memory.NewTemplateRepository(),
		memory.NewSessionRepository(),
		service.WithLogger(log),
		service.WithFinishedSessionLock(cfg.Sessions.LockFinished),
	)
	if err != nil {
		log.WithError(err).Error("creating workout store")
		return fmt.Errorf("creating workout store: %w", err)
	}
	defer store.Close()

	var in io.Reader = os.Stdin
	if scriptPath != "" {
		f, err := os.Open(scriptPath)
		if err != nil {
			log.WithError(err).Error("opening script")
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		in = f
	}

	// --- Console ---
	done := make(chan error, 1)
	go func() {
		done <- console.New(store, os.Stdout, log).Run(ctx, in)
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Errorf("console stopped: %v", err)
			return err
		}
	case <-ctx.Done():
		log.Info("interrupted, shutting down")
	}
	log.Info("bye")
	return nil
}

func catalogSeeds(cfg config.CatalogConfig) []service.ExerciseSeed {
	if len(cfg.Exercises) == 0 {
		return service.DefaultExerciseSeeds
	}
	seeds := make([]service.ExerciseSeed, 0, len(cfg.Exercises))
	for _, ex := range cfg.Exercises {
		seeds = append(seeds, service.ExerciseSeed{Name: ex.Name, MuscleGroup: ex.MuscleGroup})
	}
	return seeds
}
