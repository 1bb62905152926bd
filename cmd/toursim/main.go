package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/coreman2200/funtimes-santatrack/internal/app"
	"github.com/coreman2200/funtimes-santatrack/internal/config"
	"github.com/coreman2200/funtimes-santatrack/internal/driver/fake"
	"github.com/coreman2200/funtimes-santatrack/internal/sequence"
)

func main() {
	var (
		programPath = flag.String("program", "", "tour program (yaml or json); empty visits every entry")
		configPath  = flag.String("config", "", "path to config.yaml")
		fps         = flag.Int("fps", 10, "simulation steps per second of tour time")
		realtime    = flag.Bool("realtime", false, "pace steps with a wall-clock ticker")
		maxS        = flag.Float64("max-s", 120, "stop after this much tour time (looping tours)")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg := config.Defaults()
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("config")
		}
		cfg = c.Merge(config.Defaults())
	}

	if err := simulate(os.Stdout, cfg, *programPath, *fps, *realtime, *maxS); err != nil {
		log.Fatal().Err(err).Msg("toursim")
	}
}

func loadProgram(path string) (sequence.Program, error) {
	var prog sequence.Program
	data, err := os.ReadFile(path)
	if err != nil {
		return prog, fmt.Errorf("read program: %w", err)
	}
	if err := yaml.Unmarshal(data, &prog); err != nil {
		return prog, fmt.Errorf("parse program: %w", err)
	}
	return prog, nil
}

// simulate plays one tour headless and prints a line per frame to out.
func simulate(out io.Writer, cfg *config.Config, programPath string, fps int, realtime bool, maxS float64) error {
	drv := &fake.Driver{Out: out}
	core, err := app.InitCore(app.Deps{Config: cfg, Driver: drv})
	if err != nil {
		return err
	}
	core.View.SetLoaded(true)

	if programPath != "" {
		prog, err := loadProgram(programPath)
		if err != nil {
			return err
		}
		if err := core.PlayTour(prog); err != nil {
			return fmt.Errorf("load: %w", err)
		}
	} else if err := core.StartTour(false); err != nil {
		return err
	}

	fps = max(fps, 1)
	dt := time.Second / time.Duration(fps)
	var tick <-chan time.Time
	if realtime {
		t := time.NewTicker(dt)
		defer t.Stop()
		tick = t.C
	}

	elapsed := 0.0
	for core.TourRunning() && elapsed < maxS {
		if tick != nil {
			<-tick
		}
		if _, err := core.Tick(dt.Seconds()); err != nil {
			return err
		}
		elapsed += dt.Seconds()
	}
	fmt.Fprintf(out, "Done at t=%.2fs after %d frames\n", elapsed, drv.Count)
	return nil
}
