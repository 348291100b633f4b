package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"mapty/workout-tracker/internal/config"
	"mapty/workout-tracker/internal/domain"
	"mapty/workout-tracker/internal/logging"
	"mapty/workout-tracker/internal/service"
	"mapty/workout-tracker/internal/storage"
	"mapty/workout-tracker/internal/view"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

type session struct {
	app   *service.App
	close storage.CloseFunc
}

func open(c *cli.Context) (*session, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("backend") {
		cfg.Persistence.Backend = c.String("backend")
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	level := cfg.Log.Level
	if c.Bool("verbose") {
		level = "debug"
	}
	logging.Setup(config.LogConfig{Level: level, Pretty: true}, c.App.ErrWriter)

	slot, closeSlot, err := storage.OpenSlot(c.Context, cfg)
	if err != nil {
		return nil, err
	}
	store := service.NewStore(slot, cfg.Persistence.Key, cfg.Persistence.Timeout)
	app := service.NewApp(store, service.NewFactory(), service.NewViews(), cfg.Map.Zoom)
	app.Start(c.Context)
	return &session{app: app, close: closeSlot}, nil
}

func encode(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func list(c *cli.Context) error {
	s, err := open(c)
	if err != nil {
		return err
	}
	defer s.close()
	return encode(c.App.Writer, s.app.ListItems())
}

func show(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected one workout id, got %d", c.NArg())
	}
	s, err := open(c)
	if err != nil {
		return err
	}
	defer s.close()
	w, err := s.app.Workout(c.Args().First())
	if err != nil {
		return err
	}
	return encode(c.App.Writer, w)
}

func logWorkout(c *cli.Context) error {
	s, err := open(c)
	if err != nil {
		return err
	}
	defer s.close()

	at := domain.Coordinates{Lat: c.Float64("lat"), Lng: c.Float64("lng")}
	if _, err := s.app.LoadMap(c.Context, view.FixedLocator{Coords: at}); err != nil {
		return err
	}
	if err := s.app.MapClick(at); err != nil {
		return err
	}
	w, err := s.app.Submit(c.Context, service.FormInput{
		Type:      c.String("type"),
		Distance:  c.String("distance"),
		Duration:  c.String("duration"),
		Cadence:   c.String("cadence"),
		Elevation: c.String("elevation"),
	})
	if err != nil {
		return err
	}
	log.Info().Str("id", w.ID).Str("description", w.Description).Msg("logged")
	return encode(c.App.Writer, view.SummaryFor(w))
}

func reset(c *cli.Context) error {
	if !c.Bool("yes") {
		return errors.New("reset erases every stored workout; pass --yes to confirm")
	}
	s, err := open(c)
	if err != nil {
		return err
	}
	defer s.close()
	if err := s.app.Reset(c.Context); err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, "all workouts erased")
	return err
}

func main() {
	app := &cli.App{
		Name:     "workoutctl",
		HelpName: "workoutctl",
		Usage:    "Inspect and edit the stored workout list",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   ".",
				Usage:   "directory containing config.yaml",
				EnvVars: []string{"WORKOUT_CONFIG_DIR"},
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "override persistence.backend (file, sqlite, mongo, postgres, s3)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "debug logging",
			},
		},
		ExitErrHandler: func(c *cli.Context, err error) {
			if err == nil {
				return
			}
			log.Error().Err(err).Msg(c.App.Name)
		},
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "list workouts, oldest first",
				Action: list,
			},
			{
				Name:      "show",
				Usage:     "show one workout",
				ArgsUsage: "ID",
				Action:    show,
			},
			{
				Name:  "log",
				Usage: "log a workout",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "type", Value: string(domain.KindRunning), Usage: "running or cycling"},
					&cli.Float64Flag{Name: "lat", Required: true, Usage: "latitude"},
					&cli.Float64Flag{Name: "lng", Required: true, Usage: "longitude"},
					&cli.StringFlag{Name: "distance", Required: true, Usage: "distance in km"},
					&cli.StringFlag{Name: "duration", Required: true, Usage: "duration in min"},
					&cli.StringFlag{Name: "cadence", Usage: "cadence in steps/min (running)"},
					&cli.StringFlag{Name: "elevation", Usage: "elevation gain in m (cycling)"},
				},
				Action: logWorkout,
			},
			{
				Name:  "reset",
				Usage: "delete every workout",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Usage: "confirm"},
				},
				Action: reset,
			},
		},
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := app.RunContext(ctx, os.Args); err != nil {
		cancel()
		os.Exit(1)
	}
}
