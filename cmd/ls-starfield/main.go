// Command ls-starfield renders a parallax starfield in the terminal or a window.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/litescript/ls-starfield/internal/config"
	"github.com/litescript/ls-starfield/internal/engine"
	"github.com/litescript/ls-starfield/internal/logging"
	"github.com/litescript/ls-starfield/internal/starfield"
	"github.com/litescript/ls-starfield/internal/version"
)

//nolint:gochecknoglobals // Cobra flag bindings.
var (
	configPath string
	logLevel   string
	seed       uint64

	rootCmd = &cobra.Command{
		Use:           "ls-starfield",
		Short:         "A twinkling parallax starfield for your terminal",
		Long:          "ls-starfield paints a field of depth-parallaxed stars that follow the pointer. It runs in the terminal (Bubble Tea or tcell), in a desktop window, or headless to a PNG.",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTerm,
	}
)

//nolint:gochecknoinits // Cobra command wiring.
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides config")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Random seed for the star field (0 = time-seeded); overrides config")

	rootCmd.AddCommand(termCmd)
	rootCmd.AddCommand(tcellCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.SetOutput(os.Stderr)
		logrus.Fatal(err)
	}
}

// session is what every subcommand needs: settings and a logger.
type session struct {
	cfg    config.Config
	log    *logging.Logger
	closer io.Closer
}

// loadSession reads config and flags. Interactive frontends own the terminal,
// so without a log file their logs are discarded.
func loadSession(cmd *cobra.Command, interactive bool) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	s := &session{cfg: cfg, log: logging.New(logging.ParseLevel(cfg.LogLevel))}
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		s.log.SetOutput(f)
		s.closer = f
	case interactive:
		s.log.SetOutput(io.Discard)
	}
	return s, nil
}

func (s *session) Close() {
	if s.closer != nil {
		_ = s.closer.Close()
	}
}

// engineOptions builds engine options from config.
func (s *session) engineOptions() (engine.Options, error) {
	color, err := s.cfg.StarColor()
	if err != nil {
		return engine.Options{}, err
	}
	opts := engine.Options{Color: color, Logger: s.log}
	if s.cfg.Seed != 0 {
		opts.Rand = starfield.NewSource(s.cfg.Seed)
	}
	return opts, nil
}
