package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-starfield/internal/ebitenhost"
	"github.com/litescript/ls-starfield/internal/host"
	"github.com/litescript/ls-starfield/internal/tcellhost"
	"github.com/litescript/ls-starfield/internal/ui"
	"github.com/litescript/ls-starfield/internal/version"
)

//nolint:gochecknoglobals // Cobra commands are defined at package scope.
var (
	termCmd = &cobra.Command{
		Use:   "term",
		Short: "Run in the terminal with Bubble Tea (default)",
		RunE:  runTerm,
	}

	tcellCmd = &cobra.Command{
		Use:   "tcell",
		Short: "Run in the terminal with tcell",
		RunE:  runTcell,
	}

	windowCmd = &cobra.Command{
		Use:   "window",
		Short: "Run in a desktop window",
		RunE:  runWindow,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ls-starfield %s\n", version.Version)
		},
	}
)

func newTerminal(s *session) (*host.Terminal, error) {
	opts, err := s.engineOptions()
	if err != nil {
		return nil, err
	}
	bg, err := s.cfg.BackgroundColor()
	if err != nil {
		return nil, err
	}
	return host.NewTerminal(host.TerminalConfig{
		CellW:      s.cfg.CellWidth,
		CellH:      s.cfg.CellHeight,
		Ratio:      s.cfg.Ratio(1),
		Background: bg,
	}, opts)
}

func runTerm(cmd *cobra.Command, _ []string) error {
	s, err := loadSession(cmd, true)
	if err != nil {
		return err
	}
	defer s.Close()

	term, err := newTerminal(s)
	if err != nil {
		return err
	}
	s.log.Info("starting bubbletea frontend")
	return ui.Run(cmd.Context(), term, s.cfg.FrameInterval, s.log)
}

func runTcell(cmd *cobra.Command, _ []string) error {
	s, err := loadSession(cmd, true)
	if err != nil {
		return err
	}
	defer s.Close()

	term, err := newTerminal(s)
	if err != nil {
		return err
	}
	s.log.Info("starting tcell frontend")
	return tcellhost.New(nil, term, s.cfg.FrameInterval, s.log).Run(cmd.Context())
}

func runWindow(cmd *cobra.Command, _ []string) error {
	s, err := loadSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	opts, err := s.engineOptions()
	if err != nil {
		return err
	}
	bg, err := s.cfg.BackgroundColor()
	if err != nil {
		return err
	}

	g, err := ebitenhost.New(ebitenhost.Config{
		Width:      s.cfg.Window.Width,
		Height:     s.cfg.Window.Height,
		Title:      s.cfg.Window.Title,
		Ratio:      s.cfg.PixelRatio,
		Background: bg,
	}, opts)
	if err != nil {
		return err
	}
	s.log.Info("starting window %dx%d", s.cfg.Window.Width, s.cfg.Window.Height)
	return ebitenhost.Run(cmd.Context(), g)
}
