package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ouroboros/internal/carousel"
	"ouroboros/internal/config"
	"ouroboros/internal/eventbus"
	"ouroboros/internal/logic"
	"ouroboros/internal/ui"
)

// options holds the command line flags
type options struct {
	ConfigPath   string
	ItemsPerPage int
	AutoPlay     bool
	Interval     time.Duration
	Align        string
	LogFile      string
	LogLevel     string
	WriteConfig  bool
}

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "ouroboros [flags]",
		Short: "Infinite paging carousel for the terminal",
		Long: `Ouroboros shows a list of items as a horizontally paging strip that wraps
around seamlessly: scrolling past the last item continues with the first.`,
		Example: `  # Show the sample deck
  ouroboros

  # Two items per page, advancing every five seconds
  ouroboros --items-per-page 2 --autoplay --interval 5s

  # Write the effective configuration and exit
  ouroboros --config ./carousel.toml --write-config`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	rootCmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to the config file (default "+config.DefaultPath()+")")
	rootCmd.Flags().IntVarP(&opts.ItemsPerPage, "items-per-page", "n", 1, "Number of items on one page")
	rootCmd.Flags().BoolVar(&opts.AutoPlay, "autoplay", false, "Advance one page at a fixed interval")
	rootCmd.Flags().DurationVar(&opts.Interval, "interval", 9*time.Second, "Auto-play interval")
	rootCmd.Flags().StringVar(&opts.Align, "align", "centered", "Page alignment: centered or leading")
	rootCmd.Flags().StringVar(&opts.LogFile, "log-file", "ouroboros.log", "Path to the log file")
	rootCmd.Flags().StringVar(&opts.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.Flags().BoolVar(&opts.WriteConfig, "write-config", false, "Write the effective configuration to the config file and exit")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, opts options) error {
	logCloser, err := setupLogging(opts.LogFile, opts.LogLevel)
	if err != nil {
		return err
	}
	if logCloser != nil {
		defer logCloser.Close()
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	bus := eventbus.New()
	defer bus.(eventbus.Closer).Close()
	unsubscribe := subscribeLogging(bus)

	configSvc := config.NewConfigServiceWithBus(opts.ConfigPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		return startupError("error loading config", err)
	}
	if err := applyFlags(cmd, opts, cfg); err != nil {
		return err
	}

	if opts.WriteConfig {
		if err := configSvc.Save(cfg); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configSvc.Path())
		return nil
	}

	store := logic.NewMemoryItemStore(cfg.Items)
	model, err := ui.NewModel(cfg, store, bus)
	if err != nil {
		return startupError("error creating UI", err)
	}

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	model.SetProgram(p)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	done := make(chan struct{})
	forwardEvent := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		case <-done:
		default:
			logrus.WithField("event", e.Type()).Warn("Event channel full, dropping event")
		}
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventJumpApplied,
		eventbus.EventFocusRejected,
		eventbus.EventConfigSaved,
		eventbus.EventError,
	} {
		unsubscribe = append(unsubscribe, bus.Subscribe(t, forwardEvent))
	}

	// Start forwarding events to UI in background
	go func() {
		for {
			select {
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			case <-done:
				return
			}
		}
	}()

	// Hot-reload the item list when the config file changes
	if err := configSvc.Watch(func(changed *config.Config) {
		if err := applyFlags(cmd, opts, changed); err != nil {
			logrus.WithError(err).Warn("Ignoring reloaded config")
			return
		}
		p.Send(ui.ConfigReloadedMsg{Config: changed})
	}); err != nil {
		logrus.WithError(err).Debug("Config file is not watched")
	}

	logrus.WithField("items", len(cfg.Items)).Info("Starting UI")
	_, err = p.Run()

	// Cleanup
	for _, u := range unsubscribe {
		u()
	}
	bus.(eventbus.Closer).Close()
	close(done)

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logrus.WithError(err).Error("Error running program")
		return fmt.Errorf("error running program: %w", err)
	}
	logrus.Info("UI exited normally")
	return nil
}

// applyFlags overrides file settings with flags given on the command line
func applyFlags(cmd *cobra.Command, opts options, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("items-per-page") {
		cfg.Carousel.ItemsPerPage = opts.ItemsPerPage
	}
	if flags.Changed("autoplay") {
		cfg.Carousel.AutoPlay = opts.AutoPlay
	}
	if flags.Changed("interval") {
		cfg.Carousel.AutoPlayInterval = opts.Interval.String()
	}
	if flags.Changed("align") {
		cfg.Carousel.Alignment = opts.Align
	}
	if err := cfg.Validate(); err != nil {
		return startupError("invalid flags", err)
	}
	return nil
}

// startupError wraps err, calling out carousel misconfiguration separately in the log
func startupError(stage string, err error) error {
	if carousel.IsConfigurationError(err) {
		logrus.WithError(err).WithField("stage", stage).Error("Carousel misconfigured")
		return fmt.Errorf("%s: carousel misconfigured: %w", stage, err)
	}
	return fmt.Errorf("%s: %w", stage, err)
}

// setupLogging sends logrus output to a file; the terminal belongs to the UI
func setupLogging(path, level string) (io.Closer, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		DisableColors: true,
	})

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
		logrus.SetOutput(io.Discard)
		return nil, nil
	}
	logrus.SetOutput(logFile)
	return logFile, nil
}

// subscribeLogging records carousel lifecycle events in the log
func subscribeLogging(bus eventbus.EventBus) []func() {
	return []func(){
		bus.Subscribe(eventbus.EventCarouselReloaded, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.CarouselReloadedEvent); ok {
				logrus.WithFields(logrus.Fields{
					"items":  ev.ItemCount,
					"buffer": ev.Buffer,
					"padded": ev.PaddedCount,
					"wraps":  ev.Wraps,
				}).Info("Carousel reloaded")
			}
		}),
		bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.ConfigLoadedEvent); ok {
				logrus.WithFields(logrus.Fields{
					"path":  ev.Path,
					"items": ev.ItemCount,
				}).Info("Config loaded")
			}
		}),
		bus.Subscribe(eventbus.EventJumpApplied, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.JumpAppliedEvent); ok {
				logrus.WithFields(logrus.Fields{
					"heading": ev.Direction,
					"target":  ev.Target,
					"delta":   ev.Delta,
				}).Debug("Seam crossed")
			}
		}),
		bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.ErrorEvent); ok {
				logrus.WithError(ev.Err).Error(ev.Message)
			}
		}),
	}
}
