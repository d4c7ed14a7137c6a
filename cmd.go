package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"pulserun/internal/analysis"
	"pulserun/internal/config"
	"pulserun/internal/health"
	"pulserun/internal/tui"
)

var (
	logLevel string
	logFile  string

	// appConfig is loaded by the root PersistentPreRunE
	appConfig *config.Config
)

// logOutput is the open log file, closed after the command runs
var logOutput io.Closer

// NewCommand returns the root command
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pulserun",
		Short: "pulserun calculates heart rate training zones",
		Long: `pulserun calculates a recommended heart rate and five training zones
from your age and resting heart rate.

Run without arguments to open the interactive form.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			appConfig = cfg
			return setupLogger(cfg.Log)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			closeLogger()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(appConfig)
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&logFile, "log-file", "", "write logs to this file")

	cmd.AddCommand(
		NewZonesCommand(),
		NewConfigCommand(),
	)

	return cmd
}

// loadConfig loads and validates the config, falling back to defaults when
// no config file exists
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		defaults := config.DefaultConfig()
		cfg = &defaults
	} else if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		path, _ := config.GetConfigPath()
		return nil, fmt.Errorf("invalid config at %s: %w", path, err)
	}
	return cfg, nil
}

// setupLogger configures logrus. Flags override the config file. Without a
// log file output is discarded, since the TUI owns the terminal.
func setupLogger(cfg config.LogConfig) error {
	levelName := cfg.Level
	if logLevel != "" {
		levelName = logLevel
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	path := cfg.File
	if logFile != "" {
		path = logFile
	}
	if path == "" {
		logrus.SetOutput(io.Discard)
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	logrus.SetOutput(f)
	logOutput = f
	return nil
}

func closeLogger() {
	if logOutput != nil {
		logOutput.Close()
		logOutput = nil
	}
}

func runTUI(cfg *config.Config) error {
	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return err
	}

	provider := health.NewPlaceholderProvider(cfg.Health.Enabled, health.Reading{
		Age:       cfg.Health.PlaceholderAge,
		RestingHR: cfg.Health.PlaceholderRestingHR,
	})

	logrus.WithField("health_enabled", cfg.Health.Enabled).Info("starting pulserun")

	app := tui.NewApp(provider, timeout, cfg.Display)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// NewZonesCommand returns the non-interactive zone calculation command
func NewZonesCommand() *cobra.Command {
	var ageText, restingHRText string

	cmd := &cobra.Command{
		Use:   "zones",
		Short: "Print heart rate zones without the interactive form",
		Long: `Print the recommended heart rate and training zones.

Max HR is 220 - age. The recommended heart rate is the midpoint of resting
and max HR. Zones split max HR at 60%, 70%, 80% and 90%.`,
		Example: "  pulserun zones --age 30 --resting-hr 70",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := analysis.Calculate(ageText, restingHRText)
			if err != nil {
				logrus.WithError(err).Debug("zone calculation rejected")
				return err
			}
			printZones(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&ageText, "age", "", "age in years")
	cmd.Flags().StringVar(&restingHRText, "resting-hr", "", "resting heart rate in bpm")
	_ = cmd.MarkFlagRequired("age")
	_ = cmd.MarkFlagRequired("resting-hr")

	return cmd
}

func printZones(w io.Writer, result analysis.ZoneResult) {
	fmt.Fprintf(w, "Recommended heart rate: %s\n", bold("%d bpm", result.RecommendedHR))
	fmt.Fprintf(w, "Max heart rate: %s\n", bold("%d bpm", result.MaxHR))
	for _, z := range result.SortedZones() {
		fmt.Fprintf(w, "%s  %s\n", color.New(color.FgRed).Sprint(z.Label()), z.Range())
	}
	if warning := result.BoundaryWarning(); warning != "" {
		fmt.Fprintln(w, color.YellowString("warning: %s", warning))
	}
}

// NewConfigCommand returns the config management command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
		// Runs instead of the root hook so a broken config file can still be
		// located and replaced
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger(config.DefaultConfig().Log)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Write an example config file if none exists",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				created, err := config.CreateExample()
				if err != nil {
					return fmt.Errorf("creating example config: %w", err)
				}
				path, err := config.GetConfigPath()
				if err != nil {
					return err
				}
				if created {
					cmd.Printf("Wrote example config to %s\n", path)
				} else {
					cmd.Printf("Config already exists at %s\n", path)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				path, err := config.GetConfigPath()
				if err != nil {
					return err
				}
				cmd.Println(path)
				return nil
			},
		},
	)

	return cmd
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
