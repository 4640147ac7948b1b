package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/status-calendar/internal/calendar"
	"github.com/username/status-calendar/internal/config"
	"github.com/username/status-calendar/internal/daemon"
	"github.com/username/status-calendar/internal/statusbar"
	"github.com/username/status-calendar/pkg/dateutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	dateFlag   string
	logger     *zap.Logger
	cfg        *config.Config
	out        io.Writer = os.Stdout
)

func main() {
	err := newRootCmd().Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "status-calendar",
		Short: "Status bar calendar",
		Long:  "Print the current date and a month calendar tooltip as status bar JSON",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				initLogger(zapcore.InfoLevel)
				return err
			}

			if cfg.Log.File != "" {
				logger = initFileLogger(cfg.Log.File, cfg.Log.GetLevel())
			} else {
				initLogger(cfg.Log.GetLevel())
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := resolveNow()
			if err != nil {
				return err
			}

			renderer := calendar.NewRenderer(cfg.Calendar.WeekNumbers, logger)
			payload := statusbar.Build(now, cfg.Calendar.Class, renderer)
			return statusbar.Write(out, payload)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: config.yaml in the user config dir's status-calendar, $HOME/.status-calendar or /etc/status-calendar)")
	rootCmd.PersistentFlags().StringVar(&dateFlag, "date", "", "Render for this date (YYYY-MM-DD) instead of today")

	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(trayCmd())

	return rootCmd
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print a JSON line now and again every time the date changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDaemon(false)
			if err != nil {
				return err
			}
			return d.Start()
		},
	}
}

func trayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tray",
		Short: "Show the calendar as a system tray icon (Windows)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDaemon(true)
			if err != nil {
				return err
			}
			return d.Start()
		},
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print this month's calendar to the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := resolveNow()
			if err != nil {
				return err
			}

			renderer := calendar.NewTerminalRenderer(calendar.NewRenderer(cfg.Calendar.WeekNumbers, logger))
			_, err = fmt.Fprintln(out, renderer.Render(dateutil.FromTime(now)))
			return err
		},
	}
}

// newDaemon builds the watch/tray daemon; with --date it stays on that date
func newDaemon(systemTray bool) (*daemon.Daemon, error) {
	renderer := calendar.NewRenderer(cfg.Calendar.WeekNumbers, logger)
	sink := func(p statusbar.Payload) error {
		return statusbar.Write(out, p)
	}

	d := daemon.NewDaemon(
		renderer,
		cfg.Calendar.Class,
		cfg.Watch.GetInterval(),
		systemTray || cfg.Tray.Enabled,
		sink,
		logger,
	)

	if dateFlag != "" {
		fixed, err := resolveNow()
		if err != nil {
			return nil, err
		}
		d.SetClock(func() time.Time { return fixed })
	}
	return d, nil
}

// resolveNow reads the clock exactly once, or parses --date
func resolveNow() (time.Time, error) {
	if dateFlag == "" {
		return time.Now(), nil
	}

	now, err := dateutil.ParseDate(dateFlag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date: %w", err)
	}
	logger.Debug("Using fixed date", zap.Time("date", now))
	return now, nil
}

// initLogger logs to stderr so stdout carries only the payload
func initLogger(level zapcore.Level) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level zapcore.Level) *zap.Logger {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10,   // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	// Setup encoder
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Create core with lumberjack writer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		level,
	)

	return zap.New(core)
}
