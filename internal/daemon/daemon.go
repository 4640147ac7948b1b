package daemon

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/username/status-calendar/internal/calendar"
	"github.com/username/status-calendar/internal/statusbar"
	"github.com/username/status-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

// Sink receives every payload the daemon emits
type Sink func(statusbar.Payload) error

// trayUI is the part of TrayApp the daemon drives
type trayUI interface {
	Run()
	Update(statusbar.Payload) error
	Stop()
}

// Daemon keeps a status bar payload current: it emits once at start and
// again whenever the local date changes
type Daemon struct {
	renderer   *calendar.Renderer
	class      string
	interval   time.Duration // How often the clock is checked
	systemTray bool          // Show system tray icon instead of writing to sink
	sink       Sink
	clock      func() time.Time
	logger     *zap.Logger
	ctx        context.Context
	cancel     context.CancelFunc
	tray       trayUI
	mu         sync.Mutex // Protects clock, tray, lastEmit and current
	lastEmit   time.Time
	current    statusbar.Payload
}

// NewDaemon creates a new daemon instance
func NewDaemon(renderer *calendar.Renderer, class string, interval time.Duration, systemTray bool, sink Sink, logger *zap.Logger) *Daemon {
	ctx, cancel := context.WithCancel(context.Background())

	if interval <= 0 {
		interval = time.Minute
	}

	return &Daemon{
		renderer:   renderer,
		class:      class,
		interval:   interval,
		systemTray: systemTray,
		sink:       sink,
		clock:      time.Now,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// SetClock replaces the time source, e.g. to pin the daemon to a fixed date
func (d *Daemon) SetClock(clock func() time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clock = clock
}

// now reads the configured clock
func (d *Daemon) now() time.Time {
	d.mu.Lock()
	clock := d.clock
	d.mu.Unlock()
	return clock()
}

// Start starts the daemon and blocks until it is stopped
func (d *Daemon) Start() error {
	// Initialize system tray if enabled (Windows only)
	if d.systemTray {
		d.logger.Info("Initializing system tray")
		trayApp, err := NewTrayApp(d, d.logger)
		if err != nil {
			d.logger.Warn("Failed to initialize system tray", zap.Error(err))
			// Fall back to non-tray mode
			return d.startConsole()
		}
		return d.startTray(trayApp)
	}

	return d.startConsole()
}

// startTray hands the sink to the tray and blocks until Quit or a signal
func (d *Daemon) startTray(tray trayUI) error {
	d.mu.Lock()
	d.tray = tray
	d.sink = tray.Update
	d.mu.Unlock()

	stopSignals := d.watchSignals()
	defer stopSignals()

	tray.Run()
	return nil
}

// startConsole runs the watch loop writing to the sink until a signal arrives
func (d *Daemon) startConsole() error {
	d.logger.Info("Watch started", zap.Duration("interval", d.interval))

	stopSignals := d.watchSignals()
	defer stopSignals()

	return d.Run(d.ctx)
}

// watchSignals stops the daemon on SIGINT or SIGTERM until the returned
// function is called
func (d *Daemon) watchSignals() func() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			d.logger.Info("Received signal, shutting down",
				zap.String("signal", sig.String()))
			d.Stop()
		case <-d.ctx.Done():
		}
	}()

	return func() { signal.Stop(sigChan) }
}

// Run emits the current payload, then checks the clock every interval and
// at each local midnight, emitting again when the date has changed.
// Returns nil when ctx is done, or the sink's error.
func (d *Daemon) Run(ctx context.Context) error {
	if _, err := d.Refresh(true); err != nil {
		return err
	}

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	midnight := time.NewTimer(d.untilMidnight())
	defer midnight.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Watch stopped")
			return nil

		case <-ticker.C:

		case <-midnight.C:
			midnight.Reset(d.untilMidnight())
		}

		if _, err := d.Refresh(false); err != nil {
			return err
		}
	}
}

// Refresh reads the clock once and emits a payload when the date differs
// from the last emitted one, or unconditionally when force is set.
// Reports whether a payload was emitted.
func (d *Daemon) Refresh(force bool) (bool, error) {
	now := d.now()

	d.mu.Lock()
	if !force && !d.lastEmit.IsZero() && dateutil.IsSameDay(now, d.lastEmit) {
		d.mu.Unlock()
		return false, nil
	}
	payload := statusbar.Build(now, d.class, d.renderer)
	d.lastEmit = now
	d.current = payload
	sink := d.sink
	d.mu.Unlock()

	d.logger.Debug("Emitting payload", zap.Stringer("date", dateutil.FromTime(now)), zap.Bool("forced", force))

	if sink == nil {
		return true, nil
	}
	if err := sink(payload); err != nil {
		return true, fmt.Errorf("failed to emit payload: %w", err)
	}
	return true, nil
}

// Current returns the last emitted payload
func (d *Daemon) Current() statusbar.Payload {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// Stop stops the watch loop and closes the tray icon if one is shown
func (d *Daemon) Stop() {
	d.cancel()

	d.mu.Lock()
	tray := d.tray
	d.mu.Unlock()
	if tray != nil {
		tray.Stop()
	}
}

// untilMidnight returns the wait until just after the next local midnight
func (d *Daemon) untilMidnight() time.Duration {
	now := d.now()
	return dateutil.NextMidnight(now).Sub(now) + time.Second
}
