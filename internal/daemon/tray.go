// +build windows

package daemon

import (
	"sync"
	"syscall"
	"unsafe"

	"fyne.io/systray"
	"github.com/username/status-calendar/internal/statusbar"
	"go.uber.org/zap"
)

var (
	user32      = syscall.NewLazyDLL("user32.dll")
	messageBoxW = user32.NewProc("MessageBoxW")
)

const (
	MB_OK              = 0x00000000
	MB_ICONINFORMATION = 0x00000040
)

// TrayApp shows the payload as a system tray icon: the date as title and the
// month grid as tooltip
type TrayApp struct {
	daemon *Daemon
	logger *zap.Logger
	quit   chan struct{}
	once   sync.Once
}

// NewTrayApp creates a new system tray application
func NewTrayApp(daemon *Daemon, logger *zap.Logger) (*TrayApp, error) {
	return &TrayApp{
		daemon: daemon,
		logger: logger,
		quit:   make(chan struct{}),
	}, nil
}

// Run starts the system tray application (blocks until Quit)
func (t *TrayApp) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Update shows p in the tray
func (t *TrayApp) Update(p statusbar.Payload) error {
	systray.SetTitle(p.Text)
	systray.SetTooltip(p.Tooltip)
	return nil
}

func (t *TrayApp) onReady() {
	systray.SetIcon(trayIcon)
	systray.SetTitle("Calendar")

	mShow := systray.AddMenuItem("Show Calendar", "Show this month")
	mRefresh := systray.AddMenuItem("Refresh", "Re-read the clock")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Exit the application")

	// Start watch loop in background
	go func() {
		if err := t.daemon.Run(t.daemon.ctx); err != nil {
			t.logger.Error("Tray watch loop failed", zap.Error(err))
		}
	}()

	// Handle menu item clicks
	go func() {
		for {
			select {
			case <-mShow.ClickedCh:
				p := t.daemon.Current()
				showMessageBox(p.Text, p.Tooltip)
			case <-mRefresh.ClickedCh:
				t.logger.Info("Refresh clicked from tray")
				if _, err := t.daemon.Refresh(true); err != nil {
					t.logger.Error("Refresh failed", zap.Error(err))
				}
			case <-mQuit.ClickedCh:
				t.logger.Info("Quit clicked from tray")
				t.daemon.Stop()
			case <-t.quit:
				systray.Quit()
				return
			}
		}
	}()
}

func (t *TrayApp) onExit() {
	t.logger.Info("System tray exited")
}

// Stop removes the tray icon; safe to call more than once
func (t *TrayApp) Stop() {
	t.once.Do(func() { close(t.quit) })
}

func showMessageBox(title, message string) {
	titlePtr, _ := syscall.UTF16PtrFromString(title)
	messagePtr, _ := syscall.UTF16PtrFromString(message)
	messageBoxW.Call(
		0,
		uintptr(unsafe.Pointer(messagePtr)),
		uintptr(unsafe.Pointer(titlePtr)),
		uintptr(MB_OK|MB_ICONINFORMATION),
	)
}
