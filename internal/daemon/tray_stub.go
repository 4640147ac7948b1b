// +build !windows

package daemon

import (
	"errors"

	"github.com/username/status-calendar/internal/statusbar"
	"go.uber.org/zap"
)

// TrayApp represents system tray application (stub for non-Windows platforms)
type TrayApp struct {
	logger *zap.Logger
}

// NewTrayApp creates a new system tray application (not supported on this platform)
func NewTrayApp(daemon *Daemon, logger *zap.Logger) (*TrayApp, error) {
	return nil, errors.New("system tray is only supported on Windows")
}

// Run does nothing on non-Windows platforms
func (t *TrayApp) Run() {
}

// Update does nothing on non-Windows platforms
func (t *TrayApp) Update(p statusbar.Payload) error {
	return nil
}

// Stop does nothing on non-Windows platforms
func (t *TrayApp) Stop() {
}
