package daemon

import _ "embed"

// trayIcon is a 16x16 32-bit ICO shown in the notification area
//
//go:embed calendar.ico
var trayIcon []byte
