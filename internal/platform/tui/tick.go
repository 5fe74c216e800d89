// Package tui provides the Bubble Tea surface for ball maze. It renders
// engine snapshots, turns arrow keys into accelerometer samples and a lamp
// toggle into light levels. The simulation itself runs in the engine.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is sent to trigger a redraw from the latest snapshot.
type FrameMsg time.Time

// SensorMsg is sent on the sensor cadence to deliver a tilt sample.
type SensorMsg time.Time

// frameCmd returns a command that sends a frame message after one period.
func frameCmd(period time.Duration) tea.Cmd {
	return tea.Tick(period, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// sensorCmd returns a command that sends a sensor message after one period.
func sensorCmd(period time.Duration) tea.Cmd {
	return tea.Tick(period, func(t time.Time) tea.Msg {
		return SensorMsg(t)
	})
}
