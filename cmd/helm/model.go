package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unklstewy/shipcommand/internal/sim"
	"github.com/unklstewy/shipcommand/pkg/kinematics"
)

// Control increments per key press
const (
	throttleStep = 0.1
	rudderStep   = 0.25
	planesStep   = 0.25
)

// simWorld is the part of sim.World the console drives.
type simWorld interface {
	Snapshot() *sim.Frame
	SetControls(id string, in kinematics.ControlInput) error
	Pause()
	Resume()
	Paused() bool
	StepRate() float64
}

type model struct {
	world    simWorld
	refresh  time.Duration
	frame    *sim.Frame
	selected int
	err      error
	width    int
	height   int
}

type tickMsg time.Time

func newModel(w simWorld, refresh time.Duration) model {
	if refresh < 100*time.Millisecond {
		refresh = 100 * time.Millisecond
	}
	return model{
		world:   w,
		refresh: refresh,
		frame:   w.Snapshot(),
	}
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return m.tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.selected < len(m.frame.Vehicles)-1 {
				m.selected++
			}

		case "+", "=", "w":
			m.adjust(func(v kinematics.Snapshot) kinematics.ControlInput {
				return kinematics.ControlInput{Throttle: ptr(v.Throttle + throttleStep)}
			})
		case "-", "s":
			m.adjust(func(v kinematics.Snapshot) kinematics.ControlInput {
				return kinematics.ControlInput{Throttle: ptr(v.Throttle - throttleStep)}
			})
		case "0":
			m.adjust(func(kinematics.Snapshot) kinematics.ControlInput {
				return kinematics.ControlInput{Throttle: ptr(0)}
			})

		case "left", "a":
			m.adjust(func(v kinematics.Snapshot) kinematics.ControlInput {
				return kinematics.ControlInput{Rudder: ptr(v.Rudder - rudderStep)}
			})
		case "right", "d":
			m.adjust(func(v kinematics.Snapshot) kinematics.ControlInput {
				return kinematics.ControlInput{Rudder: ptr(v.Rudder + rudderStep)}
			})
		case "c":
			m.adjust(func(kinematics.Snapshot) kinematics.ControlInput {
				return kinematics.ControlInput{Rudder: ptr(0), Planes: ptr(0)}
			})

		// Planes: bow up raises the boat
		case "pgup", "r":
			m.adjust(func(v kinematics.Snapshot) kinematics.ControlInput {
				return kinematics.ControlInput{Planes: ptr(v.Planes + planesStep)}
			})
		case "pgdown", "f":
			m.adjust(func(v kinematics.Snapshot) kinematics.ControlInput {
				return kinematics.ControlInput{Planes: ptr(v.Planes - planesStep)}
			})

		case " ", "p":
			if m.world.Paused() {
				m.world.Resume()
			} else {
				m.world.Pause()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		m.frame = m.world.Snapshot()
		if m.selected >= len(m.frame.Vehicles) {
			m.selected = max(len(m.frame.Vehicles)-1, 0)
		}
		return m, m.tick()
	}

	return m, nil
}

// adjust sends the controls built from the selected vessel's latest state.
// The newest frame is read so repeated presses between ticks accumulate
// once the previous change has been applied.
func (m *model) adjust(input func(kinematics.Snapshot) kinematics.ControlInput) {
	v, ok := m.current()
	if !ok {
		return
	}
	if latest, ok := m.world.Snapshot().Vehicle(v.ID); ok {
		v = latest
	}
	m.err = m.world.SetControls(v.ID, input(v.Snapshot))
}

// current returns the selected vessel.
func (m model) current() (sim.VehicleState, bool) {
	if m.frame == nil || m.selected < 0 || m.selected >= len(m.frame.Vehicles) {
		return sim.VehicleState{}, false
	}
	return m.frame.Vehicles[m.selected], true
}

func ptr(v float64) *float64 { return &v }
