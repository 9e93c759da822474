package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/unklstewy/shipcommand/internal/sim"
	"github.com/unklstewy/shipcommand/pkg/tracking"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("237"))
	pausedStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226"))
	closingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Ship Command - Helm"))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n\n")

	b.WriteString(m.renderFleet())
	b.WriteString("\n")

	if v, ok := m.current(); ok {
		b.WriteString(m.renderControls(v))
		b.WriteString("\n")
		b.WriteString(m.renderContacts(v))
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓: select  w/s: throttle  a/d: rudder  r/f: planes  c: center  0: stop  space: pause  q: quit"))
	return b.String()
}

func (m model) renderStatus() string {
	elapsed := m.frame.Elapsed.Duration().Round(time.Second)
	status := fmt.Sprintf("Sim time %s  tick %d  %.0f steps/s", elapsed, m.frame.Tick, m.world.StepRate())
	if m.frame.Paused {
		status += "  " + pausedStyle.Render("[PAUSED]")
	}
	return status
}

func (m model) renderFleet() string {
	var list strings.Builder

	list.WriteString(headerStyle.Render("Fleet:"))
	list.WriteString(fmt.Sprintf(" (%d)", len(m.frame.Vehicles)))
	list.WriteString("\n\n")

	if len(m.frame.Vehicles) == 0 {
		list.WriteString(helpStyle.Render("  No vessels at sea"))
		list.WriteString("\n")
		return list.String()
	}

	list.WriteString(fmt.Sprintf("  %-12s %-12s %9s %10s %7s %5s %6s\n",
		"Name", "Class", "Lat", "Lon", "Depth", "Crs", "Kts"))

	for i, v := range m.frame.Vehicles {
		prefix := "  "
		if i == m.selected {
			prefix = "→ "
		}

		line := fmt.Sprintf("%s%-12s %-12s %9.4f %10.4f %6.0fm %5.0f %6.1f",
			prefix,
			v.Name,
			v.Class,
			v.Position.Lat(),
			v.Position.Lon(),
			-v.Position.Altitude().InMeters(),
			v.Course,
			v.Speed.InKnots(),
		)
		if i == m.selected {
			line = selectedStyle.Render(line)
		}
		list.WriteString(line)
		list.WriteString("\n")
	}

	return list.String()
}

func (m model) renderControls(v sim.VehicleState) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Controls: %s", v.Name)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Throttle %s %3.0f%%\n", gauge(v.Throttle, 0, 1), v.Throttle*100))
	b.WriteString(fmt.Sprintf("  Rudder   %s %+4.2f  turning %+6.1f°/min\n", gauge(v.Rudder, -1, 1), v.Rudder, v.TurningRate))
	b.WriteString(fmt.Sprintf("  Planes   %s %+4.2f  diving  %+6.1f°/min  angle %+5.1f°\n", gauge(v.Planes, -1, 1), v.Planes, v.DivingRate, v.DiveAngle))
	b.WriteString(fmt.Sprintf("  Accel    %+6.3f m/s²  vertical %+5.2f m/s\n",
		v.Acceleration.InMetersPerSecondSquared(), v.VerticalSpeed.InMetersPerSecond()))
	return b.String()
}

// renderContacts lists every other vessel as seen from v.
func (m model) renderContacts(v sim.VehicleState) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Contacts"))
	b.WriteString("\n")

	count := 0
	for _, other := range m.frame.Vehicles {
		if other.ID == v.ID {
			continue
		}
		count++

		rng, brg := tracking.RangeAndBearing(v.Snapshot, other.Snapshot)
		rel := tracking.RelativeBearing(v.Snapshot, other.Snapshot)
		cpa := tracking.ClosestApproach(v.Snapshot, other.Snapshot)

		line := fmt.Sprintf("  %-12s %6.2f nm  brg %03.0f  rel %+4.0f  CPA %6.2f nm",
			other.Name, rng.InNauticalMiles(), brg.InDegrees(), rel, cpa.Distance.InNauticalMiles())
		if t := cpa.Time.InMinutes(); t > 0 && !math.IsInf(t, 0) {
			line += fmt.Sprintf(" in %5.1f min", t)
			line = closingStyle.Render(line)
		} else {
			line += "  opening"
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if count == 0 {
		b.WriteString(helpStyle.Render("  No contacts"))
		b.WriteString("\n")
	}
	return b.String()
}

// gauge draws value on a fixed-width bar spanning lo..hi.
func gauge(value, lo, hi float64) string {
	const width = 21
	pos := int(math.Round((value - lo) / (hi - lo) * (width - 1)))
	pos = min(max(pos, 0), width-1)

	bar := []rune(strings.Repeat("─", width))
	if lo < 0 {
		bar[width/2] = '┼'
	}
	bar[pos] = '●'
	return "[" + string(bar) + "]"
}
