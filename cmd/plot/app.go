package main

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/unklstewy/shipcommand/internal/sim"
	"github.com/unklstewy/shipcommand/pkg/magnitudes"
	"github.com/unklstewy/shipcommand/pkg/tracking"
)

// App is the plotting table: a plot of the fleet with a telemetry sidebar.
type App struct {
	world *sim.World

	// UI components
	tviewApp   *tview.Application
	plot       *PlotView
	telemetry  *tview.TextView
	logs       *tview.TextView
	rootLayout *tview.Flex

	// State
	mu            sync.RWMutex
	frame         *sim.Frame
	trails        *trails
	selectedIndex int
	showTrails    bool
	follow        bool
	zoom          float64

	cancel context.CancelFunc
}

// NewApp creates the plotting table for w.
func NewApp(w *sim.World) *App {
	app := &App{
		world:      w,
		frame:      w.Snapshot(),
		trails:     newTrails(magnitudes.Seconds(15), 240),
		showTrails: true,
		zoom:       1.0,
	}

	app.setupUI()
	return app
}

func (a *App) setupUI() {
	a.tviewApp = tview.NewApplication()

	a.plot = NewPlotView(a)

	a.telemetry = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	a.telemetry.SetBorder(true).SetTitle(" Telemetry ")

	controls := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	controls.SetBorder(true).SetTitle(" Controls ")
	controls.SetText(`[yellow]NAVIGATION[-]
  [white]↑/↓, j/k[-]  Select
  [white]f[-]         Follow selected

[yellow]DISPLAY[-]
  [white]t[-]         Trails
  [white]+/-[-]       Zoom
  [white]0[-]         Reset zoom

[yellow]SIMULATION[-]
  [white]SPACE[-]     Pause/resume
  [white]q[-]         Quit`)

	a.logs = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetMaxLines(100)
	a.logs.SetBorder(true).SetTitle(" Logs ")

	sidebar := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.telemetry, 0, 5, false).
		AddItem(controls, 12, 0, false).
		AddItem(a.logs, 0, 3, false)

	a.rootLayout = tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(a.plot, 0, 7, true).
		AddItem(sidebar, 0, 3, false)

	a.tviewApp.SetRoot(a.rootLayout, true)
	a.tviewApp.SetInputCapture(a.handleKeyboard)

	a.addLog("INFO", "Plot started")
	a.updateTelemetry()
}

func (a *App) handleKeyboard(event *tcell.EventKey) *tcell.EventKey {
	key := event.Key()
	r := event.Rune()

	switch {
	case key == tcell.KeyEscape || r == 'q':
		a.Stop()
		return nil

	case key == tcell.KeyUp || r == 'k':
		a.moveSelection(-1)
		return nil
	case key == tcell.KeyDown || r == 'j':
		a.moveSelection(1)
		return nil

	case r == 'f':
		a.mu.Lock()
		a.follow = !a.follow
		a.mu.Unlock()
		a.addLog("INFO", fmt.Sprintf("Follow: %v", a.follow))
		return nil
	case r == 't':
		a.mu.Lock()
		a.showTrails = !a.showTrails
		a.mu.Unlock()
		a.addLog("INFO", fmt.Sprintf("Trails: %v", a.showTrails))
		return nil

	case r == '+' || r == '=':
		a.setZoom(a.zoom * 1.5)
		return nil
	case r == '-':
		a.setZoom(a.zoom / 1.5)
		return nil
	case r == '0':
		a.setZoom(1.0)
		return nil

	case r == ' ':
		if a.world.Paused() {
			a.world.Resume()
			a.addLog("INFO", "Simulation resumed")
		} else {
			a.world.Pause()
			a.addLog("WARN", "Simulation paused")
		}
		return nil
	}

	return event
}

// moveSelection moves the selection by delta, wrapping at either end.
func (a *App) moveSelection(delta int) {
	a.mu.Lock()
	n := len(a.frame.Vehicles)
	if n == 0 {
		a.mu.Unlock()
		return
	}
	a.selectedIndex = ((a.selectedIndex+delta)%n + n) % n
	a.mu.Unlock()

	a.updateTelemetry()
}

func (a *App) setZoom(zoom float64) {
	a.mu.Lock()
	a.zoom = math.Min(math.Max(zoom, 0.25), 50)
	zoom = a.zoom
	a.mu.Unlock()
	a.addLog("DEBUG", fmt.Sprintf("Zoom: %.2fx", zoom))
}

// selectedVehicle returns the selected vessel. The caller holds mu.
func (a *App) selectedVehicle() (sim.VehicleState, bool) {
	if a.frame == nil || a.selectedIndex < 0 || a.selectedIndex >= len(a.frame.Vehicles) {
		return sim.VehicleState{}, false
	}
	return a.frame.Vehicles[a.selectedIndex], true
}

// updateTelemetry rewrites the telemetry panel from the current frame.
func (a *App) updateTelemetry() {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var text strings.Builder
	f := a.frame

	state := "[green]RUNNING[-]"
	if f.Paused {
		state = "[yellow]PAUSED[-]"
	}
	text.WriteString(fmt.Sprintf("[yellow]SIM:[-] %s [gray]t+[-][white]%s[-]\n",
		state, f.Elapsed.Duration().Round(time.Second)))
	text.WriteString(fmt.Sprintf("[gray]Vessels:[-] [white]%d[-]  [gray]Zoom:[-] [white]%.2fx[-]\n\n", len(f.Vehicles), a.zoom))

	v, ok := a.selectedVehicle()
	if !ok {
		text.WriteString("[gray]No vessel selected[-]\n")
		a.telemetry.SetText(text.String())
		return
	}

	text.WriteString(fmt.Sprintf("[yellow]VESSEL:[-] [white]%s[-] [gray](%s)[-]\n", v.Name, v.Class))
	text.WriteString(fmt.Sprintf("[gray]Pos:[-]  [white]%.4f°, %.4f°[-]\n", v.Position.Lat(), v.Position.Lon()))
	text.WriteString(fmt.Sprintf("[gray]Crs:[-]  [white]%03.0f°[-]  [gray]Spd:[-] [white]%.1f kts[-]\n", v.Course, v.Speed.InKnots()))
	text.WriteString(fmt.Sprintf("[gray]Alt:[-]  [white]%.0f m[-]  [gray]Dive:[-] [white]%+.1f°[-]\n", v.Position.Altitude().InMeters(), v.DiveAngle))

	predicted := tracking.PredictPosition(v.Snapshot, predictAhead)
	text.WriteString(fmt.Sprintf("[gray]In %.0f min:[-] [white]%.4f°, %.4f°[-] [gray](%.0f%%)[-]\n\n",
		predictAhead.InMinutes(), predicted.Position.Lat(), predicted.Position.Lon(), predicted.Confidence*100))

	for _, other := range f.Vehicles {
		if other.ID == v.ID {
			continue
		}
		rng, brg := tracking.RangeAndBearing(v.Snapshot, other.Snapshot)
		text.WriteString(fmt.Sprintf("[white]%s[-] [gray]%.2f nm brg %03.0f°[-]\n", other.Name, rng.InNauticalMiles(), brg.InDegrees()))

		c, err := tracking.Intercept(v.Snapshot, other.Snapshot)
		if err != nil {
			text.WriteString(fmt.Sprintf("  [gray]tracks: %v[-]\n", err))
			continue
		}
		text.WriteString(fmt.Sprintf("  [red]×[-] [gray]%.2f nm / %s[-]\n",
			c.DistanceA.InNauticalMiles(), formatTime(c.TimeA)))
	}

	a.telemetry.SetText(text.String())
}

// formatTime prints a time to go, or "never" for a stopped vessel.
func formatTime(t magnitudes.Time) string {
	if math.IsInf(t.InSeconds(), 0) {
		return "never"
	}
	return t.Duration().Round(time.Second).String()
}

func (a *App) addLog(level, message string) {
	timestamp := time.Now().Format("15:04:05")
	var color string
	switch level {
	case "ERROR":
		color = "red"
	case "WARN":
		color = "yellow"
	case "DEBUG":
		color = "gray"
	default:
		color = "white"
	}

	fmt.Fprintf(a.logs, "[gray]%s[-] [%s]%-5s[-] %s\n", timestamp, color, level, message)
}

// Run starts consuming frames and runs the UI until it is stopped.
func (a *App) Run(ctx context.Context) error {
	ctx, a.cancel = context.WithCancel(ctx)
	go a.updateLoop(ctx)
	return a.tviewApp.Run()
}

// updateLoop receives frames from the world until ctx is done.
func (a *App) updateLoop(ctx context.Context) {
	frames := a.world.Subscribe(ctx)
	for f := range frames {
		a.mu.Lock()
		count := len(a.frame.Vehicles)
		a.frame = f
		a.trails.record(f)
		if a.selectedIndex >= len(f.Vehicles) {
			a.selectedIndex = max(len(f.Vehicles)-1, 0)
		}
		a.mu.Unlock()

		if count != len(f.Vehicles) {
			a.tviewApp.QueueUpdate(func() {
				a.addLog("INFO", fmt.Sprintf("Vessel count: %d", len(f.Vehicles)))
			})
		}
		a.tviewApp.QueueUpdateDraw(func() {
			a.updateTelemetry()
		})
	}
}

// Stop stops the frame loop and the UI.
func (a *App) Stop() {
	if a.cancel != nil {
		a.cancel()
	}
	a.tviewApp.Stop()
}
