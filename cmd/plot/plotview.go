package main

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/unklstewy/shipcommand/pkg/geo"
	"github.com/unklstewy/shipcommand/pkg/magnitudes"
	"github.com/unklstewy/shipcommand/pkg/tracking"
)

// predictAhead is how far ahead the selected vessel's position is projected.
var predictAhead = magnitudes.Minutes(10)

// PlotView is a custom tview primitive that draws the plotting table
type PlotView struct {
	*tview.Box
	app *App
}

func NewPlotView(app *App) *PlotView {
	pv := &PlotView{
		Box: tview.NewBox(),
		app: app,
	}
	pv.SetBorder(true).SetTitle(" Plot ")
	return pv
}

// Draw renders trails, vessels, the selected vessel's predicted position and
// the points where its track crosses the others.
func (pv *PlotView) Draw(screen tcell.Screen) {
	pv.Box.DrawForSubclass(screen, pv)
	x, y, width, height := pv.GetInnerRect()
	if width < 3 || height < 3 {
		return
	}

	pv.app.mu.RLock()
	defer pv.app.mu.RUnlock()

	frame := pv.app.frame
	if frame == nil || len(frame.Vehicles) == 0 {
		drawText(screen, x+1, y, "No vessels at sea", tcell.StyleDefault.Foreground(tcell.ColorGray))
		return
	}

	positions := make([]geo.Position2D, 0, len(frame.Vehicles))
	for _, v := range frame.Vehicles {
		positions = append(positions, v.Position.Position2D)
	}
	center, span := fleetCenter(positions)
	selected, hasSelected := pv.app.selectedVehicle()
	if pv.app.follow && hasSelected {
		center = selected.Position.Position2D
	}
	proj := newProjection(center, span, pv.app.zoom, x, y, width, height)

	inside := func(px, py int) bool {
		return px >= x && px < x+width && py >= y && py < y+height
	}

	gridStyle := tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	trailStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	vesselStyle := tcell.StyleDefault.Foreground(tcell.ColorLightBlue)
	selectedStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	predictStyle := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	crossStyle := tcell.StyleDefault.Foreground(tcell.ColorRed)

	// Centre cross hair
	for i := x; i < x+width; i++ {
		screen.SetContent(i, proj.originY, '·', nil, gridStyle)
	}
	for j := y; j < y+height; j++ {
		screen.SetContent(proj.originX, j, '·', nil, gridStyle)
	}
	drawText(screen, x+1, y, center.String(), gridStyle)
	drawText(screen, proj.originX, y, "N", gridStyle)

	if pv.app.showTrails {
		for _, v := range frame.Vehicles {
			for _, p := range pv.app.trails.trail(v.ID) {
				if px, py := proj.project(p); inside(px, py) {
					screen.SetContent(px, py, '·', nil, trailStyle)
				}
			}
		}
	}

	if hasSelected {
		// Where the other tracks cross ours
		for _, other := range frame.Vehicles {
			if other.ID == selected.ID {
				continue
			}
			c, err := tracking.Intercept(selected.Snapshot, other.Snapshot)
			if err != nil {
				continue
			}
			if px, py := proj.project(c.Point); inside(px, py) {
				screen.SetContent(px, py, '×', nil, crossStyle)
			}
		}

		predicted := tracking.PredictPosition(selected.Snapshot, predictAhead)
		px0, py0 := proj.project(selected.Position.Position2D)
		px1, py1 := proj.project(predicted.Position.Position2D)
		drawLine(screen, px0, py0, px1, py1, '∙', predictStyle, inside)
		if inside(px1, py1) {
			screen.SetContent(px1, py1, '+', nil, predictStyle)
		}
	}

	for _, v := range frame.Vehicles {
		px, py := proj.project(v.Position.Position2D)
		if !inside(px, py) {
			continue
		}

		symbol := headingSymbol(v.Course)
		style := vesselStyle
		if hasSelected && v.ID == selected.ID {
			style = selectedStyle
		}
		screen.SetContent(px, py, symbol, nil, style)
		drawText(screen, px+2, py, v.Name, style)
	}
}

// headingSymbol picks an arrow for the nearest of eight compass points.
func headingSymbol(course float64) rune {
	arrows := []rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}
	i := int(math.Round(magnitudes.NormalizeDegrees(course)/45)) % len(arrows)
	return arrows[i]
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		screen.SetContent(x+i, y, ch, nil, style)
	}
}

// drawLine draws a line using Bresenham's line algorithm, skipping cells
// for which visible is false.
func drawLine(screen tcell.Screen, x0, y0, x1, y1 int, char rune, style tcell.Style, visible func(int, int) bool) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		if visible(x0, y0) {
			screen.SetContent(x0, y0, char, nil, style)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
