// Package profile holds the piecewise-linear performance curves that map a
// vessel's current speed to its available acceleration, drag deceleration and
// turn rate.
//
// Breakpoints must be added in strictly increasing speed order. Add does not
// check this (a table built out of order interpolates garbage but never
// panics); call Validate after construction to reject such tables.
//
// Each profile remembers the segment used by the last lookup. Speed changes
// continuously under integration, so the next lookup usually starts on the
// right segment and costs O(1). The cursor never changes a result, only how
// fast it is found. A profile is not safe for concurrent use.
package profile

import (
	"errors"
	"fmt"

	"github.com/unklstewy/shipcommand/pkg/magnitudes"
)

// ErrNonIncreasing is returned by Validate when breakpoint speeds are not
// strictly increasing.
var ErrNonIncreasing = errors.New("profile: breakpoint speeds must be strictly increasing")

// Breakpoint is one (speed, value) sample of a curve. Value is in the unit of
// the owning profile: m/s² for acceleration and drag, degrees per minute for
// turn rates.
type Breakpoint struct {
	Speed magnitudes.Speed
	Value float64
}

type curve struct {
	points []Breakpoint
	cursor int
}

func (c *curve) add(speed magnitudes.Speed, value float64) {
	c.points = append(c.points, Breakpoint{Speed: speed, Value: value})
}

// seek moves the cursor to the last breakpoint whose speed does not exceed
// ms, or to the first breakpoint when ms is below the table.
func (c *curve) seek(ms float64) int {
	if c.cursor >= len(c.points) {
		c.cursor = 0
	}
	for c.cursor < len(c.points)-1 && ms > c.points[c.cursor].Speed.InMetersPerSecond() {
		c.cursor++
	}
	for c.cursor > 0 && ms < c.points[c.cursor].Speed.InMetersPerSecond() {
		c.cursor--
	}
	return c.cursor
}

// lerp interpolates on the segment starting at i. i must not be the last index.
func (c *curve) lerp(i int, ms float64) float64 {
	x0 := c.points[i].Speed.InMetersPerSecond()
	y0 := c.points[i].Value
	x1 := c.points[i+1].Speed.InMetersPerSecond()
	y1 := c.points[i+1].Value
	return y0 + (y1-y0)*(ms-x0)/(x1-x0)
}

// throughOrigin extends the line from the origin through the last breakpoint.
func (c *curve) throughOrigin(ms float64) float64 {
	last := c.points[len(c.points)-1]
	top := last.Speed.InMetersPerSecond()
	if top == 0 {
		return 0
	}
	return ms * last.Value / top
}

func (c *curve) maxSpeed() (magnitudes.Speed, bool) {
	if len(c.points) == 0 {
		return magnitudes.Speed{}, false
	}
	return c.points[len(c.points)-1].Speed, true
}

func (c *curve) validate() error {
	for i := 1; i < len(c.points); i++ {
		prev := c.points[i-1].Speed.InMetersPerSecond()
		cur := c.points[i].Speed.InMetersPerSecond()
		if !(cur > prev) {
			return fmt.Errorf("%w: breakpoint %d (%.3f m/s) after %.3f m/s", ErrNonIncreasing, i, cur, prev)
		}
	}
	return nil
}

func (c *curve) breakpoints() []Breakpoint {
	out := make([]Breakpoint, len(c.points))
	copy(out, c.points)
	return out
}
