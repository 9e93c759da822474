package main

import (
	"math"

	"github.com/unklstewy/shipcommand/pkg/geo"
)

// Terminal cells are about twice as tall as they are wide
const aspectRatio = 0.5

// minSpan keeps a lone vessel, or a fleet in one spot, from zooming in forever.
const minSpan = 0.05

// projection maps positions to screen cells with an equirectangular
// projection centred on center. Longitude offsets are taken eastwards
// across the antimeridian so a fleet straddling it stays together.
type projection struct {
	center  geo.Position2D
	scale   float64 // rows per degree of latitude
	cosLat  float64
	originX int
	originY int
}

// newProjection fits span degrees around center into the given rectangle.
func newProjection(center geo.Position2D, span float64, zoom float64, x, y, width, height int) projection {
	span = math.Max(span, minSpan)
	scale := math.Min(float64(height-2)/span, float64(width-2)*aspectRatio/span)
	if scale <= 0 {
		scale = 1
	}
	return projection{
		center:  center,
		scale:   scale * zoom,
		cosLat:  math.Cos(center.LatRadians()),
		originX: x + width/2,
		originY: y + height/2,
	}
}

func (p projection) project(pos geo.Position2D) (int, int) {
	east := eastOffset(p.center, pos) * p.cosLat
	north := pos.Lat() - p.center.Lat()
	x := p.originX + int(math.Round(east*p.scale/aspectRatio))
	y := p.originY - int(math.Round(north*p.scale))
	return x, y
}

// eastOffset returns the signed longitude offset of to from from, in
// (-180, 180]. Positive is east.
func eastOffset(from, to geo.Position2D) float64 {
	d := geo.LongitudeDifference(from, to)
	if d > 180 {
		d -= 360
	}
	return d
}

// fleetCenter returns the middle of the box holding positions and the
// larger side of that box in degrees, east-west sides scaled to distance.
func fleetCenter(positions []geo.Position2D) (geo.Position2D, float64) {
	if len(positions) == 0 {
		return geo.NewPosition2D(0, 0), minSpan
	}

	ref := positions[0]
	minLat, maxLat := ref.Lat(), ref.Lat()
	minEast, maxEast := 0.0, 0.0
	for _, pos := range positions[1:] {
		minLat = math.Min(minLat, pos.Lat())
		maxLat = math.Max(maxLat, pos.Lat())
		e := eastOffset(ref, pos)
		minEast = math.Min(minEast, e)
		maxEast = math.Max(maxEast, e)
	}

	center := geo.NewPosition2D((minLat+maxLat)/2, ref.Lon()+(minEast+maxEast)/2)
	span := math.Max(maxLat-minLat, (maxEast-minEast)*math.Cos(center.LatRadians()))
	// Leave a margin round the outermost vessels
	return center, span * 1.2
}
