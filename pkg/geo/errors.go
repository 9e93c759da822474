package geo

import "errors"

var (
	// ErrAmbiguousSolution is returned by Intersection when the two paths
	// diverge or start at antipodal points, so two symmetric crossings exist
	// with no canonical choice.
	ErrAmbiguousSolution = errors.New("geo: ambiguous intersection")

	// ErrInfiniteSolutions is returned by Intersection when both paths lie on
	// the same great circle.
	ErrInfiniteSolutions = errors.New("geo: infinite intersections")
)
