package maneuver

import (
	"slices"

	"github.com/golang/geo/r2"

	"go.viam.com/maneuver/utils"
)

// sidePointX is how far ahead of the rotation axis the side reference points sit.
const sidePointX = 0.1

// Footprint is a rectangular vehicle outline given in the body frame: rotation center at the
// origin, heading along +x. Each corner occupies its own quadrant.
type Footprint struct {
	points []r2.Point

	topLeft     r2.Point
	topRight    r2.Point
	bottomLeft  r2.Point
	bottomRight r2.Point
}

// NewFootprint classifies four corner points by quadrant. It fails unless there are exactly four
// finite points, one strictly inside each quadrant.
func NewFootprint(points []r2.Point) (*Footprint, error) {
	if len(points) != 4 {
		return nil, newInvalidFootprintError("expected 4 corners, got %d", len(points))
	}

	fp := &Footprint{points: slices.Clone(points)}
	seen := map[ReferencePointKind]bool{}
	for _, pt := range points {
		if !utils.IsFinite(pt.X, pt.Y) {
			return nil, newInvalidFootprintError("corner %v is not finite", pt)
		}
		var kind ReferencePointKind
		switch {
		case pt.X > 0 && pt.Y > 0:
			kind = ReferenceTopLeft
			fp.topLeft = pt
		case pt.X > 0 && pt.Y < 0:
			kind = ReferenceTopRight
			fp.topRight = pt
		case pt.X < 0 && pt.Y > 0:
			kind = ReferenceBottomLeft
			fp.bottomLeft = pt
		case pt.X < 0 && pt.Y < 0:
			kind = ReferenceBottomRight
			fp.bottomRight = pt
		default:
			return nil, newInvalidFootprintError("corner %v lies on an axis", pt)
		}
		if seen[kind] {
			return nil, newInvalidFootprintError("more than one corner in the %s quadrant", kind)
		}
		seen[kind] = true
	}
	return fp, nil
}

// Points returns the corners in the order they were given.
func (fp *Footprint) Points() []r2.Point {
	return slices.Clone(fp.points)
}

// ReferencePoint returns the steering reference point of the given kind.
func (fp *Footprint) ReferencePoint(kind ReferencePointKind) ReferencePoint {
	var offset r2.Point
	switch kind {
	case ReferenceCenter:
	case ReferenceTopLeft:
		offset = fp.topLeft
	case ReferenceTopRight:
		offset = fp.topRight
	case ReferenceBottomLeft:
		offset = fp.bottomLeft
	case ReferenceBottomRight:
		offset = fp.bottomRight
	case ReferenceLeftSide:
		offset = r2.Point{X: sidePointX, Y: fp.bottomLeft.Y}
	case ReferenceRightSide:
		offset = r2.Point{X: sidePointX, Y: fp.bottomRight.Y}
	}
	return newReferencePoint(kind, offset)
}
