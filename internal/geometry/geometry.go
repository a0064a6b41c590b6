// Package geometry provides the polar-coordinate math for the radial
// calendar: angle conversions, running angular offsets, polar→cartesian
// projection, and SVG arc-path construction for ring segments.
//
// All functions here are pure. The coordinate conventions that the rest of
// the widget depends on live in this package as named constants so they are
// stated once instead of re-derived at every call site.
package geometry

import (
	"fmt"
	"math"
	"strings"
)

// RingRotationDegrees is the angular origin offset applied to every ring.
// Rotating the origin by 45° aligns month boundaries with the fixed visual
// reference the widget was designed around.
const RingRotationDegrees = 45.0

// FullCircleDegrees is the angular span of one complete ring.
const FullCircleDegrees = 360.0

// largeArcThresholdDegrees is the span above which the SVG large-arc flag
// is set. ArcPath compares the *degree* magnitude of the span against this
// value -- callers must pass start/end angles in degrees. This is a stated
// contract of ArcPath, kept so path output matches the widget's established
// shapes; it is not re-derived from radians.
const largeArcThresholdDegrees = 180.0

// labelRadiusFactor places segment labels just inside the segment's outer
// edge, along the bisecting angle.
const labelRadiusFactor = 0.95

// DegreesToRadians converts an angle in degrees to radians.
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// RadiansToDegrees converts an angle in radians to degrees.
func RadiansToDegrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// CumulativeAngle returns the sum of sizes[0..i-1]: the angular offset at
// which segment i begins when segments of the given sizes are laid out
// consecutively around a ring. Rings may hold heterogeneous sizes (months
// of different degree-weight, days of unequal count), so the offset is a
// running sum rather than i*size.
func CumulativeAngle(sizes []float64, i int) float64 {
	if i > len(sizes) {
		i = len(sizes)
	}
	var sum float64
	for _, s := range sizes[:i] {
		sum += s
	}
	return sum
}

// PolarToCartesian projects a polar coordinate (radius, angle in radians)
// around the center (cx, cy) onto cartesian x/y.
func PolarToCartesian(cx, cy, r, angleRad float64) (x, y float64) {
	return cx + r*math.Cos(angleRad), cy + r*math.Sin(angleRad)
}

// ArcPath builds a closed SVG path for one ring segment spanning
// [startDeg, endDeg] at the given base radius. outerRatio scales the outer
// radius (the "notch" for short months). With innerRadius == 0 the result
// is a pie slice closing at the center; with innerRadius > 0 it is an
// annulus wedge whose inner arc closes the shape.
//
// Angles are in degrees. The large-arc flag is decided from the degree
// magnitude of the span (see largeArcThresholdDegrees).
func ArcPath(cx, cy, r, startDeg, endDeg, outerRatio, innerRadius float64) string {
	outer := r * outerRatio
	startRad := DegreesToRadians(startDeg)
	endRad := DegreesToRadians(endDeg)

	largeArc := 0
	if endDeg-startDeg > largeArcThresholdDegrees {
		largeArc = 1
	}

	x0, y0 := PolarToCartesian(cx, cy, outer, startRad)
	x1, y1 := PolarToCartesian(cx, cy, outer, endRad)

	var b strings.Builder
	fmt.Fprintf(&b, "M %s %s", coord(x0), coord(y0))
	fmt.Fprintf(&b, " A %s %s 0 %d 1 %s %s", coord(outer), coord(outer), largeArc, coord(x1), coord(y1))

	if innerRadius > 0 {
		// Annulus wedge: line in to the inner radius, then sweep the inner
		// arc back to the start angle in the opposite direction.
		ix1, iy1 := PolarToCartesian(cx, cy, innerRadius, endRad)
		ix0, iy0 := PolarToCartesian(cx, cy, innerRadius, startRad)
		fmt.Fprintf(&b, " L %s %s", coord(ix1), coord(iy1))
		fmt.Fprintf(&b, " A %s %s 0 %d 0 %s %s", coord(innerRadius), coord(innerRadius), largeArc, coord(ix0), coord(iy0))
	} else {
		// Pie slice: close through the center vertex.
		fmt.Fprintf(&b, " L %s %s", coord(cx), coord(cy))
	}

	b.WriteString(" Z")
	return b.String()
}

// Label describes where and how a segment label is drawn: anchor point,
// and the rotation (degrees) that keeps the text right-side-up when read
// from outside the ring.
type Label struct {
	X        float64
	Y        float64
	Rotation float64
}

// SegmentLabel computes label placement for a segment spanning
// [startDeg, endDeg]: the anchor sits at r*outerRatio*labelRadiusFactor
// along the bisecting angle, rotated tangentially. For the half of the
// circle where tangential text would render upside-down, the rotation is
// flipped 180°.
func SegmentLabel(cx, cy, r, startDeg, endDeg, outerRatio float64) Label {
	midDeg := (startDeg + endDeg) / 2
	radius := r * outerRatio * labelRadiusFactor
	x, y := PolarToCartesian(cx, cy, radius, DegreesToRadians(midDeg))

	// Tangential orientation: perpendicular to the bisecting radius.
	rotation := midDeg + 90

	// Normalize the bisecting angle into [0, 360) before deciding which
	// half of the circle the label is on.
	norm := math.Mod(midDeg, FullCircleDegrees)
	if norm < 0 {
		norm += FullCircleDegrees
	}

	// Bottom half of the circle (angles pointing down-left/down-right in
	// SVG's y-down coordinates): flip so the text reads left to right.
	if norm > 90 && norm < 270 {
		rotation -= 180
	}

	return Label{X: x, Y: y, Rotation: rotation}
}

// coord formats a coordinate with three decimal places. Fixed precision
// keeps path strings stable across runs and platforms.
func coord(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	// Avoid the distinct "-0.000" form for values that round to zero.
	if s == "-0.000" {
		s = "0.000"
	}
	return s
}
