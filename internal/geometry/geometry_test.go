package geometry

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDegreesToRadians(t *testing.T) {
	assert.InDelta(t, 0.0, DegreesToRadians(0), 1e-12)
	assert.InDelta(t, math.Pi, DegreesToRadians(180), 1e-12)
	assert.InDelta(t, math.Pi/2, DegreesToRadians(90), 1e-12)
	assert.InDelta(t, -math.Pi/4, DegreesToRadians(-45), 1e-12)
}

func TestRadiansToDegreesRoundTrip(t *testing.T) {
	for _, deg := range []float64{0, 30, 45, 123.4, 359.99, -90} {
		assert.InDelta(t, deg, RadiansToDegrees(DegreesToRadians(deg)), 1e-9)
	}
}

func TestCumulativeAngle(t *testing.T) {
	sizes := []float64{30, 45, 15, 90}

	assert.Equal(t, 0.0, CumulativeAngle(sizes, 0))
	assert.Equal(t, 30.0, CumulativeAngle(sizes, 1))
	assert.Equal(t, 75.0, CumulativeAngle(sizes, 2))
	assert.Equal(t, 90.0, CumulativeAngle(sizes, 3))
	assert.Equal(t, 180.0, CumulativeAngle(sizes, 4))

	// Index past the end clamps to the full sum instead of panicking.
	assert.Equal(t, 180.0, CumulativeAngle(sizes, 10))
}

func TestPolarToCartesian(t *testing.T) {
	x, y := PolarToCartesian(100, 100, 50, 0)
	assert.InDelta(t, 150.0, x, 1e-9)
	assert.InDelta(t, 100.0, y, 1e-9)

	x, y = PolarToCartesian(100, 100, 50, math.Pi/2)
	assert.InDelta(t, 100.0, x, 1e-9)
	assert.InDelta(t, 150.0, y, 1e-9)

	x, y = PolarToCartesian(0, 0, 10, math.Pi)
	assert.InDelta(t, -10.0, x, 1e-9)
	assert.InDelta(t, 0.0, y, 1e-9)
}

func TestArcPathStartsWithMoveEndsWithClose(t *testing.T) {
	for _, inner := range []float64{0, 40} {
		path := ArcPath(200, 200, 180, 45, 75, 1.0, inner)
		assert.True(t, strings.HasPrefix(path, "M "), "path should start with a move: %s", path)
		assert.True(t, strings.HasSuffix(path, " Z"), "path should end with a close: %s", path)
	}
}

func TestArcPathOuterRatioChangesOutput(t *testing.T) {
	full := ArcPath(200, 200, 180, 45, 75, 1.0, 0)
	notched := ArcPath(200, 200, 180, 45, 75, 0.85, 0)
	assert.NotEqual(t, full, notched)
}

func TestArcPathInnerRadiusAddsInnerArc(t *testing.T) {
	slice := ArcPath(200, 200, 180, 45, 75, 1.0, 0)
	wedge := ArcPath(200, 200, 180, 45, 75, 1.0, 60)

	// Both shapes close through a line segment; the wedge's line leads to a
	// second arc rather than to the center vertex.
	require.Contains(t, wedge, " L ")
	assert.Equal(t, 2, strings.Count(wedge, " A "), "wedge should carry outer and inner arcs")
	assert.Equal(t, 1, strings.Count(slice, " A "), "pie slice should carry only the outer arc")

	// The pie slice's line segment lands on the center vertex.
	assert.Contains(t, slice, "L 200.000 200.000")
}

func TestArcPathLargeArcFlagFromDegreeSpan(t *testing.T) {
	small := ArcPath(200, 200, 180, 0, 90, 1.0, 0)
	assert.Contains(t, small, " 0 0 1 ", "90° span must not set the large-arc flag")

	large := ArcPath(200, 200, 180, 0, 270, 1.0, 0)
	assert.Contains(t, large, " 0 1 1 ", "270° span must set the large-arc flag")
}

func TestSegmentLabelSitsInsideOuterEdge(t *testing.T) {
	lbl := SegmentLabel(200, 200, 180, 0, 30, 1.0)

	dist := math.Hypot(lbl.X-200, lbl.Y-200)
	assert.InDelta(t, 180*0.95, dist, 1e-9)
}

func TestSegmentLabelFlipsOnBottomHalf(t *testing.T) {
	top := SegmentLabel(200, 200, 180, 300, 330, 1.0)
	bottom := SegmentLabel(200, 200, 180, 120, 150, 1.0)

	// Bisecting angles: 315° (upper half in y-down SVG) keeps the tangential
	// rotation; 135° (bottom half) flips by 180°.
	assert.InDelta(t, 315+90, top.Rotation, 1e-9)
	assert.InDelta(t, 135+90-180, bottom.Rotation, 1e-9)
}

func TestSegmentLabelNormalizesAngles(t *testing.T) {
	// A segment described with angles past 360° behaves like its wrapped
	// equivalent for the flip decision.
	wrapped := SegmentLabel(200, 200, 180, 480, 510, 1.0) // bisect 495 ≡ 135
	assert.InDelta(t, 495+90-180, wrapped.Rotation, 1e-9)
}
