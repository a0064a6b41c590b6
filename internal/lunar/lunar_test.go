package lunar

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// refNewMoon mirrors the package's anchor instant for test readability.
var refNewMoon = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

// addDays offsets a time by a fractional number of days.
func addDays(t time.Time, days float64) time.Time {
	return t.Add(time.Duration(days * 24 * float64(time.Hour)))
}

func TestPhaseAtReferenceIsZero(t *testing.T) {
	assert.InDelta(t, 0.0, Phase(refNewMoon), 1e-9)
}

func TestPhaseIsPeriodic(t *testing.T) {
	dates := []time.Time{
		refNewMoon,
		time.Date(2024, time.March, 3, 12, 0, 0, 0, time.UTC),
		time.Date(1999, time.July, 20, 0, 0, 0, 0, time.UTC), // before the anchor
		time.Date(2026, time.January, 15, 9, 30, 0, 0, time.UTC),
	}
	for _, d := range dates {
		got := Phase(addDays(d, SynodicMonthDays))
		want := Phase(d)
		// Compare on the circle: 0.9999 and 0.0001 are one cycle apart.
		diff := math.Abs(got - want)
		if diff > 0.5 {
			diff = 1 - diff
		}
		assert.InDelta(t, 0.0, diff, 1e-6, "phase should repeat after one synodic month from %s", d)
	}
}

func TestPhaseBeforeReferenceWraps(t *testing.T) {
	p := Phase(refNewMoon.Add(-time.Hour))
	assert.GreaterOrEqual(t, p, 0.0)
	assert.Less(t, p, 1.0)
	assert.Greater(t, p, 0.9, "an hour before new moon should sit at the top of the cycle")
}

func TestPhaseNameNewMoonWindow(t *testing.T) {
	assert.Equal(t, NameNew, PhaseName(refNewMoon))
	assert.Equal(t, NameNew, PhaseName(refNewMoon.Add(36*time.Hour)))
	assert.Equal(t, NameNew, PhaseName(refNewMoon.Add(-36*time.Hour)))

	// Just past the window the crescent takes over.
	assert.Equal(t, NameWaxingCrescent, PhaseName(addDays(refNewMoon, 2.0)))
}

func TestPhaseNameFullMoonWindow(t *testing.T) {
	full := addDays(refNewMoon, SynodicMonthDays/2)

	assert.InDelta(t, math.Pi, PhaseAngle(full), 0.01)
	assert.Equal(t, NameFull, PhaseName(full))
	assert.Equal(t, NameFull, PhaseName(full.Add(36*time.Hour)))
	assert.Equal(t, NameFull, PhaseName(full.Add(-36*time.Hour)))

	assert.Equal(t, NameWaxingGibbous, PhaseName(addDays(full, -2.0)))
	assert.Equal(t, NameWaningGibbous, PhaseName(addDays(full, 2.0)))
}

func TestPhaseNameQuarters(t *testing.T) {
	assert.Equal(t, NameFirstQuarter, PhaseName(addDays(refNewMoon, SynodicMonthDays/4)))
	assert.Equal(t, NameLastQuarter, PhaseName(addDays(refNewMoon, 3*SynodicMonthDays/4)))
	assert.Equal(t, NameWaningCrescent, PhaseName(addDays(refNewMoon, SynodicMonthDays-3)))
}

func TestIlluminatedFraction(t *testing.T) {
	assert.InDelta(t, 0.0, IlluminatedFraction(0), 1e-12)
	assert.InDelta(t, 1.0, IlluminatedFraction(0.5), 1e-12)
	assert.InDelta(t, 0.5, IlluminatedFraction(0.25), 1e-12)
	assert.InDelta(t, 0.5, IlluminatedFraction(0.75), 1e-12)
}

func TestShadowOffset(t *testing.T) {
	const r = 20.0

	assert.InDelta(t, 0.0, ShadowOffset(r, 0), 1e-9)
	assert.InDelta(t, 2*r, math.Abs(ShadowOffset(r, 0.5)), 1e-9)

	assert.Negative(t, ShadowOffset(r, 0.25), "waxing shadow shifts left")
	assert.Positive(t, ShadowOffset(r, 0.75), "waning shadow shifts right")
}

func TestShadowOffsetWrapsNegativePhase(t *testing.T) {
	const r = 20.0
	assert.InDelta(t, ShadowOffset(r, 0.75), ShadowOffset(r, -0.25), 1e-12)
}
