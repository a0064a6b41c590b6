// Package lunar implements the widget's self-contained lunar-phase model.
// The phase is a simple linear cycle: days elapsed since a fixed reference
// new moon divided by the mean synodic month, wrapped into [0,1). That is
// accurate to within a few hours over the years a calendar widget cares
// about, which is all the sun/moon indicator needs.
package lunar

import (
	"math"
	"time"
)

// SynodicMonthDays is the mean period between successive new moons.
const SynodicMonthDays = 29.53058867

// referenceNewMoon is the fixed UTC instant the cycle is anchored to:
// the new moon of 2000-01-06 18:14 UTC.
var referenceNewMoon = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

// nameToleranceDays widens the "New Moon" and "Full Moon" windows so dates
// within ±36 hours of the exact instant still report the headline name
// instead of a sliver crescent/gibbous. Presentation smoothing, not
// astronomy.
const nameToleranceDays = 1.5

// hoursPerDay converts elapsed time to fractional days.
const hoursPerDay = 24.0

// Phase name constants.
const (
	NameNew            = "New Moon"
	NameWaxingCrescent = "Waxing Crescent"
	NameFirstQuarter   = "First Quarter"
	NameWaxingGibbous  = "Waxing Gibbous"
	NameFull           = "Full Moon"
	NameWaningGibbous  = "Waning Gibbous"
	NameLastQuarter    = "Last Quarter"
	NameWaningCrescent = "Waning Crescent"
)

// Phase returns the synodic phase of the moon at t as a value in [0,1):
// 0 is new moon, 0.5 is full moon. Continuous and periodic in
// SynodicMonthDays; dates before the reference instant wrap correctly.
func Phase(t time.Time) float64 {
	elapsedDays := t.Sub(referenceNewMoon).Hours() / hoursPerDay
	return wrapPhase(elapsedDays / SynodicMonthDays)
}

// PhaseAngle returns the phase expressed as an angle in radians:
// 0 means the moon sits on the same side as the sun (new), π opposite
// (full).
func PhaseAngle(t time.Time) float64 {
	return Phase(t) * 2 * math.Pi
}

// PhaseName classifies the phase at t into one of the eight traditional
// names. New and Full carry the ±nameToleranceDays window; the quarter
// names get the same window so they remain reachable rather than being
// single instants.
func PhaseName(t time.Time) string {
	phase := Phase(t)
	tol := nameToleranceDays / SynodicMonthDays

	switch {
	case phase < tol || phase > 1-tol:
		return NameNew
	case phase < 0.25-tol:
		return NameWaxingCrescent
	case phase < 0.25+tol:
		return NameFirstQuarter
	case phase < 0.5-tol:
		return NameWaxingGibbous
	case phase < 0.5+tol:
		return NameFull
	case phase < 0.75-tol:
		return NameWaningGibbous
	case phase < 0.75+tol:
		return NameLastQuarter
	default:
		return NameWaningCrescent
	}
}

// IlluminatedFraction returns the lit fraction of the lunar disc for a
// phase in [0,1): 0 at new, 1 at full, 0.5 at the quarters.
func IlluminatedFraction(phase float64) float64 {
	return (1 - math.Cos(2*math.Pi*phase)) / 2
}

// ShadowOffset returns the horizontal displacement of an opaque shadow
// disc (same radius as the moon icon) that, overlaid on a fully lit disc,
// leaves the correct illuminated sliver visible. The magnitude is
// 2*radius*IlluminatedFraction; the sign is negative (shadow shifted left)
// while the moon waxes and positive while it wanes. Phases outside [0,1)
// are wrapped first, so -0.25 behaves as 0.75.
func ShadowOffset(radius, phase float64) float64 {
	phase = wrapPhase(phase)
	offset := 2 * radius * IlluminatedFraction(phase)
	if phase < 0.5 {
		return -offset
	}
	return offset
}

// wrapPhase normalizes any real phase value into [0,1).
func wrapPhase(p float64) float64 {
	p = math.Mod(p, 1)
	if p < 0 {
		p++
	}
	return p
}
