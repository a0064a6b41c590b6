package picker

import (
	"time"

	"github.com/rondelui/rondel/internal/daterules"
	"github.com/rondelui/rondel/internal/geometry"
	"github.com/rondelui/rondel/internal/lunar"
)

// sunAngleDeg returns the angle (degrees, ring convention) at which the
// sun icon sits for a date: linear in day-of-month within the date's
// 30° month slice, increasing clockwise. A pure function of the date and
// the ring layout.
func sunAngleDeg(date time.Time) float64 {
	month := int(date.Month()) - 1
	sweep := geometry.FullCircleDegrees / 12
	start := geometry.RingRotationDegrees + float64(month)*sweep

	days := daterules.DaysInMonth(month, date.Year())
	if days == 0 {
		return start
	}
	progress := float64(date.Day()-1) / float64(days)
	return start + progress*sweep
}

// moonAngleDeg returns the moon icon's angle for a date: the sun's angle
// minus the phase angle, so the moon sits on the sun's side at new moon
// and opposite at full.
func moonAngleDeg(date time.Time) float64 {
	return sunAngleDeg(date) - geometry.RadiansToDegrees(lunar.PhaseAngle(date))
}

// sunIcon places the sun for a date on the given surface.
func sunIcon(surface Surface, date time.Time) SunIcon {
	size := surface.Size
	x, y := geometry.PolarToCartesian(size/2, size/2, size*sunRadiusFactor,
		geometry.DegreesToRadians(sunAngleDeg(date)))
	return SunIcon{
		Center: Point{X: x, Y: y},
		Radius: size * sunIconFactor,
	}
}

// moonIcon places and shades the moon for a date on the given surface.
func moonIcon(surface Surface, date time.Time) MoonIcon {
	size := surface.Size
	x, y := geometry.PolarToCartesian(size/2, size/2, size*moonRadiusFactor,
		geometry.DegreesToRadians(moonAngleDeg(date)))

	iconRadius := size * moonIconFactor
	phase := lunar.Phase(date)
	return MoonIcon{
		Center:       Point{X: x, Y: y},
		Radius:       iconRadius,
		ShadowOffset: lunar.ShadowOffset(iconRadius, phase),
		PhaseName:    lunar.PhaseName(date),
		Illuminated:  lunar.IlluminatedFraction(phase),
	}
}
