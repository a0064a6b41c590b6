package picker

import (
	"fmt"
	"time"

	"github.com/rondelui/rondel/internal/daterules"
	"github.com/rondelui/rondel/internal/geometry"
	"github.com/rondelui/rondel/internal/viewstate"
)

// Ring proportions relative to the surface size. The ring radius leaves
// room for the sun/moon icons outside it; the inner radius turns the time
// rings into donuts so the center label stays readable.
const (
	ringRadiusFactor  = 0.38
	innerRadiusFactor = 0.18
	centerDiscFactor  = 0.15
	sunRadiusFactor   = 0.43
	moonRadiusFactor  = 0.47
	sunIconFactor     = 0.035
	moonIconFactor    = 0.030
)

// Outer-radius notch ratios keyed by month length. 31-day months fill the
// full radius; shorter months step down, with the deepest notch reserved
// for 28-day February.
const (
	notchFull    = 1.00 // 31 days
	notchShallow = 0.96 // 30 days
	notchMid     = 0.92 // 29 days (leap February)
	notchDeep    = 0.88 // 28 days
)

// monthNames indexed by 0-based month.
var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// weekdayNames indexed by time.Weekday (Sunday first).
var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// notchRatio maps a month's day count to its outer-radius ratio.
// The ratio is a pure function of (monthIndex, year) through
// daterules.DaysInMonth.
func notchRatio(days int) float64 {
	switch {
	case days >= 31:
		return notchFull
	case days == 30:
		return notchShallow
	case days == 29:
		return notchMid
	default:
		return notchDeep
	}
}

// ringSpec describes the active ring before paths are built: how many
// slices, their values/labels, per-slice outer ratios, and whether the
// ring is a donut.
type ringSpec struct {
	count       int
	innerRadius float64
	slices      []sliceSpec
}

// sliceSpec is one slice of a ringSpec.
type sliceSpec struct {
	value          int
	label          string
	outerRatio     float64
	disabled       bool
	disabledReason string
}

// yearRing builds the 12-month ring for the given year. Month slices all
// span 30°; the notch ratio reflects each month's length.
func (p *Picker) yearRing() ringSpec {
	spec := ringSpec{count: 12}
	for m := 0; m < 12; m++ {
		spec.slices = append(spec.slices, sliceSpec{
			value:      m,
			label:      monthNames[m][:3],
			outerRatio: notchRatio(daterules.DaysInMonth(m, p.year)),
		})
	}
	return spec
}

// monthDaysRing builds the day ring for the given 0-based month. Days
// whose date fails validation are marked disabled with the failure reason.
func (p *Picker) monthDaysRing(month int) ringSpec {
	days := daterules.DaysInMonth(month, p.year)
	spec := ringSpec{count: days, innerRadius: p.surface.Size * innerRadiusFactor}
	for d := 1; d <= days; d++ {
		date := time.Date(p.year, time.Month(month+1), d, 0, 0, 0, 0, time.UTC)
		sl := sliceSpec{value: d, label: fmt.Sprintf("%d", d), outerRatio: notchFull}
		// Validation options are re-evaluated per candidate date, never
		// cached per date.
		if err := daterules.ValidateAt(date, p.now(), p.validation); err != nil {
			sl.disabled = true
			sl.disabledReason = err.Error()
		}
		spec.slices = append(spec.slices, sl)
	}
	return spec
}

// weekRing builds the 7-day ring starting at weekStart.
func (p *Picker) weekRing(weekStart time.Time) ringSpec {
	spec := ringSpec{count: 7, innerRadius: p.surface.Size * innerRadiusFactor}
	for i := 0; i < 7; i++ {
		date := weekStart.AddDate(0, 0, i)
		sl := sliceSpec{
			value:      date.Day(),
			label:      fmt.Sprintf("%s %d", weekdayNames[date.Weekday()], date.Day()),
			outerRatio: notchFull,
		}
		if err := daterules.ValidateAt(date, p.now(), p.validation); err != nil {
			sl.disabled = true
			sl.disabledReason = err.Error()
		}
		spec.slices = append(spec.slices, sl)
	}
	return spec
}

// hoursRing builds the hour ring: 24 slices in 24-hour mode, 12 in
// 12-hour mode (the meridiem is chosen separately).
func (p *Picker) hoursRing() ringSpec {
	if p.is12HourClock {
		spec := ringSpec{count: 12, innerRadius: p.surface.Size * innerRadiusFactor}
		for i := 0; i < 12; i++ {
			display := i
			if display == 0 {
				display = 12
			}
			spec.slices = append(spec.slices, sliceSpec{
				value:      i,
				label:      fmt.Sprintf("%d", display),
				outerRatio: notchFull,
			})
		}
		return spec
	}

	spec := ringSpec{count: 24, innerRadius: p.surface.Size * innerRadiusFactor}
	for h := 0; h < 24; h++ {
		spec.slices = append(spec.slices, sliceSpec{
			value:      h,
			label:      fmt.Sprintf("%d", h),
			outerRatio: notchFull,
		})
	}
	return spec
}

// minutesRing builds the minute ring: twelve 5-minute ticks.
func (p *Picker) minutesRing() ringSpec {
	spec := ringSpec{count: 12, innerRadius: p.surface.Size * innerRadiusFactor}
	for i := 0; i < 12; i++ {
		m := i * 5
		spec.slices = append(spec.slices, sliceSpec{
			value:      m,
			label:      fmt.Sprintf("%02d", m),
			outerRatio: notchFull,
		})
	}
	return spec
}

// activeRing returns the ring spec for the current view frame.
func (p *Picker) activeRing() ringSpec {
	frame := p.nav.Current()
	switch frame.Name {
	case viewstate.ViewMonthDays:
		return p.monthDaysRing(frame.Context.Month)
	case viewstate.ViewWeek:
		return p.weekRing(frame.Context.WeekStart)
	case viewstate.ViewHours:
		return p.hoursRing()
	case viewstate.ViewMinutes:
		return p.minutesRing()
	default:
		return p.yearRing()
	}
}

// buildSegments turns a ring spec into drawable segments. Slices tile the
// full circle evenly, rotated by the ring origin offset so boundaries sit
// on the fixed visual reference. With SVG's y axis pointing down,
// increasing angle runs clockwise, which is the ring's "clockwise =
// increasing unit" convention.
func (p *Picker) buildSegments(spec ringSpec) []Segment {
	size := p.surface.Size
	cx, cy := size/2, size/2
	radius := size * ringRadiusFactor
	sweep := geometry.FullCircleDegrees / float64(spec.count)

	segments := make([]Segment, 0, spec.count)
	for i, sl := range spec.slices {
		start := geometry.RingRotationDegrees + float64(i)*sweep
		end := start + sweep
		lbl := geometry.SegmentLabel(cx, cy, radius, start, end, sl.outerRatio)

		segments = append(segments, Segment{
			Index:          i,
			Value:          sl.value,
			Label:          sl.label,
			Path:           geometry.ArcPath(cx, cy, radius, start, end, sl.outerRatio, spec.innerRadius),
			LabelX:         lbl.X,
			LabelY:         lbl.Y,
			LabelRotation:  lbl.Rotation,
			Disabled:       sl.disabled,
			DisabledReason: sl.disabledReason,
		})
	}
	return segments
}

// indexAt maps a pointer angle (degrees, same convention as the drawn
// ring) to the index of the slice under it for the given ring spec.
func indexAt(spec ringSpec, angleDeg float64) int {
	norm := angleDeg - geometry.RingRotationDegrees
	for norm < 0 {
		norm += geometry.FullCircleDegrees
	}
	for norm >= geometry.FullCircleDegrees {
		norm -= geometry.FullCircleDegrees
	}
	idx := int(norm / (geometry.FullCircleDegrees / float64(spec.count)))
	if idx >= spec.count {
		idx = spec.count - 1
	}
	return idx
}
