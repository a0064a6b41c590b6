// Package picker implements the interactive radial calendar core: the
// hierarchical view state machine (year → month days → optional week →
// hours → minutes), per-instance selection state, and scene construction
// for the rendering layer.
//
// A Picker owns all of its mutable state; multiple instances are fully
// independent. Instances are not safe for concurrent use -- the widget is
// event-driven and single-threaded by design, so callers that share an
// instance across goroutines (e.g. HTTP handlers) must serialize access
// themselves.
package picker

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rondelui/rondel/internal/daterules"
	"github.com/rondelui/rondel/internal/viewstate"
)

// DefaultSize is the square viewbox edge used when the surface does not
// specify one.
const DefaultSize = 400.0

// Meridiem values for the 12-hour clock mode.
const (
	MeridiemAM = "AM"
	MeridiemPM = "PM"
)

// midYearAnchorMonth and midYearAnchorDay form the representative
// placeholder date used by SetYear for years other than the current one:
// mid-year, month index 5 (June), day 15. No date is actually selected.
const (
	midYearAnchorMonth = 5
	midYearAnchorDay   = 15
)

// ErrSurfaceRequired is returned by New when no surface handle is given.
// This is the only construction failure; it is fatal to that New call.
var ErrSurfaceRequired = errors.New("picker: surface handle is required")

// Surface is the drawing surface handle the picker renders against. Only
// its dimensions matter to the core; the rendering layer owns the actual
// output medium.
type Surface struct {
	// Size is the square viewbox edge length. Zero means DefaultSize.
	Size float64
}

// Options configures a Picker at construction.
type Options struct {
	// TimeSelectionEnabled turns day selection into the start of a
	// day → hour → minute flow instead of an immediate commit.
	TimeSelectionEnabled bool

	// Is12HourClock renders the hour ring with 12 slices plus a meridiem
	// toggle instead of 24 slices.
	Is12HourClock bool

	// WeekViewEnabled inserts a 7-day week ring between the month-days
	// ring and the hour ring.
	WeekViewEnabled bool

	// Validation controls which dates are selectable. Nil means
	// daterules.DefaultOptions (past allowed, nothing excluded).
	Validation *daterules.Options

	// InitialDate seeds the selected date. Nil means "now".
	InitialDate *time.Time

	// Now overrides the clock, for tests. Nil means time.Now.
	Now func() time.Time
}

// pendingSelection is the transient state accumulated during a multi-step
// day → hour → minute flow. It is committed and cleared only when the
// final unit is chosen.
type pendingSelection struct {
	date     time.Time
	hasDate  bool
	hour24   int
	hasHour  bool
	meridiem string
}

// subscriber pairs a listener with the handle used for unsubscribing.
type subscriber struct {
	id int
	fn func(time.Time)
}

// Picker is one widget instance. All fields are per-instance; no state is
// shared between pickers.
type Picker struct {
	surface Surface

	timeSelectionEnabled bool
	is12HourClock        bool
	weekViewEnabled      bool

	validation daterules.Options
	now        func() time.Time

	year     int
	selected time.Time

	// focus is the date whose center label and moon shading are shown.
	// It tracks the selection but also moves during year-ring drags and
	// SetYear re-anchoring, without a commit.
	focus time.Time

	// sunDate is the date the sun icon is anchored to. It only moves on
	// commit or re-anchoring -- never during a ring drag, because the
	// dragged ring represents calendar position, not solar position.
	sunDate time.Time

	pending pendingSelection
	nav     viewstate.Stack

	subs      []subscriber
	nextSubID int

	dragging    bool
	lastDragSeg int
}

// New creates a picker bound to the given surface. The surface handle is
// the one required construction input; omitting it fails immediately.
func New(surface *Surface, opts Options) (*Picker, error) {
	if surface == nil {
		return nil, ErrSurfaceRequired
	}

	s := *surface
	if s.Size <= 0 {
		s.Size = DefaultSize
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	validation := daterules.DefaultOptions()
	if opts.Validation != nil {
		validation = *opts.Validation
	}

	initial := now()
	if opts.InitialDate != nil {
		initial = *opts.InitialDate
	}

	return &Picker{
		surface:              s,
		timeSelectionEnabled: opts.TimeSelectionEnabled,
		is12HourClock:        opts.Is12HourClock,
		weekViewEnabled:      opts.WeekViewEnabled,
		validation:           validation,
		now:                  now,
		year:                 initial.Year(),
		selected:             initial,
		focus:                initial,
		sunDate:              initial,
		lastDragSeg:          -1,
	}, nil
}

// --- Accessors ---

// Year returns the displayed year.
func (p *Picker) Year() int { return p.year }

// SelectedDate returns the authoritative selected date.
func (p *Picker) SelectedDate() time.Time { return p.selected }

// View returns the active view name.
func (p *Picker) View() viewstate.View { return p.nav.Current().Name }

// CanGoBack reports whether back-navigation would change the view.
func (p *Picker) CanGoBack() bool { return p.nav.CanGoBack() }

// --- Subscriptions ---

// Subscribe registers fn to be invoked with every committed date, in
// insertion order. The returned function unregisters the listener and is
// idempotent.
func (p *Picker) Subscribe(fn func(time.Time)) func() {
	id := p.nextSubID
	p.nextSubID++
	p.subs = append(p.subs, subscriber{id: id, fn: fn})

	return func() {
		for i, s := range p.subs {
			if s.id == id {
				p.subs = append(p.subs[:i], p.subs[i+1:]...)
				return
			}
		}
	}
}

// notify delivers a committed date to every subscriber. Each listener is
// isolated: a panicking subscriber is logged and skipped, and must not
// block delivery to the rest or escape into the commit path. Listeners
// receive their own copy of the date value.
func (p *Picker) notify(d time.Time) {
	for _, s := range p.subs {
		p.deliver(s, d)
	}
}

// deliver invokes one subscriber with panic isolation.
func (p *Picker) deliver(s subscriber, d time.Time) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("date subscriber panicked",
				slog.Int("subscriber", s.id),
				slog.Any("panic", r),
			)
		}
	}()
	s.fn(d)
}

// commit finalizes a selection: it updates the authoritative date,
// re-anchors the sun/moon/label, notifies subscribers exactly once, and --
// when the commit ends a flow -- collapses the view hierarchy back to the
// year ring. Continuous drag commits keep the current view.
func (p *Picker) commit(d time.Time, endOfFlow bool) {
	p.selected = d
	p.focus = d
	p.sunDate = d
	p.year = d.Year()

	if endOfFlow {
		p.nav.Reset()
		p.pending = pendingSelection{}
	}

	p.notify(d)
}

// --- Public selection API ---

// SelectDate validates the date and commits it, collapsing any active
// sub-view. On validation failure the error carries the reason and the
// selected date is left untouched.
func (p *Picker) SelectDate(d time.Time) error {
	if err := daterules.ValidateAt(d, p.now(), p.validation); err != nil {
		return err
	}
	p.commit(d, true)
	return nil
}

// SetYear changes the displayed year. For the real current year the
// sun/moon/label re-center on today; for any other year a fixed mid-year
// anchor (June 15) stands in, since no date in that year is selected yet.
func (p *Picker) SetYear(year int) {
	p.year = year

	anchor := time.Date(year, time.Month(midYearAnchorMonth+1), midYearAnchorDay, 0, 0, 0, 0, time.UTC)
	if now := p.now(); now.Year() == year {
		anchor = now
	}
	p.focus = anchor
	p.sunDate = anchor
}

// GoToToday re-centers on the real current year and commits today,
// collapsing any active sub-view. Today may itself fail validation, in
// which case the error is returned and nothing is committed.
func (p *Picker) GoToToday() error {
	now := p.now()
	p.SetYear(now.Year())
	return p.SelectDate(now)
}

// SetTimeSelectionOptions hot-swaps the time-selection mode. Any in-flight
// pending selection is cleared, and if a time ring is currently showing
// the view collapses back to the year ring.
func (p *Picker) SetTimeSelectionOptions(timeSelectionEnabled, is12HourClock bool) {
	p.timeSelectionEnabled = timeSelectionEnabled
	p.is12HourClock = is12HourClock
	p.pending = pendingSelection{}

	switch p.nav.Current().Name {
	case viewstate.ViewHours, viewstate.ViewMinutes:
		p.nav.Reset()
	}
}

// SetValidationOptions replaces the date-acceptability rules. Rules are
// re-evaluated per candidate date on every use, so the change takes effect
// immediately.
func (p *Picker) SetValidationOptions(opts daterules.Options) {
	p.validation = opts
}

// --- Ring interactions (the state machine transitions) ---

// SelectMonth drills from the year ring into the month-days ring for the
// given 0-based month.
func (p *Picker) SelectMonth(month int) error {
	if p.nav.Current().Name != viewstate.ViewYear {
		return fmt.Errorf("picker: month selection applies to the year ring, not %q", p.nav.Current().Name)
	}
	if month < 0 || month > 11 {
		return fmt.Errorf("picker: month index %d out of range", month)
	}

	p.nav.Push(viewstate.ViewMonthDays, viewstate.Context{Month: month})
	p.focus = clampToMonth(p.focus, month, p.year)
	return nil
}

// SelectDay handles a day pick on the month-days or week ring. Depending
// on configuration it either drills into the week ring, starts the time
// flow, or commits the date outright. Restricted days fail with the
// validation reason -- a click on a disabled slice re-runs validation
// rather than being silently ignored.
func (p *Picker) SelectDay(day int) error {
	frame := p.nav.Current()

	var date time.Time
	switch frame.Name {
	case viewstate.ViewMonthDays:
		days := daterules.DaysInMonth(frame.Context.Month, p.year)
		if day < 1 || day > days {
			return fmt.Errorf("picker: day %d out of range for month %d", day, frame.Context.Month)
		}
		date = time.Date(p.year, time.Month(frame.Context.Month+1), day, 0, 0, 0, 0, time.UTC)
	case viewstate.ViewWeek:
		found := false
		for i := 0; i < 7; i++ {
			d := frame.Context.WeekStart.AddDate(0, 0, i)
			if d.Day() == day {
				date = d
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("picker: day %d is not in the displayed week", day)
		}
	default:
		return fmt.Errorf("picker: day selection applies to the day rings, not %q", frame.Name)
	}

	if err := daterules.ValidateAt(date, p.now(), p.validation); err != nil {
		return err
	}

	// Month-days ring with week view on: drill into the week first.
	if frame.Name == viewstate.ViewMonthDays && p.weekViewEnabled {
		p.nav.Push(viewstate.ViewWeek, viewstate.Context{
			Month:     frame.Context.Month,
			WeekStart: startOfWeek(date),
		})
		p.focus = date
		return nil
	}

	if p.timeSelectionEnabled {
		p.pending.date = date
		p.pending.hasDate = true
		p.nav.Push(viewstate.ViewHours, viewstate.Context{
			Month: int(date.Month()) - 1,
			Day:   date.Day(),
		})
		p.focus = date
		return nil
	}

	p.commit(date, true)
	return nil
}

// SetMeridiem sets the AM/PM half for the 12-hour clock mode. Ignored
// (with an error) outside 12-hour mode.
func (p *Picker) SetMeridiem(meridiem string) error {
	if !p.is12HourClock {
		return errors.New("picker: meridiem applies only to the 12-hour clock")
	}
	if meridiem != MeridiemAM && meridiem != MeridiemPM {
		return fmt.Errorf("picker: unknown meridiem %q", meridiem)
	}
	p.pending.meridiem = meridiem
	return nil
}

// SelectHour handles an hour pick. In 24-hour mode hour is 0-23; in
// 12-hour mode it is the ring value 0-11 (0 standing for 12) combined
// with the pending meridiem, defaulting to AM.
func (p *Picker) SelectHour(hour int) error {
	if p.nav.Current().Name != viewstate.ViewHours {
		return fmt.Errorf("picker: hour selection applies to the hour ring, not %q", p.nav.Current().Name)
	}

	var hour24 int
	if p.is12HourClock {
		if hour < 0 || hour > 11 {
			return fmt.Errorf("picker: hour %d out of range for the 12-hour ring", hour)
		}
		hour24 = hour
		if p.pending.meridiem == MeridiemPM {
			hour24 += 12
		}
	} else {
		if hour < 0 || hour > 23 {
			return fmt.Errorf("picker: hour %d out of range", hour)
		}
		hour24 = hour
	}

	p.pending.hour24 = hour24
	p.pending.hasHour = true

	frame := p.nav.Current()
	p.nav.Push(viewstate.ViewMinutes, viewstate.Context{
		Month:  frame.Context.Month,
		Day:    frame.Context.Day,
		Hour24: hour24,
	})
	return nil
}

// SelectMinute completes the time flow: the fully assembled date (day +
// hour + minute) is committed, the pending selection cleared, and the
// view collapses back to the year ring.
func (p *Picker) SelectMinute(minute int) error {
	if p.nav.Current().Name != viewstate.ViewMinutes {
		return fmt.Errorf("picker: minute selection applies to the minute ring, not %q", p.nav.Current().Name)
	}
	if minute < 0 || minute > 59 {
		return fmt.Errorf("picker: minute %d out of range", minute)
	}
	if !p.pending.hasDate || !p.pending.hasHour {
		return errors.New("picker: no pending day/hour to complete")
	}

	d := p.pending.date
	assembled := time.Date(d.Year(), d.Month(), d.Day(), p.pending.hour24, minute, 0, 0, d.Location())
	p.commit(assembled, true)
	return nil
}

// Back pops one frame off the navigation stack and re-enters the restored
// state. The pending selection is trimmed to match what the restored
// frame still knows: returning to the year ring abandons the whole flow,
// returning to a day ring drops the staged hour, and returning to the
// hour ring keeps day and hour (no minute was ever staged). Back on the
// root is a no-op.
func (p *Picker) Back() {
	restored := p.nav.Pop()
	if restored == nil {
		return
	}

	switch restored.Name {
	case viewstate.ViewYear:
		p.pending = pendingSelection{}
	case viewstate.ViewMonthDays, viewstate.ViewWeek:
		p.pending.hasHour = false
	}
}

// --- Scene construction ---

// DrawCalendar computes the full scene for the current state: the active
// ring's segments, the sun/moon icons, and the center disc.
func (p *Picker) DrawCalendar() Scene {
	spec := p.activeRing()
	segments := p.buildSegments(spec)
	p.markSelected(segments)

	return Scene{
		Size:      p.surface.Size,
		View:      p.nav.Current().Name,
		Segments:  segments,
		Sun:       sunIcon(p.surface, p.sunDate),
		Moon:      moonIcon(p.surface, p.focus),
		Center:    p.DrawCircle(),
		CanGoBack: p.nav.CanGoBack(),
		Year:      p.year,
	}
}

// DrawCircle computes the center disc with the label for the current
// state.
func (p *Picker) DrawCircle() CenterDisc {
	size := p.surface.Size
	return CenterDisc{
		Center: Point{X: size / 2, Y: size / 2},
		Radius: size * centerDiscFactor,
		Label:  p.centerLabel(),
	}
}

// centerLabel formats the label for the current view.
func (p *Picker) centerLabel() string {
	frame := p.nav.Current()
	switch frame.Name {
	case viewstate.ViewMonthDays:
		return fmt.Sprintf("%s %d", monthNames[frame.Context.Month], p.year)
	case viewstate.ViewWeek:
		return "Week of " + frame.Context.WeekStart.Format("Jan 2")
	case viewstate.ViewHours:
		return p.pending.date.Format("Jan 2") + " · pick an hour"
	case viewstate.ViewMinutes:
		return fmt.Sprintf("%s · %02d:--", p.pending.date.Format("Jan 2"), p.pending.hour24)
	default:
		return p.focus.Format("January 2, 2006")
	}
}

// markSelected flags the segment matching the current selection, if it is
// on the displayed ring.
func (p *Picker) markSelected(segments []Segment) {
	frame := p.nav.Current()

	switch frame.Name {
	case viewstate.ViewYear:
		if p.selected.Year() != p.year {
			return
		}
		want := int(p.selected.Month()) - 1
		for i := range segments {
			if segments[i].Value == want {
				segments[i].Selected = true
			}
		}
	case viewstate.ViewMonthDays:
		if p.selected.Year() != p.year || int(p.selected.Month())-1 != frame.Context.Month {
			return
		}
		for i := range segments {
			if segments[i].Value == p.selected.Day() {
				segments[i].Selected = true
			}
		}
	case viewstate.ViewHours:
		if !p.pending.hasHour {
			return
		}
		want := p.pending.hour24
		if p.is12HourClock {
			want = want % 12
		}
		for i := range segments {
			if segments[i].Value == want {
				segments[i].Selected = true
			}
		}
	}
}

// --- Helpers ---

// clampToMonth moves t into the given 0-based month of year, clamping the
// day to the month's length.
func clampToMonth(t time.Time, month, year int) time.Time {
	day := t.Day()
	if max := daterules.DaysInMonth(month, year); day > max {
		day = max
	}
	return time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC)
}

// startOfWeek returns the Sunday beginning the week containing t.
func startOfWeek(t time.Time) time.Time {
	d := daterules.DateOnly(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}
