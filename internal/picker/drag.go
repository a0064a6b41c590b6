package picker

import (
	"time"

	"github.com/rondelui/rondel/internal/daterules"
	"github.com/rondelui/rondel/internal/viewstate"
)

// Drag-to-select. A pointer captured on the active ring reports an
// explicit start/move/end sequence; each move maps the pointer angle to
// the unit under it and applies the same selection logic as a discrete
// click, continuously rather than only on release.
//
// The sequence is tolerant of event loss: a move or end without a
// preceding start is a no-op, and a second start while already dragging
// does not re-register.

// DragStart begins a pointer-drag sequence on the active ring.
func (p *Picker) DragStart() {
	if p.dragging {
		return
	}
	p.dragging = true
	p.lastDragSeg = -1
}

// DragMove handles a pointer move at the given angle (degrees, ring
// convention) during a drag. On the year ring the month under the pointer
// updates the center label and moon live while the sun stays anchored --
// the ring being dragged represents calendar position, not solar
// position. On the day rings each newly entered, valid day commits
// immediately without collapsing the view. Time rings do not drag-select.
func (p *Picker) DragMove(angleDeg float64) {
	if !p.dragging {
		return
	}

	frame := p.nav.Current()
	spec := p.activeRing()
	idx := indexAt(spec, angleDeg)
	if idx == p.lastDragSeg {
		return
	}
	p.lastDragSeg = idx

	switch frame.Name {
	case viewstate.ViewYear:
		p.focus = clampToMonth(p.focus, spec.slices[idx].value, p.year)

	case viewstate.ViewMonthDays:
		date := time.Date(p.year, time.Month(frame.Context.Month+1), spec.slices[idx].value, 0, 0, 0, 0, time.UTC)
		p.dragCommit(date)

	case viewstate.ViewWeek:
		p.dragCommit(frame.Context.WeekStart.AddDate(0, 0, idx))
	}
}

// DragEnd finishes a drag sequence.
func (p *Picker) DragEnd() {
	if !p.dragging {
		return
	}
	p.dragging = false
	p.lastDragSeg = -1
}

// dragCommit commits a drag-entered date if it passes validation,
// keeping the current view so the drag can continue. Restricted dates
// are skipped silently -- there is no click to answer with a reason.
func (p *Picker) dragCommit(date time.Time) {
	if err := daterules.ValidateAt(date, p.now(), p.validation); err != nil {
		return
	}
	p.commit(date, false)
}
