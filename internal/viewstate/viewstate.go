// Package viewstate tracks the picker's navigation hierarchy: a LIFO stack
// of view frames recording how the user drilled from the year ring down
// toward minutes. The stack is the single source of truth for what a
// back-navigation signal should restore.
package viewstate

import "time"

// View identifies one of the concentric interaction surfaces.
type View string

const (
	ViewYear      View = "year"
	ViewMonthDays View = "monthDays"
	ViewWeek      View = "week"
	ViewHours     View = "hours"
	ViewMinutes   View = "minutes"
)

// Context carries the per-frame selection context: which month/day the
// frame was entered for, and the week start when the week view is active.
// Fields that do not apply to a view are left at their zero value.
type Context struct {
	// Month is the 0-based month index for monthDays and deeper frames.
	Month int

	// Day is the day-of-month once a day has been picked.
	Day int

	// Hour24 is the chosen hour (0-23) once an hour has been picked.
	Hour24 int

	// WeekStart is the first day of the displayed week for week frames.
	WeekStart time.Time
}

// Frame is one entry in the navigation hierarchy.
type Frame struct {
	Name    View
	Context Context
}

// Root returns the implicit root frame. The root is never pushed onto the
// stack; it is what the stack "contains" when empty.
func Root() Frame {
	return Frame{Name: ViewYear}
}

// Stack is the navigation stack, ordered root-to-leaf. The zero value is
// ready to use.
type Stack struct {
	frames []Frame
}

// Push appends a frame for the given view.
func (s *Stack) Push(name View, ctx Context) {
	s.frames = append(s.frames, Frame{Name: name, Context: ctx})
}

// Pop removes the top frame and returns the frame that becomes current:
// the new top, or the implicit root when the stack empties. Popping an
// already-empty stack is a true no-op and returns nil, which callers can
// distinguish from "returned to root".
func (s *Stack) Pop() *Frame {
	if len(s.frames) == 0 {
		return nil
	}
	s.frames = s.frames[:len(s.frames)-1]
	current := s.Current()
	return &current
}

// Current returns the top frame without mutating the stack, or the
// implicit root when the stack is empty.
func (s *Stack) Current() Frame {
	if len(s.frames) == 0 {
		return Root()
	}
	return s.frames[len(s.frames)-1]
}

// CanGoBack reports whether there is any pushed frame to pop.
func (s *Stack) CanGoBack() bool {
	return len(s.frames) > 0
}

// Depth returns the number of pushed frames (the root does not count).
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Reset drops every pushed frame, returning to the implicit root.
func (s *Stack) Reset() {
	s.frames = s.frames[:0]
}
