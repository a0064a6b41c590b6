package picker

import (
	"github.com/rondelui/rondel/internal/viewstate"
)

// Point is a position on the drawing surface.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment is one ring slice ready to paint: a closed SVG path plus label
// placement and interactivity flags.
type Segment struct {
	// Index is the 0-based position of the slice within its ring.
	Index int `json:"index"`

	// Value is the calendar unit the slice maps to: 0-based month, 1-based
	// day, hour, or minute depending on the ring.
	Value int `json:"value"`

	// Label is the display text for the slice.
	Label string `json:"label"`

	// Path is the closed SVG path for the slice shape.
	Path string `json:"path"`

	// Label placement (anchor plus rotation keeping text upright).
	LabelX        float64 `json:"label_x"`
	LabelY        float64 `json:"label_y"`
	LabelRotation float64 `json:"label_rotation"`

	// Disabled marks slices whose date fails validation. They are painted
	// visually distinct and are not focusable.
	Disabled bool `json:"disabled"`

	// DisabledReason is the validation failure for disabled slices, shown
	// when the user insists on clicking one.
	DisabledReason string `json:"disabled_reason,omitempty"`

	// Selected marks the slice matching the current selection.
	Selected bool `json:"selected"`
}

// MoonIcon describes the moon indicator: where it sits, how big it is, and
// how to shade it. ShadowOffset is the horizontal displacement of an
// opaque shadow disc of the same radius that reproduces the illuminated
// sliver when overlaid on a lit disc.
type MoonIcon struct {
	Center       Point   `json:"center"`
	Radius       float64 `json:"radius"`
	ShadowOffset float64 `json:"shadow_offset"`
	PhaseName    string  `json:"phase_name"`
	Illuminated  float64 `json:"illuminated"`
}

// SunIcon describes the sun indicator position.
type SunIcon struct {
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
}

// CenterDisc is the central circle carrying the current-selection label.
type CenterDisc struct {
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
	Label  string  `json:"label"`
}

// Scene is the full description of what the widget looks like right now.
// It is a plain value: the rendering layer (HTML/SVG, tests) paints it
// without calling back into the picker.
type Scene struct {
	// Size is the square viewbox edge length.
	Size float64 `json:"size"`

	// View names the active ring.
	View viewstate.View `json:"view"`

	// Segments are the slices of the active ring, in ring order.
	Segments []Segment `json:"segments"`

	// Sun and Moon are the indicator icons outside the ring.
	Sun  SunIcon  `json:"sun"`
	Moon MoonIcon `json:"moon"`

	// Center is the central disc with the selection label.
	Center CenterDisc `json:"center"`

	// CanGoBack reports whether a back-navigation control applies.
	CanGoBack bool `json:"can_go_back"`

	// Year is the displayed year.
	Year int `json:"year"`
}
