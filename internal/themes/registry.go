// Package themes defines the theme registry for Rondel. Themes are CSS
// variable sets shipped with the widget; a client picks one and the choice
// is stored as a preference. The registry is the canonical list the
// preferences API validates against.
package themes

// ThemeInfo holds metadata about a registered theme.
type ThemeInfo struct {
	// ID is the unique machine-readable identifier (e.g., "dark").
	ID string

	// Name is the human-readable display name.
	Name string

	// Description is a short summary of the theme's look.
	Description string

	// CSSClass is the class applied to the document root (e.g., "theme-dark").
	CSSClass string
}

// Registry returns the list of all shipped themes. This is the canonical
// source of truth for what themes exist in Rondel.
func Registry() []ThemeInfo {
	return []ThemeInfo{
		{
			ID:          "light",
			Name:        "Light",
			Description: "Warm parchment rings with a golden sun. The default.",
			CSSClass:    "theme-light",
		},
		{
			ID:          "dark",
			Name:        "Dark",
			Description: "Slate rings on a night sky, tuned for dark host pages.",
			CSSClass:    "theme-dark",
		},
		{
			ID:          "contrast",
			Name:        "High Contrast",
			Description: "Black-on-white rings with thick outlines for low-vision use.",
			CSSClass:    "theme-contrast",
		},
	}
}

// Find returns the theme info for a given ID, or nil if not found.
func Find(id string) *ThemeInfo {
	for _, t := range Registry() {
		if t.ID == id {
			return &t
		}
	}
	return nil
}
