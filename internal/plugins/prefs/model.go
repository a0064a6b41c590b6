// Package prefs stores per-client widget preferences in Redis. A client is
// identified by the rondel_client cookie set by the widget plugin; the only
// preference today is the theme, but the hash layout leaves room for more.
package prefs

// Preferences holds the stored preferences for one widget client.
type Preferences struct {
	// Theme is the ID of the chosen theme from the themes registry.
	// Empty means "use the default".
	Theme string `json:"theme"`
}
