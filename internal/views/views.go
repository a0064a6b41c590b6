// Package views renders the widget's HTML pages and the scene→SVG
// serialization. Components are templ.Component values so handlers render
// them uniformly through middleware.Render; they are built directly with
// templ.ComponentFunc since the markup is dominated by computed SVG
// geometry rather than static template text.
package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/rondelui/rondel/internal/picker"
)

// DefaultTheme is used when a client has no stored theme preference.
const DefaultTheme = "light"

// WidgetPage is the full picker page: document shell, theme class, the
// SVG widget, and its control strip.
func WidgetPage(scene picker.Scene, theme string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if theme == "" {
			theme = DefaultTheme
		}
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en" class="theme-%s"><head><meta charset="utf-8">`+
				`<meta name="viewport" content="width=device-width, initial-scale=1">`+
				`<title>Rondel</title>`+
				`<link rel="stylesheet" href="/static/css/rondel.css">`+
				`<script src="https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js" defer></script>`+
				`<script src="/static/js/rondel.js" defer></script>`+
				`</head><body><main class="rondel-page">`,
			templ.EscapeString(theme),
		); err != nil {
			return err
		}
		if err := WidgetFragment(scene).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// WidgetFragment is the widget itself: the SVG plus the control strip.
// Served standalone for HTMX re-renders after each interaction.
func WidgetFragment(scene picker.Scene) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div id="rondel-widget" class="rondel-widget" data-view="%s">`,
			templ.EscapeString(string(scene.View))); err != nil {
			return err
		}
		if err := WidgetSVG(scene).Render(ctx, w); err != nil {
			return err
		}
		if err := controls(scene).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// WidgetSVG serializes a scene to SVG. This is the paint step: everything
// positional was already computed by the picker, so this stays a plain
// transcription.
func WidgetSVG(scene picker.Scene) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		size := scene.Size

		if _, err := fmt.Fprintf(w,
			`<svg class="rondel-svg" viewBox="0 0 %.0f %.0f" role="img" aria-label="Radial calendar, %s view">`,
			size, size, templ.EscapeString(string(scene.View))); err != nil {
			return err
		}

		// Ring segments.
		for _, seg := range scene.Segments {
			class := "segment"
			if seg.Disabled {
				class += " disabled"
			}
			if seg.Selected {
				class += " selected"
			}
			if _, err := fmt.Fprintf(w,
				`<path class="%s" d="%s" data-value="%d"%s/>`,
				class, seg.Path, seg.Value, segmentTitle(seg)); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w,
				`<text class="segment-label" x="%.3f" y="%.3f" transform="rotate(%.3f %.3f %.3f)" text-anchor="middle">%s</text>`,
				seg.LabelX, seg.LabelY, seg.LabelRotation, seg.LabelX, seg.LabelY,
				templ.EscapeString(seg.Label)); err != nil {
				return err
			}
		}

		// Center disc and label.
		if _, err := fmt.Fprintf(w,
			`<circle class="center-disc" cx="%.3f" cy="%.3f" r="%.3f"/>`+
				`<text class="center-label" x="%.3f" y="%.3f" text-anchor="middle">%s</text>`,
			scene.Center.Center.X, scene.Center.Center.Y, scene.Center.Radius,
			scene.Center.Center.X, scene.Center.Center.Y,
			templ.EscapeString(scene.Center.Label)); err != nil {
			return err
		}

		// Sun.
		if _, err := fmt.Fprintf(w,
			`<circle class="sun" cx="%.3f" cy="%.3f" r="%.3f"/>`,
			scene.Sun.Center.X, scene.Sun.Center.Y, scene.Sun.Radius); err != nil {
			return err
		}

		// Moon: a lit disc with an opaque shadow disc offset horizontally,
		// clipped to the moon outline so only the illuminated sliver shows.
		m := scene.Moon
		if _, err := fmt.Fprintf(w,
			`<g class="moon" aria-label="%s">`+
				`<clipPath id="moon-clip"><circle cx="%.3f" cy="%.3f" r="%.3f"/></clipPath>`+
				`<circle class="moon-lit" cx="%.3f" cy="%.3f" r="%.3f"/>`+
				`<circle class="moon-shadow" cx="%.3f" cy="%.3f" r="%.3f" clip-path="url(#moon-clip)"/>`+
				`</g>`,
			templ.EscapeString(m.PhaseName),
			m.Center.X, m.Center.Y, m.Radius,
			m.Center.X, m.Center.Y, m.Radius,
			m.Center.X+m.ShadowOffset, m.Center.Y, m.Radius); err != nil {
			return err
		}

		_, err := io.WriteString(w, `</svg>`)
		return err
	})
}

// controls renders the control strip under the widget: back, today, and
// the year stepper, wired as HTMX fragment swaps.
func controls(scene picker.Scene) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="rondel-controls">`); err != nil {
			return err
		}
		if scene.CanGoBack {
			if _, err := io.WriteString(w,
				`<button hx-post="/widget/back" hx-target="#rondel-widget" hx-swap="outerHTML">Back</button>`); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w,
			`<button hx-post="/widget/year?year=%d" hx-target="#rondel-widget" hx-swap="outerHTML">‹ %d</button>`+
				`<span class="rondel-year">%d</span>`+
				`<button hx-post="/widget/year?year=%d" hx-target="#rondel-widget" hx-swap="outerHTML">%d ›</button>`+
				`<button hx-post="/widget/today" hx-target="#rondel-widget" hx-swap="outerHTML">Today</button>`,
			scene.Year-1, scene.Year-1, scene.Year, scene.Year+1, scene.Year+1); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// segmentTitle returns a title attribute for disabled segments so the
// failure reason is reachable without a click.
func segmentTitle(seg picker.Segment) string {
	if seg.DisabledReason == "" {
		return ""
	}
	return fmt.Sprintf(` title="%s"`, templ.EscapeString(seg.DisabledReason))
}

// ErrorPage is the browser-facing error page used by the central error
// handler.
func ErrorPage(code int, message string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Error %d</title></head>`+
				`<body><main class="rondel-error"><h1>%d</h1><p>%s</p><a href="/">Back to the calendar</a></main></body></html>`,
			code, code, templ.EscapeString(message))
		return err
	})
}
