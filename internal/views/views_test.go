package views

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rondelui/rondel/internal/picker"
)

// testScene builds a deterministic scene for rendering tests.
func testScene(t *testing.T) picker.Scene {
	t.Helper()
	initial := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	p, err := picker.New(&picker.Surface{Size: 400}, picker.Options{
		InitialDate: &initial,
		Now:         func() time.Time { return initial },
	})
	require.NoError(t, err)
	return p.DrawCalendar()
}

func TestWidgetSVG(t *testing.T) {
	var b strings.Builder
	require.NoError(t, WidgetSVG(testScene(t)).Render(context.Background(), &b))
	out := b.String()

	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.True(t, strings.HasSuffix(out, "</svg>"))
	assert.Equal(t, 12, strings.Count(out, `class="segment`), "year view paints twelve month slices")
	assert.Contains(t, out, `class="sun"`)
	assert.Contains(t, out, `class="moon-shadow"`)
	assert.Contains(t, out, "January 15, 2026")
}

func TestWidgetPageWrapsFragment(t *testing.T) {
	var b strings.Builder
	require.NoError(t, WidgetPage(testScene(t), "dark").Render(context.Background(), &b))
	out := b.String()

	assert.Contains(t, out, `class="theme-dark"`)
	assert.Contains(t, out, `id="rondel-widget"`)
	assert.Contains(t, out, "<svg")
}

func TestWidgetPageDefaultsTheme(t *testing.T) {
	var b strings.Builder
	require.NoError(t, WidgetPage(testScene(t), "").Render(context.Background(), &b))
	assert.Contains(t, b.String(), `class="theme-light"`)
}

func TestErrorPageEscapesMessage(t *testing.T) {
	var b strings.Builder
	require.NoError(t, ErrorPage(404, `not <found>`).Render(context.Background(), &b))
	out := b.String()

	assert.Contains(t, out, "404")
	assert.Contains(t, out, "not &lt;found&gt;")
	assert.NotContains(t, out, "<found>")
}
