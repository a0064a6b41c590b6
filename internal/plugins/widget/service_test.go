package widget

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rondelui/rondel/internal/daterules"
	"github.com/rondelui/rondel/internal/picker"
	"github.com/rondelui/rondel/internal/viewstate"
)

// compilerFunc adapts a closure to the RuleCompiler interface.
type compilerFunc func(ctx context.Context, base daterules.Options) (daterules.Options, error)

func (f compilerFunc) Compile(ctx context.Context, base daterules.Options) (daterules.Options, error) {
	return f(ctx, base)
}

// newTestService builds a registry with a controllable clock and no
// background sweeper interference (the sweeper only fires on minute ticks,
// far beyond a test's lifetime).
func newTestService(t *testing.T, cfg Config, rules RuleCompiler) *widgetService {
	t.Helper()
	svc := NewWidgetService(cfg, rules).(*widgetService)
	t.Cleanup(svc.Close)
	return svc
}

func TestScene_CreatesAndReusesInstance(t *testing.T) {
	svc := newTestService(t, Config{Size: 400, AllowPastDates: true}, nil)
	ctx := context.Background()

	scene, err := svc.Scene(ctx, "client-a")
	if err != nil {
		t.Fatalf("Scene returned error: %v", err)
	}
	if scene.View != viewstate.ViewYear {
		t.Errorf("fresh instance view = %q, want year", scene.View)
	}

	// Drill into March; the instance must persist across calls.
	scene, err = svc.Interact(ctx, "client-a", func(p *picker.Picker) error {
		return p.SelectMonth(2)
	})
	if err != nil {
		t.Fatalf("Interact returned error: %v", err)
	}
	if scene.View != viewstate.ViewMonthDays {
		t.Errorf("view after month pick = %q, want monthDays", scene.View)
	}

	scene, err = svc.Scene(ctx, "client-a")
	if err != nil {
		t.Fatalf("Scene returned error: %v", err)
	}
	if scene.View != viewstate.ViewMonthDays {
		t.Errorf("view on re-fetch = %q, want monthDays to survive", scene.View)
	}
	if len(svc.instances) != 1 {
		t.Errorf("registry holds %d instances, want 1", len(svc.instances))
	}
}

func TestInstancesAreIsolatedPerClient(t *testing.T) {
	svc := newTestService(t, Config{Size: 400, AllowPastDates: true}, nil)
	ctx := context.Background()

	if _, err := svc.Interact(ctx, "client-a", func(p *picker.Picker) error {
		return p.SelectMonth(5)
	}); err != nil {
		t.Fatalf("Interact returned error: %v", err)
	}

	scene, err := svc.Scene(ctx, "client-b")
	if err != nil {
		t.Fatalf("Scene returned error: %v", err)
	}
	if scene.View != viewstate.ViewYear {
		t.Errorf("client-b view = %q, want an untouched year ring", scene.View)
	}
}

func TestInteract_ReturnsSceneAlongsideValidationError(t *testing.T) {
	blocked := time.Date(2026, time.March, 17, 0, 0, 0, 0, time.UTC)
	rules := compilerFunc(func(ctx context.Context, base daterules.Options) (daterules.Options, error) {
		base.DisabledDates = append(base.DisabledDates, blocked)
		return base, nil
	})
	svc := newTestService(t, Config{Size: 400, AllowPastDates: true}, rules)
	ctx := context.Background()

	scene, err := svc.Interact(ctx, "client-a", func(p *picker.Picker) error {
		return p.SelectDate(blocked)
	})

	var vErr *daterules.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if scene.View != viewstate.ViewYear {
		t.Errorf("rejected pick still produced a scene change: view = %q", scene.View)
	}
}

func TestSelection_RecordsCommits(t *testing.T) {
	svc := newTestService(t, Config{Size: 400, AllowPastDates: true}, nil)
	ctx := context.Background()

	if _, ok, err := svc.Selection(ctx, "client-a"); err != nil || ok {
		t.Fatalf("fresh instance Selection = (%v, %v), want no selection", ok, err)
	}

	want := time.Date(2026, time.April, 8, 0, 0, 0, 0, time.UTC)
	if _, err := svc.Interact(ctx, "client-a", func(p *picker.Picker) error {
		return p.SelectDate(want)
	}); err != nil {
		t.Fatalf("Interact returned error: %v", err)
	}

	got, ok, err := svc.Selection(ctx, "client-a")
	if err != nil || !ok {
		t.Fatalf("Selection = (%v, %v), want a recorded commit", ok, err)
	}
	if !got.Equal(want) {
		t.Errorf("recorded selection = %v, want %v", got, want)
	}
}

func TestScene_PropagatesCompileError(t *testing.T) {
	boom := errors.New("restrictions unavailable")
	rules := compilerFunc(func(ctx context.Context, base daterules.Options) (daterules.Options, error) {
		return base, boom
	})
	svc := newTestService(t, Config{Size: 400}, rules)

	if _, err := svc.Scene(context.Background(), "client-a"); !errors.Is(err, boom) {
		t.Fatalf("Scene error = %v, want the compile failure", err)
	}
	if len(svc.instances) != 0 {
		t.Error("failed instance creation left a registry entry")
	}
}

func TestRefreshRules_AppliesToLiveInstances(t *testing.T) {
	blocked := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	var active bool
	rules := compilerFunc(func(ctx context.Context, base daterules.Options) (daterules.Options, error) {
		if active {
			base.DisabledDates = append(base.DisabledDates, blocked)
		}
		return base, nil
	})
	svc := newTestService(t, Config{Size: 400, AllowPastDates: true}, rules)
	ctx := context.Background()

	// The instance is created before the rule exists, so the date commits.
	if _, err := svc.Interact(ctx, "client-a", func(p *picker.Picker) error {
		return p.SelectDate(blocked)
	}); err != nil {
		t.Fatalf("pick before the rule change failed: %v", err)
	}

	active = true
	if err := svc.RefreshRules(ctx); err != nil {
		t.Fatalf("RefreshRules returned error: %v", err)
	}

	_, err := svc.Interact(ctx, "client-a", func(p *picker.Picker) error {
		return p.SelectDate(blocked)
	})
	var vErr *daterules.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("pick after the rule change = %v, want a validation error", err)
	}
}

func TestEvictIdle_DropsOnlyExpiredInstances(t *testing.T) {
	svc := newTestService(t, Config{Size: 400, InstanceTTL: 30 * time.Minute}, nil)
	ctx := context.Background()

	base := time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	if _, err := svc.Scene(ctx, "stale"); err != nil {
		t.Fatalf("Scene returned error: %v", err)
	}

	svc.now = func() time.Time { return base.Add(25 * time.Minute) }
	if _, err := svc.Scene(ctx, "fresh"); err != nil {
		t.Fatalf("Scene returned error: %v", err)
	}

	svc.now = func() time.Time { return base.Add(45 * time.Minute) }
	svc.evictIdle(30 * time.Minute)

	if _, ok := svc.instances["stale"]; ok {
		t.Error("idle instance survived eviction")
	}
	if _, ok := svc.instances["fresh"]; !ok {
		t.Error("active instance was evicted")
	}
}
