package prefs

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/rondelui/rondel/internal/apperror"
	"github.com/rondelui/rondel/internal/views"
)

// newTestService spins up an in-memory Redis and wires the real repository
// against it, so tests exercise the actual key layout and TTL handling.
func newTestService(t *testing.T) (PrefsService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewPrefsService(NewPrefsRepository(rdb)), mr
}

func TestGet_DefaultsForNewClient(t *testing.T) {
	svc, _ := newTestService(t)

	p, err := svc.Get(context.Background(), "client-a")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if p.Theme != views.DefaultTheme {
		t.Errorf("theme = %q, want default %q", p.Theme, views.DefaultTheme)
	}
}

func TestSetTheme_RoundTrip(t *testing.T) {
	svc, mr := newTestService(t)

	if err := svc.SetTheme(context.Background(), "client-a", "dark"); err != nil {
		t.Fatalf("SetTheme returned error: %v", err)
	}

	p, err := svc.Get(context.Background(), "client-a")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if p.Theme != "dark" {
		t.Errorf("theme = %q, want %q", p.Theme, "dark")
	}

	// The stored key carries a TTL so abandoned clients expire.
	if mr.TTL("rondel:prefs:client-a") <= 0 {
		t.Error("preference key has no TTL")
	}
}

func TestSetTheme_RejectsUnknownTheme(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.SetTheme(context.Background(), "client-a", "sepia")
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected validation error, got %v", err)
	}

	// The rejected theme must not have been stored.
	p, err := svc.Get(context.Background(), "client-a")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if p.Theme != views.DefaultTheme {
		t.Errorf("theme = %q after rejected write, want default", p.Theme)
	}
}

func TestGet_FallsBackWhenStoredThemeRetired(t *testing.T) {
	svc, mr := newTestService(t)

	// Simulate a theme that existed in an older release.
	mr.HSet("rondel:prefs:client-a", "theme", "solarized")

	p, err := svc.Get(context.Background(), "client-a")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if p.Theme != views.DefaultTheme {
		t.Errorf("theme = %q, want fallback to default for a retired theme", p.Theme)
	}
}

func TestReset_RemovesStoredPreferences(t *testing.T) {
	svc, mr := newTestService(t)

	if err := svc.SetTheme(context.Background(), "client-a", "contrast"); err != nil {
		t.Fatalf("SetTheme returned error: %v", err)
	}
	if err := svc.Reset(context.Background(), "client-a"); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}
	if mr.Exists("rondel:prefs:client-a") {
		t.Error("preference key still present after reset")
	}
}

func TestClientIDRequired(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Get(context.Background(), ""); err == nil {
		t.Error("Get with empty client ID did not fail")
	}
	if err := svc.SetTheme(context.Background(), "", "dark"); err == nil {
		t.Error("SetTheme with empty client ID did not fail")
	}
	if err := svc.Reset(context.Background(), ""); err == nil {
		t.Error("Reset with empty client ID did not fail")
	}
}

func TestPreferencesAreIsolatedPerClient(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.SetTheme(context.Background(), "client-a", "dark"); err != nil {
		t.Fatalf("SetTheme returned error: %v", err)
	}

	p, err := svc.Get(context.Background(), "client-b")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if p.Theme != views.DefaultTheme {
		t.Errorf("client-b theme = %q, want default", p.Theme)
	}
}
