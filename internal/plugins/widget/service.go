// Package widget serves the radial calendar over HTTP. Each browser client
// (identified by the rondel_client cookie) gets its own picker instance,
// kept in an in-memory registry; every interaction endpoint routes through
// the registry so access to the single-threaded picker core is serialized.
package widget

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rondelui/rondel/internal/daterules"
	"github.com/rondelui/rondel/internal/picker"
)

// RuleCompiler resolves the active date restrictions into validation
// options. Implemented by the restrictions plugin; declared here so the
// widget does not depend on its storage layer.
type RuleCompiler interface {
	Compile(ctx context.Context, base daterules.Options) (daterules.Options, error)
}

// Config carries the deployment-level picker settings from the app config.
type Config struct {
	// Size is the square viewbox edge for new instances.
	Size float64

	// TimeSelectionEnabled turns day picks into a day → hour → minute flow.
	TimeSelectionEnabled bool

	// Is12HourClock renders 12 hour slices plus a meridiem toggle.
	Is12HourClock bool

	// WeekViewEnabled inserts the 7-day ring between month days and hours.
	WeekViewEnabled bool

	// AllowPastDates permits selecting dates before today.
	AllowPastDates bool

	// InstanceTTL is how long an idle picker instance survives before the
	// sweeper drops it.
	InstanceTTL time.Duration
}

// instance pairs a picker with its bookkeeping. lastSeen drives expiry;
// lastCommit records the most recent committed date via the picker's
// subscription mechanism.
type instance struct {
	picker     *picker.Picker
	lastSeen   time.Time
	lastCommit time.Time
	hasCommit  bool
}

// WidgetService owns the per-client picker registry.
type WidgetService interface {
	// Scene returns the current scene for the client, creating a fresh
	// instance when none exists.
	Scene(ctx context.Context, clientID string) (picker.Scene, error)

	// Interact runs fn against the client's picker under the registry lock
	// and returns the resulting scene. The error from fn is passed through
	// alongside the scene, so handlers can render the unchanged widget with
	// the failure reason attached.
	Interact(ctx context.Context, clientID string, fn func(*picker.Picker) error) (picker.Scene, error)

	// Selection returns the client's last committed date and whether one
	// exists.
	Selection(ctx context.Context, clientID string) (time.Time, bool, error)

	// RefreshRules recompiles the restriction rules and applies them to
	// every live instance.
	RefreshRules(ctx context.Context) error

	// Close stops the background sweeper.
	Close()
}

// widgetService implements WidgetService.
type widgetService struct {
	cfg   Config
	rules RuleCompiler
	now   func() time.Time

	mu        sync.Mutex
	instances map[string]*instance

	stop chan struct{}
}

// NewWidgetService creates the registry and starts the idle-instance
// sweeper. rules may be nil, in which case only the config-level validation
// applies.
func NewWidgetService(cfg Config, rules RuleCompiler) WidgetService {
	s := &widgetService{
		cfg:       cfg,
		rules:     rules,
		now:       time.Now,
		instances: make(map[string]*instance),
		stop:      make(chan struct{}),
	}
	go s.sweep()
	return s
}

// Scene returns the current scene, creating the instance on first sight.
func (s *widgetService) Scene(ctx context.Context, clientID string) (picker.Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, err := s.instanceLocked(ctx, clientID)
	if err != nil {
		return picker.Scene{}, err
	}
	return inst.picker.DrawCalendar(), nil
}

// Interact applies one interaction and returns the new scene. fn's error is
// returned with the scene rather than instead of it: a rejected click still
// re-renders the widget.
func (s *widgetService) Interact(ctx context.Context, clientID string, fn func(*picker.Picker) error) (picker.Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, err := s.instanceLocked(ctx, clientID)
	if err != nil {
		return picker.Scene{}, err
	}

	fnErr := fn(inst.picker)
	return inst.picker.DrawCalendar(), fnErr
}

// Selection returns the last committed date for the client.
func (s *widgetService) Selection(ctx context.Context, clientID string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, err := s.instanceLocked(ctx, clientID)
	if err != nil {
		return time.Time{}, false, err
	}
	return inst.lastCommit, inst.hasCommit, nil
}

// RefreshRules recompiles the restrictions and pushes the result into every
// live picker, so instances created before a rule change do not keep serving
// stale rules. New instances always compile at creation.
func (s *widgetService) RefreshRules(ctx context.Context) error {
	validation, err := s.compileValidation(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inst := range s.instances {
		inst.picker.SetValidationOptions(validation)
	}
	return nil
}

// Close stops the sweeper goroutine.
func (s *widgetService) Close() {
	close(s.stop)
}

// compileValidation builds the effective validation options from the config
// defaults plus the active restriction rules.
func (s *widgetService) compileValidation(ctx context.Context) (daterules.Options, error) {
	validation := daterules.DefaultOptions()
	validation.AllowPast = s.cfg.AllowPastDates
	if s.rules == nil {
		return validation, nil
	}
	return s.rules.Compile(ctx, validation)
}

// instanceLocked returns the client's instance, creating it if needed, and
// refreshes its idle timer. Callers must hold s.mu.
func (s *widgetService) instanceLocked(ctx context.Context, clientID string) (*instance, error) {
	if inst, ok := s.instances[clientID]; ok {
		inst.lastSeen = s.now()
		return inst, nil
	}

	validation, err := s.compileValidation(ctx)
	if err != nil {
		return nil, err
	}

	p, err := picker.New(&picker.Surface{Size: s.cfg.Size}, picker.Options{
		TimeSelectionEnabled: s.cfg.TimeSelectionEnabled,
		Is12HourClock:        s.cfg.Is12HourClock,
		WeekViewEnabled:      s.cfg.WeekViewEnabled,
		Validation:           &validation,
	})
	if err != nil {
		return nil, err
	}

	inst := &instance{picker: p, lastSeen: s.now()}
	p.Subscribe(func(d time.Time) {
		// Runs inside Interact's lock: commits only happen through fn.
		inst.lastCommit = d
		inst.hasCommit = true
	})

	s.instances[clientID] = inst
	slog.Debug("picker instance created", slog.String("client", clientID))
	return inst, nil
}

// sweep drops instances idle past the TTL. Expiry only loses navigation
// state; the next request mints a fresh instance.
func (s *widgetService) sweep() {
	ttl := s.cfg.InstanceTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.evictIdle(ttl)
		}
	}
}

// evictIdle drops every instance idle longer than ttl.
func (s *widgetService) evictIdle(ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, inst := range s.instances {
		if now.Sub(inst.lastSeen) > ttl {
			delete(s.instances, id)
		}
	}
}
