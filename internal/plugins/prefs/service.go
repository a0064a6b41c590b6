package prefs

import (
	"context"

	"github.com/rondelui/rondel/internal/apperror"
	"github.com/rondelui/rondel/internal/themes"
	"github.com/rondelui/rondel/internal/views"
)

// PrefsService handles business logic for client preferences: theme
// validation against the registry and default resolution.
type PrefsService interface {
	// Get returns the client's stored preferences with defaults filled in.
	Get(ctx context.Context, clientID string) (*Preferences, error)

	// SetTheme validates the theme against the registry and stores it.
	SetTheme(ctx context.Context, clientID, theme string) error

	// Reset removes the client's stored preferences, reverting to defaults.
	Reset(ctx context.Context, clientID string) error
}

// prefsService implements PrefsService.
type prefsService struct {
	repo PrefsRepository
}

// NewPrefsService creates a new preferences service.
func NewPrefsService(repo PrefsRepository) PrefsService {
	return &prefsService{repo: repo}
}

// Get returns stored preferences, substituting the default theme when the
// client has never chosen one or the stored theme has since been removed
// from the registry.
func (s *prefsService) Get(ctx context.Context, clientID string) (*Preferences, error) {
	if clientID == "" {
		return nil, apperror.NewBadRequest("client ID is required")
	}

	p, err := s.repo.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if p.Theme == "" || themes.Find(p.Theme) == nil {
		p.Theme = views.DefaultTheme
	}
	return p, nil
}

// SetTheme validates and stores the theme choice.
func (s *prefsService) SetTheme(ctx context.Context, clientID, theme string) error {
	if clientID == "" {
		return apperror.NewBadRequest("client ID is required")
	}
	if themes.Find(theme) == nil {
		return apperror.NewValidation("unknown theme")
	}
	return s.repo.Set(ctx, clientID, &Preferences{Theme: theme})
}

// Reset removes the stored preferences.
func (s *prefsService) Reset(ctx context.Context, clientID string) error {
	if clientID == "" {
		return apperror.NewBadRequest("client ID is required")
	}
	return s.repo.Delete(ctx, clientID)
}
