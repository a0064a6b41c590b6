package restrictions

import (
	"context"

	"github.com/rondelui/rondel/internal/apperror"
	"github.com/rondelui/rondel/internal/daterules"
)

// RestrictionService handles business logic for date restriction rules:
// validating incoming rules and compiling the stored rule set into the
// validation options consumed by the picker.
type RestrictionService interface {
	// List returns every restriction ordered by start date.
	List(ctx context.Context) ([]Restriction, error)

	// Create validates and inserts a new restriction.
	Create(ctx context.Context, r *Restriction) error

	// Update validates and rewrites an existing restriction.
	Update(ctx context.Context, r *Restriction) error

	// Delete removes a restriction by id.
	Delete(ctx context.Context, id int64) error

	// Compile merges the stored rules into the base validation options.
	// Date rules become disabled dates, range rules become disabled ranges,
	// and before/after rules tighten the min/max bounds. When several bound
	// rules exist the strictest one wins.
	Compile(ctx context.Context, base daterules.Options) (daterules.Options, error)
}

// restrictionService implements RestrictionService.
type restrictionService struct {
	repo RestrictionRepository
}

// NewRestrictionService creates a new restriction service.
func NewRestrictionService(repo RestrictionRepository) RestrictionService {
	return &restrictionService{repo: repo}
}

// List delegates to the repository.
func (s *restrictionService) List(ctx context.Context) ([]Restriction, error) {
	return s.repo.List(ctx)
}

// Create validates the rule and inserts it.
func (s *restrictionService) Create(ctx context.Context, r *Restriction) error {
	if err := validateRule(r); err != nil {
		return err
	}
	return s.repo.Create(ctx, r)
}

// Update validates the rule and rewrites it.
func (s *restrictionService) Update(ctx context.Context, r *Restriction) error {
	if r.ID <= 0 {
		return apperror.NewBadRequest("restriction id is required")
	}
	if err := validateRule(r); err != nil {
		return err
	}
	return s.repo.Update(ctx, r)
}

// Delete removes a restriction by id.
func (s *restrictionService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperror.NewBadRequest("restriction id is required")
	}
	return s.repo.Delete(ctx, id)
}

// Compile merges all stored rules into base. The base carries the
// deployment-level settings (whether past dates are allowed, any
// config-supplied bounds); stored rules only ever tighten it.
func (s *restrictionService) Compile(ctx context.Context, base daterules.Options) (daterules.Options, error) {
	rules, err := s.repo.List(ctx)
	if err != nil {
		return base, err
	}

	opts := base
	for _, r := range rules {
		switch r.Kind {
		case KindDate:
			opts.DisabledDates = append(opts.DisabledDates, r.StartDate)

		case KindRange:
			end := r.StartDate
			if r.EndDate != nil {
				end = *r.EndDate
			}
			opts.DisabledRanges = append(opts.DisabledRanges, daterules.Range{
				Start: r.StartDate,
				End:   end,
			})

		case KindBefore:
			// Strictest (latest) minimum wins.
			if opts.MinDate == nil || r.StartDate.After(*opts.MinDate) {
				min := r.StartDate
				opts.MinDate = &min
			}

		case KindAfter:
			// Strictest (earliest) maximum wins.
			if opts.MaxDate == nil || r.StartDate.Before(*opts.MaxDate) {
				max := r.StartDate
				opts.MaxDate = &max
			}
		}
	}
	return opts, nil
}

// validateRule checks the shape of a restriction before it reaches the
// database. The kind must be a known ENUM value, the start date must be
// set, and range rules need an end on or after the start.
func validateRule(r *Restriction) error {
	if !r.Kind.Valid() {
		return apperror.NewBadRequest("unknown restriction kind")
	}
	if r.StartDate.IsZero() {
		return apperror.NewBadRequest("start date is required")
	}

	if r.Kind == KindRange {
		if r.EndDate == nil {
			return apperror.NewBadRequest("range restrictions need an end date")
		}
		if daterules.DateOnly(*r.EndDate).Before(daterules.DateOnly(r.StartDate)) {
			return apperror.NewBadRequest("range end date is before its start date")
		}
	} else if r.EndDate != nil {
		return apperror.NewBadRequest("only range restrictions take an end date")
	}

	return nil
}
