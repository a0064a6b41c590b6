package restrictions

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/rondelui/rondel/internal/apperror"
	"github.com/rondelui/rondel/internal/daterules"
)

// --- Mock Repository ---

// mockRestrictionRepo implements RestrictionRepository for testing.
type mockRestrictionRepo struct {
	listFn     func(ctx context.Context) ([]Restriction, error)
	findByIDFn func(ctx context.Context, id int64) (*Restriction, error)
	createFn   func(ctx context.Context, r *Restriction) error
	updateFn   func(ctx context.Context, r *Restriction) error
	deleteFn   func(ctx context.Context, id int64) error
}

func (m *mockRestrictionRepo) List(ctx context.Context) ([]Restriction, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockRestrictionRepo) FindByID(ctx context.Context, id int64) (*Restriction, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("restriction not found")
}

func (m *mockRestrictionRepo) Create(ctx context.Context, r *Restriction) error {
	if m.createFn != nil {
		return m.createFn(ctx, r)
	}
	r.ID = 1
	return nil
}

func (m *mockRestrictionRepo) Update(ctx context.Context, r *Restriction) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, r)
	}
	return nil
}

func (m *mockRestrictionRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// --- Helpers ---

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

func isBadRequest(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.Code == http.StatusBadRequest
}

// --- Tests ---

func TestCreate_ValidRules(t *testing.T) {
	svc := NewRestrictionService(&mockRestrictionRepo{})

	cases := []Restriction{
		{Kind: KindDate, StartDate: day(2026, time.March, 1)},
		{Kind: KindRange, StartDate: day(2026, time.March, 1), EndDate: dayPtr(2026, time.March, 5)},
		{Kind: KindBefore, StartDate: day(2026, time.January, 1)},
		{Kind: KindAfter, StartDate: day(2026, time.December, 31), Reason: "bookings close"},
	}
	for _, r := range cases {
		rule := r
		if err := svc.Create(context.Background(), &rule); err != nil {
			t.Errorf("Create(%s) returned error: %v", r.Kind, err)
		}
		if rule.ID == 0 {
			t.Errorf("Create(%s) did not set the generated id", r.Kind)
		}
	}
}

func TestCreate_RejectsMalformedRules(t *testing.T) {
	created := false
	svc := NewRestrictionService(&mockRestrictionRepo{
		createFn: func(ctx context.Context, r *Restriction) error {
			created = true
			return nil
		},
	})

	cases := []struct {
		name string
		rule Restriction
	}{
		{"unknown kind", Restriction{Kind: "weekday", StartDate: day(2026, 1, 1)}},
		{"zero start date", Restriction{Kind: KindDate}},
		{"range without end", Restriction{Kind: KindRange, StartDate: day(2026, 3, 1)}},
		{"range end before start", Restriction{Kind: KindRange, StartDate: day(2026, 3, 5), EndDate: dayPtr(2026, 3, 1)}},
		{"end date on a date rule", Restriction{Kind: KindDate, StartDate: day(2026, 3, 1), EndDate: dayPtr(2026, 3, 2)}},
	}

	for _, tc := range cases {
		rule := tc.rule
		err := svc.Create(context.Background(), &rule)
		if !isBadRequest(err) {
			t.Errorf("%s: expected bad request, got %v", tc.name, err)
		}
	}
	if created {
		t.Error("malformed rule reached the repository")
	}
}

func TestUpdate_RequiresID(t *testing.T) {
	svc := NewRestrictionService(&mockRestrictionRepo{})
	err := svc.Update(context.Background(), &Restriction{Kind: KindDate, StartDate: day(2026, 1, 1)})
	if !isBadRequest(err) {
		t.Errorf("expected bad request for missing id, got %v", err)
	}
}

func TestCompile_MergesAllKinds(t *testing.T) {
	svc := NewRestrictionService(&mockRestrictionRepo{
		listFn: func(ctx context.Context) ([]Restriction, error) {
			return []Restriction{
				{Kind: KindDate, StartDate: day(2026, time.March, 17)},
				{Kind: KindRange, StartDate: day(2026, time.July, 1), EndDate: dayPtr(2026, time.July, 14)},
				{Kind: KindBefore, StartDate: day(2026, time.January, 1)},
				{Kind: KindAfter, StartDate: day(2026, time.December, 31)},
			}, nil
		},
	})

	opts, err := svc.Compile(context.Background(), daterules.DefaultOptions())
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}

	if len(opts.DisabledDates) != 1 || !opts.DisabledDates[0].Equal(day(2026, time.March, 17)) {
		t.Errorf("disabled dates = %v, want [2026-03-17]", opts.DisabledDates)
	}
	if len(opts.DisabledRanges) != 1 {
		t.Fatalf("disabled ranges = %v, want one range", opts.DisabledRanges)
	}
	if !opts.DisabledRanges[0].Start.Equal(day(2026, time.July, 1)) || !opts.DisabledRanges[0].End.Equal(day(2026, time.July, 14)) {
		t.Errorf("disabled range = %+v, want July 1-14", opts.DisabledRanges[0])
	}
	if opts.MinDate == nil || !opts.MinDate.Equal(day(2026, time.January, 1)) {
		t.Errorf("min date = %v, want 2026-01-01", opts.MinDate)
	}
	if opts.MaxDate == nil || !opts.MaxDate.Equal(day(2026, time.December, 31)) {
		t.Errorf("max date = %v, want 2026-12-31", opts.MaxDate)
	}

	// The compiled options reject a disabled date and accept a normal one.
	now := day(2026, time.June, 1)
	if err := daterules.ValidateAt(day(2026, time.March, 17), now, opts); err == nil {
		t.Error("compiled options accepted a disabled date")
	}
	if err := daterules.ValidateAt(day(2026, time.June, 10), now, opts); err != nil {
		t.Errorf("compiled options rejected an unrestricted date: %v", err)
	}
}

func TestCompile_StrictestBoundWins(t *testing.T) {
	svc := NewRestrictionService(&mockRestrictionRepo{
		listFn: func(ctx context.Context) ([]Restriction, error) {
			return []Restriction{
				{Kind: KindBefore, StartDate: day(2026, time.January, 1)},
				{Kind: KindBefore, StartDate: day(2026, time.February, 1)},
				{Kind: KindAfter, StartDate: day(2026, time.December, 31)},
				{Kind: KindAfter, StartDate: day(2026, time.November, 30)},
			}, nil
		},
	})

	opts, err := svc.Compile(context.Background(), daterules.DefaultOptions())
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if opts.MinDate == nil || !opts.MinDate.Equal(day(2026, time.February, 1)) {
		t.Errorf("min date = %v, want the later bound 2026-02-01", opts.MinDate)
	}
	if opts.MaxDate == nil || !opts.MaxDate.Equal(day(2026, time.November, 30)) {
		t.Errorf("max date = %v, want the earlier bound 2026-11-30", opts.MaxDate)
	}
}

func TestCompile_KeepsBaseOnRepoError(t *testing.T) {
	boom := apperror.NewInternal(errors.New("db gone"))
	svc := NewRestrictionService(&mockRestrictionRepo{
		listFn: func(ctx context.Context) ([]Restriction, error) {
			return nil, boom
		},
	})

	base := daterules.DefaultOptions()
	opts, err := svc.Compile(context.Background(), base)
	if !errors.Is(err, boom) {
		t.Fatalf("expected repo error, got %v", err)
	}
	if opts.MinDate != nil || len(opts.DisabledDates) != 0 {
		t.Error("failed compile mutated the base options")
	}
}
