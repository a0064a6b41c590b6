// Package restrictions manages the server-side date restriction rules that
// feed the picker's validator. Administrators create rules (single dates,
// inclusive ranges, or open-ended before/after bounds) through a small JSON
// API; the widget plugin compiles the active rule set into validation
// options whenever it creates a picker instance.
package restrictions

import "time"

// RestrictionKind discriminates the rule variants stored in the
// date_restrictions table.
type RestrictionKind string

const (
	// KindDate disables a single calendar date.
	KindDate RestrictionKind = "date"

	// KindRange disables every date from StartDate through EndDate inclusive.
	KindRange RestrictionKind = "range"

	// KindBefore disables every date earlier than StartDate. It compiles to
	// the validator's minimum-date bound.
	KindBefore RestrictionKind = "before"

	// KindAfter disables every date later than StartDate. It compiles to
	// the validator's maximum-date bound.
	KindAfter RestrictionKind = "after"
)

// Valid reports whether the kind is one of the stored ENUM values.
func (k RestrictionKind) Valid() bool {
	switch k {
	case KindDate, KindRange, KindBefore, KindAfter:
		return true
	}
	return false
}

// Restriction represents a single row in the date_restrictions table.
// EndDate is only set for range rules; for every other kind it is NULL.
type Restriction struct {
	ID        int64           `json:"id"`
	Kind      RestrictionKind `json:"kind"`
	StartDate time.Time       `json:"start_date"`
	EndDate   *time.Time      `json:"end_date,omitempty"`
	Reason    string          `json:"reason,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
