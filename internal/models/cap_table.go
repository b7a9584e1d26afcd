package models

import (
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "equitylens/internal/errors"
)

// StakeholderRole describes why a stakeholder holds equity.
type StakeholderRole string

const (
	RoleFounder  StakeholderRole = "founder"
	RoleEmployee StakeholderRole = "employee"
	RoleInvestor StakeholderRole = "investor"
	RoleAdvisor  StakeholderRole = "advisor"
)

// Valid reports whether r is a known role.
func (r StakeholderRole) Valid() bool {
	switch r {
	case RoleFounder, RoleEmployee, RoleInvestor, RoleAdvisor:
		return true
	}
	return false
}

// ShareClass is the class of stock a stakeholder holds.
type ShareClass string

const (
	ShareClassCommon    ShareClass = "common"
	ShareClassPreferred ShareClass = "preferred"
)

// Valid reports whether c is a known share class.
func (c ShareClass) Valid() bool {
	return c == ShareClassCommon || c == ShareClassPreferred
}

// Stakeholder is a single line of the cap table.
type Stakeholder struct {
	ID           string          `json:"id" yaml:"id" binding:"required"`
	Name         string          `json:"name" yaml:"name"`
	Role         StakeholderRole `json:"role" yaml:"role" binding:"required,stakeholder_role"`
	Shares       int64           `json:"shares" yaml:"shares" binding:"gte=0"`
	ShareClass   ShareClass      `json:"share_class" yaml:"share_class" binding:"required,share_class"`
	OwnershipPct float64         `json:"ownership_pct" yaml:"-"`
}

// CapTable is an ordered list of stakeholders plus the fully diluted share
// count. TotalShares may exceed the issued shares (e.g. an unallocated pool).
type CapTable struct {
	Stakeholders  []Stakeholder `json:"stakeholders" yaml:"stakeholders" binding:"dive"`
	TotalShares   int64         `json:"total_shares" yaml:"total_shares"`
	OptionPoolPct float64       `json:"option_pool_pct" yaml:"option_pool_pct"`
}

// Clone returns a deep copy so callers can mutate the result freely.
func (t CapTable) Clone() CapTable {
	out := t
	out.Stakeholders = make([]Stakeholder, len(t.Stakeholders))
	copy(out.Stakeholders, t.Stakeholders)
	return out
}

// IssuedShares sums the shares held by every stakeholder.
func (t CapTable) IssuedShares() int64 {
	var sum int64
	for i := range t.Stakeholders {
		sum += t.Stakeholders[i].Shares
	}
	return sum
}

// Lookup finds a stakeholder by id.
func (t CapTable) Lookup(id string) (Stakeholder, bool) {
	for i := range t.Stakeholders {
		if t.Stakeholders[i].ID == id {
			return t.Stakeholders[i], true
		}
	}
	return Stakeholder{}, false
}

// SharesOf sums the shares of the given stakeholder ids. Unknown ids count as zero.
func (t CapTable) SharesOf(ids []string) int64 {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var sum int64
	for i := range t.Stakeholders {
		if _, ok := want[t.Stakeholders[i].ID]; ok {
			sum += t.Stakeholders[i].Shares
		}
	}
	return sum
}

// OwnershipFraction is the fraction (0..1) of TotalShares held by ids.
// A table with no shares yields zero.
func (t CapTable) OwnershipFraction(ids []string) decimal.Decimal {
	if t.TotalShares <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(t.SharesOf(ids)).Div(decimal.NewFromInt(t.TotalShares))
}

// Normalize defaults TotalShares to the issued count when it is unset and
// recomputes ownership. Input formats allow total_shares to be omitted.
func (t *CapTable) Normalize() {
	if t.TotalShares == 0 {
		t.TotalShares = t.IssuedShares()
	}
	t.Recompute()
}

// Recompute refreshes every cached ownership percentage against TotalShares.
// It must run after any change to share counts.
func (t *CapTable) Recompute() {
	for i := range t.Stakeholders {
		t.Stakeholders[i].OwnershipPct = Percent(t.Stakeholders[i].Shares, t.TotalShares)
	}
}

// Validate checks the structural invariants of the table: unique ids, known
// roles and classes, non-negative shares, and TotalShares >= issued shares.
func (t CapTable) Validate() error {
	seen := make(map[string]struct{}, len(t.Stakeholders))
	for i := range t.Stakeholders {
		s := t.Stakeholders[i]
		if s.ID == "" {
			return apperrors.WithMessage(apperrors.ErrInvalidCapTable, fmt.Sprintf("stakeholder %d has no id", i))
		}
		if _, dup := seen[s.ID]; dup {
			return apperrors.WithMessage(apperrors.ErrInvalidCapTable, fmt.Sprintf("duplicate stakeholder id %q", s.ID))
		}
		seen[s.ID] = struct{}{}
		if s.Shares < 0 {
			return apperrors.WithMessage(apperrors.ErrInvalidCapTable, fmt.Sprintf("stakeholder %q has negative shares", s.ID))
		}
		if !s.Role.Valid() {
			return apperrors.WithMessage(apperrors.ErrInvalidCapTable, fmt.Sprintf("stakeholder %q has unknown role %q", s.ID, s.Role))
		}
		if !s.ShareClass.Valid() {
			return apperrors.WithMessage(apperrors.ErrInvalidCapTable, fmt.Sprintf("stakeholder %q has unknown share class %q", s.ID, s.ShareClass))
		}
	}
	if t.TotalShares < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidShareCount, "total shares cannot be negative")
	}
	if issued := t.IssuedShares(); t.TotalShares < issued {
		return apperrors.WithMessage(apperrors.ErrInvalidCapTable,
			fmt.Sprintf("total shares %d is less than issued shares %d", t.TotalShares, issued))
	}
	return nil
}

// Percent returns part/whole*100, or zero when whole is not positive.
func Percent(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
