package testutil_test

import (
	"testing"

	"equitylens/internal/errors"
	"equitylens/internal/testutil"
)

func TestFixtures(t *testing.T) {
	table := testutil.FounderInvestorTable()
	if table.TotalShares != 10_000_000 {
		t.Errorf("expected total shares 10000000, got %d", table.TotalShares)
	}
	if table.Stakeholders[0].OwnershipPct != 70 {
		t.Errorf("expected founder ownership 70, got %f", table.Stakeholders[0].OwnershipPct)
	}

	safe := testutil.NewSAFE("Angel", "100000", "5000000", "")
	if safe.ValuationCap == nil || safe.DiscountPct != nil {
		t.Errorf("expected cap-only SAFE, got cap=%v discount=%v", safe.ValuationCap, safe.DiscountPct)
	}

	a := testutil.NewStakeholder("A", "founder", "common", 1)
	b := testutil.NewStakeholder("B", "founder", "common", 1)
	if a.ID == b.ID {
		t.Errorf("expected unique stakeholder ids, both were %q", a.ID)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrUnknownStakeholder, "custom message")
	testutil.AssertAppError(t, err, "UNKNOWN_STAKEHOLDER")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}

func TestAssertMoneyNear(t *testing.T) {
	testutil.AssertMoneyNear(t, testutil.Dec("100.00"), testutil.Dec("100.004"), "0.01")
}
