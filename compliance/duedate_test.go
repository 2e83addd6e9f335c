package compliance

import (
	"testing"
	"time"

	"github.com/mmdatafocus/practice_backend/models"
)

func TestDefaultDueDate_ServiceNextDueWins(t *testing.T) {
	nextDue := time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)
	svc := &models.Service{NextDue: &nextDue}
	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	due := DefaultDueDate(svc, models.ComplianceTypeAnnualAccounts, now)
	if due == nil || !due.Equal(nextDue) {
		t.Fatalf("expected service next_due %v, got %v", nextDue, due)
	}
}

func TestDefaultDueDate_TypeDefaults(t *testing.T) {
	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		itemType models.ComplianceType
		expected time.Time
	}{
		{models.ComplianceTypeAnnualAccounts, time.Date(2027, time.December, 31, 0, 0, 0, 0, time.UTC)},
		{models.ComplianceTypeCorporationTax, time.Date(2027, time.December, 31, 0, 0, 0, 0, time.UTC)},
		{models.ComplianceTypeConfirmationStatement, time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)},
		{models.ComplianceTypeVATReturn, time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)},
		{models.ComplianceTypeSelfAssessment, time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		due := DefaultDueDate(nil, tc.itemType, now)
		if due == nil || !due.Equal(tc.expected) {
			t.Fatalf("%s: expected %v, got %v", tc.itemType, tc.expected, due)
		}
	}
}

func TestDefaultDueDate_VATQuarterWrapsYear(t *testing.T) {
	now := time.Date(2026, time.November, 5, 0, 0, 0, 0, time.UTC)
	due := DefaultDueDate(nil, models.ComplianceTypeVATReturn, now)

	expected := time.Date(2027, time.March, 31, 0, 0, 0, 0, time.UTC)
	if due == nil || !due.Equal(expected) {
		t.Fatalf("expected Q4 to wrap to %v, got %v", expected, due)
	}
}

func TestDefaultDueDate_VATQuarterBoundaries(t *testing.T) {
	cases := []struct {
		now      time.Time
		expected time.Time
	}{
		{time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC), time.Date(2026, time.September, 30, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, time.September, 30, 0, 0, 0, 0, time.UTC), time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		due := DefaultDueDate(nil, models.ComplianceTypeVATReturn, tc.now)
		if due == nil || !due.Equal(tc.expected) {
			t.Fatalf("from %v: expected %v, got %v", tc.now, tc.expected, due)
		}
	}
}
