package compliance

import (
	"time"

	"github.com/mmdatafocus/practice_backend/models"
)

// DefaultDueDate computes the due date of a derived obligation. The
// originating service's next_due wins when set; otherwise a coarse
// type-specific default is derived from now. The defaults are placeholders
// meant to be corrected by an operator once the real schedule is known and
// must not be treated as legal deadlines.
func DefaultDueDate(svc *models.Service, itemType models.ComplianceType, now time.Time) *time.Time {
	if svc != nil && svc.NextDue != nil {
		due := *svc.NextDue
		return &due
	}

	var due time.Time
	switch itemType {
	case models.ComplianceTypeAnnualAccounts, models.ComplianceTypeCorporationTax:
		due = endOfYear(now.Year() + 1)
	case models.ComplianceTypeConfirmationStatement:
		due = endOfYear(now.Year())
	case models.ComplianceTypeVATReturn:
		due = endOfNextQuarter(now)
	default:
		due = endOfYear(now.Year())
	}
	return &due
}

func endOfYear(year int) time.Time {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// endOfNextQuarter returns the last day of the calendar quarter after the
// one containing t. time.Date normalizes month values past December, so the
// Q4 case rolls into March of the next year.
func endOfNextQuarter(t time.Time) time.Time {
	quarter := (int(t.Month()) - 1) / 3
	firstOfFollowing := time.Date(t.Year(), time.Month(quarter*3+7), 1, 0, 0, 0, 0, time.UTC)
	return firstOfFollowing.AddDate(0, 0, -1)
}
