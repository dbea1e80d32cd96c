package service

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"communitycash/internal/apperr"
)

const dateLayout = "2006-01-02"

// validateAmount requires a strictly positive amount.
func validateAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return apperr.Validation("Amount must be greater than zero")
	}
	return nil
}

// validateReason trims the reason and requires it non-empty.
func validateReason(reason string) (string, error) {
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return "", apperr.Validation("Reason is required")
	}
	return trimmed, nil
}

// validateDate checks YYYY-MM-DD format. An empty date defaults to
// today.
func validateDate(date string) (string, error) {
	if date == "" {
		return time.Now().Format(dateLayout), nil
	}

	parsed, err := time.Parse(dateLayout, date)
	if err != nil || parsed.Format(dateLayout) != date {
		return "", apperr.Validation("Invalid date format. Use YYYY-MM-DD")
	}
	return date, nil
}

// validatePercentage checks an optional contribution percentage is
// within [0,100]. Nil is allowed; resolution against the member default
// happens at the call site.
func validatePercentage(pct *int) error {
	if pct == nil {
		return nil
	}
	if *pct < 0 || *pct > 100 {
		return apperr.Validation("Contribution percentage must be between 0 and 100")
	}
	return nil
}
