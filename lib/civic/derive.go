package civic

import (
	"fmt"
	"strconv"
	"strings"
)

// BillID joins a bill's coordinates into the composite identifier used
// everywhere downstream, e.g. "118-hr-1234".
func BillID(congress int, billType, number string) string {
	return fmt.Sprintf("%d-%s-%s", congress, billType, number)
}

// DeriveBillStatus classifies a bill by its latest recorded action.
// The match is case-sensitive on purpose: congress.gov capitalizes
// "Enacted" in action text and lowercase occurrences mean something
// else ("re-enacted clauses" etc).
func DeriveBillStatus(latestAction string) BillStatus {
	if strings.Contains(latestAction, "Enacted") {
		return BillStatusEnacted
	}
	return BillStatusInProgress
}

// ParseReportedAmount reads a lobbying amount reported as a string.
// Upstream formats these inconsistently ("50000", "1,000", "", junk),
// and a single bad amount must not sink the whole filing batch, so
// anything that does not parse as a plain integer becomes zero.
func ParseReportedAmount(reported string) int64 {
	amount, err := strconv.ParseInt(strings.TrimSpace(reported), 10, 64)
	if err != nil {
		return 0
	}
	return amount
}

// InOffice derives the currently-serving flag from the end year of a
// member's latest term. A term with no end year is still running.
func InOffice(latestTermEndYear *int, currentYear int) bool {
	if latestTermEndYear == nil {
		return true
	}
	return *latestTermEndYear >= currentYear
}
