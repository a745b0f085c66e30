package linker

import (
	"strings"

	"github.com/antzucaro/matchr"

	"civicpulse-backend/lib/civic"
)

// NameLink pairs a roster name with the detail name it most likely refers
// to. Correlation is 1 for exact matches, otherwise the Jaro-Winkler
// similarity of the two names.
type NameLink struct {
	Roster      string
	Detail      string
	Correlation float64
}

// DetailLink attaches a detail record to the roster legislator it describes.
type DetailLink struct {
	Legislator  civic.Legislator
	Detail      civic.LegislatorDetail
	Correlation float64
}

// FullName is the key roster and detail records are matched on when their
// provider ids disagree.
func FullName(firstName, lastName string) string {
	return strings.TrimSpace(firstName + " " + lastName)
}

// LinkDetails merges two independently fetched legislator lists. Entries
// sharing a provider id pair immediately, the rest pair by full name
// similarity. Roster entries with no plausible detail are left out.
func LinkDetails(roster []civic.Legislator, details []civic.LegislatorDetail) []DetailLink {
	detailById := make(map[string]civic.LegislatorDetail, len(details))
	for _, detail := range details {
		_, taken := detailById[detail.ID]
		if !taken {
			detailById[detail.ID] = detail
		}
	}

	var result []DetailLink
	matchedDetails := make(map[string]struct{})

	var unmatchedRoster []civic.Legislator
	for _, legislator := range roster {
		detail, ok := detailById[legislator.ID]
		if !ok {
			unmatchedRoster = append(unmatchedRoster, legislator)
			continue
		}
		result = append(result, DetailLink{
			Legislator:  legislator,
			Detail:      detail,
			Correlation: 1,
		})
		matchedDetails[detail.ID] = struct{}{}
	}

	rosterByName := make(map[string]civic.Legislator)
	var rosterNames []string
	for _, legislator := range unmatchedRoster {
		name := FullName(legislator.FirstName, legislator.LastName)
		_, taken := rosterByName[name]
		if taken {
			continue
		}
		rosterByName[name] = legislator
		rosterNames = append(rosterNames, name)
	}

	detailByName := make(map[string]civic.LegislatorDetail)
	var detailNames []string
	for _, detail := range details {
		_, alreadyLinked := matchedDetails[detail.ID]
		if alreadyLinked {
			continue
		}
		name := FullName(detail.FirstName, detail.LastName)
		_, taken := detailByName[name]
		if taken {
			continue
		}
		detailByName[name] = detail
		detailNames = append(detailNames, name)
	}

	for _, link := range LinkNames(rosterNames, detailNames) {
		result = append(result, DetailLink{
			Legislator:  rosterByName[link.Roster],
			Detail:      detailByName[link.Detail],
			Correlation: link.Correlation,
		})
	}

	return result
}

// LinkNames pairs names from the two lists. Exact matches pair first, the
// remainder pair greedily with their most similar unmatched counterpart.
// Names with no counterpart at all are left out.
func LinkNames(rosterNames, detailNames []string) []NameLink {
	// Iterating the shorter list on the outside guarantees every one of its
	// names gets a candidate before the pool runs dry.
	swapped := false
	if len(detailNames) < len(rosterNames) {
		rosterNames, detailNames = detailNames, rosterNames
		swapped = true
	}

	var result []NameLink
	matchedLeft := make(map[string]struct{})
	matchedRight := make(map[string]struct{})

	for _, left := range rosterNames {
		for _, right := range detailNames {
			_, taken := matchedRight[right]
			if taken {
				continue
			}
			if left != right {
				continue
			}

			result = append(result, newNameLink(left, right, 1, swapped))
			matchedLeft[left] = struct{}{}
			matchedRight[right] = struct{}{}
			break
		}
	}

	for _, left := range rosterNames {
		_, taken := matchedLeft[left]
		if taken {
			continue
		}

		var bestSimilarity float64
		var bestRight string
		for _, right := range detailNames {
			_, taken := matchedRight[right]
			if taken {
				continue
			}

			similarity := matchr.JaroWinkler(left, right, false)
			if similarity > bestSimilarity {
				bestSimilarity = similarity
				bestRight = right
			}
		}

		if bestSimilarity > 0 {
			result = append(result, newNameLink(left, bestRight, bestSimilarity, swapped))
			matchedLeft[left] = struct{}{}
			matchedRight[bestRight] = struct{}{}
		}
	}

	return result
}

func newNameLink(left, right string, correlation float64, swapped bool) NameLink {
	if swapped {
		left, right = right, left
	}
	return NameLink{
		Roster:      left,
		Detail:      right,
		Correlation: correlation,
	}
}
