package civic

// Outcome reports how a fetch went alongside the record list it
// produced, so callers can tell "no matching data" apart from
// "provider unreachable". The list itself stays non-nil either way.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomePartial Outcome = "partial"
	OutcomeFailed  Outcome = "failed"
)

// CombineOutcomes folds the outcomes of several sub-fetches into one.
// All success stays success, all failed stays failed, anything mixed
// is partial.
func CombineOutcomes(outcomes ...Outcome) Outcome {
	if len(outcomes) == 0 {
		return OutcomeSuccess
	}
	succeeded := 0
	for _, o := range outcomes {
		switch o {
		case OutcomeSuccess:
			succeeded++
		case OutcomePartial:
			return OutcomePartial
		}
	}
	switch succeeded {
	case len(outcomes):
		return OutcomeSuccess
	case 0:
		return OutcomeFailed
	}
	return OutcomePartial
}
