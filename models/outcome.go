package models

// OutcomeKind discriminates the result of one fetch-and-parse step
type OutcomeKind int

const (
	OutcomeEmpty OutcomeKind = iota
	OutcomeResults
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeResults:
		return "results"
	case OutcomeFailed:
		return "failed"
	default:
		return "empty"
	}
}

// SearchOutcome is either a non-empty result list, a valid empty answer, or a failure.
// A failure (network, status, parse) is never reported as Empty.
type SearchOutcome struct {
	Kind    OutcomeKind
	Results ResultList
	Err     error
}

// Found builds an outcome from a result list. An empty list is reported as Empty.
func Found(list ResultList) SearchOutcome {
	if len(list) == 0 {
		return Empty()
	}
	return SearchOutcome{Kind: OutcomeResults, Results: list}
}

func Empty() SearchOutcome {
	return SearchOutcome{Kind: OutcomeEmpty}
}

func Failed(err error) SearchOutcome {
	return SearchOutcome{Kind: OutcomeFailed, Err: err}
}
