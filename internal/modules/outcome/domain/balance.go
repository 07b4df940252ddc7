package domain

// StepBalance is estimated minus actual for a completed step; incomplete
// steps contribute nothing until their actual duration is known.
func StepBalance(s Step) int {
	if !s.Completed || s.ActualMin == nil {
		return 0
	}
	return s.EstimatedMin - *s.ActualMin
}

func OutcomeBalance(o Outcome) int {
	total := 0
	for _, s := range o.Steps {
		total += StepBalance(s)
	}
	return total
}

// TotalEstimated sums estimates over every step, completed or not.
func TotalEstimated(o Outcome) int {
	total := 0
	for _, s := range o.Steps {
		total += s.EstimatedMin
	}
	return total
}

// GlobalBalance is the aggregate balance across all outcomes plus the
// rollover time bank.
func GlobalBalance(outcomes []Outcome, bankMin int) int {
	total := bankMin
	for _, o := range outcomes {
		total += OutcomeBalance(o)
	}
	return total
}
