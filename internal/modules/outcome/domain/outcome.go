package domain

const SchemaVersion = 1

// Step is a unit of work inside an outcome. ActualMin stays nil until the
// step completes; TimeSpentMin accumulates paused minutes and resets to zero
// at completion so the actual total is never double counted.
type Step struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	EstimatedMin int    `json:"estimatedMin"`
	ActualMin    *int   `json:"actualMin"`
	Completed    bool   `json:"completed"`
	TimeSpentMin int    `json:"timeSpent"`
}

// Outcome is a user-defined goal owning an ordered sequence of steps.
type Outcome struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Steps []Step `json:"steps"`
}

func (o *Outcome) FindStep(stepID string) (*Step, bool) {
	for i := range o.Steps {
		if o.Steps[i].ID == stepID {
			return &o.Steps[i], true
		}
	}
	return nil, false
}

func (o *Outcome) RemoveStep(stepID string) bool {
	for i := range o.Steps {
		if o.Steps[i].ID == stepID {
			o.Steps = append(o.Steps[:i], o.Steps[i+1:]...)
			return true
		}
	}
	return false
}

// Complete marks the step done with the given final active minutes folded
// into the actual total.
func (s *Step) Complete(finalActiveMin int) {
	actual := s.TimeSpentMin + finalActiveMin
	s.ActualMin = &actual
	s.Completed = true
	s.TimeSpentMin = 0
}
