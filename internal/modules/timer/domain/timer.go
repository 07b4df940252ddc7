package domain

// ActiveTimer is the single global pointer to whichever step is running,
// plus its elapsed-seconds counter. At most one exists at a time.
type ActiveTimer struct {
	OutcomeID  string `json:"outcomeId"`
	StepID     string `json:"stepId"`
	ElapsedSec int    `json:"timerSeconds"`
}

func (t ActiveTimer) Active() bool {
	return t.StepID != ""
}

// ElapsedMinutes converts the elapsed counter to whole minutes, rounding
// up. The same conversion applies when pausing and when completing.
func (t ActiveTimer) ElapsedMinutes() int {
	return MinutesFromSeconds(t.ElapsedSec)
}

func MinutesFromSeconds(seconds int) int {
	if seconds <= 0 {
		return 0
	}
	return (seconds + 59) / 60
}
