package dto

type StartInput struct {
	OutcomeID string
	StepID    string
}

type TimerOutput struct {
	OutcomeID  string
	StepID     string
	ElapsedSec int
}

type PauseOutput struct {
	OutcomeID    string
	StepID       string
	MinutesAdded int
	TimeSpentMin int
}

type CompleteOutput struct {
	OutcomeID  string
	StepID     string
	ActualMin  int
	BalanceMin int
}

type BorrowOutput struct {
	BankMin    int
	ElapsedSec int
}

type StatusOutput struct {
	Active       bool
	OutcomeID    string
	StepID       string
	OutcomeTitle string
	StepTitle    string
	ElapsedSec   int
	BankMin      int
}
