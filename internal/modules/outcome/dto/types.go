package dto

type AddOutcomeInput struct {
	Title string
}

type RenameOutcomeInput struct {
	OutcomeID string
	Title     string
}

type AddStepInput struct {
	OutcomeID    string
	Title        string
	EstimatedMin int
}

// EditStepInput updates a step's title and/or estimate; zero values leave
// the field unchanged.
type EditStepInput struct {
	OutcomeID    string
	StepID       string
	Title        string
	EstimatedMin int
}

type RecordPauseInput struct {
	OutcomeID string
	StepID    string
	Minutes   int
}

type CompleteStepInput struct {
	OutcomeID      string
	StepID         string
	FinalActiveMin int
}

type StepOutput struct {
	ID           string
	OutcomeID    string
	Title        string
	EstimatedMin int
	ActualMin    *int
	Completed    bool
	TimeSpentMin int
}

type OutcomeOutput struct {
	ID                string
	Title             string
	Steps             []StepOutput
	BalanceMin        int
	TotalEstimatedMin int
}

type OutcomeBalance struct {
	OutcomeID         string
	Title             string
	BalanceMin        int
	TotalEstimatedMin int
}

type BalancesOutput struct {
	Outcomes  []OutcomeBalance
	SumMin    int
	BankMin   int
	GlobalMin int
}

// StepRecord and OutcomeRecord carry the persisted wire shape for archive
// export/import; field names match the stored JSON documents.
type StepRecord struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	EstimatedMin int    `json:"estimatedMin"`
	ActualMin    *int   `json:"actualMin"`
	Completed    bool   `json:"completed"`
	TimeSpent    int    `json:"timeSpent"`
}

type OutcomeRecord struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	Steps []StepRecord `json:"steps"`
}
