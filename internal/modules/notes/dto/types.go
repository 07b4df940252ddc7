package dto

// PutInput upserts a note; empty Date means today, empty Text removes the
// entry.
type PutInput struct {
	OutcomeID string
	StepID    string
	Date      string
	Text      string
}

type NoteOutput struct {
	OutcomeID string
	StepID    string
	Date      string
	Text      string
}
