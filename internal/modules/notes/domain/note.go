package domain

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Note is free text attached to a step for one calendar date. Notes live
// independently of the step: deleting a step leaves its notes behind.
type Note struct {
	OutcomeID string
	StepID    string
	Date      string
	Text      string
}

// Key is the composite map key the note is stored under.
func Key(outcomeID, stepID, date string) string {
	return outcomeID + "/" + stepID + "/" + date
}

// ParseKey splits a stored key back into its parts; ok is false for keys
// that do not match the composite shape.
func ParseKey(key string) (outcomeID, stepID, date string, ok bool) {
	parts := strings.SplitN(key, "/", 3)
	if len(parts) != 3 {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

func ValidDate(date string) bool {
	_, err := time.Parse(DateLayout, date)
	return err == nil
}
