package dto

import outcomedto "tempo/internal/modules/outcome/dto"

const Version = 1

// Document is the export file format. Import accepts the same shape and
// requires outcomes to be present and be an array.
type Document struct {
	Outcomes   []outcomedto.OutcomeRecord `json:"outcomes"`
	StepNotes  map[string]string          `json:"stepNotes"`
	TimeBank   int                        `json:"timeBank"`
	ExportDate string                     `json:"exportDate"`
	Version    int                        `json:"version"`
}

type ExportOutput struct {
	Path     string
	Document Document
}

type ImportOutput struct {
	Outcomes int
	Notes    int
	TimeBank int
}
