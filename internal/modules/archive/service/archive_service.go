package service

import (
	"bytes"
	"encoding/json"
	"time"

	"tempo/internal/modules/archive/dto"
	outcomedto "tempo/internal/modules/outcome/dto"
	"tempo/internal/platform/clock"
	apperrors "tempo/internal/platform/errors"
)

// ArchiveService builds and parses export documents.
type ArchiveService struct {
	clk clock.Clock
}

func NewArchiveService(clk clock.Clock) *ArchiveService {
	return &ArchiveService{clk: clk}
}

func (s *ArchiveService) Build(outcomes []outcomedto.OutcomeRecord, notes map[string]string, bankMin int) dto.Document {
	if outcomes == nil {
		outcomes = []outcomedto.OutcomeRecord{}
	}
	if notes == nil {
		notes = map[string]string{}
	}
	return dto.Document{
		Outcomes:   outcomes,
		StepNotes:  notes,
		TimeBank:   bankMin,
		ExportDate: s.clk.Now().Format(time.RFC3339),
		Version:    dto.Version,
	}
}

// Parse rejects the whole document as malformed unless outcomes is present
// and is an array; nothing about the current state is touched here.
func (s *ArchiveService) Parse(raw []byte) (dto.Document, error) {
	var probe struct {
		Outcomes json.RawMessage `json:"outcomes"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return dto.Document{}, apperrors.ErrMalformedArchive
	}
	field := bytes.TrimSpace(probe.Outcomes)
	if len(field) == 0 || field[0] != '[' {
		return dto.Document{}, apperrors.ErrMalformedArchive
	}

	var doc dto.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return dto.Document{}, apperrors.ErrMalformedArchive
	}
	if doc.StepNotes == nil {
		doc.StepNotes = map[string]string{}
	}
	return doc, nil
}
