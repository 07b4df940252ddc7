package usecase

import (
	"context"

	"tempo/internal/modules/outcome/domain"
	"tempo/internal/modules/outcome/dto"
	outcomein "tempo/internal/modules/outcome/port/in"
	"tempo/internal/modules/outcome/service"
)

type Interactor struct {
	svc *service.OutcomeService
}

func NewInteractor(svc *service.OutcomeService) outcomein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Add(ctx context.Context, input dto.AddOutcomeInput) (dto.OutcomeOutput, error) {
	outcome, err := i.svc.Add(ctx, input.Title)
	if err != nil {
		return dto.OutcomeOutput{}, err
	}
	return toOutcomeOutput(outcome), nil
}

func (i *Interactor) Rename(ctx context.Context, input dto.RenameOutcomeInput) (dto.OutcomeOutput, error) {
	outcome, err := i.svc.Rename(ctx, input.OutcomeID, input.Title)
	if err != nil {
		return dto.OutcomeOutput{}, err
	}
	return toOutcomeOutput(outcome), nil
}

func (i *Interactor) Delete(ctx context.Context, outcomeID string) error {
	return i.svc.Delete(ctx, outcomeID)
}

func (i *Interactor) List(ctx context.Context) ([]dto.OutcomeOutput, error) {
	outcomes, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OutcomeOutput, len(outcomes))
	for idx, o := range outcomes {
		out[idx] = toOutcomeOutput(o)
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, outcomeID string) (dto.OutcomeOutput, error) {
	outcome, err := i.svc.Get(ctx, outcomeID)
	if err != nil {
		return dto.OutcomeOutput{}, err
	}
	return toOutcomeOutput(outcome), nil
}

func (i *Interactor) AddStep(ctx context.Context, input dto.AddStepInput) (dto.StepOutput, error) {
	step, err := i.svc.AddStep(ctx, input.OutcomeID, input.Title, input.EstimatedMin)
	if err != nil {
		return dto.StepOutput{}, err
	}
	return toStepOutput(input.OutcomeID, step), nil
}

func (i *Interactor) EditStep(ctx context.Context, input dto.EditStepInput) (dto.StepOutput, error) {
	step, err := i.svc.EditStep(ctx, input.OutcomeID, input.StepID, input.Title, input.EstimatedMin)
	if err != nil {
		return dto.StepOutput{}, err
	}
	return toStepOutput(input.OutcomeID, step), nil
}

func (i *Interactor) DeleteStep(ctx context.Context, outcomeID, stepID string) error {
	return i.svc.DeleteStep(ctx, outcomeID, stepID)
}

func (i *Interactor) GetStep(ctx context.Context, outcomeID, stepID string) (dto.StepOutput, error) {
	step, err := i.svc.GetStep(ctx, outcomeID, stepID)
	if err != nil {
		return dto.StepOutput{}, err
	}
	return toStepOutput(outcomeID, step), nil
}

func (i *Interactor) RecordPause(ctx context.Context, input dto.RecordPauseInput) (dto.StepOutput, error) {
	step, err := i.svc.RecordPause(ctx, input.OutcomeID, input.StepID, input.Minutes)
	if err != nil {
		return dto.StepOutput{}, err
	}
	return toStepOutput(input.OutcomeID, step), nil
}

func (i *Interactor) CompleteStep(ctx context.Context, input dto.CompleteStepInput) (dto.StepOutput, error) {
	step, err := i.svc.CompleteStep(ctx, input.OutcomeID, input.StepID, input.FinalActiveMin)
	if err != nil {
		return dto.StepOutput{}, err
	}
	return toStepOutput(input.OutcomeID, step), nil
}

// Balances recomputes every balance from the current outcome list; nothing
// is cached between mutations.
func (i *Interactor) Balances(ctx context.Context, bankMin int) (dto.BalancesOutput, error) {
	outcomes, err := i.svc.List(ctx)
	if err != nil {
		return dto.BalancesOutput{}, err
	}
	out := dto.BalancesOutput{BankMin: bankMin}
	for _, o := range outcomes {
		balance := domain.OutcomeBalance(o)
		out.Outcomes = append(out.Outcomes, dto.OutcomeBalance{
			OutcomeID:         o.ID,
			Title:             o.Title,
			BalanceMin:        balance,
			TotalEstimatedMin: domain.TotalEstimated(o),
		})
		out.SumMin += balance
	}
	out.GlobalMin = domain.GlobalBalance(outcomes, bankMin)
	return out, nil
}

func (i *Interactor) Snapshot(ctx context.Context) ([]dto.OutcomeRecord, error) {
	outcomes, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]dto.OutcomeRecord, len(outcomes))
	for idx, o := range outcomes {
		records[idx] = toRecord(o)
	}
	return records, nil
}

func (i *Interactor) Restore(ctx context.Context, records []dto.OutcomeRecord) error {
	outcomes := make([]domain.Outcome, len(records))
	for idx, r := range records {
		outcomes[idx] = fromRecord(r)
	}
	return i.svc.Replace(ctx, outcomes)
}

func toStepOutput(outcomeID string, s domain.Step) dto.StepOutput {
	return dto.StepOutput{
		ID:           s.ID,
		OutcomeID:    outcomeID,
		Title:        s.Title,
		EstimatedMin: s.EstimatedMin,
		ActualMin:    s.ActualMin,
		Completed:    s.Completed,
		TimeSpentMin: s.TimeSpentMin,
	}
}

func toOutcomeOutput(o domain.Outcome) dto.OutcomeOutput {
	out := dto.OutcomeOutput{
		ID:                o.ID,
		Title:             o.Title,
		BalanceMin:        domain.OutcomeBalance(o),
		TotalEstimatedMin: domain.TotalEstimated(o),
	}
	for _, s := range o.Steps {
		out.Steps = append(out.Steps, toStepOutput(o.ID, s))
	}
	return out
}

func toRecord(o domain.Outcome) dto.OutcomeRecord {
	record := dto.OutcomeRecord{ID: o.ID, Title: o.Title, Steps: []dto.StepRecord{}}
	for _, s := range o.Steps {
		record.Steps = append(record.Steps, dto.StepRecord{
			ID:           s.ID,
			Title:        s.Title,
			EstimatedMin: s.EstimatedMin,
			ActualMin:    s.ActualMin,
			Completed:    s.Completed,
			TimeSpent:    s.TimeSpentMin,
		})
	}
	return record
}

func fromRecord(r dto.OutcomeRecord) domain.Outcome {
	outcome := domain.Outcome{ID: r.ID, Title: r.Title}
	for _, s := range r.Steps {
		outcome.Steps = append(outcome.Steps, domain.Step{
			ID:           s.ID,
			Title:        s.Title,
			EstimatedMin: s.EstimatedMin,
			ActualMin:    s.ActualMin,
			Completed:    s.Completed,
			TimeSpentMin: s.TimeSpent,
		})
	}
	return outcome
}
