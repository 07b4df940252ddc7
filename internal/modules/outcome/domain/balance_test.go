package domain_test

import (
	"testing"

	"tempo/internal/modules/outcome/domain"
)

func intPtr(v int) *int { return &v }

func TestStepBalance(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		step domain.Step
		want int
	}{
		{"pending step contributes nothing", domain.Step{EstimatedMin: 30}, 0},
		{"completed under estimate is surplus", domain.Step{EstimatedMin: 30, ActualMin: intPtr(20), Completed: true}, 10},
		{"completed over estimate is deficit", domain.Step{EstimatedMin: 30, ActualMin: intPtr(45), Completed: true}, -15},
		{"completed exactly on estimate", domain.Step{EstimatedMin: 30, ActualMin: intPtr(30), Completed: true}, 0},
		{"completed flag without actual contributes nothing", domain.Step{EstimatedMin: 30, Completed: true}, 0},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := domain.StepBalance(tc.step); got != tc.want {
				t.Fatalf("balance = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestOutcomeBalanceIgnoresPendingSteps(t *testing.T) {
	t.Parallel()
	o := domain.Outcome{Steps: []domain.Step{
		{EstimatedMin: 30, ActualMin: intPtr(20), Completed: true},
		{EstimatedMin: 60},
		{EstimatedMin: 10, ActualMin: intPtr(25), Completed: true},
	}}
	if got := domain.OutcomeBalance(o); got != -5 {
		t.Fatalf("outcome balance = %d, want -5", got)
	}
	if got := domain.TotalEstimated(o); got != 100 {
		t.Fatalf("total estimated = %d, want 100", got)
	}
}

func TestOutcomeWithNoCompletedStepsHasZeroBalance(t *testing.T) {
	t.Parallel()
	o := domain.Outcome{Steps: []domain.Step{
		{EstimatedMin: 30},
		{EstimatedMin: 45},
	}}
	if got := domain.OutcomeBalance(o); got != 0 {
		t.Fatalf("balance of pending-only outcome = %d, want 0", got)
	}
}

func TestGlobalBalanceIncludesBank(t *testing.T) {
	t.Parallel()
	outcomes := []domain.Outcome{
		{Steps: []domain.Step{{EstimatedMin: 30, ActualMin: intPtr(20), Completed: true}}},
		{Steps: []domain.Step{{EstimatedMin: 15, ActualMin: intPtr(40), Completed: true}}},
	}
	if got := domain.GlobalBalance(outcomes, 25); got != 10 {
		t.Fatalf("global balance = %d, want 10", got)
	}
	if got := domain.GlobalBalance(nil, 0); got != 0 {
		t.Fatalf("empty global balance = %d, want 0", got)
	}
}

func TestStepCompleteFoldsSpentAndFinalMinutes(t *testing.T) {
	t.Parallel()
	s := domain.Step{EstimatedMin: 30, TimeSpentMin: 5}
	s.Complete(3)
	if !s.Completed {
		t.Fatalf("step should be completed")
	}
	if s.ActualMin == nil || *s.ActualMin != 8 {
		t.Fatalf("actual = %v, want 8", s.ActualMin)
	}
	if s.TimeSpentMin != 0 {
		t.Fatalf("time spent should reset, got %d", s.TimeSpentMin)
	}
}

func TestFindAndRemoveStep(t *testing.T) {
	t.Parallel()
	o := domain.Outcome{Steps: []domain.Step{{ID: "s1"}, {ID: "s2"}}}
	if s, ok := o.FindStep("s2"); !ok || s.ID != "s2" {
		t.Fatalf("find s2 failed")
	}
	if _, ok := o.FindStep("s3"); ok {
		t.Fatalf("s3 should not be found")
	}
	if !o.RemoveStep("s1") {
		t.Fatalf("remove s1 should succeed")
	}
	if o.RemoveStep("s1") {
		t.Fatalf("second remove should report missing")
	}
	if len(o.Steps) != 1 || o.Steps[0].ID != "s2" {
		t.Fatalf("unexpected steps after remove: %v", o.Steps)
	}
}
