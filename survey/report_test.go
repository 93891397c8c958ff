package survey

import (
	"context"
	"strings"
	"testing"
)

type fakeAggregator struct {
	respondents    int
	counts         []AnswerCount
	aggregateCalls int
	clearCalls     int
}

func (f *fakeAggregator) Aggregate(context.Context) (int, []AnswerCount, error) {
	f.aggregateCalls++
	return f.respondents, f.counts, nil
}

func (f *fakeAggregator) ClearAnswers(context.Context) error {
	f.clearCalls++
	return nil
}

func TestIsAuthorized(t *testing.T) {
	r := NewReporter(&fakeAggregator{}, []int64{10, 20})
	if !r.IsAuthorized(10) || !r.IsAuthorized(20) {
		t.Error("configured admins must be authorized")
	}
	if r.IsAuthorized(30) || r.IsAuthorized(0) {
		t.Error("unknown ids must not be authorized")
	}
}

func TestStatsReport(t *testing.T) {
	agg := &fakeAggregator{
		respondents: 3,
		counts: []AnswerCount{
			{Question: 1, Label: "A", Count: 2},
			{Question: 2, Label: "D", Count: 1},
		},
	}
	r := NewReporter(agg, []int64{1})

	text, err := r.StatsReport(context.Background())
	if err != nil {
		t.Fatalf("StatsReport: %v", err)
	}
	if !strings.Contains(text, "Total respondents: 3") {
		t.Errorf("missing respondent total: %q", text)
	}
	if !strings.Contains(text, "Question 1 — A: 2 answers") {
		t.Errorf("missing count line: %q", text)
	}
	if !strings.Contains(text, "Question 2 — D: 1 answers") {
		t.Errorf("missing count line: %q", text)
	}
	if agg.aggregateCalls != 1 {
		t.Errorf("aggregate calls = %d, want 1", agg.aggregateCalls)
	}
}

func TestResetReport(t *testing.T) {
	agg := &fakeAggregator{}
	r := NewReporter(agg, []int64{1})

	text, err := r.ResetReport(context.Background())
	if err != nil {
		t.Fatalf("ResetReport: %v", err)
	}
	if text == "" {
		t.Error("expected confirmation text")
	}
	if agg.clearCalls != 1 {
		t.Errorf("clear calls = %d, want 1", agg.clearCalls)
	}
	if agg.aggregateCalls != 0 {
		t.Errorf("reset must not aggregate, calls = %d", agg.aggregateCalls)
	}
}

func TestResetThenAggregateOnRealStore(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for _, id := range []int64{1, 2, 3} {
		if err := s.RegisterUser(ctx, id, "u"); err != nil {
			t.Fatal(err)
		}
		if err := s.RecordAnswer(ctx, id, 1, "B"); err != nil {
			t.Fatal(err)
		}
	}
	r := NewReporter(s, []int64{42})

	if _, err := r.ResetReport(ctx); err != nil {
		t.Fatal(err)
	}
	text, err := r.StatsReport(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "Total respondents: 0") {
		t.Errorf("expected empty aggregate after reset: %q", text)
	}
	if strings.Contains(text, "Question") {
		t.Errorf("expected no count lines after reset: %q", text)
	}
}
