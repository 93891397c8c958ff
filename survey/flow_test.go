package survey

import (
	"context"
	"strings"
	"testing"

	"github.com/m3rciful/surveybot/catalog"
)

type fakePresenter struct {
	questions []int
	texts     []string
	labels    [][]string
	completed int
}

func (p *fakePresenter) SendQuestion(question, total int, text string, labels []string) error {
	p.questions = append(p.questions, question)
	p.texts = append(p.texts, text)
	p.labels = append(p.labels, labels)
	return nil
}

func (p *fakePresenter) SendComplete() error {
	p.completed++
	return nil
}

func threeQuestionCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Question{
		{Prompt: "first?", Options: []string{"A. one", "B. two", "C. three", "D. four"}},
		{Prompt: "second?", Options: []string{"A. yes", "B. no"}},
		{Prompt: "third?"},
	})
}

func TestAdvanceSendsQuestion(t *testing.T) {
	flow := NewFlow(threeQuestionCatalog())
	p := &fakePresenter{}

	if err := flow.Advance(context.Background(), p, 1); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if len(p.questions) != 1 || p.questions[0] != 1 {
		t.Fatalf("questions sent = %v, want [1]", p.questions)
	}
	if p.completed != 0 {
		t.Error("unexpected completion")
	}
	text := p.texts[0]
	if !strings.Contains(text, "Question 1/3") || !strings.Contains(text, "first?") {
		t.Errorf("rendered text = %q", text)
	}
	if !strings.Contains(text, "A. one") {
		t.Errorf("options missing from text: %q", text)
	}
}

func TestAdvanceEscapesMarkdownInPrompt(t *testing.T) {
	flow := NewFlow(catalog.New([]catalog.Question{
		{Prompt: "is 2*3 == 6?", Options: []string{"A. it_is"}},
	}))
	p := &fakePresenter{}

	if err := flow.Advance(context.Background(), p, 1); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	text := p.texts[0]
	if !strings.Contains(text, `2\*3`) {
		t.Errorf("prompt not escaped: %q", text)
	}
	if !strings.Contains(text, `it\_is`) {
		t.Errorf("option not escaped: %q", text)
	}
	// the bold header markers must survive escaping
	if !strings.Contains(text, "*Question 1/1*") {
		t.Errorf("header lost formatting: %q", text)
	}
}

func TestAdvanceFixedLabelSet(t *testing.T) {
	flow := NewFlow(threeQuestionCatalog())
	p := &fakePresenter{}

	// question 2 defines two option lines, question 3 none; the control
	// still offers the full fixed label set
	for _, n := range []int{2, 3} {
		if err := flow.Advance(context.Background(), p, n); err != nil {
			t.Fatalf("Advance(%d): %v", n, err)
		}
	}
	for i, labels := range p.labels {
		if len(labels) != 4 {
			t.Fatalf("labels[%d] = %v, want fixed set of 4", i, labels)
		}
		for j, want := range []string{"A", "B", "C", "D"} {
			if labels[j] != want {
				t.Errorf("labels[%d][%d] = %q, want %q", i, j, labels[j], want)
			}
		}
	}
}

func TestAdvancePastEndCompletes(t *testing.T) {
	flow := NewFlow(threeQuestionCatalog())

	for _, n := range []int{4, 5, 100} {
		p := &fakePresenter{}
		if err := flow.Advance(context.Background(), p, n); err != nil {
			t.Fatalf("Advance(%d): %v", n, err)
		}
		if p.completed != 1 {
			t.Errorf("Advance(%d): completed = %d, want terminal message", n, p.completed)
		}
		if len(p.questions) != 0 {
			t.Errorf("Advance(%d): sent question %v past the end", n, p.questions)
		}
	}
}

func TestAdvanceRejectsNonPositiveIndex(t *testing.T) {
	flow := NewFlow(threeQuestionCatalog())
	p := &fakePresenter{}
	if err := flow.Advance(context.Background(), p, 0); err == nil {
		t.Fatal("expected error for index 0")
	}
	if len(p.questions) != 0 || p.completed != 0 {
		t.Error("nothing should be rendered for an invalid index")
	}
}

func TestValidLabel(t *testing.T) {
	for _, l := range []string{"A", "B", "C", "D"} {
		if !ValidLabel(l) {
			t.Errorf("ValidLabel(%q) = false", l)
		}
	}
	for _, l := range []string{"", "E", "a", "AA"} {
		if ValidLabel(l) {
			t.Errorf("ValidLabel(%q) = true", l)
		}
	}
}
