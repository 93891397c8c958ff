package survey

import (
	"context"
	"fmt"
	"strings"

	"github.com/m3rciful/surveybot/catalog"
	"github.com/m3rciful/surveybot/logger"
	"github.com/m3rciful/surveybot/telegram/format"
	"log/slog"
)

// answerLabels is the fixed choice set offered for every question, regardless
// of how many option lines the question text defines.
var answerLabels = []string{"A", "B", "C", "D"}

// AnswerLabels returns a copy of the fixed answer label set.
func AnswerLabels() []string {
	return append([]string(nil), answerLabels...)
}

// ValidLabel reports whether the label belongs to the fixed answer set.
func ValidLabel(label string) bool {
	for _, l := range answerLabels {
		if l == label {
			return true
		}
	}
	return false
}

// Presenter renders flow output to the user. The transport adapter implements
// it on top of Telegram; tests supply fakes.
type Presenter interface {
	// SendQuestion delivers the question text together with an interactive
	// control offering exactly the given labels, tagged with the question
	// index so the response is self-describing.
	SendQuestion(question, total int, text string, labels []string) error
	// SendComplete delivers the terminal "survey complete" notification.
	SendComplete() error
}

// Flow decides, per inbound event, whether to present the next question or
// declare completion. It keeps no per-user cursor: continuation state rides
// in the control tag echoed back by the transport.
type Flow struct {
	catalog *catalog.Catalog
}

// NewFlow builds the progression engine over an immutable catalog.
func NewFlow(cat *catalog.Catalog) *Flow {
	return &Flow{catalog: cat}
}

// Advance presents question next (1-based) or the completion notice when the
// catalog is exhausted. Callers supply 1 for a fresh session or previous+1
// after an answer.
func (f *Flow) Advance(ctx context.Context, p Presenter, next int) error {
	total := f.catalog.Len()
	if next > total {
		logger.Debug(ctx, "survey", "survey.complete",
			slog.String("status", "ok"),
			slog.Int("questions", total),
		)
		return p.SendComplete()
	}

	q, ok := f.catalog.At(next)
	if !ok {
		return fmt.Errorf("question index %d out of range [1, %d]", next, total)
	}

	// The message is sent in Markdown mode, keep question content literal.
	text := fmt.Sprintf("*Question %d/%d*\n\n%s", next, total, format.EscapeV1(q.Prompt))
	if len(q.Options) > 0 {
		opts := make([]string, len(q.Options))
		for i, o := range q.Options {
			opts[i] = format.EscapeV1(o)
		}
		text += "\n\n" + strings.Join(opts, "\n")
	}

	if err := p.SendQuestion(next, total, text, AnswerLabels()); err != nil {
		return fmt.Errorf("send question %d: %w", next, err)
	}
	logger.Debug(ctx, "survey", "question.sent",
		slog.String("status", "ok"),
		slog.Int("question", next),
		slog.Int("questions", total),
	)
	return nil
}
