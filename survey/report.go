package survey

import (
	"context"
	"fmt"
	"strings"

	"github.com/m3rciful/surveybot/logger"
	"log/slog"
)

// RefusalMessage is sent to non-admin callers of admin commands.
const RefusalMessage = "⛔ You are not allowed to use this command."

// Aggregator is the slice of Store the reporter needs; kept narrow so tests
// can verify the authorization gate without a database.
type Aggregator interface {
	Aggregate(ctx context.Context) (int, []AnswerCount, error)
	ClearAnswers(ctx context.Context) error
}

// Reporter formats aggregate statistics for administrators. The allow-list is
// injected at construction; it never consults ambient state.
type Reporter struct {
	store  Aggregator
	admins map[int64]struct{}
}

// NewReporter builds a reporter gated by the given admin allow-list.
func NewReporter(store Aggregator, adminIDs []int64) *Reporter {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &Reporter{store: store, admins: admins}
}

// IsAuthorized reports whether the user may invoke admin operations.
// Callers must check this before any read or write.
func (r *Reporter) IsAuthorized(userID int64) bool {
	_, ok := r.admins[userID]
	return ok
}

// StatsReport renders the aggregate statistics as a human-readable summary.
func (r *Reporter) StatsReport(ctx context.Context) (string, error) {
	respondents, counts, err := r.store.Aggregate(ctx)
	if err != nil {
		return "", fmt.Errorf("stats report: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Survey statistics:\n\nTotal respondents: %d\n\n", respondents)
	for _, c := range counts {
		fmt.Fprintf(&b, "Question %d — %s: %d answers\n", c.Question, c.Label, c.Count)
	}

	logger.Info(ctx, "report", "stats.rendered",
		slog.String("status", "ok"),
		slog.Int("respondents", respondents),
		slog.Int("answers", len(counts)),
	)
	return b.String(), nil
}

// ResetReport deletes all stored answers and confirms completion.
// The user registry is untouched.
func (r *Reporter) ResetReport(ctx context.Context) (string, error) {
	if err := r.store.ClearAnswers(ctx); err != nil {
		return "", fmt.Errorf("reset report: %w", err)
	}
	logger.Info(ctx, "report", "answers.reset",
		slog.String("status", "ok"),
	)
	return "🧹 All answers have been removed.", nil
}
