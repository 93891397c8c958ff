// Package survey implements the question progression flow, answer storage,
// and admin reporting for the survey bot.
package survey

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/surveybot/logger"
	"log/slog"
)

// AnswerCount is one aggregated row: how many users picked a label for a question.
type AnswerCount struct {
	Question int    `db:"question_number"`
	Label    string `db:"answer"`
	Count    int    `db:"cnt"`
}

// Store persists users and their answers. Every operation runs a single
// statement, so concurrent writes for the same (user, question) pair race
// only on last-write-wins.
type Store struct {
	db *sqlx.DB
}

// NewStore wraps an open database handle.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// RegisterUser inserts the user if not already present. An existing row is
// never updated, so the first seen username wins.
func (s *Store) RegisterUser(ctx context.Context, userID int64, username string) error {
	query := s.db.Rebind(`INSERT INTO users (user_id, username) VALUES (?, ?) ON CONFLICT (user_id) DO NOTHING`)
	if _, err := s.db.ExecContext(ctx, query, userID, username); err != nil {
		logger.Error(ctx, "db", "user.register",
			slog.String("status", "fail"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("register user %d: %w", userID, err)
	}
	return nil
}

// RecordAnswer upserts the answer for (user, question). A later answer for
// the same pair overwrites the earlier one; no history is retained.
func (s *Store) RecordAnswer(ctx context.Context, userID int64, question int, label string) error {
	query := s.db.Rebind(`INSERT INTO answers (user_id, question_number, answer) VALUES (?, ?, ?)
		ON CONFLICT (user_id, question_number) DO UPDATE SET answer = excluded.answer`)
	if _, err := s.db.ExecContext(ctx, query, userID, question, label); err != nil {
		logger.Error(ctx, "db", "answer.record",
			slog.String("status", "fail"),
			slog.Int64("user_id", userID),
			slog.Int("question", question),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("record answer (%d, %d): %w", userID, question, err)
	}
	logger.Debug(ctx, "db", "answer.record",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.Int("question", question),
		slog.String("label", label),
	)
	return nil
}

// CountAnswers returns the number of distinct questions the user has answered.
func (s *Store) CountAnswers(ctx context.Context, userID int64) (int, error) {
	var count int
	query := s.db.Rebind(`SELECT COUNT(*) FROM answers WHERE user_id = ?`)
	if err := s.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("count answers for %d: %w", userID, err)
	}
	return count, nil
}

// Aggregate returns the distinct respondent count and per-(question, label)
// occurrence counts over all stored answers. Stray question indices are
// included verbatim; no filtering against the catalog happens here.
func (s *Store) Aggregate(ctx context.Context) (int, []AnswerCount, error) {
	var respondents int
	if err := s.db.GetContext(ctx, &respondents, `SELECT COUNT(DISTINCT user_id) FROM answers`); err != nil {
		return 0, nil, fmt.Errorf("count respondents: %w", err)
	}

	counts := []AnswerCount{}
	err := s.db.SelectContext(ctx, &counts,
		`SELECT question_number, answer, COUNT(*) AS cnt FROM answers
		 GROUP BY question_number, answer
		 ORDER BY question_number, answer`)
	if err != nil {
		return 0, nil, fmt.Errorf("aggregate answers: %w", err)
	}
	return respondents, counts, nil
}

// ClearAnswers deletes every answer row. User rows are untouched.
func (s *Store) ClearAnswers(ctx context.Context) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM answers`)
	if err != nil {
		return fmt.Errorf("clear answers: %w", err)
	}
	deleted, _ := res.RowsAffected()
	logger.Info(ctx, "db", "answers.cleared",
		slog.String("status", "ok"),
		slog.Int64("count", deleted),
	)
	return nil
}
