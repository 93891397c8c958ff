package bot

import (
	"fmt"
	"strings"

	"log/slog"

	"github.com/m3rciful/surveybot/logger"
	"github.com/m3rciful/surveybot/metrics"
	"github.com/m3rciful/surveybot/survey"
	"github.com/m3rciful/surveybot/telegram/callbacks"
	"github.com/m3rciful/surveybot/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

const greetingText = "Hi! 👋 This is an awareness survey.\n\n" +
	"I will ask you questions one at a time. Pick your answer with the buttons below.\n\n" +
	"The survey is fully anonymous."

const unsupportedText = "Unsupported action."

// handleStart registers the user and always restarts the survey from the
// first question. Previously recorded answers stay and get overwritten as
// the user advances.
func (a *App) handleStart(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	ctx := helpers.BuildContext(c)

	if err := a.store.RegisterUser(ctx, sender.ID, sender.Username); err != nil {
		// Answer rows do not depend on the user row, keep going.
		logger.Warn(ctx, "survey", "user.register",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
	}

	// Greeting goes out synchronously so it always lands before question 1.
	if err := c.Send(greetingText); err != nil {
		return fmt.Errorf("send greeting: %w", err)
	}

	return a.flow.Advance(ctx, telePresenter{c: c}, 1)
}

// handleAnswer records the chosen label and advances the survey. The question
// index and label ride in the callback payload, so no per-user cursor exists.
func (a *App) handleAnswer(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	ctx := helpers.BuildContext(c)

	question, label, err := callbacks.PayloadIntString(c, "|")
	if err != nil || question < 1 || !survey.ValidLabel(label) {
		logger.Warn(ctx, "survey", "answer.malformed",
			slog.String("status", "skip"),
			slog.String("payload", logger.SanitizeLimit(callbacks.CallbackPayload(c), 64)),
		)
		return c.Respond(&tele.CallbackResponse{Text: unsupportedText})
	}

	if err := a.store.RecordAnswer(ctx, sender.ID, question, label); err != nil {
		_ = c.Respond(&tele.CallbackResponse{Text: "Failed to save the answer, try again."})
		return err
	}
	metrics.AnswersRecorded.Inc()

	if err := c.Respond(&tele.CallbackResponse{
		Text: fmt.Sprintf("Answer %s saved ✅", label),
	}); err != nil {
		logger.Warn(ctx, "survey", "callback.ack",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
	}

	next := question + 1
	if next > a.catalog.Len() {
		metrics.SurveysCompleted.Inc()
	}
	return a.flow.Advance(ctx, telePresenter{c: c}, next)
}

// handleStats renders aggregate statistics for administrators.
// The guard stays in the handler because commands typed as plain text bypass
// the admin route middleware.
func (a *App) handleStats(c tele.Context) error {
	sender := c.Sender()
	if sender == nil || !a.reporter.IsAuthorized(sender.ID) {
		return a.handleAdminReject(c)
	}
	ctx := helpers.BuildContext(c)

	report, err := a.reporter.StatsReport(ctx)
	if err != nil {
		return err
	}
	return helpers.SendText(c, report)
}

// handleReset wipes all recorded answers. Registered users are kept.
func (a *App) handleReset(c tele.Context) error {
	sender := c.Sender()
	if sender == nil || !a.reporter.IsAuthorized(sender.ID) {
		return a.handleAdminReject(c)
	}
	ctx := helpers.BuildContext(c)

	report, err := a.reporter.ResetReport(ctx)
	if err != nil {
		return err
	}
	return helpers.SendText(c, report)
}

func (a *App) handleHelp(c tele.Context) error {
	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, cmd := range a.Registry().ListCommands(true) {
		fmt.Fprintf(&b, "/%s — %s\n", cmd.Text, cmd.Description)
	}
	return helpers.SendText(c, b.String())
}

func (a *App) handleAdminReject(c tele.Context) error {
	return c.Reply(survey.RefusalMessage)
}

func (a *App) handleUnknownCallback(c tele.Context) error {
	return c.Respond(&tele.CallbackResponse{Text: unsupportedText})
}

func (a *App) handleUnknownText(c tele.Context) error {
	return helpers.SendText(c, "Send /start to begin the survey.")
}
