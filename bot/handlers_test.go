package bot

import (
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/m3rciful/surveybot/catalog"
	"github.com/m3rciful/surveybot/config"
	tele "gopkg.in/telebot.v4"
)

const testSchema = `
CREATE TABLE users (
	user_id  BIGINT PRIMARY KEY,
	username TEXT
);
CREATE TABLE answers (
	user_id         BIGINT NOT NULL,
	question_number INT    NOT NULL,
	answer          TEXT   NOT NULL,
	PRIMARY KEY (user_id, question_number)
);`

// MockContext definition for internal use
type MockContext struct {
	tele.Context
	User     *tele.User
	Upd      tele.Update
	Sent     []interface{}
	SentOpts [][]interface{}
	Replies  []interface{}
	Acks     []*tele.CallbackResponse
	store    map[string]interface{}
}

func (m *MockContext) Sender() *tele.User  { return m.User }
func (m *MockContext) Chat() *tele.Chat    { return &tele.Chat{ID: 100} }
func (m *MockContext) Update() tele.Update { return m.Upd }
func (m *MockContext) Callback() *tele.Callback {
	return m.Upd.Callback
}
func (m *MockContext) Send(what interface{}, opts ...interface{}) error {
	m.Sent = append(m.Sent, what)
	m.SentOpts = append(m.SentOpts, opts)
	return nil
}
func (m *MockContext) Reply(what interface{}, opts ...interface{}) error {
	m.Replies = append(m.Replies, what)
	return nil
}
func (m *MockContext) Respond(resp ...*tele.CallbackResponse) error {
	if len(resp) > 0 {
		m.Acks = append(m.Acks, resp[0])
	} else {
		m.Acks = append(m.Acks, &tele.CallbackResponse{})
	}
	return nil
}
func (m *MockContext) Set(key string, val interface{}) {
	if m.store == nil {
		m.store = make(map[string]interface{})
	}
	m.store[key] = val
}
func (m *MockContext) Get(key string) interface{} {
	return m.store[key]
}

func newTestApp(t *testing.T) (*App, *sqlx.DB) {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.Exec(testSchema); err != nil {
		t.Fatal(err)
	}

	cat := catalog.New([]catalog.Question{
		{Prompt: "First question?", Options: []string{"A) yes", "B) no"}},
		{Prompt: "Second question?", Options: []string{"A) one", "B) two"}},
	})
	cfg := &config.Config{}
	cfg.Telegram.AdminIDs = []int64{42}
	return New(cfg, db, cat), db
}

func textCtx(userID int64) *MockContext {
	return &MockContext{User: &tele.User{ID: userID, Username: "tester"}}
}

func callbackCtx(userID int64, data string) *MockContext {
	ctx := textCtx(userID)
	ctx.Upd = tele.Update{Callback: &tele.Callback{Data: data}}
	return ctx
}

func lastSentString(t *testing.T, ctx *MockContext) string {
	t.Helper()
	if len(ctx.Sent) == 0 {
		t.Fatal("nothing sent")
	}
	s, ok := ctx.Sent[len(ctx.Sent)-1].(string)
	if !ok {
		t.Fatalf("sent value is %T, want string", ctx.Sent[len(ctx.Sent)-1])
	}
	return s
}

func TestStartSendsGreetingAndFirstQuestion(t *testing.T) {
	app, db := newTestApp(t)
	ctx := textCtx(7)

	if err := app.handleStart(ctx); err != nil {
		t.Fatal(err)
	}

	if len(ctx.Sent) != 2 {
		t.Fatalf("sent %d messages, want 2", len(ctx.Sent))
	}
	greeting := ctx.Sent[0].(string)
	if !strings.Contains(greeting, "anonymous") {
		t.Errorf("unexpected greeting: %s", greeting)
	}
	question := ctx.Sent[1].(string)
	if !strings.Contains(question, "Question 1/2") || !strings.Contains(question, "First question?") {
		t.Errorf("unexpected question text: %s", question)
	}

	// Question carries the inline keyboard, two buttons per row.
	opts := ctx.SentOpts[1]
	if len(opts) == 0 {
		t.Fatal("question sent without options")
	}
	so, ok := opts[0].(*tele.SendOptions)
	if !ok || so.ReplyMarkup == nil {
		t.Fatal("question sent without keyboard")
	}
	rows := so.ReplyMarkup.InlineKeyboard
	if len(rows) != 2 || len(rows[0]) != 2 || len(rows[1]) != 2 {
		t.Fatalf("unexpected keyboard shape: %v", rows)
	}

	var users int
	if err := db.Get(&users, `SELECT COUNT(*) FROM users`); err != nil {
		t.Fatal(err)
	}
	if users != 1 {
		t.Errorf("users = %d, want 1", users)
	}
}

func TestStartAlwaysRestartsFromFirstQuestion(t *testing.T) {
	app, _ := newTestApp(t)

	ctx := callbackCtx(7, "\fanswer|1|A")
	if err := app.handleAnswer(ctx); err != nil {
		t.Fatal(err)
	}

	restart := textCtx(7)
	if err := app.handleStart(restart); err != nil {
		t.Fatal(err)
	}
	question := lastSentString(t, restart)
	if !strings.Contains(question, "Question 1/2") {
		t.Errorf("restart did not return to question 1: %s", question)
	}
}

func TestAnswerRecordsAndAdvances(t *testing.T) {
	app, db := newTestApp(t)
	ctx := callbackCtx(7, "\fanswer|1|B")

	if err := app.handleAnswer(ctx); err != nil {
		t.Fatal(err)
	}

	var answer string
	if err := db.Get(&answer, `SELECT answer FROM answers WHERE user_id = 7 AND question_number = 1`); err != nil {
		t.Fatal(err)
	}
	if answer != "B" {
		t.Errorf("stored answer = %q, want B", answer)
	}

	if len(ctx.Acks) != 1 || !strings.Contains(ctx.Acks[0].Text, "Answer B saved") {
		t.Fatalf("unexpected callback ack: %+v", ctx.Acks)
	}

	question := lastSentString(t, ctx)
	if !strings.Contains(question, "Question 2/2") {
		t.Errorf("did not advance to question 2: %s", question)
	}
}

func TestAnswerOnLastQuestionCompletes(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := callbackCtx(7, "\fanswer|2|A")

	if err := app.handleAnswer(ctx); err != nil {
		t.Fatal(err)
	}

	done := lastSentString(t, ctx)
	if !strings.Contains(done, "answered all the questions") {
		t.Errorf("unexpected completion text: %s", done)
	}
	if len(ctx.SentOpts[len(ctx.SentOpts)-1]) != 0 {
		// completion message must not carry a keyboard
		if so, ok := ctx.SentOpts[len(ctx.SentOpts)-1][0].(*tele.SendOptions); ok && so.ReplyMarkup != nil {
			t.Error("completion message carries a keyboard")
		}
	}
}

func TestAnswerMalformedPayloadRejected(t *testing.T) {
	app, db := newTestApp(t)

	for _, data := range []string{"\fanswer|x|B", "\fanswer|1|Z", "\fanswer|0|A", "\fanswer|junk"} {
		ctx := callbackCtx(7, data)
		if err := app.handleAnswer(ctx); err != nil {
			t.Fatalf("payload %q: %v", data, err)
		}
		if len(ctx.Acks) != 1 || ctx.Acks[0].Text != "Unsupported action." {
			t.Errorf("payload %q: unexpected ack %+v", data, ctx.Acks)
		}
		if len(ctx.Sent) != 0 {
			t.Errorf("payload %q: unexpected message sent", data)
		}
	}

	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM answers`); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("answers stored for malformed payloads: %d", count)
	}
}

func TestStatsRequiresAdmin(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := textCtx(7)

	if err := app.handleStats(ctx); err != nil {
		t.Fatal(err)
	}
	if len(ctx.Replies) != 1 || !strings.Contains(ctx.Replies[0].(string), "not allowed") {
		t.Fatalf("expected refusal reply, got %+v", ctx.Replies)
	}
	if len(ctx.Sent) != 0 {
		t.Error("stats leaked to non-admin")
	}
}

func TestStatsForAdmin(t *testing.T) {
	app, _ := newTestApp(t)

	if err := app.handleAnswer(callbackCtx(7, "\fanswer|1|A")); err != nil {
		t.Fatal(err)
	}

	ctx := textCtx(42)
	if err := app.handleStats(ctx); err != nil {
		t.Fatal(err)
	}
	report := lastSentString(t, ctx)
	if !strings.Contains(report, "Total respondents: 1") {
		t.Errorf("unexpected report: %s", report)
	}
	if !strings.Contains(report, "Question 1 — A: 1 answers") {
		t.Errorf("missing per-question line: %s", report)
	}
}

func TestResetClearsAnswersKeepsUsers(t *testing.T) {
	app, db := newTestApp(t)

	if err := app.handleStart(textCtx(7)); err != nil {
		t.Fatal(err)
	}
	if err := app.handleAnswer(callbackCtx(7, "\fanswer|1|A")); err != nil {
		t.Fatal(err)
	}

	ctx := textCtx(42)
	if err := app.handleReset(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(lastSentString(t, ctx), "removed") {
		t.Error("missing reset confirmation")
	}

	var answers, users int
	if err := db.Get(&answers, `SELECT COUNT(*) FROM answers`); err != nil {
		t.Fatal(err)
	}
	if err := db.Get(&users, `SELECT COUNT(*) FROM users`); err != nil {
		t.Fatal(err)
	}
	if answers != 0 {
		t.Errorf("answers = %d, want 0", answers)
	}
	if users != 1 {
		t.Errorf("users = %d, want 1", users)
	}
}

func TestResetRequiresAdmin(t *testing.T) {
	app, db := newTestApp(t)

	if err := app.handleAnswer(callbackCtx(7, "\fanswer|1|A")); err != nil {
		t.Fatal(err)
	}

	ctx := textCtx(7)
	if err := app.handleReset(ctx); err != nil {
		t.Fatal(err)
	}
	if len(ctx.Replies) != 1 {
		t.Fatalf("expected refusal reply, got %+v", ctx.Replies)
	}

	var answers int
	if err := db.Get(&answers, `SELECT COUNT(*) FROM answers`); err != nil {
		t.Fatal(err)
	}
	if answers != 1 {
		t.Errorf("answers = %d, want 1 (reset must not run)", answers)
	}
}

func TestHelpListsVisibleCommandsOnly(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := textCtx(7)

	if err := app.handleHelp(ctx); err != nil {
		t.Fatal(err)
	}
	help := lastSentString(t, ctx)
	if !strings.Contains(help, "/start") || !strings.Contains(help, "/help") {
		t.Errorf("help misses public commands: %s", help)
	}
	if strings.Contains(help, "/stats") || strings.Contains(help, "/reset") {
		t.Errorf("help leaks admin commands: %s", help)
	}
}
