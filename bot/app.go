// Package bot assembles the survey application on top of the telegram runtime:
// command registry, callback wiring, and the middleware chain.
package bot

import (
	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/surveybot/catalog"
	"github.com/m3rciful/surveybot/config"
	"github.com/m3rciful/surveybot/survey"
	tg "github.com/m3rciful/surveybot/telegram"
	"github.com/m3rciful/surveybot/telegram/helpers"
	"github.com/m3rciful/surveybot/telegram/router"

	tele "gopkg.in/telebot.v4"
)

const rateLimitedText = "⏳ Too many requests. Please slow down."

// App owns the survey services and knows how to wire them into the bot runtime.
type App struct {
	cfg      *config.Config
	catalog  *catalog.Catalog
	store    *survey.Store
	flow     *survey.Flow
	reporter *survey.Reporter

	reg *tg.Registry
}

// New builds the application services over an open database handle and a
// loaded question catalog.
func New(cfg *config.Config, db *sqlx.DB, cat *catalog.Catalog) *App {
	store := survey.NewStore(db)
	return &App{
		cfg:      cfg,
		catalog:  cat,
		store:    store,
		flow:     survey.NewFlow(cat),
		reporter: survey.NewReporter(store, cfg.Telegram.AdminIDs),
	}
}

// Registry declares all commands and callbacks the bot serves.
// The registry is built once and reused across calls.
func (a *App) Registry() *tg.Registry {
	if a.reg != nil {
		return a.reg
	}
	reg := tg.NewRegistry()

	reg.RegisterCommand("/start", tg.Command{
		Handler:     a.handleStart,
		Description: "Start the survey",
	})
	reg.RegisterCommand("/help", tg.Command{
		Handler:     a.handleHelp,
		Description: "Show available commands",
	})
	reg.RegisterCommand("/stats", tg.Command{
		Handler:     a.handleStats,
		Description: "Show survey statistics",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.RegisterCommand("/reset", tg.Command{
		Handler:     a.handleReset,
		Description: "Remove all recorded answers",
		AdminOnly:   true,
		Hidden:      true,
	})

	_ = reg.RegisterCallback(answerCallbackKey, a.handleAnswer)
	reg.SetCallbackNotFound(a.handleUnknownCallback)
	reg.SetTextFallback(a.handleUnknownText)

	a.reg = reg
	return reg
}

// RunOptions composes the full runtime configuration for telegram.RunTelegram.
func (a *App) RunOptions() tg.RunOptions {
	reg := a.Registry()

	onLimited := func(c tele.Context) error {
		return helpers.SendText(c, rateLimitedText)
	}

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminIDs:      a.cfg.Telegram.AdminIDs,
		OnAdminReject: a.handleAdminReject,
	})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.TextRoute(reg, router.TextOptions{}))

	return tg.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: tg.DefaultMiddlewares(a.cfg, onLimited),
		Routes:      routes,
	}
}
