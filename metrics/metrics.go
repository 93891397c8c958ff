// Package metrics exposes Prometheus counters for the bot runtime.
// The listener is optional; when no address is configured the counters are
// still registered and simply never scraped.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m3rciful/surveybot/logger"
	"log/slog"
)

var (
	// UpdatesReceived counts inbound Telegram updates by kind.
	UpdatesReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "surveybot_updates_received_total",
			Help: "Total number of Telegram updates received",
		},
		[]string{"kind"},
	)

	// AnswersRecorded counts stored answer upserts.
	AnswersRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "surveybot_answers_recorded_total",
			Help: "Total number of answers recorded",
		},
	)

	// SurveysCompleted counts terminal completion messages sent.
	SurveysCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "surveybot_surveys_completed_total",
			Help: "Total number of survey completion notices sent",
		},
	)

	// SendFailures counts outbound deliveries that exhausted retries.
	SendFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "surveybot_send_failures_total",
			Help: "Total number of failed outbound Telegram calls",
		},
	)
)

// Init registers all collectors. It must be called once before Serve.
func Init() {
	prometheus.MustRegister(UpdatesReceived)
	prometheus.MustRegister(AnswersRecorded)
	prometheus.MustRegister(SurveysCompleted)
	prometheus.MustRegister(SendFailures)
}

// Serve starts the /metrics listener on addr and returns a shutdown function.
// An empty addr disables the listener and returns a no-op shutdown.
func Serve(addr string) func(ctx context.Context) error {
	if addr == "" {
		return func(context.Context) error { return nil }
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info(logger.Background(), "metrics", "listener.start",
			slog.String("listen", addr),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(logger.Background(), "metrics", "listener.fail",
				slog.String("listen", addr),
				slog.String("err", err.Error()),
			)
		}
	}()

	return srv.Shutdown
}
