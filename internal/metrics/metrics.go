package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vplay_sessions_started_total",
		Help: "Number of playback sessions started (engine load requests).",
	})

	SessionsFinished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vplay_sessions_finished_total",
		Help: "Number of sessions that reached natural end of media.",
	})

	SessionErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vplay_session_errors_total",
		Help: "Number of sessions terminated by an engine error.",
	})

	ShortcutsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vplay_shortcuts_dispatched_total",
		Help: "Shortcut actions dispatched, by action.",
	}, []string{"action"})

	AutoAdvances = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vplay_auto_advances_total",
		Help: "Times playback advanced automatically to the next item.",
	})
)
