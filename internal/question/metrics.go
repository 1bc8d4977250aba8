package question

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK    = "ok"
	outcomeEmpty = "empty"
	outcomeError = "error"
)

var (
	sourceFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quiz_source_fetch_total",
		Help: "Knowledge source fetches by category and outcome.",
	}, []string{"category", "outcome"})

	sourceConsecutiveFailures = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "quiz_source_consecutive_failures",
		Help: "Fetches in a row that returned nothing usable, per category.",
	}, []string{"category"})

	questionsServedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quiz_questions_served_total",
		Help: "Questions removed from the pool and returned to clients.",
	}, []string{"category"})

	questionsReplenishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quiz_questions_replenished_total",
		Help: "Questions inserted into the pool from the knowledge source.",
	}, []string{"category"})
)
