// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package answers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/AleutianAI/portal/services/answers/domain"
)

// =============================================================================
// Prometheus Metrics for the Answers Engine
// =============================================================================

var (
	// answersQueriesTotal counts answered queries by intent and answer type.
	// Labels: intent (PERSON_LOOKUP, ...), answer_type (PERSON_CARD, ...)
	answersQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portal",
		Subsystem: "answers",
		Name:      "queries_total",
		Help:      "Total answered queries by intent and answer type",
	}, []string{"intent", "answer_type"})

	// answersErrorsTotal counts failed queries by error stage.
	// Labels: stage (retrieval, synthesis)
	answersErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portal",
		Subsystem: "answers",
		Name:      "errors_total",
		Help:      "Total failed queries by pipeline stage",
	}, []string{"stage"})

	// answersDomainFailuresTotal counts degraded collaborator calls by domain.
	// Labels: domain (people, tools, faqs, sessions, resources, discussions)
	answersDomainFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portal",
		Subsystem: "answers",
		Name:      "domain_failures_total",
		Help:      "Collaborator search failures degraded to empty results, by domain",
	}, []string{"domain"})

	// answersQueryDurationSeconds measures end-to-end pipeline latency.
	// Labels: intent
	answersQueryDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "portal",
		Subsystem: "answers",
		Name:      "query_duration_seconds",
		Help:      "End-to-end answer pipeline latency",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	}, []string{"intent"})
)

// recordQuery records a successfully answered query.
func recordQuery(intent Intent, answerType AnswerType, duration time.Duration) {
	answersQueriesTotal.WithLabelValues(string(intent.Primary), string(answerType)).Inc()
	answersQueryDurationSeconds.WithLabelValues(string(intent.Primary)).Observe(duration.Seconds())
}

// recordStageError records a query that failed in the given pipeline stage.
func recordStageError(stage string) {
	answersErrorsTotal.WithLabelValues(stage).Inc()
}

// recordDomainFailure records a collaborator failure that degraded to an
// empty result set for its domain.
func recordDomainFailure(name domain.Name) {
	answersDomainFailuresTotal.WithLabelValues(string(name)).Inc()
}
