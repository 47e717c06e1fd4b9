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
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/AleutianAI/portal/services/answers/config"
	"github.com/AleutianAI/portal/services/answers/domain"
	"github.com/AleutianAI/portal/services/answers/vocab"
)

// ServiceConfig configures a Service.
type ServiceConfig struct {
	// Collaborators supplies the per-domain search capabilities. Domains
	// without an entry are skipped at query time.
	Collaborators map[domain.Name]domain.Collaborator
}

// DefaultServiceConfig returns a config backed by the embedded in-memory
// fixture collaborators, suitable for the demo binary and tests.
func DefaultServiceConfig() (ServiceConfig, error) {
	collaborators, err := domain.NewFixtureCollaborators()
	if err != nil {
		return ServiceConfig{}, fmt.Errorf("building fixture collaborators: %w", err)
	}
	return ServiceConfig{Collaborators: collaborators}, nil
}

// Service is the answers engine: one AnswerQuery call runs the full
// normalize -> classify -> retrieve -> synthesize pipeline.
//
// # Thread Safety
//
// Safe for concurrent use. The only shared state is the read-only
// vocabulary index and rule configuration; every query gets fresh
// intermediate values. The only blocking points are the collaborator
// searches, which honor ctx cancellation.
type Service struct {
	vocab      *vocab.Index
	classifier *Classifier
	retriever  *Retriever
	tracer     oteltrace.Tracer
}

// NewService builds the engine: loads the vocabulary tables and classifier
// rules, constructs the immutable vocabulary index, and wires the pipeline
// components over the configured collaborators.
//
// # Outputs
//
//   - *Service: The ready engine. Never nil on success.
//   - error: Non-nil if the vocabulary or rule configuration fails to load.
func NewService(cfg ServiceConfig) (*Service, error) {
	vocabulary, err := config.LoadVocabulary()
	if err != nil {
		return nil, fmt.Errorf("loading vocabulary: %w", err)
	}
	rules, err := config.GetClassifierRules(context.Background())
	if err != nil {
		return nil, fmt.Errorf("loading classifier rules: %w", err)
	}

	ix := vocab.NewIndex(vocabulary)
	return &Service{
		vocab:      ix,
		classifier: NewClassifier(ix, rules),
		retriever:  NewRetriever(ix, cfg.Collaborators),
		tracer:     otel.Tracer("portal.answers"),
	}, nil
}

// Vocab exposes the vocabulary index for callers that want to expand or
// canonicalize terms outside the pipeline (e.g. typeahead suggestions).
func (s *Service) Vocab() *vocab.Index {
	return s.vocab
}

// AnswerQuery runs the pipeline for one raw query and returns the single
// SynthesizedAnswer handed to the presentation layer.
//
// # Description
//
//	Raw text -> normalized query -> intent -> candidates -> answer, with
//	no suspension points except the collaborator searches. No-signal input
//	(empty/whitespace) and no-match retrievals both yield the zero-results
//	answer; they are outcomes, not errors.
//
// # Outputs
//
//   - *SynthesizedAnswer: The answer. Never nil on success.
//   - error: *RetrievalError when every queried domain failed,
//     *SynthesisError when the winning candidate violated the template's
//     data contract, or the context error on cancellation.
//
// # Thread Safety
//
// Safe for concurrent use.
func (s *Service) AnswerQuery(ctx context.Context, raw string) (*SynthesizedAnswer, error) {
	ctx, span := s.tracer.Start(ctx, "answers.AnswerQuery")
	defer span.End()
	start := time.Now()

	q := Normalize(raw)
	intent := s.classifier.Classify(q)
	span.SetAttributes(
		attribute.String("intent", string(intent.Primary)),
		attribute.Float64("intent_confidence", intent.Confidence),
		attribute.Int("term_count", len(q.Terms)),
	)

	var candidates []domain.Result
	if len(q.Terms) > 0 {
		var err error
		candidates, err = s.retriever.Retrieve(ctx, intent, q)
		if err != nil {
			recordStageError("retrieval")
			span.RecordError(err)
			span.SetStatus(codes.Error, "retrieval failed")
			return nil, err
		}
	}

	answer, err := Synthesize(intent, q, candidates)
	if err != nil {
		recordStageError("synthesis")
		span.RecordError(err)
		span.SetStatus(codes.Error, "synthesis failed")
		return nil, err
	}

	duration := time.Since(start)
	recordQuery(intent, answer.Type, duration)
	span.SetAttributes(attribute.String("answer_type", string(answer.Type)))

	slog.Debug("Query answered",
		slog.String("intent", string(intent.Primary)),
		slog.String("answer_type", string(answer.Type)),
		slog.Int("candidates", len(candidates)),
		slog.Duration("duration", duration),
	)
	return answer, nil
}
