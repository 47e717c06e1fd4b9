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
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/portal/services/answers/domain"
	"github.com/AleutianAI/portal/services/answers/vocab"
)

// Retriever queries the domain collaborators implied by an intent and
// scores candidates by term overlap with the original query.
//
// # Thread Safety
//
// Immutable after construction; safe for concurrent use. Collaborator
// calls are the only blocking I/O in the pipeline.
type Retriever struct {
	vocab         *vocab.Index
	collaborators map[domain.Name]domain.Collaborator
}

// NewRetriever creates a retriever over the registered collaborators.
// Domains without a collaborator are silently skipped at query time.
func NewRetriever(ix *vocab.Index, collaborators map[domain.Name]domain.Collaborator) *Retriever {
	return &Retriever{vocab: ix, collaborators: collaborators}
}

// Retrieve fetches and scores candidates for the query.
//
// # Description
//
//	Each original term is expanded through the vocabulary index before
//	being submitted to the collaborators; results are unioned across
//	domains and deduplicated by (kind, id). MatchScore is the fraction of
//	the query's *original* terms found, after canonicalization, in the
//	candidate's indexed fields; the final sort is stable descending so
//	ties preserve collaborator order.
//
//	A failing collaborator degrades to empty results for its domain. Only
//	when every queried domain fails does Retrieve return a *RetrievalError
//	— distinct from a legitimate empty result list, which is a valid
//	zero-results outcome. Individual malformed results (kind tag and
//	payload disagree) are dropped with a warning rather than failing the
//	whole retrieval.
//
// # Outputs
//
//   - []domain.Result: Scored candidates, best first. May be empty.
//   - error: *RetrievalError when all queried domains failed, or the
//     context error when the caller cancelled.
//
// # Thread Safety
//
// Safe for concurrent use.
func (r *Retriever) Retrieve(ctx context.Context, intent Intent, q NormalizedQuery) ([]domain.Result, error) {
	domains := r.domainsFor(intent)
	if len(domains) == 0 || len(q.Terms) == 0 {
		return nil, nil
	}

	expanded := r.expandTerms(q.Terms)

	perDomain := make([][]domain.Result, len(domains))
	perErr := make([]error, len(domains))

	g, gctx := errgroup.WithContext(ctx)
	queried := 0
	for i, name := range domains {
		collab, ok := r.collaborators[name]
		if !ok {
			continue
		}
		queried++
		i, name, collab := i, name, collab
		g.Go(func() error {
			results, err := collab.Search(gctx, expanded)
			if err != nil {
				// Degrade to empty for this domain; the all-failed case is
				// handled after the join.
				slog.Warn("Domain search failed",
					slog.String("domain", string(name)),
					slog.String("error", err.Error()),
				)
				recordDomainFailure(name)
				perErr[i] = err
				return nil
			}
			perDomain[i] = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if queried == 0 {
		return nil, nil
	}

	failures := make(map[domain.Name]error)
	for i, name := range domains {
		if perErr[i] != nil {
			failures[name] = perErr[i]
		}
	}
	if len(failures) == queried {
		return nil, &RetrievalError{Causes: failures}
	}

	// Merge in fixed domain order, dedupe by (kind, id).
	type key struct {
		kind domain.Kind
		id   string
	}
	seen := make(map[key]struct{})
	var merged []domain.Result
	for i, results := range perDomain {
		for _, res := range results {
			// Collaborators are external; a mismatched kind tag or nil
			// payload must not reach scoring.
			if err := res.Validate(); err != nil {
				slog.Warn("Dropping malformed collaborator result",
					slog.String("domain", string(domains[i])),
					slog.String("error", err.Error()),
				)
				continue
			}
			k := key{res.Kind, res.ID()}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			res.MatchScore = r.score(q.Terms, res)
			merged = append(merged, res)
		}
	}

	sort.SliceStable(merged, func(a, b int) bool {
		return merged[a].MatchScore > merged[b].MatchScore
	})
	return merged, nil
}

// domainsFor caps retrieval to the domains implied by the intent.
// Browse and unknown intents query everything and merge.
func (r *Retriever) domainsFor(intent Intent) []domain.Name {
	switch intent.Primary {
	case IntentPersonLookup:
		return []domain.Name{domain.DomainPeople}
	case IntentToolAccess, IntentToolInfo:
		return []domain.Name{domain.DomainTools}
	case IntentConcept:
		return []domain.Name{domain.DomainFAQs}
	case IntentSessionNext, IntentSessionLookup:
		return []domain.Name{domain.DomainSessions}
	case IntentResourceBrowse, IntentUnknown:
		return domain.AllDomains()
	}
	return nil
}

// expandTerms expands every original term through the vocabulary index and
// dedupes the union, preserving first-seen order.
func (r *Retriever) expandTerms(terms []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, term := range terms {
		for _, e := range r.vocab.Expand(term) {
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}
			out = append(out, e)
		}
	}
	return out
}

// score computes the fraction of original terms whose canonical form
// appears among the candidate's canonicalized indexed fields (title tokens
// and tags).
func (r *Retriever) score(terms []string, res domain.Result) float64 {
	if len(terms) == 0 {
		return 0
	}

	indexed := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(res.Title())) {
		indexed[r.vocab.Canonicalize(tok)] = struct{}{}
	}
	for _, tag := range res.Tags() {
		indexed[r.vocab.Canonicalize(tag)] = struct{}{}
	}

	hits := 0
	for _, term := range terms {
		if _, ok := indexed[r.vocab.Canonicalize(term)]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(terms))
}
