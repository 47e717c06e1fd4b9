// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package domain

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// minPrefixLen is the shortest term that participates in prefix matching.
// Shorter terms ("ux", "bi") must match a token or tag exactly.
const minPrefixLen = 3

// Store is an in-memory Collaborator over a fixed result set.
//
// It backs the reference deployment and the test suite; production
// deployments supply their own collaborators against real data stores.
// Matching is lexical: a term hits a result when it equals a title token or
// tag, prefixes a title token, or (for multi-word expanded synonyms)
// appears as a substring of the title.
//
// # Thread Safety
//
// Safe for concurrent use. Results are copied on construction and never
// mutated afterwards.
//
// # Ownership
//
// The store owns its result slice. Callers receive fresh slices from
// Search; the underlying payloads are shared and must not be mutated.
type Store struct {
	mu      sync.RWMutex
	name    Name
	results []Result
}

// NewStore creates an in-memory store for one domain.
//
// # Inputs
//
//   - name: The domain this store serves.
//   - results: The fixed result set. Every result must pass Validate.
//
// # Outputs
//
//   - *Store: The store. Nil on validation failure.
//   - error: Non-nil if any result is malformed or tagged for another kind.
func NewStore(name Name, results []Result) (*Store, error) {
	for i, r := range results {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("store %q: result[%d]: %w", name, i, err)
		}
	}
	owned := make([]Result, len(results))
	copy(owned, results)
	return &Store{name: name, results: owned}, nil
}

// Name returns the domain this store serves.
func (s *Store) Name() Name {
	return s.name
}

// Len returns the number of results held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}

// Search implements Collaborator.
//
// # Description
//
//	Returns every result matching at least one term, in insertion order.
//	An empty term list matches nothing. Checks ctx between results so large
//	stores stay cancellable.
//
// # Thread Safety
//
// Safe for concurrent use.
func (s *Store) Search(ctx context.Context, terms []string) ([]Result, error) {
	if len(terms) == 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Result
	for _, r := range s.results {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if matchesAny(r, terms) {
			out = append(out, r)
		}
	}
	return out, nil
}

func matchesAny(r Result, terms []string) bool {
	title := strings.ToLower(r.Title())
	tokens := strings.Fields(title)

	tags := r.Tags()
	lowered := make([]string, len(tags))
	for i, tag := range tags {
		lowered[i] = strings.ToLower(tag)
	}

	for _, term := range terms {
		t := strings.ToLower(strings.TrimSpace(term))
		if t == "" {
			continue
		}
		if matchesTerm(t, title, tokens, lowered) {
			return true
		}
	}
	return false
}

func matchesTerm(term, title string, tokens, tags []string) bool {
	// Multi-word expanded synonyms ("issue tracker") match on the whole title.
	if strings.Contains(term, " ") {
		return strings.Contains(title, term)
	}
	for _, tok := range tokens {
		if tok == term {
			return true
		}
		if len(term) >= minPrefixLen && strings.HasPrefix(tok, term) {
			return true
		}
	}
	for _, tag := range tags {
		if tag == term {
			return true
		}
	}
	return false
}
