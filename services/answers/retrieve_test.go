// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package answers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/AleutianAI/portal/services/answers/config"
	"github.com/AleutianAI/portal/services/answers/domain"
	"github.com/AleutianAI/portal/services/answers/vocab"
)

// mockCollaborator implements domain.Collaborator with a pluggable search
// function and records the terms it was called with.
type mockCollaborator struct {
	mu         sync.Mutex
	searchFunc func(ctx context.Context, terms []string) ([]domain.Result, error)
	called     bool
	gotTerms   []string
}

func (m *mockCollaborator) Search(ctx context.Context, terms []string) ([]domain.Result, error) {
	m.mu.Lock()
	m.called = true
	m.gotTerms = append([]string(nil), terms...)
	m.mu.Unlock()
	if m.searchFunc == nil {
		return nil, nil
	}
	return m.searchFunc(ctx, terms)
}

func (m *mockCollaborator) wasCalled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.called
}

func returning(results ...domain.Result) *mockCollaborator {
	return &mockCollaborator{
		searchFunc: func(ctx context.Context, terms []string) ([]domain.Result, error) {
			return results, nil
		},
	}
}

func failing(err error) *mockCollaborator {
	return &mockCollaborator{
		searchFunc: func(ctx context.Context, terms []string) ([]domain.Result, error) {
			return nil, err
		},
	}
}

func testIndex(t *testing.T) *vocab.Index {
	t.Helper()
	vocabulary, err := config.LoadVocabulary()
	if err != nil {
		t.Fatalf("LoadVocabulary() error: %v", err)
	}
	return vocab.NewIndex(vocabulary)
}

func TestRetriever_RoutesByIntent(t *testing.T) {
	people := returning()
	tools := returning()
	faqs := returning()

	r := NewRetriever(testIndex(t), map[domain.Name]domain.Collaborator{
		domain.DomainPeople: people,
		domain.DomainTools:  tools,
		domain.DomainFAQs:   faqs,
	})

	_, err := r.Retrieve(context.Background(),
		Intent{Primary: IntentPersonLookup}, Normalize("contact natasha"))
	if err != nil {
		t.Fatalf("Retrieve() error: %v", err)
	}

	if !people.wasCalled() {
		t.Error("person lookup did not query the people domain")
	}
	if tools.wasCalled() || faqs.wasCalled() {
		t.Error("person lookup queried domains outside its routing")
	}
}

func TestRetriever_ExpandsTermsBeforeSearch(t *testing.T) {
	tools := returning()
	r := NewRetriever(testIndex(t), map[domain.Name]domain.Collaborator{
		domain.DomainTools: tools,
	})

	_, err := r.Retrieve(context.Background(),
		Intent{Primary: IntentToolInfo}, Normalize("tickets"))
	if err != nil {
		t.Fatalf("Retrieve() error: %v", err)
	}

	want := map[string]bool{"jira": false, "tickets": false, "issue tracker": false}
	for _, term := range tools.gotTerms {
		if _, ok := want[term]; ok {
			want[term] = true
		}
	}
	for term, seen := range want {
		if !seen {
			t.Errorf("expanded terms %v missing %q", tools.gotTerms, term)
		}
	}
}

func TestRetriever_ScoresAndSortsByOriginalTermOverlap(t *testing.T) {
	partial := domain.ResourceResult(&domain.Resource{
		ID: "r-partial", Title: "Quarterly Planning Notes", Tags: []string{"okrs"},
	})
	full := domain.ResourceResult(&domain.Resource{
		ID: "r-full", Title: "OKR Grading Guide", Tags: []string{"okrs", "grading"},
	})

	r := NewRetriever(testIndex(t), map[domain.Name]domain.Collaborator{
		domain.DomainResources: returning(partial, full),
	})

	// "okrs grading": partial matches 1 of 2 original terms, full matches both.
	results, err := r.Retrieve(context.Background(),
		Intent{Primary: IntentResourceBrowse}, Normalize("okrs grading"))
	if err != nil {
		t.Fatalf("Retrieve() error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Retrieve() returned %d results, want 2", len(results))
	}
	if results[0].ID() != "r-full" {
		t.Errorf("best result = %q, want r-full", results[0].ID())
	}
	if results[0].MatchScore != 1.0 {
		t.Errorf("MatchScore(r-full) = %v, want 1.0", results[0].MatchScore)
	}
	if results[1].MatchScore != 0.5 {
		t.Errorf("MatchScore(r-partial) = %v, want 0.5", results[1].MatchScore)
	}
}

func TestRetriever_TiesPreserveDomainMergeOrder(t *testing.T) {
	resource := domain.ResourceResult(&domain.Resource{ID: "r-1", Title: "Telehealth Playbook"})
	discussion := domain.DiscussionResult(&domain.Discussion{ID: "d-1", Title: "Telehealth rollout"})

	r := NewRetriever(testIndex(t), map[domain.Name]domain.Collaborator{
		domain.DomainResources:   returning(resource),
		domain.DomainDiscussions: returning(discussion),
	})

	results, err := r.Retrieve(context.Background(),
		Intent{Primary: IntentResourceBrowse}, Normalize("telehealth"))
	if err != nil {
		t.Fatalf("Retrieve() error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Retrieve() returned %d results, want 2", len(results))
	}
	// Equal scores: resources merge before discussions.
	if results[0].Kind != domain.KindResource || results[1].Kind != domain.KindDiscussion {
		t.Errorf("tie order = [%s %s], want [resource discussion]", results[0].Kind, results[1].Kind)
	}
}

func TestRetriever_DedupesByKindAndID(t *testing.T) {
	dup := domain.ResourceResult(&domain.Resource{ID: "r-1", Title: "Telehealth Playbook"})
	r := NewRetriever(testIndex(t), map[domain.Name]domain.Collaborator{
		domain.DomainResources: returning(dup, dup),
	})

	results, err := r.Retrieve(context.Background(),
		Intent{Primary: IntentResourceBrowse}, Normalize("telehealth"))
	if err != nil {
		t.Fatalf("Retrieve() error: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Retrieve() returned %d results, want 1 after dedupe", len(results))
	}
}

func TestRetriever_PartialFailureDegradesToRemainingDomains(t *testing.T) {
	resource := domain.ResourceResult(&domain.Resource{ID: "r-1", Title: "Telehealth Playbook"})
	r := NewRetriever(testIndex(t), map[domain.Name]domain.Collaborator{
		domain.DomainResources:   returning(resource),
		domain.DomainDiscussions: failing(fmt.Errorf("discussions store timeout")),
	})

	results, err := r.Retrieve(context.Background(),
		Intent{Primary: IntentResourceBrowse}, Normalize("telehealth"))
	if err != nil {
		t.Fatalf("Retrieve() must degrade on partial failure, got error: %v", err)
	}
	if len(results) != 1 || results[0].ID() != "r-1" {
		t.Errorf("Retrieve() = %v results, want the surviving domain's result", len(results))
	}
}

func TestRetriever_AllDomainsFailed(t *testing.T) {
	r := NewRetriever(testIndex(t), map[domain.Name]domain.Collaborator{
		domain.DomainResources:   failing(fmt.Errorf("resources down")),
		domain.DomainDiscussions: failing(fmt.Errorf("discussions down")),
	})

	_, err := r.Retrieve(context.Background(),
		Intent{Primary: IntentResourceBrowse}, Normalize("telehealth"))
	if err == nil {
		t.Fatal("Retrieve() succeeded with every domain failing")
	}

	var retrievalErr *RetrievalError
	if !errors.As(err, &retrievalErr) {
		t.Fatalf("error type = %T, want *RetrievalError", err)
	}
	if !errors.Is(err, ErrAllDomainsFailed) {
		t.Error("errors.Is(err, ErrAllDomainsFailed) = false")
	}
	if len(retrievalErr.Causes) != 2 {
		t.Errorf("Causes has %d entries, want 2", len(retrievalErr.Causes))
	}
}

func TestRetriever_NoRegisteredCollaborators(t *testing.T) {
	r := NewRetriever(testIndex(t), nil)
	results, err := r.Retrieve(context.Background(),
		Intent{Primary: IntentPersonLookup}, Normalize("contact natasha"))
	if err != nil {
		t.Fatalf("Retrieve() with no collaborators: %v", err)
	}
	if results != nil {
		t.Errorf("Retrieve() = %v, want nil (no domains to query is not a failure)", results)
	}
}

func TestRetriever_EmptyTerms(t *testing.T) {
	tools := returning()
	r := NewRetriever(testIndex(t), map[domain.Name]domain.Collaborator{
		domain.DomainTools: tools,
	})
	results, err := r.Retrieve(context.Background(),
		Intent{Primary: IntentUnknown}, Normalize("   "))
	if err != nil || results != nil {
		t.Errorf("Retrieve() with no terms = (%v, %v), want (nil, nil)", results, err)
	}
	if tools.wasCalled() {
		t.Error("no-signal query must not reach collaborators")
	}
}

func TestRetriever_DropsMalformedCollaboratorResults(t *testing.T) {
	good := domain.ResourceResult(&domain.Resource{ID: "r-1", Title: "Telehealth Playbook"})
	// Kind tag with no payload: scoring would dereference nil.
	malformed := domain.Result{Kind: domain.KindSession}

	r := NewRetriever(testIndex(t), map[domain.Name]domain.Collaborator{
		domain.DomainResources: returning(malformed, good),
	})

	results, err := r.Retrieve(context.Background(),
		Intent{Primary: IntentResourceBrowse}, Normalize("telehealth"))
	if err != nil {
		t.Fatalf("Retrieve() error: %v", err)
	}
	if len(results) != 1 || results[0].ID() != "r-1" {
		t.Errorf("Retrieve() returned %d results, want only the well-formed r-1", len(results))
	}
}

func TestRetriever_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRetriever(testIndex(t), map[domain.Name]domain.Collaborator{
		domain.DomainResources: &mockCollaborator{
			searchFunc: func(ctx context.Context, terms []string) ([]domain.Result, error) {
				return nil, ctx.Err()
			},
		},
	})

	_, err := r.Retrieve(ctx, Intent{Primary: IntentResourceBrowse}, Normalize("telehealth"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retrieve() with cancelled ctx = %v, want context.Canceled", err)
	}
}
