// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package domain

import (
	"context"
	"testing"
)

func TestLoadFixtures(t *testing.T) {
	f, err := LoadFixtures()
	if err != nil {
		t.Fatalf("LoadFixtures() error: %v", err)
	}
	if len(f.People) == 0 || len(f.Tools) == 0 || len(f.FAQs) == 0 ||
		len(f.Sessions) == 0 || len(f.Resources) == 0 || len(f.Discussions) == 0 {
		t.Errorf("fixtures incomplete: %d people, %d tools, %d faqs, %d sessions, %d resources, %d discussions",
			len(f.People), len(f.Tools), len(f.FAQs),
			len(f.Sessions), len(f.Resources), len(f.Discussions))
	}
}

func TestNewFixtureCollaborators(t *testing.T) {
	collaborators, err := NewFixtureCollaborators()
	if err != nil {
		t.Fatalf("NewFixtureCollaborators() error: %v", err)
	}

	for _, name := range AllDomains() {
		if _, ok := collaborators[name]; !ok {
			t.Errorf("missing collaborator for domain %q", name)
		}
	}

	// Spot-check one domain end to end.
	results, err := collaborators[DomainTools].Search(context.Background(), []string{"jira"})
	if err != nil {
		t.Fatalf("Search(jira) error: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("Search(jira) against the tools fixtures returned nothing")
	}
	if results[0].Kind != KindTool {
		t.Errorf("result kind = %q, want tool", results[0].Kind)
	}
}
