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
	_ "embed"
	"fmt"
	"log/slog"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var defaultFixturesYAML []byte

// Fixtures holds the seed records for the in-memory reference stores.
type Fixtures struct {
	People      []Person     `yaml:"people"`
	Tools       []Tool       `yaml:"tools"`
	FAQs        []FAQ        `yaml:"faqs"`
	Sessions    []Session    `yaml:"sessions"`
	Resources   []Resource   `yaml:"resources"`
	Discussions []Discussion `yaml:"discussions"`
}

var (
	cachedFixtures *Fixtures
	fixturesOnce   sync.Once
	fixturesErr    error
)

// LoadFixtures loads and caches the embedded seed records.
//
// # Thread Safety
//
// Safe for concurrent use (uses sync.Once internally).
func LoadFixtures() (*Fixtures, error) {
	fixturesOnce.Do(func() {
		var f Fixtures
		if err := yaml.Unmarshal(defaultFixturesYAML, &f); err != nil {
			fixturesErr = fmt.Errorf("parsing fixtures.yaml: %w", err)
			return
		}
		cachedFixtures = &f
		slog.Info("Domain fixtures loaded",
			slog.Int("people", len(f.People)),
			slog.Int("tools", len(f.Tools)),
			slog.Int("faqs", len(f.FAQs)),
			slog.Int("sessions", len(f.Sessions)),
			slog.Int("resources", len(f.Resources)),
			slog.Int("discussions", len(f.Discussions)),
		)
	})
	return cachedFixtures, fixturesErr
}

// NewFixtureCollaborators builds one in-memory store per domain from the
// embedded seed records. Used by the demo binary and the integration tests.
//
// # Outputs
//
//   - map[Name]Collaborator: One collaborator per domain in AllDomains.
//   - error: Non-nil if the fixtures fail to load or validate.
func NewFixtureCollaborators() (map[Name]Collaborator, error) {
	f, err := LoadFixtures()
	if err != nil {
		return nil, err
	}

	results := map[Name][]Result{
		DomainPeople:      make([]Result, 0, len(f.People)),
		DomainTools:       make([]Result, 0, len(f.Tools)),
		DomainFAQs:        make([]Result, 0, len(f.FAQs)),
		DomainSessions:    make([]Result, 0, len(f.Sessions)),
		DomainResources:   make([]Result, 0, len(f.Resources)),
		DomainDiscussions: make([]Result, 0, len(f.Discussions)),
	}
	for i := range f.People {
		results[DomainPeople] = append(results[DomainPeople], PersonResult(&f.People[i]))
	}
	for i := range f.Tools {
		results[DomainTools] = append(results[DomainTools], ToolResult(&f.Tools[i]))
	}
	for i := range f.FAQs {
		results[DomainFAQs] = append(results[DomainFAQs], FAQResult(&f.FAQs[i]))
	}
	for i := range f.Sessions {
		results[DomainSessions] = append(results[DomainSessions], SessionResult(&f.Sessions[i]))
	}
	for i := range f.Resources {
		results[DomainResources] = append(results[DomainResources], ResourceResult(&f.Resources[i]))
	}
	for i := range f.Discussions {
		results[DomainDiscussions] = append(results[DomainDiscussions], DiscussionResult(&f.Discussions[i]))
	}

	collaborators := make(map[Name]Collaborator, len(results))
	for name, rs := range results {
		store, err := NewStore(name, rs)
		if err != nil {
			return nil, err
		}
		collaborators[name] = store
	}
	return collaborators, nil
}
