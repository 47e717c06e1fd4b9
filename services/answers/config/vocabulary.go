// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// Embedded Vocabulary Configuration
// =============================================================================

//go:embed vocabulary.yaml
var defaultVocabularyYAML []byte

// =============================================================================
// Vocabulary Types and Loading
// =============================================================================

// Vocabulary holds the five synonym tables the answers engine canonicalizes
// against. Each table maps a canonical term to the surface forms users type
// ("jira" -> "issue tracker", "tickets"). Synonym order within an entry is
// display/preference order only and carries no correctness weight.
//
// The tables are loaded from vocabulary.yaml at startup and cached.
//
// # Thread Safety
//
// Safe for concurrent use after initialization (immutable after load).
type Vocabulary struct {
	Tools         map[string][]string `yaml:"tools"`
	Topics        map[string][]string `yaml:"topics"`
	Actions       map[string][]string `yaml:"actions"`
	ResourceTypes map[string][]string `yaml:"resource_types"`
	Teams         map[string][]string `yaml:"teams"`
}

var (
	cachedVocabulary *Vocabulary
	vocabularyOnce   sync.Once
	vocabularyErr    error
)

// LoadVocabulary loads and caches the synonym tables from the embedded YAML
// configuration. Returns the cached result on subsequent calls.
//
// # Description
//
//	Parses vocabulary.yaml (five tables of canonical -> synonym list) and
//	validates the per-table uniqueness invariant: within a single table no
//	synonym string may appear under two different canonicals. Collisions
//	across different tables are permitted and resolved downstream by the
//	vocabulary index (last table wins).
//
// # Outputs
//
//   - *Vocabulary: The loaded tables. Never nil on success.
//   - error: Non-nil if YAML parsing or validation fails.
//
// # Thread Safety
//
// Safe for concurrent use (uses sync.Once internally).
func LoadVocabulary() (*Vocabulary, error) {
	vocabularyOnce.Do(func() {
		v, err := parseVocabulary(defaultVocabularyYAML)
		if err != nil {
			vocabularyErr = err
			return
		}
		cachedVocabulary = v
		slog.Info("Vocabulary loaded",
			slog.Int("tools", len(v.Tools)),
			slog.Int("topics", len(v.Topics)),
			slog.Int("actions", len(v.Actions)),
			slog.Int("resource_types", len(v.ResourceTypes)),
			slog.Int("teams", len(v.Teams)),
		)
	})
	return cachedVocabulary, vocabularyErr
}

// parseVocabulary parses and validates raw vocabulary YAML.
func parseVocabulary(raw []byte) (*Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("parsing vocabulary.yaml: %w", err)
	}

	tables := []struct {
		name  string
		table map[string][]string
	}{
		{"tools", v.Tools},
		{"topics", v.Topics},
		{"actions", v.Actions},
		{"resource_types", v.ResourceTypes},
		{"teams", v.Teams},
	}
	for _, t := range tables {
		if len(t.table) == 0 {
			return nil, fmt.Errorf("vocabulary.yaml: table %q is empty", t.name)
		}
		if err := validateTable(t.name, t.table); err != nil {
			return nil, err
		}
	}
	return &v, nil
}

// validateTable enforces the per-table uniqueness invariant: no synonym may
// appear under two different canonicals within the same table.
func validateTable(name string, table map[string][]string) error {
	owner := make(map[string]string)
	for canonical, synonyms := range table {
		if strings.TrimSpace(canonical) == "" {
			return fmt.Errorf("vocabulary.yaml: table %q has an empty canonical key", name)
		}
		for _, syn := range synonyms {
			s := strings.ToLower(strings.TrimSpace(syn))
			if s == "" {
				return fmt.Errorf("vocabulary.yaml: table %q canonical %q has an empty synonym", name, canonical)
			}
			if prev, ok := owner[s]; ok && prev != canonical {
				return fmt.Errorf("vocabulary.yaml: table %q synonym %q appears under both %q and %q",
					name, s, prev, canonical)
			}
			owner[s] = canonical
		}
	}
	return nil
}
