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
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Embedded Default Classifier Rules
// =============================================================================

//go:embed classifier_rules.yaml
var defaultClassifierRulesYAML []byte

// MaxRulesYAMLSize bounds the classifier rules file to catch accidental
// corruption (the real file is a few hundred bytes).
const MaxRulesYAMLSize = 1 << 20

// =============================================================================
// Classifier Rules Types
// =============================================================================

// ClassifierRules configures the intent rule cascade.
//
// Description:
//
//	Marker word lists and per-rule confidence tiers for the classifier.
//	The cascade order itself is fixed in code; only the vocabulary of each
//	rule and the confidence it reports are configuration.
//
// Thread Safety: Immutable after loading; safe for concurrent use.
type ClassifierRules struct {
	// Markers are the surface-word lists each rule matches against raw
	// lowercased query tokens.
	Markers MarkerLists `yaml:"markers" validate:"required"`

	// Confidence holds the fixed score each rule tier reports.
	Confidence ConfidenceTiers `yaml:"confidence" validate:"required"`
}

// MarkerLists groups the marker vocabularies used by individual rules.
type MarkerLists struct {
	// Possessive marks self-referential queries ("my manager").
	Possessive []string `yaml:"possessive" validate:"min=1"`

	// PersonCues are role/person words that pair with a possessive marker.
	PersonCues []string `yaml:"person_cues" validate:"min=1"`

	// PersonActions are person-directed verbs that fire the person rule on
	// their own ("contact natasha").
	PersonActions []string `yaml:"person_actions" validate:"min=1"`

	// TemporalNext marks "next occurrence" queries ("next", "upcoming").
	TemporalNext []string `yaml:"temporal_next" validate:"min=1"`

	// Session marks the scheduled-session domain ("lop", "session").
	Session []string `yaml:"session" validate:"min=1"`
}

// ConfidenceTiers holds the fixed confidence each rule reports.
// All values must lie in [0,1].
type ConfidenceTiers struct {
	ToolAccess         float64 `yaml:"tool_access" validate:"gte=0,lte=1"`
	ToolInfo           float64 `yaml:"tool_info" validate:"gte=0,lte=1"`
	PersonLookup       float64 `yaml:"person_lookup" validate:"gte=0,lte=1"`
	SessionNext        float64 `yaml:"session_next" validate:"gte=0,lte=1"`
	SessionLookup      float64 `yaml:"session_lookup" validate:"gte=0,lte=1"`
	ConceptExplanation float64 `yaml:"concept_explanation" validate:"gte=0,lte=1"`
	ResourceBrowse     float64 `yaml:"resource_browse" validate:"gte=0,lte=1"`
}

// =============================================================================
// Defaults
// =============================================================================

// DefaultConfidenceTiers returns the shipped confidence tiers. Used when the
// YAML omits the confidence block entirely.
func DefaultConfidenceTiers() ConfidenceTiers {
	return ConfidenceTiers{
		ToolAccess:         0.9,
		ToolInfo:           0.8,
		PersonLookup:       0.7,
		SessionNext:        0.9,
		SessionLookup:      0.8,
		ConceptExplanation: 0.8,
		ResourceBrowse:     0.4,
	}
}

// =============================================================================
// Singleton Classifier Rules
// =============================================================================

var (
	classifierRulesMu      sync.RWMutex
	classifierRulesOnce    sync.Once
	cachedClassifierRules  *ClassifierRules
	classifierRulesLoadErr error
)

// GetClassifierRules returns the cached classifier rule configuration.
//
// Description:
//
//	Loads the embedded rules on first call and caches for subsequent calls.
//
// Inputs:
//
//	ctx - Context for cancellation. Must not be nil.
//
// Outputs:
//
//	*ClassifierRules - The loaded configuration. Never nil on success.
//	error - Non-nil if loading or validation failed.
//
// Thread Safety: Safe for concurrent use via sync.Once.
func GetClassifierRules(ctx context.Context) (*ClassifierRules, error) {
	if ctx == nil {
		return nil, fmt.Errorf("GetClassifierRules: ctx must not be nil")
	}

	classifierRulesMu.RLock()
	if cachedClassifierRules != nil || classifierRulesLoadErr != nil {
		rules, err := cachedClassifierRules, classifierRulesLoadErr
		classifierRulesMu.RUnlock()
		return rules, err
	}
	classifierRulesMu.RUnlock()

	classifierRulesMu.Lock()
	defer classifierRulesMu.Unlock()

	if cachedClassifierRules != nil || classifierRulesLoadErr != nil {
		return cachedClassifierRules, classifierRulesLoadErr
	}

	classifierRulesOnce.Do(func() {
		cachedClassifierRules, classifierRulesLoadErr = LoadClassifierRules(defaultClassifierRulesYAML)
	})

	return cachedClassifierRules, classifierRulesLoadErr
}

// ResetClassifierRules resets the cached rules for testing.
//
// Thread Safety: Safe for concurrent use.
func ResetClassifierRules() {
	classifierRulesMu.Lock()
	defer classifierRulesMu.Unlock()
	cachedClassifierRules = nil
	classifierRulesLoadErr = nil
	classifierRulesOnce = sync.Once{}
}

// LoadClassifierRules loads and validates classifier rules from YAML bytes.
//
// Description:
//
//	Parses the YAML, fills in default confidence tiers where the block is
//	absent, and validates marker lists (non-empty) and confidence bounds
//	([0,1]) via struct tags.
//
// Inputs:
//
//	data - Raw YAML bytes to parse.
//
// Outputs:
//
//	*ClassifierRules - The validated configuration.
//	error - Non-nil if parsing or validation fails.
func LoadClassifierRules(data []byte) (*ClassifierRules, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("LoadClassifierRules: empty YAML data")
	}
	if len(data) > MaxRulesYAMLSize {
		return nil, fmt.Errorf("LoadClassifierRules: YAML data exceeds maximum size (%d > %d)",
			len(data), MaxRulesYAMLSize)
	}

	var rules ClassifierRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("LoadClassifierRules: parsing YAML: %w", err)
	}

	// A zero confidence block means the YAML omitted it; fall back to the
	// shipped tiers rather than classifying everything at 0.
	if rules.Confidence == (ConfidenceTiers{}) {
		rules.Confidence = DefaultConfidenceTiers()
	}

	if err := validator.New().Struct(&rules); err != nil {
		return nil, fmt.Errorf("LoadClassifierRules: validation: %w", err)
	}

	slog.Info("Classifier rules loaded",
		slog.Int("possessive_markers", len(rules.Markers.Possessive)),
		slog.Int("person_cues", len(rules.Markers.PersonCues)),
		slog.Int("person_actions", len(rules.Markers.PersonActions)),
		slog.Int("temporal_markers", len(rules.Markers.TemporalNext)),
		slog.Int("session_markers", len(rules.Markers.Session)),
	)

	return &rules, nil
}
