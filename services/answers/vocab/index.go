// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package vocab provides the process-wide vocabulary index: canonicalization
// and expansion of domain terms against the portal synonym tables.
//
// The index is built once at startup from config.Vocabulary and is immutable
// afterwards, so it is shared freely across concurrent queries without
// locking.
package vocab

import (
	"sort"
	"strings"

	"github.com/AleutianAI/portal/services/answers/config"
)

// Table names, in the fixed order the tables are flattened into the reverse
// index. When the same synonym appears in two tables the later table wins;
// that last-write-wins ambiguity is accepted, not an error.
const (
	TableTools         = "tools"
	TableTopics        = "topics"
	TableActions       = "actions"
	TableResourceTypes = "resource_types"
	TableTeams         = "teams"
)

// Index canonicalizes and expands domain terms.
//
// All operations are total over arbitrary string input: unknown terms pass
// through rather than being dropped (unchanged from Expand, lowercased
// from Canonicalize).
//
// # Thread Safety
//
// Immutable after construction; safe for concurrent use.
type Index struct {
	// forward: canonical -> synonyms, preserving table insertion order.
	forward map[string][]string

	// reverse: lowercased synonym or canonical -> canonical.
	reverse map[string]string

	// owner: canonical -> table name, for intent rules scoped to one table.
	owner map[string]string
}

// NewIndex builds the combined vocabulary index from the five synonym tables.
//
// # Description
//
//	Merges the tables into one forward map and flattens them into a reverse
//	map with lowercased keys. Tables flatten in the fixed order tools,
//	topics, actions, resource_types, teams; within a table, canonicals are
//	processed in sorted order so the same input always yields the same
//	index.
//
// # Inputs
//
//   - v: The loaded vocabulary tables. Must not be nil.
//
// # Outputs
//
//   - *Index: The built index. Never nil.
func NewIndex(v *config.Vocabulary) *Index {
	ix := &Index{
		forward: make(map[string][]string),
		reverse: make(map[string]string),
		owner:   make(map[string]string),
	}
	ix.addTable(TableTools, v.Tools)
	ix.addTable(TableTopics, v.Topics)
	ix.addTable(TableActions, v.Actions)
	ix.addTable(TableResourceTypes, v.ResourceTypes)
	ix.addTable(TableTeams, v.Teams)
	return ix
}

func (ix *Index) addTable(name string, table map[string][]string) {
	canonicals := make([]string, 0, len(table))
	for canonical := range table {
		canonicals = append(canonicals, canonical)
	}
	sort.Strings(canonicals)

	for _, canonical := range canonicals {
		key := strings.ToLower(strings.TrimSpace(canonical))
		synonyms := make([]string, 0, len(table[canonical]))
		for _, syn := range table[canonical] {
			s := strings.ToLower(strings.TrimSpace(syn))
			if s == "" {
				continue
			}
			synonyms = append(synonyms, s)
			ix.reverse[s] = key
		}
		ix.forward[key] = synonyms
		ix.reverse[key] = key
		ix.owner[key] = name
	}
}

// Expand returns the canonical form of term followed by all its synonyms.
//
// # Description
//
//	If term is a canonical key, returns [term, synonyms...]. If term is a
//	known synonym, returns [canonical, synonyms of that canonical...].
//	Unknown terms are never dropped or rewritten: the result is [term],
//	the input unchanged. Only Canonicalize lowercases.
//
// # Thread Safety
//
// Safe for concurrent use.
func (ix *Index) Expand(term string) []string {
	t := strings.ToLower(strings.TrimSpace(term))
	canonical, ok := ix.reverse[t]
	if !ok {
		return []string{term}
	}
	synonyms := ix.forward[canonical]
	out := make([]string, 0, len(synonyms)+1)
	out = append(out, canonical)
	out = append(out, synonyms...)
	return out
}

// Canonicalize returns the canonical form of term if known, else the
// lowercased input unchanged.
//
// Canonicalize is idempotent: canonical forms map to themselves.
//
// # Thread Safety
//
// Safe for concurrent use.
func (ix *Index) Canonicalize(term string) string {
	t := strings.ToLower(strings.TrimSpace(term))
	if canonical, ok := ix.reverse[t]; ok {
		return canonical
	}
	return t
}

// AreSynonyms reports whether a and b canonicalize to the same term.
//
// # Thread Safety
//
// Safe for concurrent use.
func (ix *Index) AreSynonyms(a, b string) bool {
	return ix.Canonicalize(a) == ix.Canonicalize(b)
}

// TableOf returns the synonym table owning the canonical form of term.
// The second return is false for terms outside every table.
//
// Used by the intent classifier to test vocabulary membership scoped to a
// single table ("does this query mention a tool?").
//
// # Thread Safety
//
// Safe for concurrent use.
func (ix *Index) TableOf(term string) (string, bool) {
	table, ok := ix.owner[ix.Canonicalize(term)]
	return table, ok
}
