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

import "strings"

// NormalizedQuery is the structured form of a raw query. Immutable once
// constructed.
type NormalizedQuery struct {
	// Raw is the input exactly as received.
	Raw string

	// Normalized is Raw trimmed, lowercased, with internal whitespace
	// collapsed to single spaces.
	Normalized string

	// Terms are the whitespace tokens of Normalized, deduplicated while
	// preserving first-seen order. Empty for no-signal input.
	Terms []string
}

// Normalize turns raw input text into a NormalizedQuery.
//
// # Description
//
//	Trim, collapse internal whitespace, lowercase, tokenize on whitespace,
//	drop empty tokens, dedupe preserving first-seen order. Empty or
//	whitespace-only input yields Terms == nil, which downstream components
//	treat as "no signal" (routed to the zero-results path), not an error.
func Normalize(raw string) NormalizedQuery {
	fields := strings.Fields(strings.ToLower(raw))
	normalized := strings.Join(fields, " ")

	var terms []string
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		terms = append(terms, f)
	}

	return NormalizedQuery{
		Raw:        raw,
		Normalized: normalized,
		Terms:      terms,
	}
}
