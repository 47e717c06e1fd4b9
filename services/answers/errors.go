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
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/AleutianAI/portal/services/answers/domain"
)

// Sentinel errors for errors.Is matching.
var (
	// ErrAllDomainsFailed underlies every RetrievalError. A single failing
	// domain degrades to empty results for that domain; this error only
	// surfaces when every queried domain failed, so the caller can render
	// "search is down" instead of "nothing found".
	ErrAllDomainsFailed = errors.New("all queried search domains failed")

	// ErrMalformedCandidate underlies every SynthesisError.
	ErrMalformedCandidate = errors.New("candidate is missing fields required by the matched template")
)

// RetrievalError reports that every domain queried for a request failed.
// It carries the per-domain causes for logging and debugging.
type RetrievalError struct {
	// Causes maps each failed domain to its error.
	Causes map[domain.Name]error
}

// Error implements error. Domains are listed in sorted order so the message
// is deterministic.
func (e *RetrievalError) Error() string {
	names := make([]string, 0, len(e.Causes))
	for name := range e.Causes {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return fmt.Sprintf("retrieval failed for all queried domains [%s]", strings.Join(names, ", "))
}

// Unwrap lets errors.Is(err, ErrAllDomainsFailed) match.
func (e *RetrievalError) Unwrap() error {
	return ErrAllDomainsFailed
}

// SynthesisError reports that the matched template could not be constructed
// because the winning candidate violated the data contract (required fields
// absent). This is fatal for the call: a partially-populated answer would
// mask the contract violation, so it is never downgraded to zero-results.
type SynthesisError struct {
	// Template names the template that failed ("person", "tool", ...).
	Template string

	// Missing lists the absent required fields.
	Missing []string
}

// Error implements error.
func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesis failed: %s template missing required fields [%s]",
		e.Template, strings.Join(e.Missing, ", "))
}

// Unwrap lets errors.Is(err, ErrMalformedCandidate) match.
func (e *SynthesisError) Unwrap() error {
	return ErrMalformedCandidate
}
