// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package answers implements the portal's query-understanding and
// answer-synthesis engine: free-text queries are normalized, expanded
// against the domain vocabularies, classified into an intent, matched
// against the domain collaborators, and rendered into a single typed
// SynthesizedAnswer for the presentation layer.
//
// The pipeline is deterministic and rule-based. It does not rank by
// statistical relevance, learn from click-through, or persist query
// history.
package answers

import "github.com/AleutianAI/portal/services/answers/domain"

// AnswerType identifies the template that produced a SynthesizedAnswer.
//
// The enumeration and the JSON field names of SynthesizedAnswer are a
// stable contract with every renderer; do not rename values.
type AnswerType string

// Answer types.
const (
	AnswerPersonCard   AnswerType = "PERSON_CARD"
	AnswerToolCard     AnswerType = "TOOL_CARD"
	AnswerInstant      AnswerType = "INSTANT_ANSWER"
	AnswerConcept      AnswerType = "CONCEPT_EXPLANATION"
	AnswerLOPSession   AnswerType = "LOP_SESSION"
	AnswerResourceList AnswerType = "RESOURCE_LIST"
	AnswerZeroResults  AnswerType = "ZERO_RESULTS"
)

// Action is a clickable next step attached to an answer. Exactly one action
// per answer should carry Primary=true when any actions are present.
type Action struct {
	Label   string `json:"label"`
	URL     string `json:"url"`
	Icon    string `json:"icon,omitempty"`
	Primary bool   `json:"primary"`
}

// Source cites where an answer's content came from.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

// SynthesizedAnswer is the terminal artifact of the pipeline: one per
// query, immutable once returned.
//
// Confidence communicates how sure the engine is that this is the right
// *kind* of answer, not how good the data match is; each template emits a
// fixed base confidence, and the zero-results template emits 1.0 (full
// certainty that nothing was found).
type SynthesizedAnswer struct {
	Type           AnswerType     `json:"type"`
	Confidence     float64        `json:"confidence"`
	Text           string         `json:"text"`
	Actions        []Action       `json:"actions"`
	Sources        []Source       `json:"sources"`
	Steps          []string       `json:"steps,omitempty"`
	KeyPoints      []string       `json:"keyPoints,omitempty"`
	FeaturedResult *domain.Result `json:"featuredResult,omitempty"`
}
