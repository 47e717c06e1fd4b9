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
	"strings"

	"github.com/AleutianAI/portal/services/answers/config"
	"github.com/AleutianAI/portal/services/answers/vocab"
)

// IntentKind is the closed set of query purposes the classifier assigns.
type IntentKind string

// Intent kinds.
const (
	IntentPersonLookup   IntentKind = "PERSON_LOOKUP"
	IntentToolAccess     IntentKind = "TOOL_ACCESS"
	IntentToolInfo       IntentKind = "TOOL_INFO"
	IntentConcept        IntentKind = "CONCEPT_EXPLANATION"
	IntentSessionNext    IntentKind = "SESSION_NEXT"
	IntentSessionLookup  IntentKind = "SESSION_LOOKUP"
	IntentResourceBrowse IntentKind = "RESOURCE_BROWSE"
	IntentUnknown        IntentKind = "UNKNOWN"
)

// Intent is the classified purpose behind a query. Confidence is the fixed
// tier of the rule that fired, not a learned score: determinism and
// explainability are the design goal here, not accuracy maximization.
type Intent struct {
	Primary    IntentKind
	Confidence float64
}

// Classifier assigns one IntentKind to a NormalizedQuery via a
// priority-ordered rule cascade; the first matching rule wins.
//
// # Thread Safety
//
// Immutable after construction; safe for concurrent use.
type Classifier struct {
	vocab *vocab.Index
	rules *config.ClassifierRules
}

// NewClassifier creates a classifier over the given vocabulary index and
// rule configuration.
func NewClassifier(ix *vocab.Index, rules *config.ClassifierRules) *Classifier {
	return &Classifier{vocab: ix, rules: rules}
}

// Classify derives an Intent from the normalized query alone; it never
// looks back at the raw text.
//
// # Description
//
//	The cascade, in priority order:
//
//	 1. access/request action + tool vocabulary  -> TOOL_ACCESS
//	 2. tool vocabulary alone                    -> TOOL_INFO
//	 3. possessive + person cue, or a
//	    person-directed action ("contact")       -> PERSON_LOOKUP
//	 4. temporal-next marker + session term      -> SESSION_NEXT
//	 5. session term alone                       -> SESSION_LOOKUP
//	 6. topic vocabulary                         -> CONCEPT_EXPLANATION
//	 7. any terms at all                         -> RESOURCE_BROWSE
//	 8. no terms                                 -> UNKNOWN
//
// # Thread Safety
//
// Safe for concurrent use.
func (c *Classifier) Classify(q NormalizedQuery) Intent {
	if len(q.Terms) == 0 {
		return Intent{Primary: IntentUnknown, Confidence: 0}
	}

	conf := c.rules.Confidence
	phrases := c.phrases(q)
	mentionsTool := c.hitsTable(phrases, vocab.TableTools)

	if c.hasAccessSignal(phrases) && mentionsTool {
		return Intent{Primary: IntentToolAccess, Confidence: conf.ToolAccess}
	}
	if mentionsTool {
		return Intent{Primary: IntentToolInfo, Confidence: conf.ToolInfo}
	}
	if c.hasPersonSignal(q) {
		return Intent{Primary: IntentPersonLookup, Confidence: conf.PersonLookup}
	}

	mentionsSession := anyTermIn(q.Terms, c.rules.Markers.Session)
	if mentionsSession && anyTermIn(q.Terms, c.rules.Markers.TemporalNext) {
		return Intent{Primary: IntentSessionNext, Confidence: conf.SessionNext}
	}
	if mentionsSession {
		return Intent{Primary: IntentSessionLookup, Confidence: conf.SessionLookup}
	}

	if c.hitsTable(phrases, vocab.TableTopics) {
		return Intent{Primary: IntentConcept, Confidence: conf.ConceptExplanation}
	}

	// There is *some* signal, just nothing domain-specific.
	return Intent{Primary: IntentResourceBrowse, Confidence: conf.ResourceBrowse}
}

// phrases returns the query's unigrams plus adjacent bigrams, so multi-word
// synonyms ("issue tracker", "prior auth") still canonicalize even though
// terms are tokenized on whitespace.
func (c *Classifier) phrases(q NormalizedQuery) []string {
	tokens := strings.Fields(q.Normalized)
	out := make([]string, 0, len(q.Terms)+len(tokens))
	out = append(out, q.Terms...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

// hitsTable reports whether any phrase canonicalizes into the given table.
func (c *Classifier) hitsTable(phrases []string, table string) bool {
	for _, p := range phrases {
		if t, ok := c.vocab.TableOf(p); ok && t == table {
			return true
		}
	}
	return false
}

// hasAccessSignal reports whether any phrase canonicalizes to the access or
// request group of the actions table.
func (c *Classifier) hasAccessSignal(phrases []string) bool {
	for _, p := range phrases {
		canonical := c.vocab.Canonicalize(p)
		if canonical != "access" && canonical != "request" {
			continue
		}
		if t, ok := c.vocab.TableOf(p); ok && t == vocab.TableActions {
			return true
		}
	}
	return false
}

// hasPersonSignal fires on a possessive marker paired with a role/person
// cue ("my manager"), or on a person-directed action ("contact natasha").
// Markers are matched against both the raw term and its canonical form, so
// "email" reaches the person rule through the contact action group.
func (c *Classifier) hasPersonSignal(q NormalizedQuery) bool {
	m := c.rules.Markers
	if anyTermIn(q.Terms, m.Possessive) && anyTermIn(q.Terms, m.PersonCues) {
		return true
	}
	for _, term := range q.Terms {
		if inList(term, m.PersonActions) || inList(c.vocab.Canonicalize(term), m.PersonActions) {
			return true
		}
	}
	return false
}

func anyTermIn(terms, list []string) bool {
	for _, t := range terms {
		if inList(t, list) {
			return true
		}
	}
	return false
}

func inList(term string, list []string) bool {
	for _, item := range list {
		if term == item {
			return true
		}
	}
	return false
}
