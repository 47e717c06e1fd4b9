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

import "github.com/AleutianAI/portal/services/answers/domain"

// Synthesize dispatches from (intent, top candidate or none) to the
// matching answer template. Purely functional: no side effects, no state.
//
// # Description
//
//	Dispatch order, first match wins:
//
//	  1. no candidates                          -> zero-results template
//	  2. PERSON_LOOKUP + person candidate       -> person template
//	  3. TOOL_ACCESS/TOOL_INFO + tool candidate -> tool template
//	  4. CONCEPT_EXPLANATION + FAQ candidate    -> concept template
//	  5. SESSION_NEXT/SESSION_LOOKUP + session  -> session template
//	  6. FAQ candidate under any other intent   -> instant answer
//	  7. anything else                          -> resource-list rendering
//
//	SESSION_NEXT features the earliest-dated upcoming session among the
//	candidates, not the best lexical match: match scoring knows nothing
//	about recency, and "next" is a recency question.
//
//	Synthesize cannot fail on well-formed inputs. A malformed candidate
//	(required fields absent for the matched template) fails fast with a
//	*SynthesisError rather than emitting a partially-populated answer,
//	since the presentation layer assumes structural completeness.
//
// # Thread Safety
//
// Safe for concurrent use.
func Synthesize(intent Intent, q NormalizedQuery, candidates []domain.Result) (*SynthesizedAnswer, error) {
	if len(candidates) == 0 {
		return zeroResultsAnswer(q), nil
	}

	top := candidates[0]
	switch {
	case intent.Primary == IntentPersonLookup && top.Kind == domain.KindPerson:
		return personAnswer(top)

	case (intent.Primary == IntentToolAccess || intent.Primary == IntentToolInfo) &&
		top.Kind == domain.KindTool:
		return toolAnswer(intent, top)

	case intent.Primary == IntentConcept && top.Kind == domain.KindFAQ:
		return conceptAnswer(top)

	case (intent.Primary == IntentSessionNext || intent.Primary == IntentSessionLookup) &&
		top.Kind == domain.KindSession:
		if intent.Primary == IntentSessionNext {
			top = nextSession(candidates)
		}
		return sessionAnswer(intent, q, top)

	case top.Kind == domain.KindFAQ:
		return instantAnswer(top)

	default:
		return resourceListAnswer(q, candidates), nil
	}
}

// nextSession picks the session a "next session" query should feature: the
// earliest-dated upcoming session among the candidates. Candidate order is
// score order, which carries no recency signal, so the scan covers every
// candidate rather than trusting the head. Falls back to the top candidate
// when nothing is marked upcoming.
func nextSession(candidates []domain.Result) domain.Result {
	var next domain.Result
	found := false
	for _, res := range candidates {
		if res.Kind != domain.KindSession {
			continue
		}
		s := res.Session
		if !s.Upcoming || s.Date.IsZero() {
			continue
		}
		if !found || s.Date.Before(next.Session.Date) {
			next = res
			found = true
		}
	}
	if !found {
		return candidates[0]
	}
	return next
}
