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
	"fmt"

	"github.com/AleutianAI/portal/services/answers/domain"
)

// Template-intrinsic base confidences. Independent of MatchScore by design:
// confidence communicates "right kind of answer", not "good data match".
const (
	confidenceZeroResults  = 1.0
	confidencePerson       = 0.9
	confidenceTool         = 0.9
	confidenceConcept      = 0.95
	confidenceInstant      = 0.9
	confidenceSession      = 0.9
	confidenceResourceList = 0.85
)

// Portal paths for static suggested actions. The renderer resolves these
// against the portal origin.
const (
	startDiscussionPath = "/discussions/new"
	browseLibraryPath   = "/library"
	allSessionsPath     = "/lop/sessions"
)

// maxListSources caps how many candidates the resource-list rendering cites.
const maxListSources = 5

// dateFormat is the human-readable date used in session phrasing.
const dateFormat = "January 2, 2006"

// zeroResultsAnswer renders the no-match (and no-signal) answer. It always
// reports full confidence: the engine is certain nothing was found.
func zeroResultsAnswer(q NormalizedQuery) *SynthesizedAnswer {
	text := "I couldn't find anything in the portal for that."
	if q.Normalized != "" {
		text = fmt.Sprintf("I couldn't find anything in the portal for %q.", q.Normalized)
	}
	return &SynthesizedAnswer{
		Type:       AnswerZeroResults,
		Confidence: confidenceZeroResults,
		Text:       text,
		Actions: []Action{
			{Label: "Start a Discussion", URL: startDiscussionPath, Icon: "forum", Primary: true},
			{Label: "Browse Library", URL: browseLibraryPath, Icon: "library"},
		},
		Sources: []Source{},
		Steps: []string{
			"Try a different keyword or the tool's full name",
			"Browse the resource library by topic",
			"Ask the community in a discussion",
		},
	}
}

// personAnswer renders a directory match as a person card with chat,
// profile, and email actions. Exactly one action is primary.
func personAnswer(res domain.Result) (*SynthesizedAnswer, error) {
	p := res.Person
	var missing []string
	if p.Name == "" {
		missing = append(missing, "name")
	}
	if p.Email == "" {
		missing = append(missing, "email")
	}
	if p.ProfileURL == "" {
		missing = append(missing, "profileUrl")
	}
	if len(missing) > 0 {
		return nil, &SynthesisError{Template: "person", Missing: missing}
	}

	text := fmt.Sprintf("%s is %s on the %s team.", p.Name, p.Role, p.Team)
	if p.Role == "" || p.Team == "" {
		text = fmt.Sprintf("Here's the directory entry for %s.", p.Name)
	}
	return &SynthesizedAnswer{
		Type:       AnswerPersonCard,
		Confidence: confidencePerson,
		Text:       text,
		Actions: []Action{
			{Label: "Chat", URL: p.ChatURL, Icon: "chat", Primary: true},
			{Label: "View Profile", URL: p.ProfileURL, Icon: "person"},
			{Label: "Email", URL: "mailto:" + p.Email, Icon: "mail"},
		},
		Sources: []Source{
			{Title: p.Name, URL: p.ProfileURL, Type: "person"},
		},
		FeaturedResult: &res,
	}, nil
}

// toolAnswer renders a tool card. Copy and actions differ by sub-intent
// (access request vs. info); an unavailable tool overrides the text with a
// maintenance notice regardless of sub-intent.
func toolAnswer(intent Intent, res domain.Result) (*SynthesizedAnswer, error) {
	t := res.Tool
	access := intent.Primary == IntentToolAccess

	var missing []string
	if t.Name == "" {
		missing = append(missing, "name")
	}
	if access && t.AccessURL == "" {
		missing = append(missing, "accessUrl")
	}
	if !access && t.URL == "" {
		missing = append(missing, "url")
	}
	if len(missing) > 0 {
		return nil, &SynthesisError{Template: "tool", Missing: missing}
	}

	answer := &SynthesizedAnswer{
		Type:       AnswerToolCard,
		Confidence: confidenceTool,
		Sources: []Source{
			{Title: t.Name, URL: t.URL, Type: "tool"},
		},
		FeaturedResult: &res,
	}

	if access {
		answer.Text = fmt.Sprintf("To get access to %s, submit an access request. Your manager approves it and you'll be notified by email.", t.Name)
		answer.Actions = []Action{
			{Label: "Request Access", URL: t.AccessURL, Icon: "key", Primary: true},
			{Label: "Access Guide", URL: t.GuideURL, Icon: "book"},
		}
		answer.Steps = []string{
			fmt.Sprintf("Open the access request form for %s", t.Name),
			"Pick the role you need and submit",
			"Wait for your manager's approval email",
		}
	} else {
		answer.Text = t.Description
		if answer.Text == "" {
			answer.Text = fmt.Sprintf("%s is available from the portal.", t.Name)
		}
		answer.Actions = []Action{
			{Label: "Launch Tool", URL: t.URL, Icon: "launch", Primary: true},
			{Label: "Access Guide", URL: t.GuideURL, Icon: "book"},
		}
	}

	if t.Status == domain.ToolStatusUnavailable {
		answer.Text = fmt.Sprintf("%s is temporarily unavailable for maintenance. Check the status page before requesting access.", t.Name)
	}
	return answer, nil
}

// conceptAnswer renders an FAQ as a concept explanation: the full answer
// body with its tags surfaced as key points.
func conceptAnswer(res domain.Result) (*SynthesizedAnswer, error) {
	return faqAnswer(res, AnswerConcept, confidenceConcept)
}

// instantAnswer renders an FAQ that won outside the concept intent (e.g. a
// browse query) as a direct instant answer.
func instantAnswer(res domain.Result) (*SynthesizedAnswer, error) {
	return faqAnswer(res, AnswerInstant, confidenceInstant)
}

func faqAnswer(res domain.Result, kind AnswerType, confidence float64) (*SynthesizedAnswer, error) {
	f := res.FAQ
	var missing []string
	if f.Question == "" {
		missing = append(missing, "question")
	}
	if f.Answer == "" {
		missing = append(missing, "answer")
	}
	if len(missing) > 0 {
		return nil, &SynthesisError{Template: "concept", Missing: missing}
	}

	return &SynthesizedAnswer{
		Type:       kind,
		Confidence: confidence,
		Text:       f.Answer,
		Actions: []Action{
			{Label: "Read More", URL: f.URL, Icon: "article", Primary: true},
			{Label: "Start a Discussion", URL: startDiscussionPath, Icon: "forum"},
		},
		Sources: []Source{
			{Title: f.Question, URL: f.URL, Type: "faq"},
		},
		KeyPoints:      f.Tags,
		FeaturedResult: &res,
	}, nil
}

// sessionAnswer renders a scheduled-session match. The "next" sub-intent
// states the session title and date; the generic sub-intent restates the
// query instead.
func sessionAnswer(intent Intent, q NormalizedQuery, res domain.Result) (*SynthesizedAnswer, error) {
	s := res.Session
	var missing []string
	if s.Title == "" {
		missing = append(missing, "title")
	}
	if intent.Primary == IntentSessionNext && s.Date.IsZero() {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return nil, &SynthesisError{Template: "session", Missing: missing}
	}

	var text string
	if intent.Primary == IntentSessionNext {
		text = fmt.Sprintf("The next LOP session is %q on %s.", s.Title, s.Date.Format(dateFormat))
	} else {
		text = fmt.Sprintf("Here's a LOP session matching %q: %s.", q.Normalized, s.Title)
	}

	return &SynthesizedAnswer{
		Type:       AnswerLOPSession,
		Confidence: confidenceSession,
		Text:       text,
		Actions: []Action{
			{Label: "Watch Recording", URL: s.RecordingURL, Icon: "play", Primary: true},
			{Label: "View All Sessions", URL: allSessionsPath, Icon: "calendar"},
		},
		Sources: []Source{
			{Title: s.Title, URL: s.RecordingURL, Type: "session"},
		},
		FeaturedResult: &res,
	}, nil
}

// resourceListAnswer is the generic fallback when candidates exist but no
// typed template matches. It carries no confidence-bearing prose and no
// featured result; the top candidates become sources for the renderer's
// list view.
func resourceListAnswer(q NormalizedQuery, candidates []domain.Result) *SynthesizedAnswer {
	n := len(candidates)
	if n > maxListSources {
		n = maxListSources
	}
	sources := make([]Source, 0, n)
	for _, res := range candidates[:n] {
		sources = append(sources, Source{
			Title: res.Title(),
			URL:   res.URL(),
			Type:  string(res.Kind),
		})
	}
	return &SynthesizedAnswer{
		Type:       AnswerResourceList,
		Confidence: confidenceResourceList,
		Text:       fmt.Sprintf("Here's what the portal has for %q.", q.Normalized),
		Actions: []Action{
			{Label: "Browse Library", URL: browseLibraryPath, Icon: "library", Primary: true},
			{Label: "Start a Discussion", URL: startDiscussionPath, Icon: "forum"},
		},
		Sources: sources,
	}
}
