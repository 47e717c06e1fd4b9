// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package domain defines the search collaborator contract and the tagged
// result union the answers engine scores and synthesizes from.
//
// Results are ephemeral: produced per query, never cached, never mutated.
package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Name identifies a result domain and its collaborator.
type Name string

// The portal's result domains. AllDomains lists them in the fixed order
// multi-domain retrievals merge in.
const (
	DomainPeople      Name = "people"
	DomainTools       Name = "tools"
	DomainFAQs        Name = "faqs"
	DomainSessions    Name = "sessions"
	DomainResources   Name = "resources"
	DomainDiscussions Name = "discussions"
)

// AllDomains returns every domain in merge order.
func AllDomains() []Name {
	return []Name{
		DomainPeople, DomainTools, DomainFAQs,
		DomainSessions, DomainResources, DomainDiscussions,
	}
}

// Kind tags the variant carried by a Result.
type Kind string

// Result variants.
const (
	KindPerson     Kind = "person"
	KindTool       Kind = "tool"
	KindFAQ        Kind = "faq"
	KindSession    Kind = "session"
	KindResource   Kind = "resource"
	KindDiscussion Kind = "discussion"
)

// Tool availability statuses.
const (
	ToolStatusAvailable   = "available"
	ToolStatusUnavailable = "unavailable"
)

// Person is a directory entry.
type Person struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Role       string   `json:"role" yaml:"role"`
	Team       string   `json:"team" yaml:"team"`
	Email      string   `json:"email" yaml:"email"`
	ChatURL    string   `json:"chatUrl" yaml:"chat_url"`
	ProfileURL string   `json:"profileUrl" yaml:"profile_url"`
	Skills     []string `json:"skills,omitempty" yaml:"skills"`
}

// Tool is an internal tool or system the portal links out to.
type Tool struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	URL         string   `json:"url" yaml:"url"`
	AccessURL   string   `json:"accessUrl" yaml:"access_url"`
	GuideURL    string   `json:"guideUrl" yaml:"guide_url"`
	Status      string   `json:"status" yaml:"status"`
	Tags        []string `json:"tags,omitempty" yaml:"tags"`
}

// FAQ is a question with a curated answer.
type FAQ struct {
	ID       string   `json:"id" yaml:"id"`
	Question string   `json:"question" yaml:"question"`
	Answer   string   `json:"answer" yaml:"answer"`
	URL      string   `json:"url" yaml:"url"`
	Tags     []string `json:"tags,omitempty" yaml:"tags"`
}

// Session is a scheduled (or recorded) LOP session.
type Session struct {
	ID           string    `json:"id" yaml:"id"`
	Title        string    `json:"title" yaml:"title"`
	Speaker      string    `json:"speaker" yaml:"speaker"`
	Date         time.Time `json:"date" yaml:"date"`
	Upcoming     bool      `json:"upcoming" yaml:"upcoming"`
	RecordingURL string    `json:"recordingUrl" yaml:"recording_url"`
	Tags         []string  `json:"tags,omitempty" yaml:"tags"`
}

// Resource is a library item (template, guide, video, article).
type Resource struct {
	ID    string   `json:"id" yaml:"id"`
	Title string   `json:"title" yaml:"title"`
	Type  string   `json:"type" yaml:"type"`
	URL   string   `json:"url" yaml:"url"`
	Tags  []string `json:"tags,omitempty" yaml:"tags"`
}

// Discussion is a community thread.
type Discussion struct {
	ID      string   `json:"id" yaml:"id"`
	Title   string   `json:"title" yaml:"title"`
	URL     string   `json:"url" yaml:"url"`
	Replies int      `json:"replies" yaml:"replies"`
	Tags    []string `json:"tags,omitempty" yaml:"tags"`
}

// Result is a tagged union over the domain result shapes. Exactly one
// payload pointer is non-nil, selected by Kind. MatchScore is assigned by
// the retriever: the fraction of the query's original terms found in the
// result's indexed fields, in [0,1].
type Result struct {
	Kind       Kind
	MatchScore float64

	Person     *Person
	Tool       *Tool
	FAQ        *FAQ
	Session    *Session
	Resource   *Resource
	Discussion *Discussion
}

// ID returns the payload's identifier, used to dedupe union results across
// expanded-term searches.
func (r Result) ID() string {
	switch r.Kind {
	case KindPerson:
		return r.Person.ID
	case KindTool:
		return r.Tool.ID
	case KindFAQ:
		return r.FAQ.ID
	case KindSession:
		return r.Session.ID
	case KindResource:
		return r.Resource.ID
	case KindDiscussion:
		return r.Discussion.ID
	}
	return ""
}

// Title returns the payload's display title (name for people, question for
// FAQs). This is one of the indexed fields match scoring runs over.
func (r Result) Title() string {
	switch r.Kind {
	case KindPerson:
		return r.Person.Name
	case KindTool:
		return r.Tool.Name
	case KindFAQ:
		return r.FAQ.Question
	case KindSession:
		return r.Session.Title
	case KindResource:
		return r.Resource.Title
	case KindDiscussion:
		return r.Discussion.Title
	}
	return ""
}

// Tags returns the payload's tag list (skills for people). Indexed for
// match scoring alongside the title.
func (r Result) Tags() []string {
	switch r.Kind {
	case KindPerson:
		return r.Person.Skills
	case KindTool:
		return r.Tool.Tags
	case KindFAQ:
		return r.FAQ.Tags
	case KindSession:
		return r.Session.Tags
	case KindResource:
		return r.Resource.Tags
	case KindDiscussion:
		return r.Discussion.Tags
	}
	return nil
}

// URL returns the payload's canonical link, used to populate answer sources.
func (r Result) URL() string {
	switch r.Kind {
	case KindPerson:
		return r.Person.ProfileURL
	case KindTool:
		return r.Tool.URL
	case KindFAQ:
		return r.FAQ.URL
	case KindSession:
		return r.Session.RecordingURL
	case KindResource:
		return r.Resource.URL
	case KindDiscussion:
		return r.Discussion.URL
	}
	return ""
}

// Validate checks that the Kind tag and payload pointers agree: the tagged
// payload is non-nil and all others are nil.
func (r Result) Validate() error {
	var tagged any
	count := 0
	for _, p := range []struct {
		kind Kind
		val  any
		set  bool
	}{
		{KindPerson, r.Person, r.Person != nil},
		{KindTool, r.Tool, r.Tool != nil},
		{KindFAQ, r.FAQ, r.FAQ != nil},
		{KindSession, r.Session, r.Session != nil},
		{KindResource, r.Resource, r.Resource != nil},
		{KindDiscussion, r.Discussion, r.Discussion != nil},
	} {
		if p.set {
			count++
			if p.kind == r.Kind {
				tagged = p.val
			}
		}
	}
	if count != 1 {
		return fmt.Errorf("result %q: expected exactly 1 payload, found %d", r.Kind, count)
	}
	if tagged == nil {
		return fmt.Errorf("result %q: payload does not match kind tag", r.Kind)
	}
	return nil
}

// MarshalJSON flattens the tagged payload into a single object with "kind"
// and "matchScore" fields, the shape the presentation layer consumes.
func (r Result) MarshalJSON() ([]byte, error) {
	var payload any
	switch r.Kind {
	case KindPerson:
		payload = r.Person
	case KindTool:
		payload = r.Tool
	case KindFAQ:
		payload = r.FAQ
	case KindSession:
		payload = r.Session
	case KindResource:
		payload = r.Resource
	case KindDiscussion:
		payload = r.Discussion
	default:
		return nil, fmt.Errorf("marshal result: unknown kind %q", r.Kind)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	flat := make(map[string]any)
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, err
	}
	flat["kind"] = r.Kind
	flat["matchScore"] = r.MatchScore
	return json.Marshal(flat)
}

// Constructors pairing each payload with its kind tag.

// PersonResult wraps a Person in a tagged Result.
func PersonResult(p *Person) Result { return Result{Kind: KindPerson, Person: p} }

// ToolResult wraps a Tool in a tagged Result.
func ToolResult(t *Tool) Result { return Result{Kind: KindTool, Tool: t} }

// FAQResult wraps a FAQ in a tagged Result.
func FAQResult(f *FAQ) Result { return Result{Kind: KindFAQ, FAQ: f} }

// SessionResult wraps a Session in a tagged Result.
func SessionResult(s *Session) Result { return Result{Kind: KindSession, Session: s} }

// ResourceResult wraps a Resource in a tagged Result.
func ResourceResult(res *Resource) Result { return Result{Kind: KindResource, Resource: res} }

// DiscussionResult wraps a Discussion in a tagged Result.
func DiscussionResult(d *Discussion) Result { return Result{Kind: KindDiscussion, Discussion: d} }
