// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"strings"
	"testing"
)

func TestLoadVocabulary_Embedded(t *testing.T) {
	v, err := LoadVocabulary()
	if err != nil {
		t.Fatalf("LoadVocabulary() error: %v", err)
	}
	if v == nil {
		t.Fatal("LoadVocabulary() returned nil vocabulary")
	}

	tables := map[string]map[string][]string{
		"tools":          v.Tools,
		"topics":         v.Topics,
		"actions":        v.Actions,
		"resource_types": v.ResourceTypes,
		"teams":          v.Teams,
	}
	for name, table := range tables {
		if len(table) == 0 {
			t.Errorf("table %q is empty", name)
		}
	}

	if _, ok := v.Tools["jira"]; !ok {
		t.Error("tools table missing the jira entry")
	}
	if _, ok := v.Actions["contact"]; !ok {
		t.Error("actions table missing the contact entry")
	}
}

func TestLoadVocabulary_Cached(t *testing.T) {
	first, err := LoadVocabulary()
	if err != nil {
		t.Fatalf("first LoadVocabulary() error: %v", err)
	}
	second, err := LoadVocabulary()
	if err != nil {
		t.Fatalf("second LoadVocabulary() error: %v", err)
	}
	if first != second {
		t.Error("LoadVocabulary() did not return the cached instance")
	}
}

func TestParseVocabulary_Valid(t *testing.T) {
	raw := []byte(`
tools:
  jira: [tickets]
topics:
  okrs: [objectives]
actions:
  access: [login]
resource_types:
  guide: [playbook]
teams:
  product: [pm]
`)
	v, err := parseVocabulary(raw)
	if err != nil {
		t.Fatalf("parseVocabulary() error: %v", err)
	}
	if got := v.Tools["jira"]; len(got) != 1 || got[0] != "tickets" {
		t.Errorf("Tools[jira] = %v, want [tickets]", got)
	}
}

func TestParseVocabulary_Errors(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		wantSub string
	}{
		{
			name:    "invalid yaml",
			raw:     "tools: [not a map",
			wantSub: "parsing vocabulary.yaml",
		},
		{
			name: "missing table",
			raw: `
tools:
  jira: [tickets]
topics:
  okrs: [objectives]
actions:
  access: [login]
resource_types:
  guide: [playbook]
`,
			wantSub: `table "teams" is empty`,
		},
		{
			name: "duplicate synonym within a table",
			raw: `
tools:
  jira: [tickets]
  linear: [tickets]
topics:
  okrs: [objectives]
actions:
  access: [login]
resource_types:
  guide: [playbook]
teams:
  product: [pm]
`,
			wantSub: `synonym "tickets"`,
		},
		{
			name: "empty synonym",
			raw: `
tools:
  jira: ["  "]
topics:
  okrs: [objectives]
actions:
  access: [login]
resource_types:
  guide: [playbook]
teams:
  product: [pm]
`,
			wantSub: "empty synonym",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseVocabulary([]byte(tc.raw))
			if err == nil {
				t.Fatal("parseVocabulary() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Errorf("error %q does not contain %q", err.Error(), tc.wantSub)
			}
		})
	}
}

func TestValidateTable_CrossCanonicalCollision(t *testing.T) {
	// The same synonym under the same canonical twice is fine; under two
	// different canonicals it is not.
	ok := map[string][]string{"jira": {"tickets", "tickets"}}
	if err := validateTable("tools", ok); err != nil {
		t.Errorf("validateTable() with repeated synonym under one canonical: %v", err)
	}

	bad := map[string][]string{"jira": {"tickets"}, "linear": {"Tickets"}}
	if err := validateTable("tools", bad); err == nil {
		t.Error("validateTable() accepted a case-folded collision across canonicals")
	}
}
