// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package answers

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name           string
		raw            string
		wantNormalized string
		wantTerms      []string
	}{
		{
			name:           "empty input",
			raw:            "",
			wantNormalized: "",
			wantTerms:      nil,
		},
		{
			name:           "whitespace only",
			raw:            "   \t\n  ",
			wantNormalized: "",
			wantTerms:      nil,
		},
		{
			name:           "lowercases and collapses whitespace",
			raw:            "  Request   ACCESS to\tJira ",
			wantNormalized: "request access to jira",
			wantTerms:      []string{"request", "access", "to", "jira"},
		},
		{
			name:           "dedupes preserving first-seen order",
			raw:            "jira jira access jira",
			wantNormalized: "jira jira access jira",
			wantTerms:      []string{"jira", "access"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.raw)
			if got.Raw != tc.raw {
				t.Errorf("Raw = %q, want input preserved verbatim", got.Raw)
			}
			if got.Normalized != tc.wantNormalized {
				t.Errorf("Normalized = %q, want %q", got.Normalized, tc.wantNormalized)
			}
			if !reflect.DeepEqual(got.Terms, tc.wantTerms) {
				t.Errorf("Terms = %v, want %v", got.Terms, tc.wantTerms)
			}
		})
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	a := Normalize("My Manager   my manager")
	b := Normalize("My Manager   my manager")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Normalize() is not deterministic: %+v vs %+v", a, b)
	}
}
