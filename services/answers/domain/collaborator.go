// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package domain

import "context"

// Collaborator is the search capability each result domain exposes to the
// answers engine. The engine does not care how a domain implements search
// (index, database, in-memory filter) — only this contract.
//
// Search receives the query's expanded terms (originals plus synonym
// expansions, already lowercased) and returns zero or more results from its
// domain. Returning an empty slice is a valid outcome, not an error.
// Implementations must honor ctx cancellation on any blocking work.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use: multi-domain retrievals
// fan out to several collaborators at once.
type Collaborator interface {
	Search(ctx context.Context, terms []string) ([]Result, error)
}
