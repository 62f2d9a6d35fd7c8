package forms

import (
	"sort"
	"strings"
)

// resolveName implements the SQL-style two-tier lookup shared by Definition
// and Form. An exact match wins outright; otherwise every name equal to the
// query or ending in "_"+query is a candidate. Zero candidates is a miss
// (index -1, nil error), one resolves, more fail with AmbiguousFieldError.
//
// The suffix match is literal: a bare field named "super_street" satisfies a
// query for "street" even though no composition produced it. That behavior
// is deliberate and load-bearing for callers that rely on it.
func resolveName(names []string, index map[string]int, query string) (int, error) {
	if idx, ok := index[query]; ok {
		return idx, nil
	}

	var candidates []string
	for _, name := range names {
		if name == query || strings.HasSuffix(name, "_"+query) {
			candidates = append(candidates, name)
		}
	}

	switch len(candidates) {
	case 0:
		return -1, nil
	case 1:
		return index[candidates[0]], nil
	default:
		sort.Strings(candidates)
		return -1, &AmbiguousFieldError{Query: query, Candidates: candidates}
	}
}
