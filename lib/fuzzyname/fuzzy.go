// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package fuzzyname

import (
	"sort"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// slabInstance is reused across matches the way the teacher's ticketui
// package reuses a single markdown parser: fzf's Slab is scratch space
// for the matcher, safe to share across sequential calls.
var (
	slabInstance *util.Slab
	slabOnce     sync.Once
)

func slab() *util.Slab {
	slabOnce.Do(func() {
		slabInstance = util.MakeSlab(100*1024, 2048)
	})
	return slabInstance
}

// Match is one candidate name with its fuzzy-match score against a
// query. Score is fzf's own scale; higher is a better match.
type Match struct {
	Name  string
	Score int
}

// Rank scores every candidate against query using fzf's FuzzyMatchV2
// algorithm and returns the candidates that matched at all, best match
// first. An empty query matches every candidate with score zero,
// preserving input order.
func Rank(candidates []string, query string) []Match {
	if query == "" {
		out := make([]Match, len(candidates))
		for i, c := range candidates {
			out[i] = Match{Name: c}
		}
		return out
	}

	pattern := []rune(query)
	var matches []Match
	for _, candidate := range candidates {
		chars := util.RunesToChars([]rune(candidate))
		result, _ := algo.FuzzyMatchV2(false, true, true, &chars, pattern, false, slab())
		if int(result.Score) <= 0 {
			continue
		}
		matches = append(matches, Match{Name: candidate, Score: int(result.Score)})
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	return matches
}

// Best returns the single best match, or ok=false if query matched
// nothing. An exact name match always wins regardless of fzf's score,
// so a receiver literally named "prod" is never shadowed by a longer
// fuzzy competitor.
func Best(candidates []string, query string) (Match, bool) {
	for _, c := range candidates {
		if c == query {
			return Match{Name: c, Score: 0}, true
		}
	}
	ranked := Rank(candidates, query)
	if len(ranked) == 0 {
		return Match{}, false
	}
	return ranked[0], true
}
