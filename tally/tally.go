// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"math"
	"sort"
	"time"

	"github.com/campusvote/campusvote/models"
)

// Compute aggregates votes into per-category tallies and participation
// stats. Pure function of its inputs: no I/O, no clock beyond the stamped
// computed_at, so it is testable without a database.
//
// Counting is O(votes) via frequency maps; never a candidates x votes scan.
// A voter who voted in several categories counts once toward participation,
// but each category's tally is independent.
func Compute(categories []models.Category, candidates []models.Candidate, votes []models.Vote, totalRegistered int) models.TallyResult {
	// One pass over the votes: per-candidate counts and the distinct voter set
	countByCandidate := make(map[string]int, len(candidates))
	distinctVoters := make(map[string]struct{})
	for _, v := range votes {
		countByCandidate[v.CandidateID]++
		distinctVoters[v.VoterID] = struct{}{}
	}

	candidatesByCategory := make(map[string][]models.Candidate, len(categories))
	for _, c := range candidates {
		candidatesByCategory[c.CategoryID] = append(candidatesByCategory[c.CategoryID], c)
	}

	perCategory := make([]models.CategoryTally, 0, len(categories))
	for _, cat := range categories {
		members := candidatesByCategory[cat.ID]

		tallies := make([]models.CandidateTally, 0, len(members))
		total := 0
		for _, cand := range members {
			n := countByCandidate[cand.ID]
			tallies = append(tallies, models.CandidateTally{Candidate: cand, VoteCount: n})
			total += n
		}

		// Descending vote count; ties keep input (registration) order.
		sort.SliceStable(tallies, func(i, j int) bool {
			return tallies[i].VoteCount > tallies[j].VoteCount
		})

		perCategory = append(perCategory, models.CategoryTally{
			Category:   cat,
			Candidates: tallies,
			TotalVotes: total,
		})
	}

	return models.TallyResult{
		PerCategory: perCategory,
		Stats: models.TallyStats{
			TotalRegisteredVoters: totalRegistered,
			TotalDistinctVoters:   len(distinctVoters),
			ParticipationPercent:  Percent(len(distinctVoters), totalRegistered),
		},
		ComputedAt: time.Now(),
	}
}

// Percent returns round(100 * part / whole), rounding half away from zero.
// Defined as 0 when whole is 0.
func Percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}
