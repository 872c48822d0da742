// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"testing"

	"github.com/campusvote/campusvote/models"
)

func cat(id, name string) models.Category {
	return models.Category{ID: id, Name: name, IsActive: true}
}

func cand(id, categoryID, name string) models.Candidate {
	return models.Candidate{ID: id, CategoryID: categoryID, Name: name, IsActive: true}
}

func vote(voterID, categoryID, candidateID string) models.Vote {
	return models.Vote{ID: voterID + "-" + categoryID, VoterID: voterID, CategoryID: categoryID, CandidateID: candidateID}
}

func TestCompute(t *testing.T) {
	categories := []models.Category{cat("c1", "President"), cat("c2", "Secretary")}
	candidates := []models.Candidate{
		cand("a1", "c1", "Ada"),
		cand("a2", "c1", "Ben"),
		cand("a3", "c2", "Chi"),
		cand("a4", "c2", "Dan"),
	}

	votes := []models.Vote{
		vote("v1", "c1", "a1"),
		vote("v2", "c1", "a1"),
		vote("v3", "c1", "a2"),
		vote("v1", "c2", "a3"), // v1 voted in both categories
		vote("v4", "c2", "a3"),
	}

	result := Compute(categories, candidates, votes, 10)

	if len(result.PerCategory) != 2 {
		t.Fatalf("Expected 2 category tallies, got %d", len(result.PerCategory))
	}

	president := result.PerCategory[0]
	if president.TotalVotes != 3 {
		t.Errorf("Expected 3 votes for President, got %d", president.TotalVotes)
	}
	if president.Candidates[0].Candidate.ID != "a1" || president.Candidates[0].VoteCount != 2 {
		t.Errorf("Expected a1 first with 2 votes, got %s with %d",
			president.Candidates[0].Candidate.ID, president.Candidates[0].VoteCount)
	}

	secretary := result.PerCategory[1]
	if secretary.TotalVotes != 2 {
		t.Errorf("Expected 2 votes for Secretary, got %d", secretary.TotalVotes)
	}
	if secretary.Candidates[1].VoteCount != 0 {
		t.Errorf("Candidate with no votes should tally 0, got %d", secretary.Candidates[1].VoteCount)
	}

	// v1 voted twice but counts once toward participation
	if result.Stats.TotalDistinctVoters != 4 {
		t.Errorf("Expected 4 distinct voters, got %d", result.Stats.TotalDistinctVoters)
	}
	if result.Stats.ParticipationPercent != 40 {
		t.Errorf("Expected 40%% participation, got %d", result.Stats.ParticipationPercent)
	}
}

func TestComputeTotalsInvariant(t *testing.T) {
	// sum of candidate counts must equal the category total, always
	categories := []models.Category{cat("c1", "President")}
	candidates := []models.Candidate{
		cand("a1", "c1", "Ada"),
		cand("a2", "c1", "Ben"),
		cand("a3", "c1", "Chi"),
	}

	votes := []models.Vote{
		vote("v1", "c1", "a1"),
		vote("v2", "c1", "a2"),
		vote("v3", "c1", "a1"),
		vote("v4", "c1", "a3"),
		vote("v5", "c1", "a1"),
	}

	result := Compute(categories, candidates, votes, 5)
	ct := result.PerCategory[0]

	sum := 0
	for _, c := range ct.Candidates {
		sum += c.VoteCount
	}
	if sum != ct.TotalVotes {
		t.Errorf("Candidate counts sum to %d, category total is %d", sum, ct.TotalVotes)
	}
}

func TestComputeTieOrderIsStable(t *testing.T) {
	categories := []models.Category{cat("c1", "President")}
	candidates := []models.Candidate{
		cand("a1", "c1", "First Registered"),
		cand("a2", "c1", "Second Registered"),
		cand("a3", "c1", "Third Registered"),
	}

	// a1 and a3 tie on 1 vote; a2 has 2
	votes := []models.Vote{
		vote("v1", "c1", "a2"),
		vote("v2", "c1", "a2"),
		vote("v3", "c1", "a1"),
		vote("v4", "c1", "a3"),
	}

	result := Compute(categories, candidates, votes, 4)
	got := result.PerCategory[0].Candidates

	if got[0].Candidate.ID != "a2" {
		t.Errorf("Expected a2 first, got %s", got[0].Candidate.ID)
	}
	// tie broken by input order: a1 before a3
	if got[1].Candidate.ID != "a1" || got[2].Candidate.ID != "a3" {
		t.Errorf("Tie should keep registration order, got %s then %s",
			got[1].Candidate.ID, got[2].Candidate.ID)
	}
}

func TestComputeEmpty(t *testing.T) {
	result := Compute(nil, nil, nil, 0)

	if len(result.PerCategory) != 0 {
		t.Errorf("Expected no category tallies, got %d", len(result.PerCategory))
	}
	if result.Stats.ParticipationPercent != 0 {
		t.Errorf("Participation with 0 registered voters must be 0, got %d", result.Stats.ParticipationPercent)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		part, whole, want int
	}{
		{0, 0, 0},   // divide-by-zero guard
		{4, 10, 40},
		{2, 3, 67},  // 66.67 rounds up
		{1, 3, 33},  // 33.33 rounds down
		{1, 2, 50},
		{5, 5, 100},
		{1, 8, 13},  // 12.5 rounds half away from zero
	}

	for _, tt := range tests {
		if got := Percent(tt.part, tt.whole); got != tt.want {
			t.Errorf("Percent(%d, %d) = %d, want %d", tt.part, tt.whole, got, tt.want)
		}
	}
}
