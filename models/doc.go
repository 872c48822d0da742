// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest: matric_number, name, password (+ optional profile fields)
  - LoginRequest / AdminLoginRequest: credentials
  - CategoryRequest / CandidateRequest: admin registry edits
  - SubmitVoteRequest: category_id, candidate_id
  - UpdateSettingRequest: status, message

# Response Types

Types for JSON responses:

  - SessionResponse: token, name, role
  - SubmitVoteResponse: vote_id, message
  - ImportVotersResponse: imported, skipped, errors
  - DashboardResponse: counts and participation summary
  - ErrorResponse: error, code, message

# Domain Types

Internal data structures:

  - Voter / Admin: the two principal kinds, canonical internal ids
  - Category: a contested position with its own voting gate
  - Candidate: an option within exactly one category
  - Vote: an immutable (voter, category, candidate) fact
  - Setting: a feature gate (status + closed-gate message)

# Tally Types

  - CandidateTally, CategoryTally, TallyStats, TallyResult

# Feature Gates

Setting centralizes the gate logic so call sites never re-derive it:

	votable := votingGate.Votable(category)   // global AND per-category
	visible := resultsGate.ResultsVisible()

# Rejection Codes

Every rejection carries a machine-readable code:

	VOTING_CLOSED, CATEGORY_CLOSED, INVALID_CANDIDATE, ALREADY_VOTED,
	NOT_AUTHENTICATED, UPSTREAM_UNAVAILABLE, VALIDATION_ERROR,
	RESULTS_HIDDEN, NOT_FOUND, CONFLICT
*/
package models
