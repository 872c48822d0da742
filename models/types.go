package models

import "time"

// Setting keys
const (
	KeyVotingActive = "voting_active"
	KeyShowResults  = "show_results"
)

// Rejection codes. Every rejection carries one of these so clients can act
// on the specific reason rather than a collapsed generic failure.
const (
	CodeVotingClosed        = "VOTING_CLOSED"
	CodeCategoryClosed      = "CATEGORY_CLOSED"
	CodeInvalidCandidate    = "INVALID_CANDIDATE"
	CodeAlreadyVoted        = "ALREADY_VOTED"
	CodeNotAuthenticated    = "NOT_AUTHENTICATED"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeValidationError     = "VALIDATION_ERROR"
	CodeResultsHidden       = "RESULTS_HIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
)

// Request types

type RegisterRequest struct {
	MatricNumber string `json:"matric_number"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Department   string `json:"department"`
	Level        string `json:"level"`
	Password     string `json:"password"`
}

type LoginRequest struct {
	MatricNumber string `json:"matric_number"`
	Password     string `json:"password"`
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CategoryRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	IsActive     bool   `json:"is_active"`
	DisplayOrder *int   `json:"display_order,omitempty"`
}

type CandidateRequest struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Bio        string `json:"bio"`
	ImageURL   string `json:"image_url"`
	IsActive   bool   `json:"is_active"`
}

type SubmitVoteRequest struct {
	CategoryID  string `json:"category_id"`
	CandidateID string `json:"candidate_id"`
}

type UpdateSettingRequest struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// Response types

type SessionResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type SubmitVoteResponse struct {
	VoteID  string `json:"vote_id"`
	Message string `json:"message"`
}

type ImportVotersResponse struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

type DashboardResponse struct {
	TotalVoters     int    `json:"total_voters"`
	TotalCategories int    `json:"total_categories"`
	TotalCandidates int    `json:"total_candidates"`
	TotalVotes      int    `json:"total_votes"`
	Participation   int    `json:"participation_rate_percent"`
	Summary         string `json:"summary"`
}

// Domain types

type Voter struct {
	ID           string    `json:"id"`
	MatricNumber string    `json:"matric_number"`
	Name         string    `json:"name"`
	Email        *string   `json:"email,omitempty"`
	Department   *string   `json:"department,omitempty"`
	Level        *string   `json:"level,omitempty"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	IsActive     bool      `json:"is_active"`
	HasVoted     bool      `json:"has_voted,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Email        *string   `json:"email,omitempty"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}

type Category struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	IsActive     bool      `json:"is_active"`
	DisplayOrder int       `json:"display_order"`
	Votable      bool      `json:"votable"`
	CreatedAt    time.Time `json:"created_at"`
}

type Candidate struct {
	ID         string    `json:"id"`
	CategoryID string    `json:"category_id"`
	Name       string    `json:"name"`
	Bio        *string   `json:"bio,omitempty"`
	ImageURL   *string   `json:"image_url,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

type Vote struct {
	ID          string    `json:"id"`
	VoterID     string    `json:"voter_id"`
	CategoryID  string    `json:"category_id"`
	CandidateID string    `json:"candidate_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Tally types

type CandidateTally struct {
	Candidate Candidate `json:"candidate"`
	VoteCount int       `json:"vote_count"`
}

type CategoryTally struct {
	Category   Category         `json:"category"`
	Candidates []CandidateTally `json:"candidates"`
	TotalVotes int              `json:"total_votes"`
}

type TallyStats struct {
	TotalRegisteredVoters int `json:"total_registered_voters"`
	TotalDistinctVoters   int `json:"total_distinct_voters"`
	ParticipationPercent  int `json:"participation_rate_percent"`
}

type TallyResult struct {
	PerCategory []CategoryTally `json:"per_category"`
	Stats       TallyStats      `json:"stats"`
	ComputedAt  time.Time       `json:"computed_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
