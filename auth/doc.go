// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing and session token utilities.

# Passwords

Passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, candidate)  // ErrInvalidCredentials on mismatch

# Session Tokens

Sessions are signed HS256 tokens carrying the canonical internal id of the
voter or admin row as the subject, plus a role claim:

	token, err := auth.NewToken(secret, voterID, auth.RoleVoter, cfg.SessionTTL)
	claims, err := auth.ParseToken(secret, token)

The id is resolved from credentials exactly once at login; every later
request trusts the subject claim. ParseToken returns ErrExpiredToken for
expired tokens and ErrInvalidToken for everything else that fails
verification.

# ID Generation

Random identifiers for database rows:

	id := auth.NewID()  // UUID v4 string
*/
package auth
