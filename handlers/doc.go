// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package handlers contains the HTTP handlers for the voting portal.
//
// Each handler struct holds its dependencies (database handle, parsed
// configuration) and is wired to routes by the router package. Vote
// submission is the only write path with ordering-sensitive checks; its
// precondition sequence is documented on VoteHandler.Submit.
package handlers
