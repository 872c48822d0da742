// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally computes election aggregates and renders them for export.

# Computing Tallies

Compute is a pure function over reference data and the vote ledger:

	result := tally.Compute(categories, candidates, votes, totalRegistered)

It produces per-candidate counts, per-category totals, and participation
stats. Counting is a single O(votes) pass with frequency maps. Candidates
are ordered by descending count with ties kept in input order, so output is
deterministic for fixed inputs.

Counts are always derived here from the ledger, never maintained as mutable
counters elsewhere.

# Export

FormatExport renders a result as CSV or JSON:

	exported, err := tally.FormatExport(result, tally.FormatCSV, time.Now())
	// exported.Content, exported.MIMEType, exported.FileName

CSV quoting goes through encoding/csv; percentages round half away from
zero and a zero-vote category exports 0% rather than failing.
*/
package tally
