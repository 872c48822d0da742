// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/campusvote/campusvote/models"
)

// Export is a rendered tally ready for delivery. Callers handle transport
// (response body, file download); FormatExport itself does no I/O.
type Export struct {
	Content  string
	MIMEType string
	FileName string
}

// Format values accepted by FormatExport
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// FormatExport renders a tally as CSV or JSON. The file name embeds the
// export date: voting-results-<ISO-date>.<ext>.
//
// CSV columns are Category,Candidate,Votes,Percentage; encoding/csv handles
// quoting, so free-text names containing commas survive. Percentage is
// round-half-away-from-zero of the candidate's share of the category total,
// 0 when the category has no votes. JSON is the tally structure serialized
// directly.
func FormatExport(result models.TallyResult, format string, now time.Time) (Export, error) {
	date := now.Format("2006-01-02")

	switch format {
	case FormatCSV:
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.Write([]string{"Category", "Candidate", "Votes", "Percentage"}); err != nil {
			return Export{}, fmt.Errorf("failed to write CSV header: %w", err)
		}
		for _, ct := range result.PerCategory {
			for _, cand := range ct.Candidates {
				row := []string{
					ct.Category.Name,
					cand.Candidate.Name,
					strconv.Itoa(cand.VoteCount),
					strconv.Itoa(Percent(cand.VoteCount, ct.TotalVotes)) + "%",
				}
				if err := w.Write(row); err != nil {
					return Export{}, fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return Export{}, fmt.Errorf("failed to flush CSV: %w", err)
		}
		return Export{
			Content:  buf.String(),
			MIMEType: "text/csv",
			FileName: "voting-results-" + date + ".csv",
		}, nil

	case FormatJSON:
		body, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return Export{}, fmt.Errorf("failed to marshal tally: %w", err)
		}
		return Export{
			Content:  string(body),
			MIMEType: "application/json",
			FileName: "voting-results-" + date + ".json",
		}, nil

	default:
		return Export{}, fmt.Errorf("unsupported export format %q", format)
	}
}
