package tally

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/campusvote/campusvote/models"
)

func sampleTally() models.TallyResult {
	categories := []models.Category{cat("c1", "President, Student Union")}
	candidates := []models.Candidate{
		cand("a1", "c1", "Ada Obi"),
		cand("a2", "c1", "Ben, the Builder"),
	}
	votes := []models.Vote{
		vote("v1", "c1", "a1"),
		vote("v2", "c1", "a1"),
		vote("v3", "c1", "a2"),
	}
	return Compute(categories, candidates, votes, 10)
}

func TestFormatExportCSV(t *testing.T) {
	exported, err := FormatExport(sampleTally(), FormatCSV, time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("FormatExport failed: %v", err)
	}

	if exported.MIMEType != "text/csv" {
		t.Errorf("Expected text/csv, got %s", exported.MIMEType)
	}
	if exported.FileName != "voting-results-2026-03-14.csv" {
		t.Errorf("Unexpected file name %s", exported.FileName)
	}

	// Content must survive a real CSV parse despite commas in names
	records, err := csv.NewReader(strings.NewReader(exported.Content)).ReadAll()
	if err != nil {
		t.Fatalf("Exported CSV does not parse: %v", err)
	}
	if len(records) != 3 { // header + 2 candidates
		t.Fatalf("Expected 3 CSV records, got %d", len(records))
	}

	header := strings.Join(records[0], ",")
	if header != "Category,Candidate,Votes,Percentage" {
		t.Errorf("Unexpected header %s", header)
	}

	// A=2/3 votes -> 67%, B=1/3 -> 33%
	if records[1][1] != "Ada Obi" || records[1][2] != "2" || records[1][3] != "67%" {
		t.Errorf("Unexpected first row %v", records[1])
	}
	if records[2][1] != "Ben, the Builder" || records[2][2] != "1" || records[2][3] != "33%" {
		t.Errorf("Unexpected second row %v", records[2])
	}
	if records[1][0] != "President, Student Union" {
		t.Errorf("Category name with comma mangled: %v", records[1])
	}
}

func TestFormatExportCSV_ZeroVotes(t *testing.T) {
	categories := []models.Category{cat("c1", "President")}
	candidates := []models.Candidate{cand("a1", "c1", "Ada")}
	result := Compute(categories, candidates, nil, 10)

	exported, err := FormatExport(result, FormatCSV, time.Now())
	if err != nil {
		t.Fatalf("FormatExport failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(exported.Content)).ReadAll()
	if err != nil {
		t.Fatalf("Exported CSV does not parse: %v", err)
	}
	// 0-vote category: percentage is 0%, not a division error
	if records[1][3] != "0%" {
		t.Errorf("Expected 0%% for empty category, got %s", records[1][3])
	}
}

func TestFormatExportJSON(t *testing.T) {
	exported, err := FormatExport(sampleTally(), FormatJSON, time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("FormatExport failed: %v", err)
	}

	if exported.MIMEType != "application/json" {
		t.Errorf("Expected application/json, got %s", exported.MIMEType)
	}
	if exported.FileName != "voting-results-2026-03-14.json" {
		t.Errorf("Unexpected file name %s", exported.FileName)
	}

	var decoded models.TallyResult
	if err := json.Unmarshal([]byte(exported.Content), &decoded); err != nil {
		t.Fatalf("Exported JSON does not parse: %v", err)
	}
	if len(decoded.PerCategory) != 1 || decoded.PerCategory[0].TotalVotes != 3 {
		t.Errorf("JSON export lost data: %+v", decoded)
	}
}

func TestFormatExportUnknownFormat(t *testing.T) {
	if _, err := FormatExport(sampleTally(), "xml", time.Now()); err == nil {
		t.Error("Expected error for unsupported format")
	}
}
