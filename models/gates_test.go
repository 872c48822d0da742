package models

import "testing"

func TestVotable(t *testing.T) {
	tests := []struct {
		name           string
		globalStatus   bool
		categoryActive bool
		want           bool
	}{
		{"both open", true, true, true},
		{"global closed", false, true, false},
		{"category closed", true, false, false},
		{"both closed", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := Setting{Key: KeyVotingActive, Status: tt.globalStatus}
			cat := Category{ID: "c1", Name: "President", IsActive: tt.categoryActive}

			if got := gate.Votable(cat); got != tt.want {
				t.Errorf("Votable(global=%v, category=%v) = %v, want %v",
					tt.globalStatus, tt.categoryActive, got, tt.want)
			}
		})
	}
}

func TestResultsVisible(t *testing.T) {
	if (Setting{Key: KeyShowResults, Status: false}).ResultsVisible() {
		t.Error("closed gate should hide results")
	}
	if !(Setting{Key: KeyShowResults, Status: true}).ResultsVisible() {
		t.Error("open gate should show results")
	}
}
