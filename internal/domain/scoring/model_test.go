package scoring

import "testing"

func TestParseCell(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw        string
		wantPoints int
		wantHits   int
	}{
		{raw: "45:2", wantPoints: 45, wantHits: 2},
		{raw: "45:0", wantPoints: 45, wantHits: 0},
		{raw: "45", wantPoints: 45, wantHits: 0},
		{raw: "", wantPoints: 0, wantHits: 0},
		{raw: "  ", wantPoints: 0, wantHits: 0},
		{raw: "abc:def", wantPoints: 0, wantHits: 0},
		{raw: "-5:1", wantPoints: 0, wantHits: 1},
		{raw: "60:-4", wantPoints: 60, wantHits: 0},
		{raw: " 38 : 1 ", wantPoints: 38, wantHits: 1},
	}

	for _, tc := range tests {
		points, hits := ParseCell(tc.raw)
		if points != tc.wantPoints || hits != tc.wantHits {
			t.Fatalf("ParseCell(%q) = %d:%d, want %d:%d", tc.raw, points, hits, tc.wantPoints, tc.wantHits)
		}
	}
}

func TestTable_DefaultsAndHits(t *testing.T) {
	t.Parallel()

	table := NewTable()
	table.Set(WeeklyScore{Team: "John", Week: 1, Points: 50, Hits: 1})
	table.Set(WeeklyScore{Team: "John", Week: 2, Points: 40, Hits: 2})
	table.Set(WeeklyScore{Team: "Paul", Week: 1, Points: 61})

	if got := table.Points("John", 2); got != 40 {
		t.Fatalf("unexpected points: got=%d want=40", got)
	}
	if got := table.Points("John", 3); got != 0 {
		t.Fatalf("missing week must default to zero, got %d", got)
	}
	if got := table.Points("Ringo", 1); got != 0 {
		t.Fatalf("missing team must default to zero, got %d", got)
	}

	// Weeks strictly before week 3: hits from weeks 1 and 2.
	if got := table.TotalHitsBefore("John", 3); got != 3 {
		t.Fatalf("unexpected total hits: got=%d want=3", got)
	}
	if got := table.TotalHitsBefore("John", 2); got != 1 {
		t.Fatalf("unexpected total hits: got=%d want=1", got)
	}

	if got := table.MaxWeek(); got != 2 {
		t.Fatalf("unexpected max week: got=%d want=2", got)
	}

	teams := table.Teams()
	if len(teams) != 2 || teams[0] != "John" || teams[1] != "Paul" {
		t.Fatalf("teams must keep insertion order, got %v", teams)
	}
}
