package cup

import "testing"

func TestWeeks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		number    int
		wantFirst int
		wantLast  int
	}{
		{number: 1, wantFirst: 1, wantLast: 7},
		{number: 2, wantFirst: 8, wantLast: 14},
		{number: 5, wantFirst: 29, wantLast: 35},
	}

	for _, tc := range tests {
		first, last := Weeks(tc.number)
		if first != tc.wantFirst || last != tc.wantLast {
			t.Fatalf("Weeks(%d) = %d..%d, want %d..%d", tc.number, first, last, tc.wantFirst, tc.wantLast)
		}
	}

	if !ContainsWeek(2, 8) || !ContainsWeek(2, 14) {
		t.Fatal("cup 2 must contain its boundary weeks")
	}
	if ContainsWeek(2, 7) || ContainsWeek(2, 15) {
		t.Fatal("cup 2 must not contain neighbouring weeks")
	}
	if got := len(WeekRange(3)); got != WeeksPerCup {
		t.Fatalf("unexpected week range length: got=%d want=%d", got, WeeksPerCup)
	}
}

func TestResult_MarginRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		team1    int
		team2    int
		want     Outcome
		wantDiff int
	}{
		{team1: 10, team2: 10, want: OutcomeDraw, wantDiff: 0},
		{team1: 10, team2: 12, want: OutcomeDraw, wantDiff: -2},
		{team1: 10, team2: 13, want: OutcomeTeam2Win, wantDiff: -3},
		{team1: 13, team2: 10, want: OutcomeTeam1Win, wantDiff: 3},
		{team1: 50, team2: 40, want: OutcomeTeam1Win, wantDiff: 10},
		{team1: 12, team2: 10, want: OutcomeDraw, wantDiff: 2},
	}

	for _, tc := range tests {
		got, diff := Result(tc.team1, tc.team2)
		if got != tc.want || diff != tc.wantDiff {
			t.Fatalf("Result(%d, %d) = %s diff=%d, want %s diff=%d",
				tc.team1, tc.team2, got, diff, tc.want, tc.wantDiff)
		}
	}
}
