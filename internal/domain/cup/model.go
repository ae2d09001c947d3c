package cup

// WeeksPerCup is the fixed number of gameweeks one cup slice of the
// season covers. Cup k runs from week 7(k-1)+1 through week 7k.
const WeeksPerCup = 7

// Weeks returns the inclusive absolute week range of cup number n.
func Weeks(number int) (first, last int) {
	first = (number-1)*WeeksPerCup + 1
	return first, first + WeeksPerCup - 1
}

// WeekRange lists the absolute weeks of cup number n in order.
func WeekRange(number int) []int {
	first, last := Weeks(number)
	out := make([]int, 0, WeeksPerCup)
	for w := first; w <= last; w++ {
		out = append(out, w)
	}
	return out
}

func ContainsWeek(number, week int) bool {
	first, last := Weeks(number)
	return week >= first && week <= last
}

// DrawMargin is the margin-of-3 rule: a fixture only produces a winner
// when the score differential reaches 3 in either direction; anything
// closer is a draw.
const DrawMargin = 3

type Outcome string

const (
	OutcomeTeam1Win Outcome = "team1_win"
	OutcomeDraw     Outcome = "draw"
	OutcomeTeam2Win Outcome = "team2_win"
)

// Result applies the margin rule to a pair of weekly scores. The
// returned differential is signed from team1's perspective.
func Result(team1Points, team2Points int) (Outcome, int) {
	diff := team1Points - team2Points
	switch {
	case diff >= DrawMargin:
		return OutcomeTeam1Win, diff
	case diff <= -DrawMargin:
		return OutcomeTeam2Win, diff
	default:
		return OutcomeDraw, diff
	}
}

const (
	PointsForWin  = 3
	PointsForDraw = 1
)

// StandingsRow accumulates one team's aggregates over a cup. Rows exist
// only for the duration of a single standings computation and are never
// persisted.
type StandingsRow struct {
	Team           string
	Played         int
	Wins           int
	Draws          int
	Losses         int
	CupPoints      int
	GoalDifference int
}
