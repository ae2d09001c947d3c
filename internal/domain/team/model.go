package team

import "strings"

// Team is one manager entry in the mini-league, identified by its
// canonical name. Names are unique within a cup.
type Team struct {
	Name string
}

func Normalize(name string) string {
	return strings.TrimSpace(name)
}

// MatchesLiveName reports whether a live-feed display name refers to the
// given canonical team. The live site decorates entry names, so matching
// is case-insensitive substring containment in either direction.
func MatchesLiveName(canonical, live string) bool {
	c := strings.ToLower(Normalize(canonical))
	l := strings.ToLower(Normalize(live))
	if c == "" || l == "" {
		return false
	}
	return strings.Contains(c, l) || strings.Contains(l, c)
}
