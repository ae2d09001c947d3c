package livefeed

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/fplcups/minileague/internal/domain/scoring"
)

// The live league page renders one row per manager. A row with hit
// penalties shows them as "12 (-24)=-12"; rows without hits just list
// rank, gameweek points and total points among other numbers.
var (
	hitsPattern = regexp.MustCompile(`(\d+)\s*\(-(\d+)\)\s*=\s*-?(\d+)`)
	intPattern  = regexp.MustCompile(`-?\d+`)
)

// ParseLeaguePage extracts one record per manager row from a live
// league page. Ranks are assigned by page order.
func ParseLeaguePage(r io.Reader) ([]scoring.LiveRecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	records := make([]scoring.LiveRecord, 0)
	for _, row := range findManagerRows(doc) {
		record := parseManagerRow(row)
		record.Rank = len(records) + 1
		records = append(records, record)
	}
	return records, nil
}

// findManagerRows locates each manager's row container: starting from
// the entry link, walk up until the container carries at least three
// numbers (rank, gameweek points, total).
func findManagerRows(doc *goquery.Document) []*goquery.Selection {
	rows := make([]*goquery.Selection, 0)
	doc.Find(`a[href*='/entry/']`).Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if !strings.Contains(href, "fantasy.premierleague.com") {
			return
		}

		container := link
		for range [5]struct{}{} {
			parent := container.Parent()
			if parent.Length() == 0 {
				break
			}
			container = parent
			if len(intPattern.FindAllString(selectionText(container), -1)) >= 3 {
				break
			}
		}
		rows = append(rows, container)
	})
	return rows
}

func parseManagerRow(row *goquery.Selection) scoring.LiveRecord {
	record := scoring.LiveRecord{TeamName: "Unknown Team"}
	if name := strings.TrimSpace(row.Find(`a[href*='/entry/']`).First().Text()); name != "" {
		record.TeamName = name
	}

	text := selectionText(row)
	if m := hitsPattern.FindStringSubmatch(text); m != nil {
		record.LivePoints = atoi(m[1])
		record.Hits = atoi(m[2])
		record.TotalPoints = pickTotal(allInts(text), 10)
		return record
	}

	numbers := allInts(text)
	if len(numbers) == 0 {
		return record
	}

	record.TotalPoints = pickTotal(numbers, 30)
	record.LivePoints = pickLivePoints(numbers, record.TotalPoints)
	return record
}

// pickTotal takes the largest number at or above the floor, falling
// back to the largest number on the row.
func pickTotal(numbers []int, floor int) int {
	total := 0
	large := false
	for _, n := range numbers {
		if n >= floor {
			if !large || n > total {
				total = n
				large = true
			}
		}
	}
	if large {
		return total
	}
	for _, n := range numbers {
		if n > total {
			total = n
		}
	}
	if total < 0 {
		total = -total
	}
	return total
}

// pickLivePoints takes the largest plausible gameweek score below the
// total. Live scores above 150 are assumed to be totals or ranks.
func pickLivePoints(numbers []int, total int) int {
	live := 0
	for _, n := range numbers {
		if n < total && n >= 0 && n <= 150 && n > live {
			live = n
		}
	}
	return live
}

func allInts(text string) []int {
	raw := intPattern.FindAllString(text, -1)
	out := make([]int, 0, len(raw))
	for _, r := range raw {
		out = append(out, atoi(r))
	}
	return out
}

func atoi(raw string) int {
	n, _ := strconv.Atoi(raw)
	return n
}

// selectionText joins all text nodes with single spaces, so numbers in
// sibling elements do not run together.
func selectionText(sel *goquery.Selection) string {
	parts := make([]string, 0)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, node := range sel.Nodes {
		walk(node)
	}
	return strings.Join(parts, " ")
}
